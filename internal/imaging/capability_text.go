//go:build !notext

package imaging

// textCompiled reports whether the TrueType rendering path is part of this
// build.
const textCompiled = true
