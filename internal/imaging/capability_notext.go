//go:build notext

package imaging

// textCompiled is false in builds made with -tags notext, which leave the
// TrueType rendering path out.
const textCompiled = false
