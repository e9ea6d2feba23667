package imaging

import "errors"

// Sentinel errors returned (wrapped) by the toolkit operations.
//
// Callers classify failures with errors.Is, or with KindOf when a single
// switch over the error class is more convenient.
var (
	// ErrInvalidColorFormat reports a hex color string that failed
	// structural validation.
	ErrInvalidColorFormat = errors.New("invalid color format")

	// ErrResourceAllocationFailed reports that a scratch or destination
	// buffer could not be created.
	ErrResourceAllocationFailed = errors.New("resource allocation failed")

	// ErrCopyFailed reports that a pixel copy or merge step failed.
	ErrCopyFailed = errors.New("copy failed")

	// ErrCapabilityUnavailable reports that an optional primitive (text
	// rendering) is not available in this build or environment.
	ErrCapabilityUnavailable = errors.New("capability unavailable")

	// ErrInvalidArgument reports a region, percentage or corner argument
	// outside its valid range.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ErrorKind identifies the class of a toolkit error.
type ErrorKind int

// Error kinds, one per sentinel error.
const (
	KindUnknown ErrorKind = iota
	KindInvalidColorFormat
	KindResourceAllocationFailed
	KindCopyFailed
	KindCapabilityUnavailable
	KindInvalidArgument
)

var kindNames = map[ErrorKind]string{
	KindUnknown:                  "Unknown",
	KindInvalidColorFormat:       "InvalidColorFormat",
	KindResourceAllocationFailed: "ResourceAllocationFailed",
	KindCopyFailed:               "CopyFailed",
	KindCapabilityUnavailable:    "CapabilityUnavailable",
	KindInvalidArgument:          "InvalidArgument",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// KindOf returns the kind of err, or KindUnknown for nil and foreign errors.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidColorFormat):
		return KindInvalidColorFormat
	case errors.Is(err, ErrResourceAllocationFailed):
		return KindResourceAllocationFailed
	case errors.Is(err, ErrCopyFailed):
		return KindCopyFailed
	case errors.Is(err, ErrCapabilityUnavailable):
		return KindCapabilityUnavailable
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	}
	return KindUnknown
}
