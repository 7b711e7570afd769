package probe

import (
	"errors"
	"fmt"
)

// Kind classifies why a probe failed.
type Kind int

const (
	// NotFound: the path does not exist.
	NotFound Kind = iota
	// UnsupportedFormat: the extension is not a recognized video type.
	UnsupportedFormat
	// Unopenable: ffprobe could not open or parse the stream.
	Unopenable
	// Timeout: the probe exceeded its deadline.
	Timeout
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case UnsupportedFormat:
		return "unsupported format"
	case Unopenable:
		return "unopenable"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is a typed per-file probe failure. The engine converts it into a
// failed outcome; it never aborts a batch.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("probe %s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("probe %s: %s", e.Path, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
