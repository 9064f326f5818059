package tagref

import (
	"errors"
	"fmt"
)

var (
	// ErrEncoding matches every *EncodingError.
	ErrEncoding = errors.New("tagref: encoding error")
	// ErrMalformedField matches every *MalformedFieldError.
	ErrMalformedField = errors.New("tagref: malformed field")
	// ErrMissingSegment matches every *MissingSegmentError.
	ErrMissingSegment = errors.New("tagref: wrong segment count")
)

// EncodingError reports a field that cannot be carried through the route
// without losing information.
type EncodingError struct {
	Field  string
	Value  string
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("tagref: cannot encode %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *EncodingError) Is(target error) bool { return target == ErrEncoding }

// MalformedFieldError reports a route segment that does not satisfy the type
// of the field it carries.
type MalformedFieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("tagref: malformed %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *MalformedFieldError) Is(target error) bool { return target == ErrMalformedField }

// MissingSegmentError reports a reference that does not have exactly
// SegmentCount segments.
type MissingSegmentError struct {
	Got int
}

func (e *MissingSegmentError) Error() string {
	return fmt.Sprintf("tagref: expected %d segments, got %d", SegmentCount, e.Got)
}

func (e *MissingSegmentError) Is(target error) bool { return target == ErrMissingSegment }
