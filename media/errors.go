package media

import (
	"errors"
	"fmt"
)

var (
	// ErrFetch is matched by every error FetchFile returns.
	ErrFetch = errors.New("unable to fetch resource")
	// ErrRead is matched by errors reading file content for decoding.
	ErrRead = errors.New("unable to read file")
	// ErrDecode is matched when content is not a decodable image.
	ErrDecode = errors.New("unable to decode image")
)

// FetchError describes failed fetch. Status is 0 when no response has been
// received.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %q: status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %q: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrFetch, e.Err}
}

// ReadError describes failure to read file content before decoding.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %q: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() []error {
	return []error{ErrRead, e.Err}
}
