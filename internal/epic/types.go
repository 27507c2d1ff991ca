package epic

import (
	"errors"
	"fmt"
	"strings"
)

// Record is the latest Earth-image capture published by the backend at /api/latest.
type Record struct {
	Date       string `json:"date"`
	Caption    string `json:"caption,omitempty"`
	ImageName  string `json:"image_name,omitempty"`
	ImageLocal string `json:"image_local"`
	ImageURL   string `json:"image_url"`
}

// HasCaption reports whether the record carries a caption worth displaying.
func (r Record) HasCaption() bool {
	return strings.TrimSpace(r.Caption) != ""
}

// ErrFetch matches every FetchError via errors.Is.
var ErrFetch = errors.New("fetch failed")

// FetchError is the only failure the client reports. Transport errors, non-2xx
// statuses and undecodable bodies all collapse into it.
type FetchError struct {
	Message string
	Status  int // HTTP status when the server answered, zero otherwise
	Err     error
}

func (e *FetchError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrFetch) succeed for any FetchError.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

func statusError(status int) *FetchError {
	return &FetchError{
		Message: fmt.Sprintf("Request failed with status code %d", status),
		Status:  status,
	}
}

func transportError(err error) *FetchError {
	return &FetchError{Message: err.Error(), Err: err}
}

// Message extracts a displayable message from err. Non-fetch errors fall back
// to their Error text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var fe *FetchError
	if errors.As(err, &fe) && fe.Message != "" {
		return fe.Message
	}
	return err.Error()
}
