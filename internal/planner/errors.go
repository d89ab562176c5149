package planner

import (
	"errors"
	"fmt"
)

// ErrEmptyInput indicates the request carried no usable text.
var ErrEmptyInput = errors.New("input is empty")

// MalformedResponseError indicates the generation collaborator returned
// text that could not be decoded as a JSON object. There is no automatic
// retry; the caller decides whether to re-invoke the pipeline.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed plan response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
