package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownExtension marks a file whose extension is not a supported ledger format
var ErrUnknownExtension = errors.New("unknown file extension")

// MissingColumnError reports semantic roles that could not be resolved to columns
type MissingColumnError struct {
	Roles []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Roles, ", "))
}

// UnsupportedFormatError reports a source file that could not be decoded
type UnsupportedFormatError struct {
	Filename string
	Reason   string
	Err      error
}

func (e *UnsupportedFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unsupported file %q: %s: %v", e.Filename, e.Reason, e.Err)
	}
	return fmt.Sprintf("unsupported file %q: %s", e.Filename, e.Reason)
}

func (e *UnsupportedFormatError) Unwrap() error {
	return e.Err
}

// InvalidCycleRangeError reports a cycle index or range outside the segmented cycle list
type InvalidCycleRangeError struct {
	From      int
	To        int
	Available int
}

func (e *InvalidCycleRangeError) Error() string {
	if e.From == e.To {
		return fmt.Sprintf("invalid cycle index %d: account has %d cycles", e.From, e.Available)
	}
	return fmt.Sprintf("invalid cycle range [%d, %d]: account has %d cycles", e.From, e.To, e.Available)
}
