// errors.go - descriptive errors for blkcopy
//
// (c) 2024 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package blkcopy

import (
	"errors"
	"fmt"
	"io"
)

// CopyError represents the errors returned by Copy and CopyStream.
// Op is one of "open-src", "create-dst", "read", "write" or "close-dst".
type CopyError struct {
	Op  string
	Src string
	Dst string
	Err error
}

// Error returns a string representation of CopyError
func (e *CopyError) Error() string {
	return fmt.Sprintf("copyfile: %s '%s' '%s': %s",
		e.Op, e.Src, e.Dst, e.Err.Error())
}

// Unwrap returns the underlying wrapped error
func (e *CopyError) Unwrap() error {
	return e.Err
}

// ShortWriteError records a write that accepted fewer bytes than
// it was handed. Err is the error returned by the write call, if any.
type ShortWriteError struct {
	Want int
	Have int
	Err  error
}

// Error returns a string representation of ShortWriteError
func (e *ShortWriteError) Error() string {
	if e.Err != nil && !errors.Is(e.Err, io.ErrShortWrite) {
		return fmt.Sprintf("short write (exp %d, saw %d): %s", e.Want, e.Have, e.Err)
	}
	return fmt.Sprintf("short write (exp %d, saw %d)", e.Want, e.Have)
}

// Unwrap returns the error from the write call or ErrShortWrite
func (e *ShortWriteError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrShortWrite
}

var _ error = &CopyError{}
var _ error = &ShortWriteError{}

var (
	// ErrShortWrite is wrapped by every ShortWriteError
	ErrShortWrite = io.ErrShortWrite

	// ErrBlockSize is returned for a non-positive transfer buffer size
	ErrBlockSize = errors.New("blkcopy: invalid block size")
)
