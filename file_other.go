// file_other.go - non-unix file I/O
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

//go:build !unix

package blkcopy

import (
	"io"
	"io/fs"
	"os"
)

// File is an open file; on this platform it is a thin wrapper
// around *os.File.
type File struct {
	f *os.File
}

var _ io.ReadWriteCloser = &File{}

// Open opens 'nm' for reading
func Open(nm string) (*File, error) {
	fd, err := os.OpenFile(nm, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	return &File{fd}, nil
}

// Create opens 'nm' for writing; the file is created with mode
// 'perm' if it doesn't exist and truncated if it does.
func Create(nm string, perm fs.FileMode) (*File, error) {
	fd, err := os.OpenFile(nm, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm.Perm())
	if err != nil {
		return nil, err
	}
	return &File{fd}, nil
}

// Name returns the path this file was opened with
func (f *File) Name() string {
	return f.f.Name()
}

// Read reads up to len(b) bytes
func (f *File) Read(b []byte) (int, error) {
	return f.f.Read(b)
}

// Write writes 'b'; a partial write always carries an error.
func (f *File) Write(b []byte) (int, error) {
	return f.f.Write(b)
}

// Close releases the file. Only the first call does any work;
// later calls return os.ErrClosed.
func (f *File) Close() error {
	return f.f.Close()
}
