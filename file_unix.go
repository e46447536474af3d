// file_unix.go - raw descriptor I/O for unix platforms
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

//go:build unix

package blkcopy

import (
	"io"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

// File is an open file descriptor. Reads and writes go straight to
// read(2) and write(2) with no buffering and no retry of partial
// writes.
type File struct {
	fd   int
	name string
}

var _ io.ReadWriteCloser = &File{}

// Open opens 'nm' for reading
func Open(nm string) (*File, error) {
	return openFile(nm, unix.O_RDONLY, 0)
}

// Create opens 'nm' for writing; the file is created with mode
// 'perm' if it doesn't exist and truncated if it does.
func Create(nm string, perm fs.FileMode) (*File, error) {
	return openFile(nm, unix.O_WRONLY|unix.O_CREAT|unix.O_TRUNC, uint32(perm.Perm()))
}

func openFile(nm string, flag int, perm uint32) (*File, error) {
	var fd int
	var err error

	for {
		fd, err = unix.Open(nm, flag|unix.O_CLOEXEC, perm)
		if err != unix.EINTR {
			break
		}
	}

	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: nm, Err: err}
	}
	return &File{fd: fd, name: nm}, nil
}

// Name returns the path this file was opened with
func (f *File) Name() string {
	return f.name
}

// Read reads up to len(b) bytes; a zero length read from the
// kernel is returned as io.EOF.
func (f *File) Read(b []byte) (int, error) {
	if f.fd < 0 {
		return 0, &fs.PathError{Op: "read", Path: f.name, Err: os.ErrClosed}
	}
	if len(b) == 0 {
		return 0, nil
	}

	for {
		n, err := unix.Read(f.fd, b)
		switch {
		case err == unix.EINTR:
			continue
		case err != nil:
			return 0, &fs.PathError{Op: "read", Path: f.name, Err: err}
		case n == 0:
			return 0, io.EOF
		}
		return n, nil
	}
}

// Write issues a single write(2) for 'b'. If the kernel accepts fewer
// bytes than len(b), Write returns the count and io.ErrShortWrite.
func (f *File) Write(b []byte) (int, error) {
	if f.fd < 0 {
		return 0, &fs.PathError{Op: "write", Path: f.name, Err: os.ErrClosed}
	}

	for {
		n, err := unix.Write(f.fd, b)
		if err == unix.EINTR {
			continue
		}
		if n < 0 {
			n = 0
		}
		if err != nil {
			return n, &fs.PathError{Op: "write", Path: f.name, Err: err}
		}
		if n < len(b) {
			return n, io.ErrShortWrite
		}
		return n, nil
	}
}

// Close releases the descriptor. Only the first call does any work;
// later calls return os.ErrClosed.
func (f *File) Close() error {
	if f.fd < 0 {
		return &fs.PathError{Op: "close", Path: f.name, Err: os.ErrClosed}
	}

	fd := f.fd
	f.fd = -1

	// no EINTR retry for close(2)
	if err := unix.Close(fd); err != nil {
		return &fs.PathError{Op: "close", Path: f.name, Err: err}
	}
	return nil
}

