// copy.go - copy a file one block at a time using plain read(2) and
// write(2) calls.
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

// Package blkcopy copies the contents of one file into another
// through a fixed size transfer buffer. There is no copy-on-write,
// no mmap and no atomic rename: the destination is truncated and
// written in place, block by block.
package blkcopy

import (
	"io"
	"io/fs"

	"github.com/opencoff/go-logger"
)

const (
	// BlockSize is the default capacity of the transfer buffer
	BlockSize int = 1024

	// DefaultPerm is the mode of a newly created destination
	DefaultPerm fs.FileMode = 0644
)

type copyopt struct {
	bsize int
	perm  fs.FileMode
	log   logger.Logger
}

func defaultOpts() copyopt {
	return copyopt{
		bsize: BlockSize,
		perm:  DefaultPerm,
	}
}

// Option captures the various options for copying a file
type Option func(o *copyopt)

// WithBlockSize sets the size of the transfer buffer to 'n' bytes.
// A non-positive size makes Copy and CopyStream fail with ErrBlockSize.
func WithBlockSize(n int) Option {
	return func(o *copyopt) {
		o.bsize = n
	}
}

// WithPerm sets the permission bits used when the destination is
// created. Existing destinations keep their mode.
func WithPerm(perm fs.FileMode) Option {
	return func(o *copyopt) {
		o.perm = perm.Perm()
	}
}

// WithLogger logs the progress of a copy to 'log'
func WithLogger(log logger.Logger) Option {
	return func(o *copyopt) {
		o.log = log
	}
}

func (o *copyopt) debug(s string, v ...any) {
	if o.log != nil {
		o.log.Debug(s, v...)
	}
}

func (o *copyopt) info(s string, v ...any) {
	if o.log != nil {
		o.log.Info(s, v...)
	}
}

// Copy copies the contents of 'src' to 'dst' and returns the number of
// bytes copied. 'dst' is created if it doesn't exist and truncated if it
// does; it is never opened unless 'src' was opened successfully. Both
// files are closed on every return path. A failed copy may leave a
// partially written 'dst' behind.
//
// All errors are of type *CopyError.
func Copy(dst, src string, opts ...Option) (int64, error) {
	opt := defaultOpts()
	for _, fp := range opts {
		fp(&opt)
	}

	if opt.bsize <= 0 {
		return 0, &CopyError{"block-size", src, dst, ErrBlockSize}
	}

	s, err := Open(src)
	if err != nil {
		return 0, &CopyError{"open-src", src, dst, err}
	}

	defer func() {
		s.Close()
		opt.debug("%s: closed", src)
	}()

	opt.debug("%s: opened for reading", src)

	d, err := Create(dst, opt.perm)
	if err != nil {
		return 0, &CopyError{"create-dst", src, dst, err}
	}

	// only the first Close on d does any work; the explicit Close
	// below reports the error on the success path.
	defer d.Close()

	opt.debug("%s: opened for writing (mode %#o)", dst, opt.perm)

	n, err := copyBlocks(d, s, make([]byte, opt.bsize), src, dst)
	if err != nil {
		opt.debug("%s -> %s: %s after %d bytes", src, dst, err, n)
		return n, err
	}

	if err = d.Close(); err != nil {
		return n, &CopyError{"close-dst", src, dst, err}
	}

	opt.debug("%s: closed", dst)
	opt.info("%s -> %s: %d bytes", src, dst, n)
	return n, nil
}

// CopyStream copies from 'src' to 'dst' one block at a time until 'src'
// is exhausted and returns the number of bytes copied. Neither 'src'
// nor 'dst' is closed. A read that returns no data and no error is
// treated as the end of input. If 'src' or 'dst' has a Name() method,
// it is used to describe the handle in the returned *CopyError.
func CopyStream(dst io.Writer, src io.Reader, opts ...Option) (int64, error) {
	opt := defaultOpts()
	for _, fp := range opts {
		fp(&opt)
	}

	sn, dn := nameOf(src), nameOf(dst)
	if opt.bsize <= 0 {
		return 0, &CopyError{"block-size", sn, dn, ErrBlockSize}
	}

	n, err := copyBlocks(dst, src, make([]byte, opt.bsize), sn, dn)
	if err != nil {
		opt.debug("%s -> %s: %s after %d bytes", sn, dn, err, n)
		return n, err
	}

	opt.info("%s -> %s: %d bytes", sn, dn, n)
	return n, nil
}

// copyBlocks is the transfer loop: every block read from 'src' is
// written to 'dst' in a single write; a write that doesn't take the
// whole block ends the copy.
func copyBlocks(dst io.Writer, src io.Reader, buf []byte, sn, dn string) (int64, error) {
	var z int64

	for {
		nr, er := src.Read(buf)
		if nr > 0 {
			nw, ew := dst.Write(buf[:nr])
			if nw < 0 || nw > nr {
				nw = 0
			}
			z += int64(nw)

			if nw != nr || ew != nil {
				err := &ShortWriteError{Want: nr, Have: nw, Err: ew}
				return z, &CopyError{"write", sn, dn, err}
			}
		}

		switch {
		case er == io.EOF:
			return z, nil
		case er != nil:
			return z, &CopyError{"read", sn, dn, er}
		case nr == 0:
			return z, nil
		}
	}
}

type namer interface {
	Name() string
}

func nameOf(v any) string {
	if n, ok := v.(namer); ok {
		return n.Name()
	}
	return "<stream>"
}
