// utils_test.go -- test harness utilities
//
// (c) 2024- Sudhi Herle <sudhi@herle.net>
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
	crand "crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/opencoff/go-mmap"
)

var testDir = flag.String("testdir", "", "Use 'T' as the testdir for file I/O tests")

func newAsserter(t *testing.T) func(cond bool, msg string, args ...interface{}) {
	return func(cond bool, msg string, args ...interface{}) {
		if cond {
			return
		}

		_, file, line, ok := runtime.Caller(1)
		if !ok {
			file = "???"
			line = 0
		}

		s := fmt.Sprintf(msg, args...)
		t.Fatalf("\n%s: %d: Assertion failed: %s\n", file, line, s)
	}
}

func getTmpdir(t *testing.T) string {
	assert := newAsserter(t)
	tmpdir := t.TempDir()

	if len(*testDir) > 0 {
		tmpdir = filepath.Join(*testDir, t.Name())
		err := os.MkdirAll(tmpdir, 0700)
		assert(err == nil, "mkdir %s: %s", tmpdir, err)
		t.Logf("Using %s as test dir .. \n", tmpdir)
		t.Cleanup(func() {
			t.Logf("cleaning up %s ..\n", tmpdir)
			os.RemoveAll(tmpdir)
		})
	}
	return tmpdir
}

func byteEq(a, b []byte) bool {
	return 1 == subtle.ConstantTimeCompare(a, b)
}

func cksum(b []byte) []byte {
	h := sha256.New()
	h.Write(b)
	return h.Sum(nil)[:]
}

func fileCksum(nm string) ([]byte, error) {
	fd, err := os.Open(nm)
	if err != nil {
		return nil, err
	}

	defer fd.Close()
	h := sha256.New()
	_, err = mmap.Reader(fd, func(b []byte) error {
		h.Write(b)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return h.Sum(nil)[:], nil
}

// create a file of exactly 'sz' bytes of random data and
// return its checksum
func createFile(nm string, sz int) ([]byte, error) {
	buf := make([]byte, 4096)
	return writeFile(nm, sz, func(b []byte) {
		randbuf(b)
	}, buf)
}

// create a file of 'sz' bytes all set to 'c'
func createFilled(nm string, sz int, c byte) ([]byte, error) {
	buf := make([]byte, 4096)
	return writeFile(nm, sz, func(b []byte) {
		for i := range b {
			b[i] = c
		}
	}, buf)
}

func writeFile(nm string, sz int, fill func(b []byte), buf []byte) ([]byte, error) {
	fd, err := os.OpenFile(nm, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}

	defer fd.Close()

	h := sha256.New()
	for sz > 0 {
		n := min(len(buf), sz)
		b := buf[:n]
		fill(b)
		h.Write(b)
		n, err := fd.Write(b)
		if err != nil {
			return nil, err
		}
		if n != len(b) {
			return nil, fmt.Errorf("%s: partial write (exp %d, saw %d)", nm, len(b), n)
		}
		sz -= n
	}

	if err = fd.Sync(); err != nil {
		return nil, err
	}

	if err = fd.Close(); err != nil {
		return nil, err
	}

	return h.Sum(nil), nil
}

func randbuf(b []byte) []byte {
	n, err := crand.Read(b)
	if err != nil || n != len(b) {
		panic(fmt.Sprintf("can't read %d bytes of crypto/rand: %s", len(b), err))
	}
	return b
}

func fileSize(nm string) (int64, error) {
	fi, err := os.Stat(nm)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}
