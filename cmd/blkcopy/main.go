// main.go - copy one file to another, one block at a time
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

package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path"

	"github.com/opencoff/go-blkcopy"
	"github.com/opencoff/go-logger"
	"github.com/opencoff/go-utils"
	flag "github.com/opencoff/pflag"
)

var Z = path.Base(os.Args[0])

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the whole program; it returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	var help, verbose bool
	var logfile string

	bsize := SizeValue(blkcopy.BlockSize)

	fs := flag.NewFlagSet(Z, flag.ContinueOnError)
	fs.BoolVarP(&help, "help", "h", false, "Show help and exit [False]")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Show the number of bytes copied [False]")
	fs.VarP(&bsize, "block-size", "b", "Copy in blocks of `N` bytes [1k]")
	fs.StringVarP(&logfile, "log", "L", "", "Write a debug log to file `F`; STDOUT logs to stdout [none]")

	fs.SetOutput(stdout)
	fs.Usage = func() {
		usage(fs, stdout)
	}

	// a parse failure has already shown the usage
	if err := fs.Parse(args); err != nil {
		warn(stderr, "%s", err)
		return 1
	}

	if help {
		usage(fs, stdout)
		return 1
	}

	args = fs.Args()
	if len(args) != 2 {
		usage(fs, stdout)
		return 1
	}

	if bsize.Value() == 0 || bsize.Value() > math.MaxInt32 {
		warn(stderr, "invalid block size %s", bsize.String())
		return 1
	}

	src, dst := args[0], args[1]
	opts := []blkcopy.Option{
		blkcopy.WithBlockSize(int(bsize.Value())),
	}

	if len(logfile) > 0 {
		log, err := logger.NewLogger(logfile, logger.LOG_DEBUG, Z,
			logger.Ldate|logger.Ltime|logger.Lmicroseconds|logger.Lfileloc)
		if err != nil {
			warn(stderr, "logfile: %s", err)
			return 1
		}

		defer log.Close()
		opts = append(opts, blkcopy.WithLogger(log))
	}

	n, err := blkcopy.Copy(dst, src, opts...)
	if err != nil {
		warn(stderr, "%s", describe(err))
		return 1
	}

	if verbose {
		fmt.Fprintf(stdout, "%s: %s -> %s: %s (%d bytes)\n", Z, src, dst,
			utils.HumanizeSize(uint64(n)), n)
	}
	fmt.Fprintf(stdout, "Copy completed successfully.\n")
	return 0
}

// describe turns a copy error into a message for humans; the
// underlying OS error text is always kept.
func describe(err error) string {
	var ce *blkcopy.CopyError
	if !errors.As(err, &ce) {
		return err.Error()
	}

	switch ce.Op {
	case "open-src":
		return fmt.Sprintf("can't open source: %s", ce.Err)
	case "create-dst":
		return fmt.Sprintf("can't create destination: %s", ce.Err)
	case "read":
		return fmt.Sprintf("read error: %s", ce.Err)
	case "write":
		return fmt.Sprintf("write error: %s: %s", ce.Dst, ce.Err)
	case "close-dst":
		return fmt.Sprintf("can't close destination: %s", ce.Err)
	}
	return err.Error()
}

func warn(w io.Writer, s string, v ...any) {
	z := fmt.Sprintf("%s: %s", Z, s)
	m := fmt.Sprintf(z, v...)
	if n := len(m); m[n-1] != '\n' {
		m += "\n"
	}
	fmt.Fprint(w, m)
}

func usage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, usageStr, Z, Z)
	fs.PrintDefaults()
}

var usageStr = `%s - copy a file one block at a time.

The destination is created if it doesn't exist and truncated if it does.

Usage: %s [options] SRC DST

Options:
`
