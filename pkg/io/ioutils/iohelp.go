package ioutils

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
)

var gzipMagic = []byte{0x1f, 0x8b}

// OpenMaybeCompressed opens a file path or stdin ("-") and returns a reader.
// If the input appears to be gzip (by extension or magic), it wraps with gzip.
func OpenMaybeCompressed(path string) (io.ReadCloser, error) {
	if path == "-" || path == "" {
		return wrapGzip(bufio.NewReader(os.Stdin), func() error { return nil }, false)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc, err := wrapGzip(bufio.NewReader(f), f.Close, filepath.Ext(path) == ".gz")
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return rc, nil
}

func wrapGzip(br *bufio.Reader, closeFn func() error, force bool) (io.ReadCloser, error) {
	if !force {
		b, err := br.Peek(2)
		force = err == nil && b[0] == gzipMagic[0] && b[1] == gzipMagic[1]
	}
	if !force {
		return readCloser{Reader: br, closeFn: closeFn}, nil
	}
	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, err
	}
	return readCloser{Reader: zr, closeFn: func() error { _ = zr.Close(); return closeFn() }}, nil
}

// CreateMaybeCompressed creates (or truncates) a file, or uses stdout when
// path is "-", and returns a buffered writer. If the path ends in .gz, the
// writer is gzip compressed. Close flushes and reports the first error.
func CreateMaybeCompressed(path string) (io.WriteCloser, error) {
	if path == "-" || path == "" {
		bw := bufio.NewWriter(os.Stdout)
		return writeCloser{Writer: bw, closers: []func() error{bw.Flush}}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	bw := bufio.NewWriter(f)
	if filepath.Ext(path) == ".gz" {
		zw := gzip.NewWriter(bw)
		return writeCloser{Writer: zw, closers: []func() error{zw.Close, bw.Flush, f.Close}}, nil
	}
	return writeCloser{Writer: bw, closers: []func() error{bw.Flush, f.Close}}, nil
}

type readCloser struct {
	io.Reader
	closeFn func() error
}

func (r readCloser) Close() error { return r.closeFn() }

type writeCloser struct {
	io.Writer
	closers []func() error
}

// Close runs every closer in order so the file is released even when a
// flush fails.
func (w writeCloser) Close() error {
	var first error
	for _, fn := range w.closers {
		if err := fn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
