package ioutils

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestRoundTripPlain(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.csv")
	w, err := CreateMaybeCompressed(p)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, "a,b\n1,2\n"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	r, err := OpenMaybeCompressed(p)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	b, _ := io.ReadAll(r)
	if string(b) != "a,b\n1,2\n" {
		t.Fatalf("got %q", b)
	}
}

func TestRoundTripGzip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.csv.gz")
	w, err := CreateMaybeCompressed(p)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = io.WriteString(w, "x\n1\n")
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	// the file on disk is really gzip
	raw, _ := os.Open(p)
	zr, err := gzip.NewReader(raw)
	if err != nil {
		t.Fatalf("not gzip: %v", err)
	}
	_ = zr.Close()
	_ = raw.Close()

	r, err := OpenMaybeCompressed(p)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	b, _ := io.ReadAll(r)
	if string(b) != "x\n1\n" {
		t.Fatalf("got %q", b)
	}
}

func TestSniffGzipWithoutExtension(t *testing.T) {
	p := filepath.Join(t.TempDir(), "data.bin")
	f, _ := os.Create(p)
	zw := gzip.NewWriter(f)
	_, _ = io.WriteString(zw, "hello")
	_ = zw.Close()
	_ = f.Close()

	r, err := OpenMaybeCompressed(p)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	b, _ := io.ReadAll(r)
	if string(b) != "hello" {
		t.Fatalf("got %q", b)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := OpenMaybeCompressed(filepath.Join(t.TempDir(), "nope.csv")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
