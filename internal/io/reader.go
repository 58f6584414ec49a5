package io

import (
	"bufio"
	"errors"
	"fmt"
	goio "io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ErrUnsupportedSeek is returned for seek modes a gzip source cannot honor.
var ErrUnsupportedSeek = errors.New("unsupported seek on gzip source")

// ByteSource is the stream the matrix decoder consumes: sequential reads,
// the seek subset the variant supports, and a Close releasing the file.
type ByteSource interface {
	goio.Reader
	goio.Seeker
	goio.Closer
}

// Open opens a matrix file and selects the reader variant from its suffix:
// ".gz" gets a decompressing reader, anything else a plain buffered one.
func Open(path string) (ByteSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		return &GzipReader{gz: gz, f: f}, nil
	}

	return &PlainReader{br: bufio.NewReader(f), f: f}, nil
}

// PlainReader reads an uncompressed matrix file through a buffer.
type PlainReader struct {
	br *bufio.Reader
	f  *os.File
}

func (p *PlainReader) Read(b []byte) (int, error) {
	return p.br.Read(b)
}

// Seek supports all whence modes. A relative seek is adjusted for bytes
// still sitting in the buffer, and the buffer is discarded afterwards.
func (p *PlainReader) Seek(offset int64, whence int) (int64, error) {
	if whence == goio.SeekCurrent {
		offset -= int64(p.br.Buffered())
	}
	pos, err := p.f.Seek(offset, whence)
	if err != nil {
		return 0, err
	}
	p.br.Reset(p.f)
	return pos, nil
}

func (p *PlainReader) Close() error {
	return p.f.Close()
}

// GzipReader reads a gzip-compressed matrix file, decompressing on the fly.
type GzipReader struct {
	gz *gzip.Reader
	f  *os.File
}

func (g *GzipReader) Read(b []byte) (int, error) {
	return g.gz.Read(b)
}

// Seek supports only forward skips from the current position: gzip streams
// are not randomly addressable, so any other mode fails rather than pretend.
// The skip discards decompressed bytes through a small scratch buffer.
func (g *GzipReader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case goio.SeekStart:
		return 0, fmt.Errorf("%w: cannot seek to an absolute position", ErrUnsupportedSeek)
	case goio.SeekEnd:
		return 0, fmt.Errorf("%w: cannot seek from the end", ErrUnsupportedSeek)
	}
	if offset < 0 {
		return 0, fmt.Errorf("%w: cannot seek backward", ErrUnsupportedSeek)
	}

	var scratch [4096]byte
	var skipped int64
	for skipped < offset {
		chunk := offset - skipped
		if chunk > int64(len(scratch)) {
			chunk = int64(len(scratch))
		}
		n, err := g.gz.Read(scratch[:chunk])
		skipped += int64(n)
		if err == goio.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	return 0, nil
}

func (g *GzipReader) Close() error {
	if err := g.gz.Close(); err != nil {
		g.f.Close()
		return err
	}
	return g.f.Close()
}
