package io

import (
	"bytes"
	goio "io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

func writePlain(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func writeGzip(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write(data)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
	return path
}

func sequence(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func TestOpenSelectsVariant(t *testing.T) {
	data := sequence(16)

	src, err := Open(writePlain(t, "a.mtx", data))
	require.NoError(t, err)
	require.IsType(t, &PlainReader{}, src)
	require.NoError(t, src.Close())

	src, err = Open(writeGzip(t, "a.mtx.gz", data))
	require.NoError(t, err)
	require.IsType(t, &GzipReader{}, src)
	require.NoError(t, src.Close())
}

func TestPlainAndGzipReadSame(t *testing.T) {
	data := sequence(10000)

	for _, path := range []string{
		writePlain(t, "b.mtx", data),
		writeGzip(t, "b.mtx.gz", data),
	} {
		src, err := Open(path)
		require.NoError(t, err)

		got, err := goio.ReadAll(src)
		require.NoError(t, err)
		require.Equal(t, data, got)
		require.NoError(t, src.Close())
	}
}

func TestPlainSeek(t *testing.T) {
	data := sequence(64)
	src, err := Open(writePlain(t, "c.mtx", data))
	require.NoError(t, err)
	defer src.Close()

	buf := make([]byte, 4)
	_, err = goio.ReadFull(src, buf)
	require.NoError(t, err)
	require.Equal(t, data[:4], buf)

	// Relative seek accounts for buffered bytes: the next read must see
	// logical offset 8, not wherever the file descriptor sits.
	pos, err := src.Seek(4, goio.SeekCurrent)
	require.NoError(t, err)
	require.Equal(t, int64(8), pos)
	_, err = goio.ReadFull(src, buf)
	require.NoError(t, err)
	require.Equal(t, data[8:12], buf)

	pos, err = src.Seek(0, goio.SeekStart)
	require.NoError(t, err)
	require.Equal(t, int64(0), pos)
	_, err = goio.ReadFull(src, buf)
	require.NoError(t, err)
	require.Equal(t, data[:4], buf)

	pos, err = src.Seek(-4, goio.SeekEnd)
	require.NoError(t, err)
	require.Equal(t, int64(60), pos)
	_, err = goio.ReadFull(src, buf)
	require.NoError(t, err)
	require.Equal(t, data[60:], buf)
}

func TestGzipSeekForward(t *testing.T) {
	data := sequence(10000)
	src, err := Open(writeGzip(t, "d.mtx.gz", data))
	require.NoError(t, err)
	defer src.Close()

	buf := make([]byte, 4)
	_, err = goio.ReadFull(src, buf)
	require.NoError(t, err)
	require.Equal(t, data[:4], buf)

	// Skip longer than the scratch buffer to force multiple discard rounds.
	_, err = src.Seek(9000, goio.SeekCurrent)
	require.NoError(t, err)

	_, err = goio.ReadFull(src, buf)
	require.NoError(t, err)
	require.Equal(t, data[9004:9008], buf)
}

func TestGzipSeekUnsupported(t *testing.T) {
	data := sequence(64)
	src, err := Open(writeGzip(t, "e.mtx.gz", data))
	require.NoError(t, err)
	defer src.Close()

	_, err = src.Seek(0, goio.SeekStart)
	require.ErrorIs(t, err, ErrUnsupportedSeek)

	_, err = src.Seek(-1, goio.SeekEnd)
	require.ErrorIs(t, err, ErrUnsupportedSeek)

	_, err = src.Seek(-1, goio.SeekCurrent)
	require.ErrorIs(t, err, ErrUnsupportedSeek)

	// The failed seeks must not have consumed anything.
	buf := make([]byte, 4)
	_, err = goio.ReadFull(src, buf)
	require.NoError(t, err)
	require.Equal(t, data[:4], buf)
}

func TestReadUint32s(t *testing.T) {
	raw := []byte{
		0x01, 0x00, 0x00, 0x00,
		0xFF, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x80,
	}

	v, err := ReadUint32(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, uint32(1), v)

	got, err := ReadUint32s(bytes.NewReader(raw), 3)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 255, 0x80000000}, got)
}

func TestReadFloat32s(t *testing.T) {
	// 1.0 and -2.5 in little-endian IEEE 754.
	raw := []byte{
		0x00, 0x00, 0x80, 0x3F,
		0x00, 0x00, 0x20, 0xC0,
	}

	got, err := ReadFloat32s(bytes.NewReader(raw), 2)
	require.NoError(t, err)
	require.Equal(t, []float32{1.0, -2.5}, got)
}

func TestReadShortInput(t *testing.T) {
	raw := sequence(10)

	got, err := ReadUint32s(bytes.NewReader(raw), 3)
	require.ErrorIs(t, err, goio.ErrUnexpectedEOF)
	require.Nil(t, got)

	floats, err := ReadFloat32s(bytes.NewReader(nil), 1)
	require.ErrorIs(t, err, goio.ErrUnexpectedEOF)
	require.Nil(t, floats)

	_, err = ReadUint32(bytes.NewReader(raw[:2]))
	require.ErrorIs(t, err, goio.ErrUnexpectedEOF)
}
