// Package footer locates and reads the Thrift-encoded FileMetaData trailer
// of a Parquet file: the last 8 bytes (a little-endian length followed by
// the "PAR1" magic), then the footer_length bytes immediately before them.
//
// Grounded on _examples/segmentio-parquet-go/file.go's OpenFile (the
// magic-check-then-read-back shape) and original_source/src/main.c's
// parquet_main (the one-shot buffer re-expansion retry). Unlike the
// teacher, which allocates the footer buffer directly from Go's heap, this
// port reads through an arena.Pool block so the buffer participates in the
// same block-budget accounting as the rest of the parse.
package footer

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/mmatczuk/parquetdump/internal/arena"
)

const (
	magic          = "PAR1"
	trailerSize    = 8 // 4-byte length + 4-byte magic
	defaultGuess   = 4096
)

// ErrInvalidFile is returned when the trailing magic is missing or the
// declared footer does not fit even after one re-expansion.
var ErrInvalidFile = errors.New("footer: not a valid parquet file")

// ByteSource is the read side of the file this package locates a footer in.
// It mirrors io.ReaderAt with an explicit declared size, since a Parquet
// footer is addressed from the end of the file.
type ByteSource interface {
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	Size() int64
}

// OutputSink is the write side the render pipeline drains into. It mirrors
// io.Writer; Drain retries on short writes, matching the resumable
// formatter's "caller drains, then calls again" contract.
type OutputSink interface {
	Write(p []byte) (int, error)
}

// Drain writes the entirety of p to sink, retrying on short writes.
func Drain(sink OutputSink, p []byte) error {
	for len(p) > 0 {
		n, err := sink.Write(p)
		if err != nil {
			return fmt.Errorf("footer: short write: %w", err)
		}
		p = p[n:]
	}
	return nil
}

// Footer is the raw Thrift bytes of a located FileMetaData, still unparsed.
type Footer struct {
	Bytes []byte

	pool  *arena.Pool
	block []byte
}

// Release returns the footer's backing block to the pool it came from. It
// is safe to call once after the caller is done with Bytes.
func (f *Footer) Release() {
	if f.pool != nil && f.block != nil {
		f.pool.Release(f.block)
		f.pool = nil
		f.block = nil
	}
}

// Locate reads the trailing 8 bytes of src, validates the magic, decodes
// the footer length, and reads the footer itself. The initial read uses a
// defaultGuess-sized block; if the declared footer is larger, the block is
// released and a single larger block (the next power of two covering
// footer_length+trailerSize) is acquired and the read retried once. A
// second failure to fit is ErrInvalidFile, matching the source's one-shot
// re-expansion policy.
func Locate(ctx context.Context, src ByteSource, pool *arena.Pool) (*Footer, error) {
	size := src.Size()
	if size < trailerSize {
		return nil, ErrInvalidFile
	}

	var trailer [trailerSize]byte
	if _, err := src.ReadAt(ctx, trailer[:], size-trailerSize); err != nil {
		return nil, fmt.Errorf("footer: reading trailer: %w", err)
	}
	if string(trailer[4:8]) != magic {
		return nil, ErrInvalidFile
	}

	footerLength := int64(binary.LittleEndian.Uint32(trailer[0:4]))
	if footerLength < 0 || footerLength+trailerSize > size {
		return nil, ErrInvalidFile
	}
	footerOffset := size - (footerLength + trailerSize)

	block := pool.Acquire(defaultGuess)
	if int64(len(block)) < footerLength {
		pool.Release(block)

		block = pool.Acquire(nextPowerOfTwo(footerLength + trailerSize))
		if int64(len(block)) < footerLength {
			pool.Release(block)
			return nil, ErrInvalidFile
		}
	}

	buf := block[:footerLength]
	if _, err := src.ReadAt(ctx, buf, footerOffset); err != nil {
		pool.Release(block)
		return nil, fmt.Errorf("footer: reading footer body: %w", err)
	}

	return &Footer{Bytes: buf, pool: pool, block: block}, nil
}

func nextPowerOfTwo(n int64) int {
	if n <= 1 {
		return 1
	}
	p := int64(1)
	for p < n {
		p <<= 1
	}
	return int(p)
}
