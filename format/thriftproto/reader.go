// Package thriftproto implements the subset of the Thrift Compact Protocol
// that Parquet footers are encoded with: varint-and-zigzag integers, the
// field-id-delta struct header, short-form list headers, and length-prefixed
// binary. Every decoder is a free function over a byte slice that returns the
// number of bytes it consumed; none of them retain any state between calls.
//
// Grounded on _examples/original_source/src/thrift.c (the varint/zigzag and
// struct-header arithmetic) and the teacher's format/thriftdecode buffer
// reader for the surrounding Go idiom (slice-and-offset, sentinel errors
// instead of negative return codes).
package thriftproto

import (
	"errors"
	"fmt"

	"github.com/mmatczuk/parquetdump/format"
)

var (
	// ErrBufferOverflow is returned when the input slice runs out before a
	// value is fully decoded (a truncated varint continuation, a struct
	// header with no bytes left, a binary payload shorter than declared).
	ErrBufferOverflow = errors.New("thriftproto: truncated input")
	// ErrVarintOverflow is returned when a varint's continuation bit is
	// still set past the type's bit width, or its final byte carries bits
	// beyond the width it is allowed to contribute.
	ErrVarintOverflow = errors.New("thriftproto: varint does not fit in target width")
	// ErrInvalidValue is returned for field headers with other local wire
	// violations: a zero field-id delta, or a negative binary length.
	ErrInvalidValue = errors.New("thriftproto: invalid value")
)

// StructHeader is one field preamble inside a Thrift Compact struct: a type
// tag and an absolute field id reconstructed from the running delta.
type StructHeader struct {
	FieldID int32
	Type    format.ThriftType
}

// ReadStructHeader decodes one struct field header. The zero-delta case is
// rejected with ErrInvalidValue (the protocol also allows a zero delta
// followed by an explicit zigzag field id in a long-form header, but this
// decoder only implements the short form — see the parser engine's field-id
// handling). A STOP byte (type nibble zero) terminates the struct and
// reports FieldID 0 regardless of prevFieldID.
func ReadStructHeader(prevFieldID int32, buffer []byte) (hdr StructHeader, n int, err error) {
	if len(buffer) == 0 {
		return StructHeader{}, 0, ErrBufferOverflow
	}
	b := buffer[0]
	typ := format.ThriftType(b & 0x0f)
	if typ == format.ThriftStop {
		return StructHeader{FieldID: 0, Type: format.ThriftStop}, 1, nil
	}
	delta := int32(b&0xf0) >> 4
	if delta == 0 {
		return StructHeader{}, 0, ErrInvalidValue
	}
	return StructHeader{FieldID: prevFieldID + delta, Type: typ}, 1, nil
}

// ReadI32 decodes a zig-zag varint-encoded i32: up to 5 bytes, 7 payload bits
// each, capped at a 28-bit shift.
func ReadI32(buffer []byte) (value int32, n int, err error) {
	u, n, err := readUvarint(buffer, 28)
	if err != nil {
		return 0, n, err
	}
	return int32(int32(u>>1) ^ -int32(u&1)), n, nil
}

// ReadI64 decodes a zig-zag varint-encoded i64: up to 9 bytes, 7 payload
// bits each, capped at a 56-bit shift (matching the source's cap). The ninth
// byte may only carry its low nibble (bits 56..59), so a value whose
// zig-zag form needs more than 60 bits is rejected with ErrVarintOverflow.
func ReadI64(buffer []byte) (value int64, n int, err error) {
	u, n, err := readUvarint(buffer, 56)
	if err != nil {
		return 0, n, err
	}
	return int64(u>>1) ^ -int64(u&1), n, nil
}

// readUvarint accumulates a little-endian-base-128 varint into a u64,
// stopping once the shift passes maxShift. It rejects a continuation bit
// still set once the input is exhausted (ErrBufferOverflow), a continuation
// bit still set on the byte read at maxShift (ErrVarintOverflow), and a high
// nibble set in that byte read at maxShift (ErrVarintOverflow), mirroring
// thrift_read_i32/thrift_read_i64.
func readUvarint(buffer []byte, maxShift uint) (value uint64, n int, err error) {
	var shift uint
	next := byte(0x80)
	for len(buffer) > 0 && next&0x80 != 0 && shift <= maxShift {
		next = buffer[0]
		buffer = buffer[1:]
		n++
		value |= uint64(next&0x7f) << shift
		shift += 7
	}
	if next&0x80 != 0 {
		if shift > maxShift {
			return 0, n, ErrVarintOverflow
		}
		return 0, n, ErrBufferOverflow
	}
	if shift > maxShift && next&0xf0 != 0 {
		return 0, n, ErrVarintOverflow
	}
	return value, n, nil
}

// ListHeader is a Thrift Compact list/set preamble.
type ListHeader struct {
	Size int32
	Type format.ThriftType
}

// ReadListHeader decodes a list/set header: one byte with a short size
// (0..14) in the high nibble and the element type in the low nibble, or a
// high nibble of 15 signalling that an extended varint size follows.
func ReadListHeader(buffer []byte) (hdr ListHeader, n int, err error) {
	if len(buffer) == 0 {
		return ListHeader{}, 0, ErrBufferOverflow
	}
	b := buffer[0]
	typ := format.ThriftType(b & 0x0f)
	short := int32(b&0xf0) >> 4
	if short < 15 {
		return ListHeader{Size: short, Type: typ}, 1, nil
	}
	size, m, err := ReadI32(buffer[1:])
	if err != nil {
		return ListHeader{}, 0, err
	}
	if size < 0 {
		return ListHeader{}, 0, ErrInvalidValue
	}
	return ListHeader{Size: size, Type: typ}, 1 + m, nil
}

// ReadBinaryHeader decodes the varint-encoded length prefix of a binary
// (string/bytes) value. Negative lengths are rejected as ErrInvalidValue.
func ReadBinaryHeader(buffer []byte) (size uint32, n int, err error) {
	v, n, err := ReadI32(buffer)
	if err != nil {
		return 0, n, err
	}
	if v < 0 {
		return 0, n, ErrInvalidValue
	}
	return uint32(v), n, nil
}

// ReadBinaryContent copies size bytes from buffer into dst and appends a
// NUL terminator, so dst must have room for size+1 bytes. It returns size
// (the bytes consumed from the wire; the terminator is not counted), or
// ErrBufferOverflow if buffer is shorter than size.
func ReadBinaryContent(dst []byte, size uint32, buffer []byte) (n int, err error) {
	if uint32(len(buffer)) < size {
		return 0, ErrBufferOverflow
	}
	if uint32(len(dst)) < size+1 {
		return 0, fmt.Errorf("thriftproto: destination too small for %d bytes plus terminator", size)
	}
	copy(dst[:size], buffer[:size])
	dst[size] = 0
	return int(size), nil
}

// ReadBool decodes a struct field's boolean literal directly from its type
// tag: BOOL_TRUE and BOOL_FALSE consume no additional wire bytes. It is an
// error to call this with any other type.
func ReadBool(typ format.ThriftType) (value bool, err error) {
	switch typ {
	case format.ThriftBoolTrue:
		return true, nil
	case format.ThriftBoolFalse:
		return false, nil
	default:
		return false, fmt.Errorf("thriftproto: %s is not a boolean literal", typ)
	}
}
