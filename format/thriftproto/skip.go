package thriftproto

import "github.com/mmatczuk/parquetdump/format"

// SkipValue consumes one value of the given wire type without interpreting
// it, for fields the caller has no handler registered for (Parquet's
// key_value_metadata, statistics, sorting_columns, and the root struct's
// field 5 are all skipped this way). It recurses into STRUCT, LIST and SET
// bodies so a skipped field of arbitrary nesting still leaves the cursor in
// the right place for the next sibling field.
//
// original_source declares thrift_ignore_field in thrift.h but the
// retrieved sources do not carry its definition; this implements the
// standard Compact Protocol skip semantics the declaration implies.
func SkipValue(typ format.ThriftType, buffer []byte) (n int, err error) {
	switch typ {
	case format.ThriftBoolTrue, format.ThriftBoolFalse, format.ThriftStop:
		return 0, nil
	case format.ThriftI8:
		if len(buffer) < 1 {
			return 0, ErrBufferOverflow
		}
		return 1, nil
	case format.ThriftI16, format.ThriftI32:
		_, n, err := ReadI32(buffer)
		return n, err
	case format.ThriftI64:
		_, n, err := ReadI64(buffer)
		return n, err
	case format.ThriftDouble:
		if len(buffer) < 8 {
			return 0, ErrBufferOverflow
		}
		return 8, nil
	case format.ThriftUUID:
		if len(buffer) < 16 {
			return 0, ErrBufferOverflow
		}
		return 16, nil
	case format.ThriftBinary:
		size, hn, err := ReadBinaryHeader(buffer)
		if err != nil {
			return 0, err
		}
		if uint32(len(buffer)-hn) < size {
			return 0, ErrBufferOverflow
		}
		return hn + int(size), nil
	case format.ThriftList, format.ThriftSet:
		hdr, hn, err := ReadListHeader(buffer)
		if err != nil {
			return 0, err
		}
		total := hn
		rest := buffer[hn:]
		for i := int32(0); i < hdr.Size; i++ {
			en, err := SkipValue(hdr.Type, rest)
			if err != nil {
				return 0, err
			}
			total += en
			rest = rest[en:]
		}
		return total, nil
	case format.ThriftStruct:
		total := 0
		rest := buffer
		var fieldID int32
		for {
			hdr, hn, err := ReadStructHeader(fieldID, rest)
			if err != nil {
				return 0, err
			}
			total += hn
			rest = rest[hn:]
			if hdr.Type == format.ThriftStop {
				return total, nil
			}
			fieldID = hdr.FieldID
			en, err := SkipValue(hdr.Type, rest)
			if err != nil {
				return 0, err
			}
			total += en
			rest = rest[en:]
		}
	default:
		return 0, ErrInvalidValue
	}
}
