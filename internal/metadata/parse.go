package metadata

import (
	"errors"
	"fmt"

	"github.com/mmatczuk/parquetdump/format"
	"github.com/mmatczuk/parquetdump/format/thriftproto"
	"github.com/mmatczuk/parquetdump/internal/arena"
	"github.com/mmatczuk/parquetdump/internal/unsafecast"
)

var (
	// ErrInvalidType is returned when a field's declared wire type does not
	// match the handler registered for its field id.
	ErrInvalidType = errors.New("metadata: field type does not match handler")
	// ErrInvalidValue is returned when a decoded value violates a semantic
	// rule the wire format itself does not enforce (a negative count, an
	// unbalanced schema child count).
	ErrInvalidValue = errors.New("metadata: invalid value")
)

// fieldHandler decodes one struct field's content (the type tag has already
// been read) and returns the number of bytes it consumed.
type fieldHandler func(a *arena.Arena, typ format.ThriftType, buffer []byte) (n int, err error)

// Parse decodes a Thrift Compact FileMetaData struct from buffer into a
// Metadata tree. Variable-length payloads are copied through a, which the
// caller owns; on failure a is left exactly as it was (Parse reverts it to
// the cursor it had on entry before returning the error).
//
// Grounded on parquet.parse.c's parquet_parse_footer and its per-field
// handler factories.
func Parse(a *arena.Arena, buffer []byte) (*Metadata, error) {
	m := newMetadata()
	snap := a.Save()

	fields := make([]fieldHandler, 7)
	fields[1] = positiveI32Field(&m.Version)
	fields[2] = schemaListField(&m.Schemas)
	fields[3] = positiveI64Field(&m.NumRows)
	fields[4] = rowGroupListField(&m.RowGroups)
	fields[5] = ignoredField
	fields[6] = stringField(&m.CreatedBy)

	if _, err := readStructContent(a, fields, buffer); err != nil {
		if revertErr := a.Revert(snap); revertErr != nil {
			return nil, fmt.Errorf("%w (revert failed: %v)", err, revertErr)
		}
		return nil, err
	}
	return m, nil
}

// readStructContent loops reading struct field headers until STOP,
// dispatching each field to fields[field_id] (ignoredField if unregistered
// or out of range). Field id 0 is reserved and never dispatched to, matching
// the wire format (STOP is field type 0 at field delta 0).
func readStructContent(a *arena.Arena, fields []fieldHandler, buffer []byte) (n int, err error) {
	var fieldID int32
	for {
		hdr, hn, err := thriftproto.ReadStructHeader(fieldID, buffer)
		if err != nil {
			return 0, err
		}
		n += hn
		buffer = buffer[hn:]
		if hdr.Type == format.ThriftStop {
			return n, nil
		}
		fieldID = hdr.FieldID

		handler := ignoredField
		if int(fieldID) < len(fields) && fields[fieldID] != nil {
			handler = fields[fieldID]
		}

		fn, err := handler(a, hdr.Type, buffer)
		if err != nil {
			return 0, err
		}
		n += fn
		buffer = buffer[fn:]
	}
}

func ignoredField(_ *arena.Arena, typ format.ThriftType, buffer []byte) (int, error) {
	return thriftproto.SkipValue(typ, buffer)
}

func positiveI32Field(dst *int32) fieldHandler {
	return func(_ *arena.Arena, typ format.ThriftType, buffer []byte) (int, error) {
		if typ != format.ThriftI32 {
			return 0, ErrInvalidType
		}
		v, n, err := thriftproto.ReadI32(buffer)
		if err != nil {
			return 0, err
		}
		if v < 0 {
			return 0, ErrInvalidValue
		}
		*dst = v
		return n, nil
	}
}

func positiveI64Field(dst *int64) fieldHandler {
	return func(_ *arena.Arena, typ format.ThriftType, buffer []byte) (int, error) {
		if typ != format.ThriftI64 {
			return 0, ErrInvalidType
		}
		v, n, err := thriftproto.ReadI64(buffer)
		if err != nil {
			return 0, err
		}
		if v < 0 {
			return 0, ErrInvalidValue
		}
		*dst = v
		return n, nil
	}
}

// stringField allocates size+1 bytes from the arena, copies the binary
// payload plus a NUL terminator, and assigns a Go string view over it. On
// any downstream failure the arena is reverted to its pre-allocation
// cursor, per the parser's all-or-nothing field semantics.
func stringField(dst **string) fieldHandler {
	return func(a *arena.Arena, typ format.ThriftType, buffer []byte) (int, error) {
		if typ != format.ThriftBinary {
			return 0, ErrInvalidType
		}
		size, hn, err := thriftproto.ReadBinaryHeader(buffer)
		if err != nil {
			return 0, err
		}
		rest := buffer[hn:]

		snap := a.Save()
		scratch, err := a.Acquire(int(size) + 1)
		if err != nil {
			return 0, err
		}
		cn, err := thriftproto.ReadBinaryContent(scratch, size, rest)
		if err != nil {
			if revertErr := a.Revert(snap); revertErr != nil {
				return 0, fmt.Errorf("%w (revert failed: %v)", err, revertErr)
			}
			return 0, err
		}

		s := unsafecast.BytesToString(scratch[:size])
		*dst = &s
		return hn + cn, nil
	}
}

// listField reads a list header and invokes element for each entry; element
// itself collects the decoded results. On any element failure the arena is
// reverted to the pre-list cursor.
func listField(a *arena.Arena, typ format.ThriftType, buffer []byte, element func(buffer []byte) (int, error)) (int, error) {
	if typ != format.ThriftList {
		return 0, ErrInvalidType
	}
	hdr, hn, err := thriftproto.ReadListHeader(buffer)
	if err != nil {
		return 0, err
	}
	n := hn
	rest := buffer[hn:]

	snap := a.Save()
	for i := int32(0); i < hdr.Size; i++ {
		en, err := element(rest)
		if err != nil {
			if revertErr := a.Revert(snap); revertErr != nil {
				return 0, fmt.Errorf("%w (revert failed: %v)", err, revertErr)
			}
			return 0, err
		}
		n += en
		rest = rest[en:]
	}
	return n, nil
}

func stringListField(dst *[]string) fieldHandler {
	return func(a *arena.Arena, typ format.ThriftType, buffer []byte) (int, error) {
		var out []string
		n, err := listField(a, typ, buffer, func(buffer []byte) (int, error) {
			size, hn, err := thriftproto.ReadBinaryHeader(buffer)
			if err != nil {
				return 0, err
			}
			rest := buffer[hn:]
			scratch, err := a.Acquire(int(size) + 1)
			if err != nil {
				return 0, err
			}
			cn, err := thriftproto.ReadBinaryContent(scratch, size, rest)
			if err != nil {
				return 0, err
			}
			out = append(out, string(scratch[:size]))
			return hn + cn, nil
		})
		if err != nil {
			return 0, err
		}
		*dst = out
		return n, nil
	}
}

func i32EnumListField[T ~int32](dst *[]T) fieldHandler {
	return func(a *arena.Arena, typ format.ThriftType, buffer []byte) (int, error) {
		var out []T
		n, err := listField(a, typ, buffer, func(buffer []byte) (int, error) {
			if len(buffer) == 0 {
				return 0, thriftproto.ErrBufferOverflow
			}
			// list elements carry no per-item type tag; the list header's
			// type applies uniformly, and this helper is only ever wired
			// to I32 element lists (parquet's `encodings`).
			v, n, err := thriftproto.ReadI32(buffer)
			if err != nil {
				return 0, err
			}
			if v < 0 {
				return 0, ErrInvalidValue
			}
			out = append(out, T(v))
			return n, nil
		})
		if err != nil {
			return 0, err
		}
		*dst = out
		return n, nil
	}
}

func schemaListField(dst *[]*SchemaElement) fieldHandler {
	return func(a *arena.Arena, typ format.ThriftType, buffer []byte) (int, error) {
		var out []*SchemaElement
		n, err := listField(a, typ, buffer, func(buffer []byte) (int, error) {
			elem := newSchemaElement()
			en, err := parseSchemaElement(a, elem, buffer)
			if err != nil {
				return 0, err
			}
			out = append(out, elem)
			return en, nil
		})
		if err != nil {
			return 0, err
		}
		*dst = out
		return n, nil
	}
}

func parseSchemaElement(a *arena.Arena, elem *SchemaElement, buffer []byte) (int, error) {
	fields := make([]fieldHandler, 7)
	fields[1] = i32EnumField((*int32)(&elem.DataType))
	fields[2] = positiveI32Field(&elem.TypeLength)
	fields[3] = i32EnumField((*int32)(&elem.RepetitionType))
	fields[4] = stringField(&elem.Name)
	fields[5] = positiveI32Field(&elem.NumChildren)
	fields[6] = i32EnumField((*int32)(&elem.ConvertedType))
	return readStructContent(a, fields, buffer)
}

// i32EnumField reads a plain (not necessarily positive) i32 into an
// enumeration field; Parquet's *_type fields use -1 as their own "none"
// sentinel so, unlike positiveI32Field, negative values are accepted.
func i32EnumField(dst *int32) fieldHandler {
	return func(_ *arena.Arena, typ format.ThriftType, buffer []byte) (int, error) {
		if typ != format.ThriftI32 {
			return 0, ErrInvalidType
		}
		v, n, err := thriftproto.ReadI32(buffer)
		if err != nil {
			return 0, err
		}
		*dst = v
		return n, nil
	}
}

func rowGroupListField(dst *[]*RowGroup) fieldHandler {
	return func(a *arena.Arena, typ format.ThriftType, buffer []byte) (int, error) {
		var out []*RowGroup
		n, err := listField(a, typ, buffer, func(buffer []byte) (int, error) {
			rg := newRowGroup()
			en, err := parseRowGroup(a, rg, buffer)
			if err != nil {
				return 0, err
			}
			out = append(out, rg)
			return en, nil
		})
		if err != nil {
			return 0, err
		}
		*dst = out
		return n, nil
	}
}

func parseRowGroup(a *arena.Arena, rg *RowGroup, buffer []byte) (int, error) {
	fields := make([]fieldHandler, 8)
	fields[1] = columnChunkListField(&rg.Columns)
	fields[2] = positiveI64Field(&rg.TotalByteSize)
	fields[3] = positiveI64Field(&rg.NumRows)
	fields[4] = markIgnored(&rg.SortingColumnsIgnored)
	fields[5] = positiveI64Field(&rg.FileOffset)
	fields[6] = positiveI64Field(&rg.TotalCompressedSize)
	fields[7] = markIgnored(&rg.OrdinalIgnored)
	return readStructContent(a, fields, buffer)
}

// markIgnored behaves like ignoredField but also flips a flag so downstream
// consumers can tell "never present on the wire" apart from "present but
// intentionally not decoded".
func markIgnored(seen *bool) fieldHandler {
	return func(_ *arena.Arena, typ format.ThriftType, buffer []byte) (int, error) {
		*seen = true
		return thriftproto.SkipValue(typ, buffer)
	}
}

func columnChunkListField(dst *[]*ColumnChunk) fieldHandler {
	return func(a *arena.Arena, typ format.ThriftType, buffer []byte) (int, error) {
		var out []*ColumnChunk
		n, err := listField(a, typ, buffer, func(buffer []byte) (int, error) {
			cc := newColumnChunk()
			en, err := parseColumnChunk(a, cc, buffer)
			if err != nil {
				return 0, err
			}
			out = append(out, cc)
			return en, nil
		})
		if err != nil {
			return 0, err
		}
		*dst = out
		return n, nil
	}
}

func parseColumnChunk(a *arena.Arena, cc *ColumnChunk, buffer []byte) (int, error) {
	fields := make([]fieldHandler, 4)
	fields[1] = stringField(&cc.FilePath)
	fields[2] = positiveI64Field(&cc.FileOffset)
	fields[3] = columnMetaField(&cc.Meta)
	return readStructContent(a, fields, buffer)
}

func columnMetaField(dst **ColumnMeta) fieldHandler {
	return func(a *arena.Arena, typ format.ThriftType, buffer []byte) (int, error) {
		if typ != format.ThriftStruct {
			return 0, ErrInvalidType
		}
		meta := newColumnMeta()
		n, err := parseColumnMeta(a, meta, buffer)
		if err != nil {
			return 0, err
		}
		*dst = meta
		return n, nil
	}
}

func parseColumnMeta(a *arena.Arena, meta *ColumnMeta, buffer []byte) (int, error) {
	fields := make([]fieldHandler, 14)
	fields[1] = i32EnumField((*int32)(&meta.DataType))
	fields[2] = i32EnumListField(&meta.Encodings)
	fields[3] = stringListField(&meta.PathInSchema)
	fields[4] = i32EnumField((*int32)(&meta.CompressionCodec))
	fields[5] = positiveI64Field(&meta.NumValues)
	fields[6] = positiveI64Field(&meta.TotalUncompressedSize)
	fields[7] = positiveI64Field(&meta.TotalCompressedSize)
	fields[8] = ignoredField // key_value_metadata
	fields[9] = positiveI64Field(&meta.DataPageOffset)
	fields[10] = positiveI64Field(&meta.IndexPageOffset)
	fields[11] = positiveI64Field(&meta.DictionaryPageOffset)
	fields[12] = markIgnored(&meta.StatisticsIgnored)
	fields[13] = pageEncodingStatsListField(&meta.EncodingStats)
	return readStructContent(a, fields, buffer)
}

func pageEncodingStatsListField(dst *[]*PageEncodingStats) fieldHandler {
	return func(a *arena.Arena, typ format.ThriftType, buffer []byte) (int, error) {
		var out []*PageEncodingStats
		n, err := listField(a, typ, buffer, func(buffer []byte) (int, error) {
			stats := newPageEncodingStats()
			en, err := parsePageEncodingStats(a, stats, buffer)
			if err != nil {
				return 0, err
			}
			out = append(out, stats)
			return en, nil
		})
		if err != nil {
			return 0, err
		}
		*dst = out
		return n, nil
	}
}

func parsePageEncodingStats(a *arena.Arena, stats *PageEncodingStats, buffer []byte) (int, error) {
	fields := make([]fieldHandler, 4)
	fields[1] = i32EnumField((*int32)(&stats.PageType))
	fields[2] = i32EnumField((*int32)(&stats.Encoding))
	fields[3] = positiveI32Field(&stats.Count)
	return readStructContent(a, fields, buffer)
}
