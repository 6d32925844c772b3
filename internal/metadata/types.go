// Package metadata parses a Parquet FileMetaData Thrift struct into a plain
// Go tree. Variable-length binary payloads (names, the created-by string)
// are copied out of the wire buffer through an arena so a failed partial
// parse can be rolled back in one call; the tree nodes that point at them
// are ordinary garbage-collected Go values; original_source keeps the whole
// tree inside the arena, but Go already gives us safe, collectible struct
// graphs, so only the copy-out step needs the arena's rollback behavior.
//
// Grounded on _examples/original_source/src/parquet.parse.h (the field
// layout and sentinels below) and parquet.parse.c (the handler factories in
// parse.go).
package metadata

import "github.com/mmatczuk/parquetdump/format"

// UnknownI32 and UnknownI64 mark a scalar field that was never set by the
// wire data, the Go analogue of original_source's PARQUET_UNKNOWN_VALUE.
const (
	UnknownI32 int32 = -1
	UnknownI64 int64 = -1
)

// SchemaElement is one flattened entry of the schema tree as Thrift encodes
// it (a pre-order walk with an explicit child count), before
// internal/schema's Materialize folds it into a schema.Node.
type SchemaElement struct {
	DataType       format.DataType
	TypeLength     int32
	RepetitionType format.RepetitionType
	Name           *string
	NumChildren    int32
	ConvertedType  format.ConvertedType
}

func newSchemaElement() *SchemaElement {
	return &SchemaElement{
		DataType:       format.DataTypeNone,
		TypeLength:     UnknownI32,
		RepetitionType: format.RepetitionNone,
		NumChildren:    UnknownI32,
		ConvertedType:  format.ConvertedTypeNone,
	}
}

// PageEncodingStats counts pages of one encoding within a column chunk.
type PageEncodingStats struct {
	PageType format.PageType
	Encoding format.Encoding
	Count    int32
}

func newPageEncodingStats() *PageEncodingStats {
	return &PageEncodingStats{
		PageType: format.PageTypeNone,
		Encoding: format.EncodingNone,
		Count:    UnknownI32,
	}
}

// ColumnMeta is the per-column-chunk metadata: physical type, encodings in
// use, compression, size and offset accounting. Statistics are intentionally
// not decoded (see [ColumnMeta.StatisticsIgnored]); original_source treats
// them as opaque too.
type ColumnMeta struct {
	DataType               format.DataType
	Encodings              []format.Encoding
	PathInSchema           []string
	CompressionCodec       format.CompressionCodec
	NumValues              int64
	TotalUncompressedSize  int64
	TotalCompressedSize    int64
	DataPageOffset         int64
	IndexPageOffset        int64
	DictionaryPageOffset   int64
	StatisticsIgnored      bool
	EncodingStats          []*PageEncodingStats
}

func newColumnMeta() *ColumnMeta {
	return &ColumnMeta{
		DataType:             format.DataTypeNone,
		CompressionCodec:     format.CompressionNone,
		NumValues:            UnknownI64,
		TotalUncompressedSize: UnknownI64,
		TotalCompressedSize:  UnknownI64,
		DataPageOffset:       UnknownI64,
		IndexPageOffset:      UnknownI64,
		DictionaryPageOffset: UnknownI64,
	}
}

// ColumnChunk locates one column's data, optionally in an external file.
type ColumnChunk struct {
	FilePath   *string
	FileOffset int64
	Meta       *ColumnMeta
}

func newColumnChunk() *ColumnChunk {
	return &ColumnChunk{FileOffset: UnknownI64}
}

// RowGroup is one horizontal partition of the table. SortingColumnsIgnored
// and OrdinalIgnored record that those Thrift fields were seen and skipped,
// matching original_source's silent "ignored" handler for them.
type RowGroup struct {
	Columns               []*ColumnChunk
	TotalByteSize         int64
	NumRows               int64
	SortingColumnsIgnored bool
	FileOffset            int64
	TotalCompressedSize   int64
	OrdinalIgnored        bool
}

func newRowGroup() *RowGroup {
	return &RowGroup{
		TotalByteSize:       UnknownI64,
		NumRows:             UnknownI64,
		FileOffset:          UnknownI64,
		TotalCompressedSize: UnknownI64,
	}
}

// Metadata is the root of a parsed Parquet footer (Thrift FileMetaData).
type Metadata struct {
	Version   int32
	Schemas   []*SchemaElement
	NumRows   int64
	RowGroups []*RowGroup
	CreatedBy *string
}

func newMetadata() *Metadata {
	return &Metadata{Version: UnknownI32, NumRows: UnknownI64}
}
