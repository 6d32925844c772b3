package domtoken

import (
	"github.com/mmatczuk/parquetdump/format"
	"github.com/mmatczuk/parquetdump/internal/metadata"
)

// dumpMetadataItem builds the root work item over a parsed footer. It is
// the only place a metadata.Metadata ever becomes work; every nested struct
// or array is reached through dumpField/dumpArray from here. Every field
// below carries its own presence check, mirroring original_source's
// per-field `if (field != PARQUET_UNKNOWN_VALUE)` guards in
// parquet.iter.c: a field whose value is still its parse-time sentinel was
// never set on the wire and must not appear in the token stream at all.
func dumpMetadataItem(m *metadata.Metadata) workItem {
	return dumpStruct("file_metadata", []fieldEntry{
		{"version", TypeI32, m.Version != metadata.UnknownI32, i32Literal(m.Version)},
		{"schema", TypeI32, len(m.Schemas) > 0, dumpSchemaElements(m.Schemas)},
		{"num_rows", TypeI64, m.NumRows != metadata.UnknownI64, i64Literal(m.NumRows)},
		{"row_groups", TypeI32, len(m.RowGroups) > 0, dumpRowGroups(m.RowGroups)},
		{"created_by", TypeText, m.CreatedBy != nil, stringLiteral(m.CreatedBy)},
	})
}

func i32Literal(v int32) workItem { return literalItem(literalI32(v)) }
func i64Literal(v int64) workItem { return literalItem(literalI64(v)) }

func stringLiteral(s *string) workItem {
	if s == nil {
		return literalItem(literalText(""))
	}
	return literalItem(literalText(*s))
}

func enumLiteralItem(name string, ok bool, raw int32) workItem {
	return literalItem(enumLiteral(name, ok, raw))
}

// ignoredLiteral is the content for a field original_source sees on the wire
// but intentionally never decodes (statistics, sorting_columns, ordinal): a
// constant marker rather than the field's actual value. Its fieldEntry's
// present bit is the field's own *Ignored flag, so the marker only surfaces
// when the wire genuinely carried the field.
func ignoredLiteral() workItem {
	return literalItem(literalText("<ignored>"))
}

func dumpSchemaElements(elements []*metadata.SchemaElement) workItem {
	return dumpArray(len(elements), func(i int) workItem {
		return dumpSchemaElement(elements[i])
	})
}

func dumpSchemaElement(e *metadata.SchemaElement) workItem {
	name, ok := e.DataType.Name()
	rep, repOK := e.RepetitionType.Name()
	conv, convOK := e.ConvertedType.Name()
	return dumpStruct("schema_element", []fieldEntry{
		{"type", TypeI32, e.DataType != format.DataTypeNone, enumLiteralItem(name, ok, int32(e.DataType))},
		{"type_length", TypeI32, e.TypeLength != metadata.UnknownI32, i32Literal(e.TypeLength)},
		{"repetition_type", TypeI32, e.RepetitionType != format.RepetitionNone, enumLiteralItem(rep, repOK, int32(e.RepetitionType))},
		{"name", TypeText, e.Name != nil, stringLiteral(e.Name)},
		{"num_children", TypeI32, e.NumChildren != metadata.UnknownI32, i32Literal(e.NumChildren)},
		{"converted_type", TypeI32, e.ConvertedType != format.ConvertedTypeNone, enumLiteralItem(conv, convOK, int32(e.ConvertedType))},
	})
}

func dumpRowGroups(groups []*metadata.RowGroup) workItem {
	return dumpArray(len(groups), func(i int) workItem {
		return dumpRowGroup(groups[i])
	})
}

func dumpRowGroup(g *metadata.RowGroup) workItem {
	return dumpStruct("row_group", []fieldEntry{
		{"columns", TypeI32, len(g.Columns) > 0, dumpColumnChunks(g.Columns)},
		{"total_byte_size", TypeI64, g.TotalByteSize != metadata.UnknownI64, i64Literal(g.TotalByteSize)},
		{"num_rows", TypeI64, g.NumRows != metadata.UnknownI64, i64Literal(g.NumRows)},
		{"sorting_columns", TypeText, g.SortingColumnsIgnored, ignoredLiteral()},
		{"file_offset", TypeI64, g.FileOffset != metadata.UnknownI64, i64Literal(g.FileOffset)},
		{"total_compressed_size", TypeI64, g.TotalCompressedSize != metadata.UnknownI64, i64Literal(g.TotalCompressedSize)},
		{"ordinal", TypeText, g.OrdinalIgnored, ignoredLiteral()},
	})
}

func dumpColumnChunks(chunks []*metadata.ColumnChunk) workItem {
	return dumpArray(len(chunks), func(i int) workItem {
		return dumpColumnChunk(chunks[i])
	})
}

func dumpColumnChunk(c *metadata.ColumnChunk) workItem {
	return dumpStruct("column_chunk", []fieldEntry{
		{"file_path", TypeText, c.FilePath != nil, stringLiteral(c.FilePath)},
		{"file_offset", TypeI64, c.FileOffset != metadata.UnknownI64, i64Literal(c.FileOffset)},
		{"meta_data", TypeI32, c.Meta != nil, dumpColumnMeta(c.Meta)},
	})
}

func dumpColumnMeta(m *metadata.ColumnMeta) workItem {
	if m == nil {
		return dumpStruct("column_meta_data", nil)
	}
	name, ok := m.DataType.Name()
	codec, codecOK := m.CompressionCodec.Name()
	return dumpStruct("column_meta_data", []fieldEntry{
		{"type", TypeI32, m.DataType != format.DataTypeNone, enumLiteralItem(name, ok, int32(m.DataType))},
		{"encodings", TypeI32, len(m.Encodings) > 0, dumpEncodings(m.Encodings)},
		{"path_in_schema", TypeI32, len(m.PathInSchema) > 0, dumpPath(m.PathInSchema)},
		{"codec", TypeI32, m.CompressionCodec != format.CompressionNone, enumLiteralItem(codec, codecOK, int32(m.CompressionCodec))},
		{"num_values", TypeI64, m.NumValues != metadata.UnknownI64, i64Literal(m.NumValues)},
		{"total_uncompressed_size", TypeI64, m.TotalUncompressedSize != metadata.UnknownI64, i64Literal(m.TotalUncompressedSize)},
		{"total_compressed_size", TypeI64, m.TotalCompressedSize != metadata.UnknownI64, i64Literal(m.TotalCompressedSize)},
		{"data_page_offset", TypeI64, m.DataPageOffset != metadata.UnknownI64, i64Literal(m.DataPageOffset)},
		{"index_page_offset", TypeI64, m.IndexPageOffset != metadata.UnknownI64, i64Literal(m.IndexPageOffset)},
		{"dictionary_page_offset", TypeI64, m.DictionaryPageOffset != metadata.UnknownI64, i64Literal(m.DictionaryPageOffset)},
		{"statistics", TypeText, m.StatisticsIgnored, ignoredLiteral()},
		{"encoding_stats", TypeI32, len(m.EncodingStats) > 0, dumpPageEncodingStatsList(m.EncodingStats)},
	})
}

func dumpEncodings(encodings []format.Encoding) workItem {
	return dumpArray(len(encodings), func(i int) workItem {
		name, ok := encodings[i].Name()
		return enumLiteralItem(name, ok, int32(encodings[i]))
	})
}

func dumpPath(path []string) workItem {
	return dumpArray(len(path), func(i int) workItem {
		s := path[i]
		return stringLiteral(&s)
	})
}

func dumpPageEncodingStatsList(stats []*metadata.PageEncodingStats) workItem {
	return dumpArray(len(stats), func(i int) workItem {
		return dumpPageEncodingStats(stats[i])
	})
}

func dumpPageEncodingStats(s *metadata.PageEncodingStats) workItem {
	pageName, pageOK := s.PageType.Name()
	encName, encOK := s.Encoding.Name()
	return dumpStruct("page_encoding_stats", []fieldEntry{
		{"page_type", TypeI32, s.PageType != format.PageTypeNone, enumLiteralItem(pageName, pageOK, int32(s.PageType))},
		{"encoding", TypeI32, s.Encoding != format.EncodingNone, enumLiteralItem(encName, encOK, int32(s.Encoding))},
		{"count", TypeI32, s.Count != metadata.UnknownI32, i32Literal(s.Count)},
	})
}
