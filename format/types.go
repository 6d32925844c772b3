// Package format defines the wire-level type tags the footer inspector
// recognizes: the Thrift Compact Protocol's own type tags, and the Parquet
// enumerations carried inside FileMetaData (data types, converted types,
// encodings, compression codecs, page types, repetition types).
//
// Grounded on _examples/original_source/src/thrift.h (the Thrift type tags)
// and parquet.parse.h / parquet.iter.c (the Parquet enumerations and their
// display names).
package format

// ThriftType is a Thrift Compact Protocol field type tag.
type ThriftType uint8

const (
	ThriftStop      ThriftType = 0
	ThriftBoolTrue  ThriftType = 1
	ThriftBoolFalse ThriftType = 2
	ThriftI8        ThriftType = 3
	ThriftI16       ThriftType = 4
	ThriftI32       ThriftType = 5
	ThriftI64       ThriftType = 6
	ThriftDouble    ThriftType = 7
	ThriftBinary    ThriftType = 8
	ThriftList      ThriftType = 9
	ThriftSet       ThriftType = 10
	ThriftMap       ThriftType = 11
	ThriftStruct    ThriftType = 12
	ThriftUUID      ThriftType = 13
)

func (t ThriftType) String() string {
	switch t {
	case ThriftStop:
		return "STOP"
	case ThriftBoolTrue:
		return "BOOL_TRUE"
	case ThriftBoolFalse:
		return "BOOL_FALSE"
	case ThriftI8:
		return "I8"
	case ThriftI16:
		return "I16"
	case ThriftI32:
		return "I32"
	case ThriftI64:
		return "I64"
	case ThriftDouble:
		return "DOUBLE"
	case ThriftBinary:
		return "BINARY"
	case ThriftList:
		return "LIST"
	case ThriftSet:
		return "SET"
	case ThriftMap:
		return "MAP"
	case ThriftStruct:
		return "STRUCT"
	case ThriftUUID:
		return "UUID"
	default:
		return "UNKNOWN"
	}
}

// DataType is the Parquet physical type of a leaf schema element (the
// Thrift FileMetaData.schema[i].type field). None (-1) means the field
// was absent, which only happens for internal (non-leaf) schema nodes.
type DataType int32

const (
	DataTypeNone           DataType = -1
	DataTypeBoolean        DataType = 0
	DataTypeInt32          DataType = 1
	DataTypeInt64          DataType = 2
	DataTypeInt96          DataType = 3
	DataTypeFloat          DataType = 4
	DataTypeDouble         DataType = 5
	DataTypeByteArray      DataType = 6
	DataTypeByteArrayFixed DataType = 7
)

var dataTypeNames = map[DataType]string{
	DataTypeBoolean:        "BOOLEAN",
	DataTypeInt32:          "INT32",
	DataTypeInt64:          "INT64",
	DataTypeInt96:          "INT96",
	DataTypeFloat:          "FLOAT",
	DataTypeDouble:         "DOUBLE",
	DataTypeByteArray:      "BYTE_ARRAY",
	DataTypeByteArrayFixed: "FIXED_LEN_BYTE_ARRAY",
}

// Name returns the display name for a known value, and reports whether the
// value was recognized. Unrecognized or None values report ok=false so the
// DOM token iterator can fall back to emitting the raw integer.
func (t DataType) Name() (string, bool) {
	name, ok := dataTypeNames[t]
	return name, ok
}

// RepetitionType is a schema element's repetition (required/optional/repeated).
type RepetitionType int32

const (
	RepetitionNone     RepetitionType = -1
	RepetitionRequired RepetitionType = 0
	RepetitionOptional RepetitionType = 1
	RepetitionRepeated RepetitionType = 2
)

var repetitionTypeNames = map[RepetitionType]string{
	RepetitionRequired: "REQUIRED",
	RepetitionOptional: "OPTIONAL",
	RepetitionRepeated: "REPEATED",
}

func (t RepetitionType) Name() (string, bool) {
	name, ok := repetitionTypeNames[t]
	return name, ok
}

// ConvertedType is the legacy logical-type annotation on a schema element.
type ConvertedType int32

const (
	ConvertedTypeNone             ConvertedType = -1
	ConvertedTypeUTF8             ConvertedType = 0
	ConvertedTypeMap              ConvertedType = 1
	ConvertedTypeMapKeyValue      ConvertedType = 2
	ConvertedTypeList             ConvertedType = 3
	ConvertedTypeEnum             ConvertedType = 4
	ConvertedTypeDecimal          ConvertedType = 5
	ConvertedTypeDate             ConvertedType = 6
	ConvertedTypeTimeMillis       ConvertedType = 7
	ConvertedTypeTimeMicros       ConvertedType = 8
	ConvertedTypeTimestampMillis  ConvertedType = 9
	ConvertedTypeTimestampMicros  ConvertedType = 10
	ConvertedTypeUint8            ConvertedType = 11
	ConvertedTypeUint16           ConvertedType = 12
	ConvertedTypeUint32           ConvertedType = 13
	ConvertedTypeUint64           ConvertedType = 14
	ConvertedTypeInt8             ConvertedType = 15
	ConvertedTypeInt16            ConvertedType = 16
	ConvertedTypeInt32            ConvertedType = 17
	ConvertedTypeInt64            ConvertedType = 18
	ConvertedTypeJSON             ConvertedType = 19
	ConvertedTypeBSON             ConvertedType = 20
	ConvertedTypeInterval         ConvertedType = 21
)

var convertedTypeNames = map[ConvertedType]string{
	ConvertedTypeUTF8:            "UTF8",
	ConvertedTypeMap:             "MAP",
	ConvertedTypeMapKeyValue:     "MAP_KEY_VALUE",
	ConvertedTypeList:            "LIST",
	ConvertedTypeEnum:            "ENUM",
	ConvertedTypeDecimal:         "DECIMAL",
	ConvertedTypeDate:            "DATE",
	ConvertedTypeTimeMillis:      "TIME_MILLIS",
	ConvertedTypeTimeMicros:      "TIME_MICROS",
	ConvertedTypeTimestampMillis: "TIMESTAMP_MILLIS",
	ConvertedTypeTimestampMicros: "TIMESTAMP_MICROS",
	ConvertedTypeUint8:           "UINT8",
	ConvertedTypeUint16:          "UINT16",
	ConvertedTypeUint32:          "UINT32",
	ConvertedTypeUint64:          "UINT64",
	ConvertedTypeInt8:            "INT8",
	ConvertedTypeInt16:           "INT16",
	ConvertedTypeInt32:           "INT32",
	ConvertedTypeInt64:           "INT64",
	ConvertedTypeJSON:            "JSON",
	ConvertedTypeBSON:            "BSON",
	ConvertedTypeInterval:        "INTERVAL",
}

func (t ConvertedType) Name() (string, bool) {
	name, ok := convertedTypeNames[t]
	return name, ok
}

// Encoding identifies a data/dictionary page encoding.
type Encoding int32

const (
	EncodingNone                Encoding = -1
	EncodingPlain                Encoding = 0
	EncodingGroupVarInt           Encoding = 1
	EncodingPlainDictionary       Encoding = 2
	EncodingRLE                   Encoding = 3
	EncodingBitPacked             Encoding = 4
	EncodingDeltaBinaryPacked     Encoding = 5
	EncodingDeltaLengthByteArray  Encoding = 6
	EncodingDeltaByteArray        Encoding = 7
	EncodingRLEDictionary         Encoding = 8
	EncodingByteStreamSplit       Encoding = 9
)

var encodingNames = map[Encoding]string{
	EncodingPlain:                "PLAIN",
	EncodingGroupVarInt:          "GROUP_VAR_INT",
	EncodingPlainDictionary:      "PLAIN_DICTIONARY",
	EncodingRLE:                  "RLE",
	EncodingBitPacked:            "BIT_PACKED",
	EncodingDeltaBinaryPacked:    "DELTA_BINARY_PACKED",
	EncodingDeltaLengthByteArray: "DELTA_LENGTH_BYTE_ARRAY",
	EncodingDeltaByteArray:       "DELTA_BYTE_ARRAY",
	EncodingRLEDictionary:        "RLE_DICTIONARY",
	EncodingByteStreamSplit:      "BYTE_STREAM_SPLIT",
}

func (e Encoding) Name() (string, bool) {
	name, ok := encodingNames[e]
	return name, ok
}

// CompressionCodec identifies a column chunk's compression codec.
type CompressionCodec int32

const (
	CompressionNone         CompressionCodec = -1
	CompressionUncompressed CompressionCodec = 0
	CompressionSnappy       CompressionCodec = 1
	CompressionGzip         CompressionCodec = 2
	CompressionLZO          CompressionCodec = 3
	CompressionBrotli       CompressionCodec = 4
	CompressionLZ4          CompressionCodec = 5
	CompressionZstd         CompressionCodec = 6
	CompressionLZ4Raw       CompressionCodec = 7
)

var compressionNames = map[CompressionCodec]string{
	CompressionUncompressed: "UNCOMPRESSED",
	CompressionSnappy:       "SNAPPY",
	CompressionGzip:         "GZIP",
	CompressionLZO:          "LZO",
	CompressionBrotli:       "BROTLI",
	CompressionLZ4:          "LZ4",
	CompressionZstd:         "ZSTD",
	CompressionLZ4Raw:       "LZ4_RAW",
}

func (c CompressionCodec) Name() (string, bool) {
	name, ok := compressionNames[c]
	return name, ok
}

// PageType identifies the kind of a data/index/dictionary page.
type PageType int32

const (
	PageTypeNone            PageType = -1
	PageTypeDataPage        PageType = 0
	PageTypeIndexPage       PageType = 1
	PageTypeDictionaryPage  PageType = 2
	PageTypeDataPageV2      PageType = 3
)

var pageTypeNames = map[PageType]string{
	PageTypeDataPage:       "DATA_PAGE",
	PageTypeIndexPage:      "INDEX_PAGE",
	PageTypeDictionaryPage: "DICTIONARY_PAGE",
	PageTypeDataPageV2:     "DATA_PAGE_V2",
}

func (p PageType) Name() (string, bool) {
	name, ok := pageTypeNames[p]
	return name, ok
}
