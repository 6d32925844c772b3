package domtoken

import (
	"errors"

	"github.com/mmatczuk/parquetdump/internal/metadata"
)

// ErrCapacityOverflow is fatal: the work stack needed more depth than the
// iterator was configured with. Well-formed Parquet metadata never
// approaches the default capacity; this only fires on pathological or
// corrupt trees.
var ErrCapacityOverflow = errors.New("domtoken: work stack capacity exceeded")

// errBufferTooSmall is an internal sentinel: a work item checked the token
// buffer's remaining room, found it insufficient for its worst-case emit
// count, and deferred without writing anything. Next restores the item and
// returns; it never escapes the package.
var errBufferTooSmall = errors.New("domtoken: token buffer exhausted")

const (
	// DefaultTokenCapacity and DefaultQueueCapacity match the original's
	// "typical capacity 256 each" sizing for the two bounded arrays.
	DefaultTokenCapacity = 256
	DefaultQueueCapacity = 256
)

// workItem performs one bounded unit of dumping against it, either emitting
// tokens and/or pushing successor work (returning nil), or declining to run
// because the token buffer lacks room (returning errBufferTooSmall, leaving
// it.tokens untouched).
type workItem func(it *Iterator) error

// Iterator walks a Metadata tree and yields DOM tokens in bounded batches.
// It holds no recursion: all pending work lives on an explicit LIFO stack.
type Iterator struct {
	stack    []workItem
	tokens   []Token
	tokenCap int
	queueCap int
}

// NewIterator seeds an iterator over root with the default capacities.
func NewIterator(root *metadata.Metadata) *Iterator {
	return NewIteratorSize(root, DefaultTokenCapacity, DefaultQueueCapacity)
}

// NewIteratorSize seeds an iterator with explicit token/queue capacities,
// primarily for exercising the BUFFER_TOO_SMALL/CAPACITY_OVERFLOW paths in
// tests.
func NewIteratorSize(root *metadata.Metadata, tokenCap, queueCap int) *Iterator {
	it := &Iterator{tokenCap: tokenCap, queueCap: queueCap}
	it.stack = append(it.stack, dumpMetadataItem(root))
	return it
}

func (it *Iterator) remaining() int {
	return it.tokenCap - len(it.tokens)
}

func (it *Iterator) emit(tokens ...Token) {
	it.tokens = append(it.tokens, tokens...)
}

// push enqueues a successor work item, enforcing the queue capacity.
func (it *Iterator) push(item workItem) error {
	if len(it.stack) >= it.queueCap {
		return ErrCapacityOverflow
	}
	it.stack = append(it.stack, item)
	return nil
}

// restore reinstates an item popped this call without charging it against
// the queue capacity again (it was already counted when first pushed).
func (it *Iterator) restore(item workItem) {
	it.stack = append(it.stack, item)
}

// Next drains the work stack into a bounded token batch. It returns a
// non-nil, possibly-empty slice of tokens valid until the next call, and a
// nil error on normal progress (including exhaustion, where the returned
// slice is empty and the iterator is done). Any other error is fatal.
func (it *Iterator) Next() ([]Token, error) {
	it.tokens = it.tokens[:0]
	for len(it.stack) > 0 {
		n := len(it.stack) - 1
		item := it.stack[n]
		it.stack = it.stack[:n]

		err := item(it)
		if err == nil {
			continue
		}
		if errors.Is(err, errBufferTooSmall) {
			it.restore(item)
			return it.tokens, nil
		}
		return nil, err
	}
	return it.tokens, nil
}

// Done reports whether the iterator has no further work.
func (it *Iterator) Done() bool {
	return len(it.stack) == 0
}

// fieldEntry is one struct field a dumpStruct call may emit: name identifies
// the key, present reports whether the field was actually set on the wire
// (its sentinel/None/nil check already done by the caller), and content is
// the work item that renders the value (a scalar literal, a nested struct,
// or an array), already fully formed — dumpStruct only needs to wrap it with
// the key/value preamble and closer. A field with present == false is
// skipped entirely: no KEY_START for it ever reaches the token stream,
// matching original_source's per-field `if (field != PARQUET_UNKNOWN_VALUE)`
// guards in parquet.iter.c.
type fieldEntry struct {
	name    string
	valType ValueType // type tag carried on VALUE_START (KEY_START is always TEXT)
	present bool
	content workItem // renders exactly the value body (no key wrapper)
}

// dumpStruct builds the work item that emits STRUCT_START(name), then one
// wrapped dump_field-style chunk per present entry in fields (in order), then
// STRUCT_END(name).
func dumpStruct(name string, fields []fieldEntry) workItem {
	return func(it *Iterator) error {
		if it.remaining() < 1 {
			return errBufferTooSmall
		}
		it.emit(structStart(name))

		if err := it.push(structEndItem(name)); err != nil {
			return err
		}
		for i := len(fields) - 1; i >= 0; i-- {
			f := fields[i]
			if !f.present {
				continue
			}
			if err := it.push(dumpField(f.name, f.valType, f.content)); err != nil {
				return err
			}
		}
		return nil
	}
}

func structEndItem(name string) workItem {
	return func(it *Iterator) error {
		if it.remaining() < 1 {
			return errBufferTooSmall
		}
		it.emit(structEnd(name))
		return nil
	}
}

// dumpField builds the work item for one key/value pair: the preamble
// (KEY_START, LITERAL(name), KEY_END, VALUE_START) is atomic and needs 4
// slots; the value body and its VALUE_END closer run as their own,
// independently-checked work items.
func dumpField(name string, valType ValueType, content workItem) workItem {
	return func(it *Iterator) error {
		if it.remaining() < 4 {
			return errBufferTooSmall
		}
		it.emit(keyStart(TypeText), literalText(name), keyEnd(), valueStart(valType))

		if err := it.push(valueEndItem()); err != nil {
			return err
		}
		if err := it.push(content); err != nil {
			return err
		}
		return nil
	}
}

func valueEndItem() workItem {
	return func(it *Iterator) error {
		if it.remaining() < 1 {
			return errBufferTooSmall
		}
		it.emit(valueEnd())
		return nil
	}
}

// dumpArray builds the VALUE body of an array field: ARRAY_START, an
// index-cursor chain over length elements (one element at a time, so queue
// depth never grows with array length), and ARRAY_END. Callers wrap the
// result in a fieldEntry (or dumpField directly) to attach the key.
func dumpArray(length int, element func(i int) workItem) workItem {
	return func(it *Iterator) error {
		if it.remaining() < 1 {
			return errBufferTooSmall
		}
		it.emit(arrayStart())
		if err := it.push(arrayEndItem()); err != nil {
			return err
		}
		if err := it.push(dumpIndex(0, length, element)); err != nil {
			return err
		}
		return nil
	}
}

func arrayEndItem() workItem {
	return func(it *Iterator) error {
		if it.remaining() < 1 {
			return errBufferTooSmall
		}
		it.emit(arrayEnd())
		return nil
	}
}

// dumpIndex is the cursor over one array: it processes index i and, unless
// the array is exhausted, chains to i+1. Each visit emits INDEX_START,
// pushes (in pop order) the element's own content, an INDEX_END closer, and
// the next cursor step.
func dumpIndex(i, length int, element func(i int) workItem) workItem {
	return func(it *Iterator) error {
		if i >= length {
			return nil
		}
		if it.remaining() < 1 {
			return errBufferTooSmall
		}
		it.emit(indexStart(int32(i)))

		if err := it.push(dumpIndex(i+1, length, element)); err != nil {
			return err
		}
		if err := it.push(indexEndItem()); err != nil {
			return err
		}
		if err := it.push(element(i)); err != nil {
			return err
		}
		return nil
	}
}

func indexEndItem() workItem {
	return func(it *Iterator) error {
		if it.remaining() < 1 {
			return errBufferTooSmall
		}
		it.emit(indexEnd())
		return nil
	}
}

// literalItem is the content work item for any scalar (non-container)
// field or array element: it emits exactly one LITERAL token.
func literalItem(tok Token) workItem {
	return func(it *Iterator) error {
		if it.remaining() < 1 {
			return errBufferTooSmall
		}
		it.emit(tok)
		return nil
	}
}
