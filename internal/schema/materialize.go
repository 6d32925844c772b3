// Package schema folds the flat, depth-first schema element list a Parquet
// footer carries into a tree.
//
// Grounded on _examples/original_source/src/parquet.schema.c
// (parquet_open_schema's depth-queue/depth-children work stack), adapted
// from index-into-struct-array to a plain Go tree of pointers.
package schema

import (
	"errors"

	"github.com/mmatczuk/parquetdump/format"
	"github.com/mmatczuk/parquetdump/internal/metadata"
)

// ErrInvalidValue is returned when the flat element sequence's declared
// child counts do not add up: a frame needs more children than elements
// remain, elements remain with no open frame to slot into, or open frames
// remain once the sequence is exhausted.
var ErrInvalidValue = errors.New("schema: child counts do not balance")

// maxDepth bounds the work stack the way original_source bounds its
// depth_queue/depth_children arrays; well-formed Parquet schemas never
// nest this deep.
const maxDepth = 10

// Node is one materialized schema tree element.
type Node struct {
	Name           string
	RepetitionType format.RepetitionType
	DataType       format.DataType
	TypeLength     int32
	ConvertedType  format.ConvertedType
	Children       []*Node
}

type frame struct {
	parent    *Node
	remaining int32
}

// Materialize folds a DFS-ordered flat element list into its tree, with
// elements[0] becoming the root. An empty list is itself invalid: every
// Parquet footer has at least a root schema element.
func Materialize(elements []*metadata.SchemaElement) (*Node, error) {
	if len(elements) == 0 {
		return nil, ErrInvalidValue
	}

	stack := make([]frame, 0, maxDepth)
	var root *Node

	for i, elem := range elements {
		node := &Node{
			RepetitionType: elem.RepetitionType,
			DataType:       elem.DataType,
			TypeLength:     elem.TypeLength,
			ConvertedType:  elem.ConvertedType,
		}
		if elem.Name != nil {
			node.Name = *elem.Name
		}
		if elem.NumChildren > 0 {
			node.Children = make([]*Node, elem.NumChildren)
		}

		if i == 0 {
			root = node
		} else {
			if len(stack) == 0 {
				return nil, ErrInvalidValue
			}
			top := &stack[len(stack)-1]
			slot := int32(len(top.parent.Children)) - top.remaining
			top.parent.Children[slot] = node
			top.remaining--
		}

		if elem.NumChildren > 0 {
			if len(stack) >= maxDepth {
				return nil, ErrInvalidValue
			}
			stack = append(stack, frame{parent: node, remaining: elem.NumChildren})
		}

		for len(stack) > 0 && stack[len(stack)-1].remaining == 0 {
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) != 0 {
		return nil, ErrInvalidValue
	}
	return root, nil
}
