// Package resp implements the RESP (REdis Serialization Protocol) wire
// format: a tagged frame tree, a deterministic encoder, and a streaming
// decoder that never consumes bytes it cannot fully account for.
package resp

import (
	"bytes"
	"math"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies the variant a Frame holds. The ordinal values fix the
// total order used when Map and Set frames sort their contents: any frame
// of a lower Kind sorts before any frame of a higher Kind, regardless of
// payload.
type Kind int

const (
	KindSimpleString Kind = iota
	KindSimpleError
	KindInteger
	KindBulkString
	KindNull
	KindArray
	KindBoolean
	KindDouble
	KindMap
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindSimpleString:
		return "SimpleString"
	case KindSimpleError:
		return "SimpleError"
	case KindInteger:
		return "Integer"
	case KindBulkString:
		return "BulkString"
	case KindNull:
		return "Null"
	case KindArray:
		return "Array"
	case KindBoolean:
		return "Boolean"
	case KindDouble:
		return "Double"
	case KindMap:
		return "Map"
	case KindSet:
		return "Set"
	default:
		return "Unknown"
	}
}

// MapPair is one key/value entry of a Map frame.
type MapPair struct {
	Key   Frame
	Value Frame
}

// Frame is a single RESP value, represented as a tagged union rather than
// an interface hierarchy: dispatch on Kind is a plain switch, not a virtual
// call, which keeps the codec's hot path allocation-free beyond the bulk
// payload itself.
type Frame struct {
	Kind Kind

	text string // SimpleString / SimpleError payload

	integer int64 // Integer payload

	bulk     []byte // BulkString payload
	bulkNull bool   // true for BulkString(None), i.e. "$-1\r\n"

	array     []Frame
	arrayNull bool // true for Array(None), i.e. "*-1\r\n"

	boolean bool

	double float64

	// mapv/setv are keyed by the canonical wire encoding of the contained
	// key/member, since Frame itself embeds slices and is not a valid Go
	// map key. Encode-time iteration still re-sorts by Compare, because
	// insertion order is not the canonical order.
	mapv *orderedmap.OrderedMap[string, MapPair]
	setv *orderedmap.OrderedMap[string, Frame]
}

// NewSimpleString builds a SimpleString frame.
func NewSimpleString(s string) Frame {
	return Frame{Kind: KindSimpleString, text: s}
}

// NewSimpleError builds a SimpleError frame.
func NewSimpleError(s string) Frame {
	return Frame{Kind: KindSimpleError, text: s}
}

// NewInteger builds an Integer frame.
func NewInteger(i int64) Frame {
	return Frame{Kind: KindInteger, integer: i}
}

// NewBulkString builds a non-null BulkString frame. b is retained, not
// copied; callers should not mutate it afterward.
func NewBulkString(b []byte) Frame {
	return Frame{Kind: KindBulkString, bulk: b}
}

// NewBulkStringFromString is a convenience wrapper for text payloads.
func NewBulkStringFromString(s string) Frame {
	return NewBulkString([]byte(s))
}

// NewNullBulkString builds the legacy RESP2 null bulk string ("$-1\r\n").
func NewNullBulkString() Frame {
	return Frame{Kind: KindBulkString, bulkNull: true}
}

// NewNull builds the RESP3 null ("_\r\n").
func NewNull() Frame {
	return Frame{Kind: KindNull}
}

// NewArray builds a non-null Array frame. items is retained, not copied.
func NewArray(items []Frame) Frame {
	return Frame{Kind: KindArray, array: items}
}

// NewNullArray builds the legacy RESP2 null array ("*-1\r\n").
func NewNullArray() Frame {
	return Frame{Kind: KindArray, arrayNull: true}
}

// NewBoolean builds a Boolean frame.
func NewBoolean(b bool) Frame {
	return Frame{Kind: KindBoolean, boolean: b}
}

// NewDouble builds a Double frame. NaN is rejected; +/-Inf is accepted.
func NewDouble(f float64) (Frame, error) {
	if math.IsNaN(f) {
		return Frame{}, NewInvalidArgumentError("double frame cannot be NaN")
	}
	return Frame{Kind: KindDouble, double: f}, nil
}

// Text returns the payload of a SimpleString or SimpleError frame.
func (f Frame) Text() string { return f.text }

// Int returns the payload of an Integer frame.
func (f Frame) Int() int64 { return f.integer }

// Bool returns the payload of a Boolean frame.
func (f Frame) Bool() bool { return f.boolean }

// Float returns the payload of a Double frame.
func (f Frame) Float() float64 { return f.double }

// Bytes returns a BulkString's payload and whether it is non-null.
func (f Frame) Bytes() ([]byte, bool) {
	if f.Kind != KindBulkString || f.bulkNull {
		return nil, false
	}
	return f.bulk, true
}

// IsNullBulk reports whether f is the null bulk string.
func (f Frame) IsNullBulk() bool {
	return f.Kind == KindBulkString && f.bulkNull
}

// Items returns an Array's elements and whether it is non-null.
func (f Frame) Items() ([]Frame, bool) {
	if f.Kind != KindArray || f.arrayNull {
		return nil, false
	}
	return f.array, true
}

// IsNullArray reports whether f is the null array.
func (f Frame) IsNullArray() bool {
	return f.Kind == KindArray && f.arrayNull
}

// Len returns the number of entries in a Map or Set frame, 0 otherwise.
func (f Frame) Len() int {
	switch f.Kind {
	case KindMap:
		if f.mapv == nil {
			return 0
		}
		return f.mapv.Len()
	case KindSet:
		if f.setv == nil {
			return 0
		}
		return f.setv.Len()
	default:
		return 0
	}
}

// Compare imposes the total order required to sort Map keys and Set
// members deterministically: Kind ordinal first, then a payload-specific
// comparison within a Kind.
func Compare(a, b Frame) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}

	switch a.Kind {
	case KindSimpleString, KindSimpleError:
		return strings.Compare(a.text, b.text)

	case KindInteger:
		return compareInt64(a.integer, b.integer)

	case KindBulkString:
		if a.bulkNull != b.bulkNull {
			if a.bulkNull {
				return -1
			}
			return 1
		}
		if a.bulkNull {
			return 0
		}
		return bytes.Compare(a.bulk, b.bulk)

	case KindNull:
		return 0

	case KindArray:
		if a.arrayNull != b.arrayNull {
			if a.arrayNull {
				return -1
			}
			return 1
		}
		if a.arrayNull {
			return 0
		}
		return compareFrameSlices(a.array, b.array)

	case KindBoolean:
		switch {
		case a.boolean == b.boolean:
			return 0
		case !a.boolean:
			return -1
		default:
			return 1
		}

	case KindDouble:
		switch {
		case a.double < b.double:
			return -1
		case a.double > b.double:
			return 1
		default:
			return 0
		}

	case KindMap:
		ap, bp := a.Pairs(), b.Pairs()
		n := minInt(len(ap), len(bp))
		for i := 0; i < n; i++ {
			if c := Compare(ap[i].Key, bp[i].Key); c != 0 {
				return c
			}
			if c := Compare(ap[i].Value, bp[i].Value); c != 0 {
				return c
			}
		}
		return compareInt(len(ap), len(bp))

	case KindSet:
		am, bm := a.Members(), b.Members()
		return compareFrameSlices(am, bm)

	default:
		return 0
	}
}

// Equal reports whether a and b carry the same value, treating Map and Set
// contents as unordered (two Maps/Sets built from the same pairs/members in
// different insertion order compare equal).
func Equal(a, b Frame) bool {
	return Compare(a, b) == 0
}

func compareFrameSlices(a, b []Frame) int {
	n := minInt(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareInt(len(a), len(b))
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
