package resp

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func newOrderedFrameMap() *orderedmap.OrderedMap[string, MapPair] {
	return orderedmap.New[string, MapPair]()
}

func mapPut(m *orderedmap.OrderedMap[string, MapPair], key, value Frame) {
	m.Set(string(EncodeBytes(key)), MapPair{Key: key, Value: value})
}

func newOrderedFrameSet() *orderedmap.OrderedMap[string, Frame] {
	return orderedmap.New[string, Frame]()
}

func setPut(s *orderedmap.OrderedMap[string, Frame], member Frame) {
	s.Set(string(EncodeBytes(member)), member)
}

// NewMap builds a Map frame from the given entries. A later pair whose key
// has the same canonical encoding as an earlier one replaces it, matching
// the decoder's "duplicate keys replace" rule.
func NewMap(pairs ...MapPair) Frame {
	m := newOrderedFrameMap()
	for _, p := range pairs {
		mapPut(m, p.Key, p.Value)
	}
	return Frame{Kind: KindMap, mapv: m}
}

// NewSet builds a Set frame from the given members, deduplicated by
// canonical encoding.
func NewSet(members ...Frame) Frame {
	s := newOrderedFrameSet()
	for _, member := range members {
		setPut(s, member)
	}
	return Frame{Kind: KindSet, setv: s}
}

// Pairs returns a Map's entries sorted into canonical frame order. Returns
// nil for non-Map frames.
func (f Frame) Pairs() []MapPair {
	if f.Kind != KindMap || f.mapv == nil {
		return nil
	}
	out := make([]MapPair, 0, f.mapv.Len())
	for pair := f.mapv.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	sort.Slice(out, func(i, j int) bool {
		return Compare(out[i].Key, out[j].Key) < 0
	})
	return out
}

// Members returns a Set's elements sorted into canonical frame order.
// Returns nil for non-Set frames.
func (f Frame) Members() []Frame {
	if f.Kind != KindSet || f.setv == nil {
		return nil
	}
	out := make([]Frame, 0, f.setv.Len())
	for pair := f.setv.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	sort.Slice(out, func(i, j int) bool {
		return Compare(out[i], out[j]) < 0
	})
	return out
}
