package resp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOrder(t *testing.T) {
	kinds := []Kind{
		KindSimpleString, KindSimpleError, KindInteger, KindBulkString,
		KindNull, KindArray, KindBoolean, KindDouble, KindMap, KindSet,
	}
	for i := 1; i < len(kinds); i++ {
		assert.Less(t, kinds[i-1], kinds[i])
	}
}

func TestNewDoubleRejectsNaN(t *testing.T) {
	_, err := NewDouble(nan())
	require.Error(t, err)
	var ce *CodecError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeInvalidArgument, ce.Code)
}

func TestNewDoubleAcceptsInfinity(t *testing.T) {
	pos, err := NewDouble(inf(1))
	require.NoError(t, err)
	assert.Equal(t, inf(1), pos.Float())

	neg, err := NewDouble(inf(-1))
	require.NoError(t, err)
	assert.Equal(t, inf(-1), neg.Float())
}

func TestBulkStringNullness(t *testing.T) {
	null := NewNullBulkString()
	_, ok := null.Bytes()
	assert.False(t, ok)
	assert.True(t, null.IsNullBulk())

	some := NewBulkStringFromString("hello")
	b, ok := some.Bytes()
	require.True(t, ok)
	assert.Equal(t, "hello", string(b))
	assert.False(t, some.IsNullBulk())
}

func TestArrayNullness(t *testing.T) {
	null := NewNullArray()
	_, ok := null.Items()
	assert.False(t, ok)
	assert.True(t, null.IsNullArray())

	some := NewArray([]Frame{NewInteger(1), NewInteger(2)})
	items, ok := some.Items()
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestCompareAcrossKinds(t *testing.T) {
	assert.Negative(t, Compare(NewSimpleString("x"), NewSimpleError("a")))
	assert.Negative(t, Compare(NewInteger(100), NewBulkStringFromString("a")))
	d, err := NewDouble(1.0)
	require.NoError(t, err)
	assert.Negative(t, Compare(NewBoolean(true), d))
}

func TestCompareIntegerIsNumeric(t *testing.T) {
	assert.Negative(t, Compare(NewInteger(9), NewInteger(10)))
	assert.Positive(t, Compare(NewInteger(10), NewInteger(9)))
	assert.Zero(t, Compare(NewInteger(-5), NewInteger(-5)))
}

func TestCompareBulkStringNullFirst(t *testing.T) {
	assert.Negative(t, Compare(NewNullBulkString(), NewBulkStringFromString("")))
}

func TestEqualTreatsMapAsUnordered(t *testing.T) {
	a := NewMap(
		MapPair{Key: NewBulkStringFromString("a"), Value: NewInteger(1)},
		MapPair{Key: NewBulkStringFromString("b"), Value: NewInteger(2)},
	)
	b := NewMap(
		MapPair{Key: NewBulkStringFromString("b"), Value: NewInteger(2)},
		MapPair{Key: NewBulkStringFromString("a"), Value: NewInteger(1)},
	)
	assert.True(t, Equal(a, b))
}

func TestEqualTreatsSetAsUnordered(t *testing.T) {
	a := NewSet(NewInteger(1), NewInteger(2), NewInteger(3))
	b := NewSet(NewInteger(3), NewInteger(2), NewInteger(1))
	assert.True(t, Equal(a, b))
}

func TestMapDuplicateKeyReplaces(t *testing.T) {
	m := NewMap(
		MapPair{Key: NewBulkStringFromString("k"), Value: NewInteger(1)},
		MapPair{Key: NewBulkStringFromString("k"), Value: NewInteger(2)},
	)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, int64(2), m.Pairs()[0].Value.Int())
}

func TestSetDeduplicates(t *testing.T) {
	s := NewSet(NewInteger(1), NewInteger(1), NewInteger(2))
	assert.Equal(t, 2, s.Len())
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func inf(sign int) float64 {
	one := 1.0
	zero := 0.0
	if sign < 0 {
		one = -1.0
	}
	return one / zero
}
