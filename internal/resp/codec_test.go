package resp

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, f Frame) {
	t.Helper()
	encoded := EncodeBytes(f)
	decoded, consumed, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), consumed)
	assert.True(t, Equal(f, *decoded), "round-trip mismatch: encoded=%q", encoded)
}

func TestRoundTripAllKinds(t *testing.T) {
	d1, err := NewDouble(3.14)
	require.NoError(t, err)
	d2, err := NewDouble(inf(1))
	require.NoError(t, err)

	cases := []Frame{
		NewSimpleString("OK"),
		NewSimpleError("ERR wrong kind"),
		NewInteger(0),
		NewInteger(42),
		NewInteger(-42),
		NewBulkStringFromString("hello world"),
		NewBulkStringFromString(""),
		NewNullBulkString(),
		NewNull(),
		NewArray([]Frame{NewInteger(1), NewBulkStringFromString("a")}),
		NewArray(nil),
		NewNullArray(),
		NewBoolean(true),
		NewBoolean(false),
		d1,
		d2,
		NewMap(
			MapPair{Key: NewBulkStringFromString("a"), Value: NewInteger(1)},
			MapPair{Key: NewBulkStringFromString("b"), Value: NewInteger(2)},
		),
		NewSet(NewInteger(1), NewInteger(2), NewInteger(3)),
	}
	for _, f := range cases {
		roundTrip(t, f)
	}
}

func TestDecodeIncompletePrefixNeverConsumes(t *testing.T) {
	full := EncodeBytes(NewArray([]Frame{
		NewBulkStringFromString("hello"),
		NewInteger(7),
	}))
	for n := 0; n < len(full); n++ {
		_, consumed, err := Decode(full[:n])
		require.ErrorIs(t, err, ErrIncomplete, "prefix length %d", n)
		assert.Zero(t, consumed)
	}
	_, consumed, err := Decode(full)
	require.NoError(t, err)
	assert.Equal(t, len(full), consumed)
}

func TestDecodeTrailingGarbageIsTolerated(t *testing.T) {
	encoded := EncodeBytes(NewSimpleString("OK"))
	buf := append(append([]byte(nil), encoded...), '*', '1', '\r', '\n')
	frame, consumed, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), consumed)
	assert.Equal(t, "OK", frame.Text())
}

func TestDecodeUnknownTypeByte(t *testing.T) {
	_, _, err := Decode([]byte("@foo\r\n"))
	require.ErrorIs(t, err, ErrInvalidFrameType)
}

func TestDecodeBulkStringNull(t *testing.T) {
	frame, consumed, err := Decode([]byte("$-1\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, consumed)
	assert.True(t, frame.IsNullBulk())
}

func TestDecodeBulkStringLengthMismatch(t *testing.T) {
	_, _, err := Decode([]byte("$2\r\nhello\r\n"))
	var ce *CodecError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeInvalidLength, ce.Code)
}

func TestDecodeArrayNull(t *testing.T) {
	frame, consumed, err := Decode([]byte("*-1\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, consumed)
	assert.True(t, frame.IsNullArray())
}

func TestDecodeNestedDepthCap(t *testing.T) {
	buf := []byte{}
	for i := 0; i < maxDecodeDepth+10; i++ {
		buf = append(buf, "*1\r\n"...)
	}
	buf = append(buf, ":1\r\n"...)
	_, _, err := Decode(buf)
	var ce *CodecError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeInvalidFrame, ce.Code)
}

func TestDecodeDoubleRejectsNaNPayload(t *testing.T) {
	_, _, err := Decode([]byte(",nan\r\n"))
	var ce *CodecError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeParseFloat, ce.Code)
}

func TestDecodeDoubleAcceptsInfinities(t *testing.T) {
	frame, _, err := Decode([]byte(",inf\r\n"))
	require.NoError(t, err)
	assert.True(t, frame.Float() > 0)
	assert.InDelta(t, inf(1), frame.Float(), 0)

	frame, _, err = Decode([]byte(",-inf\r\n"))
	require.NoError(t, err)
	assert.Equal(t, inf(-1), frame.Float())
}

// TestEndToEndScenarios pins the exact wire bytes of representative frames:
// a SET request array, an OK reply, a null bulk string, a bulk round trip,
// a map in canonical key order, booleans, and a SimpleError.
func TestEndToEndScenarios(t *testing.T) {
	t.Run("SET command as an array of bulk strings", func(t *testing.T) {
		cmd := NewArray([]Frame{
			NewBulkStringFromString("SET"),
			NewBulkStringFromString("key"),
			NewBulkStringFromString("value"),
		})
		assert.Equal(t, "*3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$5\r\nvalue\r\n", string(EncodeBytes(cmd)))
	})

	t.Run("simple string OK reply", func(t *testing.T) {
		assert.Equal(t, "+OK\r\n", string(EncodeBytes(NewSimpleString("OK"))))
	})

	t.Run("null bulk string", func(t *testing.T) {
		assert.Equal(t, "$-1\r\n", string(EncodeBytes(NewNullBulkString())))
	})

	t.Run("ECHO reply round-trips the bulk payload", func(t *testing.T) {
		roundTrip(t, NewBulkStringFromString("hello"))
	})

	t.Run("map encodes in canonical key order", func(t *testing.T) {
		m := NewMap(
			MapPair{Key: NewBulkStringFromString("field2"), Value: NewBulkStringFromString("v2")},
			MapPair{Key: NewBulkStringFromString("field1"), Value: NewBulkStringFromString("v1")},
		)
		encoded := EncodeBytes(m)
		assert.Equal(t, "%2\r\n$6\r\nfield1\r\n$2\r\nv1\r\n$6\r\nfield2\r\n$2\r\nv2\r\n", string(encoded))
	})

	t.Run("boolean true and false", func(t *testing.T) {
		assert.Equal(t, "#t\r\n", string(EncodeBytes(NewBoolean(true))))
		assert.Equal(t, "#f\r\n", string(EncodeBytes(NewBoolean(false))))
	})

	t.Run("error text is a SimpleError", func(t *testing.T) {
		assert.Equal(t, "-WRONGTYPE value is not a hash\r\n", string(EncodeBytes(NewSimpleError("WRONGTYPE value is not a hash"))))
	})
}

func TestFormatIntegerSign(t *testing.T) {
	assert.Equal(t, "0", formatInteger(0))
	assert.Equal(t, "+1", formatInteger(1))
	assert.Equal(t, "-1", formatInteger(-1))
}

func TestFormatDoubleFixedForm(t *testing.T) {
	f, err := NewDouble(123.456)
	require.NoError(t, err)
	assert.Equal(t, ",+123.456\r\n", string(EncodeBytes(f)))

	f, err = NewDouble(-0.5)
	require.NoError(t, err)
	assert.Equal(t, ",-0.5\r\n", string(EncodeBytes(f)))
}

func TestFormatDoubleZeroUsesScientificForm(t *testing.T) {
	f, err := NewDouble(0.0)
	require.NoError(t, err)
	assert.Equal(t, ",+0e0\r\n", string(EncodeBytes(f)))

	f, err = NewDouble(math.Copysign(0, -1))
	require.NoError(t, err)
	assert.Equal(t, ",-0e0\r\n", string(EncodeBytes(f)))
}

func TestFormatDoubleScientificForm(t *testing.T) {
	f, err := NewDouble(1.23456e9)
	require.NoError(t, err)
	encoded := string(EncodeBytes(f))
	assert.Contains(t, encoded, "e")
	assert.NotContains(t, encoded, "e+0")

	decoded, _, err := Decode([]byte(encoded))
	require.NoError(t, err)
	assert.InEpsilon(t, 1.23456e9, decoded.Float(), 1e-9)
}

func TestFormatDoubleInfinities(t *testing.T) {
	pos, _ := NewDouble(inf(1))
	neg, _ := NewDouble(inf(-1))
	assert.Equal(t, ",+inf\r\n", string(EncodeBytes(pos)))
	assert.Equal(t, ",-inf\r\n", string(EncodeBytes(neg)))
}

func TestMapEncodingIsCanonicalRegardlessOfInsertionOrder(t *testing.T) {
	a := NewMap(
		MapPair{Key: NewBulkStringFromString("z"), Value: NewInteger(1)},
		MapPair{Key: NewBulkStringFromString("a"), Value: NewInteger(2)},
	)
	b := NewMap(
		MapPair{Key: NewBulkStringFromString("a"), Value: NewInteger(2)},
		MapPair{Key: NewBulkStringFromString("z"), Value: NewInteger(1)},
	)
	assert.Equal(t, EncodeBytes(a), EncodeBytes(b))
}

func TestSetEncodingIsCanonicalRegardlessOfInsertionOrder(t *testing.T) {
	a := NewSet(NewInteger(3), NewInteger(1), NewInteger(2))
	b := NewSet(NewInteger(1), NewInteger(2), NewInteger(3))
	assert.Equal(t, EncodeBytes(a), EncodeBytes(b))
}

func TestCodecErrorUnwrap(t *testing.T) {
	_, _, err := Decode([]byte(":abc\r\n"))
	require.Error(t, err)
	var ce *CodecError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeParseInt, ce.Code)
	assert.True(t, errors.Unwrap(ce) != nil)
}
