package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/respkv/internal/resp"
	"github.com/marmos91/respkv/internal/store"
)

func TestParseCommandUnknownReturnsNilNotError(t *testing.T) {
	cmd, err := ParseCommand("NOPE", nil)
	require.NoError(t, err)
	assert.Nil(t, cmd)
}

func TestParseCommandIsCaseInsensitive(t *testing.T) {
	for _, name := range []string{"get", "GET", "GeT"} {
		cmd, err := ParseCommand(name, []resp.Frame{resp.NewBulkStringFromString("k")})
		require.NoError(t, err)
		require.NotNil(t, cmd)
		assert.Equal(t, "GET", cmd.Name())
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	s := store.New(4)
	ctx := context.Background()

	setCmd, err := ParseCommand("SET", []resp.Frame{
		resp.NewBulkStringFromString("hello"),
		resp.NewBulkStringFromString("world"),
	})
	require.NoError(t, err)
	assert.Equal(t, "OK", setCmd.Execute(ctx, s).Text())

	getCmd, err := ParseCommand("GET", []resp.Frame{resp.NewBulkStringFromString("hello")})
	require.NoError(t, err)
	reply := getCmd.Execute(ctx, s)
	b, ok := reply.Bytes()
	require.True(t, ok)
	assert.Equal(t, "world", string(b))
}

func TestGetMissingReturnsNull(t *testing.T) {
	s := store.New(4)
	getCmd, err := ParseCommand("GET", []resp.Frame{resp.NewBulkStringFromString("missing")})
	require.NoError(t, err)
	reply := getCmd.Execute(context.Background(), s)
	assert.Equal(t, resp.KindNull, reply.Kind)
}

func TestEchoReturnsMessageVerbatim(t *testing.T) {
	s := store.New(4)
	cmd, err := ParseCommand("ECHO", []resp.Frame{resp.NewBulkStringFromString("hello")})
	require.NoError(t, err)
	reply := cmd.Execute(context.Background(), s)
	assert.True(t, resp.Equal(resp.NewBulkStringFromString("hello"), reply))
}

func TestHSetHGetHGetAllHMGet(t *testing.T) {
	s := store.New(4)
	ctx := context.Background()

	hset, err := ParseCommand("HSET", []resp.Frame{
		resp.NewBulkStringFromString("map"),
		resp.NewBulkStringFromString("f"),
		resp.NewBulkStringFromString("v"),
	})
	require.NoError(t, err)
	assert.Equal(t, "OK", hset.Execute(ctx, s).Text())

	hget, err := ParseCommand("HGET", []resp.Frame{
		resp.NewBulkStringFromString("map"),
		resp.NewBulkStringFromString("f"),
	})
	require.NoError(t, err)
	b, ok := hget.Execute(ctx, s).Bytes()
	require.True(t, ok)
	assert.Equal(t, "v", string(b))

	hgetall, err := ParseCommand("HGETALL", []resp.Frame{resp.NewBulkStringFromString("map")})
	require.NoError(t, err)
	items, ok := hgetall.Execute(ctx, s).Items()
	require.True(t, ok)
	assert.Len(t, items, 2)

	hmget, err := ParseCommand("HMGET", []resp.Frame{
		resp.NewBulkStringFromString("map"),
		resp.NewBulkStringFromString("f"),
		resp.NewBulkStringFromString("x"),
	})
	require.NoError(t, err)
	items, ok = hmget.Execute(ctx, s).Items()
	require.True(t, ok)
	require.Len(t, items, 2)
	b, ok = items[0].Bytes()
	require.True(t, ok)
	assert.Equal(t, "v", string(b))
	assert.True(t, items[1].IsNullBulk())
}

func TestSAddSIsMember(t *testing.T) {
	s := store.New(4)
	ctx := context.Background()

	sadd, err := ParseCommand("SADD", []resp.Frame{
		resp.NewBulkStringFromString("s"),
		resp.NewBulkStringFromString("a"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), sadd.Execute(ctx, s).Int())
	assert.Equal(t, int64(0), sadd.Execute(ctx, s).Int())

	sisMemberA, err := ParseCommand("SISMEMBER", []resp.Frame{
		resp.NewBulkStringFromString("s"),
		resp.NewBulkStringFromString("a"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), sisMemberA.Execute(ctx, s).Int())

	sisMemberB, err := ParseCommand("SISMEMBER", []resp.Frame{
		resp.NewBulkStringFromString("s"),
		resp.NewBulkStringFromString("b"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), sisMemberB.Execute(ctx, s).Int())
}

func TestArityMismatchIsInvalidArgument(t *testing.T) {
	_, err := ParseCommand("GET", nil)
	require.Error(t, err)
	var ce *CommandError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeInvalidArgument, ce.Code)

	_, err = ParseCommand("HMGET", []resp.Frame{resp.NewBulkStringFromString("k")})
	require.Error(t, err)
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeInvalidArgument, ce.Code)
}

func TestNonBulkKeyIsInvalidCommand(t *testing.T) {
	_, err := ParseCommand("GET", []resp.Frame{resp.NewInteger(1)})
	require.Error(t, err)
	var ce *CommandError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeInvalidCommand, ce.Code)
}

func TestNonUTF8KeyIsFromUTF8Error(t *testing.T) {
	invalid := []byte{0xff, 0xfe, 0xfd}
	_, err := ParseCommand("GET", []resp.Frame{resp.NewBulkString(invalid)})
	require.Error(t, err)
	var ce *CommandError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeFromUTF8, ce.Code)
}
