package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/respkv/internal/resp"
	"github.com/marmos91/respkv/internal/store"
)

func request(parts ...string) resp.Frame {
	items := make([]resp.Frame, len(parts))
	for i, p := range parts {
		items[i] = resp.NewBulkStringFromString(p)
	}
	return resp.NewArray(items)
}

func TestDispatchSetThenGet(t *testing.T) {
	d := New(store.New(4), nil)
	ctx := context.Background()

	reply, err := d.Dispatch(ctx, request("SET", "hello", "world"))
	require.NoError(t, err)
	assert.Equal(t, "OK", reply.Text())

	reply, err = d.Dispatch(ctx, request("GET", "hello"))
	require.NoError(t, err)
	b, ok := reply.Bytes()
	require.True(t, ok)
	assert.Equal(t, "world", string(b))
}

func TestDispatchGetMissingIsNull(t *testing.T) {
	d := New(store.New(4), nil)
	reply, err := d.Dispatch(context.Background(), request("GET", "missing"))
	require.NoError(t, err)
	assert.Equal(t, resp.KindNull, reply.Kind)
}

func TestDispatchIsCaseInsensitiveCommandName(t *testing.T) {
	d := New(store.New(4), nil)
	reply, err := d.Dispatch(context.Background(), request("set", "k", "v"))
	require.NoError(t, err)
	assert.Equal(t, "OK", reply.Text())
}

func TestDispatchUnknownCommandIsNonFatal(t *testing.T) {
	d := New(store.New(4), nil)
	reply, err := d.Dispatch(context.Background(), request("NOPE", "x"))
	require.NoError(t, err)
	assert.Equal(t, resp.KindSimpleString, reply.Kind)
	assert.Contains(t, reply.Text(), "NOPE")
}

func TestDispatchArityErrorIsSimpleErrorReply(t *testing.T) {
	d := New(store.New(4), nil)
	reply, err := d.Dispatch(context.Background(), request("GET"))
	require.NoError(t, err)
	assert.Equal(t, resp.KindSimpleError, reply.Kind)
}

func TestDispatchNonArrayTopLevelIsFatal(t *testing.T) {
	d := New(store.New(4), nil)
	_, err := d.Dispatch(context.Background(), resp.NewBulkStringFromString("not a command"))
	require.Error(t, err)
}

func TestDispatchEmptyArrayIsFatal(t *testing.T) {
	d := New(store.New(4), nil)
	_, err := d.Dispatch(context.Background(), resp.NewArray(nil))
	require.Error(t, err)
}

func TestDispatchNonBulkCommandNameIsFatal(t *testing.T) {
	d := New(store.New(4), nil)
	_, err := d.Dispatch(context.Background(), resp.NewArray([]resp.Frame{resp.NewInteger(1)}))
	require.Error(t, err)
}

func TestDispatchSAddSIsMember(t *testing.T) {
	d := New(store.New(4), nil)
	ctx := context.Background()

	reply, err := d.Dispatch(ctx, request("SADD", "s", "a"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), reply.Int())

	reply, err = d.Dispatch(ctx, request("SADD", "s", "a"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), reply.Int())

	reply, err = d.Dispatch(ctx, request("SISMEMBER", "s", "a"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), reply.Int())
}

func TestDispatchEcho(t *testing.T) {
	d := New(store.New(4), nil)
	reply, err := d.Dispatch(context.Background(), request("ECHO", "hello"))
	require.NoError(t, err)
	b, ok := reply.Bytes()
	require.True(t, ok)
	assert.Equal(t, "hello", string(b))
}
