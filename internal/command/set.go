package command

import (
	"context"

	"github.com/marmos91/respkv/internal/resp"
	"github.com/marmos91/respkv/internal/store"
)

// SetCmd implements SET key value.
type SetCmd struct {
	Key   string
	Value resp.Frame
}

func parseSet(args []resp.Frame) (Command, error) {
	if err := requireArity(args, 2); err != nil {
		return nil, err
	}
	key, err := bulkText(args[0])
	if err != nil {
		return nil, err
	}
	return &SetCmd{Key: key, Value: args[1]}, nil
}

func (c *SetCmd) Name() string { return "SET" }

func (c *SetCmd) Execute(ctx context.Context, s *store.Store) resp.Frame {
	s.Set(ctx, c.Key, c.Value)
	return resp.NewSimpleString("OK")
}
