package command

import (
	"context"

	"github.com/marmos91/respkv/internal/resp"
	"github.com/marmos91/respkv/internal/store"
)

// GetCmd implements GET key.
type GetCmd struct {
	Key string
}

func parseGet(args []resp.Frame) (Command, error) {
	if err := requireArity(args, 1); err != nil {
		return nil, err
	}
	key, err := bulkText(args[0])
	if err != nil {
		return nil, err
	}
	return &GetCmd{Key: key}, nil
}

func (c *GetCmd) Name() string { return "GET" }

func (c *GetCmd) Execute(ctx context.Context, s *store.Store) resp.Frame {
	v, ok := s.Get(ctx, c.Key)
	if !ok {
		return resp.NewNull()
	}
	return v
}
