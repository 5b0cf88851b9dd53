package command

import (
	"context"

	"github.com/marmos91/respkv/internal/resp"
	"github.com/marmos91/respkv/internal/store"
)

// SAddCmd implements SADD key member.
type SAddCmd struct {
	Key    string
	Member resp.Frame
}

func parseSAdd(args []resp.Frame) (Command, error) {
	if err := requireArity(args, 2); err != nil {
		return nil, err
	}
	key, err := bulkText(args[0])
	if err != nil {
		return nil, err
	}
	return &SAddCmd{Key: key, Member: args[1]}, nil
}

func (c *SAddCmd) Name() string { return "SADD" }

func (c *SAddCmd) Execute(ctx context.Context, s *store.Store) resp.Frame {
	return resp.NewInteger(s.SAdd(ctx, c.Key, c.Member))
}

// SIsMemberCmd implements SISMEMBER key member.
type SIsMemberCmd struct {
	Key    string
	Member resp.Frame
}

func parseSIsMember(args []resp.Frame) (Command, error) {
	if err := requireArity(args, 2); err != nil {
		return nil, err
	}
	key, err := bulkText(args[0])
	if err != nil {
		return nil, err
	}
	return &SIsMemberCmd{Key: key, Member: args[1]}, nil
}

func (c *SIsMemberCmd) Name() string { return "SISMEMBER" }

func (c *SIsMemberCmd) Execute(ctx context.Context, s *store.Store) resp.Frame {
	return resp.NewInteger(s.SIsMember(ctx, c.Key, c.Member))
}
