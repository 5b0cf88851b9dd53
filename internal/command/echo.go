package command

import (
	"context"

	"github.com/marmos91/respkv/internal/resp"
	"github.com/marmos91/respkv/internal/store"
)

// EchoCmd implements ECHO message.
type EchoCmd struct {
	Message resp.Frame
}

func parseEcho(args []resp.Frame) (Command, error) {
	if err := requireArity(args, 1); err != nil {
		return nil, err
	}
	return &EchoCmd{Message: args[0]}, nil
}

func (c *EchoCmd) Name() string { return "ECHO" }

func (c *EchoCmd) Execute(_ context.Context, _ *store.Store) resp.Frame {
	return c.Message
}
