package command

import (
	"context"

	"github.com/marmos91/respkv/internal/resp"
	"github.com/marmos91/respkv/internal/store"
)

// HGetCmd implements HGET key field.
type HGetCmd struct {
	Key   string
	Field string
}

func parseHGet(args []resp.Frame) (Command, error) {
	if err := requireArity(args, 2); err != nil {
		return nil, err
	}
	key, err := bulkText(args[0])
	if err != nil {
		return nil, err
	}
	field, err := bulkText(args[1])
	if err != nil {
		return nil, err
	}
	return &HGetCmd{Key: key, Field: field}, nil
}

func (c *HGetCmd) Name() string { return "HGET" }

func (c *HGetCmd) Execute(ctx context.Context, s *store.Store) resp.Frame {
	v, ok := s.HGet(ctx, c.Key, c.Field)
	if !ok {
		return resp.NewNull()
	}
	return v
}

// HSetCmd implements HSET key field value.
type HSetCmd struct {
	Key   string
	Field string
	Value resp.Frame
}

func parseHSet(args []resp.Frame) (Command, error) {
	if err := requireArity(args, 3); err != nil {
		return nil, err
	}
	key, err := bulkText(args[0])
	if err != nil {
		return nil, err
	}
	field, err := bulkText(args[1])
	if err != nil {
		return nil, err
	}
	return &HSetCmd{Key: key, Field: field, Value: args[2]}, nil
}

func (c *HSetCmd) Name() string { return "HSET" }

func (c *HSetCmd) Execute(ctx context.Context, s *store.Store) resp.Frame {
	s.HSet(ctx, c.Key, c.Field, c.Value)
	return resp.NewSimpleString("OK")
}

// HGetAllCmd implements HGETALL key.
type HGetAllCmd struct {
	Key string
}

func parseHGetAll(args []resp.Frame) (Command, error) {
	if err := requireArity(args, 1); err != nil {
		return nil, err
	}
	key, err := bulkText(args[0])
	if err != nil {
		return nil, err
	}
	return &HGetAllCmd{Key: key}, nil
}

func (c *HGetAllCmd) Name() string { return "HGETALL" }

func (c *HGetAllCmd) Execute(ctx context.Context, s *store.Store) resp.Frame {
	all, ok := s.HGetAll(ctx, c.Key)
	if !ok {
		return resp.NewNull()
	}
	items := make([]resp.Frame, 0, len(all)*2)
	for field, value := range all {
		items = append(items, resp.NewBulkStringFromString(field), value)
	}
	return resp.NewArray(items)
}

// HMGetCmd implements HMGET key field [field ...].
type HMGetCmd struct {
	Key    string
	Fields []string
}

func parseHMGet(args []resp.Frame) (Command, error) {
	if err := requireMinArity(args, 2); err != nil {
		return nil, err
	}
	key, err := bulkText(args[0])
	if err != nil {
		return nil, err
	}
	fields := make([]string, len(args)-1)
	for i, f := range args[1:] {
		field, err := bulkText(f)
		if err != nil {
			return nil, err
		}
		fields[i] = field
	}
	return &HMGetCmd{Key: key, Fields: fields}, nil
}

func (c *HMGetCmd) Name() string { return "HMGET" }

func (c *HMGetCmd) Execute(ctx context.Context, s *store.Store) resp.Frame {
	return resp.NewArray(s.HMGet(ctx, c.Key, c.Fields))
}
