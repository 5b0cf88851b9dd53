// Package command parses a RESP request frame into a typed command and
// executes it against the shared store.
package command

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/marmos91/respkv/internal/resp"
	"github.com/marmos91/respkv/internal/store"
)

// Command is a single parsed request, ready to run against the store.
type Command interface {
	// Name is the canonical uppercase command name, used for metrics and
	// log fields.
	Name() string

	// Execute runs the command against s and returns the reply frame.
	Execute(ctx context.Context, s *store.Store) resp.Frame
}

// ParseCommand parses a request, given as its command name and the
// remaining argument frames, into a typed Command. It returns (nil, nil)
// for an unrecognized name. The caller extracts name and args from a
// non-null Array of length >= 1 with a bulk-string command name at index
// 0 — that check is connection-fatal and lives in the dispatcher, not here.
func ParseCommand(name string, args []resp.Frame) (Command, error) {
	switch strings.ToUpper(name) {
	case "GET":
		return parseGet(args)
	case "SET":
		return parseSet(args)
	case "ECHO":
		return parseEcho(args)
	case "HGET":
		return parseHGet(args)
	case "HSET":
		return parseHSet(args)
	case "HGETALL":
		return parseHGetAll(args)
	case "HMGET":
		return parseHMGet(args)
	case "SADD":
		return parseSAdd(args)
	case "SISMEMBER":
		return parseSIsMember(args)
	default:
		return nil, nil // unknown command: the dispatcher replies directly, this is not an error
	}
}

// bulkText extracts a non-null BulkString's payload as a UTF-8 string,
// suitable for use as a key or field name.
func bulkText(f resp.Frame) (string, error) {
	b, ok := f.Bytes()
	if !ok {
		return "", NewInvalidCommandError("expected a bulk string argument")
	}
	if !utf8.Valid(b) {
		return "", NewFromUTF8Error("argument is not valid UTF-8")
	}
	return string(b), nil
}

func requireArity(args []resp.Frame, n int) error {
	if len(args) != n {
		return NewInvalidArgumentError("wrong number of arguments")
	}
	return nil
}

func requireMinArity(args []resp.Frame, n int) error {
	if len(args) < n {
		return NewInvalidArgumentError("wrong number of arguments")
	}
	return nil
}
