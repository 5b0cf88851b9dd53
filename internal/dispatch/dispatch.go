// Package dispatch routes a decoded request frame to the matching command
// and produces the reply frame, recording metrics and trace spans around
// the parse+execute step.
package dispatch

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/marmos91/respkv/internal/command"
	"github.com/marmos91/respkv/internal/resp"
	"github.com/marmos91/respkv/internal/store"
	"github.com/marmos91/respkv/internal/telemetry"
	"github.com/marmos91/respkv/pkg/metrics"
)

const outcomeOK = "ok"
const outcomeCommandError = "command_error"
const outcomeUnknownCommand = "unknown_command"

// Dispatcher holds the shared store and optional observability hooks used
// to execute every request on a connection.
type Dispatcher struct {
	store   *store.Store
	metrics metrics.CommandMetrics // nil disables metrics recording
}

// New builds a Dispatcher. m may be nil to disable metrics recording.
func New(s *store.Store, m metrics.CommandMetrics) *Dispatcher {
	return &Dispatcher{store: s, metrics: m}
}

// Dispatch routes frame to a command and returns the reply.
//
// A non-nil error here is always connection-fatal: it means frame did not
// even have the shape of a request (not a non-null array of length >= 1
// with a bulk-string command name at index 0). Everything past that point
// — unknown commands, arity mismatches, wrong-type arguments — is reported
// as a reply frame with a nil error, and the connection stays open.
func (d *Dispatcher) Dispatch(ctx context.Context, frame resp.Frame) (resp.Frame, error) {
	items, ok := frame.Items()
	if frame.Kind != resp.KindArray || !ok || len(items) < 1 {
		return resp.Frame{}, command.NewInvalidCommandError("request must be a non-null array of length >= 1")
	}

	nameBytes, ok := items[0].Bytes()
	if !ok {
		return resp.Frame{}, command.NewInvalidCommandError("command name must be a bulk string")
	}
	name := strings.ToUpper(string(nameBytes))
	args := items[1:]

	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, telemetry.DispatchSpanName(strings.ToLower(name)))
	defer span.End()

	cmd, err := command.ParseCommand(name, args)
	if err != nil {
		d.record(name, outcomeCommandError, time.Since(start))
		telemetry.RecordError(ctx, err)
		return resp.NewSimpleError(err.Error()), nil
	}
	if cmd == nil {
		d.record("unknown", outcomeUnknownCommand, time.Since(start))
		span.SetStatus(codes.Error, "unknown command")
		return resp.NewSimpleString("unimplemented command: " + name), nil
	}

	reply := cmd.Execute(ctx, d.store)
	d.record(name, outcomeOK, time.Since(start))
	return reply, nil
}

func (d *Dispatcher) record(name, outcome string, duration time.Duration) {
	if d.metrics == nil {
		return
	}
	d.metrics.RecordCommand(name, outcome, duration)
}
