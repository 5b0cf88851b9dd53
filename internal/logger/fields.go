package logger

import (
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements so downstream
// aggregation and querying doesn't have to reconcile ad-hoc names.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Command dispatch
	// ========================================================================
	KeyCommand   = "command"    // command name: GET, SET, HSET, ...
	KeyOutcome   = "outcome"    // ok, command_error, unknown_command
	KeyErrorCode = "error_code" // codec/command error code

	// ========================================================================
	// Connection
	// ========================================================================
	KeyConnectionID = "connection_id" // correlation id assigned at accept
	KeyClientIP     = "client_ip"     // client IP address
	KeyClientPort   = "client_port"   // client source port
	KeyBytesIn      = "bytes_in"      // bytes read off the wire for one frame
	KeyBytesOut     = "bytes_out"     // bytes written for one reply

	// ========================================================================
	// Store
	// ========================================================================
	KeyKeyspace = "keyspace" // string, hash, set
	KeyKey      = "key"      // store key
	KeyShard    = "shard"    // shard index the key hashed to

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // operation duration in milliseconds
	KeyError      = "error"       // error message
	KeyAddr       = "addr"        // listen address
)

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// Command returns a slog.Attr for the dispatched command name
func Command(name string) slog.Attr {
	return slog.String(KeyCommand, name)
}

// Outcome returns a slog.Attr for the dispatch outcome
func Outcome(outcome string) slog.Attr {
	return slog.String(KeyOutcome, outcome)
}

// ErrorCode returns a slog.Attr for a codec/command error code
func ErrorCode(code string) slog.Attr {
	return slog.String(KeyErrorCode, code)
}

// ConnectionID returns a slog.Attr for the connection correlation id
func ConnectionID(id string) slog.Attr {
	return slog.String(KeyConnectionID, id)
}

// ClientIP returns a slog.Attr for the client IP address
func ClientIP(addr string) slog.Attr {
	return slog.String(KeyClientIP, addr)
}

// ClientPort returns a slog.Attr for the client source port
func ClientPort(port int) slog.Attr {
	return slog.Int(KeyClientPort, port)
}

// BytesIn returns a slog.Attr for bytes consumed decoding one frame
func BytesIn(n int) slog.Attr {
	return slog.Int(KeyBytesIn, n)
}

// BytesOut returns a slog.Attr for bytes written for one reply
func BytesOut(n int) slog.Attr {
	return slog.Int(KeyBytesOut, n)
}

// Keyspace returns a slog.Attr for the store keyspace (string/hash/set)
func Keyspace(name string) slog.Attr {
	return slog.String(KeyKeyspace, name)
}

// Key returns a slog.Attr for a store key
func Key(k string) slog.Attr {
	return slog.String(KeyKey, k)
}

// Shard returns a slog.Attr for the shard index a key hashed to
func Shard(i int) slog.Attr {
	return slog.Int(KeyShard, i)
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Addr returns a slog.Attr for a listen address
func Addr(addr string) slog.Attr {
	return slog.String(KeyAddr, addr)
}
