package telemetry

import "go.opentelemetry.io/otel/attribute"

// Attribute keys used on dispatch and connection spans.
const (
	AttrClientIP      = "client.ip"
	AttrConnectionID  = "connection.id"
	AttrCommand       = "command.name"
	AttrCommandKey    = "command.key"
	AttrCommandOutcome = "command.outcome"
)

// Span names.
const (
	SpanConnection = "connection.serve"
	SpanDispatch   = "dispatch"
)

// ClientIP returns an attribute for the client's IP address.
func ClientIP(ip string) attribute.KeyValue {
	return attribute.String(AttrClientIP, ip)
}

// ConnectionID returns an attribute for the connection correlation id.
func ConnectionID(id string) attribute.KeyValue {
	return attribute.String(AttrConnectionID, id)
}

// Command returns an attribute for the dispatched command name.
func Command(name string) attribute.KeyValue {
	return attribute.String(AttrCommand, name)
}

// CommandKey returns an attribute for the key a command operated on.
func CommandKey(key string) attribute.KeyValue {
	return attribute.String(AttrCommandKey, key)
}

// CommandOutcome returns an attribute describing how dispatch concluded
// ("ok", "command_error", "unknown_command").
func CommandOutcome(outcome string) attribute.KeyValue {
	return attribute.String(AttrCommandOutcome, outcome)
}

// DispatchSpanName returns the per-command span name, "dispatch.<command>".
func DispatchSpanName(command string) string {
	return SpanDispatch + "." + command
}
