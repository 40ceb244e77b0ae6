// Package plugin defines the stage contract for the conversion pipeline and
// the process-wide registry stages are resolved from.
//
// # Stage Contract
//
// Every stage — validator, transforms, and the RDF generator — implements the
// Plugin interface: a stable Name and an Execute method that maps one Payload
// to the next. The Payload is the only data contract between stages: it
// carries the record set, the accumulated validation issues, and eventually
// the serialized output. Stages return new payloads instead of mutating their
// input, so a failing stage never corrupts upstream state.
//
// # Registry Lifecycle
//
// The registry is explicit process-wide state with a documented lifecycle:
// created once at startup, populated by a trusted bootstrap routine (see the
// pluginregistry package), and read-only during conversions. The core never
// scans storage or loads code dynamically; third-party stages participate by
// calling Register from their own bootstrap.
//
// Registration order is observable via List for diagnostics, but execution
// order is always explicit: the converter runs stages in the order the caller
// names them, never in registration order.
package plugin
