// Package observability groups the logging and metrics packages used to
// observe check passes. Metrics are only exposed over HTTP in scheduled
// mode; single-run invocations still record them but expose nothing.
package observability
