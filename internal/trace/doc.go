// Package trace is the structured event log of clark.
//
// Tracing is switched on from the command line:
//
//	clark parse --trace=- --trace-level=phase testdata/
//
// Every run has one Tracer. Events carry a Scope; the Level decides which
// scopes are written:
//
//	phase   driver + lex/parse passes
//	detail  + per-file events of directory runs
//	debug   everything
//
// The "error" level keeps events only in memory (RingTracer) and dumps them
// when a run ends with a fault.
//
// Tracers travel on context.Context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	sp := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lex", 0)
//	defer sp.End("")
package trace
