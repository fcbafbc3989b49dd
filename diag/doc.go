// Package diag defines the diagnostic model shared by the engine, the
// renderers and the fix applier.
//
// A Diagnostic carries the name of the check that produced it, the level
// resolved for that check at the emission point, a primary span, a message,
// optional secondary labelled spans, free-form notes and suggestions.
//
// Diagnostics never decide their own level: the engine resolves it from the
// configured override layers before the diagnostic is built.
//
// Sink collects diagnostics of one run and turns them into a Report with
// deterministic ordering. It is not safe for concurrent use; every run owns
// its own Sink.
package diag
