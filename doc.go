// Package jsonuri reads, writes and reorders values inside nested data built
// from map[string]any and []any, addressed by slash-delimited paths.
//
//	data := map[string]any{"menu": map[string]any{"id": []any{10, 20, 30}}}
//
//	v, ok := jsonuri.Get(data, "/menu/id/2")             // 30, true
//	jsonuri.Get(data, "/menu/id/2/../0")                 // 10, true
//	data2, err := jsonuri.Up(data, "/menu/id/2", 1)      // [10 30 20]
//
// Paths are parsed by package uripath and may contain the directives ".",
// "..", "..." and "~". Operations mutate the caller's data in place and never
// clone it. Operations that can grow or shrink a sequence return the root,
// which is a new value when the root itself is that sequence; callers should
// always keep the returned root.
//
// Errors are returned, never panicked. Aborted reorderings are additionally
// reported through the handler installed with SetDiagnosticHandler.
package jsonuri
