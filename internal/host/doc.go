// Package host defines the capability surface the layout coordinator
// consumes from an editor.
//
// A host owns windows, buffers and the display engine. The coordinator
// never touches those directly: it asks the host to step display lines,
// test visibility, read and write window anchors and cursors, and perform
// raw, position-unaware layout mutations (split, close, resize). All
// point preservation is layered on top of these primitives by the
// planner package.
//
// Hosts are driven from a single control goroutine. Implementations are
// not required to be safe for concurrent use.
package host
