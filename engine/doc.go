// Package engine provides an in-memory implementation of the core.Engine and
// core.Editor contracts.
//
// It is a volatile, development-grade engine in the same spirit as an
// in-memory store: good enough to exercise every binder code path (content
// and selection events, silent writes, history clearing, clipboard HTML
// import, enable/disable) without a real rendering target. Production
// deployments bind a real rich-text engine behind the same interfaces.
//
// Behavioral notes:
//   - Documents always carry the engine-typical trailing newline; a cleared
//     editor holds exactly one "\n" insert.
//   - SetContents/SetText report the replacement document as the change
//     Delta rather than a minimal diff; UpdateContents applies and reports
//     real retain/insert/delete changes.
//   - Writes tagged core.SourceSilent skip handler dispatch and history
//     recording.
package engine
