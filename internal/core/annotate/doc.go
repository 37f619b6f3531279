// Package annotate implements the document annotation engine: highlighted
// ranges over a text document, comments attached to those ranges, a
// conversation transcript whose assistant messages cite document ranges, and
// the two transient cursors (scroll target, focus) that drive the viewer.
//
// # Offsets
//
// All ranges are half-open byte offsets [Start, End) into the current
// document content. Ranges are never validated at construction; anything
// that reads ranges (the segmenter, the range query helpers) clamps them
// against the content it is given. This keeps every mutation total: a
// document edit that strands a highlight past the new end of content is a
// legitimate event, not an error.
//
// # Mutation
//
// All state lives in State and changes only through Apply, a pure transition
// function over the closed Action union. Apply returns a new snapshot with
// fresh collection slices on every change, so consumers may use
// reference identity to detect what changed. Store serializes Dispatch calls
// for callers outside a single-threaded event loop.
//
// Dangling references (a comment or cursor naming a removed highlight) are
// tolerated everywhere and render as nothing. Removing a highlight is the
// one place referential integrity is enforced: its comments go with it.
package annotate
