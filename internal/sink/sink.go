// Package sink provides concrete downstream byte-sink implementations for
// internal/chunker.Chunker: a plain writer adaptor, an in-memory collector,
// and two observing wrappers (metrics, compression) that compose around any
// inner sink without altering the chunk boundaries passing through them.
package sink

import "github.com/FairForge/cdcchunker/internal/chunker"

// Sink re-exports the chunker package's downstream contract so callers of
// this package don't need to import internal/chunker directly just to
// reference the interface type.
type Sink = chunker.Sink
