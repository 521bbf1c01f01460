// Package stitch cross-links the islands C3 (hba) and C4 (expander)
// leave in the graph and orients expander-to-expander edges (C5). It
// runs three explicit, non-interleaved passes over the graph rather than
// the callback-driven vertex/edge walks of the original implementation.
package stitch
