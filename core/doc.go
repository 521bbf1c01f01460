// Package core provides the typed digraph that backs a SAS fabric
// topology: four vertex kinds (initiator, port, expander, target), a
// write-once attribute bag per vertex, and a side-data table keyed by
// vertex handle rather than embedded in the vertex itself.
//
// Unlike a generic graph container, vertex identity here is kind-aware:
// initiator/expander/target vertices are unique by (kind, SAS address),
// while port vertices are additionally keyed by their PHY range, since
// two ports on the same expander can share a SAS address but describe
// disjoint groups of PHYs (narrow vs. wide ports).
//
// Mutation only happens during a single enumeration pass: vertices and
// edges are added monotonically and never removed on the success path.
// Concurrent readers during that pass are the caller's problem (the
// fault-management framework is expected to hold its own lock); the
// mutexes here guard against torn reads/writes of the maps themselves,
// not against readers observing a half-built graph.
package core
