// Package hba discovers initiators and host-side ports from an HBA
// management library (C3). It consumes a Source, an interface modeling
// the opaque HBA discovery API: load/unload, adapter enumeration, port
// and PHY attribute queries.
package hba
