// Package catalog is the library asset lookup service.
//
// The catalog is read-only from the composition core's point of view: the
// store resolves library ids against it when placing assets but never
// mutates it. Catalogs are defined in YAML and validated against an
// embedded CUE schema before use; a built-in default catalog ships with
// the binary.
package catalog
