// Package geom provides the coordinate-space primitives shared by the
// composition store and the interaction engine.
//
// Three spaces are in play:
//
//   - Percent space: stage geometry. The stage is a fixed 100x100 unit
//     square regardless of its on-screen pixel size; asset transforms are
//     expressed in it.
//   - Time space: timeline position in seconds.
//   - Pixel space: raw pointer coordinates from a render surface.
//
// The package is a leaf: it depends on nothing and everything above it
// depends on it. All conversions clamp at the boundary so callers never
// see out-of-range domain values from a wild pointer position.
package geom
