// Package skel extracts skeletons from bilevel raster images.
//
// # Overview
//
// skel reduces thick foreground regions of a single-channel 8-bit image to
// thin centerlines. Two strategies are provided:
//   - Thin: iterative Hilditch thinning. Converges to a one-pixel-wide
//     skeleton of solid shapes. Deletion is checked against the local
//     connectivity number only, so ragged shapes can occasionally split,
//     and blocks of two pixels across or less can vanish.
//   - SkeletonizeByMidpoint: keeps the midpoint of every row and column
//     run. Cheaper, but connectivity is not preserved.
//
// RemoveUniformBlocks is a cleanup pass that hollows out solid regions.
//
// # Quick Start
//
//	import "github.com/gogpu/skel"
//
//	p, _ := skel.LoadPlane("glyph.png")
//	skel.Threshold(p, 128)
//	skel.Thin(p)
//	_ = p.SavePNG("glyph_skel.png")
//
// # Pixel Values
//
// Every operation works on a Plane, stored row-major. A pixel is foreground
// when it equals the foreground value (255 unless WithForeground says
// otherwise); anything else is background. Deleted pixels are written as
// 255 minus the foreground value unless WithBackground overrides it.
//
// # Borders
//
// Neighborhood-based passes only visit interior pixels. Thin and
// RemoveUniformBlocks never modify the first and last rows and columns.
//
// # Concurrency
//
// Operations on a single Plane are synchronous and must not overlap.
// Different planes may be processed concurrently.
package skel
