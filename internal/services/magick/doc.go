// Package magick mediates access to the ImageMagick CLI used for mask
// generation.
//
// It owns the fixed transformation pipeline (grayscale, blur, auto-level,
// percentage threshold, connected-component filtering, bilevel output) and
// constrains each invocation's internal thread usage through magick's
// resource limit flag so concurrent workers do not oversubscribe the host.
//
// Prefer this package over ad-hoc exec.Command usage so thread limiting and
// error classification stay consistent.
package magick
