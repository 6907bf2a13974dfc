// Package blender mediates access to headless Blender for model preview
// renders.
//
// Blender runs in background mode driving a python render script; arguments
// after the -- separator are passed through to the script. The executor
// seam mirrors the other tool clients so the preview command is testable
// without Blender installed.
package blender
