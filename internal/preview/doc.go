// Package preview renders turntable preview images for built models by
// driving a headless Blender script.
package preview
