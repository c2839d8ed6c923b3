package utils

import (
	"fmt"
	"unsafe"

	V "diesel.com/sph2d/vector"
)

//VERTEX_STRIDE - floats per packed vertex: clip x, clip y, density
const VERTEX_STRIDE = 3

//Markers are written in the density slot in place of a density so the shader draws
//the vertex in a flat overlay color
const (
	WALL_MARKER     = -1.0
	NEIGHBOR_MARKER = -2.0 //Particles near the debug pointer, and its sample circle
	FAST_MARKER     = -3.0 //Particles over the speed cap
	GRID_MARKER     = -4.0 //Spatial grid cell lines
)

//ToClip maps a world position (origin top left, y down) into GL clip space
func ToClip(p V.Vec2, width float32, height float32) V.Vec2 {
	return V.Vec2{2*p[0]/width - 1, 1 - 2*p[1]/height}
}

//PackVertices interleaves particle positions and densities into dst, growing it as
//needed, and returns the filled slice
func PackVertices(dst []float32, positions []V.Vec2, densities []float32, width float32, height float32) []float32 {
	dst = dst[:0]
	for i := range positions {
		c := ToClip(positions[i], width, height)
		d := float32(0)
		if i < len(densities) {
			d = densities[i]
		}
		dst = append(dst, c[0], c[1], d)
	}
	return dst
}

//PackLines packs line vertices (wall outlines) with the WALL_MARKER density
func PackLines(dst []float32, verts []V.Vec2, width float32, height float32) []float32 {
	return AppendLines(dst[:0], verts, width, height, WALL_MARKER)
}

//AppendLines adds line vertices tagged with marker after the existing contents of dst
func AppendLines(dst []float32, verts []V.Vec2, width float32, height float32, marker float32) []float32 {
	for _, v := range verts {
		c := ToClip(v, width, height)
		dst = append(dst, c[0], c[1], marker)
	}
	return dst
}

//MarkVertices overwrites the density slot of the listed particles with marker.
//Indices outside the packed buffer are ignored.
func MarkVertices(buf []float32, indices []int, marker float32) {
	n := len(buf) / VERTEX_STRIDE
	for _, i := range indices {
		if i >= 0 && i < n {
			buf[i*VERTEX_STRIDE+2] = marker
		}
	}
}

//TransferVertexData copies packed vertex data into a mapped graphics buffer of capacity
//floats. Any pointer backed by enough memory works as the target.
func TransferVertexData(graphicsPtr unsafe.Pointer, capacity int, data []float32) error {
	if graphicsPtr == nil {
		return fmt.Errorf("no valid pointer to graphics memory location")
	}
	if len(data) > capacity {
		return fmt.Errorf("vertex data transfer out of bounds: %d floats into %d", len(data), capacity)
	}
	stream := unsafe.Slice((*float32)(graphicsPtr), capacity)
	copy(stream, data)
	return nil
}
