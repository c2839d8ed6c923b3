package utils

import (
	"testing"
	"unsafe"

	V "diesel.com/sph2d/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToClip(t *testing.T) {
	assert.Equal(t, V.Vec2{-1, 1}, ToClip(V.Vec2{0, 0}, 400, 200))
	assert.Equal(t, V.Vec2{1, -1}, ToClip(V.Vec2{400, 200}, 400, 200))
	assert.Equal(t, V.Vec2{0, 0}, ToClip(V.Vec2{200, 100}, 400, 200))
}

func TestPackVertices(t *testing.T) {
	positions := []V.Vec2{{0, 0}, {200, 100}, {400, 200}}
	densities := []float32{0.1, 0.2, 0.3}

	buf := PackVertices(nil, positions, densities, 400, 200)
	require.Len(t, buf, 3*VERTEX_STRIDE)
	assert.Equal(t, []float32{-1, 1, 0.1, 0, 0, 0.2, 1, -1, 0.3}, buf)

	//Reuses the backing array when it is large enough
	again := PackVertices(buf, positions[:1], densities, 400, 200)
	assert.Len(t, again, VERTEX_STRIDE)
	assert.Equal(t, &buf[0], &again[0])

	//Missing densities pack as zero
	short := PackVertices(nil, positions, nil, 400, 200)
	assert.Equal(t, float32(0), short[2])
}

func TestPackLines(t *testing.T) {
	buf := PackLines(nil, []V.Vec2{{0, 0}, {400, 0}}, 400, 200)
	assert.Equal(t, []float32{-1, 1, WALL_MARKER, 1, 1, WALL_MARKER}, buf)
}

func TestTransfer(t *testing.T) {
	data := PackVertices(nil, []V.Vec2{{1, 2}, {3, 4}, {5, 6}}, []float32{1, 2, 3}, 10, 10)
	target := make([]float32, 12)
	uPtr := unsafe.Pointer(&target[0])

	require.NoError(t, TransferVertexData(uPtr, len(target), data))
	assert.Equal(t, data, target[:len(data)])
	assert.Equal(t, []float32{0, 0, 0}, target[len(data):])

	assert.Error(t, TransferVertexData(uPtr, 4, data))
	assert.Error(t, TransferVertexData(nil, 12, data))
}

func TestAppendLines(t *testing.T) {
	buf := PackLines(nil, []V.Vec2{{0, 0}}, 400, 200)
	buf = AppendLines(buf, []V.Vec2{{200, 100}}, 400, 200, GRID_MARKER)
	assert.Equal(t, []float32{-1, 1, WALL_MARKER, 0, 0, GRID_MARKER}, buf)

	//PackLines starts over
	buf = PackLines(buf, nil, 400, 200)
	assert.Empty(t, buf)
}

func TestMarkVertices(t *testing.T) {
	buf := PackVertices(nil, []V.Vec2{{0, 0}, {1, 1}, {2, 2}}, []float32{0.1, 0.2, 0.3}, 10, 10)
	MarkVertices(buf, []int{2, 0, 7, -1}, NEIGHBOR_MARKER)

	assert.Equal(t, float32(NEIGHBOR_MARKER), buf[2])
	assert.Equal(t, float32(0.2), buf[5])
	assert.Equal(t, float32(NEIGHBOR_MARKER), buf[8])
	assert.Len(t, buf, 9)
}
