package physics

import "fmt"

const MaxLayers = 32

// LayerMatrix is a symmetric 32x32 bit relation: row i bit j is set when
// layers i and j interact.
type LayerMatrix [MaxLayers]uint32

// NewLayerMatrix returns a matrix in which every layer interacts with every
// other layer.
func NewLayerMatrix() LayerMatrix {
	var m LayerMatrix
	for i := range m {
		m[i] = ^uint32(0)
	}
	return m
}

func (m *LayerMatrix) Enable(i, j uint) {
	checkLayer(i)
	checkLayer(j)
	m[i] |= 1 << j
	m[j] |= 1 << i
}

func (m *LayerMatrix) Disable(i, j uint) {
	checkLayer(i)
	checkLayer(j)
	m[i] &^= 1 << j
	m[j] &^= 1 << i
}

func (m *LayerMatrix) Interact(i, j uint) bool {
	checkLayer(i)
	checkLayer(j)
	return m[i]&(1<<j) != 0
}

func checkLayer(layer uint) {
	if layer >= MaxLayers {
		panic(fmt.Sprintf("Physics2D: layer %d out of range [0, %d)", layer, MaxLayers))
	}
}
