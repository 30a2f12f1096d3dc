package core

// Grid stores a bordered toroidal field of byte-sized cell values in
// row-major order. The interior spans [1..NX] x [1..NY]; row and column 0
// and n+1 are ghost cells mirroring the opposite edge, refreshed by
// WrapBorders before each neighbourhood pass.
type Grid struct {
	NX, NY int
	stride int
	data   []uint8
}

// NewGrid allocates a grid with the given interior dimensions.
func NewGrid(nx, ny int) *Grid {
	if nx <= 0 {
		nx = 1
	}
	if ny <= 0 {
		ny = 1
	}
	return &Grid{
		NX:     nx,
		NY:     ny,
		stride: ny + 2,
		data:   make([]uint8, (nx+2)*(ny+2)),
	}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for cell (i, j).
func (g *Grid) Index(i, j int) int { return i*g.stride + j }

// At returns the value stored at (i, j).
func (g *Grid) At(i, j int) uint8 { return g.data[i*g.stride+j] }

// Set stores v at (i, j).
func (g *Grid) Set(i, j int, v uint8) { g.data[i*g.stride+j] = v }

// WrapBorders refreshes the ghost cells from the opposite edges: first the
// ghost columns over the interior rows, then the ghost rows over the full
// column range so the corners are covered as well.
func (g *Grid) WrapBorders() {
	for i := 1; i <= g.NX; i++ {
		row := i * g.stride
		g.data[row] = g.data[row+g.NY]
		g.data[row+g.NY+1] = g.data[row+1]
	}
	first := g.stride
	last := g.NX * g.stride
	top := (g.NX + 1) * g.stride
	for j := 0; j <= g.NY+1; j++ {
		g.data[j] = g.data[last+j]
		g.data[top+j] = g.data[first+j]
	}
}

// InteriorSum totals every interior cell value. Ghost cells are excluded.
func (g *Grid) InteriorSum() int {
	total := 0
	for i := 1; i <= g.NX; i++ {
		row := i * g.stride
		for j := 1; j <= g.NY; j++ {
			total += int(g.data[row+j])
		}
	}
	return total
}

// Clear fills the grid, ghost cells included, with zeros.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
