package core

import "testing"

func TestWrapBordersMirrorsOppositeEdges(t *testing.T) {
	g := NewGrid(3, 3)
	// Number interior cells 1..9 so every mirrored value is distinct.
	v := uint8(1)
	for i := 1; i <= 3; i++ {
		for j := 1; j <= 3; j++ {
			g.Set(i, j, v)
			v++
		}
	}

	g.WrapBorders()

	// Ghost columns mirror the opposite interior column.
	for i := 1; i <= 3; i++ {
		if g.At(i, 0) != g.At(i, 3) {
			t.Fatalf("ghost column 0 row %d = %d, want %d", i, g.At(i, 0), g.At(i, 3))
		}
		if g.At(i, 4) != g.At(i, 1) {
			t.Fatalf("ghost column 4 row %d = %d, want %d", i, g.At(i, 4), g.At(i, 1))
		}
	}
	// Ghost rows mirror the opposite row over the full column range, so
	// the corners pick up the diagonally-opposite interior cells.
	for j := 0; j <= 4; j++ {
		if g.At(0, j) != g.At(3, j) {
			t.Fatalf("ghost row 0 col %d = %d, want %d", j, g.At(0, j), g.At(3, j))
		}
		if g.At(4, j) != g.At(1, j) {
			t.Fatalf("ghost row 4 col %d = %d, want %d", j, g.At(4, j), g.At(1, j))
		}
	}
	if g.At(0, 0) != g.At(3, 3) {
		t.Fatalf("corner (0,0) = %d, want interior (3,3) = %d", g.At(0, 0), g.At(3, 3))
	}
	if g.At(4, 4) != g.At(1, 1) {
		t.Fatalf("corner (4,4) = %d, want interior (1,1) = %d", g.At(4, 4), g.At(1, 1))
	}
}

func TestInteriorSumIgnoresGhostCells(t *testing.T) {
	g := NewGrid(2, 2)
	for i := 1; i <= 2; i++ {
		for j := 1; j <= 2; j++ {
			g.Set(i, j, 3)
		}
	}
	g.WrapBorders()
	if got := g.InteriorSum(); got != 12 {
		t.Fatalf("InteriorSum = %d, want 12", got)
	}
}

func TestClearZeroesEverything(t *testing.T) {
	g := NewGrid(4, 5)
	for i := range g.Cells() {
		g.Cells()[i] = 7
	}
	g.Clear()
	for i, v := range g.Cells() {
		if v != 0 {
			t.Fatalf("cell %d = %d after Clear", i, v)
		}
	}
}

func TestNewGridClampsDimensions(t *testing.T) {
	g := NewGrid(0, -3)
	if g.NX != 1 || g.NY != 1 {
		t.Fatalf("NewGrid(0,-3) dims = %dx%d, want 1x1", g.NX, g.NY)
	}
	if len(g.Cells()) != 9 {
		t.Fatalf("backing slice length = %d, want 9", len(g.Cells()))
	}
}
