package geometry

import (
	"image"

	"gonum.org/v1/gonum/mat"
)

// BorderType distinguishes the two kinds of border found by FindContours.
type BorderType int

const (
	// Hole is the border between a set region and an unset region it encloses.
	Hole BorderType = iota + 1
	// Outer is the border between a set region and the unset region around it.
	Outer
)

func (b BorderType) String() string {
	switch b {
	case Hole:
		return "hole"
	case Outer:
		return "outer"
	default:
		return "unknown"
	}
}

// Node is one entry of the contour hierarchy. Index 0 is the image frame,
// which acts as the root; index k (k >= 1) describes contour k-1. Missing
// links are -1.
type Node struct {
	Parent      int        `json:"parent"`
	FirstChild  int        `json:"first_child"`
	NextSibling int        `json:"next_sibling"`
	Border      BorderType `json:"border"`
}

func (n *Node) reset() {
	n.Parent = -1
	n.FirstChild = -1
	n.NextSibling = -1
}

// Neighbor offsets as (row, col), counterclockwise starting east.
var (
	dRow = [8]int{0, -1, -1, -1, 0, 1, 1, 1}
	dCol = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
)

func direction(dr, dc int) int {
	for k := 0; k < 8; k++ {
		if dRow[k] == dr && dCol[k] == dc {
			return k
		}
	}
	return -1
}

// FindContours traces every border in the mask with the Suzuki–Abe algorithm
// and returns the chain-compressed contours together with their hierarchy.
// The hierarchy has one more entry than contours (the root frame at index 0).
// Contours are ordered by the raster position of their starting pixel.
func FindContours(m *Mask) ([]Polygon, []Node) {
	rows, cols := m.Height()+2, m.Width()+2
	// Work grid with a zero frame so neighbor reads never leave the matrix.
	f := mat.NewDense(rows, cols, nil)
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.At(x, y) {
				f.Set(y+1, x+1, 1)
			}
		}
	}

	root := Node{Border: Hole}
	root.reset()
	nodes := []Node{root}
	var contours []Polygon

	nbd := 1
	for i := 1; i < rows-1; i++ {
		lnbd := 1
		for j := 1; j < cols-1; j++ {
			fij := f.At(i, j)
			var (
				border       BorderType
				fromR, fromC int
			)
			switch {
			case fij == 1 && f.At(i, j-1) == 0:
				border, fromR, fromC = Outer, i, j-1
			case fij >= 1 && f.At(i, j+1) == 0:
				border, fromR, fromC = Hole, i, j+1
				if fij > 1 {
					lnbd = int(fij)
				}
			}

			if border != 0 {
				nbd++
				node := Node{Border: border}
				node.reset()
				prev := nodes[lnbd-1]
				if (border == Outer) == (prev.Border == Outer) {
					node.Parent = prev.Parent
				} else {
					node.Parent = lnbd - 1
				}
				nodes = append(nodes, node)
				linkChild(nodes, len(nodes)-1)

				contours = append(contours, compressChain(traceBorder(f, i, j, fromR, fromC, nbd)))
			}

			if v := f.At(i, j); v != 0 && v != 1 {
				if v < 0 {
					v = -v
				}
				lnbd = int(v)
			}
		}
	}
	return contours, nodes
}

// FindRegions returns every contour in the mask without the hierarchy.
func FindRegions(m *Mask) []Polygon {
	contours, _ := FindContours(m)
	return contours
}

func linkChild(nodes []Node, idx int) {
	parent := nodes[idx].Parent
	if parent < 0 {
		return
	}
	if nodes[parent].FirstChild == -1 {
		nodes[parent].FirstChild = idx
		return
	}
	sib := nodes[parent].FirstChild
	for nodes[sib].NextSibling != -1 {
		sib = nodes[sib].NextSibling
	}
	nodes[sib].NextSibling = idx
}

// traceBorder follows one border starting at (i, j), labelling visited
// pixels with nbd, and returns the border pixels in mask coordinates.
func traceBorder(f *mat.Dense, i, j, fromR, fromC, nbd int) Polygon {
	label := float64(nbd)

	// Clockwise search for the first nonzero neighbor.
	start := direction(fromR-i, fromC-j)
	i1, j1, found := 0, 0, false
	for k := 0; k < 8; k++ {
		d := (start - k + 8) % 8
		r, c := i+dRow[d], j+dCol[d]
		if f.At(r, c) != 0 {
			i1, j1, found = r, c, true
			break
		}
	}
	if !found {
		f.Set(i, j, -label)
		return Polygon{image.Pt(j-1, i-1)}
	}

	var pts Polygon
	i2, j2 := i1, j1
	i3, j3 := i, j
	for {
		d := direction(i2-i3, j2-j3)
		eastZero := false
		var i4, j4 int
		for k := 1; k <= 8; k++ {
			dd := (d + k) % 8
			r, c := i3+dRow[dd], j3+dCol[dd]
			if f.At(r, c) != 0 {
				i4, j4 = r, c
				break
			}
			if dd == 0 {
				eastZero = true
			}
		}

		switch {
		case eastZero:
			f.Set(i3, j3, -label)
		case f.At(i3, j3) == 1:
			f.Set(i3, j3, label)
		}
		pts = append(pts, image.Pt(j3-1, i3-1))

		if i4 == i && j4 == j && i3 == i1 && j3 == j1 {
			return pts
		}
		i2, j2 = i3, j3
		i3, j3 = i4, j4
	}
}

// compressChain drops every point whose incoming and outgoing steps share a
// direction. Rings of fewer than three points are returned unchanged.
func compressChain(p Polygon) Polygon {
	n := len(p)
	if n < 3 {
		return p
	}
	out := make(Polygon, 0, n)
	for k := 0; k < n; k++ {
		prev := p[(k-1+n)%n]
		next := p[(k+1)%n]
		in := p[k].Sub(prev)
		outStep := next.Sub(p[k])
		if in != outStep {
			out = append(out, p[k])
		}
	}
	if len(out) == 0 {
		return p
	}
	return out
}
