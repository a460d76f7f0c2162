package model

import "sort"

// Gap is an empty rectangular region inside a layout, in grid cells.
type Gap struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns the number of cells in the gap.
func (g Gap) Area() int {
	return g.Width * g.Height
}

// MinGapArea is the smallest region (in cells) reported as a gap.
// Single stray cells are not worth surfacing.
const MinGapArea = 2

// DetectGaps finds empty rectangles inside the area spanned by the layout
// (GridWidth columns by TotalHeight rows). Regions are claimed greedily,
// largest first, so the returned gaps never overlap each other.
func DetectGaps(l GridLayout) []Gap {
	w, h := l.GridWidth, l.TotalHeight
	if w <= 0 || h <= 0 {
		return nil
	}

	used := make([][]bool, h)
	for y := range used {
		used[y] = make([]bool, w)
	}
	for _, p := range l.Positions {
		for y := p.Y; y < p.Bottom() && y < h; y++ {
			for x := p.X; x < p.Right() && x < w; x++ {
				used[y][x] = true
			}
		}
	}

	var gaps []Gap
	for {
		g, ok := largestEmptyRect(used)
		if !ok || g.Area() < MinGapArea {
			break
		}
		for y := g.Y; y < g.Y+g.Height; y++ {
			for x := g.X; x < g.X+g.Width; x++ {
				used[y][x] = true
			}
		}
		gaps = append(gaps, g)
	}

	// Largest first, then scan order
	sort.SliceStable(gaps, func(i, j int) bool {
		if gaps[i].Area() != gaps[j].Area() {
			return gaps[i].Area() > gaps[j].Area()
		}
		if gaps[i].Y != gaps[j].Y {
			return gaps[i].Y < gaps[j].Y
		}
		return gaps[i].X < gaps[j].X
	})
	return gaps
}

// largestEmptyRect finds the largest all-free rectangle using the
// histogram method: each row extends a per-column run of free cells
// and every run is widened as far as its neighbours allow.
func largestEmptyRect(used [][]bool) (Gap, bool) {
	if len(used) == 0 {
		return Gap{}, false
	}
	w := len(used[0])
	heights := make([]int, w)
	var best Gap
	found := false

	for y, row := range used {
		for x := 0; x < w; x++ {
			if row[x] {
				heights[x] = 0
			} else {
				heights[x]++
			}
		}
		for x := 0; x < w; x++ {
			hx := heights[x]
			if hx == 0 {
				continue
			}
			left := x
			for left > 0 && heights[left-1] >= hx {
				left--
			}
			right := x
			for right < w-1 && heights[right+1] >= hx {
				right++
			}
			g := Gap{X: left, Y: y - hx + 1, Width: right - left + 1, Height: hx}
			if !found || g.Area() > best.Area() ||
				(g.Area() == best.Area() && (g.Y < best.Y || (g.Y == best.Y && g.X < best.X))) {
				best = g
				found = true
			}
		}
	}
	return best, found
}

// TotalGapArea returns the number of cells across all gaps.
func TotalGapArea(gaps []Gap) int {
	total := 0
	for _, g := range gaps {
		total += g.Area()
	}
	return total
}
