package world

import "github.com/zyedidia/generic/mapset"

// Visible returns every in-bounds coordinate within Manhattan distance
// radius of pos. Vision is radius-only: walls do not occlude. The caller
// accumulates results into its revealed set; this function holds no state.
//
// Malformed bounds degrade to the immediate 3x3 neighborhood of pos,
// clipped at the origin.
func Visible(pos Position, radius, width, height int) mapset.Set[Position] {
	visible := mapset.New[Position]()

	if width <= 0 || height <= 0 {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := pos.X+dx, pos.Y+dy
				if nx >= 0 && ny >= 0 {
					visible.Put(Position{nx, ny})
				}
			}
		}
		return visible
	}

	for y := max(0, pos.Y-radius); y <= min(height-1, pos.Y+radius); y++ {
		for x := max(0, pos.X-radius); x <= min(width-1, pos.X+radius); x++ {
			if abs(x-pos.X)+abs(y-pos.Y) <= radius {
				visible.Put(Position{x, y})
			}
		}
	}
	return visible
}
