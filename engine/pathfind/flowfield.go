package pathfind

// DistanceField stores the step count from an origin to every cell, -1 when
// the cell cannot be reached
type DistanceField struct {
	Width, Height int
	Dist          []int
}

// NewDistanceField floods outward from origin over passable cells. The origin
// itself need not be passable.
func NewDistanceField(ng *NavGrid, origin Point) *DistanceField {
	w, h := ng.Width, ng.Height
	df := &DistanceField{
		Width:  w,
		Height: h,
		Dist:   make([]int, w*h),
	}
	for i := range df.Dist {
		df.Dist[i] = -1
	}
	if !ng.InBounds(origin.X, origin.Y) {
		return df
	}
	df.Dist[origin.Y*w+origin.X] = 0

	// BFS integration pass
	queue := []Point{origin}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curDist := df.Dist[cur.Y*w+cur.X]
		for _, d := range Directions {
			np := cur.Step(d)
			if !ng.Passable(np.X, np.Y) {
				continue
			}
			idx := np.Y*w + np.X
			if df.Dist[idx] < 0 {
				df.Dist[idx] = curDist + 1
				queue = append(queue, np)
			}
		}
	}
	return df
}

// Distance returns the steps to (x,y), -1 if unreachable
func (df *DistanceField) Distance(x, y int) int {
	if x < 0 || y < 0 || x >= df.Width || y >= df.Height {
		return -1
	}
	return df.Dist[y*df.Width+x]
}

// Reachable counts the cells reachable from the origin, the origin excluded
func (df *DistanceField) Reachable() int {
	n := 0
	for _, d := range df.Dist {
		if d > 0 {
			n++
		}
	}
	return n
}
