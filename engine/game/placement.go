package game

// Below this share of free cells, sampling is skipped for enumeration
const sparseFreeRatio = 0.25

func (s *Simulation) placeFood() {
	c, ok := s.randomFreeCell()
	s.food, s.hasFood = c, ok
}

func (s *Simulation) placeSpecial() bool {
	c, ok := s.randomFreeCell()
	if !ok {
		return false
	}
	s.special = c
	s.hasSpecial = true
	s.specialAge = 0
	return true
}

// randomFreeCell picks a uniformly random cell that holds no snake, wall,
// food or special food. Rejection sampling is bounded; when it fails, or the
// grid is nearly full, the free cells are enumerated instead.
func (s *Simulation) randomFreeCell() (Cell, bool) {
	bs := s.cfg.BlockSize
	cols, rows := s.layout.Cols, s.layout.Rows

	free := s.MaxCapacity() - len(s.snake)
	if s.hasFood {
		free--
	}
	if s.hasSpecial {
		free--
	}
	if free <= 0 {
		return Cell{}, false
	}

	if float64(free)/float64(cols*rows) >= sparseFreeRatio {
		for i := 0; i < s.cfg.PlacementAttempts; i++ {
			c := Cell{s.rng.IntN(cols) * bs, s.rng.IntN(rows) * bs}
			if s.isFree(c) {
				return c, true
			}
		}
	}

	occupied := make(map[Cell]struct{}, len(s.snake)+2)
	for _, c := range s.snake {
		occupied[c] = struct{}{}
	}
	if s.hasFood {
		occupied[s.food] = struct{}{}
	}
	if s.hasSpecial {
		occupied[s.special] = struct{}{}
	}

	cells := make([]Cell, 0, free)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if s.layout.IsWall(x, y) {
				continue
			}
			c := Cell{x * bs, y * bs}
			if _, ok := occupied[c]; ok {
				continue
			}
			cells = append(cells, c)
		}
	}
	if len(cells) == 0 {
		return Cell{}, false
	}
	return cells[s.rng.IntN(len(cells))], true
}

func (s *Simulation) isFree(c Cell) bool {
	if s.isWall(c) {
		return false
	}
	if s.hasFood && c == s.food {
		return false
	}
	if s.hasSpecial && c == s.special {
		return false
	}
	for _, b := range s.snake {
		if b == c {
			return false
		}
	}
	return true
}
