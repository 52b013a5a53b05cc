package rain

// Rand is the random source used to break placement ties.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Slot is the placement-relevant view of an active trail.
type Slot struct {
	Column int
	Frame  int
}

// Allocate picks the column for a new trail given the active trails.
//
// Preference order:
//  1. a column with no trail in it or in either neighbour;
//  2. a column with no trail in it;
//  3. the column whose most displaced trail is closest to two thirds of
//     the viewport height, so the new line lands where it disturbs least.
//
// Ties are broken uniformly with rnd. Allocate has no side effects.
func Allocate(snapshot []Slot, width, height int, rnd Rand) int {
	if width <= 0 {
		return 0
	}

	occupied := make([]bool, width)
	crowded := make([]bool, width)
	for _, s := range snapshot {
		for c := s.Column - 1; c <= s.Column+1; c++ {
			if c >= 0 && c < width {
				crowded[c] = true
			}
		}
		if s.Column >= 0 && s.Column < width {
			occupied[s.Column] = true
		}
	}

	if c, ok := pick(width, rnd, func(c int) bool { return !crowded[c] }); ok {
		return c
	}
	if c, ok := pick(width, rnd, func(c int) bool { return !occupied[c] }); ok {
		return c
	}

	// Every column is busy: score each by its worst deviation.
	ref := height * 2 / 3
	deviation := make([]int, width)
	for c := range deviation {
		deviation[c] = -1
	}
	for _, s := range snapshot {
		if s.Column < 0 || s.Column >= width {
			continue
		}
		d := Deviation(s.Frame, height, ref)
		if d > deviation[s.Column] {
			deviation[s.Column] = d
		}
	}
	best := -1
	for _, d := range deviation {
		if d >= 0 && (best < 0 || d < best) {
			best = d
		}
	}
	c, _ := pick(width, rnd, func(c int) bool { return deviation[c] == best })
	return c
}

// Deviation is the vertical distance between a trail's current row and ref.
func Deviation(frame, height, ref int) int {
	row := frame
	if height > 0 {
		row = frame % height
	}
	d := row - ref
	if d < 0 {
		d = -d
	}
	return d
}

// pick chooses uniformly among the columns in [0, width) accepted by ok.
func pick(width int, rnd Rand, ok func(int) bool) (int, bool) {
	candidates := make([]int, 0, width)
	for c := range width {
		if ok(c) {
			candidates = append(candidates, c)
		}
	}
	switch len(candidates) {
	case 0:
		return 0, false
	case 1:
		return candidates[0], true
	}
	return candidates[rnd.Intn(len(candidates))], true
}
