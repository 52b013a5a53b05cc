package rain

// trail is one in-flight line falling down a single column.
type trail struct {
	text   []rune
	column int
	frame  int
}

func newTrail(line string, column int) *trail {
	return &trail{text: []rune(line), column: column}
}

// lifetime is the number of ticks until even the dimmest character of the
// trail has scrolled past.
func (t *trail) lifetime() int {
	return len(t.text) + GradientLen
}

func (t *trail) done() bool {
	return t.frame >= t.lifetime()
}

// advance draws one animation step of t onto s and moves it forward.
// Rows wrap at height, the viewport height.
func (t *trail) advance(s *Screen, height int, changes []Change) []Change {
	for i, color := range gradient {
		src := t.frame - i
		if src < 0 || src >= len(t.text) {
			continue
		}
		changes = s.draw(t.column, src%height, t.text[src], color, changes)
	}
	if tail := t.frame - GradientLen; tail >= 0 {
		changes = s.clear(t.column, tail%height, changes)
	}
	t.frame++
	return changes
}

// registry holds the active trails. It is not safe for concurrent use;
// the engine lock guards it.
type registry struct {
	trails []*trail
}

func (r *registry) add(t *trail) {
	r.trails = append(r.trails, t)
}

// prune drops finished trails in place and reports how many were removed.
func (r *registry) prune() int {
	kept := r.trails[:0]
	for _, t := range r.trails {
		if !t.done() {
			kept = append(kept, t)
		}
	}
	removed := len(r.trails) - len(kept)
	clear(r.trails[len(kept):])
	r.trails = kept
	return removed
}

// snapshot returns the placement view of every active trail.
func (r *registry) snapshot() []Slot {
	slots := make([]Slot, len(r.trails))
	for i, t := range r.trails {
		slots[i] = Slot{Column: t.column, Frame: t.frame}
	}
	return slots
}

func (r *registry) len() int {
	return len(r.trails)
}
