package rain

// Palette indices (xterm 256-colour) used by the engine.
const (
	// BlankColor is the colour of a cell nothing has been drawn into yet.
	BlankColor uint8 = 97

	// ClearColor is the colour written when a trail's tail erases a cell.
	ClearColor uint8 = 0
)

// band is a run of identical colour levels in the gradient.
type band struct {
	color uint8
	count int
}

// gradientBands describes the fade from the head of a trail backwards:
// a white head, a long bright green body, then dimmer greens.
var gradientBands = []band{
	{15, 1},
	{46, 12},
	{40, 6},
	{34, 3},
	{28, 3},
	{22, 3},
}

// gradient is the expanded table, index 0 being the newest character.
var gradient = expand(gradientBands)

// GradientLen is the number of colour levels behind a trail's head,
// including the head itself. It must equal the sum of gradientBands counts.
const GradientLen = 28

func expand(bands []band) []uint8 {
	var out []uint8
	for _, b := range bands {
		for range b.count {
			out = append(out, b.color)
		}
	}
	return out
}

// Gradient returns a copy of the colour table, head first.
func Gradient() []uint8 {
	out := make([]uint8, len(gradient))
	copy(out, gradient)
	return out
}
