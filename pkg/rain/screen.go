package rain

// Cell is the visible state of one grid position.
type Cell struct {
	Symbol rune
	Color  uint8
}

// blank is the state every cell starts in.
var blank = Cell{Symbol: ' ', Color: BlankColor}

// Change is a cell that was written during a tick.
type Change struct {
	Column int
	Row    int
	Cell
}

// Screen is the persistent grid the ticker composites trails onto.
// It is indexed [column][row] and never reallocated after creation.
type Screen struct {
	cells  [][]Cell
	width  int
	height int
}

// NewScreen allocates a width×height grid of blank cells.
func NewScreen(width, height int) *Screen {
	cells := make([][]Cell, width)
	for c := range cells {
		col := make([]Cell, height)
		for r := range col {
			col[r] = blank
		}
		cells[c] = col
	}
	return &Screen{cells: cells, width: width, height: height}
}

// Size returns the allocated dimensions.
func (s *Screen) Size() (width, height int) {
	return s.width, s.height
}

// At returns the cell at (column, row).
func (s *Screen) At(column, row int) Cell {
	return s.cells[column][row]
}

// draw writes symbol/color to (column, row) unless the cell already shows
// it. A space matches any colour, since the colour of a blank is invisible.
func (s *Screen) draw(column, row int, symbol rune, color uint8, changes []Change) []Change {
	cur := s.cells[column][row]
	if cur.Symbol == symbol && (cur.Color == color || symbol == ' ') {
		return changes
	}
	cell := Cell{Symbol: symbol, Color: color}
	s.cells[column][row] = cell
	return append(changes, Change{Column: column, Row: row, Cell: cell})
}

// clear unconditionally blanks (column, row) and records it.
func (s *Screen) clear(column, row int, changes []Change) []Change {
	cell := Cell{Symbol: ' ', Color: ClearColor}
	s.cells[column][row] = cell
	return append(changes, Change{Column: column, Row: row, Cell: cell})
}
