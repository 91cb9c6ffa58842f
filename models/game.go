package models

import "errors"

// Mine is the cell value that marks a mine.
const Mine = -1

var (
	ErrInvalidConfiguration = errors.New("invalid game configuration")
	ErrIndexOutOfBounds     = errors.New("cell index out of bounds")
)

type Visibility int

const (
	Hidden Visibility = iota
	Flagged
	Revealed
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	default:
		return "unknown"
	}
}

type Status int

const (
	InProgress Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further action can change the game.
func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

type Cell struct {
	Value      int
	Visibility Visibility
}

func (c Cell) IsMine() bool {
	return c.Value == Mine
}

// GameState is one game instance. Cells are stored row-major,
// so the cell at (x, y) lives at index x + y*Width.
type GameState struct {
	Cells          []Cell
	Status         Status
	FlagsRemaining int
	Width          int
	Height         int
	MineCount      int
}

// Clone returns a deep copy that shares no cells with g.
func (g *GameState) Clone() *GameState {
	clone := *g
	clone.Cells = make([]Cell, len(g.Cells))
	copy(clone.Cells, g.Cells)
	return &clone
}

func (g *GameState) Size() int {
	return g.Width * g.Height
}

func (g *GameState) ValidIndex(index int) bool {
	return index >= 0 && index < len(g.Cells)
}

func (g *GameState) Index(x, y int) int {
	return x + y*g.Width
}

func (g *GameState) Coords(index int) (x, y int) {
	return index % g.Width, index / g.Width
}

// Neighbors returns the indices of the up to 8 cells around index,
// skipping positions that fall off the board.
func (g *GameState) Neighbors(index int) []int {
	return NeighborIndices(index, g.Width, g.Height)
}

// NeighborIndices is Neighbors for a bare width x height grid.
func NeighborIndices(index, width, height int) []int {
	x, y := index%width, index/width
	neighbors := make([]int, 0, 8)
	for deltaRow := -1; deltaRow <= 1; deltaRow++ {
		for deltaCol := -1; deltaCol <= 1; deltaCol++ {
			if deltaRow == 0 && deltaCol == 0 {
				continue
			}
			nx, ny := x+deltaCol, y+deltaRow
			if nx >= 0 && nx < width && ny >= 0 && ny < height {
				neighbors = append(neighbors, nx+ny*width)
			}
		}
	}
	return neighbors
}

// CountVisibility counts cells currently in visibility v.
func (g *GameState) CountVisibility(v Visibility) int {
	n := 0
	for _, cell := range g.Cells {
		if cell.Visibility == v {
			n++
		}
	}
	return n
}
