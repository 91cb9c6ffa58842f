package game

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/dimaq12/sweeper/models"
)

var numberColors = map[int]tcell.Color{
	1: tcell.ColorBlue,
	2: tcell.ColorGreen,
	3: tcell.ColorRed,
	4: tcell.ColorPurple,
	5: tcell.ColorYellow,
	6: tcell.ColorPink,
	7: tcell.ColorGray,
	8: tcell.ColorMaroon,
}

type Renderer struct {
	boardTable *tview.Table
	statusView *tview.TextView
}

func NewRenderer() *Renderer {
	return &Renderer{
		boardTable: tview.NewTable(),
		statusView: tview.NewTextView().SetTextAlign(tview.AlignCenter),
	}
}

func (r *Renderer) DrawBoard(game *models.GameState) {
	r.boardTable.Clear()
	for index := range game.Cells {
		r.RenderCell(game, index)
	}

	r.boardTable.SetSelectable(true, true)
	r.DrawStatus(game)
}

func (r *Renderer) RenderCell(game *models.GameState, index int) {
	col, row := game.Coords(index)
	cell := game.Cells[index]

	tableCell := tview.NewTableCell(CellText(cell)).SetAlign(tview.AlignCenter)
	if color, ok := CellColor(cell); ok {
		tableCell.SetTextColor(color)
	}
	r.boardTable.SetCell(row, col, tableCell)
}

func (r *Renderer) DrawStatus(game *models.GameState) {
	r.statusView.SetText(StatusText(game))
}

// CellText is the glyph shown for a cell: "." covered, "F" flagged, "*" a
// revealed mine, blank for a revealed zero and the count otherwise.
func CellText(cell models.Cell) string {
	switch cell.Visibility {
	case models.Flagged:
		return "F"
	case models.Revealed:
		switch {
		case cell.IsMine():
			return "*"
		case cell.Value == 0:
			return " "
		default:
			return strconv.Itoa(cell.Value)
		}
	default:
		return "."
	}
}

func CellColor(cell models.Cell) (tcell.Color, bool) {
	switch cell.Visibility {
	case models.Flagged:
		return tcell.ColorOrangeRed, true
	case models.Revealed:
		if cell.IsMine() {
			return tcell.ColorRed, true
		}
		color, ok := numberColors[cell.Value]
		return color, ok
	default:
		return tcell.ColorDefault, false
	}
}

func StatusText(game *models.GameState) string {
	switch game.Status {
	case models.Won:
		return "Congratulations! You won the game! [n] new game  [q] quit"
	case models.Lost:
		return "Game Over! You hit a mine. [n] new game  [q] quit"
	default:
		return fmt.Sprintf("Flags: %d/%d  [enter] reveal  [f] flag  [n] new  [q] quit", game.FlagsRemaining, game.MineCount)
	}
}
