package viewmodel

import "github.com/dimaq12/sweeper/models"

// CellView is what a client may see of a cell. Value is only filled in
// once the cell is revealed.
type CellView struct {
	State string `json:"state"`
	Value *int   `json:"value,omitempty"`
}

type GameView struct {
	ID             string     `json:"id,omitempty"`
	Width          int        `json:"width"`
	Height         int        `json:"height"`
	Mines          int        `json:"mines"`
	FlagsRemaining int        `json:"flags_remaining"`
	Status         string     `json:"status"`
	Cells          []CellView `json:"cells"`
}

func NewGameView(id string, g *models.GameState) GameView {
	cells := make([]CellView, len(g.Cells))
	for i, cell := range g.Cells {
		view := CellView{State: cell.Visibility.String()}
		if cell.Visibility == models.Revealed {
			value := cell.Value
			view.Value = &value
		}
		cells[i] = view
	}

	return GameView{
		ID:             id,
		Width:          g.Width,
		Height:         g.Height,
		Mines:          g.MineCount,
		FlagsRemaining: g.FlagsRemaining,
		Status:         g.Status.String(),
		Cells:          cells,
	}
}
