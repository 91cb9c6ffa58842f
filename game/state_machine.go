package game

import (
	"fmt"

	"github.com/dimaq12/sweeper/models"
)

// RevealTile uncovers the cell at index and returns the resulting game.
// The input state is never modified.
//
// Revealing a mine loses the game and uncovers every mine that is not
// flagged. Revealing a cell with no nearby mines cascades through its
// neighbours until the whole zero region and its numbered border are open.
// Hidden is the only state that can be revealed; anything else, or any
// action after the game ended, returns an unchanged copy.
func RevealTile(state *models.GameState, index int) (*models.GameState, error) {
	if !state.ValidIndex(index) {
		return nil, indexError(state, index)
	}

	game := state.Clone()
	if game.Status != models.InProgress || game.Cells[index].Visibility != models.Hidden {
		return game, nil
	}

	if game.Cells[index].IsMine() {
		revealUnflaggedMines(game)
		game.Status = models.Lost
		return game, nil
	}

	showCells(game, index)

	// No mine can be revealed at this point, so every covered cell left is a mine.
	if len(game.Cells)-game.CountVisibility(models.Revealed) == game.MineCount {
		game.Status = models.Won
	}

	return game, nil
}

// ToggleFlag places or removes a flag on the cell at index. A new flag is
// only placed while flags remain; flagging never changes the status.
func ToggleFlag(state *models.GameState, index int) (*models.GameState, error) {
	if !state.ValidIndex(index) {
		return nil, indexError(state, index)
	}

	game := state.Clone()
	if game.Status != models.InProgress || game.Cells[index].Visibility == models.Revealed {
		return game, nil
	}

	cell := &game.Cells[index]
	switch cell.Visibility {
	case models.Flagged:
		cell.Visibility = models.Hidden
		game.FlagsRemaining++
	case models.Hidden:
		if game.FlagsRemaining == 0 {
			return game, nil
		}
		cell.Visibility = models.Flagged
		game.FlagsRemaining--
	}

	return game, nil
}

// showCells reveals start and flood-fills through zero-valued cells with
// an explicit stack. A cell is pushed only while Hidden and flipped to
// Revealed when popped, so each cell is processed at most once.
func showCells(game *models.GameState, start int) {
	pending := []int{start}
	for len(pending) > 0 {
		index := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		cell := &game.Cells[index]
		if cell.Visibility != models.Hidden {
			continue
		}
		cell.Visibility = models.Revealed

		if cell.Value != 0 {
			continue
		}
		for _, neighbor := range game.Neighbors(index) {
			if game.Cells[neighbor].Visibility == models.Hidden {
				pending = append(pending, neighbor)
			}
		}
	}
}

func revealUnflaggedMines(game *models.GameState) {
	for i := range game.Cells {
		if game.Cells[i].IsMine() && game.Cells[i].Visibility != models.Flagged {
			game.Cells[i].Visibility = models.Revealed
		}
	}
}

func indexError(state *models.GameState, index int) error {
	return fmt.Errorf("%w: %d not in [0, %d)", models.ErrIndexOutOfBounds, index, state.Size())
}
