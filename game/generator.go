package game

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/dimaq12/sweeper/models"
)

// CreateGame builds a new game with mineCount mines placed uniformly at
// random on a width x height board. A nil rng falls back to a source seeded
// from the current time; pass a seeded one for reproducible boards.
func CreateGame(width, height, mineCount int, rng *rand.Rand) (*models.GameState, error) {
	if err := validateConfig(width, height, mineCount); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Step 1: lay the mines out in the first mineCount slots.
	slots := make([]int, width*height)
	for i := 0; i < mineCount; i++ {
		slots[i] = models.Mine
	}

	// Step 2: Fisher-Yates shuffle so every cell is equally likely to hold a mine.
	// https://en.wikipedia.org/wiki/Fisher–Yates_shuffle
	for i := len(slots) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		slots[i], slots[j] = slots[j], slots[i]
	}

	return newState(width, height, mineCount, slots), nil
}

// CreateGameWithMines builds a game whose mines sit exactly at the given
// indices. Duplicate or off-board indices are rejected.
func CreateGameWithMines(width, height int, mines []int) (*models.GameState, error) {
	if err := validateConfig(width, height, len(mines)); err != nil {
		return nil, err
	}

	slots := make([]int, width*height)
	for _, index := range mines {
		if index < 0 || index >= len(slots) {
			return nil, fmt.Errorf("%w: mine index %d outside %dx%d board", models.ErrInvalidConfiguration, index, width, height)
		}
		if slots[index] == models.Mine {
			return nil, fmt.Errorf("%w: duplicate mine index %d", models.ErrInvalidConfiguration, index)
		}
		slots[index] = models.Mine
	}

	return newState(width, height, len(mines), slots), nil
}

func validateConfig(width, height, mineCount int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", models.ErrInvalidConfiguration, width, height)
	}
	if width > math.MaxInt/height {
		return fmt.Errorf("%w: %dx%d board is too large", models.ErrInvalidConfiguration, width, height)
	}
	if mineCount < 0 || mineCount > width*height {
		return fmt.Errorf("%w: %d mines do not fit a %dx%d board", models.ErrInvalidConfiguration, mineCount, width, height)
	}
	return nil
}

// newState fills in adjacency counts for every non-mine slot and wraps the
// result into a fresh, fully hidden game.
func newState(width, height, mineCount int, slots []int) *models.GameState {
	cells := make([]models.Cell, len(slots))
	for index, value := range slots {
		if value != models.Mine {
			value = countNearbyMines(slots, index, width, height)
		}
		cells[index] = models.Cell{Value: value, Visibility: models.Hidden}
	}

	return &models.GameState{
		Cells:          cells,
		Status:         models.InProgress,
		FlagsRemaining: mineCount,
		Width:          width,
		Height:         height,
		MineCount:      mineCount,
	}
}

func countNearbyMines(slots []int, index, width, height int) int {
	nearbyMines := 0
	for _, neighbor := range models.NeighborIndices(index, width, height) {
		if slots[neighbor] == models.Mine {
			nearbyMines++
		}
	}
	return nearbyMines
}
