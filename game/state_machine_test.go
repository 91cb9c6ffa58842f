package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimaq12/sweeper/models"
)

func mustLayout(t *testing.T, width, height int, mines ...int) *models.GameState {
	t.Helper()
	g, err := CreateGameWithMines(width, height, mines)
	require.NoError(t, err)
	return g
}

func mustReveal(t *testing.T, g *models.GameState, index int) *models.GameState {
	t.Helper()
	next, err := RevealTile(g, index)
	require.NoError(t, err)
	return next
}

func mustFlag(t *testing.T, g *models.GameState, index int) *models.GameState {
	t.Helper()
	next, err := ToggleFlag(g, index)
	require.NoError(t, err)
	return next
}

func TestScenarioSingleCellWin(t *testing.T) {
	g, err := CreateGame(1, 1, 0, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	g = mustReveal(t, g, 0)

	assert.Equal(t, models.Won, g.Status)
	assert.Equal(t, models.Revealed, g.Cells[0].Visibility)
	assert.Equal(t, 0, g.Cells[0].Value)
}

func TestScenarioCenterMineLoss(t *testing.T) {
	g := mustLayout(t, 3, 3, 4)
	g = mustReveal(t, g, 4)

	assert.Equal(t, models.Lost, g.Status)
	assert.Equal(t, models.Revealed, g.Cells[4].Visibility)
	for i, cell := range g.Cells {
		if i != 4 {
			assert.Equal(t, models.Hidden, cell.Visibility, "cell %d", i)
		}
	}
}

func TestLossKeepsFlaggedMines(t *testing.T) {
	g := mustLayout(t, 4, 1, 0, 3)
	g = mustFlag(t, g, 0)
	g = mustReveal(t, g, 3)

	assert.Equal(t, models.Lost, g.Status)
	assert.Equal(t, models.Flagged, g.Cells[0].Visibility)
	assert.Equal(t, models.Revealed, g.Cells[3].Visibility)
	assert.Equal(t, models.Hidden, g.Cells[1].Visibility)
	assert.Equal(t, models.Hidden, g.Cells[2].Visibility)
}

func TestScenarioFlagLimit(t *testing.T) {
	g := mustLayout(t, 3, 3, 0, 8)
	g = mustFlag(t, g, 1)
	g = mustFlag(t, g, 2)
	require.Equal(t, 0, g.FlagsRemaining)

	next := mustFlag(t, g, 3)

	assert.Equal(t, g, next)
	assert.Equal(t, 0, next.FlagsRemaining)
	assert.Equal(t, models.Hidden, next.Cells[3].Visibility)
}

func TestScenarioUnflag(t *testing.T) {
	g := mustLayout(t, 3, 3, 0, 8)
	flagged := mustFlag(t, g, 5)
	require.Equal(t, 1, flagged.FlagsRemaining)
	require.Equal(t, models.Flagged, flagged.Cells[5].Visibility)

	unflagged := mustFlag(t, flagged, 5)

	assert.Equal(t, models.Hidden, unflagged.Cells[5].Visibility)
	assert.Equal(t, 2, unflagged.FlagsRemaining)
}

func TestScenarioRevealTwice(t *testing.T) {
	g := mustLayout(t, 3, 3, 0)
	once := mustReveal(t, g, 8)
	twice := mustReveal(t, once, 8)

	assert.Equal(t, once, twice)
}

func TestRevealDoesNotTouchInput(t *testing.T) {
	g := mustLayout(t, 5, 5, 24)
	before := g.Clone()

	next := mustReveal(t, g, 0)
	_ = mustFlag(t, next, 24)

	assert.Equal(t, before, g)
	assert.NotEqual(t, g, next)
}

func TestRevealFlaggedIsNoop(t *testing.T) {
	g := mustLayout(t, 3, 3, 4)
	g = mustFlag(t, g, 0)

	next := mustReveal(t, g, 0)

	assert.Equal(t, g, next)
}

func TestFlagRevealedIsNoop(t *testing.T) {
	g := mustLayout(t, 3, 3, 4)
	g = mustReveal(t, g, 0)

	next := mustFlag(t, g, 0)

	assert.Equal(t, g, next)
	assert.Equal(t, 1, next.FlagsRemaining)
}

func TestFloodFillOpensRegionAndBorder(t *testing.T) {
	// . . . . .
	// . . . . .
	// . . . 1 1
	// . . . 1 *
	g := mustLayout(t, 5, 4, 19)
	g = mustReveal(t, g, 0)

	assert.Equal(t, models.Won, g.Status)
	assert.Equal(t, models.Hidden, g.Cells[19].Visibility)
	assert.Equal(t, 19, g.CountVisibility(models.Revealed))
}

func TestFloodFillStopsAtNumbers(t *testing.T) {
	// Column of mines splits the board; the left side must stay untouched.
	//   * . . .
	//   * . . .
	//   * . . .
	g := mustLayout(t, 4, 3, 0, 4, 8)
	g = mustReveal(t, g, 3)

	assert.Equal(t, models.Won, g.Status)
	for _, mine := range []int{0, 4, 8} {
		assert.Equal(t, models.Hidden, g.Cells[mine].Visibility)
	}

	g = mustLayout(t, 5, 3, 0, 4, 8, 14)
	g = mustReveal(t, g, 2)
	assert.Equal(t, models.InProgress, g.Status)
	assert.Equal(t, models.Revealed, g.Cells[2].Visibility)
	assert.Equal(t, models.Hidden, g.Cells[3].Visibility)
}

func TestFloodFillSkipsFlags(t *testing.T) {
	g := mustLayout(t, 4, 4, 15)
	g = mustFlag(t, g, 1)
	g = mustReveal(t, g, 0)

	assert.Equal(t, models.Flagged, g.Cells[1].Visibility)
	assert.Equal(t, models.InProgress, g.Status)
	assert.Equal(t, 14, g.CountVisibility(models.Revealed))

	g = mustFlag(t, g, 1)
	g = mustReveal(t, g, 1)
	assert.Equal(t, models.Won, g.Status)
}

// zeroRegion computes the set a flood fill from start must open, using a
// breadth-first walk independent of showCells.
func zeroRegion(g *models.GameState, start int) map[int]bool {
	want := map[int]bool{start: true}
	if g.Cells[start].Value != 0 {
		return want
	}
	queue := []int{start}
	for len(queue) > 0 {
		index := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors(index) {
			if want[n] {
				continue
			}
			want[n] = true
			if g.Cells[n].Value == 0 {
				queue = append(queue, n)
			}
		}
	}
	return want
}

func TestFloodFillCoverageRandomBoards(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for round := 0; round < 50; round++ {
		g, err := CreateGame(12, 9, 12, rng)
		require.NoError(t, err)

		start := -1
		for i, cell := range g.Cells {
			if cell.Value == 0 {
				start = i
				break
			}
		}
		if start < 0 {
			continue
		}

		want := zeroRegion(g, start)
		next := mustReveal(t, g, start)

		for i, cell := range next.Cells {
			assert.Equal(t, want[i], cell.Visibility == models.Revealed, "round %d cell %d", round, i)
		}
		assertBoardInvariants(t, next)
	}
}

func TestFloodFillLargeEmptyBoard(t *testing.T) {
	g, err := CreateGame(500, 500, 0, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	g = mustReveal(t, g, 0)

	assert.Equal(t, models.Won, g.Status)
	assert.Equal(t, 500*500, g.CountVisibility(models.Revealed))
}

func TestWinWithHiddenAndFlaggedMines(t *testing.T) {
	g := mustLayout(t, 3, 1, 0, 2)
	g = mustFlag(t, g, 0)
	g = mustReveal(t, g, 1)

	assert.Equal(t, models.Won, g.Status)
	assert.Equal(t, models.Flagged, g.Cells[0].Visibility)
	assert.Equal(t, models.Hidden, g.Cells[2].Visibility)
}

func TestTerminalStatesAbsorbActions(t *testing.T) {
	lost := mustReveal(t, mustLayout(t, 3, 3, 4, 0), 4)
	require.Equal(t, models.Lost, lost.Status)

	won := mustReveal(t, mustLayout(t, 3, 1, 0), 2)
	require.Equal(t, models.Won, won.Status)

	for _, g := range []*models.GameState{lost, won} {
		next := g
		for i := range g.Cells {
			next = mustReveal(t, next, i)
			next = mustFlag(t, next, i)
		}
		assert.Equal(t, g, next)
	}
}

func TestIndexOutOfBounds(t *testing.T) {
	g := mustLayout(t, 3, 3, 4)

	for _, index := range []int{-1, 9, 100} {
		_, err := RevealTile(g, index)
		assert.ErrorIs(t, err, models.ErrIndexOutOfBounds)

		_, err = ToggleFlag(g, index)
		assert.ErrorIs(t, err, models.ErrIndexOutOfBounds)
	}
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	for round := 0; round < 30; round++ {
		g, err := CreateGame(8, 8, 10, rng)
		require.NoError(t, err)

		for step := 0; step < 200 && !g.Status.Terminal(); step++ {
			index := rng.Intn(len(g.Cells))
			if rng.Intn(3) == 0 {
				g = mustFlag(t, g, index)
			} else {
				g = mustReveal(t, g, index)
			}
			assertBoardInvariants(t, g)
		}
	}
}
