package game

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dimaq12/sweeper/models"
)

var ErrNoGame = errors.New("no game started")

// GameController owns the one game a front end is currently playing and
// swaps it for the state returned by every action.
type GameController struct {
	mu    sync.Mutex
	log   logrus.FieldLogger
	rng   *rand.Rand
	state *models.GameState
}

func NewGameController(rng *rand.Rand, log logrus.FieldLogger) *GameController {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &GameController{rng: rng, log: log}
}

func (c *GameController) StartGame(width, height, mineCount int) (*models.GameState, error) {
	c.mu.Lock()
	state, err := CreateGame(width, height, mineCount, c.rng)
	if err == nil {
		c.state = state
	}
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
		"mines":  mineCount,
	}).Info("new game started")
	return state.Clone(), nil
}

// StartLayout starts a game with mines at fixed indices.
func (c *GameController) StartLayout(width, height int, mines []int) (*models.GameState, error) {
	state, err := CreateGameWithMines(width, height, mines)
	if err != nil {
		return nil, err
	}
	c.replace(state)
	c.log.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
		"mines":  len(mines),
	}).Info("new game started from layout")
	return state.Clone(), nil
}

func (c *GameController) Reveal(index int) (*models.GameState, error) {
	return c.apply("reveal", index, RevealTile)
}

func (c *GameController) ToggleFlag(index int) (*models.GameState, error) {
	return c.apply("flag", index, ToggleFlag)
}

// State returns a copy of the current game, or nil before the first game.
func (c *GameController) State() *models.GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return nil
	}
	return c.state.Clone()
}

func (c *GameController) apply(action string, index int, op func(*models.GameState, int) (*models.GameState, error)) (*models.GameState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil {
		return nil, ErrNoGame
	}

	entry := c.log.WithFields(logrus.Fields{"action": action, "index": index})
	next, err := op(c.state, index)
	if err != nil {
		entry.WithError(err).Warn("action rejected")
		return nil, err
	}

	before := c.state.Status
	c.state = next
	entry.WithFields(logrus.Fields{
		"status":          next.Status,
		"flags_remaining": next.FlagsRemaining,
	}).Debug("action applied")
	if before != next.Status {
		entry.WithField("status", next.Status).Info("game over")
	}
	return next.Clone(), nil
}

func (c *GameController) replace(state *models.GameState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}
