package server

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dimaq12/sweeper/game"
	"github.com/dimaq12/sweeper/models"
	"github.com/dimaq12/sweeper/viewmodel"
)

var ErrGameNotFound = errors.New("game not found")

// Store keeps the games currently being played, one controller per id.
// Games live only as long as the process does.
type Store struct {
	mu       sync.RWMutex
	games    map[string]*game.GameController
	maxCells int
	log      logrus.FieldLogger
}

// NewStore caps every board at maxCells cells; zero or less means no cap.
func NewStore(maxCells int, log logrus.FieldLogger) *Store {
	return &Store{games: make(map[string]*game.GameController), maxCells: maxCells, log: log}
}

func (s *Store) Create(req NewGameRequest) (string, *models.GameState, error) {
	if err := s.checkSize(req); err != nil {
		return "", nil, err
	}
	if len(req.Layout) > 0 && req.Mines != 0 {
		return "", nil, fmt.Errorf("%w: send either layout or mines, not both", models.ErrInvalidConfiguration)
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	id := uuid.New().String()
	controller := game.NewGameController(rand.New(rand.NewSource(seed)), s.log.WithField("game", id))

	var (
		state *models.GameState
		err   error
	)
	if len(req.Layout) > 0 {
		state, err = controller.StartLayout(req.Width, req.Height, req.Layout)
	} else {
		state, err = controller.StartGame(req.Width, req.Height, req.Mines)
	}
	if err != nil {
		return "", nil, err
	}

	s.mu.Lock()
	s.games[id] = controller
	s.mu.Unlock()
	return id, state, nil
}

// checkSize rejects boards above the cap before anything is allocated.
func (s *Store) checkSize(req NewGameRequest) error {
	if s.maxCells <= 0 || req.Width <= 0 || req.Height <= 0 {
		return nil
	}
	if req.Width > s.maxCells/req.Height {
		return fmt.Errorf("%w: %dx%d board exceeds %d cells", models.ErrInvalidConfiguration, req.Width, req.Height, s.maxCells)
	}
	return nil
}

func (s *Store) Get(id string) (*game.GameController, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	controller, ok := s.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return controller, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return ErrGameNotFound
	}
	delete(s.games, id)
	return nil
}

type NewGameRequest struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Mines  int    `json:"mines"`
	Seed   *int64 `json:"seed"`
	Layout []int  `json:"layout"`
}

// ActionRequest addresses a cell either by Index or by X and Y.
type ActionRequest struct {
	Index *int `json:"index"`
	X     *int `json:"x"`
	Y     *int `json:"y"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Server struct {
	store *Store
	log   logrus.FieldLogger
}

func NewServer(maxCells int, log logrus.FieldLogger) *Server {
	return &Server{store: NewStore(maxCells, log), log: log}
}

// Router wires every route onto a fresh gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	games := r.Group("/games")
	games.POST("", s.HandleNew)
	games.GET("/:id", s.HandleGet)
	games.DELETE("/:id", s.HandleDelete)
	games.POST("/:id/reveal", s.HandleAction(game.RevealTaskType))
	games.POST("/:id/flag", s.HandleAction(game.FlagTaskType))
	return r
}

func (s *Server) HandleNew(c *gin.Context) {
	var req NewGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
		return
	}

	id, state, err := s.store.Create(req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewmodel.NewGameView(id, state))
}

func (s *Server) HandleGet(c *gin.Context) {
	id := c.Param("id")
	controller, err := s.store.Get(id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewmodel.NewGameView(id, controller.State()))
}

func (s *Server) HandleDelete(c *gin.Context) {
	if err := s.store.Delete(c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) HandleAction(taskType game.TaskType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		controller, err := s.store.Get(id)
		if err != nil {
			s.writeError(c, err)
			return
		}

		var req ActionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
			return
		}
		index, ok := req.resolve(controller.State())
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "index or x and y required"})
			return
		}

		var state *models.GameState
		switch taskType {
		case game.FlagTaskType:
			state, err = controller.ToggleFlag(index)
		default:
			state, err = controller.Reveal(index)
		}
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, viewmodel.NewGameView(id, state))
	}
}

// resolve turns the request into a board index. Coordinates off the board
// map to -1 so the engine reports them as out of bounds.
func (r ActionRequest) resolve(state *models.GameState) (int, bool) {
	if r.Index != nil {
		return *r.Index, true
	}
	if r.X == nil || r.Y == nil {
		return 0, false
	}
	x, y := *r.X, *r.Y
	if x < 0 || x >= state.Width || y < 0 || y >= state.Height {
		return -1, true
	}
	return state.Index(x, y), true
}

func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidConfiguration), errors.Is(err, models.ErrIndexOutOfBounds):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.log.WithError(err).Error("request failed")
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Debug("request")
	}
}
