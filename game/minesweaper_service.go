package game

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"

	"github.com/dimaq12/sweeper/models"
)

type TaskType int

const (
	RevealTaskType TaskType = iota
	FlagTaskType
	NewGameTaskType
	QuitTaskType
)

type Task struct {
	Type  TaskType
	Index int
}

func NewTask(taskType TaskType, index int) *Task {
	return &Task{Type: taskType, Index: index}
}

// BoardConfig is what "new game" replays.
type BoardConfig struct {
	Width  int
	Height int
	Mines  int
}

// MinesweeperService is the terminal front end: it turns key presses into
// tasks, runs them against the controller and redraws the board.
type MinesweeperService struct {
	controller *GameController
	renderer   *Renderer
	app        *tview.Application
	board      BoardConfig
	log        logrus.FieldLogger
}

func NewMinesweeperService(controller *GameController, board BoardConfig, log logrus.FieldLogger) *MinesweeperService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &MinesweeperService{
		controller: controller,
		renderer:   NewRenderer(),
		board:      board,
		log:        log,
	}
}

// Run starts a game and blocks until the player quits.
func (s *MinesweeperService) Run() error {
	if _, err := s.newGame(); err != nil {
		return err
	}

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.renderer.boardTable, 0, 1, true).
		AddItem(s.renderer.statusView, 1, 0, false)

	s.app = tview.NewApplication()
	s.app.SetRoot(layout, true)
	s.handleInput()

	return s.app.Run()
}

// Dispatch runs one task and redraws whatever it changed. It reports
// whether the application should keep running.
func (s *MinesweeperService) Dispatch(task *Task) bool {
	var (
		state *models.GameState
		err   error
	)

	switch task.Type {
	case RevealTaskType:
		state, err = s.controller.Reveal(task.Index)
	case FlagTaskType:
		state, err = s.controller.ToggleFlag(task.Index)
	case NewGameTaskType:
		state, err = s.newGame()
	case QuitTaskType:
		return false
	}

	if err != nil {
		s.log.WithError(err).WithField("task", task.Type).Warn("task failed")
		return true
	}
	s.renderer.DrawBoard(state)
	return true
}

func (s *MinesweeperService) newGame() (*models.GameState, error) {
	state, err := s.controller.StartGame(s.board.Width, s.board.Height, s.board.Mines)
	if err != nil {
		return nil, err
	}
	s.renderer.DrawBoard(state)
	return state, nil
}

func (s *MinesweeperService) taskFor(event *tcell.EventKey, row, col int) *Task {
	index := col + row*s.board.Width

	switch event.Key() {
	case tcell.KeyEnter:
		return NewTask(RevealTaskType, index)
	case tcell.KeyEscape:
		return NewTask(QuitTaskType, index)
	case tcell.KeyRune:
		switch event.Rune() {
		case 'f', 'F':
			return NewTask(FlagTaskType, index)
		case 'n', 'N':
			return NewTask(NewGameTaskType, index)
		case 'q', 'Q':
			return NewTask(QuitTaskType, index)
		}
	}
	return nil
}

func (s *MinesweeperService) handleInput() {
	s.renderer.boardTable.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		row, col := s.renderer.boardTable.GetSelection()

		task := s.taskFor(event, row, col)
		if task == nil {
			// Arrow keys and the like still move the selection.
			return event
		}
		if !s.Dispatch(task) {
			s.app.Stop()
		}
		return nil
	})
}
