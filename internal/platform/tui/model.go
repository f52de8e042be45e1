package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/registry"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

// RunInfo labels the runs a Model records.
type RunInfo struct {
	Source     string // storage.SourceTerminal or storage.SourceSSH
	Player     string
	Difficulty string
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       *KeyMapper
	info       RunInfo
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	frames     uint64
	embedded   bool // back returns to the caller instead of quitting
	quitting   bool
	backed     bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		info:       RunInfo{Source: storage.SourceTerminal},
		inputFrame: core.NewInputFrame(),
	}
}

// WithRunInfo returns a copy of the model that labels saved runs with info.
func (m Model) WithRunInfo(info RunInfo) Model {
	m.info = info
	return m
}

// WithLogger returns a copy of the model that reports save failures to l.
func (m Model) WithLogger(l *log.Logger) Model {
	m.logger = l
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// gameState is picked up on the first tick (value receiver)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backed = true
		if !m.embedded {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackRequested returns true once the player leaves a paused or finished game.
func (m Model) BackRequested() bool {
	return m.backed
}

// handleResize processes window resize events.
// The game viewport scales to the new size, so the session keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.frames = 0
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if !m.gameState.GameOver && !m.gameState.Paused {
		m.frames++
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the final score and, when the game reports one, the run.
func (m *Model) saveRun() {
	if m.store == nil {
		return
	}
	if m.gameState.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			m.logError("save score", err)
		}
	}

	reporter, ok := m.game.(registry.RunReporter)
	if !ok {
		return
	}
	report := reporter.RunReport()
	if report.Frames == 0 {
		return
	}
	_, err := m.store.SaveRun(NewRunRecord(m.game.ID(), m.config.Seed, m.gameState.Score, report, m.info))
	if err != nil {
		m.logError("save run", err)
	}
}

func (m *Model) logError(what string, err error) {
	if m.logger != nil {
		m.logger.Warn("cannot "+what, "game", m.game.ID(), "err", err)
	}
}

// NewRunRecord builds the storage row for a finished run.
func NewRunRecord(gameID string, seed int64, score int, r registry.RunReport, info RunInfo) storage.RunRecord {
	return storage.RunRecord{
		GameID:         gameID,
		Source:         info.Source,
		Player:         info.Player,
		Seed:           seed,
		Difficulty:     info.Difficulty,
		Score:          score,
		Level:          r.Level,
		Frames:         int64(r.Frames), //#nosec G115 -- frame counts stay far below MaxInt64
		WavesSpawned:   r.WavesSpawned,
		EnemiesSpawned: r.EnemiesSpawned,
		Kills:          r.Kills,
		Escaped:        r.Escaped,
		ShotsFired:     r.ShotsFired,
		EnemyShots:     r.EnemyShots,
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".shooter", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(model Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
