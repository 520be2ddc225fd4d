package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/effects"
	"github.com/vovakirdan/tui-pinball/internal/geom"
	"github.com/vovakirdan/tui-pinball/internal/scenario"
	"github.com/vovakirdan/tui-pinball/internal/sim"
)

// PlungerStep is how far one pull or push key moves every plunger, in
// world units.
const PlungerStep = 5.0

// Rows reserved above and below the table.
const (
	hudRows  = 1
	helpRows = 1
)

var (
	hudStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model for watching one scenario run.
type Model struct {
	scenario   scenario.Scenario
	runner     *sim.Runner
	screen     *core.Screen
	store      sim.Saver
	config     core.RuntimeConfig
	keys       *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	state      core.ViewState
	logger     *log.Logger
	maxSteps   uint64
	status     string
	quitting   bool
	backToMenu bool
	saved      *bool // Shared across value copies so a run is saved once
}

// NewModel builds the scenario and a runner for it. store may be nil to
// skip saving. maxSteps of zero runs until the viewer is closed.
func NewModel(sc scenario.Scenario, simCfg config.SimConfig, store sim.Saver, cfg core.RuntimeConfig, maxSteps int, logger *log.Logger) (Model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	simCfg.Run.Seed = cfg.Seed

	arena, err := sc.Build()
	if err != nil {
		return Model{}, err
	}
	runner, err := sim.New(sc.ID, arena, simCfg, logger)
	if err != nil {
		return Model{}, err
	}

	h := help.New()
	h.ShowAll = false

	saved := false
	return Model{
		scenario:   sc,
		runner:     runner,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpRows, 1)),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		logger:     logger,
		maxSteps:   uint64(max(maxSteps, 0)), //#nosec G115 -- clamped to non-negative
		saved:      &saved,
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
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
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.finish()
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
		m.finish()
		return m, nil
	}
	return m, nil
}

// handleResize processes window resize events. The table is refitted to
// the new size without restarting the run.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpRows, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick applies queued input and advances the simulation.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) {
		m.restart()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}
	if m.inputFrame.Has(core.ActionPause) {
		m.state.Paused = !m.state.Paused
	}
	if m.inputFrame.Has(core.ActionPlungerPull) {
		m.movePlungers(geom.V(0, PlungerStep))
	}
	if m.inputFrame.Has(core.ActionPlungerPush) {
		m.movePlungers(geom.V(0, -PlungerStep))
	}

	advance := !m.state.Paused || m.inputFrame.Has(core.ActionStep)
	if advance && !m.state.Finished {
		m.runner.Tick()
		if m.maxSteps > 0 && m.runner.Stats().Steps >= m.maxSteps {
			m.state.Finished = true
			m.finish()
		}
	}
	m.refreshState()

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) refreshState() {
	stats := m.runner.Stats()
	m.state.Tick = m.runner.Arena.Tick()
	m.state.CeilingHits = stats.CeilingHits
	m.state.Contacts = stats.TotalContacts()
	m.state.Particles = 0
	if m.runner.Effects != nil {
		m.state.Particles = m.runner.Effects.Len()
	}
}

func (m *Model) movePlungers(delta geom.Vec2) {
	for i := range m.runner.Arena.Plungers {
		if err := m.runner.Arena.MovePlunger(i, delta); err != nil {
			m.logger.Warn("move plunger", "index", i, "error", err)
		}
	}
}

// restart saves the current run and rebuilds the scenario from scratch.
func (m *Model) restart() {
	m.finish()
	arena, err := m.scenario.Build()
	if err != nil {
		m.status = fmt.Sprintf("restart failed: %v", err)
		m.logger.Error("rebuild scenario", "scenario", m.scenario.ID, "error", err)
		return
	}
	m.config.Seed = time.Now().UnixNano()
	m.runner.Reset(arena, m.config.Seed)
	m.state = core.ViewState{Paused: m.state.Paused}
	saved := false
	m.saved = &saved
	m.status = ""
}

// finish stores the run once. Runs that never stepped are not stored.
func (m *Model) finish() {
	if *m.saved || m.runner.Stats().Steps == 0 {
		return
	}
	*m.saved = true
	res := m.runner.Result()
	if m.store != nil {
		if err := res.Save(m.store); err != nil {
			m.logger.Warn("could not save run", "error", err)
		}
	}
	m.logger.Info("run finished",
		"run", res.RunID,
		"steps", res.Stats.Steps,
		"ceiling", res.Stats.CeilingHits,
		"hash", fmt.Sprintf("%016x", res.Hash),
	)
}

// saveScreenshot saves the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		m.status = "screenshot failed"
		return
	}
	dir := filepath.Join(home, ".pinball", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.scenario.ID, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = "screenshot failed"
		return
	}
	m.status = "saved " + path
}

func (m Model) particles() []effects.Particle {
	if m.runner.Effects == nil {
		return nil
	}
	return m.runner.Effects.Particles()
}

// draw renders the table and HUD into the screen buffer.
func (m Model) draw() {
	DrawScene(m.screen, m.runner.Arena, m.particles(), sim.ParticlePalette, hudRows)
}

func (m Model) hud() string {
	line := fmt.Sprintf(" %s  tick %d  ceiling %d  contacts %d  particles %d",
		m.scenario.Title(), m.state.Tick, m.state.CeilingHits, m.state.Contacts, m.state.Particles)
	out := hudStyle.Render(line)
	switch {
	case m.state.Finished:
		out += pausedStyle.Render("  [DONE]")
	case m.state.Paused:
		out += pausedStyle.Render("  [PAUSED]")
	}
	if m.status != "" {
		out += helpStyle.Render("  " + m.status)
	}
	return out
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.draw()
	body := RenderScreen(m.screen)
	// First screen row is reserved for the HUD
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}

	var b strings.Builder
	b.WriteString(m.hud())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys.Keys())))
	return b.String()
}

// State returns what the viewer currently displays.
func (m Model) State() core.ViewState {
	return m.state
}

// Result returns a summary of the current run.
func (m Model) Result() sim.Result {
	return m.runner.Result()
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the viewer in the local terminal and blocks until it exits.
func Run(sc scenario.Scenario, simCfg config.SimConfig, store sim.Saver, cfg core.RuntimeConfig, maxSteps int, logger *log.Logger) (sim.Result, error) {
	model, err := NewModel(sc, simCfg, store, cfg, maxSteps, logger)
	if err != nil {
		return sim.Result{}, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return sim.Result{}, err
	}
	if fm, ok := final.(Model); ok {
		return fm.Result(), nil
	}
	return model.Result(), nil
}
