package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/remixer/internal/control"
	"github.com/san-kum/remixer/internal/gesture"
	"github.com/san-kum/remixer/internal/remix"
	"go.uber.org/zap"
)

const (
	fineStep   = 1
	coarseStep = 10
	tickEvery  = 100 * time.Millisecond
)

type tickMsg time.Time

// ValueMsg tells the model that a slider moved outside of its own key
// handling, for example through a gesture nudge.
type ValueMsg struct{}

type resumeErrMsg struct{ err error }

type slider struct {
	name    string
	binding *control.Binding
	initial float64
	history func() []float64
}

type model struct {
	session *remix.Session
	resume  func() error
	logger  *zap.Logger

	sliders  []slider
	selected int
	stats    gesture.StatsSnapshot
	restarts int
	lastErr  error
	showHelp bool

	width  int
	height int
}

// NewModel builds the slider screen for s. resume reattaches the session
// to its sensor source after a pause; nil disables pausing.
func NewModel(s *remix.Session, resume func() error, logger *zap.Logger) tea.Model {
	return newModel(s, resume, logger)
}

func newModel(s *remix.Session, resume func() error, logger *zap.Logger) model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return model{
		session: s,
		resume:  resume,
		logger:  logger.Named("tui"),
		sliders: []slider{
			{name: "speed", binding: s.Speed(), initial: s.Speed().RealValue(), history: s.SpeedHistory},
			{name: "pitch", binding: s.Pitch(), initial: s.Pitch().RealValue(), history: s.PitchHistory},
		},
		stats:  s.Stats(),
		width:  80,
		height: 24,
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case ValueMsg:
		// Values are read from the bindings at render time.
	case resumeErrMsg:
		m.lastErr = msg.err
	case tickMsg:
		m.stats = m.session.Stats()
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	cur := m.sliders[m.selected].binding
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down", "j", "up", "k", "shift+tab":
		m.selected = (m.selected + 1) % len(m.sliders)
	case "right", "l":
		cur.Nudge(coarseStep)
	case "left", "h":
		cur.Nudge(-coarseStep)
	case "shift+right", "L":
		cur.Nudge(fineStep)
	case "shift+left", "H":
		cur.Nudge(-fineStep)
	case "home":
		cur.Drag(0)
	case "end":
		cur.Drag(control.Resolution)
	case "0":
		cur.SetRealValue(m.sliders[m.selected].initial)
	case "r":
		m.session.Restart()
		m.restarts++
	case " ":
		return m.togglePause()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m model) togglePause() (model, tea.Cmd) {
	if m.resume == nil {
		return m, nil
	}
	if m.session.Resumed() {
		m.session.Pause()
		return m, nil
	}
	resume := m.resume
	return m, func() tea.Msg {
		if err := resume(); err != nil {
			return resumeErrMsg{err: err}
		}
		return resumeErrMsg{}
	}
}

// Run shows the slider screen until the user quits or ctx ends. Slider
// changes made by other goroutines are forwarded to the screen without
// blocking the goroutine that made them.
func Run(ctx context.Context, s *remix.Session, resume func() error, logger *zap.Logger) error {
	p := tea.NewProgram(NewModel(s, resume, logger), tea.WithAltScreen(), tea.WithContext(ctx))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	n := newNotifier()
	ids := []struct {
		b  *control.Binding
		id control.ListenerID
	}{
		{s.Speed(), s.Speed().AddListener(n.listen)},
		{s.Pitch(), s.Pitch().AddListener(n.listen)},
	}
	defer func() {
		for _, l := range ids {
			l.b.RemoveListener(l.id)
		}
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		n.pump(ctx, p.Send)
	}()
	defer func() {
		cancel()
		<-done
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
