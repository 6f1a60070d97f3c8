package tui

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/sortscope/internal/initiator"
	"github.com/roach88/sortscope/internal/playback"
	"github.com/roach88/sortscope/internal/sorter"
)

const (
	frameInterval = 33 * time.Millisecond
	maxDelay      = 5 * time.Second

	// lines used by everything but the bars
	chromeLines = 4
)

// Options configure the player.
type Options struct {
	Initiator string
	Algorithm string
	N         int
	Delay     time.Duration

	// Seeds supplies one seed per initiation. Nil draws random seeds.
	Seeds func() uint64

	Logger *slog.Logger
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// failureObserver keeps the last loop failure for display.
type failureObserver struct {
	playback.NopObserver

	mu  sync.Mutex
	err error
}

func (o *failureObserver) OnFailure(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.err = err
}

func (o *failureObserver) take() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	err := o.err
	o.err = nil
	return err
}

// Model is the bubbletea model of the interactive player.
type Model struct {
	session  *playback.Session
	board    *Board
	observer *failureObserver
	logger   *slog.Logger

	initiator string
	algorithm string
	n         int

	help   help.Model
	styles styles

	width  int
	height int
	status string
}

// New builds a player and initiates its first session. r decides the
// color profile; nil uses the default renderer.
func New(opts Options, r *lipgloss.Renderer) (*Model, error) {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	board := NewBoard()
	observer := &failureObserver{}
	ctrl := playback.New(board,
		playback.WithDelay(opts.Delay),
		playback.WithObserver(observer),
		playback.WithLogger(logger),
	)

	m := &Model{
		session:   playback.NewSession(ctrl, opts.Seeds),
		board:     board,
		observer:  observer,
		logger:    logger,
		initiator: opts.Initiator,
		algorithm: opts.Algorithm,
		n:         opts.N,
		help:      help.New(),
		styles:    newStyles(r),
		width:     80,
		height:    24,
	}
	if err := m.initiate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Controller exposes the player's controller.
func (m *Model) Controller() *playback.Controller {
	return m.session.Controller
}

// Close stops playback.
func (m *Model) Close() {
	m.session.Controller.Close()
}

func (m *Model) initiate() error {
	if _, err := m.session.InitiateNamed(m.initiator, m.algorithm, m.n); err != nil {
		return err
	}
	m.status = ""
	return nil
}

// switchTo initiates a session with the given names. On failure the
// previous names are restored so the header matches the board.
func (m *Model) switchTo(algorithm, initiatorName string) error {
	prevAlg, prevIni := m.algorithm, m.initiator
	m.algorithm, m.initiator = algorithm, initiatorName
	if err := m.initiate(); err != nil {
		m.algorithm, m.initiator = prevAlg, prevIni
		return err
	}
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if err := m.observer.take(); err != nil {
			m.status = err.Error()
		}
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctrl := m.session.Controller
	var err error

	switch {
	case key.Matches(msg, keys.Quit):
		ctrl.Close()
		return m, tea.Quit

	case key.Matches(msg, keys.Toggle):
		if ctrl.State() == playback.Running {
			ctrl.Pause()
		} else {
			err = ctrl.Start()
		}

	case key.Matches(msg, keys.Step):
		err = ctrl.Step()

	case key.Matches(msg, keys.Faster):
		ctrl.SetDelay(faster(ctrl.Delay()))

	case key.Matches(msg, keys.Slower):
		ctrl.SetDelay(slower(ctrl.Delay()))

	case key.Matches(msg, keys.Restart):
		err = m.initiate()

	case key.Matches(msg, keys.Algorithm):
		err = m.switchTo(next(sorter.Names(), m.algorithm), m.initiator)

	case key.Matches(msg, keys.Initiator):
		err = m.switchTo(m.algorithm, next(initiator.Names(), m.initiator))

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	default:
		return m, nil
	}

	m.status = ""
	if err != nil {
		m.logger.Debug("control rejected", "key", msg.String(), "error", err)
		m.status = err.Error()
	}
	return m, nil
}

// faster halves d. Below a millisecond playback runs without delay.
func faster(d time.Duration) time.Duration {
	d /= 2
	if d < time.Millisecond {
		return 0
	}
	return d
}

func slower(d time.Duration) time.Duration {
	if d == 0 {
		return time.Millisecond
	}
	return min(d*2, maxDelay)
}

// next returns the name after current in names, wrapping around.
func next(names []string, current string) string {
	i := slices.Index(names, current)
	return names[(i+1)%len(names)]
}

// View implements tea.Model.
func (m *Model) View() string {
	ctrl := m.session.Controller
	rec := m.session.Recording()

	total := 0
	if rec != nil {
		total = len(rec.Steps)
	}
	header := fmt.Sprintf("%s  %s · %s · n=%d  %s  step %d/%d",
		m.styles.title.Render("sortscope"),
		m.algorithm, m.initiator, m.n,
		m.styles.state.Render(ctrl.State().String()),
		ctrl.Applied(), total,
	)

	counts := ctrl.Counts()
	stats := m.styles.stats.Render(fmt.Sprintf("comparisons %d  swaps %d  replacements %d  delay %s",
		counts.Comparisons, counts.Swaps, counts.Replacements, ctrl.Delay()))

	status := ""
	if m.status != "" {
		status = m.styles.errMsg.Render(m.status)
	}

	bars := renderBars(m.styles, m.board.Frame(), m.width, max(m.height-chromeLines, 1))
	return lipgloss.JoinVertical(lipgloss.Left, header, bars, stats, status, m.help.View(keys))
}

// Run starts the interactive player and blocks until the user quits.
func Run(opts Options) error {
	m, err := New(opts, nil)
	if err != nil {
		return err
	}
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run player: %w", err)
	}
	return nil
}
