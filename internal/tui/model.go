package tui

import (
	"fmt"
	"strings"
	"time"

	"cogentcore.org/core/math32"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SeamusWaldron/cubeviz"
	"github.com/SeamusWaldron/cubeviz/internal/scene"
	"github.com/SeamusWaldron/cubeviz/pkg/orbit"
)

const (
	// Cell deltas are scaled to rough pixel deltas for the orbit control.
	cellWidth  = 8
	cellHeight = 16
	wheelStep  = 4

	headerLines = 2
	footerLines = 2
)

// MovesMsg queues moves from outside the program, such as a live cube.
type MovesMsg []cubeviz.Move

// StatusMsg replaces the status line.
type StatusMsg string

// ErrMsg shows an error.
type ErrMsg struct{ Err error }

type tickMsg time.Time

// Model is a bubbletea model showing a Scene.
type Model struct {
	scene    *scene.Scene
	title    string
	interval time.Duration

	start   time.Time
	lastNow time.Duration
	events  []orbit.Event
	mouse   struct{ x, y int }
	mouseOK bool

	double  bool
	showNet bool
	history []cubeviz.Move
	status  string
	err     error

	width  int
	height int
	canvas *Canvas

	onReset func() error
}

// New returns a model showing s, redrawn every interval.
func New(s *scene.Scene, title string, interval time.Duration) *Model {
	return &Model{
		scene:    s,
		title:    title,
		interval: interval,
		start:    time.Now(),
		width:    80,
		height:   24,
	}
}

// OnReset sets a hook that runs when the user resets the view, such as
// marking a live cube solved.
func (m *Model) OnReset(fn func() error) {
	m.onReset = fn
}

// Scene returns the scene being shown.
func (m *Model) Scene() *scene.Scene {
	return m.scene
}

func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case MovesMsg:
		m.queue(msg...)

	case StatusMsg:
		m.status = string(msg)

	case ErrMsg:
		m.err = msg.Err

	case tickMsg:
		now := time.Time(msg).Sub(m.start)
		if now < m.lastNow {
			now = m.lastNow
		}
		if _, err := m.scene.Tick(now, now-m.lastNow, m.events); err != nil {
			m.err = err
		}
		m.lastNow = now
		m.events = m.events[:0]
		return m, m.tickCmd()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "2":
		m.double = !m.double
	case "n":
		m.showNet = !m.showNet
	case "c":
		m.scene.Cube.Clear()
	case " ":
		m.queue(cubeviz.DemoSequence...)
	case "backspace":
		m.reset()
	default:
		if move, ok := keyMove(key, m.double); ok {
			m.queue(move)
		}
	}
	return m, nil
}

// keyMove maps a face letter to a move: lowercase turns clockwise,
// uppercase counter-clockwise, and double turns a half turn.
func keyMove(key string, double bool) (cubeviz.Move, bool) {
	if len(key) != 1 {
		return cubeviz.Move{}, false
	}
	face := cubeviz.Face(strings.ToUpper(key))
	if face.Index() < 0 {
		return cubeviz.Move{}, false
	}
	turn := cubeviz.CW
	if key == string(face) {
		turn = cubeviz.CCW
	}
	if double {
		turn = cubeviz.Double
	}
	return cubeviz.Move{Face: face, Turn: turn}, true
}

func (m *Model) reset() {
	m.err = nil
	if err := m.scene.Reset(); err != nil {
		m.err = err
		return
	}
	m.history = nil
	if m.onReset != nil {
		if err := m.onReset(); err != nil {
			m.err = err
		}
	}
}

func (m *Model) queue(moves ...cubeviz.Move) {
	if err := m.scene.Cube.Queue(moves...); err != nil {
		m.err = err
		return
	}
	m.history = append(m.history, moves...)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	var e orbit.Event
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		e = orbit.Event{Kind: orbit.MouseWheel, Delta: math32.Vec2(0, wheelStep)}
	case msg.Button == tea.MouseButtonWheelDown:
		e = orbit.Event{Kind: orbit.MouseWheel, Delta: math32.Vec2(0, -wheelStep)}
	case msg.Action == tea.MouseActionPress:
		e = orbit.Event{Kind: orbit.MousePress, Button: mouseButton(msg.Button)}
		m.mouse.x, m.mouse.y, m.mouseOK = msg.X, msg.Y, true
	case msg.Action == tea.MouseActionRelease:
		e = orbit.Event{Kind: orbit.MouseRelease, Button: orbit.ButtonLeft}
		m.mouseOK = false
	case msg.Action == tea.MouseActionMotion:
		if !m.mouseOK {
			m.mouse.x, m.mouse.y, m.mouseOK = msg.X, msg.Y, true
			return
		}
		dx := float32((msg.X - m.mouse.x) * cellWidth)
		dy := float32((msg.Y - m.mouse.y) * cellHeight)
		m.mouse.x, m.mouse.y = msg.X, msg.Y
		e = orbit.Event{Kind: orbit.MouseMotion, Button: mouseButton(msg.Button), Delta: math32.Vec2(dx, dy)}
	default:
		return
	}
	m.events = append(m.events, e)
}

func mouseButton(b tea.MouseButton) orbit.Button {
	switch b {
	case tea.MouseButtonLeft:
		return orbit.ButtonLeft
	case tea.MouseButtonMiddle:
		return orbit.ButtonMiddle
	case tea.MouseButtonRight:
		return orbit.ButtonRight
	default:
		return orbit.ButtonNone
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(m.statusLine()))
	b.WriteString("\n\n")

	rows := max(m.height-headerLines-footerLines, 1)
	if m.canvas == nil || m.canvas.W != m.width || m.canvas.H != rows*2 {
		m.canvas = NewCanvas(m.width, rows*2)
	}
	m.canvas.Clear()
	m.canvas.Draw(m.scene.Camera, m.scene.Cube)

	if m.showNet {
		b.WriteString(RenderNet(m.scene.Cube.Facelets()))
	} else {
		b.WriteString(m.canvas.String())
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	} else {
		b.WriteString(moveStyle.Render(lastMoves(m.history, 12)))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("lufdrb: turn (shift: prime)  2: half turns  space: demo  backspace: reset  n: net  c: clear  q: quit"))

	return b.String()
}

func (m *Model) statusLine() string {
	var parts []string
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if cur, ok := m.scene.Cube.Current(); ok {
		parts = append(parts, "turning "+cur.String())
	}
	if n := m.scene.Cube.Pending(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d queued", n))
	}
	if m.double {
		parts = append(parts, "half turns")
	}
	if m.scene.Cube.IsSolved() {
		parts = append(parts, "solved")
	}
	return strings.Join(parts, " | ")
}

func lastMoves(moves []cubeviz.Move, n int) string {
	if len(moves) > n {
		moves = moves[len(moves)-n:]
	}
	return cubeviz.FormatMoves(moves)
}
