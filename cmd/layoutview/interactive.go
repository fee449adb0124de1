package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flexwire/layout-engine/engine"
	"github.com/flexwire/layout-engine/protocol"
	"github.com/flexwire/layout-engine/style"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	canvasStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var (
	directionNames = []string{"row", "column", "row-reverse", "column-reverse"}
	justifyNames   = []string{"start", "end", "center", "space-between", "space-around", "space-evenly"}
	alignNames     = []string{"flex-start", "flex-end", "center", "baseline", "stretch"}
)

type interactiveModel struct {
	eng      *engine.Engine
	err      error
	input    textinput.Model
	rootW    float32
	rootH    float32
	children int
	dir      int
	justify  int
	align    int
	editing  bool
}

func newInteractiveModel(w, h float32, children int) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "200x100"
	ti.CharLimit = 16
	ti.Width = 20

	if children < 1 {
		children = 1
	}
	return &interactiveModel{
		eng:      engine.New(),
		input:    ti,
		rootW:    w,
		rootH:    h,
		children: children,
		justify:  3, // space-between
		align:    4, // stretch
	}
}

func runInteractive(w, h float32, children int) error {
	m := newInteractiveModel(w, h, children)
	if err := m.rebuild(); err != nil {
		return err
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// rebuild creates the tree from scratch; used once at startup.
func (m *interactiveModel) rebuild() error {
	b := protocol.NewStreamBuilder().CreateLeaf(0, m.rootRecord())
	ids := make([]uint32, 0, m.children)
	for i := 1; i <= m.children; i++ {
		b.CreateLeaf(uint32(i), m.childRecord())
		ids = append(ids, uint32(i))
	}
	b.SetChildren(0, ids...)
	return m.eng.ApplyAndCompute(b.Buffers())
}

// restyle pushes the current settings into the retained tree without
// recreating nodes.
func (m *interactiveModel) restyle() {
	b := protocol.NewStreamBuilder().UpdateStyle(0, m.rootRecord())
	for i := 1; i <= m.children; i++ {
		b.UpdateStyle(uint32(i), m.childRecord())
	}
	m.err = m.eng.ApplyAndCompute(b.Buffers())
}

func (m *interactiveModel) addChild() {
	m.children++
	b := protocol.NewStreamBuilder().CreateLeaf(uint32(m.children), m.childRecord())
	ids := make([]uint32, 0, m.children)
	for i := 1; i <= m.children; i++ {
		ids = append(ids, uint32(i))
	}
	b.SetChildren(0, ids...)
	if m.err = m.eng.ApplyAndCompute(b.Buffers()); m.err == nil {
		m.restyle()
	}
}

func (m *interactiveModel) removeChild() {
	if m.children <= 1 {
		return
	}
	b := protocol.NewStreamBuilder().RemoveNode(uint32(m.children))
	m.children--
	ids := make([]uint32, 0, m.children)
	for i := 1; i <= m.children; i++ {
		ids = append(ids, uint32(i))
	}
	b.SetChildren(0, ids...)
	if m.err = m.eng.ApplyAndCompute(b.Buffers()); m.err == nil {
		m.restyle()
	}
}

func (m *interactiveModel) rootRecord() []float32 {
	rec := style.NewRecord()
	rec[style.PropWidth] = m.rootW
	rec[style.PropHeight] = m.rootH
	rec[style.PropFlexDirection] = float32(m.dir)
	rec[style.PropJustifyContent] = float32(m.justify)
	// Code 4 falls through to the decoder's stretch default.
	rec[style.PropAlignItems] = float32(m.align)
	return rec
}

func (m *interactiveModel) childRecord() []float32 {
	rec := style.NewRecord()
	rec[style.PropWidth] = m.rootW / float32(m.children*2)
	if m.align != 4 {
		// Stretch needs the cross size left auto.
		rec[style.PropHeight] = m.rootH / 3
	}
	return rec
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		// Track the terminal: the root follows the window, minus the
		// chrome around the canvas.
		if size.Width > 4 && size.Height > 8 {
			m.rootW = float32(size.Width - 4)
			m.rootH = float32(size.Height - 8)
			m.restyle()
		}
		return m, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editing {
		switch key.String() {
		case "enter":
			m.applySizeInput()
			m.editing = false
			m.input.Blur()
			return m, nil
		case "esc":
			m.editing = false
			m.input.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "d":
		m.dir = (m.dir + 1) % len(directionNames)
		m.restyle()
	case "j":
		m.justify = (m.justify + 1) % len(justifyNames)
		m.restyle()
	case "a":
		m.align = (m.align + 1) % len(alignNames)
		m.restyle()
	case "+", "=":
		m.addChild()
	case "-":
		m.removeChild()
	case "s":
		m.editing = true
		m.input.SetValue(fmt.Sprintf("%gx%g", m.rootW, m.rootH))
		m.input.Focus()
	}
	return m, nil
}

func (m *interactiveModel) applySizeInput() {
	var w, h float32
	if _, err := fmt.Sscanf(strings.TrimSpace(m.input.Value()), "%gx%g", &w, &h); err != nil {
		m.err = fmt.Errorf("size must look like 200x100: %w", err)
		return
	}
	if w <= 0 || h <= 0 {
		m.err = fmt.Errorf("size must be positive, got %gx%g", w, h)
		return
	}
	m.rootW, m.rootH = w, h
	m.restyle()
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("layoutview"))
	b.WriteString("\n\n")
	b.WriteString(canvasStyle.Render(m.renderCanvas()))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf(
		"root %gx%g  dir=%s  justify=%s  align=%s  children=%d",
		m.rootW, m.rootH,
		directionNames[m.dir], justifyNames[m.justify], alignNames[m.align],
		m.children)))
	b.WriteString("\n")

	if m.editing {
		b.WriteString("\nroot size: " + m.input.View() + "\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: "+m.err.Error()) + "\n")
	}

	b.WriteString(helpStyle.Render(
		"d direction  j justify  a align  +/- children  s size  q quit"))
	return b.String()
}

// renderCanvas rasterizes the computed boxes onto a rune grid, one
// layout unit per terminal cell, capped to a sane viewport.
func (m *interactiveModel) renderCanvas() string {
	cw, ch := int(m.rootW), int(m.rootH)
	if cw > 120 {
		cw = 120
	}
	if ch > 32 {
		ch = 32
	}
	if cw < 1 || ch < 1 {
		return ""
	}

	grid := make([][]rune, ch)
	for y := range grid {
		grid[y] = make([]rune, cw)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	results := m.eng.Results()
	scaleX := float32(cw) / m.rootW
	scaleY := float32(ch) / m.rootH
	for i := 0; i < len(results); i += style.ResultStride {
		id := uint32(results[i+style.ResultID])
		if id == 0 {
			continue
		}
		x0 := int(results[i+style.ResultX] * scaleX)
		y0 := int(results[i+style.ResultY] * scaleY)
		x1 := x0 + int(results[i+style.ResultWidth]*scaleX)
		y1 := y0 + int(results[i+style.ResultHeight]*scaleY)

		mark := rune('0' + id%10)
		for y := y0; y < y1 && y < ch; y++ {
			for x := x0; x < x1 && x < cw; x++ {
				if y >= 0 && x >= 0 {
					grid[y][x] = mark
				}
			}
		}
	}

	lines := make([]string, ch)
	for y := range grid {
		lines[y] = string(grid[y])
	}
	return strings.Join(lines, "\n")
}
