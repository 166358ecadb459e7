// Package preview renders the portal banner in a terminal. Terminal resizes
// are reported to a breakpoint observer exactly like browser resizes, so the
// same debounce and tier rules drive the preview layout.
package preview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"portal/internal/portal"
	"portal/pkg/breakpoint"
	"portal/pkg/carousel"
)

// CellWidthPx converts terminal columns to viewport pixels.
const CellWidthPx = 8

type tickMsg time.Time

// TierMsg carries a breakpoint change into the program.
type TierMsg breakpoint.State

type keyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous")),
	Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next")),
	Toggle: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "play/pause")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#1F3B57")).Padding(0, 1)
	slideStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5A7FA3")).Padding(1, 2)
	captionStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// Model is the bubbletea model for the preview.
type Model struct {
	carousel   *carousel.Carousel
	viewport   *breakpoint.ReportedViewport
	tickPeriod time.Duration
	state      breakpoint.State
	columns    int
	bar        progress.Model
}

// New builds a preview model. vp receives terminal widths; state is the
// observer's current reading.
func New(c *carousel.Carousel, vp *breakpoint.ReportedViewport, state breakpoint.State) Model {
	return Model{
		carousel:   c,
		viewport:   vp,
		tickPeriod: carousel.DefaultTickPeriod,
		state:      state,
		columns:    80,
		bar:        progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.tickPeriod, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the autoplay ticks.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.columns = msg.Width
		m.viewport.Report(msg.Width * CellWidthPx)
		return m, nil
	case TierMsg:
		m.state = breakpoint.State(msg)
		return m, nil
	case tickMsg:
		m.carousel.Tick(m.tickPeriod)
		return m, m.tick()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Prev):
			m.carousel.Previous()
		case key.Matches(msg, keys.Next):
			m.carousel.Next()
		case key.Matches(msg, keys.Toggle):
			m.carousel.TogglePlay()
		default:
			if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
				// Out-of-range digits are ignored.
				_ = m.carousel.GoTo(int(s[0] - '1'))
			}
		}
	}
	return m, nil
}

// View renders the banner for the current tier.
func (m Model) View() string {
	layout := portal.LayoutFor(m.state.Tier)
	st := m.carousel.State()
	slide := m.carousel.Slides()[st.Index]

	width := m.columns - 4
	if width < 20 {
		width = 20
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Intranet") + " " +
		dimStyle.Render(fmt.Sprintf("%s · %dpx · %s", m.state.Tier, m.state.Width, layout.AspectRatio)) + "\n\n")

	body := captionStyle.Render(slide.Caption) + "\n" + dimStyle.Render(slide.Image)
	if layout.ShowArrows {
		body = "‹  " + body + "  ›"
	}
	sb.WriteString(slideStyle.Width(width).Render(body) + "\n")
	sb.WriteString(m.pagination(st, width) + "\n\n")

	status := "playing"
	if !st.Playing {
		status = "paused"
	}
	sb.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d %s · ← → navigate · 1-9 jump · space play/pause · q quit",
		st.Index+1, st.Len, status)))
	return sb.String()
}

func (m Model) pagination(st carousel.State, width int) string {
	bar := m.bar
	bar.Width = width / 3
	if bar.Width < 6 {
		bar.Width = 6
	}
	parts := make([]string, 0, st.Len)
	for _, ind := range carousel.IndicatorsFor(st) {
		if ind.Active {
			parts = append(parts, bar.ViewAs(ind.Fill/100))
			continue
		}
		parts = append(parts, dimStyle.Render("○"))
	}
	return strings.Join(parts, " ")
}
