package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/colors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/frame"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/mosaic"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/pipeline"
)

const (
	// minViewScale bounds zooming out, in columns per base.
	minViewScale = 1e-6
	// viewChrome is the number of lines taken by the header and help.
	viewChrome = 4
)

var (
	viewPanelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	viewTrackStyle = lipgloss.NewStyle().Foreground(colorGray)
	viewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the view command, an interactive terminal viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var lf layoutFlags

	cmd := &cobra.Command{
		Use:   "view [doc.xml]",
		Short: "Browse a feature document in the terminal",
		Long: `Browse a feature document in the terminal.

One column is one pixel of the layout, so zooming re-packs every track the
way a rendered image would be at that scale. Keys: +/- zoom, ←/→ pan,
↑/↓ scroll, 0 fit to width, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(cmd, &lf)
			opts.Logger = nil
			return c.runView(cmd.Context(), args[0], opts)
		},
	}

	lf.bind(cmd)
	return cmd
}

func (c *CLI) runView(ctx context.Context, input string, opts pipeline.Options) error {
	doc, err := readInput(input)
	if err != nil {
		return err
	}
	parsed, err := pipeline.Parse(ctx, doc, opts)
	if err != nil {
		if parsed != nil {
			printDiagnostics(parsed.Diagnostics)
		}
		return err
	}
	pipeline.ApplyOverrides(parsed.Frame, opts)

	p := tea.NewProgram(newViewModel(parsed.Frame, input), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// viewModel is the bubbletea model of the viewer. Scale is in columns per
// base and is pushed into the frame, so the tracks re-pack on zoom.
type viewModel struct {
	frame  *frame.Frame
	title  string
	scale  float64
	offset int // first visible column
	top    int // first visible line
	width  int
	height int
}

func newViewModel(f *frame.Frame, title string) viewModel {
	return viewModel{frame: f, title: title, width: 80, height: 24}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = max(msg.Width, 10), max(msg.Height, viewChrome+1)
		if m.scale == 0 {
			m = m.fit()
		}
	case tea.KeyMsg:
		if m.scale == 0 {
			m = m.fit()
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			m = m.zoom(2)
		case "-", "_":
			m = m.zoom(0.5)
		case "0", "home":
			m = m.fit()
		case "left", "h":
			m.offset = m.clampOffset(m.offset - m.width/4)
		case "right", "l":
			m.offset = m.clampOffset(m.offset + m.width/4)
		case "up", "k":
			m.top = max(m.top-1, 0)
		case "down", "j":
			m.top++
		}
	}
	return m, nil
}

// fit zooms so the whole extent spans the window.
func (m viewModel) fit() viewModel {
	m.scale = 1
	if n := m.frame.Extent(); n > 0 {
		m.scale = max(float64(m.width)/float64(n), minViewScale)
	}
	m.frame.SetScale(m.scale)
	m.offset = 0
	return m
}

// zoom multiplies the scale by factor, keeping the centre base in place.
func (m viewModel) zoom(factor float64) viewModel {
	center := (float64(m.offset) + float64(m.width)/2) / m.scale
	m.scale = max(m.scale*factor, minViewScale)
	m.frame.SetScale(m.scale)
	m.offset = m.clampOffset(int(math.Round(center*m.scale - float64(m.width)/2)))
	return m
}

func (m viewModel) clampOffset(off int) int {
	limit := int(math.Ceil(float64(m.frame.Extent())*m.scale)) - m.width
	return max(min(off, limit), 0)
}

func (m viewModel) View() string {
	if m.scale == 0 {
		m = m.fit()
	}

	first := int(float64(m.offset)/m.scale) + 1
	last := min(int(float64(m.offset+m.width)/m.scale), m.frame.Extent())

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d-%d of %d  ·  %.3g col/base", first, last, m.frame.Extent(), m.scale)))
	b.WriteString("\n\n")

	lines := m.lines()
	rows := m.height - viewChrome
	top := min(m.top, max(len(lines)-rows, 0))
	for _, l := range lines[top:min(top+rows, len(lines))] {
		b.WriteString(l)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(viewHelpStyle.Render("+/- zoom  ←/→ pan  ↑/↓ scroll  0 fit  q quit"))
	return b.String()
}

// lines draws every panel and track, one line per layout row.
func (m viewModel) lines() []string {
	var out []string
	for _, p := range m.frame.Panels() {
		if p.Label() != "" {
			out = append(out, viewPanelStyle.Render(p.Label()))
		}
		for _, t := range p.Tracks() {
			res := t.Layout()
			out = append(out, viewTrackStyle.Render(fmt.Sprintf("%s (%s, %s)", orDash(t.Label()), t.Buoyancy(), plural(len(res.Rows), "row"))))
			units := t.Units()
			for _, row := range res.Rows {
				cells := make([]viewCell, m.width)
				for _, i := range row.Units {
					m.draw(cells, units[i])
				}
				out = append(out, renderCells(cells))
			}
		}
	}
	return out
}

type viewCell struct {
	r     rune
	color string
}

// draw paints u into cells: glyphs as solid bars, groups as shaded ones,
// with the label written over the bar when it fits.
func (m viewModel) draw(cells []viewCell, u mosaic.Unit) {
	span := u.Span()
	x0 := int(math.Floor(float64(span.Start-1)*m.scale)) - m.offset
	x1 := int(math.Ceil(float64(span.Stop)*m.scale)) - m.offset - 1
	x1 = max(x1, x0)
	if x1 < 0 || x0 >= len(cells) {
		return
	}

	fill, color := '█', "gray"
	switch u := u.(type) {
	case *mosaic.Glyph:
		color = u.Style().BarColor
	case *mosaic.Group:
		fill = '▒'
		if u.Color() != "" {
			color = u.Color()
		}
	}
	hex := colors.Resolve(color).Hex()

	lo, hi := max(x0, 0), min(x1, len(cells)-1)
	for x := lo; x <= hi; x++ {
		cells[x] = viewCell{r: fill, color: hex}
	}
	label := []rune(u.Label())
	if len(label) > 0 && len(label) <= x1-x0+1 {
		for i, r := range label {
			if x := x0 + i; x >= lo && x <= hi {
				cells[x] = viewCell{r: r, color: hex}
			}
		}
	}
}

// renderCells joins runs of equally colored cells into styled strings.
func renderCells(cells []viewCell) string {
	var b strings.Builder
	for i := 0; i < len(cells); {
		j := i
		var run strings.Builder
		for j < len(cells) && cells[j].color == cells[i].color {
			r := cells[j].r
			if r == 0 {
				r = ' '
			}
			run.WriteRune(r)
			j++
		}
		if cells[i].color == "" {
			b.WriteString(run.String())
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(cells[i].color)).Render(run.String()))
		}
		i = j
	}
	return strings.TrimRight(b.String(), " ")
}
