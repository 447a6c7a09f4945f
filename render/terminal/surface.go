package terminal

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/meysamhadeli/teamboard/render"
	"github.com/meysamhadeli/teamboard/render/models"
)

const DefaultPixelsPerColumn = 8

type span struct {
	rect  models.Rect
	fill  models.Color
	text  string
	style models.TextStyle
}

// Surface rasterises draw calls onto a character grid. Horizontal pixels map
// to columns through pixelsPerColumn and every RowHeight maps to one line.
// Anything past the viewport width or below the last viewport line is clipped.
type Surface struct {
	viewportWidth   int
	viewportLines   int
	pixelsPerColumn int
	spans           []span
}

// NewSurface creates a surface for a viewport of viewportWidth pixels and
// viewportLines terminal lines. Zero lines leaves the height unbounded.
func NewSurface(viewportWidth, viewportLines, pixelsPerColumn int) *Surface {
	if pixelsPerColumn <= 0 {
		pixelsPerColumn = DefaultPixelsPerColumn
	}
	if viewportLines < 0 {
		viewportLines = 0
	}
	return &Surface{
		viewportWidth:   viewportWidth,
		viewportLines:   viewportLines,
		pixelsPerColumn: pixelsPerColumn,
	}
}

func (s *Surface) FillRect(_ models.Band, rect models.Rect, fill models.Color) {
	s.spans = append(s.spans, span{rect: rect, fill: fill})
}

// Label writes text over the most recent fill with the same rectangle, or
// over an unfilled span when there is none.
func (s *Surface) Label(_ models.Band, rect models.Rect, text string, style models.TextStyle) {
	for i := len(s.spans) - 1; i >= 0; i-- {
		if s.spans[i].rect == rect && s.spans[i].text == "" {
			s.spans[i].text = text
			s.spans[i].style = style
			return
		}
	}
	s.spans = append(s.spans, span{rect: rect, text: text, style: style})
}

func (s *Surface) DrawCell(_ models.Band, rect models.Rect, fill models.Color, text string, style models.TextStyle) {
	s.spans = append(s.spans, span{rect: rect, fill: fill, text: text, style: style})
}

// Columns is the number of character columns the viewport covers.
func (s *Surface) Columns() int {
	return s.viewportWidth / s.pixelsPerColumn
}

// Lines is the viewport height in lines, or 0 when unbounded.
func (s *Surface) Lines() int {
	return s.viewportLines
}

// Frame renders all spans into a string, one band row per line group.
// Rows starting at or below the last viewport line are dropped.
func (s *Surface) Frame() string {
	rows := make(map[int][]span)
	for _, sp := range s.spans {
		if s.viewportLines > 0 && sp.rect.Y/render.RowHeight >= s.viewportLines {
			continue
		}
		rows[sp.rect.Y] = append(rows[sp.rect.Y], sp)
	}

	ys := make([]int, 0, len(rows))
	for y := range rows {
		ys = append(ys, y)
	}
	sort.Ints(ys)

	lines := make([]string, 0, len(ys))
	for _, y := range ys {
		if line := s.renderRow(rows[y]); line != "" {
			lines = append(lines, line)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Flush writes the current frame to w.
func (s *Surface) Flush(w io.Writer) error {
	_, err := fmt.Fprintln(w, s.Frame())
	return err
}

func (s *Surface) renderRow(spans []span) string {
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].rect.X < spans[j].rect.X
	})

	columns := s.Columns()
	blocks := make([]string, 0, len(spans))
	cursor := 0

	for _, sp := range spans {
		start := sp.rect.X / s.pixelsPerColumn
		end := (sp.rect.X + sp.rect.W) / s.pixelsPerColumn
		if end > columns {
			end = columns
		}
		if start < cursor {
			start = cursor
		}
		if end <= start {
			continue
		}

		height := sp.rect.H / render.RowHeight
		if height < 1 {
			height = 1
		}
		if s.viewportLines > 0 {
			height = min(height, s.viewportLines-sp.rect.Y/render.RowHeight)
		}

		if start > cursor {
			blocks = append(blocks, strings.Repeat(" ", start-cursor))
		}
		blocks = append(blocks, cellStyle(sp, end-start, height).Render(sp.text))
		cursor = end
	}

	if len(blocks) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func cellStyle(sp span, width, height int) lipgloss.Style {
	style := lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Height(height).
		MaxHeight(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Bold(sp.style.Bold)

	if sp.fill != "" {
		style = style.Background(lipgloss.Color(string(sp.fill)))
	}
	if sp.style.Color != "" {
		style = style.Foreground(lipgloss.Color(string(sp.style.Color)))
	}

	return style
}
