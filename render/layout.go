package render

import (
	"github.com/meysamhadeli/teamboard/render/models"
	rostermodels "github.com/meysamhadeli/teamboard/roster/models"
)

// RowHeight is the fixed height of one band row in pixels.
const RowHeight = 30

// DefaultTitle is drawn when the table has no title of its own.
const DefaultTitle = "Team Members"

// Cell is one rectangle of the table with its text.
type Cell struct {
	Band models.Band `json:"band"`
	Rect models.Rect `json:"rect"`
	Text string      `json:"text"`
}

// Layout is the computed geometry of one frame.
type Layout struct {
	CellWidth int    `json:"cell_width"`
	Title     Cell   `json:"title"`
	Headers   []Cell `json:"headers"`
	Content   []Cell `json:"content"`
}

// CellWidth returns viewportWidth / columns + 1. The extra pixel hides
// rounding gaps between cells. With no columns the four record fields are used.
func CellWidth(viewportWidth, columns int) int {
	if columns <= 0 {
		columns = rostermodels.RecordFieldCount
	}
	return viewportWidth/columns + 1
}

// ComputeLayout places the title band, one header cell per column header and
// four content cells per record. A nil table yields the title band only.
func ComputeLayout(table *rostermodels.Table, viewportWidth int) Layout {
	layout := Layout{
		Title: Cell{
			Band: models.BandTitle,
			Rect: models.Rect{X: 0, Y: 0, W: viewportWidth, H: RowHeight * 2},
			Text: DefaultTitle,
		},
	}

	if table == nil {
		layout.CellWidth = CellWidth(viewportWidth, 0)
		return layout
	}

	if table.Title != "" {
		layout.Title.Text = table.Title
	}

	width := CellWidth(viewportWidth, len(table.ColumnHeaders))
	layout.CellWidth = width

	layout.Headers = make([]Cell, 0, len(table.ColumnHeaders))
	for i, header := range table.ColumnHeaders {
		layout.Headers = append(layout.Headers, Cell{
			Band: models.BandHeader,
			Rect: models.Rect{X: i * width, Y: RowHeight * 2, W: width, H: RowHeight},
			Text: header,
		})
	}

	layout.Content = make([]Cell, 0, len(table.Data)*rostermodels.RecordFieldCount)
	for row, record := range table.Data {
		for column, field := range record.Fields() {
			layout.Content = append(layout.Content, Cell{
				Band: models.BandContent,
				Rect: models.Rect{X: column * width, Y: RowHeight * (row + 3), W: width, H: RowHeight},
				Text: field,
			})
		}
	}

	return layout
}
