package render

import (
	"github.com/meysamhadeli/teamboard/render/contracts"
	rostermodels "github.com/meysamhadeli/teamboard/roster/models"
)

// Render draws one frame of the table onto surface.
// The title band is a fill followed by a centred label; every header and
// content cell is a single DrawCell. Nothing is retained between calls.
func Render(ctx *Context, surface contracts.ISurface, table *rostermodels.Table, viewportWidth int) Layout {
	if ctx == nil {
		ctx = DefaultContext()
	}

	layout := ComputeLayout(table, viewportWidth)

	title := layout.Title
	surface.FillRect(title.Band, title.Rect, ctx.fill(title.Band))
	surface.Label(title.Band, title.Rect, title.Text, ctx.text(title.Band))

	for _, cell := range layout.Headers {
		surface.DrawCell(cell.Band, cell.Rect, ctx.fill(cell.Band), cell.Text, ctx.text(cell.Band))
	}

	for _, cell := range layout.Content {
		surface.DrawCell(cell.Band, cell.Rect, ctx.fill(cell.Band), cell.Text, ctx.text(cell.Band))
	}

	return layout
}
