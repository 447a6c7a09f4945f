package contracts

import "github.com/meysamhadeli/teamboard/render/models"

// ISurface is an immediate-mode drawing host. It keeps no state between frames
// beyond what it needs to present the current one.
type ISurface interface {
	FillRect(band models.Band, rect models.Rect, fill models.Color)
	Label(band models.Band, rect models.Rect, text string, style models.TextStyle)
	DrawCell(band models.Band, rect models.Rect, fill models.Color, text string, style models.TextStyle)
}
