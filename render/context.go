package render

import "github.com/meysamhadeli/teamboard/render/models"

// Context holds the fills and text styles for each band.
// The caller owns it and passes it to every Render call.
type Context struct {
	TitleFill   models.Color
	HeaderFill  models.Color
	ContentFill models.Color

	TitleText   models.TextStyle
	HeaderText  models.TextStyle
	ContentText models.TextStyle
}

// DefaultContext returns white, light grey and grey bands with
// 18, 14 and 10 point labels.
func DefaultContext() *Context {
	return &Context{
		TitleFill:   "#FFFFFF",
		HeaderFill:  "#CCCCCC",
		ContentFill: "#999999",
		TitleText:   models.TextStyle{Size: 18, Color: "#000000", Bold: true},
		HeaderText:  models.TextStyle{Size: 14, Color: "#000000", Bold: true},
		ContentText: models.TextStyle{Size: 10, Color: "#000000"},
	}
}

func (c *Context) fill(band models.Band) models.Color {
	switch band {
	case models.BandTitle:
		return c.TitleFill
	case models.BandHeader:
		return c.HeaderFill
	default:
		return c.ContentFill
	}
}

func (c *Context) text(band models.Band) models.TextStyle {
	switch band {
	case models.BandTitle:
		return c.TitleText
	case models.BandHeader:
		return c.HeaderText
	default:
		return c.ContentText
	}
}
