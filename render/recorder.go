package render

import (
	"encoding/json"

	"github.com/meysamhadeli/teamboard/render/models"
)

const (
	OpFill  = "fill"
	OpLabel = "label"
	OpCell  = "cell"
)

// DrawOp is one recorded draw call.
type DrawOp struct {
	Op    string            `json:"op"`
	Band  models.Band       `json:"band"`
	Rect  models.Rect       `json:"rect"`
	Fill  models.Color      `json:"fill,omitempty"`
	Text  string            `json:"text,omitempty"`
	Style *models.TextStyle `json:"style,omitempty"`
}

// Recorder is a surface that keeps every draw call instead of presenting it.
type Recorder struct {
	ops []DrawOp
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) FillRect(band models.Band, rect models.Rect, fill models.Color) {
	r.ops = append(r.ops, DrawOp{Op: OpFill, Band: band, Rect: rect, Fill: fill})
}

func (r *Recorder) Label(band models.Band, rect models.Rect, text string, style models.TextStyle) {
	r.ops = append(r.ops, DrawOp{Op: OpLabel, Band: band, Rect: rect, Text: text, Style: &style})
}

func (r *Recorder) DrawCell(band models.Band, rect models.Rect, fill models.Color, text string, style models.TextStyle) {
	r.ops = append(r.ops, DrawOp{Op: OpCell, Band: band, Rect: rect, Fill: fill, Text: text, Style: &style})
}

// Ops returns the recorded calls in draw order.
func (r *Recorder) Ops() []DrawOp {
	return r.ops
}

// Counts returns the number of draw calls issued per band.
func (r *Recorder) Counts() map[models.Band]int {
	counts := make(map[models.Band]int)
	for _, op := range r.ops {
		counts[op.Band]++
	}
	return counts
}

// Reset drops all recorded calls so the recorder can capture a new frame.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}

// MarshalJSON writes the recorded frame as a JSON array of draw calls.
func (r *Recorder) MarshalJSON() ([]byte, error) {
	if r.ops == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.ops)
}
