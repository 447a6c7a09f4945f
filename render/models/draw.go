package models

import "fmt"

// Rect is a pixel rectangle on the render surface.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Color is a hex colour such as "#CCCCCC".
type Color string

// TextStyle describes how a label is drawn inside a cell.
type TextStyle struct {
	Size  int   `json:"size"`
	Color Color `json:"color"`
	Bold  bool  `json:"bold,omitempty"`
}

// Band is a horizontal strip of the table with its own height and style.
type Band int

const (
	BandTitle Band = iota
	BandHeader
	BandContent
)

func (b Band) String() string {
	switch b {
	case BandTitle:
		return "title"
	case BandHeader:
		return "header"
	case BandContent:
		return "content"
	default:
		return "unknown"
	}
}

func (b Band) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Band) UnmarshalText(text []byte) error {
	switch string(text) {
	case "title":
		*b = BandTitle
	case "header":
		*b = BandHeader
	case "content":
		*b = BandContent
	default:
		return fmt.Errorf("unknown band '%s'", text)
	}
	return nil
}
