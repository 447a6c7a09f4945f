package utils

import (
	"bytes"
	"context"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// HighlightJSON renders a JSON document with terminal colours using the given chroma theme.
func HighlightJSON(content string, theme string) (string, error) {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, content, "json", "terminal256", theme); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HighlightJSONWithContext highlights line by line so long documents can be interrupted.
func HighlightJSONWithContext(ctx context.Context, content string, theme string) (string, error) {
	var out strings.Builder
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		if i%50 == 0 {
			select {
			case <-ctx.Done():
				return out.String(), ctx.Err()
			default:
			}
		}

		highlighted, err := HighlightJSON(line, theme)
		if err != nil {
			return out.String(), err
		}
		out.WriteString(highlighted)
		if i < len(lines)-1 {
			out.WriteString("\n")
		}
	}

	return out.String(), nil
}
