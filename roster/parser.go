package roster

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/meysamhadeli/teamboard/roster/models"
)

// ErrEmptyFile is returned when the roster file has no content to parse.
var ErrEmptyFile = errors.New("roster file is empty")

// ErrNotObject is returned when the roster document is valid JSON but not an
// object, such as a bare null or an array.
var ErrNotObject = errors.New("roster document is not a JSON object")

// trailingCommaPattern matches a comma followed only by whitespace and a closing brace or bracket.
var trailingCommaPattern = regexp.MustCompile(`,(\s*[}\]])`)

// RepairTrailingCommas strips commas that directly precede a closing `}` or `]`.
// Whitespace between the comma and the closer is kept.
func RepairTrailingCommas(content []byte) []byte {
	return trailingCommaPattern.ReplaceAll(content, []byte("$1"))
}

// ParseTable repairs and decodes a roster document. Keys are matched
// case-sensitively, so `title` or `NAME` are ignored rather than loaded.
func ParseTable(content []byte) (*models.Table, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return nil, ErrEmptyFile
	}
	if trimmed[0] != '{' {
		return nil, ErrNotObject
	}

	var table models.Table
	if err := json.Unmarshal(RepairTrailingCommas(trimmed), &table); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	return &table, nil
}
