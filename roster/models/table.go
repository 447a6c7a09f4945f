package models

import (
	"encoding/json"
	"fmt"
)

// Record is one team member row. Records are replaced wholesale on re-parse.
type Record struct {
	ID       string `json:"ID"`
	Name     string `json:"Name"`
	Role     string `json:"Role"`
	Nickname string `json:"Nickname"`
}

// Fields returns the four drawable fields in display order.
func (r Record) Fields() [4]string {
	return [4]string{r.ID, r.Name, r.Role, r.Nickname}
}

// UnmarshalJSON matches keys case-sensitively. Keys that differ only in case
// from a field name are ignored like any other unknown key.
func (r *Record) UnmarshalJSON(data []byte) error {
	return decodeExactKeys(data, map[string]interface{}{
		"ID":       &r.ID,
		"Name":     &r.Name,
		"Role":     &r.Role,
		"Nickname": &r.Nickname,
	})
}

// Table is the parsed roster document.
// The number of column headers is not tied to the four record fields.
type Table struct {
	Title         string   `json:"Title"`
	ColumnHeaders []string `json:"ColumnHeaders"`
	Data          []Record `json:"Data"`
}

// UnmarshalJSON matches keys case-sensitively, the same way Record does.
func (t *Table) UnmarshalJSON(data []byte) error {
	return decodeExactKeys(data, map[string]interface{}{
		"Title":         &t.Title,
		"ColumnHeaders": &t.ColumnHeaders,
		"Data":          &t.Data,
	})
}

// RecordFieldCount is the number of fields drawn for every record.
const RecordFieldCount = 4

func decodeExactKeys(data []byte, targets map[string]interface{}) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	for key, target := range targets {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
	}

	return nil
}
