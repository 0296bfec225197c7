package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Content type identifiers in the content store.
const (
	TypeArticle = "blogs"
	TypeHonor   = "honors"
	TypePlayer  = "squad"
)

// Query selects entries of one content type.
type Query struct {
	ContentType string
	Order       string // e.g. "-sys.createdAt", "fields.name"
	Limit       int
}

// Sys holds the system-assigned metadata of an entry.
type Sys struct {
	ID          string    `json:"id"`
	ContentType string    `json:"contentType,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Entry is a single content record with its links already resolved.
type Entry struct {
	Sys    Sys    `json:"sys"`
	Fields Fields `json:"fields"`
}

// Fields is the loosely typed field bag of an entry. Accessors never fail:
// a missing or mistyped field yields the zero value.
type Fields map[string]json.RawMessage

func (f Fields) Has(name string) bool {
	raw, ok := f[name]
	return ok && !isNull(raw)
}

func (f Fields) Text(name string) string {
	var s string
	if raw, ok := f[name]; ok {
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
	}
	return s
}

func (f Fields) Int(name string) int {
	raw, ok := f[name]
	if !ok {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return 0
}

func (f Fields) Bool(name string) bool {
	var b bool
	if raw, ok := f[name]; ok {
		if err := json.Unmarshal(raw, &b); err != nil {
			return false
		}
	}
	return b
}

// Time parses a date field, see ParseDate.
func (f Fields) Time(name string) time.Time {
	t, _ := ParseDate(f.Text(name))
	return t
}

func (f Fields) Asset(name string) *Asset {
	raw, ok := f[name]
	if !ok || isNull(raw) {
		return nil
	}
	var a Asset
	if err := json.Unmarshal(raw, &a); err != nil || a.URL == "" {
		return nil
	}
	return &a
}

func (f Fields) RichText(name string) *RichText {
	raw, ok := f[name]
	if !ok || isNull(raw) {
		return nil
	}
	var doc RichText
	if err := json.Unmarshal(raw, &doc); err != nil || doc.NodeType == "" {
		return nil
	}
	return &doc
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate is a best-effort parse of the date formats the content store
// emits. It reports false when nothing matched.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
