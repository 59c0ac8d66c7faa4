package results_module

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Envelope mirrors the remote engine's response body. Data is deliberately
// untyped: its keys map onto a fixed category vocabulary but the remote
// contract is dynamic, so values are either row arrays or scalar counts.
type Envelope struct {
	IsSuccess   bool           `json:"isSuccess"`
	Message     string         `json:"message"`
	ServiceName string         `json:"service_name"`
	Data        map[string]any `json:"data"`
}

// Normalize parses a response body that may arrive either as JSON or as a
// JSON string wrapping JSON. A parse failure yields nil — "no usable data",
// never a hard error.
func Normalize(body []byte) *Envelope {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var inner string
		if err := json.Unmarshal([]byte(trimmed), &inner); err != nil {
			return nil
		}
		trimmed = inner
	}
	var env Envelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return nil
	}
	return &env
}

// Rows returns the row array stored under key, or nil when the key is
// absent or not an array of objects.
func (e *Envelope) Rows(key string) []map[string]any {
	if e == nil || e.Data == nil {
		return nil
	}
	arr, ok := e.Data[key].([]any)
	if !ok {
		return nil
	}
	rows := make([]map[string]any, 0, len(arr))
	for _, item := range arr {
		if m, ok := item.(map[string]any); ok {
			rows = append(rows, m)
		}
	}
	return rows
}

// FallbackMessage is what the viewer shows when no known section has rows.
func (e *Envelope) FallbackMessage() string {
	if e != nil && e.Data != nil {
		if msg, ok := e.Data["message"].(string); ok && msg != "" {
			return msg
		}
	}
	if e != nil && e.Message != "" {
		return e.Message
	}
	return "No records found for the selected inputs."
}

// ActiveSections filters the catalog down to sections present in the
// envelope as non-empty arrays, preserving catalog order.
func (c Catalog) ActiveSections(env *Envelope) []Section {
	var active []Section
	for _, section := range c.Sections {
		if len(env.Rows(section.Key)) > 0 {
			active = append(active, section)
		}
	}
	return active
}

func activeOf(sections []Section, env *Envelope) []Section {
	var active []Section
	for _, section := range sections {
		if len(env.Rows(section.Key)) > 0 {
			active = append(active, section)
		}
	}
	return active
}

// Counts surfaces the catalog's scalar summary fields present in the data.
func (c Catalog) Counts(env *Envelope) map[string]float64 {
	counts := make(map[string]float64)
	if env == nil || env.Data == nil {
		return counts
	}
	for _, key := range c.CountKeys {
		if n, ok := env.Data[key].(float64); ok {
			counts[key] = n
		}
	}
	return counts
}

// SectionPage is one client page of a section, already projected onto the
// ordered columns.
type SectionPage struct {
	Key       string     `json:"key"`
	Label     string     `json:"label"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	PageCount int        `json:"pageCount"`
	Rows      [][]string `json:"rows"`
}

// Page slices a section's rows for display. Pagination never touches the
// underlying data; exports always see the full set.
func (c Catalog) Page(env *Envelope, section Section, page int) SectionPage {
	rows := env.Rows(section.Key)
	columns := c.OrderedColumns(env.ServiceName)

	pageCount := (len(rows) + c.PageSize - 1) / c.PageSize
	if page < 1 || page > pageCount {
		page = 1
	}
	start := (page - 1) * c.PageSize
	end := start + c.PageSize
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}

	projected := make([][]string, 0, end-start)
	for _, row := range rows[start:end] {
		projected = append(projected, projectRow(row, columns))
	}
	return SectionPage{
		Key:       section.Key,
		Label:     section.Label,
		Total:     len(rows),
		Page:      page,
		PageCount: pageCount,
		Rows:      projected,
	}
}

func projectRow(row map[string]any, columns []string) []string {
	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = formatValue(row[col])
	}
	return cells
}

// formatValue renders a cell; nil, missing, empty and NaN all become the
// literal "N/A" placeholder.
func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "N/A"
	case string:
		if v == "" {
			return "N/A"
		}
		return v
	case float64:
		if math.IsNaN(v) {
			return "N/A"
		}
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
