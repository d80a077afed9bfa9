package pricing

import (
	"encoding/json"
	"strings"
	"time"
)

// HistoryEntry is one dated canonical price observation.
type HistoryEntry struct {
	Date  time.Time `json:"date"`
	Price *float64  `json:"price,omitempty"`
}

var historyDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseHistory decodes a stored price-history blob. Entries without a parseable
// date are skipped individually; a blob that is not a JSON array yields nil.
func ParseHistory(raw []byte) []HistoryEntry {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	entries := make([]HistoryEntry, 0, len(items))
	for _, item := range items {
		if e, ok := parseHistoryEntry(item); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

func parseHistoryEntry(item json.RawMessage) (HistoryEntry, bool) {
	var fields struct {
		Date  *string         `json:"date"`
		Price json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(item, &fields); err != nil || fields.Date == nil {
		return HistoryEntry{}, false
	}
	date, ok := parseHistoryDate(*fields.Date)
	if !ok {
		return HistoryEntry{}, false
	}

	entry := HistoryEntry{Date: date}
	var price float64
	if len(fields.Price) > 0 && json.Unmarshal(fields.Price, &price) == nil {
		entry.Price = &price
	}
	return entry, true
}

func parseHistoryDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range historyDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// LatestEntry returns the entry with the newest date.
func LatestEntry(entries []HistoryEntry) (HistoryEntry, bool) {
	if len(entries) == 0 {
		return HistoryEntry{}, false
	}
	latest := entries[0]
	for _, e := range entries[1:] {
		if e.Date.After(latest.Date) {
			latest = e
		}
	}
	return latest, true
}

// AppendHistory adds a dated price to a stored blob. Existing elements are kept
// verbatim, malformed ones included. An unreadable blob is replaced.
func AppendHistory(raw []byte, at time.Time, price float64) ([]byte, error) {
	var items []json.RawMessage
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &items); err != nil {
			items = nil
		}
	}

	entry, err := json.Marshal(map[string]any{
		"date":  at.UTC().Format(time.RFC3339),
		"price": price,
	})
	if err != nil {
		return nil, err
	}
	items = append(items, entry)
	return json.Marshal(items)
}
