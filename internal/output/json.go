package output

import (
	"encoding/json"
)

// JSONFormatter formats results as JSON Lines (one JSON object per event).
type JSONFormatter struct{}

// NewJSONFormatter creates a JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// jsonMatch is the JSON serialization format for a selected line.
type jsonMatch struct {
	Type    string    `json:"type"`
	File    string    `json:"file,omitempty"`
	LineNum int       `json:"line_number"`
	Text    string    `json:"text"`
	Matches []jsonPos `json:"matches,omitempty"`
}

type jsonPos struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type jsonCount struct {
	Type  string `json:"type"`
	File  string `json:"file,omitempty"`
	Count int    `json:"count"`
}

type jsonFile struct {
	Type string `json:"type"`
	File string `json:"file"`
}

func (f *JSONFormatter) FormatLine(buf []byte, rec Record) []byte {
	jm := jsonMatch{
		Type:    "match",
		File:    rec.File,
		LineNum: rec.LineNum,
		Text:    string(rec.Text),
	}
	if len(rec.Spans) > 0 {
		jm.Matches = make([]jsonPos, len(rec.Spans))
		for i, s := range rec.Spans {
			jm.Matches[i] = jsonPos{Start: s.Start, End: s.End}
		}
	}
	return appendJSON(buf, jm)
}

func (f *JSONFormatter) FormatCount(buf []byte, file string, count int) []byte {
	return appendJSON(buf, jsonCount{Type: "count", File: file, Count: count})
}

func (f *JSONFormatter) FormatFileName(buf []byte, file string) []byte {
	return appendJSON(buf, jsonFile{Type: "file", File: file})
}

func appendJSON(buf []byte, v any) []byte {
	data, _ := json.Marshal(v)
	buf = append(buf, data...)
	return append(buf, '\n')
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)
