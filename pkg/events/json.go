package events

import (
	"encoding/json"
	"io"
)

// JSONSink writes every event it handles as one JSON document.
type JSONSink struct {
	encoder *json.Encoder
}

// NewJSONSink creates a sink writing to w
func NewJSONSink(w io.Writer) *JSONSink {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return &JSONSink{encoder: encoder}
}

// Handle implements Handler.
func (s *JSONSink) Handle(ev Event) error {
	return s.encoder.Encode(ev)
}
