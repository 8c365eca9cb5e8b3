package log

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// JSONFormatter renders entries as single-line JSON objects.
type JSONFormatter struct {
	// TimestampFormat overrides the default RFC3339 timestamp layout.
	TimestampFormat string
}

// Format renders the entry as JSON terminated by a newline.
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	layout := f.TimestampFormat
	if layout == "" {
		layout = time.RFC3339Nano
	}
	obj := map[string]interface{}{
		"ts":    entry.Timestamp.Format(layout),
		"level": entry.Level.String(),
		"msg":   entry.Message,
	}
	for k, v := range entry.Fields {
		if err, ok := v.(error); ok {
			obj[k] = err.Error()
			continue
		}
		obj[k] = v
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// TextFormatter renders entries as human-readable lines:
//
//	2024-01-02T15:04:05Z INFO  message key=value ...
type TextFormatter struct {
	TimestampFormat string
}

// Format renders the entry as a text line terminated by a newline.
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	layout := f.TimestampFormat
	if layout == "" {
		layout = time.RFC3339
	}
	var sb strings.Builder
	sb.WriteString(entry.Timestamp.Format(layout))
	sb.WriteByte(' ')
	sb.WriteString(fmt.Sprintf("%-5s", entry.Level.String()))
	sb.WriteByte(' ')
	sb.WriteString(entry.Message)

	// Stable field order for readable, diffable output.
	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := entry.Fields[k]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		sb.WriteString(fmt.Sprintf(" %s=%v", k, v))
	}
	sb.WriteByte('\n')
	return []byte(sb.String()), nil
}
