package node

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	json "github.com/goccy/go-json"
)

// ErrDecode indicates the document bytes are not valid JSON.
var ErrDecode = errors.New("invalid document JSON")

// errTruncated replaces parser messages for input that stops mid-document.
const errTruncated = "unexpected end of JSON input"

// Decode parses raw JSON into a generic value suitable for Normalize.
func Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDecode, errTruncated)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecode, decodeMessage(err))
	}
	return v, nil
}

// decodeMessage returns a printable description of a parse error.
// go-json reports reads past the end of the buffer as a NUL character.
func decodeMessage(err error) string {
	msg := err.Error()
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		strings.ContainsRune(msg, 0) || strings.Contains(msg, `\x00`) ||
		strings.Contains(msg, errTruncated) {
		return errTruncated
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, msg)
}

// Normalize selects the node sequence of a parsed document.
// Shapes are tried in order: {content: [...]}, bare [...], {elements: [...]}.
// Unrecognized shapes yield nil.
func Normalize(doc any) []Node {
	raw, ok := selectSequence(doc)
	if !ok {
		return nil
	}
	return nodesFromAny(raw)
}

func selectSequence(doc any) ([]any, bool) {
	if obj, ok := doc.(map[string]any); ok {
		if seq, ok := obj["content"].([]any); ok {
			return seq, true
		}
	}
	if seq, ok := doc.([]any); ok {
		return seq, true
	}
	if obj, ok := doc.(map[string]any); ok {
		if seq, ok := obj["elements"].([]any); ok {
			return seq, true
		}
	}
	return nil, false
}

func nodesFromAny(raw []any) []Node {
	if len(raw) == 0 {
		return nil
	}
	nodes := make([]Node, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		nodes = append(nodes, nodeFromObject(obj))
	}
	return nodes
}

// nodeFromObject builds a Node, accepting both Elementor export field names
// (elType, elements, widgetType) and neutral ones (kind, children, widgetKind).
func nodeFromObject(obj map[string]any) Node {
	n := Node{
		ID:         stringField(obj, "id"),
		Kind:       Kind(firstString(obj, "elType", "kind")),
		WidgetKind: firstString(obj, "widgetType", "widgetKind"),
	}

	if raw, ok := obj["settings"].(map[string]any); ok {
		n.Settings = settingsFromAny(raw)
	} else {
		n.Settings = Settings{}
	}

	if n.Kind != KindWidget {
		children, ok := obj["elements"].([]any)
		if !ok {
			children, _ = obj["children"].([]any)
		}
		n.Children = nodesFromAny(children)
	}

	return n
}

func firstString(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringField(obj, k); s != "" {
			return s
		}
	}
	return ""
}

func stringField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%g", v)
	}
	return ""
}
