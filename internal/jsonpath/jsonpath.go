// Package jsonpath extracts typed values from decoded JSON trees
// (the map[string]any / []any shapes produced by encoding/json).
//
// Provider payloads are too irregular for static structs: fields go
// missing, numbers arrive as strings, arrays come back empty. Every
// extractor here degrades to a documented default instead of failing,
// so callers never have to guard a lookup with their own type switch.
package jsonpath

import (
	"strconv"
	"strings"
)

// Sentinel returned by ExtractFloat and ExtractInt when the path does
// not resolve to a usable numeric value. Callers must treat it as
// "field unavailable", never as a real price or count.
const NumericSentinel = -1

// ExtractFloat walks path (dotted fields with optional name[index]
// segments, e.g. "offers[0].price.total") and returns the numeric
// value found there. JSON strings holding numbers are accepted.
// Returns NumericSentinel on any miss: absent field, wrong type,
// index out of range or a malformed path.
func ExtractFloat(root any, path string) float64 {
	v, ok := lookup(root, path)
	if !ok {
		return NumericSentinel
	}
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return NumericSentinel
		}
		return f
	default:
		return NumericSentinel
	}
}

// ExtractInt behaves like ExtractFloat but truncates to int.
// Non-integral JSON numbers are truncated; unparsable values return
// NumericSentinel.
func ExtractInt(root any, path string) int {
	v, ok := lookup(root, path)
	if !ok {
		return NumericSentinel
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return NumericSentinel
		}
		return i
	default:
		return NumericSentinel
	}
}

// ExtractString returns the string at path, or ("", false) when the
// path does not resolve to a JSON string.
func ExtractString(root any, path string) (string, bool) {
	v, ok := lookup(root, path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// ExtractBool returns the bool at path, or (false, false) when the
// path does not resolve to a JSON bool.
func ExtractBool(root any, path string) (bool, bool) {
	v, ok := lookup(root, path)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// ExtractArray returns the array at path, or (nil, false) when the
// path does not resolve to a JSON array.
func ExtractArray(root any, path string) ([]any, bool) {
	v, ok := lookup(root, path)
	if !ok {
		return nil, false
	}
	arr, ok := v.([]any)
	return arr, ok
}

// lookup resolves path segment by segment. It never panics: any
// structural mismatch reports ok=false.
func lookup(root any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	cur := root
	for _, seg := range strings.Split(path, ".") {
		field, indexes, ok := parseSegment(seg)
		if !ok {
			return nil, false
		}
		if field != "" {
			obj, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			cur, ok = obj[field]
			if !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			arr, ok := cur.([]any)
			if !ok || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			cur = arr[idx]
		}
	}
	return cur, true
}

// parseSegment splits "offers[0]" into ("offers", [0]). A bare field
// name yields no indexes. Malformed brackets report ok=false.
func parseSegment(seg string) (field string, indexes []int, ok bool) {
	open := strings.IndexByte(seg, '[')
	if open == -1 {
		if seg == "" || strings.ContainsAny(seg, "]") {
			return "", nil, false
		}
		return seg, nil, true
	}

	field = seg[:open]
	rest := seg[open:]
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, false
		}
		close := strings.IndexByte(rest, ']')
		if close == -1 {
			return "", nil, false
		}
		idx, err := strconv.Atoi(rest[1:close])
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, idx)
		rest = rest[close+1:]
	}
	return field, indexes, true
}
