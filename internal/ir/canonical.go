package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces RFC 8785 canonical JSON.
// This is the only serialization used for trace hashing and golden snapshots.
//
// Differences from json.Marshal:
//  1. Object keys sorted by UTF-16 code units (not UTF-8 bytes)
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings are NFC normalized
//  4. No floats, no null
//
// Supported inputs: string, int, int64, bool, []int, []any, map[string]any,
// Step and Trace.
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		writeCanonicalString(buf, val)
	case int:
		buf.WriteString(strconv.Itoa(val))
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	case []int:
		buf.WriteByte('[')
		for i, n := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.Itoa(n))
		}
		buf.WriteByte(']')
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		return writeCanonicalObject(buf, val)
	case Trace:
		buf.WriteByte('[')
		for i, s := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, s); err != nil {
				return fmt.Errorf("step[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case Step:
		obj, err := stepObject(val)
		if err != nil {
			return err
		}
		return writeCanonicalObject(buf, obj)
	case float32, float64:
		return fmt.Errorf("floats are forbidden in canonical JSON: %v", val)
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
	return nil
}

func writeCanonicalObject(buf *bytes.Buffer, obj map[string]any) error {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeCanonicalString(buf, k)
		buf.WriteByte(':')
		if err := writeCanonical(buf, obj[k]); err != nil {
			return fmt.Errorf("value for key %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// writeCanonicalString escapes only what RFC 8785 requires: quote,
// backslash and control characters. U+2028/U+2029 stay literal.
func writeCanonicalString(buf *bytes.Buffer, s string) {
	const hex = "0123456789abcdef"

	buf.WriteByte('"')
	for _, r := range norm.NFC.String(s) {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(hex[r>>4])
				buf.WriteByte(hex[r&0xF])
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

// compareKeysRFC8785 orders strings by UTF-16 code units.
// Go's native string comparison is UTF-8 and disagrees above the BMP.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}

// stepObject is the wire shape of a step: its kind, its delay flag and
// the kind's payload fields.
func stepObject(s Step) (map[string]any, error) {
	obj := map[string]any{
		"kind":  string(s.Kind()),
		"delay": s.Delayed(),
	}
	switch v := s.(type) {
	case Comparison:
		obj["pos1"], obj["pos2"] = v.Pos1, v.Pos2
	case Swap:
		obj["pos1"], obj["pos2"] = v.Pos1, v.Pos2
	case Mark:
		obj["pos"], obj["multiple"] = v.Pos, v.Multiple
	case Focus:
		obj["from"], obj["to"] = v.From, v.To
	case Replace:
		obj["pos"], obj["height"] = v.Pos, v.Height
	case Unmark, Unfocus, Unreplace:
	default:
		return nil, fmt.Errorf("unknown step type %T", s)
	}
	return obj, nil
}

// wireStep is the decoding counterpart of stepObject.
type wireStep struct {
	Kind     Kind `json:"kind"`
	Delay    bool `json:"delay"`
	Pos      int  `json:"pos"`
	Pos1     int  `json:"pos1"`
	Pos2     int  `json:"pos2"`
	Multiple bool `json:"multiple"`
	From     int  `json:"from"`
	To       int  `json:"to"`
	Height   int  `json:"height"`
}

func (w wireStep) toStep() (Step, error) {
	switch w.Kind {
	case KindComparison:
		return Comparison{Pos1: w.Pos1, Pos2: w.Pos2, Delay: w.Delay}, nil
	case KindSwap:
		return Swap{Pos1: w.Pos1, Pos2: w.Pos2, Delay: w.Delay}, nil
	case KindMark:
		return Mark{Pos: w.Pos, Multiple: w.Multiple, Delay: w.Delay}, nil
	case KindUnmark:
		return Unmark{Delay: w.Delay}, nil
	case KindFocus:
		return Focus{From: w.From, To: w.To, Delay: w.Delay}, nil
	case KindUnfocus:
		return Unfocus{Delay: w.Delay}, nil
	case KindReplace:
		return Replace{Pos: w.Pos, Height: w.Height, Delay: w.Delay}, nil
	case KindUnreplace:
		return Unreplace{Delay: w.Delay}, nil
	default:
		return nil, fmt.Errorf("unknown step kind %q", w.Kind)
	}
}

// MarshalStep encodes one step as canonical JSON.
func MarshalStep(s Step) ([]byte, error) {
	return MarshalCanonical(s)
}

// UnmarshalStep decodes a step produced by MarshalStep.
func UnmarshalStep(data []byte) (Step, error) {
	var w wireStep
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("unmarshal step: %w", err)
	}
	return w.toStep()
}

// MarshalTrace encodes a trace as a canonical JSON array.
func MarshalTrace(t Trace) ([]byte, error) {
	return MarshalCanonical(t)
}

// UnmarshalTrace decodes a trace produced by MarshalTrace.
func UnmarshalTrace(data []byte) (Trace, error) {
	var wire []wireStep
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("unmarshal trace: %w", err)
	}
	t := make(Trace, len(wire))
	for i, w := range wire {
		s, err := w.toStep()
		if err != nil {
			return nil, fmt.Errorf("step[%d]: %w", i, err)
		}
		t[i] = s
	}
	return t, nil
}
