package decode

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeError is the error returned when a JSON value does not match
// the shape a decoder expects.
type DecodeError struct {
	// Path is the chain of object fields and array indexes leading
	// to the failure point, outermost first. Index segments are of
	// the form "[3]".
	Path []string
	// Reason is an explanation of why decoding failed.
	Reason error
}

func (e *DecodeError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("decoding value: %s", e.Reason)
	}
	return fmt.Sprintf("decoding %s: %s", pathString(e.Path), e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Reason
}

func pathString(path []string) string {
	var b strings.Builder
	for i, seg := range path {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

func decodeErrf(format string, args ...any) error {
	return &DecodeError{Reason: fmt.Errorf(format, args...)}
}

// atPath prepends a path segment to err. A DecodeError keeps its
// structure; any other error is wrapped into one.
func atPath(seg string, err error) error {
	if de, ok := err.(*DecodeError); ok {
		return &DecodeError{Path: append([]string{seg}, de.Path...), Reason: de.Reason}
	}
	return &DecodeError{Path: []string{seg}, Reason: err}
}

func atField(name string, err error) error { return atPath(name, err) }

func atIndex(i int, err error) error { return atPath(fmt.Sprintf("[%d]", i), err) }

// kindName names the JSON kind of a generic JSON value, for error
// messages.
func kindName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, float32, int, int32, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func wrongKind(want string, got any) error {
	return decodeErrf("want %s, got %s", want, kindName(got))
}

// jsonString renders a generic JSON value as JSON text for error
// messages, falling back to fmt for values json.Marshal rejects.
func jsonString(v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}
