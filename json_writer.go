package statement

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"
)

// jsonObjectWriter builds a JSON object field by field, in order. The first error
// stops it and is returned by MarshalJSON. Its zero value is an empty object.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

func (w *jsonObjectWriter) field(key string, raw []byte) {
	if w.Len() > 0 {
		w.WriteByte(',')
	}
	k, _ := json.Marshal(key)
	w.Write(k)
	w.WriteByte(':')
	w.Write(raw)
}

func (w *jsonObjectWriter) marshal(what string, v any) []byte {
	if w.err != nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal %s: %w", what, err)
		return nil
	}
	return raw
}

// Append adds a field.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if raw := w.marshal(fmt.Sprintf("field %q", key), value); raw != nil {
		w.field(key, raw)
	}
	return w
}

// Optional adds a field unless value is the zero value of its type.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// Embed adds the fields of a JSON object.
func (w *jsonObjectWriter) Embed(object []byte) *jsonObjectWriter {
	return w.embed("", object)
}

// EmbedFrom adds the fields of v, that marshals to a JSON object.
func (w *jsonObjectWriter) EmbedFrom(v any) *jsonObjectWriter {
	return w.embed("", w.marshal("embedded object", v))
}

// PrefixFrom adds the fields of v like EmbedFrom, with keys renamed in camelCase
// after prefix: "amount" becomes "balanceAmount" with prefix "balance".
func (w *jsonObjectWriter) PrefixFrom(prefix string, v any) *jsonObjectWriter {
	return w.embed(prefix, w.marshal("embedded object", v))
}

// embed copies the fields of object in order, nested values untouched.
func (w *jsonObjectWriter) embed(prefix string, object []byte) *jsonObjectWriter {
	if w.err != nil || object == nil {
		return w
	}
	dec := json.NewDecoder(bytes.NewReader(object))
	if t, err := dec.Token(); err != nil || t != json.Delim('{') {
		w.err = fmt.Errorf("cannot embed %q: not an object", object)
		return w
	}
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			w.err = fmt.Errorf("cannot embed %q: %w", object, err)
			return w
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			w.err = fmt.Errorf("cannot embed %q: %w", object, err)
			return w
		}
		w.field(camel(prefix, t.(string)), value)
	}
	return w
}

// camel joins prefix and key in camelCase.
func camel(prefix, key string) string {
	if prefix == "" || key == "" {
		return prefix + key
	}
	r, n := utf8.DecodeRuneInString(key)
	return prefix + string(unicode.ToUpper(r)) + key[n:]
}

// MarshalJSON returns the object built so far.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return append(append([]byte{'{'}, w.Bytes()...), '}'), nil
}
