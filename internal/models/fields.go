package models

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"time"

	apperrors "textunited-client/internal/errors"
)

// fieldReader extracts named fields from a remote JSON object. Every accessor
// requires the key to be present; the first failure is kept in err and later
// accessors become no-ops returning zero values.
type fieldReader struct {
	entity string
	raw    map[string]json.RawMessage
	err    error
}

func newFieldReader(entity string, data json.RawMessage) (*fieldReader, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil, apperrors.NewMalformedPayloadError(entity, "", "expected a JSON object")
	}
	return &fieldReader{entity: entity, raw: raw}, nil
}

// decodeArray splits a JSON array into its elements
func decodeArray(entity string, data json.RawMessage) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, apperrors.NewMalformedPayloadError(entity, "", "expected a JSON array")
	}
	return items, nil
}

func (r *fieldReader) fail(field, message string) {
	if r.err == nil {
		r.err = apperrors.NewMalformedPayloadError(r.entity, field, message)
	}
}

// lookup returns the raw value of key; ok is false when the value is null or
// when reading already failed
func (r *fieldReader) lookup(key string) (json.RawMessage, bool) {
	if r.err != nil {
		return nil, false
	}
	value, present := r.raw[key]
	if !present {
		r.fail(key, "required field is missing")
		return nil, false
	}
	if string(value) == "null" {
		return nil, false
	}
	return value, true
}

func (r *fieldReader) intField(key string) int {
	value, ok := r.lookup(key)
	if !ok {
		return 0
	}
	n, ok := parseInt(value)
	if !ok {
		r.fail(key, fmt.Sprintf("expected an integer, got %s", value))
		return 0
	}
	return n
}

// parseInt accepts a JSON number that is an integer within the range of int,
// written plainly or with an integral exponent form such as 1e3
func parseInt(value json.RawMessage) (int, bool) {
	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()

	var number json.Number
	if err := dec.Decode(&number); err != nil {
		return 0, false
	}
	if i, err := number.Int64(); err == nil {
		if i < math.MinInt || i > math.MaxInt {
			return 0, false
		}
		return int(i), true
	}

	// 1e3 or 28.0: integral only when the exact decimal value has no fraction
	// and fits in int64
	rat, ok := new(big.Rat).SetString(number.String())
	if !ok || !rat.IsInt() || !rat.Num().IsInt64() {
		return 0, false
	}
	i := rat.Num().Int64()
	if i < math.MinInt || i > math.MaxInt {
		return 0, false
	}
	return int(i), true
}

func (r *fieldReader) stringField(key string) string {
	value, ok := r.lookup(key)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		r.fail(key, fmt.Sprintf("expected a string, got %s", value))
		return ""
	}
	return s
}

func (r *fieldReader) optionalStringField(key string) *string {
	value, ok := r.lookup(key)
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		r.fail(key, fmt.Sprintf("expected a string, got %s", value))
		return nil
	}
	return &s
}

func (r *fieldReader) dateField(key string) *time.Time {
	s := r.stringField(key)
	if r.err != nil {
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		r.fail(key, err.Error())
		return nil
	}
	return t
}

func (r *fieldReader) bytesField(key string) []byte {
	s := r.stringField(key)
	if r.err != nil {
		return nil
	}
	content, err := DecodeContent(s)
	if err != nil {
		r.fail(key, "invalid base64 content")
		return nil
	}
	return content
}

// EncodeContent encodes raw file bytes for transport in JSON
func EncodeContent(content []byte) string {
	return base64.StdEncoding.EncodeToString(content)
}

// DecodeContent decodes base64 file content received in JSON
func DecodeContent(encoded string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(encoded)
}
