package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// CountKind records how an attempt counter was stored
type CountKind int

const (
	CountMissing CountKind = iota // field absent or null
	CountNumeric                  // int32, int64, double or decimal
	CountText                     // legacy imports stored the counter as a string
	CountOther                    // any other BSON type; treated as zero
)

func (k CountKind) String() string {
	switch k {
	case CountMissing:
		return "missing"
	case CountNumeric:
		return "numeric"
	case CountText:
		return "text"
	default:
		return "other"
	}
}

// AttemptCount is the number of times a question has been rated.
// Decoding accepts every historical encoding; encoding always writes an int32.
type AttemptCount struct {
	kind  CountKind
	value int
	text  string
}

// NumericCount builds a counter in the normalized representation
func NumericCount(n int) AttemptCount {
	return AttemptCount{kind: CountNumeric, value: clampCount(n)}
}

// TextCount builds a counter as legacy imports stored it
func TextCount(s string) AttemptCount {
	return AttemptCount{kind: CountText, value: parseCount(s), text: s}
}

// Kind returns the stored representation
func (c AttemptCount) Kind() CountKind { return c.kind }

// Value returns the normalized count
func (c AttemptCount) Value() int { return c.value }

// Text returns the stored string for text counters
func (c AttemptCount) Text() string { return c.text }

// Next returns the normalized counter after one more attempt
func (c AttemptCount) Next() AttemptCount {
	return NumericCount(c.value + 1)
}

func (c AttemptCount) String() string {
	if c.kind == CountText {
		return fmt.Sprintf("%d (text %q)", c.value, c.text)
	}
	return strconv.Itoa(c.value)
}

// MarshalBSONValue implements bson.ValueMarshaler
func (c AttemptCount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.TypeInt32, bsoncore.AppendInt32(nil, int32(c.value)), nil
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler
func (c *AttemptCount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeNull, bson.TypeUndefined:
		*c = AttemptCount{}
	case bson.TypeInt32:
		v, _ := raw.Int32OK()
		*c = NumericCount(int(v))
	case bson.TypeInt64:
		v, _ := raw.Int64OK()
		*c = NumericCount(int(v))
	case bson.TypeDouble:
		v, _ := raw.DoubleOK()
		*c = NumericCount(floatCount(v))
	case bson.TypeDecimal128:
		d, _ := raw.Decimal128OK()
		f, err := strconv.ParseFloat(d.String(), 64)
		if err != nil {
			f = 0
		}
		*c = NumericCount(floatCount(f))
	case bson.TypeString:
		s, _ := raw.StringValueOK()
		*c = TextCount(s)
	default:
		*c = AttemptCount{kind: CountOther}
	}
	return nil
}

// MarshalJSON always emits the normalized number
func (c AttemptCount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(c.value)), nil
}

// UnmarshalJSON accepts a number, a numeric string or null
func (c *AttemptCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = AttemptCount{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = TextCount(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("answeredTimes: %w", err)
	}
	*c = NumericCount(floatCount(f))
	return nil
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return clampCount(n)
}

func floatCount(f float64) int {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > math.MaxInt32:
		return math.MaxInt32
	}
	return int(f)
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return n
}
