package schema

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// StringSchema validates string payloads.
type StringSchema struct {
	base
	nonEmpty bool
}

// String declares a string field.
func String() *StringSchema { return &StringSchema{} }

// NonEmpty rejects values that are empty after trimming whitespace.
func (s *StringSchema) NonEmpty() *StringSchema {
	s.nonEmpty = true
	return s
}

// Optional marks the field as omittable.
func (s *StringSchema) Optional() *StringSchema {
	s.optional = true
	return s
}

// Default supplies a value applied when the field is absent.
func (s *StringSchema) Default(v string) *StringSchema {
	s.hasDefault = true
	s.defValue = v
	return s
}

// Validate implements Schema.
func (s *StringSchema) Validate(value any) Result {
	str, isString := value.(string)
	if !isString {
		return failf("", "expected string, got %s", typeName(value))
	}
	if s.nonEmpty && strings.TrimSpace(str) == "" {
		return failf("", "must not be empty")
	}
	return ok(str)
}

// Describe implements Schema.
func (s *StringSchema) Describe() Shape {
	return Shape{Type: "string", Optional: s.isOptional(), NonEmpty: s.nonEmpty, Default: s.defValue}
}

// BoolSchema validates boolean payloads.
type BoolSchema struct {
	base
}

// Bool declares a boolean field.
func Bool() *BoolSchema { return &BoolSchema{} }

// Optional marks the field as omittable.
func (s *BoolSchema) Optional() *BoolSchema {
	s.optional = true
	return s
}

// Default supplies a value applied when the field is absent.
func (s *BoolSchema) Default(v bool) *BoolSchema {
	s.hasDefault = true
	s.defValue = v
	return s
}

// Validate implements Schema.
func (s *BoolSchema) Validate(value any) Result {
	b, isBool := value.(bool)
	if !isBool {
		return failf("", "expected boolean, got %s", typeName(value))
	}
	return ok(b)
}

// Describe implements Schema.
func (s *BoolSchema) Describe() Shape {
	return Shape{Type: "bool", Optional: s.isOptional(), Default: s.defValue}
}

// IntSchema validates integer payloads. Inputs may arrive as any Go integer
// width or as an integral float64 (JSON decoding); output is always int64 so
// that revalidating coerced data is a no-op.
type IntSchema struct {
	base
	hasMin bool
	min    int64
}

// Int declares an integer field.
func Int() *IntSchema { return &IntSchema{} }

// Optional marks the field as omittable.
func (s *IntSchema) Optional() *IntSchema {
	s.optional = true
	return s
}

// Default supplies a value applied when the field is absent.
func (s *IntSchema) Default(v int64) *IntSchema {
	s.hasDefault = true
	s.defValue = v
	return s
}

// Min rejects values below the given bound.
func (s *IntSchema) Min(v int64) *IntSchema {
	s.hasMin = true
	s.min = v
	return s
}

// Validate implements Schema.
func (s *IntSchema) Validate(value any) Result {
	n, isInt := coerceInt(value)
	if !isInt {
		return failf("", "expected integer, got %s", typeName(value))
	}
	if s.hasMin && n < s.min {
		return failf("", "must be at least %d", s.min)
	}
	return ok(n)
}

// Describe implements Schema.
func (s *IntSchema) Describe() Shape {
	return Shape{Type: "int", Optional: s.isOptional(), Default: s.defValue}
}

// FloatSchema validates numeric payloads, coerced to float64.
type FloatSchema struct {
	base
}

// Float declares a numeric field.
func Float() *FloatSchema { return &FloatSchema{} }

// Optional marks the field as omittable.
func (s *FloatSchema) Optional() *FloatSchema {
	s.optional = true
	return s
}

// Default supplies a value applied when the field is absent.
func (s *FloatSchema) Default(v float64) *FloatSchema {
	s.hasDefault = true
	s.defValue = v
	return s
}

// Validate implements Schema.
func (s *FloatSchema) Validate(value any) Result {
	switch v := value.(type) {
	case float64:
		return ok(v)
	case float32:
		return ok(float64(v))
	default:
		if n, isInt := coerceInt(value); isInt {
			return ok(float64(n))
		}
	}
	return failf("", "expected number, got %s", typeName(value))
}

// Describe implements Schema.
func (s *FloatSchema) Describe() Shape {
	return Shape{Type: "float", Optional: s.isOptional(), Default: s.defValue}
}

// EnumSchema validates a string against a closed set of members.
type EnumSchema struct {
	base
	members []string
}

// Enum declares a string field restricted to the given members.
func Enum(members ...string) *EnumSchema {
	return &EnumSchema{members: members}
}

// Optional marks the field as omittable.
func (s *EnumSchema) Optional() *EnumSchema {
	s.optional = true
	return s
}

// Default supplies a value applied when the field is absent. The default must
// itself be a member; Validate of the default is the caller's fixture check.
func (s *EnumSchema) Default(v string) *EnumSchema {
	s.hasDefault = true
	s.defValue = v
	return s
}

// Validate implements Schema.
func (s *EnumSchema) Validate(value any) Result {
	str, isString := value.(string)
	if !isString {
		return failf("", "expected string, got %s", typeName(value))
	}
	for _, member := range s.members {
		if str == member {
			return ok(str)
		}
	}
	return failf("", "must be one of [%s], got %q", strings.Join(sortedCopy(s.members), ", "), str)
}

// Describe implements Schema.
func (s *EnumSchema) Describe() Shape {
	return Shape{Type: "enum", Optional: s.isOptional(), Default: s.defValue, Enum: sortedCopy(s.members)}
}

func coerceInt(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int64(v), true
		}
	}
	return 0, false
}

func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, float32, float64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func sortedCopy(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}
