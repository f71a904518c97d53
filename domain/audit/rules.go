package audit

import (
	"math"
	"math/big"
	"reflect"
	"unicode"
	"unicode/utf8"

	domainerr "github.com/fixora/auditguard/domain/error"
)

// Kind identifies which rule set a FieldGuard was built with
type Kind string

const (
	KindText   Kind = "text"
	KindNumber Kind = "number"
	KindCount  Kind = "count"
)

// Rules is a kind-specific, immutable set of bounds.
type Rules interface {
	Kind() Kind
	check(role string, value any) error
}

// TextRules bounds the length, in characters, of a string field. Both bounds
// are inclusive.
type TextRules struct {
	MinLength int `yaml:"min_length"`
	MaxLength int `yaml:"max_length"`
}

func (TextRules) Kind() Kind { return KindText }

func (r TextRules) check(role string, value any) error {
	text, ok := value.(string)
	if !ok {
		return domainerr.NewValidationError(role, "%s must be a string", roleName(role))
	}
	length := utf8.RuneCountInString(text)
	if length < r.MinLength || length > r.MaxLength {
		return domainerr.NewValidationError(role, "%s must be between %d and %d characters long",
			roleName(role), r.MinLength, r.MaxLength)
	}
	return nil
}

// NumberRules bounds a numeric field. Any Go integer or floating point kind
// is accepted. Both bounds are inclusive.
type NumberRules struct {
	MinValue float64 `yaml:"min_value"`
	MaxValue float64 `yaml:"max_value"`
}

func (NumberRules) Kind() Kind { return KindNumber }

func (r NumberRules) check(role string, value any) error {
	isNumber, inRange := r.contains(value)
	if !isNumber {
		return domainerr.NewValidationError(role, "%s must be a number", roleName(role))
	}
	if !inRange {
		return domainerr.NewValidationError(role, "%s must be between %s and %s, given %s: %s",
			roleName(role), formatFloat(r.MinValue), formatFloat(r.MaxValue), role, FormatValue(value))
	}
	return nil
}

// CountRules bounds a non-negative whole-number field. Only integer kinds are
// accepted. Both bounds are inclusive.
type CountRules struct {
	MinCount int64 `yaml:"min_count"`
	MaxCount int64 `yaml:"max_count"`
}

func (CountRules) Kind() Kind { return KindCount }

func (r CountRules) check(role string, value any) error {
	count, ok := toCount(value)
	if !ok {
		return domainerr.NewValidationError(role, "%s must be a non-negative integer", roleName(role))
	}
	if count < r.MinCount || count > r.MaxCount {
		return domainerr.NewValidationError(role, "%s must be between %d and %d, given %s: %d",
			roleName(role), r.MinCount, r.MaxCount, role, count)
	}
	return nil
}

// contains reports whether value is numeric and lies within the bounds.
// Integers are compared exactly; a float64 conversion would round values
// above 2^53 onto the bound.
func (r NumberRules) contains(value any) (isNumber, inRange bool) {
	if value == nil {
		return false, false
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true, r.containsExact(new(big.Float).SetInt64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true, r.containsExact(new(big.Float).SetUint64(v.Uint()))
	case reflect.Float32, reflect.Float64:
		number := v.Float()
		// NaN fails both comparisons
		return true, r.MinValue <= number && number <= r.MaxValue
	}
	return false, false
}

func (r NumberRules) containsExact(number *big.Float) bool {
	if math.IsNaN(r.MinValue) || math.IsNaN(r.MaxValue) {
		return false
	}
	return number.Cmp(big.NewFloat(r.MinValue)) >= 0 && number.Cmp(big.NewFloat(r.MaxValue)) <= 0
}

// toCount returns the value as an int64 when it is a non-negative integer.
func toCount(value any) (int64, bool) {
	if value == nil {
		return 0, false
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		return n, n >= 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := v.Uint()
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

// roleName turns a field name into the subject of an error message.
func roleName(role string) string {
	if role == "" {
		return "Value"
	}
	r, size := utf8.DecodeRuneInString(role)
	return string(unicode.ToUpper(r)) + role[size:]
}
