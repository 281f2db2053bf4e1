package core

// validation.go checks generation requests before any work is done.
//
// Validation happens at two levels:
//  1. Count: the number of combinations must be an integer in [1, 20]
//  2. Slots: exactly one known policy per slot
//
// ValidateRequest returns every problem at once for forms; the Parse helpers
// stop at the first.

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names used in ValidationError.
const (
	FieldCount  = "count"
	FieldSlots  = "slots"
	FieldPreset = "preset"
)

// CountMessage is shown when the requested combination count is rejected.
var CountMessage = fmt.Sprintf("생성할 조합 개수는 %d에서 %d 사이의 숫자여야 합니다.", MinCombinations, MaxCombinations)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Field/parameter name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationResult contains the result of validating a request.
type ValidationResult struct {
	Valid  bool              // True if all validations passed
	Errors []ValidationError // List of validation errors (empty if Valid)
}

// Err returns the first error, or nil when the result is valid.
func (r ValidationResult) Err() error {
	if r.Valid || len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}

// ParseCount converts user input to a combination count.
// Non-numeric input and values outside [MinCombinations, MaxCombinations]
// are rejected with a ValidationError.
func ParseCount(raw string) (int, error) {
	s := strings.TrimSpace(NormalizeText(raw))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ValidationError{Field: FieldCount, Value: raw, Message: CountMessage}
	}
	if err := ValidateCount(n); err != nil {
		return 0, err
	}
	return n, nil
}

// ValidateCount checks an already-numeric count.
func ValidateCount(n int) error {
	if n < MinCombinations || n > MaxCombinations {
		return ValidationError{Field: FieldCount, Value: strconv.Itoa(n), Message: CountMessage}
	}
	return nil
}

// ParsePolicies converts one token per slot into SlotPolicies.
// Exactly ComboSize tokens are required and each must name a known policy.
func ParsePolicies(tokens []string) (SlotPolicies, error) {
	if len(tokens) != ComboSize {
		return nil, ValidationError{
			Field:   FieldSlots,
			Value:   strings.Join(tokens, ","),
			Message: fmt.Sprintf("expected %d slot policies, got %d", ComboSize, len(tokens)),
		}
	}
	sp := make(SlotPolicies, ComboSize)
	for i, tok := range tokens {
		p, ok := ParsePolicy(tok)
		if !ok {
			return nil, ValidationError{
				Field:   fmt.Sprintf("slot%d", i+1),
				Value:   tok,
				Message: fmt.Sprintf("unknown selection policy (use %s)", policyNames()),
			}
		}
		sp[i+1] = p
	}
	return sp, nil
}

// ValidateRequest checks count and slot tokens, collecting every error.
func ValidateRequest(count string, slots []string) ValidationResult {
	result := ValidationResult{Valid: true}

	if _, err := ParseCount(count); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.(ValidationError))
	}

	if len(slots) != ComboSize {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   FieldSlots,
			Message: fmt.Sprintf("expected %d slot policies, got %d", ComboSize, len(slots)),
		})
		return result
	}
	for i, tok := range slots {
		if _, ok := ParsePolicy(tok); !ok {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("slot%d", i+1),
				Value:   tok,
				Message: fmt.Sprintf("unknown selection policy (use %s)", policyNames()),
			})
		}
	}

	return result
}

func policyNames() string {
	names := make([]string, len(Policies))
	for i, p := range Policies {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
