package core

// # Error Codes Reference
//
// This file defines user-facing error messages with codes for support reference.
// Users can quote the code when reporting a problem.
//
// # Table Format Errors (FMT001-FMT099)
//
//	FMT001 - Too few lines: the table needs a header and at least one row
//	         Patterns: "insufficient lines"
//
//	FMT002 - Header mismatch: header is not "label 확률" pairs or "label확률" tokens
//	         Patterns: "header does not match"
//
//	FMT003 - Invalid percentage cell
//	         Patterns: "invalid percentage"
//
//	FMT004 - Negative probability
//	         Patterns: "negative probability"
//
//	FMT005 - Probability above 100%
//	         Patterns: "probability out of range"
//
// # Table State (TBL001)
//
//	TBL001 - Table not loaded: generation before a successful load
//	         Patterns: "table not loaded"
//
// # Request Validation (VAL001-VAL099)
//
//	VAL001 - Combination count outside 1..20 or not a number
//	         Patterns: "count:"
//
//	VAL002 - Slot policy is not top, bottom or random
//	         Patterns: "selection policy", "slot policies"
//
//	VAL003 - Unknown preset name
//	         Patterns: "unknown preset"
//
// # Source Errors (SRC001-SRC099)
//
//	SRC002 - Table source not found
//	         Patterns: "source not found"
//
//	SRC001 - Table source could not be read
//	         Patterns: "source unavailable"
//
// # Request Errors (REQ001-REQ099), Rate Limiting (RATE001), Default (ERR000)
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so TBL001 is listed before the format
// codes: a failed store reports both the not-loaded condition and its cause.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so order matters.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Table State (TBL001)
	// =========================================================================
	{
		pattern: "table not loaded",
		msg: UserMessage{
			Message: "확률표가 아직 로드되지 않았습니다",
			Action:  "데이터 파일을 확인한 뒤 다시 불러오세요",
			Code:    "TBL001",
		},
	},

	// =========================================================================
	// Table Format Errors (FMT001-FMT005)
	// =========================================================================
	{
		pattern: "insufficient lines",
		msg: UserMessage{
			Message: "확률표에 헤더와 데이터 행이 필요합니다",
			Action:  "데이터 파일이 비어 있지 않은지 확인하세요",
			Code:    "FMT001",
		},
	},
	{
		pattern: "header does not match",
		msg: UserMessage{
			Message: "확률표 헤더 형식이 올바르지 않습니다",
			Action:  "헤더가 '번호 1칸 확률 ...' 또는 '1칸확률 2칸확률 ...' 형식인지 확인하세요",
			Code:    "FMT002",
		},
	},
	{
		pattern: "invalid percentage",
		msg: UserMessage{
			Message: "확률 값을 숫자로 읽을 수 없습니다",
			Action:  "확률 칸에 숫자 또는 '-'만 있는지 확인하세요",
			Code:    "FMT003",
		},
	},
	{
		pattern: "negative probability",
		msg: UserMessage{
			Message: "확률 값은 음수일 수 없습니다",
			Action:  "데이터 파일의 확률 값을 확인하세요",
			Code:    "FMT004",
		},
	},
	{
		pattern: "probability out of range",
		msg: UserMessage{
			Message: "확률 값은 100%를 넘을 수 없습니다",
			Action:  "데이터 파일의 확률 값이 0에서 100 사이인지 확인하세요",
			Code:    "FMT005",
		},
	},

	// =========================================================================
	// Request Validation (VAL001-VAL003)
	// =========================================================================
	{
		pattern: "count:",
		msg: UserMessage{
			Message: CountMessage,
			Action:  fmt.Sprintf("%d부터 %d까지의 숫자를 입력하세요", MinCombinations, MaxCombinations),
			Code:    "VAL001",
		},
	},
	{
		pattern: "selection policy",
		msg: UserMessage{
			Message: "알 수 없는 선택 방식입니다",
			Action:  "각 칸에 top, bottom, random 중 하나를 선택하세요",
			Code:    "VAL002",
		},
	},
	{
		pattern: "slot policies",
		msg: UserMessage{
			Message: "여섯 칸 모두 선택 방식이 필요합니다",
			Action:  "각 칸에 top, bottom, random 중 하나를 선택하세요",
			Code:    "VAL002",
		},
	},
	{
		pattern: "unknown preset",
		msg: UserMessage{
			Message: "알 수 없는 프리셋입니다",
			Action:  "selection.yaml에 정의된 프리셋 이름을 사용하세요",
			Code:    "VAL003",
		},
	},

	// =========================================================================
	// Source Errors (SRC001-SRC002)
	// =========================================================================
	{
		pattern: "source not found",
		msg: UserMessage{
			Message: "데이터 파일을 찾을 수 없습니다",
			Action:  "SOURCE_PATH 또는 SOURCE_URL 설정을 확인하세요",
			Code:    "SRC002",
		},
	},
	{
		pattern: "source unavailable",
		msg: UserMessage{
			Message: "데이터 파일을 불러오는 데 실패했습니다",
			Action:  "잠시 후 다시 불러오세요",
			Code:    "SRC001",
		},
	},

	// =========================================================================
	// Request Errors (REQ001-REQ002)
	// =========================================================================
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "요청이 취소되었습니다",
			Action:  "다시 시도하세요",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "요청 시간이 초과되었습니다",
			Action:  "잠시 후 다시 시도하세요",
			Code:    "REQ002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "요청 시간이 초과되었습니다",
			Action:  "잠시 후 다시 시도하세요",
			Code:    "REQ002",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "요청이 너무 많습니다",
			Action:  "잠시 기다린 후 다시 시도하세요",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
// Support staff should check application logs for the original error.
var defaultMessage = UserMessage{
	Message: "예상하지 못한 오류가 발생했습니다",
	Action:  "다시 시도하거나 관리자에게 문의하세요",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
//
// Example:
//
//	msg := MapError(core.ErrNotLoaded)
//	// msg.Code == "TBL001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// LoadFailureMessage is the alert shown when the table could not be loaded.
// It includes the underlying cause.
func LoadFailureMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := MapError(err)
	return fmt.Sprintf("데이터 파일을 불러오는 데 실패했습니다: %v (Code: %s)", err, msg.Code)
}

// IsUserFacing checks if an error matches a known pattern and should be shown to users.
// Returns true if the error matches a specific pattern (not the generic ERR000 fallback).
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	msg := MapError(err)
	return msg.Code != defaultMessage.Code
}

// UserError wraps a technical error with a user-friendly message.
// The original error is preserved for logging while providing a clean message for users.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError creates a UserError by mapping a technical error to a user-friendly message.
// Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
