package calculator

import "errors"

// Reason is the machine-checkable cause of a SplitValidationError.
type Reason string

const (
	ReasonNoPayer         Reason = "no payer"
	ReasonInvalidAmount   Reason = "invalid amount"
	ReasonSumMismatch     Reason = "sum≠100"
	ReasonUnknownStrategy Reason = "unknown strategy"
	ReasonInvalidField    Reason = "invalid field"
)

var reasonCodes = map[Reason]string{
	ReasonNoPayer:         "no_payer",
	ReasonInvalidAmount:   "invalid_amount",
	ReasonSumMismatch:     "sum_mismatch",
	ReasonUnknownStrategy: "unknown_strategy",
	ReasonInvalidField:    "invalid_field",
}

// Code returns an ASCII identifier for r, suitable for headers and metric labels.
func (r Reason) Code() string {
	if code, ok := reasonCodes[r]; ok {
		return code
	}
	return "unknown"
}

// SplitValidationError is the only error kind the split engine returns.
// Every failure is user-correctable.
type SplitValidationError struct {
	Reason Reason
	Detail string
}

func (e *SplitValidationError) Error() string {
	if e.Detail == "" {
		return "split validation failed: " + string(e.Reason)
	}
	return "split validation failed: " + string(e.Reason) + ": " + e.Detail
}

func newValidationError(reason Reason, detail string) *SplitValidationError {
	return &SplitValidationError{Reason: reason, Detail: detail}
}

// ReasonOf extracts the reason from err, or "" if err is not a SplitValidationError.
func ReasonOf(err error) Reason {
	var ve *SplitValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return ""
}

// IsReason reports whether err is a SplitValidationError with the given reason.
func IsReason(err error, reason Reason) bool {
	return ReasonOf(err) == reason
}
