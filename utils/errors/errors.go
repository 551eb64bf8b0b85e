package errors

import (
	"strings"

	"github.com/Psybah/housify-expo-sub000/constant"
)

type CustomError struct {
	errType constant.ErrorType
}

func (c CustomError) Error() string {
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// FieldViolation names one invalid request field and the rule it broke.
type FieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError carries every failing field of a request, not just the
// first, so the UI can render per-field messages.
type ValidationError struct {
	CustomError
	Fields []FieldViolation
}

func (v ValidationError) Error() string {
	if len(v.Fields) == 0 {
		return v.CustomError.Error()
	}
	names := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		names = append(names, f.Field)
	}
	return v.CustomError.Error() + ": " + strings.Join(names, ", ")
}

func SetValidationError(fields []FieldViolation) ValidationError {
	return ValidationError{
		CustomError: SetCustomError(constant.ErrValidation),
		Fields:      fields,
	}
}
