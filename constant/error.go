package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrCredentialExists
	ErrInvalidPassword
	ErrValidation
	ErrForbidden
	ErrInsufficientPoints
	ErrContactLocked
	ErrCollaborator
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:            "success",
	ErrInternal:           "error internal",
	ErrNotFound:           "data not found",
	ErrInvalidRequest:     "invalid request",
	ErrUnauthorize:        "unauthorize request",
	ErrCredentialExists:   "email or phone already exists",
	ErrInvalidPassword:    "password invalid",
	ErrValidation:         "validation failed",
	ErrForbidden:          "operation not permitted",
	ErrInsufficientPoints: "insufficient points",
	ErrContactLocked:      "contact details are locked",
	ErrCollaborator:       "upstream service unavailable, please retry",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:            http.StatusOK,
	ErrInternal:           http.StatusInternalServerError,
	ErrNotFound:           http.StatusNotFound,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrUnauthorize:        http.StatusUnauthorized,
	ErrCredentialExists:   http.StatusBadRequest,
	ErrInvalidPassword:    http.StatusBadRequest,
	ErrValidation:         http.StatusBadRequest,
	ErrForbidden:          http.StatusForbidden,
	ErrInsufficientPoints: http.StatusPaymentRequired,
	ErrContactLocked:      http.StatusForbidden,
	ErrCollaborator:       http.StatusBadGateway,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:            "0000",
	ErrInternal:           "0001",
	ErrNotFound:           "0002",
	ErrInvalidRequest:     "0003",
	ErrUnauthorize:        "0004",
	ErrCredentialExists:   "0005",
	ErrInvalidPassword:    "0006",
	ErrValidation:         "0007",
	ErrForbidden:          "0008",
	ErrInsufficientPoints: "0009",
	ErrContactLocked:      "0010",
	ErrCollaborator:       "0011",
}
