package transport

import (
	"encoding/json"
	"net/http"

	"github.com/Psybah/housify-expo-sub000/constant"
	"github.com/Psybah/housify-expo-sub000/utils/errors"
)

type apiResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Data    interface{}             `json:"data,omitempty"`
	Fields  []errors.FieldViolation `json:"fields,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(apiResponse{
		Code:    constant.ErrorTypeCode[constant.Successful],
		Message: constant.ErrorTypeMessage[constant.Successful],
		Data:    data,
	})
}

// writeError renders the taxonomy: validation errors carry the full field
// list, collaborator and internal failures stay generic.
func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	if verr, ok := err.(errors.ValidationError); ok {
		w.WriteHeader(verr.ErrorHTTPCode())
		_ = json.NewEncoder(w).Encode(apiResponse{
			Code:    verr.ErrorCode(),
			Message: verr.CustomError.Error(),
			Fields:  verr.Fields,
		})
		return
	}

	if cerr, ok := err.(errors.CustomError); ok {
		w.WriteHeader(cerr.ErrorHTTPCode())
		_ = json.NewEncoder(w).Encode(apiResponse{
			Code:    cerr.ErrorCode(),
			Message: cerr.Error(),
		})
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(apiResponse{
		Code:    constant.ErrorTypeCode[constant.ErrInternal],
		Message: constant.ErrorTypeMessage[constant.ErrInternal],
	})
}
