package validatorx

import (
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"

	cerr "github.com/Psybah/housify-expo-sub000/utils/errors"
)

var (
	v   *gpvalidator.Validate
	mut sync.Mutex
)

// Init initializes the validator singleton (idempotent)
func Init() {
	mut.Lock()
	defer mut.Unlock()
	if v != nil {
		return
	}
	v = gpvalidator.New()
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	if v == nil {
		Init()
	}
	return v.Struct(s)
}

// CollectViolations runs struct validation and returns every failing field,
// not just the first. Returns nil when the struct is valid.
func CollectViolations(s interface{}) []cerr.FieldViolation {
	err := ValidateStruct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(gpvalidator.ValidationErrors)
	if !ok {
		return []cerr.FieldViolation{{Field: "request", Rule: "invalid"}}
	}

	out := make([]cerr.FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, cerr.FieldViolation{
			Field: fe.Namespace(),
			Rule:  fe.Tag(),
		})
	}
	return out
}
