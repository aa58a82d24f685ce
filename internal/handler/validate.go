package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"moments/backend/internal/httputil"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeAndValidate decodes the JSON body into dst and runs struct validation.
// On failure it writes the 400 response itself and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.WriteBadRequest(w, "invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			httputil.WriteValidationError(w, fieldErrors(verrs))
		} else {
			httputil.WriteBadRequest(w, "invalid request body")
		}
		return false
	}
	return true
}

func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "this field is required"
		case "min":
			out[field] = "must be at least " + fe.Param() + " characters"
		case "max":
			out[field] = "must be at most " + fe.Param() + " characters"
		case "email":
			out[field] = "must be a valid email address"
		case "oneof":
			out[field] = "must be one of: " + fe.Param()
		default:
			out[field] = "invalid value"
		}
	}
	return out
}
