package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for request structs.
var validate = validator.New()

// DecodeJSON decodes the request body into dst, rejecting empty bodies
// and trailing garbage.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("request body contains more than one JSON object")
	}
	return nil
}

// ValidateRequest validates a decoded request struct against its
// `validate` tags.
func ValidateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("invalid field %q: failed on %q rule", f.Field(), f.Tag())
		}
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}
