package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "moviedash/internal/errors"
)

// DefaultMaxBodyBytes caps JSON request bodies
const DefaultMaxBodyBytes = 1 << 20

// Validator decodes request bodies and checks them against struct tags.
// Field names in errors use the json tag.
type Validator struct {
	validate    *validator.Validate
	maxBodySize int64
}

// NewValidator creates a validator with the given body limit; a
// non-positive limit uses DefaultMaxBodyBytes.
func NewValidator(maxBodySize int64) *Validator {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodyBytes
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v, maxBodySize: maxBodySize}
}

// DecodeJSON reads a single JSON document from the request body into dst and
// validates it. Unknown fields and trailing data are rejected. Errors are
// *apierrors.APIError or *http.MaxBytesError.
func (v *Validator) DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, v.maxBodySize)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return tooLarge
		}
		if errors.Is(err, io.EOF) {
			return apierrors.New(http.StatusBadRequest, apierrors.CodeInvalidRequest, "Request body is empty")
		}
		return apierrors.InvalidRequestWithError(err)
	}
	if dec.More() {
		return apierrors.New(http.StatusBadRequest, apierrors.CodeInvalidRequest, "Request body must contain a single JSON object")
	}

	return v.ValidateStruct(dst)
}

// ValidateStruct validates a struct and returns validation errors
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierrors.InvalidRequestWithError(err)
	}

	out := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, apierrors.ValidationError{
			Field:   fieldPath(fe),
			Message: formatValidationError(fe),
		})
	}
	return apierrors.NewValidationErrors(out)
}

// fieldPath drops the top-level struct name from the namespace, so
// "Selection.genres[2]" becomes "genres[2]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func formatValidationError(fe validator.FieldError) string {
	field := fieldPath(fe)
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// ContentTypeValidator ensures requests with a body declare one of the given media types
func ContentTypeValidator(contentTypes ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil {
				render.Render(w, r, apierrors.NewErrorResponse(apierrors.New(
					http.StatusUnsupportedMediaType,
					"MISSING_CONTENT_TYPE",
					"Content-Type header is required",
				)))
				return
			}

			for _, allowed := range contentTypes {
				if strings.EqualFold(mediaType, allowed) {
					next.ServeHTTP(w, r)
					return
				}
			}

			render.Render(w, r, apierrors.NewErrorResponse(apierrors.NewWithDetails(
				http.StatusUnsupportedMediaType,
				"UNSUPPORTED_MEDIA_TYPE",
				"Unsupported content type",
				map[string]interface{}{
					"content_type": mediaType,
					"allowed":      contentTypes,
				},
			)))
		})
	}
}
