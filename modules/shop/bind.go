package shop

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

const maxBodyBytes = 1 << 20

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidJSON          = errors.New("invalid JSON body")
	ErrBodyTooLarge         = errors.New("request body too large")
)

// bindModel decodes a JSON object body into a model and merges the {id} URL
// parameter over it. A request without a body yields a model holding only
// URL parameters. A body must be declared as application/json.
func bindModel(w http.ResponseWriter, r *http.Request) (validator.Model, error) {
	model := validator.Model{}

	if r.ContentLength != 0 && r.Body != nil && r.Body != http.NoBody {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			return nil, fmt.Errorf("%w: expected application/json", ErrUnsupportedMediaType)
		}

		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		var body any
		err = dec.Decode(&body)
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, ErrBodyTooLarge
		case errors.Is(err, io.EOF):
			// empty body
		case err != nil:
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		default:
			obj, isObject := body.(map[string]any)
			if !isObject {
				return nil, fmt.Errorf("%w: body must be a JSON object", ErrInvalidJSON)
			}
			if dec.More() {
				return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
			}
			model = obj
		}
	}

	if id := chi.URLParam(r, "id"); id != "" {
		model["id"] = id
	}
	return model, nil
}
