package api

import (
	"encoding/json/v2"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, v any) error {
	return json.UnmarshalRead(r.Body, v)
}

// idParam parses a numeric URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// message is the body of responses that only confirm an action.
func message(text string) map[string]string {
	return map[string]string{"message": text}
}
