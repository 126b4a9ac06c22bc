package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// decodeBody accepts JSON or form-encoded payloads into the same form struct,
// so the API serves both the web client and plain HTML forms.
func decodeBody(r *http.Request, dst any) error {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return fmt.Errorf("decode json body: %w", err)
		}
		return nil
	}

	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}

	if err := decoder.Decode(dst, r.PostForm); err != nil {
		return fmt.Errorf("decode form body: %w", err)
	}

	return nil
}
