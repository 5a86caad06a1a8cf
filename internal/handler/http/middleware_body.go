package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// withBodyLimit caps the request body. Reading past the limit fails with
// [http.MaxBytesError], which handlers report as 413.
func (h *Handler) withBodyLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.bodyLimit > 0 && r.Body != nil {
			if r.ContentLength > h.bodyLimit {
				h.writeError(w, r, ErrBodyTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, h.bodyLimit)
		}
		next.ServeHTTP(w, r)
	})
}

// withSanitizedBody rewrites JSON bodies: object keys starting with "$" or
// containing "." are dropped and "<" in strings is escaped. Bodies that are
// not valid JSON are passed on untouched.
func (h *Handler) withSanitizedBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}

		raw, err := io.ReadAll(r.Body)
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				err = ErrBodyTooLarge
			}
			h.writeError(w, r, err)
			return
		}

		if doc, ok := decodeDocument(raw); ok {
			if clean, err := json.Marshal(sanitize(doc)); err == nil {
				raw = clean
			}
		}

		r.Body = io.NopCloser(bytes.NewReader(raw))
		r.ContentLength = int64(len(raw))

		next.ServeHTTP(w, r)
	})
}

// decodeDocument parses a single JSON value. Numbers stay [json.Number] so
// that large integers survive re-encoding.
func decodeDocument(raw []byte) (any, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}
	return doc, true
}

func sanitize(v any) any {
	switch value := v.(type) {
	case map[string]any:
		for key, item := range value {
			if strings.HasPrefix(key, "$") || strings.Contains(key, ".") {
				delete(value, key)
				continue
			}
			value[key] = sanitize(item)
		}
		return value
	case []any:
		for i := range value {
			value[i] = sanitize(value[i])
		}
		return value
	case string:
		return strings.ReplaceAll(value, "<", "&lt;")
	default:
		return v
	}
}
