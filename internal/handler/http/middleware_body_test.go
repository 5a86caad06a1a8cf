package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
)

func TestWithBodyLimit_RejectsLargeBody(t *testing.T) {
	h := &Handler{bodyLimit: 16, logger: logger.Nop()}
	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { nextCalled = true })

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 17)))
	rr := httptest.NewRecorder()
	h.withBodyLimit(next).ServeHTTP(rr, req)

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestWithBodyLimit_UnknownLengthIsCappedOnRead(t *testing.T) {
	h := &Handler{bodyLimit: 16, logger: logger.Nop()}
	next := h.handle(func(w http.ResponseWriter, r *http.Request) error {
		_, err := readBody(r)
		return err
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 64)))
	req.ContentLength = -1
	rr := httptest.NewRecorder()
	h.withBodyLimit(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestWithBodyLimit_SmallBodyPasses(t *testing.T) {
	h := &Handler{bodyLimit: 16, logger: logger.Nop()}
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		got = string(raw)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`))
	h.withBodyLimit(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, `{"a":1}`, got)
}

func TestWithSanitizedBody_TableTest(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
		json bool
	}{
		{
			name: "operator keys are dropped",
			body: `{"email":{"$gt":""},"password":"pass1234"}`,
			want: `{"email":{},"password":"pass1234"}`,
			json: true,
		},
		{
			name: "dotted keys are dropped",
			body: `{"role.name":"admin","name":"Jane"}`,
			want: `{"name":"Jane"}`,
			json: true,
		},
		{
			name: "markup is escaped in nested values",
			body: `{"name":"<script>alert(1)</script>","images":["<img>"]}`,
			want: `{"name":"&lt;script>alert(1)&lt;/script>","images":["&lt;img>"]}`,
			json: true,
		},
		{
			name: "plain values are untouched",
			body: `{"price":497,"secret_tour":false,"price_discount":null}`,
			want: `{"price":497,"secret_tour":false,"price_discount":null}`,
			json: true,
		},
		{
			name: "numbers keep their exact digits",
			body: `{"user_id":9007199254740993,"price":1.50}`,
			want: `{"price":1.50,"user_id":9007199254740993}`,
		},
		{
			name: "trailing data passes through",
			body: `{"name":"a"} {"name":"b"}`,
			want: `{"name":"a"} {"name":"b"}`,
		},
		{
			name: "invalid json passes through",
			body: `{"name":`,
			want: `{"name":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop()}
			var got []byte
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var err error
				got, err = io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Equal(t, int64(len(got)), r.ContentLength)
			})

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			h.withSanitizedBody(next).ServeHTTP(httptest.NewRecorder(), req)

			if tt.json {
				assert.JSONEq(t, tt.want, string(got))
			} else {
				assert.Equal(t, tt.want, string(got))
			}
		})
	}
}

func TestWithSanitizedBody_NoBody(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { nextCalled = true })

	h.withSanitizedBody(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, nextCalled)
}
