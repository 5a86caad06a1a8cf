package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-tour-booking/internal/query"
	"github.com/MKhiriev/go-tour-booking/internal/service"
	"github.com/MKhiriev/go-tour-booking/internal/utils"
	"github.com/MKhiriev/go-tour-booking/models"
)

const paramID = "id"

// resource binds the generic CRUD handlers to one service.
type resource[T any, PT interface {
	*T
	models.Record
}] struct {
	svc service.ResourceService[T]

	// scope returns filters implied by the route, such as the tour of a
	// nested review list.
	scope func(r *http.Request) ([]models.Filter, error)

	// prepare completes a decoded record before it is created.
	prepare func(r *http.Request, rec *T) error
}

func (res *resource[T, PT]) createOne(w http.ResponseWriter, r *http.Request) error {
	var rec T
	if err := decodeJSON(r, &rec); err != nil {
		return err
	}

	if res.prepare != nil {
		if err := res.prepare(r, &rec); err != nil {
			return err
		}
	}

	created, err := res.svc.Create(r.Context(), rec)
	if err != nil {
		return err
	}

	return writeDoc(w, created, http.StatusCreated)
}

func (res *resource[T, PT]) getOne(w http.ResponseWriter, r *http.Request) error {
	id, err := query.ParseID(chi.URLParam(r, paramID))
	if err != nil {
		return err
	}

	rec, err := res.svc.Get(r.Context(), id)
	if err != nil {
		return err
	}

	return writeDoc(w, rec, http.StatusOK)
}

// getAll lists records matching the query string. Each document is
// projected to the requested fields.
func (res *resource[T, PT]) getAll(w http.ResponseWriter, r *http.Request) error {
	var scope []models.Filter
	if res.scope != nil {
		var err error
		if scope, err = res.scope(r); err != nil {
			return err
		}
	}

	recs, q, err := res.svc.List(r.Context(), r.URL.Query(), scope...)
	if err != nil {
		return err
	}

	docs := make([]map[string]any, 0, len(recs))
	for i := range recs {
		doc, err := models.Project(PT(&recs[i]), q.Fields)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	results := len(docs)
	_, err = utils.WriteJSON(w, models.Response{
		Status:  models.StatusSuccess,
		Results: &results,
		Data:    models.Docs(docs),
	}, http.StatusOK)
	return err
}

// updateOne applies the request body as a partial update.
func (res *resource[T, PT]) updateOne(w http.ResponseWriter, r *http.Request) error {
	id, err := query.ParseID(chi.URLParam(r, paramID))
	if err != nil {
		return err
	}

	patch, err := readBody(r)
	if err != nil {
		return err
	}

	updated, err := res.svc.Update(r.Context(), id, patch)
	if err != nil {
		return err
	}

	return writeDoc(w, updated, http.StatusOK)
}

// deleteOne answers 204 only after the record was found and removed.
func (res *resource[T, PT]) deleteOne(w http.ResponseWriter, r *http.Request) error {
	id, err := query.ParseID(chi.URLParam(r, paramID))
	if err != nil {
		return err
	}

	if err = res.svc.Delete(r.Context(), id); err != nil {
		return err
	}

	_, err = utils.WriteJSON(w, nil, http.StatusNoContent)
	return err
}

func writeDoc(w http.ResponseWriter, doc any, status int) error {
	_, err := utils.WriteJSON(w, models.Response{
		Status: models.StatusSuccess,
		Data:   models.Doc(doc),
	}, status)
	return err
}

func writeSuccess(w http.ResponseWriter, message string) error {
	_, err := utils.WriteJSON(w, models.Response{Status: models.StatusSuccess, Message: message}, http.StatusOK)
	return err
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	err := utils.ReadJSON(r, v)

	var maxBytesErr *http.MaxBytesError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, utils.ErrEmptyBody):
		return err
	case errors.As(err, &maxBytesErr):
		return ErrBodyTooLarge
	default:
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
}

// readBody returns the raw request body.
func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, utils.ErrEmptyBody
	}

	body, err := io.ReadAll(r.Body)

	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return nil, ErrBodyTooLarge
	case err != nil:
		return nil, err
	case len(body) == 0:
		return nil, utils.ErrEmptyBody
	}

	return body, nil
}
