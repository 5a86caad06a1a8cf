package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/query"
	"github.com/MKhiriev/go-tour-booking/internal/store"
	"github.com/MKhiriev/go-tour-booking/internal/validators"
	"github.com/MKhiriev/go-tour-booking/models"
)

// resourceHooks customise [resourceService] for one resource.
type resourceHooks[T any] struct {
	// beforeSave prepares a record before validation and returns the
	// columns to persist. columns is nil on create.
	beforeSave func(ctx context.Context, rec *T, columns []string) []string

	// afterWrite runs after a committed create, update or delete. Updates
	// pass the record before and after the change. Its error is logged and
	// does not fail the write.
	afterWrite func(ctx context.Context, recs ...T) error

	// populateOne fills relations of a record returned by Get.
	populateOne func(ctx context.Context, rec *T) error

	// populateMany fills relations of records returned by List.
	populateMany func(ctx context.Context, recs []T) error
}

// resourceService implements [ResourceService] on top of a repository.
type resourceService[T any] struct {
	repo      store.ResourceRepository[T]
	validator validators.Validator
	hooks     resourceHooks[T]
	logger    *logger.Logger
}

func newResourceService[T any](repo store.ResourceRepository[T], validator validators.Validator, hooks resourceHooks[T], logger *logger.Logger) *resourceService[T] {
	return &resourceService[T]{
		repo:      repo,
		validator: validator,
		hooks:     hooks,
		logger:    logger,
	}
}

func (s *resourceService[T]) Schema() query.Schema {
	return s.repo.Schema()
}

func (s *resourceService[T]) Create(ctx context.Context, rec T) (T, error) {
	log := logger.FromContext(ctx)

	if s.hooks.beforeSave != nil {
		s.hooks.beforeSave(ctx, &rec, nil)
	}

	if err := s.validator.Validate(ctx, rec); err != nil {
		return rec, err
	}

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		log.Err(err).Str("func", "*resourceService.Create").Str("table", s.repo.Schema().Table).Msg("failed to create record")
		return rec, err
	}

	s.afterWrite(ctx, created)

	return created, nil
}

func (s *resourceService[T]) Get(ctx context.Context, id int64) (T, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return rec, err
	}

	if s.hooks.populateOne != nil {
		if err = s.hooks.populateOne(ctx, &rec); err != nil {
			return rec, err
		}
	}

	return rec, nil
}

func (s *resourceService[T]) List(ctx context.Context, params url.Values, scope ...models.Filter) ([]T, models.Query, error) {
	q, err := query.New(s.repo.Schema(), params).
		Filter().
		Where(scope...).
		Sort().
		LimitFields().
		Paginate().
		Query()
	if err != nil {
		return nil, models.Query{}, err
	}

	recs, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, q, err
	}

	if s.hooks.populateMany != nil && len(recs) > 0 {
		if err = s.hooks.populateMany(ctx, recs); err != nil {
			return nil, q, err
		}
	}

	return recs, q, nil
}

// Update merges patch onto the stored record. Only keys naming public,
// writable columns are persisted; other keys are ignored.
func (s *resourceService[T]) Update(ctx context.Context, id int64, patch []byte) (T, error) {
	log := logger.FromContext(ctx)

	stored, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return stored, err
	}
	before := stored

	columns, filtered, err := patchColumns(patch, s.repo.Schema().Patchable)
	if err != nil {
		return stored, err
	}
	if len(columns) == 0 {
		return stored, nil
	}

	if err = json.Unmarshal(filtered, &stored); err != nil {
		return before, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}

	if s.hooks.beforeSave != nil {
		columns = s.hooks.beforeSave(ctx, &stored, columns)
	}

	if err = s.validator.Validate(ctx, stored, columns...); err != nil {
		return before, err
	}

	updated, err := s.repo.Update(ctx, id, stored, columns)
	if err != nil {
		log.Err(err).Str("func", "*resourceService.Update").Int64("id", id).Msg("failed to update record")
		return before, err
	}

	s.afterWrite(ctx, before, updated)

	return updated, nil
}

// Delete looks the record up first so that a missing id fails before
// anything is removed.
func (s *resourceService[T]) Delete(ctx context.Context, id int64) error {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.afterWrite(ctx, rec)
	return nil
}

// afterWrite runs the post-write hook. The row is already committed, so a
// failure leaves stale derived data and is only logged.
func (s *resourceService[T]) afterWrite(ctx context.Context, recs ...T) {
	if s.hooks.afterWrite == nil {
		return
	}
	if err := s.hooks.afterWrite(ctx, recs...); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*resourceService.afterWrite").Str("table", s.repo.Schema().Table).Msg("post-write hook failed")
	}
}

// patchColumns returns the sorted keys of a JSON object accepted by keep
// and the object reduced to those keys.
func patchColumns(patch []byte, keep func(string) bool) ([]string, []byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}

	columns := make([]string, 0, len(fields))
	for key := range fields {
		if keep(key) {
			columns = append(columns, key)
		} else {
			delete(fields, key)
		}
	}
	slices.Sort(columns)

	filtered, err := json.Marshal(fields)
	if err != nil {
		return nil, nil, err
	}

	return columns, filtered, nil
}
