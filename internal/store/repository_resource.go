package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-tour-booking/internal/logger"
	"github.com/MKhiriev/go-tour-booking/internal/query"
	"github.com/MKhiriev/go-tour-booking/models"
)

// resourceRepository is the PostgreSQL-backed implementation of
// [ResourceRepository]. Statements are generated from the schema, and rows
// are scanned through the column map exposed by [models.Record], so one
// implementation serves every resource table.
type resourceRepository[T any, PT interface {
	*T
	models.Record
}] struct {
	db     *DB
	schema query.Schema
	logger *logger.Logger
}

func newResourceRepository[T any, PT interface {
	*T
	models.Record
}](db *DB, schema query.Schema, log *logger.Logger) *resourceRepository[T, PT] {
	log.Debug().Str("table", schema.Table).Msg("creating resource repository")
	return &resourceRepository[T, PT]{
		db:     db,
		schema: schema,
		logger: log,
	}
}

func (r *resourceRepository[T, PT]) Schema() query.Schema {
	return r.schema
}

func (r *resourceRepository[T, PT]) Create(ctx context.Context, rec T) (T, error) {
	log := logger.FromContext(ctx)

	columns := r.schema.Writable()
	values, err := columnValues(PT(&rec), columns)
	if err != nil {
		return rec, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	returning := r.schema.Returnable()
	q, args, err := query.Psql.
		Insert(r.schema.Table).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING " + strings.Join(returning, ", ")).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*resourceRepository.Create").Str("table", r.schema.Table).Msg("failed to build query")
		return rec, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var out T
	dest, err := scanTargets(PT(&out), returning)
	if err != nil {
		return rec, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = r.db.QueryRowContext(ctx, q, args...).Scan(dest...); err != nil {
		log.Err(err).Str("func", "*resourceRepository.Create").Str("table", r.schema.Table).Msg("failed to insert row")
		return rec, fmt.Errorf("%w: %w", ErrExecutingStatement, translateError(err))
	}

	return out, nil
}

func (r *resourceRepository[T, PT]) FindByID(ctx context.Context, id int64) (T, error) {
	builder := r.selectScoped(r.schema.Returnable()).Where(sq.Eq{"id": id})
	return r.findOne(ctx, "*resourceRepository.FindByID", builder, r.schema.Returnable())
}

func (r *resourceRepository[T, PT]) Find(ctx context.Context, q models.Query) ([]T, error) {
	log := logger.FromContext(ctx)

	fields := q.Fields
	if len(fields) == 0 {
		fields = r.schema.Public()
	}
	q.Fields = fields

	sqlQuery, args, err := query.Build(r.schema, q).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*resourceRepository.Find").Str("table", r.schema.Table).Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var results []T
	err = r.db.withRetry(ctx, func() error {
		var scanErr error
		results, scanErr = r.scanAll(ctx, sqlQuery, args, fields)
		return scanErr
	})
	if err != nil {
		log.Err(err).Str("func", "*resourceRepository.Find").Str("table", r.schema.Table).Msg("failed to list rows")
		return nil, err
	}

	return results, nil
}

func (r *resourceRepository[T, PT]) Update(ctx context.Context, id int64, rec T, columns []string) (T, error) {
	log := logger.FromContext(ctx)

	values, err := columnValues(PT(&rec), columns)
	if err != nil {
		return rec, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	builder := query.Psql.Update(r.schema.Table)
	for i, column := range columns {
		builder = builder.Set(column, values[i])
	}
	builder = builder.Set("version", sq.Expr("version + 1")).Where(sq.Eq{"id": id})
	if r.schema.Scope != nil {
		builder = builder.Where(r.schema.Scope)
	}

	returning := r.schema.Returnable()
	q, args, err := builder.Suffix("RETURNING " + strings.Join(returning, ", ")).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*resourceRepository.Update").Str("table", r.schema.Table).Msg("failed to build query")
		return rec, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var out T
	dest, err := scanTargets(PT(&out), returning)
	if err != nil {
		return rec, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = r.db.QueryRowContext(ctx, q, args...).Scan(dest...); err != nil {
		log.Err(err).Str("func", "*resourceRepository.Update").Str("table", r.schema.Table).Int64("id", id).Msg("failed to update row")
		return rec, fmt.Errorf("%w: %w", ErrExecutingStatement, translateError(err))
	}

	return out, nil
}

func (r *resourceRepository[T, PT]) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	builder := query.Psql.Delete(r.schema.Table).Where(sq.Eq{"id": id})
	if r.schema.Scope != nil {
		builder = builder.Where(r.schema.Scope)
	}

	q, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*resourceRepository.Delete").Str("table", r.schema.Table).Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffecting(ctx, "*resourceRepository.Delete", q, args)
}

// selectScoped starts a SELECT of columns restricted to the schema scope.
func (r *resourceRepository[T, PT]) selectScoped(columns []string) sq.SelectBuilder {
	builder := query.Psql.Select(columns...).From(r.schema.Table)
	if r.schema.Scope != nil {
		builder = builder.Where(r.schema.Scope)
	}
	return builder
}

// findOne runs a single-row SELECT and scans the listed columns.
func (r *resourceRepository[T, PT]) findOne(ctx context.Context, funcName string, builder sq.SelectBuilder, columns []string) (T, error) {
	log := logger.FromContext(ctx)

	var out T
	q, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Str("table", r.schema.Table).Msg("failed to build query")
		return out, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	dest, err := scanTargets(PT(&out), columns)
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, q, args...).Scan(dest...)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return out, ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Str("table", r.schema.Table).Msg("failed to find row")
		return out, fmt.Errorf("%w: %w", ErrExecutingQuery, translateError(err))
	}

	return out, nil
}

// execAffecting runs a statement that must touch at least one row.
func (r *resourceRepository[T, PT]) execAffecting(ctx context.Context, funcName, q string, args []any) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Str("table", r.schema.Table).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, translateError(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *resourceRepository[T, PT]) scanAll(ctx context.Context, q string, args []any, columns []string) ([]T, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, translateError(err))
	}
	defer rows.Close()

	results := make([]T, 0, 16)
	for rows.Next() {
		var item T
		dest, err := scanTargets(PT(&item), columns)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if err = rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		results = append(results, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return results, nil
}

// scanTargets returns the field pointers of rec for the listed columns.
func scanTargets(rec models.Record, columns []string) ([]any, error) {
	fields := rec.Columns()
	dest := make([]any, len(columns))
	for i, name := range columns {
		ptr, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("no field for column %q", name)
		}
		dest[i] = ptr
	}
	return dest, nil
}

// columnValues returns the values of rec for the listed columns.
func columnValues(rec models.Record, columns []string) ([]any, error) {
	fields := rec.Columns()
	values := make([]any, len(columns))
	for i, name := range columns {
		ptr, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("no field for column %q", name)
		}
		values[i] = reflect.ValueOf(ptr).Elem().Interface()
	}
	return values, nil
}
