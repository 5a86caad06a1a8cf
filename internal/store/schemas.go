package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-tour-booking/internal/query"
)

const defaultSort = "-created_at"

func idColumn() query.Column {
	return query.Column{Name: "id", Kind: query.KindInt, ReadOnly: true}
}

func createdAtColumn() query.Column {
	return query.Column{Name: "created_at", Kind: query.KindTime, ReadOnly: true}
}

func versionColumn() query.Column {
	return query.Column{Name: "version", Kind: query.KindInt, Internal: true, ReadOnly: true}
}

// TourSchema describes the tours table. Secret tours are invisible to
// every statement issued through it.
func TourSchema() query.Schema {
	return query.Schema{
		Table: "tours",
		Columns: []query.Column{
			idColumn(),
			{Name: "name", Kind: query.KindString},
			{Name: "slug", Kind: query.KindString},
			{Name: "duration", Kind: query.KindInt, MultiValue: true},
			{Name: "max_group_size", Kind: query.KindInt, MultiValue: true},
			{Name: "difficulty", Kind: query.KindString, MultiValue: true},
			{Name: "ratings_average", Kind: query.KindFloat, MultiValue: true},
			{Name: "ratings_quantity", Kind: query.KindInt},
			{Name: "price", Kind: query.KindFloat, MultiValue: true},
			{Name: "price_discount", Kind: query.KindFloat},
			{Name: "summary", Kind: query.KindString},
			{Name: "description", Kind: query.KindString},
			{Name: "image_cover", Kind: query.KindString},
			{Name: "images", Kind: query.KindJSON},
			{Name: "start_dates", Kind: query.KindJSON},
			{Name: "secret_tour", Kind: query.KindBool},
			createdAtColumn(),
			versionColumn(),
		},
		Scope:       sq.NotEq{"secret_tour": true},
		DefaultSort: defaultSort,
	}
}

// UserSchema describes the users table. Deactivated accounts are invisible
// to every statement issued through it.
func UserSchema() query.Schema {
	return query.Schema{
		Table: "users",
		Columns: []query.Column{
			idColumn(),
			{Name: "name", Kind: query.KindString},
			{Name: "email", Kind: query.KindString},
			{Name: "photo", Kind: query.KindString},
			{Name: "role", Kind: query.KindString, MultiValue: true},
			{Name: "password", Kind: query.KindString, Hidden: true},
			{Name: "password_changed_at", Kind: query.KindTime, Internal: true},
			{Name: "password_reset_token", Kind: query.KindString, Hidden: true},
			{Name: "password_reset_expires", Kind: query.KindTime, Hidden: true},
			{Name: "active", Kind: query.KindBool, Internal: true, ReadOnly: true},
			createdAtColumn(),
			versionColumn(),
		},
		Scope:       sq.Eq{"active": true},
		DefaultSort: defaultSort,
	}
}

// ReviewSchema describes the reviews table.
func ReviewSchema() query.Schema {
	return query.Schema{
		Table: "reviews",
		Columns: []query.Column{
			idColumn(),
			{Name: "review", Kind: query.KindString},
			{Name: "rating", Kind: query.KindInt, MultiValue: true},
			{Name: "tour_id", Kind: query.KindInt},
			{Name: "user_id", Kind: query.KindInt},
			createdAtColumn(),
			versionColumn(),
		},
		DefaultSort: defaultSort,
	}
}

// BookingSchema describes the bookings table.
func BookingSchema() query.Schema {
	return query.Schema{
		Table: "bookings",
		Columns: []query.Column{
			idColumn(),
			{Name: "tour_id", Kind: query.KindInt},
			{Name: "user_id", Kind: query.KindInt},
			{Name: "price", Kind: query.KindFloat},
			{Name: "paid", Kind: query.KindBool},
			createdAtColumn(),
			versionColumn(),
		},
		DefaultSort: defaultSort,
	}
}
