package validators

import (
	"context"
	"fmt"
	"net/mail"
	"slices"
	"unicode/utf8"

	"github.com/MKhiriev/go-tour-booking/models"
)

// Field names understood by [ResourceValidator] in addition to plain columns.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldRole            = "role"
	FieldPassword        = "password"
	FieldDuration        = "duration"
	FieldMaxGroupSize    = "max_group_size"
	FieldDifficulty      = "difficulty"
	FieldRatingsAverage  = "ratings_average"
	FieldPrice           = "price"
	FieldPriceDiscount   = "price_discount"
	FieldSummary         = "summary"
	FieldImageCover      = "image_cover"
	FieldReview          = "review"
	FieldRating          = "rating"
	FieldTourID          = "tour_id"
	FieldUserID          = "user_id"
	MinTourNameLength    = 10
	MaxTourNameLength    = 40
	MinPasswordLength    = 8
	minRatingsAverage    = 1.0
	maxRatingsAverage    = 5.0
	minRating, maxRating = 1, 5
)

var (
	difficulties = []string{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyDifficult}
	roles        = []string{models.RoleUser, models.RoleGuide, models.RoleLeadGuide, models.RoleAdmin}
)

// fieldRule checks one field of a record and returns the broken rules.
type fieldRule[T any] struct {
	field string
	check func(T) []string
}

// ResourceValidator validates tours, users, reviews and bookings. When
// fields are given only their rules run, which is how partial updates are
// validated.
type ResourceValidator struct{}

func NewResourceValidator() Validator {
	return &ResourceValidator{}
}

func (v *ResourceValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Tour:
		return validate(&value, tourRules, fields)
	case *models.Tour:
		return validate(value, tourRules, fields)

	case models.User:
		return validate(&value, userRules, fields)
	case *models.User:
		return validate(value, userRules, fields)

	case models.Review:
		return validate(&value, reviewRules, fields)
	case *models.Review:
		return validate(value, reviewRules, fields)

	case models.Booking:
		return validate(&value, bookingRules, fields)
	case *models.Booking:
		return validate(value, bookingRules, fields)

	default:
		return ErrUnsupportedType
	}
}

func validate[T models.Record](rec T, rules []fieldRule[T], fields []string) error {
	selected := rules
	if len(fields) > 0 {
		columns := rec.Columns()
		selected = make([]fieldRule[T], 0, len(fields))
		for _, f := range fields {
			idx := slices.IndexFunc(rules, func(r fieldRule[T]) bool { return r.field == f })
			if idx >= 0 {
				selected = append(selected, rules[idx])
				continue
			}
			if _, ok := columns[f]; !ok {
				return fmt.Errorf("%w: %s", ErrUnknownField, f)
			}
		}
	}

	var errs ValidationErrors
	for _, r := range selected {
		errs = append(errs, r.check(rec)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func when(failed bool, msg string) []string {
	if failed {
		return []string{msg}
	}
	return nil
}

var tourRules = []fieldRule[*models.Tour]{
	{FieldName, func(t *models.Tour) []string {
		n := utf8.RuneCountInString(t.Name)
		switch {
		case n == 0:
			return []string{"A tour must have a name"}
		case n > MaxTourNameLength:
			return []string{"A tour name must have less or equal then 40 characters"}
		case n < MinTourNameLength:
			return []string{"A tour name must have more or equal then 10 characters"}
		}
		return nil
	}},
	{FieldDuration, func(t *models.Tour) []string {
		return when(t.Duration <= 0, "A tour must have a duration")
	}},
	{FieldMaxGroupSize, func(t *models.Tour) []string {
		return when(t.MaxGroupSize <= 0, "A tour must have a group size")
	}},
	{FieldDifficulty, func(t *models.Tour) []string {
		return when(!slices.Contains(difficulties, t.Difficulty), "Difficulty is either: easy, medium, difficult")
	}},
	{FieldRatingsAverage, func(t *models.Tour) []string {
		// zero marks a tour without reviews
		if t.RatingsAverage == 0 {
			return nil
		}
		if t.RatingsAverage < minRatingsAverage {
			return []string{"Rating must be above 1.0"}
		}
		return when(t.RatingsAverage > maxRatingsAverage, "Rating must be below 5.0")
	}},
	{FieldPrice, func(t *models.Tour) []string {
		return when(t.Price <= 0, "A tour must have a price")
	}},
	{FieldPriceDiscount, func(t *models.Tour) []string {
		if t.PriceDiscount == nil {
			return nil
		}
		return when(*t.PriceDiscount >= t.Price,
			fmt.Sprintf("Discount price (%g) should be below regular price", *t.PriceDiscount))
	}},
	{FieldSummary, func(t *models.Tour) []string {
		return when(t.Summary == "", "A tour must have a summary")
	}},
	{FieldImageCover, func(t *models.Tour) []string {
		return when(t.ImageCover == "", "A tour must have a cover image")
	}},
}

var userRules = []fieldRule[*models.User]{
	{FieldName, func(u *models.User) []string {
		return when(u.Name == "", "Please tell us your name!")
	}},
	{FieldEmail, func(u *models.User) []string {
		if u.Email == "" {
			return []string{"Please provide your email"}
		}
		return when(!isEmail(u.Email), "Please provide a valid email")
	}},
	{FieldRole, func(u *models.User) []string {
		return when(u.Role != "" && !slices.Contains(roles, u.Role), "Role is either: user, guide, lead-guide, admin")
	}},
	{FieldPassword, func(u *models.User) []string {
		var msgs []string
		switch {
		case u.Password == "":
			msgs = append(msgs, "Please provide a password")
		case utf8.RuneCountInString(u.Password) < MinPasswordLength:
			msgs = append(msgs, "Password must have more or equal then 8 characters")
		}
		switch {
		case u.PasswordConfirm == "":
			msgs = append(msgs, "Please confirm your password")
		case u.PasswordConfirm != u.Password:
			msgs = append(msgs, "Passwords are not the same!")
		}
		return msgs
	}},
}

var reviewRules = []fieldRule[*models.Review]{
	{FieldReview, func(r *models.Review) []string {
		return when(r.Review == "", "Review can not be empty!")
	}},
	{FieldRating, func(r *models.Review) []string {
		return when(r.Rating < minRating || r.Rating > maxRating, "Rating must be between 1 and 5")
	}},
	{FieldTourID, func(r *models.Review) []string {
		return when(r.TourID <= 0, "Review must belong to a tour.")
	}},
	{FieldUserID, func(r *models.Review) []string {
		return when(r.UserID <= 0, "Review must belong to a user")
	}},
}

var bookingRules = []fieldRule[*models.Booking]{
	{FieldTourID, func(b *models.Booking) []string {
		return when(b.TourID <= 0, "Booking must belong to a Tour!")
	}},
	{FieldUserID, func(b *models.Booking) []string {
		return when(b.UserID <= 0, "Booking must belong to a User!")
	}},
	{FieldPrice, func(b *models.Booking) []string {
		return when(b.Price <= 0, "Booking must have a price.")
	}},
}

// isEmail accepts a bare address such as jane@example.com.
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
