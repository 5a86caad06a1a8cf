package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-tour-booking/internal/query"
	"github.com/MKhiriev/go-tour-booking/models"
)

// aliasTopTours presets the query of the five best rated cheap tours.
func aliasTopTours(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		q.Set(query.ParamLimit, "5")
		q.Set(query.ParamSort, "-ratings_average,price")
		q.Set(query.ParamFields, "name,price,ratings_average,summary,difficulty")
		r.URL.RawQuery = q.Encode()

		next.ServeHTTP(w, r)
	})
}

// tourScope restricts nested review routes to the tour in the path.
func tourScope(r *http.Request) ([]models.Filter, error) {
	tourID, err := query.ParseID(chi.URLParam(r, paramID))
	if err != nil {
		return nil, err
	}
	return []models.Filter{{Field: "tour_id", Op: models.OpEq, Value: tourID}}, nil
}

// prepareNestedReview takes the tour from the path and the author from the
// session unless the body names them.
func prepareNestedReview(r *http.Request, review *models.Review) error {
	if review.TourID == 0 {
		tourID, err := query.ParseID(chi.URLParam(r, paramID))
		if err != nil {
			return err
		}
		review.TourID = tourID
	}
	return prepareReview(r, review)
}

func prepareReview(r *http.Request, review *models.Review) error {
	if review.UserID == 0 {
		user, err := currentUser(r)
		if err != nil {
			return err
		}
		review.UserID = user.ID
	}
	return nil
}
