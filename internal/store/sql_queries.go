package store

const (
	// recalculateTourRatings writes the review count and the average rating,
	// rounded to one decimal, back to the tour.
	recalculateTourRatings = `UPDATE tours
		SET ratings_quantity = s.quantity,
			ratings_average = s.average
		FROM (
			SELECT COUNT(*) AS quantity,
				COALESCE(ROUND(AVG(rating)::numeric, 1), 0) AS average
			FROM reviews
			WHERE tour_id = $1
		) AS s
		WHERE tours.id = $1;`
)
