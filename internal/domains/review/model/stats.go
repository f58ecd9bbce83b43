package model

// RatingStats is a book's rating aggregate derived from its reviews.
type RatingStats struct {
	Count   int
	Total   int
	Average float64
}

// ComputeRatingStats derives count, sum and arithmetic mean of the ratings.
// All three are zero for an empty slice. Recomputing from the full review set
// (instead of maintaining incremental counters) keeps the aggregate free of
// drift: after concurrent mutations the last recompute wins and matches the
// stored reviews.
func ComputeRatingStats(reviews []Review) RatingStats {
	stats := RatingStats{Count: len(reviews)}
	if stats.Count == 0 {
		return stats
	}

	for _, review := range reviews {
		stats.Total += review.Rating
	}
	stats.Average = float64(stats.Total) / float64(stats.Count)
	return stats
}
