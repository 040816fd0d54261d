package review

import "time"

// A new review may be created around the six-month anniversary of the
// last completed one, give or take this tolerance either side.
const scheduleTolerance = 14 * 24 * time.Hour

// CanCreateReview is the eligibility gate evaluated against a staff
// member's full review history. A member with no history may always start
// one. Otherwise every prior review must be Complete and the most recent
// completion date must fall inside the tolerance window centred on six
// months before now. The gate only permits or blocks manual creation; it
// never creates reviews itself.
func CanCreateReview(history []*AnnualReview, now time.Time) bool {
	if len(history) == 0 {
		return true
	}

	var newest time.Time
	for _, r := range history {
		completed, ok := r.CompletionDate()
		if !ok {
			return false
		}
		if completed.After(newest) {
			newest = completed
		}
	}

	anchor := now.AddDate(0, -6, 0)
	return !newest.Before(anchor.Add(-scheduleTolerance)) &&
		!newest.After(anchor.Add(scheduleTolerance))
}
