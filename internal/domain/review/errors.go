package review

import "errors"

var (
	// ErrNotFound indicates the review does not exist.
	ErrNotFound = errors.New("review not found")
	// ErrNotAuthorised indicates the session was denied. Callers get no
	// further detail.
	ErrNotAuthorised = errors.New("not authorised")
	// ErrNotEligible indicates the scheduling gate blocked creation.
	ErrNotEligible = errors.New("not eligible for a new review")
	// ErrReviewComplete indicates a mutation was attempted on a completed
	// review, which is immutable.
	ErrReviewComplete = errors.New("review is complete")
	// ErrReviewOpen indicates an operation that requires a completed
	// review, such as rendering the final document.
	ErrReviewOpen = errors.New("review is still open")
	// ErrStoreUnavailable indicates the review store could not be
	// reached, as opposed to the record not existing.
	ErrStoreUnavailable = errors.New("store unavailable")
)
