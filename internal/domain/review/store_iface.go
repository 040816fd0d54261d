package review

import "context"

// StoreAPI is the persistence surface the review service depends on.
// Get and the directory lookups return ErrNotFound for missing rows; any
// other error means the store was unreachable.
type StoreAPI interface {
	Get(ctx context.Context, reviewID int64) (*AnnualReview, error)
	FindByStaff(ctx context.Context, staffNo string) ([]*AnnualReview, error)
	UnfinishedByStaff(ctx context.Context, staffNo string) (*AnnualReview, error)
	Save(ctx context.Context, r *AnnualReview) error
	// Create inserts a new review pre-populated from the staff directory:
	// reviewee name, section, job title and the assigned reviewers.
	Create(ctx context.Context, staffNo string) (*AnnualReview, error)

	StaffNoByUsername(ctx context.Context, username string) (string, error)
	UsernameByStaffNo(ctx context.Context, staffNo string) (string, error)
}
