package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yuconz/internal/domain/auth"
)

// Service runs the annual-review operations: creation behind the
// scheduling gate, reads split by self/reviewer/any scope, reviewer
// amendments and the sign-off transitions. Every operation resolves its
// grant through the Authoriser before touching the store.
type Service struct {
	store      StoreAPI
	authoriser *auth.Authoriser
	now        func() time.Time
}

func NewService(store StoreAPI, authoriser *auth.Authoriser) *Service {
	return &Service{store: store, authoriser: authoriser, now: time.Now}
}

// Amendment is a reviewer's partial update to an Open review. Nil fields
// are left untouched.
type Amendment struct {
	Section         *string
	JobTitle        *string
	Recommendation  *Recommendation
	PastPerformance *PastPerformance
	FutureGoals     *FutureGoals
}

// CreateReview starts a new annual review for the target staff member,
// subject to authorisation and the six-month scheduling gate.
func (s *Service) CreateReview(ctx context.Context, session *auth.Session, targetUsername string) (*AnnualReview, error) {
	if !s.authoriser.Authorize(ctx, session, auth.PermCreateAnnualReview, targetUsername) {
		return nil, ErrNotAuthorised
	}

	staffNo, err := s.store.StaffNoByUsername(ctx, targetUsername)
	if err != nil {
		return nil, storeErr(err)
	}

	history, err := s.store.FindByStaff(ctx, staffNo)
	if err != nil {
		return nil, storeErr(err)
	}
	if !CanCreateReview(history, s.now()) {
		return nil, ErrNotEligible
	}

	created, err := s.store.Create(ctx, staffNo)
	if err != nil {
		return nil, storeErr(err)
	}
	return created, nil
}

// CurrentReview returns the target's unfinished review, if any.
func (s *Service) CurrentReview(ctx context.Context, session *auth.Session, targetUsername string) (*AnnualReview, error) {
	perm := s.readPermission(session, targetUsername,
		auth.PermReadCurrentAnnualReview, auth.PermReviewerReadCurrentAnnualReview)
	if !s.authoriser.Authorize(ctx, session, perm, targetUsername) {
		return nil, ErrNotAuthorised
	}

	staffNo, err := s.store.StaffNoByUsername(ctx, targetUsername)
	if err != nil {
		return nil, storeErr(err)
	}
	current, err := s.store.UnfinishedByStaff(ctx, staffNo)
	if err != nil {
		return nil, storeErr(err)
	}
	return current, nil
}

// PastReviews returns the target's completed reviews.
func (s *Service) PastReviews(ctx context.Context, session *auth.Session, targetUsername string) ([]*AnnualReview, error) {
	perm := s.readPermission(session, targetUsername,
		auth.PermReadPastAnnualReview, auth.PermReviewerReadPastAnnualReview)
	if !s.authoriser.Authorize(ctx, session, perm, targetUsername) {
		return nil, ErrNotAuthorised
	}

	staffNo, err := s.store.StaffNoByUsername(ctx, targetUsername)
	if err != nil {
		return nil, storeErr(err)
	}
	all, err := s.store.FindByStaff(ctx, staffNo)
	if err != nil {
		return nil, storeErr(err)
	}

	var past []*AnnualReview
	for _, r := range all {
		if r.IsComplete() {
			past = append(past, r)
		}
	}
	return past, nil
}

// Review returns a single review by id, applying the current/past read
// policy that matches the review's state.
func (s *Service) Review(ctx context.Context, session *auth.Session, reviewID int64) (*AnnualReview, error) {
	r, target, err := s.fetch(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	var perm auth.Permission
	if r.IsComplete() {
		perm = s.readPermission(session, target,
			auth.PermReadPastAnnualReview, auth.PermReviewerReadPastAnnualReview)
	} else {
		perm = s.readPermission(session, target,
			auth.PermReadCurrentAnnualReview, auth.PermReviewerReadCurrentAnnualReview)
	}
	if !s.authoriser.Authorize(ctx, session, perm, target) {
		return nil, ErrNotAuthorised
	}
	return r, nil
}

// Amend applies a reviewer's changes to an Open review.
func (s *Service) Amend(ctx context.Context, session *auth.Session, reviewID int64, amendment Amendment) (*AnnualReview, error) {
	r, target, err := s.fetch(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !s.authoriser.Authorize(ctx, session, auth.PermReviewerAmendAnnualReview, target) {
		return nil, ErrNotAuthorised
	}
	if r.IsComplete() {
		return nil, ErrReviewComplete
	}

	if amendment.Section != nil {
		r.Section = *amendment.Section
	}
	if amendment.JobTitle != nil {
		r.JobTitle = *amendment.JobTitle
	}
	if amendment.Recommendation != nil {
		r.Recommendation = *amendment.Recommendation
	}
	if amendment.PastPerformance != nil {
		r.PastPerformance = amendment.PastPerformance
	}
	if amendment.FutureGoals != nil {
		r.FutureGoals = amendment.FutureGoals
	}

	if err := s.store.Save(ctx, r); err != nil {
		return nil, storeErr(err)
	}
	return r, nil
}

// SignOff stamps the caller's signature slot on the review. The boolean
// reports whether a slot was stamped; an already-signed slot or a signer
// with no role on the review is a quiet no-op.
func (s *Service) SignOff(ctx context.Context, session *auth.Session, reviewID int64) (bool, error) {
	r, target, err := s.fetch(ctx, reviewID)
	if err != nil {
		return false, err
	}
	if !s.authoriser.Authorize(ctx, session, auth.PermSignAnnualReview, target) {
		return false, ErrNotAuthorised
	}

	signerStaffNo, err := s.store.StaffNoByUsername(ctx, session.Username())
	if err != nil {
		return false, storeErr(err)
	}

	stamped := r.SignOff(signerStaffNo)
	if stamped {
		if err := s.store.Save(ctx, r); err != nil {
			return false, storeErr(err)
		}
	}
	return stamped, nil
}

// ResetSignatures clears partial sign-offs on an Open review. Completed
// reviews are immutable; the boolean is false and nothing changes.
func (s *Service) ResetSignatures(ctx context.Context, session *auth.Session, reviewID int64) (bool, error) {
	r, target, err := s.fetch(ctx, reviewID)
	if err != nil {
		return false, err
	}
	if !s.authoriser.Authorize(ctx, session, auth.PermReviewerAmendAnnualReview, target) {
		return false, ErrNotAuthorised
	}

	cleared := r.ResetSignatures()
	if cleared {
		if err := s.store.Save(ctx, r); err != nil {
			return false, storeErr(err)
		}
	}
	return cleared, nil
}

func (s *Service) fetch(ctx context.Context, reviewID int64) (*AnnualReview, string, error) {
	r, err := s.store.Get(ctx, reviewID)
	if err != nil {
		return nil, "", storeErr(err)
	}
	target, err := s.store.UsernameByStaffNo(ctx, r.StaffNo)
	if err != nil {
		return nil, "", storeErr(err)
	}
	return r, target, nil
}

// readPermission picks which read permission the session should attempt
// for the target: the self-scoped one when reading its own records, the
// reviewer-scoped one when the role carries it, and the global one
// otherwise. The Authoriser still makes the actual decision.
func (s *Service) readPermission(session *auth.Session, target string, self, reviewer auth.Permission) auth.Permission {
	if session != nil && session.Username() == target {
		return self
	}
	if session != nil && auth.RoleHasPermission(session.Role(), reviewer) {
		return reviewer
	}
	return auth.PermReadAnyAnnualReview
}

func storeErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
