package personnel

import (
	"context"
	"errors"
	"fmt"

	"yuconz/internal/domain/auth"
)

// StoreAPI is the persistence surface the personnel service depends on.
type StoreAPI interface {
	Get(ctx context.Context, staffNo string) (PersonalDetails, error)
	Create(ctx context.Context, d PersonalDetails) error
	Update(ctx context.Context, d PersonalDetails) error
	UsernameByStaffNo(ctx context.Context, staffNo string) (string, error)
}

// Service gates personal-details access through the Authoriser: owners
// read and amend their own record with the self-scoped permissions, HR
// staff with the administrative ones.
type Service struct {
	store      StoreAPI
	authoriser *auth.Authoriser
}

func NewService(store StoreAPI, authoriser *auth.Authoriser) *Service {
	return &Service{store: store, authoriser: authoriser}
}

// Get returns the record for the staff number.
func (s *Service) Get(ctx context.Context, session *auth.Session, staffNo string) (PersonalDetails, error) {
	target, err := s.store.UsernameByStaffNo(ctx, staffNo)
	if err != nil {
		return PersonalDetails{}, storeErr(err)
	}

	perm := readPermission(session, target, auth.PermReadPersonalDetails, auth.PermHRReadPersonalDetails)
	if !s.authoriser.Authorize(ctx, session, perm, target) {
		return PersonalDetails{}, ErrNotAuthorised
	}

	d, err := s.store.Get(ctx, staffNo)
	if err != nil {
		return PersonalDetails{}, storeErr(err)
	}
	return d, nil
}

// Create inserts a new record; an HR-only operation.
func (s *Service) Create(ctx context.Context, session *auth.Session, d PersonalDetails) error {
	if !s.authoriser.Authorize(ctx, session, auth.PermCreatePersonalDetails, d.StaffNo) {
		return ErrNotAuthorised
	}
	if err := s.store.Create(ctx, d); err != nil {
		return storeErr(err)
	}
	return nil
}

// Amend replaces the stored record for d.StaffNo.
func (s *Service) Amend(ctx context.Context, session *auth.Session, d PersonalDetails) error {
	target, err := s.store.UsernameByStaffNo(ctx, d.StaffNo)
	if err != nil {
		return storeErr(err)
	}

	perm := readPermission(session, target, auth.PermAmendPersonalDetails, auth.PermHRAmendPersonalDetails)
	if !s.authoriser.Authorize(ctx, session, perm, target) {
		return ErrNotAuthorised
	}

	if err := s.store.Update(ctx, d); err != nil {
		return storeErr(err)
	}
	return nil
}

// readPermission picks the permission a session should attempt for the
// target record: the self-scoped one for the user's own record, the
// administrative one otherwise.
func readPermission(session *auth.Session, target string, self, admin auth.Permission) auth.Permission {
	if session != nil && session.Username() == target {
		return self
	}
	return admin
}

func storeErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
