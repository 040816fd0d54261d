package auth

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"yuconz/internal/domain/audit"
)

type fakeRelationStore struct {
	reviewees map[string][]string
	err       error
}

func (f *fakeRelationStore) ListReviewees(_ context.Context, username string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reviewees[username], nil
}

func (f *fakeRelationStore) IsReviewing(_ context.Context, username, target string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return slices.Contains(f.reviewees[username], target), nil
}

func validSession(username string, role Role) *Session {
	return newSession("tok-"+username, time.Now(), username, role, ExitLoginSuccess)
}

func newTestAuthoriser(sink audit.Sink) (*Authoriser, *fakeRelationStore) {
	relations := &fakeRelationStore{reviewees: map[string][]string{
		"dpatel": {"kosei", "lnowak"},
	}}
	return NewAuthoriser(relations, sink), relations
}

func TestAuthorizeSelfScoped(t *testing.T) {
	a, _ := newTestAuthoriser(newMemorySink())
	session := validSession("kosei", RoleEmployee)

	if !a.Authorize(context.Background(), session, PermReadPersonalDetails, "kosei") {
		t.Fatal("own record should be readable")
	}
	if a.Authorize(context.Background(), session, PermReadPersonalDetails, "lnowak") {
		t.Fatal("someone else's record must be denied")
	}
}

func TestAuthorizeSelfScopedIgnoresRole(t *testing.T) {
	a, _ := newTestAuthoriser(newMemorySink())

	// Ownership alone decides the self-scoped class; the role the user
	// logged in under is not consulted again.
	for _, role := range Roles() {
		session := validSession("kosei", role)
		if !a.Authorize(context.Background(), session, PermReadCurrentAnnualReview, "kosei") {
			t.Errorf("own current review denied for role %s", role)
		}
		if !a.Authorize(context.Background(), session, PermReadPersonalDetails, "kosei") {
			t.Errorf("own personal details denied for role %s", role)
		}
	}
}

func TestAuthorizeAdministrative(t *testing.T) {
	a, _ := newTestAuthoriser(newMemorySink())
	hr := validSession("asahin", RoleHREmployee)

	// Administrative grants do not depend on the target.
	for _, target := range []string{"asahin", "kosei", "stranger"} {
		if !a.Authorize(context.Background(), hr, PermHRReadPersonalDetails, target) {
			t.Fatalf("HR read denied for target %q", target)
		}
	}
	if a.Authorize(context.Background(), validSession("kosei", RoleEmployee), PermHRReadPersonalDetails, "kosei") {
		t.Fatal("employee role must not hold HR permissions")
	}

	director := validSession("jwilson", RoleDirector)
	if !a.Authorize(context.Background(), director, PermReadAnyAnnualReview, "kosei") {
		t.Fatal("director should read any review")
	}
}

func TestAuthorizeReviewerRelational(t *testing.T) {
	a, _ := newTestAuthoriser(newMemorySink())
	reviewer := validSession("dpatel", RoleReviewer)

	if !a.Authorize(context.Background(), reviewer, PermReviewerAmendAnnualReview, "kosei") {
		t.Fatal("reviewer should amend a reviewee's document")
	}
	if a.Authorize(context.Background(), reviewer, PermReviewerAmendAnnualReview, "jwilson") {
		t.Fatal("non-reviewee target must be denied")
	}
	// Role membership alone is not enough without the relationship.
	if a.Authorize(context.Background(), validSession("asahin", RoleReviewer), PermReviewerAmendAnnualReview, "kosei") {
		t.Fatal("reviewer with no reviewees must be denied")
	}
	// The relationship alone is not enough without the role.
	if a.Authorize(context.Background(), validSession("dpatel", RoleManager), PermReviewerAmendAnnualReview, "kosei") {
		t.Fatal("manager role must not amend reviews")
	}
}

func TestAuthorizeSign(t *testing.T) {
	a, _ := newTestAuthoriser(newMemorySink())

	if !a.Authorize(context.Background(), validSession("kosei", RoleEmployee), PermSignAnnualReview, "kosei") {
		t.Fatal("reviewee should sign their own review")
	}
	if !a.Authorize(context.Background(), validSession("dpatel", RoleReviewer), PermSignAnnualReview, "kosei") {
		t.Fatal("reviewer should sign a reviewee's review")
	}
	if a.Authorize(context.Background(), validSession("asahin", RoleReviewer), PermSignAnnualReview, "kosei") {
		t.Fatal("unrelated reviewer must not sign")
	}
	// The sign grant is ownership-or-relationship only; the login role is
	// not consulted.
	if !a.Authorize(context.Background(), validSession("kosei", RoleUser), PermSignAnnualReview, "kosei") {
		t.Fatal("reviewee should sign regardless of login role")
	}
	if !a.Authorize(context.Background(), validSession("dpatel", RoleManager), PermSignAnnualReview, "kosei") {
		t.Fatal("current reviewer should sign regardless of login role")
	}
}

func TestAuthorizeInvalidSession(t *testing.T) {
	a, _ := newTestAuthoriser(newMemorySink())

	if a.Authorize(context.Background(), nil, PermReadPersonalDetails, "kosei") {
		t.Fatal("nil session must be denied")
	}
	invalid := newSession("tok", time.Now(), "kosei", RoleEmployee, ExitInvalidLogin)
	if a.Authorize(context.Background(), invalid, PermReadPersonalDetails, "kosei") {
		t.Fatal("invalid session must be denied")
	}

	loggedOut := validSession("kosei", RoleEmployee)
	loggedOut.destroy()
	if a.Authorize(context.Background(), loggedOut, PermReadPersonalDetails, "kosei") {
		t.Fatal("destroyed session must be denied")
	}
}

func TestAuthorizeUnknownPermission(t *testing.T) {
	a, _ := newTestAuthoriser(newMemorySink())
	if a.Authorize(context.Background(), validSession("kosei", RoleEmployee), Permission("made.up"), "kosei") {
		t.Fatal("unknown permission must be denied")
	}
}

func TestAuthorizeRelationStoreErrorDenies(t *testing.T) {
	a, relations := newTestAuthoriser(newMemorySink())
	relations.err = errors.New("connection refused")

	if a.Authorize(context.Background(), validSession("dpatel", RoleReviewer), PermReviewerAmendAnnualReview, "kosei") {
		t.Fatal("relation store outage must deny")
	}
	if a.Authorize(context.Background(), validSession("dpatel", RoleReviewer), PermSignAnnualReview, "kosei") {
		t.Fatal("relation store outage must deny sign")
	}
}

func TestAuthorizeAuditsEveryDecision(t *testing.T) {
	sink := newMemorySink()
	a, _ := newTestAuthoriser(sink)
	session := validSession("kosei", RoleEmployee)

	a.Authorize(context.Background(), session, PermReadPersonalDetails, "kosei")
	a.Authorize(context.Background(), session, PermReadPersonalDetails, "lnowak")
	a.Authorize(context.Background(), nil, PermReadPersonalDetails, "kosei")

	recs := sink.logged(audit.LogAuthorisation)
	if len(recs) != 3 {
		t.Fatalf("logged %d decisions, want 3", len(recs))
	}
	if recs[0].Outcome != audit.OutcomeAuthorised {
		t.Fatalf("first decision outcome = %q", recs[0].Outcome)
	}
	if recs[1].Outcome != audit.OutcomeNotAuthorised {
		t.Fatalf("second decision outcome = %q", recs[1].Outcome)
	}
	if recs[2].Outcome != audit.OutcomeNotAuthorised || recs[2].Username != "" {
		t.Fatalf("nil-session decision recorded wrong: %+v", recs[2])
	}
	if recs[0].Permission != string(PermReadPersonalDetails) || recs[0].Target != "kosei" {
		t.Fatalf("decision detail missing: %+v", recs[0])
	}
}

func TestAuthorizeAuditFailureStillDecides(t *testing.T) {
	sink := newMemorySink()
	sink.err = errors.New("audit store down")
	a, _ := newTestAuthoriser(sink)

	if !a.Authorize(context.Background(), validSession("kosei", RoleEmployee), PermReadPersonalDetails, "kosei") {
		t.Fatal("audit failure must not flip the decision")
	}
}
