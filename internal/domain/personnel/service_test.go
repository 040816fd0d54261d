package personnel

import (
	"context"
	"errors"
	"sync"
	"testing"

	"yuconz/internal/domain/audit"
	"yuconz/internal/domain/auth"
)

type nopSink struct{}

func (nopSink) Append(context.Context, string, audit.Record) error { return nil }

type nopRelations struct{}

func (nopRelations) ListReviewees(context.Context, string) ([]string, error) { return nil, nil }
func (nopRelations) IsReviewing(context.Context, string, string) (bool, error) {
	return false, nil
}

type memoryStore struct {
	mu      sync.Mutex
	records map[string]PersonalDetails
	// staffNo -> username
	directory map[string]string
	err       error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		records: make(map[string]PersonalDetails),
		directory: map[string]string{
			"emp001": "kosei",
			"hrm001": "asahin",
		},
	}
}

func (m *memoryStore) Get(_ context.Context, staffNo string) (PersonalDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return PersonalDetails{}, m.err
	}
	d, ok := m.records[staffNo]
	if !ok {
		return PersonalDetails{}, ErrNotFound
	}
	return d, nil
}

func (m *memoryStore) Create(_ context.Context, d PersonalDetails) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.records[d.StaffNo] = d
	return nil
}

func (m *memoryStore) Update(_ context.Context, d PersonalDetails) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.records[d.StaffNo]; !ok {
		return ErrNotFound
	}
	m.records[d.StaffNo] = d
	return nil
}

func (m *memoryStore) UsernameByStaffNo(_ context.Context, staffNo string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	username, ok := m.directory[staffNo]
	if !ok {
		return "", ErrNotFound
	}
	return username, nil
}

// session mints a valid session through the real authenticator so the
// service sees exactly what production hands it.
func session(t *testing.T, username string, role auth.Role) *auth.Session {
	t.Helper()
	hash, err := auth.HashPassword("pw")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	creds := credsFor(username, hash, role)
	a := auth.NewAuthenticator(creds, auth.NewRegistry(), nopSink{})
	s, err := a.Authenticate(context.Background(), username, "pw", role)
	if err != nil || !s.IsValid() {
		t.Fatalf("login failed: %v %v", s.ExitCode(), err)
	}
	return s
}

type staticCreds struct {
	username string
	creds    auth.Credentials
}

func credsFor(username, hash string, role auth.Role) *staticCreds {
	return &staticCreds{username: username, creds: auth.Credentials{
		PasswordHash: hash,
		Roles:        []auth.Role{role},
	}}
}

func (s *staticCreds) Lookup(_ context.Context, username string) (auth.Credentials, error) {
	if username != s.username {
		return auth.Credentials{}, auth.ErrNotFound
	}
	return s.creds, nil
}

func sample() PersonalDetails {
	return PersonalDetails{
		StaffNo:          "emp001",
		Surname:          "Tanaka",
		FirstName:        "Kosei",
		DateOfBirth:      "1994-05-12",
		Address:          "1 Mill Lane",
		Town:             "Canterbury",
		County:           "Kent",
		Postcode:         "CT1 1AA",
		Telephone:        "01227 000000",
		Mobile:           "07700 900000",
		EmergencyContact: "Yui Tanaka",
		EmergencyNumber:  "07700 900001",
	}
}

func newTestService() (*Service, *memoryStore) {
	store := newMemoryStore()
	authoriser := auth.NewAuthoriser(nopRelations{}, nopSink{})
	return NewService(store, authoriser), store
}

func TestGetOwnDetails(t *testing.T) {
	svc, store := newTestService()
	store.records["emp001"] = sample()

	got, err := svc.Get(context.Background(), session(t, "kosei", auth.RoleEmployee), "emp001")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Surname != "Tanaka" {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestGetOtherDetailsDenied(t *testing.T) {
	svc, store := newTestService()
	store.records["emp001"] = sample()

	if _, err := svc.Get(context.Background(), session(t, "asahin", auth.RoleEmployee), "emp001"); !errors.Is(err, ErrNotAuthorised) {
		t.Fatalf("expected ErrNotAuthorised, got %v", err)
	}
}

func TestGetAnyDetailsAsHR(t *testing.T) {
	svc, store := newTestService()
	store.records["emp001"] = sample()

	hr := session(t, "asahin", auth.RoleHREmployee)
	if _, err := svc.Get(context.Background(), hr, "emp001"); err != nil {
		t.Fatalf("HR get failed: %v", err)
	}
}

func TestGetDeniedWithoutSession(t *testing.T) {
	svc, store := newTestService()
	store.records["emp001"] = sample()

	if _, err := svc.Get(context.Background(), nil, "emp001"); !errors.Is(err, ErrNotAuthorised) {
		t.Fatalf("expected ErrNotAuthorised, got %v", err)
	}
}

func TestCreateRequiresHR(t *testing.T) {
	svc, store := newTestService()

	if err := svc.Create(context.Background(), session(t, "kosei", auth.RoleEmployee), sample()); !errors.Is(err, ErrNotAuthorised) {
		t.Fatalf("expected ErrNotAuthorised, got %v", err)
	}
	if err := svc.Create(context.Background(), session(t, "asahin", auth.RoleHREmployee), sample()); err != nil {
		t.Fatalf("HR create failed: %v", err)
	}
	if _, ok := store.records["emp001"]; !ok {
		t.Fatal("record not stored")
	}
}

func TestAmendOwnDetails(t *testing.T) {
	svc, store := newTestService()
	store.records["emp001"] = sample()

	amended := sample()
	amended.Mobile = "07700 900999"
	if err := svc.Amend(context.Background(), session(t, "kosei", auth.RoleEmployee), amended); err != nil {
		t.Fatalf("amend failed: %v", err)
	}
	if store.records["emp001"].Mobile != "07700 900999" {
		t.Fatal("amendment not stored")
	}
}

func TestAmendOtherDetailsRequiresHR(t *testing.T) {
	svc, store := newTestService()
	store.records["emp001"] = sample()

	amended := sample()
	amended.Town = "Whitstable"
	if err := svc.Amend(context.Background(), session(t, "asahin", auth.RoleEmployee), amended); !errors.Is(err, ErrNotAuthorised) {
		t.Fatalf("expected ErrNotAuthorised, got %v", err)
	}
	if err := svc.Amend(context.Background(), session(t, "asahin", auth.RoleHREmployee), amended); err != nil {
		t.Fatalf("HR amend failed: %v", err)
	}
}

func TestAmendMissingRecord(t *testing.T) {
	svc, _ := newTestService()

	if err := svc.Amend(context.Background(), session(t, "kosei", auth.RoleEmployee), sample()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreOutageSurfaces(t *testing.T) {
	svc, store := newTestService()
	store.err = errors.New("connection refused")

	if _, err := svc.Get(context.Background(), session(t, "kosei", auth.RoleEmployee), "emp001"); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
