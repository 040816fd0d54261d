package auth

import "testing"

func TestRoleCatalog(t *testing.T) {
	if len(Roles()) != 6 {
		t.Fatalf("role count = %d, want 6", len(Roles()))
	}
	for _, role := range Roles() {
		if !role.Valid() {
			t.Fatalf("role %q reported invalid", role)
		}
		if role.Title() == "" {
			t.Fatalf("role %q has no title", role)
		}
		if _, ok := RolePermissions[role]; !ok {
			t.Fatalf("role %q missing from permission catalog", role)
		}
	}
	if Role("janitor").Valid() {
		t.Fatal("unknown role reported valid")
	}
}

func TestParseRole(t *testing.T) {
	if role, ok := ParseRole("hr_employee"); !ok || role != RoleHREmployee {
		t.Fatalf("ParseRole(hr_employee) = %q %v", role, ok)
	}
	if _, ok := ParseRole("HR Employee"); ok {
		t.Fatal("display titles must not parse")
	}
	if _, ok := ParseRole(""); ok {
		t.Fatal("empty role must not parse")
	}
}

func TestRoleHasPermission(t *testing.T) {
	cases := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleUser, PermReadPersonalDetails, true},
		{RoleUser, PermCreateAnnualReview, false},
		{RoleEmployee, PermSignAnnualReview, true},
		{RoleEmployee, PermHRReadPersonalDetails, false},
		{RoleHREmployee, PermCreatePersonalDetails, true},
		{RoleHREmployee, PermReadAnyAnnualReview, true},
		{RoleHREmployee, PermSignAnnualReview, false},
		{RoleManager, PermAmendPersonalDetails, true},
		{RoleManager, PermReviewerAmendAnnualReview, false},
		{RoleDirector, PermReadAnyAnnualReview, true},
		{RoleReviewer, PermReviewerAmendAnnualReview, true},
		{RoleReviewer, PermSignAnnualReview, true},
		{RoleReviewer, PermReadCurrentAnnualReview, false},
	}
	for _, tc := range cases {
		if got := RoleHasPermission(tc.role, tc.perm); got != tc.want {
			t.Errorf("RoleHasPermission(%s, %s) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestSignPermissionHolders(t *testing.T) {
	// The catalog offers the sign action to employees and reviewers only.
	for role := range RolePermissions {
		holds := RoleHasPermission(role, PermSignAnnualReview)
		want := role == RoleEmployee || role == RoleReviewer
		if holds != want {
			t.Errorf("role %s sign permission = %v, want %v", role, holds, want)
		}
	}
}

func TestPermissionDescriptions(t *testing.T) {
	for _, perm := range DefaultPermissions {
		if perm.Description() == "" {
			t.Errorf("permission %q has no description", perm)
		}
	}
}

func TestExitCodeStrings(t *testing.T) {
	cases := []struct {
		code ExitCode
		name string
	}{
		{ExitLoginSuccess, "LOGIN_SUCCESS"},
		{ExitInvalidLogin, "INVALID_LOGIN"},
		{ExitInvalidRole, "INVALID_ROLE"},
		{ExitLoggedOut, "LOGGED_OUT"},
	}
	for _, tc := range cases {
		if tc.code.Name() != tc.name {
			t.Errorf("ExitCode %d name = %q, want %q", tc.code, tc.code.Name(), tc.name)
		}
		if tc.code.String() == "" {
			t.Errorf("ExitCode %d has no description", tc.code)
		}
	}
}
