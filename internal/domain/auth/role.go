package auth

// Role is the authentication context a user selects at login. Each role
// carries a fixed permission set; a user may hold several roles but a
// session is bound to exactly one.
type Role string

const (
	RoleUser       Role = "user"
	RoleEmployee   Role = "employee"
	RoleHREmployee Role = "hr_employee"
	RoleManager    Role = "manager"
	RoleDirector   Role = "director"
	RoleReviewer   Role = "reviewer"
)

var roleTitles = map[Role]string{
	RoleUser:       "User",
	RoleEmployee:   "Employee",
	RoleHREmployee: "HR Employee",
	RoleManager:    "Manager",
	RoleDirector:   "Director",
	RoleReviewer:   "Reviewer",
}

// Roles lists every defined role in login-menu order.
func Roles() []Role {
	return []Role{RoleUser, RoleEmployee, RoleHREmployee, RoleManager, RoleDirector, RoleReviewer}
}

// Title returns the display name for the role.
func (r Role) Title() string {
	return roleTitles[r]
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	_, ok := roleTitles[r]
	return ok
}

// ParseRole maps a wire value onto a defined role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// Permission names an action a role may attempt. Holding a permission does
// not guarantee the action succeeds: the Authoriser still applies the
// ownership and reviewer-relationship checks for the target subject.
type Permission string

const (
	PermCreatePersonalDetails  Permission = "personnel.create"
	PermReadPersonalDetails    Permission = "personnel.read.self"
	PermAmendPersonalDetails   Permission = "personnel.amend.self"
	PermHRReadPersonalDetails  Permission = "personnel.read.any"
	PermHRAmendPersonalDetails Permission = "personnel.amend.any"

	PermCreateAnnualReview              Permission = "review.create"
	PermReadCurrentAnnualReview         Permission = "review.read.current.self"
	PermReadPastAnnualReview            Permission = "review.read.past.self"
	PermReviewerReadCurrentAnnualReview Permission = "review.read.current.reviewee"
	PermReviewerReadPastAnnualReview    Permission = "review.read.past.reviewee"
	PermReviewerAmendAnnualReview       Permission = "review.amend.reviewee"
	PermSignAnnualReview                Permission = "review.sign"
	PermReadAnyAnnualReview             Permission = "review.read.any"
)

var permissionDescriptions = map[Permission]string{
	PermCreatePersonalDetails:           "Create a new personal details document",
	PermReadPersonalDetails:             "Read your own personal details document",
	PermAmendPersonalDetails:            "Amend your own personal details document",
	PermHRReadPersonalDetails:           "Read a personal details document",
	PermHRAmendPersonalDetails:          "Amend a personal details document",
	PermCreateAnnualReview:              "Create a new annual review document",
	PermReadCurrentAnnualReview:         "Read your currently active annual review document",
	PermReadPastAnnualReview:            "Read your past completed annual review documents",
	PermReviewerReadCurrentAnnualReview: "Read a currently active annual review document",
	PermReviewerReadPastAnnualReview:    "Read a past completed annual review document",
	PermReviewerAmendAnnualReview:       "Amend a currently active annual review document",
	PermSignAnnualReview:                "Sign off on a currently active annual review",
	PermReadAnyAnnualReview:             "Read an annual review document",
}

// DefaultPermissions lists every defined permission.
var DefaultPermissions = []Permission{
	PermCreatePersonalDetails,
	PermReadPersonalDetails,
	PermAmendPersonalDetails,
	PermHRReadPersonalDetails,
	PermHRAmendPersonalDetails,
	PermCreateAnnualReview,
	PermReadCurrentAnnualReview,
	PermReadPastAnnualReview,
	PermReviewerReadCurrentAnnualReview,
	PermReviewerReadPastAnnualReview,
	PermReviewerAmendAnnualReview,
	PermSignAnnualReview,
	PermReadAnyAnnualReview,
}

// Description returns the user-facing description of the permission.
func (p Permission) Description() string {
	return permissionDescriptions[p]
}

// RolePermissions is the permission catalog: the fixed, ordered set of
// permissions each role may attempt. Built once at init and read-only for
// the life of the process.
var RolePermissions = map[Role][]Permission{
	RoleUser: {
		PermReadPersonalDetails,
		PermAmendPersonalDetails,
	},
	RoleEmployee: {
		PermReadPersonalDetails,
		PermAmendPersonalDetails,
		PermCreateAnnualReview,
		PermReadCurrentAnnualReview,
		PermReadPastAnnualReview,
		PermSignAnnualReview,
	},
	RoleHREmployee: {
		PermCreatePersonalDetails,
		PermHRReadPersonalDetails,
		PermHRAmendPersonalDetails,
		PermReadAnyAnnualReview,
	},
	RoleManager: {
		PermReadPersonalDetails,
		PermAmendPersonalDetails,
	},
	RoleDirector: {
		PermReadAnyAnnualReview,
	},
	RoleReviewer: {
		PermReviewerReadCurrentAnnualReview,
		PermReviewerReadPastAnnualReview,
		PermReviewerAmendAnnualReview,
		PermSignAnnualReview,
	},
}

var rolePermissionSet = func() map[Role]map[Permission]struct{} {
	sets := make(map[Role]map[Permission]struct{}, len(RolePermissions))
	for role, perms := range RolePermissions {
		set := make(map[Permission]struct{}, len(perms))
		for _, perm := range perms {
			set[perm] = struct{}{}
		}
		sets[role] = set
	}
	return sets
}()

// RoleHasPermission reports whether the role's catalog entry contains the
// permission.
func RoleHasPermission(role Role, perm Permission) bool {
	_, ok := rolePermissionSet[role][perm]
	return ok
}
