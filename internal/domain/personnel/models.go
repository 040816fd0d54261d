package personnel

import "errors"

// PersonalDetails is the plain personal-details record for one staff
// member. It carries no behaviour beyond storage; all access control
// happens in the service through the Authoriser.
type PersonalDetails struct {
	StaffNo          string `json:"staffNo"`
	Surname          string `json:"surname"`
	FirstName        string `json:"firstName"`
	DateOfBirth      string `json:"dateOfBirth"`
	Address          string `json:"address"`
	Town             string `json:"town"`
	County           string `json:"county"`
	Postcode         string `json:"postcode"`
	Telephone        string `json:"telephone"`
	Mobile           string `json:"mobile"`
	EmergencyContact string `json:"emergencyContact"`
	EmergencyNumber  string `json:"emergencyNumber"`
}

var (
	// ErrNotFound indicates no record exists for the staff number.
	ErrNotFound = errors.New("personal details not found")
	// ErrNotAuthorised indicates the session was denied.
	ErrNotAuthorised = errors.New("not authorised")
	// ErrStoreUnavailable indicates the store could not be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)
