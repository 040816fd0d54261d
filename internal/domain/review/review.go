package review

import (
	"sync"
	"time"
)

// Signatures holds the three sign-off dates on an annual review. A nil
// entry means that signatory has not signed yet.
type Signatures struct {
	Reviewee       *time.Time `json:"reviewee"`
	Supervisor     *time.Time `json:"supervisor"`
	SecondReviewer *time.Time `json:"secondReviewer"`
}

// AnnualReview is one annual-review document. It is Open while any of the
// three signatures is missing and Complete once all three are set, at
// which point the signatures are immutable.
//
// Signature operations are safe for concurrent use; the data fields are
// set when the document is created or rehydrated and amended only through
// the service while the review is Open.
type AnnualReview struct {
	ID               int64            `json:"id"`
	StaffNo          string           `json:"staffNo"`
	RevieweeName     string           `json:"revieweeName"`
	SupervisorNo     string           `json:"supervisorNo"`
	SecondReviewerNo string           `json:"secondReviewerNo"`
	Section          string           `json:"section"`
	JobTitle         string           `json:"jobTitle"`
	Recommendation   Recommendation   `json:"recommendation"`
	PastPerformance  *PastPerformance `json:"pastPerformance"`
	FutureGoals      *FutureGoals     `json:"futureGoals"`

	mu         sync.Mutex
	signatures Signatures
}

func (r *AnnualReview) isComplete() bool {
	return r.signatures.Reviewee != nil &&
		r.signatures.Supervisor != nil &&
		r.signatures.SecondReviewer != nil
}

// IsComplete reports whether all three signatories have signed.
func (r *AnnualReview) IsComplete() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isComplete()
}

// Signatures returns a copy of the current signature slots.
func (r *AnnualReview) Signatures() Signatures {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.signatures
}

// setSignatures rehydrates the slots from storage.
func (r *AnnualReview) setSignatures(s Signatures) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signatures = s
}

// SignOff stamps the signature slot belonging to the signing staff member
// with the current time. The signer is resolved against the reviewee,
// supervisor and second reviewer identifiers in that priority order; the
// first match wins. Nothing happens if the review is already Complete, the
// matched slot is already signed, or the signer holds no role on this
// review. Returns whether a slot was stamped.
func (r *AnnualReview) SignOff(signerStaffNo string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isComplete() {
		return false
	}

	var slot **time.Time
	switch signerStaffNo {
	case r.StaffNo:
		slot = &r.signatures.Reviewee
	case r.SupervisorNo:
		slot = &r.signatures.Supervisor
	case r.SecondReviewerNo:
		slot = &r.signatures.SecondReviewer
	default:
		return false
	}

	if *slot != nil {
		return false
	}
	now := time.Now().UTC()
	*slot = &now
	return true
}

// ResetSignatures clears all three slots, used to correct erroneous
// partial sign-offs. Returns false without touching anything if the
// review is already Complete.
func (r *AnnualReview) ResetSignatures() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isComplete() {
		return false
	}
	r.signatures = Signatures{}
	return true
}

// CompletionDate is the latest of the three signature dates. The second
// return is false while the review is Open.
func (r *AnnualReview) CompletionDate() (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isComplete() {
		return time.Time{}, false
	}
	latest := *r.signatures.Reviewee
	if r.signatures.Supervisor.After(latest) {
		latest = *r.signatures.Supervisor
	}
	if r.signatures.SecondReviewer.After(latest) {
		latest = *r.signatures.SecondReviewer
	}
	return latest, true
}
