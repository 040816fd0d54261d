package review

import (
	"sync"
	"testing"
	"time"
)

func openReview() *AnnualReview {
	return &AnnualReview{
		ID:               1,
		StaffNo:          "emp001",
		RevieweeName:     "Kosei Tanaka",
		SupervisorNo:     "mgr001",
		SecondReviewerNo: "hrm001",
		Section:          "Engineering",
		JobTitle:         "Engineer",
		Recommendation:   RecommendationNotSet,
	}
}

func TestSignOffAnyOrderCompletes(t *testing.T) {
	orders := [][]string{
		{"emp001", "mgr001", "hrm001"},
		{"hrm001", "emp001", "mgr001"},
		{"mgr001", "hrm001", "emp001"},
	}
	for _, order := range orders {
		r := openReview()
		for i, signer := range order {
			if r.IsComplete() {
				t.Fatalf("complete after %d of 3 signatures", i)
			}
			if !r.SignOff(signer) {
				t.Fatalf("sign by %s refused in order %v", signer, order)
			}
		}
		if !r.IsComplete() {
			t.Fatalf("not complete after order %v", order)
		}
	}
}

func TestSignOffStampsOnce(t *testing.T) {
	r := openReview()
	if !r.SignOff("emp001") {
		t.Fatal("first sign refused")
	}
	first := *r.Signatures().Reviewee

	if r.SignOff("emp001") {
		t.Fatal("second sign by same slot must be a no-op")
	}
	if got := *r.Signatures().Reviewee; !got.Equal(first) {
		t.Fatalf("signature date changed from %v to %v", first, got)
	}
	if r.Signatures().Supervisor != nil || r.Signatures().SecondReviewer != nil {
		t.Fatal("other slots must stay empty")
	}
}

func TestSignOffUnknownSigner(t *testing.T) {
	r := openReview()
	if r.SignOff("out999") {
		t.Fatal("signer with no role on the review must be refused")
	}
}

func TestSignOffSlotPriority(t *testing.T) {
	// When one person fills two roles the earlier slot wins: a reviewee who
	// is somehow also listed as supervisor signs the reviewee slot.
	r := openReview()
	r.SupervisorNo = "emp001"
	if !r.SignOff("emp001") {
		t.Fatal("sign refused")
	}
	sigs := r.Signatures()
	if sigs.Reviewee == nil || sigs.Supervisor != nil {
		t.Fatalf("expected reviewee slot only, got %+v", sigs)
	}
}

func TestSignOffAfterComplete(t *testing.T) {
	r := openReview()
	for _, signer := range []string{"emp001", "mgr001", "hrm001"} {
		r.SignOff(signer)
	}
	if r.SignOff("emp001") {
		t.Fatal("complete review must refuse further signing")
	}
}

func TestResetSignatures(t *testing.T) {
	r := openReview()
	r.SignOff("emp001")
	r.SignOff("mgr001")

	if !r.ResetSignatures() {
		t.Fatal("reset refused on open review")
	}
	sigs := r.Signatures()
	if sigs.Reviewee != nil || sigs.Supervisor != nil || sigs.SecondReviewer != nil {
		t.Fatalf("slots not cleared: %+v", sigs)
	}

	// Signing works again after a reset.
	if !r.SignOff("emp001") {
		t.Fatal("sign refused after reset")
	}
}

func TestResetSignaturesCompleteIsImmutable(t *testing.T) {
	r := openReview()
	for _, signer := range []string{"emp001", "mgr001", "hrm001"} {
		r.SignOff(signer)
	}
	before := r.Signatures()
	if r.ResetSignatures() {
		t.Fatal("complete review must refuse reset")
	}
	after := r.Signatures()
	if !before.Reviewee.Equal(*after.Reviewee) || !before.Supervisor.Equal(*after.Supervisor) {
		t.Fatal("signatures changed on refused reset")
	}
}

func TestCompletionDate(t *testing.T) {
	r := openReview()
	if _, ok := r.CompletionDate(); ok {
		t.Fatal("open review must have no completion date")
	}

	early := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mid := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	r.setSignatures(Signatures{Reviewee: &mid, Supervisor: &late, SecondReviewer: &early})

	completed, ok := r.CompletionDate()
	if !ok {
		t.Fatal("expected completion date")
	}
	if !completed.Equal(late) {
		t.Fatalf("completion date = %v, want latest signature %v", completed, late)
	}
}

func TestConcurrentSignOff(t *testing.T) {
	r := openReview()
	signers := []string{"emp001", "mgr001", "hrm001"}

	var wg sync.WaitGroup
	for _, signer := range signers {
		signer := signer
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.SignOff(signer)
		}()
	}
	wg.Wait()

	if !r.IsComplete() {
		t.Fatalf("expected complete after concurrent signing, got %+v", r.Signatures())
	}
}

func TestPastPerformanceOutcomes(t *testing.T) {
	p := NewPastPerformance([]string{"ship the importer", "mentor a junior"}, "solid year")
	if len(p.Achievements) != 2 || p.Achievements[0].Outcome != "" {
		t.Fatalf("unexpected initial state: %+v", p)
	}
	if !p.RecordOutcome("ship the importer", "shipped in Q2") {
		t.Fatal("known objective refused")
	}
	if p.Achievements[0].Outcome != "shipped in Q2" {
		t.Fatalf("outcome not recorded: %+v", p.Achievements[0])
	}
	if p.RecordOutcome("unlisted", "n/a") {
		t.Fatal("unknown objective must be refused")
	}
}

func TestFutureGoals(t *testing.T) {
	f := NewFutureGoals([]string{"lead the migration"}, "")
	f.AddGoal("present at the offsite")
	if len(f.Goals) != 2 {
		t.Fatalf("goal count = %d, want 2", len(f.Goals))
	}
	if !f.RemoveGoal(0) {
		t.Fatal("in-range removal refused")
	}
	if f.Goals[0] != "present at the offsite" {
		t.Fatalf("wrong goal removed: %v", f.Goals)
	}
	if f.RemoveGoal(5) || f.RemoveGoal(-1) {
		t.Fatal("out-of-range removal must be refused")
	}
}

func TestParseRecommendation(t *testing.T) {
	if rec, ok := ParseRecommendation("salary_increase"); !ok || rec != RecommendationSalaryIncrease {
		t.Fatalf("ParseRecommendation(salary_increase) = %q %v", rec, ok)
	}
	if _, ok := ParseRecommendation("raise"); ok {
		t.Fatal("unknown recommendation must not parse")
	}
	for _, rec := range Recommendations() {
		if rec.Title() == "" {
			t.Errorf("recommendation %q has no title", rec)
		}
	}
}
