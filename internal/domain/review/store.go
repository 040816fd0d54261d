package review

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the pg-backed review store. It also serves the reviewer
// relationship queries the Authoriser needs: a "current reviewee" is a
// staff member with an open review on which the user is supervisor or
// second reviewer.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const reviewColumns = `
  id, staff_no, reviewee_name, supervisor_no, second_reviewer_no,
  section, job_title, recommendation, past_performance, future_goals,
  reviewee_signed, supervisor_signed, second_reviewer_signed
`

func (s *Store) Get(ctx context.Context, reviewID int64) (*AnnualReview, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+reviewColumns+`
    FROM annual_reviews
    WHERE id = $1
  `, reviewID)
	return scanReview(row)
}

func (s *Store) FindByStaff(ctx context.Context, staffNo string) ([]*AnnualReview, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+reviewColumns+`
    FROM annual_reviews
    WHERE staff_no = $1
    ORDER BY id
  `, staffNo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*AnnualReview
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *Store) UnfinishedByStaff(ctx context.Context, staffNo string) (*AnnualReview, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+reviewColumns+`
    FROM annual_reviews
    WHERE staff_no = $1
      AND (reviewee_signed IS NULL OR supervisor_signed IS NULL OR second_reviewer_signed IS NULL)
    ORDER BY id DESC
    LIMIT 1
  `, staffNo)
	return scanReview(row)
}

func (s *Store) Save(ctx context.Context, r *AnnualReview) error {
	pastJSON, futureJSON, err := marshalSections(r)
	if err != nil {
		return err
	}
	sigs := r.Signatures()
	_, err = s.DB.Exec(ctx, `
    UPDATE annual_reviews
    SET section = $1, job_title = $2, recommendation = $3,
        past_performance = $4, future_goals = $5,
        reviewee_signed = $6, supervisor_signed = $7, second_reviewer_signed = $8
    WHERE id = $9
  `, r.Section, r.JobTitle, string(r.Recommendation), pastJSON, futureJSON,
		sigs.Reviewee, sigs.Supervisor, sigs.SecondReviewer, r.ID)
	return err
}

// Create inserts a review pre-populated from the staff directory row.
func (s *Store) Create(ctx context.Context, staffNo string) (*AnnualReview, error) {
	var name, section, jobTitle, supervisorNo, secondReviewerNo string
	err := s.DB.QueryRow(ctx, `
    SELECT name, section, job_title, supervisor_no, second_reviewer_no
    FROM staff
    WHERE staff_no = $1
  `, staffNo).Scan(&name, &section, &jobTitle, &supervisorNo, &secondReviewerNo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	r := &AnnualReview{
		StaffNo:          staffNo,
		RevieweeName:     name,
		SupervisorNo:     supervisorNo,
		SecondReviewerNo: secondReviewerNo,
		Section:          section,
		JobTitle:         jobTitle,
		Recommendation:   RecommendationNotSet,
	}
	err = s.DB.QueryRow(ctx, `
    INSERT INTO annual_reviews (staff_no, reviewee_name, supervisor_no, second_reviewer_no,
                                section, job_title, recommendation)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, r.StaffNo, r.RevieweeName, r.SupervisorNo, r.SecondReviewerNo,
		r.Section, r.JobTitle, string(r.Recommendation)).Scan(&r.ID)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Store) StaffNoByUsername(ctx context.Context, username string) (string, error) {
	var staffNo string
	err := s.DB.QueryRow(ctx, "SELECT staff_no FROM staff WHERE username = $1", username).Scan(&staffNo)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return staffNo, err
}

func (s *Store) UsernameByStaffNo(ctx context.Context, staffNo string) (string, error) {
	var username string
	err := s.DB.QueryRow(ctx, "SELECT username FROM staff WHERE staff_no = $1", staffNo).Scan(&username)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return username, err
}

// ListReviewees returns the usernames of staff with an open review on
// which the given user is supervisor or second reviewer.
func (s *Store) ListReviewees(ctx context.Context, username string) ([]string, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT st.username
    FROM annual_reviews ar
    JOIN staff st ON st.staff_no = ar.staff_no
    JOIN staff me ON me.username = $1
    WHERE (ar.reviewee_signed IS NULL OR ar.supervisor_signed IS NULL OR ar.second_reviewer_signed IS NULL)
      AND (ar.supervisor_no = me.staff_no OR ar.second_reviewer_no = me.staff_no)
  `, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviewees []string
	for rows.Next() {
		var reviewee string
		if err := rows.Scan(&reviewee); err != nil {
			return nil, err
		}
		reviewees = append(reviewees, reviewee)
	}
	return reviewees, rows.Err()
}

// IsReviewing reports whether username currently reviews target.
func (s *Store) IsReviewing(ctx context.Context, username, target string) (bool, error) {
	reviewees, err := s.ListReviewees(ctx, username)
	if err != nil {
		return false, err
	}
	for _, reviewee := range reviewees {
		if reviewee == target {
			return true, nil
		}
	}
	return false, nil
}

func marshalSections(r *AnnualReview) ([]byte, []byte, error) {
	var pastJSON, futureJSON []byte
	var err error
	if r.PastPerformance != nil {
		if pastJSON, err = json.Marshal(r.PastPerformance); err != nil {
			return nil, nil, err
		}
	}
	if r.FutureGoals != nil {
		if futureJSON, err = json.Marshal(r.FutureGoals); err != nil {
			return nil, nil, err
		}
	}
	return pastJSON, futureJSON, nil
}

func scanReview(row pgx.Row) (*AnnualReview, error) {
	r := &AnnualReview{}
	var recommendation string
	var pastJSON, futureJSON []byte
	var reviewee, supervisor, secondReviewer *time.Time
	err := row.Scan(&r.ID, &r.StaffNo, &r.RevieweeName, &r.SupervisorNo, &r.SecondReviewerNo,
		&r.Section, &r.JobTitle, &recommendation, &pastJSON, &futureJSON,
		&reviewee, &supervisor, &secondReviewer)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	r.Recommendation = Recommendation(recommendation)
	if len(pastJSON) > 0 {
		r.PastPerformance = &PastPerformance{}
		if err := json.Unmarshal(pastJSON, r.PastPerformance); err != nil {
			return nil, err
		}
	}
	if len(futureJSON) > 0 {
		r.FutureGoals = &FutureGoals{}
		if err := json.Unmarshal(futureJSON, r.FutureGoals); err != nil {
			return nil, err
		}
	}
	r.setSignatures(Signatures{Reviewee: reviewee, Supervisor: supervisor, SecondReviewer: secondReviewer})
	return r, nil
}
