package personnel

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Get(ctx context.Context, staffNo string) (PersonalDetails, error) {
	var d PersonalDetails
	err := s.DB.QueryRow(ctx, `
    SELECT staff_no, surname, first_name, date_of_birth, address, town, county,
           postcode, telephone, mobile, emergency_contact, emergency_number
    FROM personal_details
    WHERE staff_no = $1
  `, staffNo).Scan(&d.StaffNo, &d.Surname, &d.FirstName, &d.DateOfBirth, &d.Address,
		&d.Town, &d.County, &d.Postcode, &d.Telephone, &d.Mobile,
		&d.EmergencyContact, &d.EmergencyNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return PersonalDetails{}, ErrNotFound
	}
	return d, err
}

func (s *Store) Create(ctx context.Context, d PersonalDetails) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO personal_details (staff_no, surname, first_name, date_of_birth, address,
                                  town, county, postcode, telephone, mobile,
                                  emergency_contact, emergency_number)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
  `, d.StaffNo, d.Surname, d.FirstName, d.DateOfBirth, d.Address, d.Town, d.County,
		d.Postcode, d.Telephone, d.Mobile, d.EmergencyContact, d.EmergencyNumber)
	return err
}

func (s *Store) Update(ctx context.Context, d PersonalDetails) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE personal_details
    SET surname = $1, first_name = $2, date_of_birth = $3, address = $4, town = $5,
        county = $6, postcode = $7, telephone = $8, mobile = $9,
        emergency_contact = $10, emergency_number = $11
    WHERE staff_no = $12
  `, d.Surname, d.FirstName, d.DateOfBirth, d.Address, d.Town, d.County, d.Postcode,
		d.Telephone, d.Mobile, d.EmergencyContact, d.EmergencyNumber, d.StaffNo)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UsernameByStaffNo(ctx context.Context, staffNo string) (string, error) {
	var username string
	err := s.DB.QueryRow(ctx, "SELECT username FROM staff WHERE staff_no = $1", staffNo).Scan(&username)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return username, err
}
