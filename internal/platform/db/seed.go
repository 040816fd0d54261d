package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"yuconz/internal/domain/auth"
	"yuconz/internal/platform/config"
)

type seedStaff struct {
	staffNo          string
	username         string
	name             string
	section          string
	jobTitle         string
	supervisorNo     string
	secondReviewerNo string
	roles            []auth.Role
}

// Demo directory. Supervisor and second-reviewer assignments point at
// staff numbers; everyone shares the configured seed password.
var seedDirectory = []seedStaff{
	{"dir001", "jwilson", "June Wilson", "Directorate", "Director",
		"", "", []auth.Role{auth.RoleUser, auth.RoleEmployee, auth.RoleDirector}},
	{"hrm001", "asahin", "Ayse Sahin", "Human Resources", "HR Manager",
		"dir001", "mgr001", []auth.Role{auth.RoleUser, auth.RoleEmployee, auth.RoleHREmployee, auth.RoleReviewer}},
	{"mgr001", "dpatel", "Dev Patel", "Sales", "Section Manager",
		"dir001", "hrm001", []auth.Role{auth.RoleUser, auth.RoleEmployee, auth.RoleManager, auth.RoleReviewer}},
	{"emp001", "kosei", "Kofi Osei", "Sales", "Account Executive",
		"mgr001", "hrm001", []auth.Role{auth.RoleUser, auth.RoleEmployee}},
	{"emp002", "lnowak", "Lena Nowak", "Sales", "Account Executive",
		"mgr001", "dir001", []auth.Role{auth.RoleUser, auth.RoleEmployee}},
}

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if strings.TrimSpace(cfg.SeedPassword) == "" {
		return nil
	}
	hash, err := auth.HashPassword(cfg.SeedPassword)
	if err != nil {
		return err
	}

	for _, m := range seedDirectory {
		_, err := pool.Exec(ctx, `
      INSERT INTO staff (staff_no, username, name, section, job_title, supervisor_no, second_reviewer_no)
      VALUES ($1,$2,$3,$4,$5,$6,$7)
      ON CONFLICT (staff_no) DO NOTHING
    `, m.staffNo, m.username, m.name, m.section, m.jobTitle, m.supervisorNo, m.secondReviewerNo)
		if err != nil {
			return err
		}

		roleNames := make([]string, len(m.roles))
		for i, role := range m.roles {
			roleNames[i] = string(role)
		}
		_, err = pool.Exec(ctx, `
      INSERT INTO users (username, password_hash, roles)
      VALUES ($1,$2,$3)
      ON CONFLICT (username) DO NOTHING
    `, m.username, hash, roleNames)
		if err != nil {
			return err
		}

		surname, firstName := splitName(m.name)
		_, err = pool.Exec(ctx, `
      INSERT INTO personal_details (staff_no, surname, first_name)
      VALUES ($1,$2,$3)
      ON CONFLICT (staff_no) DO NOTHING
    `, m.staffNo, surname, firstName)
		if err != nil {
			return err
		}
	}
	return nil
}

func splitName(full string) (surname, firstName string) {
	parts := strings.Fields(full)
	if len(parts) < 2 {
		return full, ""
	}
	return parts[len(parts)-1], strings.Join(parts[:len(parts)-1], " ")
}
