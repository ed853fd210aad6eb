package repository

import (
	"context"
	"errors"

	"portfolio-api/internal/database"
	"portfolio-api/internal/domain/portfolio"
)

type PortfolioRepository interface {
	// GetProfile reports found=false, not an error, when no profile is stored.
	GetProfile(ctx context.Context) (portfolio.Profile, bool, error)
	ListExperiences(ctx context.Context) ([]portfolio.Experience, error)
	ListEducation(ctx context.Context) ([]portfolio.Education, error)
	ListProjects(ctx context.Context) ([]portfolio.Project, error)
	ListSkills(ctx context.Context) ([]portfolio.Skill, error)
}

type PostgresPortfolioRepository struct {
	db database.Querier
}

func NewPostgresPortfolioRepository(db database.Querier) *PostgresPortfolioRepository {
	return &PostgresPortfolioRepository{db: db}
}

func (r *PostgresPortfolioRepository) GetProfile(ctx context.Context) (portfolio.Profile, bool, error) {
	var p portfolio.Profile
	err := r.db.QueryRow(ctx, `
SELECT id, name, title, bio, image_url, email, linkedin_url, github_url, resume_url
FROM profile
ORDER BY id ASC
LIMIT 1`).Scan(
		&p.ID, &p.Name, &p.Title, &p.Bio, &p.ImageURL, &p.Email, &p.LinkedinURL, &p.GithubURL, &p.ResumeURL,
	)
	if errors.Is(err, database.ErrNoRows) {
		return portfolio.Profile{}, false, nil
	}
	if err != nil {
		return portfolio.Profile{}, false, err
	}
	return p, true, nil
}

func (r *PostgresPortfolioRepository) ListExperiences(ctx context.Context) ([]portfolio.Experience, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, company, role, start_date, end_date, description
FROM experiences
ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]portfolio.Experience, 0)
	for rows.Next() {
		var e portfolio.Experience
		if err := rows.Scan(&e.ID, &e.Company, &e.Role, &e.StartDate, &e.EndDate, &e.Description); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPortfolioRepository) ListEducation(ctx context.Context) ([]portfolio.Education, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, school, degree, field, start_date, end_date
FROM education
ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]portfolio.Education, 0)
	for rows.Next() {
		var e portfolio.Education
		if err := rows.Scan(&e.ID, &e.School, &e.Degree, &e.Field, &e.StartDate, &e.EndDate); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPortfolioRepository) ListProjects(ctx context.Context) ([]portfolio.Project, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, slug, title, description, image_url, link, github_link, tags
FROM projects
ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]portfolio.Project, 0)
	for rows.Next() {
		var p portfolio.Project
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Description, &p.ImageURL, &p.Link, &p.GithubLink, &p.Tags); err != nil {
			return nil, err
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPortfolioRepository) ListSkills(ctx context.Context) ([]portfolio.Skill, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, name, category, proficiency
FROM skills
ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]portfolio.Skill, 0)
	for rows.Next() {
		var s portfolio.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Proficiency); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
