package repository

import (
	"context"
	"fmt"
	"strings"

	"portfolio-api/internal/content"
	"portfolio-api/internal/database"
	"portfolio-api/internal/database/seeder"
)

// seedLockKey serialises seed runs across instances sharing one database.
const seedLockKey int64 = 746295115

var seedColumns = map[string][]string{
	"profile":     {"id", "title", "seed_rev"},
	"experiences": {"company", "role", "start_date", "position", "seed_rev"},
	"education":   {"school", "degree", "start_date", "position", "seed_rev"},
	"projects":    {"slug", "tags", "position", "seed_rev"},
	"skills":      {"name", "proficiency", "position", "seed_rev"},
	"seed_runs":   {"checksum", "mode", "action"},
}

// PostgresContentStore is the seeder's view of the content tables.
type PostgresContentStore struct {
	db database.DB
}

func NewPostgresContentStore(db database.DB) *PostgresContentStore {
	return &PostgresContentStore{db: db}
}

func (s *PostgresContentStore) Check(ctx context.Context) error {
	for _, table := range []string{"profile", "experiences", "education", "projects", "skills", "seed_runs"} {
		if err := ensureTableColumns(ctx, s.db, table, seedColumns[table]...); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresContentStore) State(ctx context.Context) (seeder.State, error) {
	return readState(ctx, s.db)
}

func (s *PostgresContentStore) Apply(ctx context.Context, fn func(ctx context.Context, tx seeder.Tx) error) error {
	return database.WithTx(ctx, s.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
			return fmt.Errorf("acquire seed lock: %w", err)
		}
		return fn(ctx, contentTx{q: tx})
	})
}

func readState(ctx context.Context, q database.Querier) (seeder.State, error) {
	var (
		st       seeder.State
		title    *string
		checksum *string
	)
	err := q.QueryRow(ctx, `
SELECT
	(SELECT title FROM profile ORDER BY id LIMIT 1),
	(SELECT count(*) FROM experiences),
	(SELECT count(*) FROM education),
	(SELECT count(*) FROM projects),
	(SELECT count(*) FROM skills),
	(SELECT checksum FROM seed_runs ORDER BY id DESC LIMIT 1)`).Scan(
		&title,
		&st.Counts.Experiences,
		&st.Counts.Education,
		&st.Counts.Projects,
		&st.Counts.Skills,
		&checksum,
	)
	if err != nil {
		return seeder.State{}, err
	}
	if title != nil {
		st.HasProfile = true
		st.ProfileTitle = *title
	}
	if checksum != nil {
		st.Checksum = *checksum
	}
	return st, nil
}

type contentTx struct {
	q database.Querier
}

func (t contentTx) State(ctx context.Context) (seeder.State, error) {
	return readState(ctx, t.q)
}

func (t contentTx) Clear(ctx context.Context) error {
	for _, table := range []string{"experiences", "education", "projects", "skills", "profile"} {
		if _, err := t.q.Exec(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return nil
}

func (t contentTx) PutProfile(ctx context.Context, rev string, p content.Profile) error {
	_, err := t.q.Exec(ctx, `
INSERT INTO profile (id, name, title, bio, image_url, email, linkedin_url, github_url, resume_url, seed_rev)
VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	title = EXCLUDED.title,
	bio = EXCLUDED.bio,
	image_url = EXCLUDED.image_url,
	email = EXCLUDED.email,
	linkedin_url = EXCLUDED.linkedin_url,
	github_url = EXCLUDED.github_url,
	resume_url = EXCLUDED.resume_url,
	seed_rev = EXCLUDED.seed_rev`,
		p.Name, p.Title, p.Bio, nullIfEmpty(p.ImageURL), p.Email,
		nullIfEmpty(p.LinkedinURL), nullIfEmpty(p.GithubURL), nullIfEmpty(p.ResumeURL), rev,
	)
	return err
}

func (t contentTx) PutExperience(ctx context.Context, rev string, position int, e content.Experience) error {
	_, err := t.q.Exec(ctx, `
INSERT INTO experiences (company, role, start_date, end_date, description, position, seed_rev)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (company, role, start_date) DO UPDATE SET
	end_date = EXCLUDED.end_date,
	description = EXCLUDED.description,
	position = EXCLUDED.position,
	seed_rev = EXCLUDED.seed_rev`,
		e.Company, e.Role, e.StartDate, nullIfEmpty(e.EndDate), e.Description(), position, rev,
	)
	return err
}

func (t contentTx) PutEducation(ctx context.Context, rev string, position int, e content.Education) error {
	_, err := t.q.Exec(ctx, `
INSERT INTO education (school, degree, field, start_date, end_date, position, seed_rev)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (school, degree, (coalesce(start_date, ''))) DO UPDATE SET
	field = EXCLUDED.field,
	end_date = EXCLUDED.end_date,
	position = EXCLUDED.position,
	seed_rev = EXCLUDED.seed_rev`,
		e.School, e.Degree, e.Field, nullIfEmpty(e.StartDate), nullIfEmpty(e.EndDate), position, rev,
	)
	return err
}

func (t contentTx) PutProject(ctx context.Context, rev string, position int, p content.Project) error {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err := t.q.Exec(ctx, `
INSERT INTO projects (slug, title, description, image_url, link, github_link, tags, position, seed_rev)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (slug) DO UPDATE SET
	title = EXCLUDED.title,
	description = EXCLUDED.description,
	image_url = EXCLUDED.image_url,
	link = EXCLUDED.link,
	github_link = EXCLUDED.github_link,
	tags = EXCLUDED.tags,
	position = EXCLUDED.position,
	seed_rev = EXCLUDED.seed_rev`,
		p.Slug, p.Title, p.Description, nullIfEmpty(p.ImageURL), nullIfEmpty(p.Link), nullIfEmpty(p.GithubLink),
		tags, position, rev,
	)
	return err
}

func (t contentTx) PutSkill(ctx context.Context, rev string, position int, s content.Skill) error {
	_, err := t.q.Exec(ctx, `
INSERT INTO skills (name, category, proficiency, position, seed_rev)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (name) DO UPDATE SET
	category = EXCLUDED.category,
	proficiency = EXCLUDED.proficiency,
	position = EXCLUDED.position,
	seed_rev = EXCLUDED.seed_rev`,
		s.Name, s.Category, s.Proficiency, position, rev,
	)
	return err
}

func (t contentTx) Prune(ctx context.Context, rev string) (int64, error) {
	var total int64
	for _, table := range []string{"experiences", "education", "projects", "skills"} {
		n, err := t.q.Exec(ctx, `DELETE FROM `+table+` WHERE seed_rev IS DISTINCT FROM $1`, rev)
		if err != nil {
			return total, fmt.Errorf("prune %s: %w", table, err)
		}
		total += n
	}
	return total, nil
}

func (t contentTx) RecordRun(ctx context.Context, run seeder.Run) error {
	_, err := t.q.Exec(ctx, `
INSERT INTO seed_runs (checksum, mode, action, experiences, education, projects, skills)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.Checksum, run.Mode, string(run.Action),
		run.Counts.Experiences, run.Counts.Education, run.Counts.Projects, run.Counts.Skills,
	)
	return err
}

func ensureTableColumns(ctx context.Context, q database.Querier, table string, columns ...string) error {
	rows, err := q.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(existing) == 0 {
		return fmt.Errorf("schema mismatch: missing table %s (run migrations first)", table)
	}
	var missing []string
	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			missing = append(missing, table+"."+col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: missing column %s", strings.Join(missing, ", "))
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

var _ seeder.Store = (*PostgresContentStore)(nil)
