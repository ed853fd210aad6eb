package seeder

import (
	"context"

	"portfolio-api/internal/content"
)

// Counts holds row counts of the seeded content tables.
type Counts struct {
	Experiences int `json:"experiences"`
	Education   int `json:"education"`
	Projects    int `json:"projects"`
	Skills      int `json:"skills"`
}

// State is a snapshot of what the seed routine needs to decide on a run.
type State struct {
	HasProfile   bool
	ProfileTitle string
	Counts       Counts
	// Checksum is the revision of the last recorded seed run, empty if none.
	Checksum string
}

// Run is the audit record written after content changes.
type Run struct {
	Checksum string
	Mode     string
	Action   Action
	Counts   Counts
}

// Tx is the write side of a seed run. Every call happens inside one
// transaction that holds the seed lock.
type Tx interface {
	State(ctx context.Context) (State, error)

	// Clear deletes experiences, education, projects, skills and profile in that order.
	Clear(ctx context.Context) error

	PutProfile(ctx context.Context, rev string, p content.Profile) error
	PutExperience(ctx context.Context, rev string, position int, e content.Experience) error
	PutEducation(ctx context.Context, rev string, position int, e content.Education) error
	PutProject(ctx context.Context, rev string, position int, p content.Project) error
	PutSkill(ctx context.Context, rev string, position int, s content.Skill) error

	// Prune deletes content rows not written by revision rev.
	Prune(ctx context.Context, rev string) (int64, error)
	RecordRun(ctx context.Context, run Run) error
}

type Store interface {
	// Check verifies the schema the seeder writes to is in place.
	Check(ctx context.Context) error
	State(ctx context.Context) (State, error)
	// Apply runs fn in a single locked transaction; a non-nil error rolls back.
	Apply(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
