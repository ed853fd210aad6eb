// Package seeder keeps the content tables in line with the embedded content
// document on startup.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log"

	"portfolio-api/internal/config"
	"portfolio-api/internal/content"
)

type Action string

const (
	ActionSkipped    Action = "skipped"
	ActionSeeded     Action = "seeded"
	ActionReconciled Action = "reconciled"
)

type Result struct {
	Mode     config.SeedMode `json:"mode"`
	Action   Action          `json:"action"`
	Reason   string          `json:"reason"`
	Checksum string          `json:"checksum"`
	Counts   Counts          `json:"counts"`
	Pruned   int64           `json:"pruned"`
}

type Seeder struct {
	store  Store
	doc    content.Document
	logger *log.Logger
}

func New(store Store, doc content.Document, logger *log.Logger) *Seeder {
	if logger == nil {
		logger = log.Default()
	}
	return &Seeder{store: store, doc: doc, logger: logger}
}

// Run brings stored content in line with the document according to mode.
func (s *Seeder) Run(ctx context.Context, mode config.SeedMode) (Result, error) {
	res := Result{Mode: mode, Action: ActionSkipped, Checksum: s.doc.Checksum()}

	if mode == config.SeedModeOff {
		res.Reason = "seeding disabled"
		s.logger.Printf("[Seed] mode=%s action=%s", mode, res.Action)
		return res, nil
	}
	if mode != config.SeedModeReset && mode != config.SeedModeReconcile {
		return res, fmt.Errorf("unknown seed mode %q", mode)
	}
	if s.store == nil {
		return res, errors.New("nil seed store")
	}

	if err := s.store.Check(ctx); err != nil {
		return res, err
	}

	err := s.store.Apply(ctx, func(ctx context.Context, tx Tx) error {
		st, err := tx.State(ctx)
		if err != nil {
			return fmt.Errorf("read seed state: %w", err)
		}
		res.Counts = st.Counts

		switch mode {
		case config.SeedModeReset:
			return s.reset(ctx, tx, st, &res)
		default:
			return s.reconcile(ctx, tx, st, &res)
		}
	})
	if err != nil {
		return res, err
	}

	s.logger.Printf("[Seed] mode=%s action=%s reason=%q experiences=%d education=%d projects=%d skills=%d pruned=%d",
		res.Mode, res.Action, res.Reason,
		res.Counts.Experiences, res.Counts.Education, res.Counts.Projects, res.Counts.Skills, res.Pruned)
	return res, nil
}

func (s *Seeder) reset(ctx context.Context, tx Tx, st State, res *Result) error {
	need, reason := NeedsReset(st, s.doc)
	res.Reason = reason
	if !need {
		return nil
	}

	if err := tx.Clear(ctx); err != nil {
		return fmt.Errorf("clear content: %w", err)
	}
	if err := s.writeAll(ctx, tx, res.Checksum); err != nil {
		return err
	}
	res.Action = ActionSeeded
	return s.finish(ctx, tx, res)
}

func (s *Seeder) reconcile(ctx context.Context, tx Tx, st State, res *Result) error {
	if Current(st, s.doc, res.Checksum) {
		res.Reason = "content matches seed revision"
		return nil
	}
	res.Reason = reconcileReason(st, s.doc, res.Checksum)

	if err := s.writeAll(ctx, tx, res.Checksum); err != nil {
		return err
	}
	pruned, err := tx.Prune(ctx, res.Checksum)
	if err != nil {
		return fmt.Errorf("prune content: %w", err)
	}
	res.Pruned = pruned
	res.Action = ActionReconciled
	return s.finish(ctx, tx, res)
}

func (s *Seeder) finish(ctx context.Context, tx Tx, res *Result) error {
	st, err := tx.State(ctx)
	if err != nil {
		return fmt.Errorf("read seed state: %w", err)
	}
	res.Counts = st.Counts

	return tx.RecordRun(ctx, Run{
		Checksum: res.Checksum,
		Mode:     string(res.Mode),
		Action:   res.Action,
		Counts:   res.Counts,
	})
}

// writeAll upserts the whole document in document order.
func (s *Seeder) writeAll(ctx context.Context, tx Tx, rev string) error {
	if err := tx.PutProfile(ctx, rev, s.doc.Profile); err != nil {
		return fmt.Errorf("seed profile: %w", err)
	}
	for i, e := range s.doc.Experiences {
		if err := tx.PutExperience(ctx, rev, i, e); err != nil {
			return fmt.Errorf("seed experiences: %w", err)
		}
	}
	for i, e := range s.doc.Education {
		if err := tx.PutEducation(ctx, rev, i, e); err != nil {
			return fmt.Errorf("seed education: %w", err)
		}
	}
	for i, p := range s.doc.Projects {
		if err := tx.PutProject(ctx, rev, i, p); err != nil {
			return fmt.Errorf("seed projects: %w", err)
		}
	}
	for i, sk := range s.doc.Skills {
		if err := tx.PutSkill(ctx, rev, i, sk); err != nil {
			return fmt.Errorf("seed skills: %w", err)
		}
	}
	return nil
}

// NeedsReset reports whether the destructive reseed should run: the profile
// is missing or retitled, experiences or projects are empty, or education or
// skills hold fewer rows than the document.
func NeedsReset(st State, doc content.Document) (bool, string) {
	switch {
	case !st.HasProfile:
		return true, "profile missing"
	case st.ProfileTitle != doc.Profile.Title:
		return true, "profile title changed"
	case st.Counts.Experiences == 0:
		return true, "no experiences"
	case st.Counts.Projects == 0:
		return true, "no projects"
	case st.Counts.Education < len(doc.Education):
		return true, "education under-populated"
	case st.Counts.Skills < len(doc.Skills):
		return true, "skills under-populated"
	default:
		return false, "content present"
	}
}

// Current reports whether the stored content was written by revision rev and
// every table holds exactly the document's rows.
func Current(st State, doc content.Document, rev string) bool {
	return st.HasProfile &&
		st.Checksum == rev &&
		st.Counts == countsOf(doc)
}

func reconcileReason(st State, doc content.Document, rev string) string {
	switch {
	case st.Checksum == "":
		return "no recorded seed revision"
	case st.Checksum != rev:
		return "seed revision changed"
	case !st.HasProfile:
		return "profile missing"
	default:
		return "row counts drifted"
	}
}

func countsOf(doc content.Document) Counts {
	return Counts{
		Experiences: len(doc.Experiences),
		Education:   len(doc.Education),
		Projects:    len(doc.Projects),
		Skills:      len(doc.Skills),
	}
}
