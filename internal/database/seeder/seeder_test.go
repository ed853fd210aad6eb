package seeder

import (
	"context"
	"errors"
	"io"
	"log"
	"maps"
	"slices"
	"sync"
	"testing"

	"portfolio-api/internal/config"
	"portfolio-api/internal/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRow struct {
	rev      string
	position int
}

type memData struct {
	hasProfile  bool
	title       string
	experiences map[string]memRow
	education   map[string]memRow
	projects    map[string]memRow
	skills      map[string]memRow
	runs        []Run
}

func newMemData() memData {
	return memData{
		experiences: map[string]memRow{},
		education:   map[string]memRow{},
		projects:    map[string]memRow{},
		skills:      map[string]memRow{},
	}
}

func (d memData) clone() memData {
	c := d
	c.experiences = maps.Clone(d.experiences)
	c.education = maps.Clone(d.education)
	c.projects = maps.Clone(d.projects)
	c.skills = maps.Clone(d.skills)
	c.runs = slices.Clone(d.runs)
	return c
}

func (d memData) state() State {
	st := State{
		HasProfile:   d.hasProfile,
		ProfileTitle: d.title,
		Counts: Counts{
			Experiences: len(d.experiences),
			Education:   len(d.education),
			Projects:    len(d.projects),
			Skills:      len(d.skills),
		},
	}
	if n := len(d.runs); n > 0 {
		st.Checksum = d.runs[n-1].Checksum
	}
	return st
}

type memStore struct {
	mu       sync.Mutex
	data     memData
	applies  int
	checkErr error
	failOn   string
}

func newMemStore() *memStore { return &memStore{data: newMemData()} }

func (m *memStore) Check(context.Context) error { return m.checkErr }

func (m *memStore) State(context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.state(), nil
}

func (m *memStore) Apply(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applies++

	tx := &memTx{data: m.data.clone(), failOn: m.failOn}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	m.data = tx.data
	return nil
}

type memTx struct {
	data   memData
	failOn string
}

var errBoom = errors.New("boom")

func (t *memTx) State(context.Context) (State, error) { return t.data.state(), nil }

func (t *memTx) Clear(context.Context) error {
	t.data.experiences = map[string]memRow{}
	t.data.education = map[string]memRow{}
	t.data.projects = map[string]memRow{}
	t.data.skills = map[string]memRow{}
	t.data.hasProfile = false
	t.data.title = ""
	return nil
}

func (t *memTx) PutProfile(_ context.Context, _ string, p content.Profile) error {
	t.data.hasProfile = true
	t.data.title = p.Title
	return nil
}

func (t *memTx) PutExperience(_ context.Context, rev string, pos int, e content.Experience) error {
	t.data.experiences[e.Company+"|"+e.Role+"|"+e.StartDate] = memRow{rev: rev, position: pos}
	return nil
}

func (t *memTx) PutEducation(_ context.Context, rev string, pos int, e content.Education) error {
	t.data.education[e.School+"|"+e.Degree+"|"+e.StartDate] = memRow{rev: rev, position: pos}
	return nil
}

func (t *memTx) PutProject(_ context.Context, rev string, pos int, p content.Project) error {
	t.data.projects[p.Slug] = memRow{rev: rev, position: pos}
	return nil
}

func (t *memTx) PutSkill(_ context.Context, rev string, pos int, s content.Skill) error {
	if t.failOn == "skills" {
		return errBoom
	}
	t.data.skills[s.Name] = memRow{rev: rev, position: pos}
	return nil
}

func (t *memTx) Prune(_ context.Context, rev string) (int64, error) {
	var n int64
	for _, tbl := range []map[string]memRow{t.data.experiences, t.data.education, t.data.projects, t.data.skills} {
		for k, r := range tbl {
			if r.rev != rev {
				delete(tbl, k)
				n++
			}
		}
	}
	return n, nil
}

func (t *memTx) RecordRun(_ context.Context, run Run) error {
	t.data.runs = append(t.data.runs, run)
	return nil
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func seedCounts(doc content.Document) Counts {
	return Counts{
		Experiences: len(doc.Experiences),
		Education:   len(doc.Education),
		Projects:    len(doc.Projects),
		Skills:      len(doc.Skills),
	}
}

func TestSeeder_RepeatedRunsKeepSeedCounts(t *testing.T) {
	doc := content.MustLoad()

	for _, mode := range []config.SeedMode{config.SeedModeReconcile, config.SeedModeReset} {
		t.Run(string(mode), func(t *testing.T) {
			store := newMemStore()
			s := New(store, doc, quietLogger())

			first, err := s.Run(context.Background(), mode)
			require.NoError(t, err)
			assert.NotEqual(t, ActionSkipped, first.Action)
			assert.Equal(t, seedCounts(doc), first.Counts)

			second, err := s.Run(context.Background(), mode)
			require.NoError(t, err)
			assert.Equal(t, ActionSkipped, second.Action)
			assert.Equal(t, seedCounts(doc), second.Counts)

			st, _ := store.State(context.Background())
			assert.Equal(t, seedCounts(doc), st.Counts)
			assert.Len(t, store.data.runs, 1)
		})
	}
}

func TestSeeder_ReconcileRecordsRevision(t *testing.T) {
	doc := content.MustLoad()
	store := newMemStore()

	res, err := New(store, doc, quietLogger()).Run(context.Background(), config.SeedModeReconcile)
	require.NoError(t, err)
	assert.Equal(t, ActionReconciled, res.Action)
	assert.Equal(t, "no recorded seed revision", res.Reason)

	require.Len(t, store.data.runs, 1)
	run := store.data.runs[0]
	assert.Equal(t, doc.Checksum(), run.Checksum)
	assert.Equal(t, "reconcile", run.Mode)
	assert.Equal(t, ActionReconciled, run.Action)

	for _, r := range store.data.projects {
		assert.Equal(t, doc.Checksum(), r.rev)
	}
	assert.Equal(t, 2, store.data.projects[doc.Projects[2].Slug].position)
}

func TestSeeder_ReconcilePrunesUnknownRows(t *testing.T) {
	doc := content.MustLoad()
	store := newMemStore()
	s := New(store, doc, quietLogger())

	_, err := s.Run(context.Background(), config.SeedModeReconcile)
	require.NoError(t, err)

	store.data.experiences["Manual|Row|2020"] = memRow{}
	store.data.skills["Cobol"] = memRow{rev: "old-revision"}

	res, err := s.Run(context.Background(), config.SeedModeReconcile)
	require.NoError(t, err)
	assert.Equal(t, ActionReconciled, res.Action)
	assert.Equal(t, "row counts drifted", res.Reason)
	assert.Equal(t, int64(2), res.Pruned)
	assert.Equal(t, seedCounts(doc), res.Counts)
	assert.NotContains(t, store.data.skills, "Cobol")
}

func TestSeeder_ReconcileFollowsDocumentChanges(t *testing.T) {
	doc := content.MustLoad()
	store := newMemStore()

	_, err := New(store, doc, quietLogger()).Run(context.Background(), config.SeedModeReconcile)
	require.NoError(t, err)

	changed := content.MustLoad()
	dropped := changed.Projects[len(changed.Projects)-1].Slug
	changed.Projects = changed.Projects[:len(changed.Projects)-1]

	res, err := New(store, changed, quietLogger()).Run(context.Background(), config.SeedModeReconcile)
	require.NoError(t, err)
	assert.Equal(t, "seed revision changed", res.Reason)
	assert.Equal(t, int64(1), res.Pruned)
	assert.Equal(t, len(changed.Projects), res.Counts.Projects)
	assert.NotContains(t, store.data.projects, dropped)
	assert.Len(t, store.data.runs, 2)
}

func TestSeeder_ResetKeepsExtraRows(t *testing.T) {
	doc := content.MustLoad()
	store := newMemStore()
	s := New(store, doc, quietLogger())

	_, err := s.Run(context.Background(), config.SeedModeReset)
	require.NoError(t, err)
	store.data.skills["Cobol"] = memRow{}

	res, err := s.Run(context.Background(), config.SeedModeReset)
	require.NoError(t, err)
	assert.Equal(t, ActionSkipped, res.Action)
	assert.Equal(t, "content present", res.Reason)
	assert.Contains(t, store.data.skills, "Cobol")
}

func TestSeeder_ResetReplacesRetitledProfile(t *testing.T) {
	doc := content.MustLoad()
	store := newMemStore()
	s := New(store, doc, quietLogger())

	_, err := s.Run(context.Background(), config.SeedModeReset)
	require.NoError(t, err)
	store.data.title = "Old Title"
	store.data.skills["Cobol"] = memRow{}

	res, err := s.Run(context.Background(), config.SeedModeReset)
	require.NoError(t, err)
	assert.Equal(t, ActionSeeded, res.Action)
	assert.Equal(t, "profile title changed", res.Reason)
	assert.Equal(t, doc.Profile.Title, store.data.title)
	assert.NotContains(t, store.data.skills, "Cobol")
	assert.Equal(t, seedCounts(doc), res.Counts)
}

func TestSeeder_OffNeverTouchesStore(t *testing.T) {
	store := newMemStore()
	res, err := New(store, content.MustLoad(), quietLogger()).Run(context.Background(), config.SeedModeOff)
	require.NoError(t, err)
	assert.Equal(t, ActionSkipped, res.Action)
	assert.Equal(t, 0, store.applies)
}

func TestSeeder_FailureRollsBack(t *testing.T) {
	store := newMemStore()
	store.failOn = "skills"

	_, err := New(store, content.MustLoad(), quietLogger()).Run(context.Background(), config.SeedModeReset)
	require.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "seed skills")

	st, _ := store.State(context.Background())
	assert.False(t, st.HasProfile)
	assert.Equal(t, Counts{}, st.Counts)
	assert.Empty(t, store.data.runs)
}

func TestSeeder_CheckErrorAborts(t *testing.T) {
	store := newMemStore()
	store.checkErr = errors.New("schema mismatch: missing column projects.slug")

	_, err := New(store, content.MustLoad(), quietLogger()).Run(context.Background(), config.SeedModeReconcile)
	require.Error(t, err)
	assert.Equal(t, 0, store.applies)
}

func TestNeedsReset(t *testing.T) {
	doc := content.MustLoad()
	full := State{HasProfile: true, ProfileTitle: doc.Profile.Title, Counts: seedCounts(doc)}

	cases := []struct {
		name   string
		mutate func(*State)
		want   bool
	}{
		{"complete", func(*State) {}, false},
		{"extra rows", func(s *State) { s.Counts.Skills += 3; s.Counts.Education += 1 }, false},
		{"one experience is enough", func(s *State) { s.Counts.Experiences = 1 }, false},
		{"no profile", func(s *State) { s.HasProfile = false }, true},
		{"retitled", func(s *State) { s.ProfileTitle = "Other" }, true},
		{"no experiences", func(s *State) { s.Counts.Experiences = 0 }, true},
		{"no projects", func(s *State) { s.Counts.Projects = 0 }, true},
		{"education short", func(s *State) { s.Counts.Education-- }, true},
		{"skills short", func(s *State) { s.Counts.Skills-- }, true},
	}
	for _, tc := range cases {
		st := full
		tc.mutate(&st)
		got, reason := NeedsReset(st, doc)
		assert.Equal(t, tc.want, got, tc.name)
		assert.NotEmpty(t, reason, tc.name)
	}
}

func TestCurrent(t *testing.T) {
	doc := content.MustLoad()
	rev := doc.Checksum()
	st := State{HasProfile: true, ProfileTitle: doc.Profile.Title, Counts: seedCounts(doc), Checksum: rev}

	assert.True(t, Current(st, doc, rev))
	assert.False(t, Current(st, doc, "other"))

	st.Counts.Skills++
	assert.False(t, Current(st, doc, rev))
}
