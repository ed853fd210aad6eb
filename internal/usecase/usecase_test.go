package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"portfolio-api/internal/content"
	"portfolio-api/internal/domain/portfolio"
	"portfolio-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDB = errors.New("db down")

type fakePortfolioRepo struct {
	profile     *portfolio.Profile
	experiences []portfolio.Experience
	education   []portfolio.Education
	projects    []portfolio.Project
	skills      []portfolio.Skill
	err         error
}

func (f fakePortfolioRepo) GetProfile(context.Context) (portfolio.Profile, bool, error) {
	if f.err != nil {
		return portfolio.Profile{}, false, f.err
	}
	if f.profile == nil {
		return portfolio.Profile{}, false, nil
	}
	return *f.profile, true, nil
}

func (f fakePortfolioRepo) ListExperiences(context.Context) ([]portfolio.Experience, error) {
	return f.experiences, f.err
}

func (f fakePortfolioRepo) ListEducation(context.Context) ([]portfolio.Education, error) {
	return f.education, f.err
}

func (f fakePortfolioRepo) ListProjects(context.Context) ([]portfolio.Project, error) {
	return f.projects, f.err
}

func (f fakePortfolioRepo) ListSkills(context.Context) ([]portfolio.Skill, error) {
	return f.skills, f.err
}

type fakeContactRepo struct {
	saved []repository.ContactMessageInput
	err   error
}

func (f *fakeContactRepo) CreateContactMessage(_ context.Context, in repository.ContactMessageInput) (portfolio.ContactMessage, error) {
	if f.err != nil {
		return portfolio.ContactMessage{}, f.err
	}
	f.saved = append(f.saved, in)
	return portfolio.ContactMessage{
		ID:        int64(len(f.saved)),
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: time.Now(),
	}, nil
}

func quiet() *log.Logger { return log.New(io.Discard, "", 0) }

func TestPortfolio_ListsNeverNil(t *testing.T) {
	uc := NewPortfolioUsecase(fakePortfolioRepo{}, quiet())
	ctx := context.Background()

	exps, err := uc.ListExperiences(ctx)
	require.NoError(t, err)
	assert.NotNil(t, exps)

	edu, err := uc.ListEducation(ctx)
	require.NoError(t, err)
	assert.NotNil(t, edu)

	projects, err := uc.ListProjects(ctx)
	require.NoError(t, err)
	assert.NotNil(t, projects)

	skills, err := uc.ListSkills(ctx)
	require.NoError(t, err)
	assert.NotNil(t, skills)

	_, found, err := uc.GetProfile(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPortfolio_StorageErrorsAreInternal(t *testing.T) {
	uc := NewPortfolioUsecase(fakePortfolioRepo{err: errDB}, quiet())
	ctx := context.Background()

	_, _, err := uc.GetProfile(ctx)
	assert.ErrorIs(t, err, ErrInternal)
	_, err = uc.ListProjects(ctx)
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, errDB)
}

func TestContact_SubmitValid(t *testing.T) {
	repo := &fakeContactRepo{}
	uc := NewContactUsecase(repo, nil, "", "me@example.com", quiet())

	msg, err := uc.Submit(context.Background(), ContactInput{Name: " Ada ", Email: "ada@example.com", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), msg.ID)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "Ada", repo.saved[0].Name)
}

func TestContact_SubmitInvalid(t *testing.T) {
	cases := map[string]struct {
		in     ContactInput
		fields []string
	}{
		"bad email":     {ContactInput{Name: "A", Email: "not-an-email", Message: "hi"}, []string{"email"}},
		"missing name":  {ContactInput{Email: "a@example.com", Message: "hi"}, []string{"name"}},
		"blank message": {ContactInput{Name: "A", Email: "a@example.com", Message: "   "}, []string{"message"}},
		"everything":    {ContactInput{}, []string{"name", "email", "message"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &fakeContactRepo{}
			uc := NewContactUsecase(repo, nil, "", "me@example.com", quiet())

			_, err := uc.Submit(context.Background(), tc.in)
			require.ErrorIs(t, err, ErrInvalidInput)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.fields, verr.Fields)
			assert.Empty(t, repo.saved)
		})
	}
}

func TestContact_SubmitStorageFailure(t *testing.T) {
	uc := NewContactUsecase(&fakeContactRepo{err: errDB}, nil, "", "", quiet())
	_, err := uc.Submit(context.Background(), ContactInput{Name: "A", Email: "a@example.com", Message: "hi"})
	require.ErrorIs(t, err, ErrInternal)
}

func TestContact_DraftRecipient(t *testing.T) {
	in := ContactInput{Name: "Ada", Email: "ada@example.com", Message: "hello"}
	stored := fakePortfolioRepo{profile: &portfolio.Profile{Email: "stored@example.com"}}

	d, err := NewContactUsecase(&fakeContactRepo{}, stored, "config@example.com", "doc@example.com", quiet()).Draft(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "config@example.com", d.To)

	d, err = NewContactUsecase(&fakeContactRepo{}, stored, "", "doc@example.com", quiet()).Draft(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "stored@example.com", d.To)
	assert.Equal(t, "Portfolio inquiry from Ada", d.Subject)

	d, err = NewContactUsecase(&fakeContactRepo{}, fakePortfolioRepo{}, "", "doc@example.com", quiet()).Draft(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "doc@example.com", d.To)

	_, err = NewContactUsecase(&fakeContactRepo{}, fakePortfolioRepo{err: errDB}, "", "doc@example.com", quiet()).Draft(context.Background(), in)
	require.ErrorIs(t, err, ErrInternal)
}

func TestContact_DraftDoesNotPersist(t *testing.T) {
	repo := &fakeContactRepo{}
	_, err := NewContactUsecase(repo, nil, "me@example.com", "", quiet()).
		Draft(context.Background(), ContactInput{Name: "A", Email: "a@example.com", Message: "hi"})
	require.NoError(t, err)
	assert.Empty(t, repo.saved)
}

func TestShowcase_Build(t *testing.T) {
	doc := content.MustLoad()
	p := 74
	repo := fakePortfolioRepo{
		profile:     &portfolio.Profile{Name: "Stored Name", Title: doc.Profile.Title, Email: "x@example.com"},
		experiences: []portfolio.Experience{{ID: 1, StartDate: "2020"}, {ID: 2}, {ID: 3}},
		projects: []portfolio.Project{
			{ID: 1, Slug: "unknown", Title: "Side Thing"},
			{ID: 2, Slug: doc.Projects[0].Slug, Title: doc.Projects[0].Title},
		},
		skills: []portfolio.Skill{{Name: "Bash", Category: "also", Proficiency: &p}},
	}

	v, err := NewShowcaseUsecase(repo, doc, quiet()).Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Stored Name", v.Profile.Name)
	assert.Len(t, v.Experiences, 2)
	require.NotEmpty(t, v.Projects)
	assert.Equal(t, doc.Projects[0].Slug, v.Projects[0].Slug)
	assert.Equal(t, "unknown", v.Projects[1].Slug)
	require.Len(t, v.Skills, 1)
	assert.Equal(t, "familiar", string(v.Skills[0].Skills[0].Tier))
}

func TestShowcase_BuildStorageFailure(t *testing.T) {
	_, err := NewShowcaseUsecase(fakePortfolioRepo{err: errDB}, content.MustLoad(), quiet()).Build(context.Background())
	require.ErrorIs(t, err, ErrInternal)
}
