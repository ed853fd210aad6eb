package usecase

import (
	"context"
	"log"

	"portfolio-api/internal/content"
	"portfolio-api/internal/domain/showcase"
	"portfolio-api/internal/repository"
)

type ShowcaseUsecase interface {
	Build(ctx context.Context) (showcase.View, error)
}

type Showcase struct {
	repo   repository.PortfolioRepository
	doc    content.Document
	logger *log.Logger
}

func NewShowcaseUsecase(repo repository.PortfolioRepository, doc content.Document, logger *log.Logger) *Showcase {
	if logger == nil {
		logger = log.Default()
	}
	return &Showcase{repo: repo, doc: doc, logger: logger}
}

func (u *Showcase) Build(ctx context.Context) (showcase.View, error) {
	var in showcase.Input

	p, found, err := u.repo.GetProfile(ctx)
	if err != nil {
		return u.fail("profile", err)
	}
	if found {
		in.Profile = &p
	}
	if in.Experiences, err = u.repo.ListExperiences(ctx); err != nil {
		return u.fail("experiences", err)
	}
	if in.Education, err = u.repo.ListEducation(ctx); err != nil {
		return u.fail("education", err)
	}
	if in.Projects, err = u.repo.ListProjects(ctx); err != nil {
		return u.fail("projects", err)
	}
	if in.Skills, err = u.repo.ListSkills(ctx); err != nil {
		return u.fail("skills", err)
	}

	return showcase.Build(in, u.doc), nil
}

func (u *Showcase) fail(what string, err error) (showcase.View, error) {
	u.logger.Printf("[Showcase] build showcase: load %s: %v", what, err)
	return showcase.View{}, ErrInternal
}
