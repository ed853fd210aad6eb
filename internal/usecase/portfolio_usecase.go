package usecase

import (
	"context"
	"log"

	"portfolio-api/internal/domain/portfolio"
	"portfolio-api/internal/repository"
)

type PortfolioUsecase interface {
	GetProfile(ctx context.Context) (portfolio.Profile, bool, error)
	ListExperiences(ctx context.Context) ([]portfolio.Experience, error)
	ListEducation(ctx context.Context) ([]portfolio.Education, error)
	ListProjects(ctx context.Context) ([]portfolio.Project, error)
	ListSkills(ctx context.Context) ([]portfolio.Skill, error)
}

// Portfolio serves the stored content tables as-is.
type Portfolio struct {
	repo   repository.PortfolioRepository
	logger *log.Logger
}

func NewPortfolioUsecase(repo repository.PortfolioRepository, logger *log.Logger) *Portfolio {
	if logger == nil {
		logger = log.Default()
	}
	return &Portfolio{repo: repo, logger: logger}
}

func (u *Portfolio) GetProfile(ctx context.Context) (portfolio.Profile, bool, error) {
	p, found, err := u.repo.GetProfile(ctx)
	if err != nil {
		u.logger.Printf("[Portfolio] get profile: %v", err)
		return portfolio.Profile{}, false, ErrInternal
	}
	return p, found, nil
}

func (u *Portfolio) ListExperiences(ctx context.Context) ([]portfolio.Experience, error) {
	items, err := u.repo.ListExperiences(ctx)
	if err != nil {
		u.logger.Printf("[Portfolio] list experiences: %v", err)
		return nil, ErrInternal
	}
	return nonNilSlice(items), nil
}

func (u *Portfolio) ListEducation(ctx context.Context) ([]portfolio.Education, error) {
	items, err := u.repo.ListEducation(ctx)
	if err != nil {
		u.logger.Printf("[Portfolio] list education: %v", err)
		return nil, ErrInternal
	}
	return nonNilSlice(items), nil
}

func (u *Portfolio) ListProjects(ctx context.Context) ([]portfolio.Project, error) {
	items, err := u.repo.ListProjects(ctx)
	if err != nil {
		u.logger.Printf("[Portfolio] list projects: %v", err)
		return nil, ErrInternal
	}
	return nonNilSlice(items), nil
}

func (u *Portfolio) ListSkills(ctx context.Context) ([]portfolio.Skill, error) {
	items, err := u.repo.ListSkills(ctx)
	if err != nil {
		u.logger.Printf("[Portfolio] list skills: %v", err)
		return nil, ErrInternal
	}
	return nonNilSlice(items), nil
}

func nonNilSlice[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
