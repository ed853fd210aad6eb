package usecase

import (
	"context"
	"errors"
	"log"
	"reflect"
	"strings"

	"portfolio-api/internal/domain/portfolio"
	"portfolio-api/internal/domain/showcase"
	"portfolio-api/internal/repository"

	"github.com/go-playground/validator/v10"
)

type ContactInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

type ContactUsecase interface {
	Submit(ctx context.Context, in ContactInput) (portfolio.ContactMessage, error)
	Draft(ctx context.Context, in ContactInput) (showcase.MailDraft, error)
}

type Contact struct {
	repo     repository.ContactRepository
	profiles repository.PortfolioRepository
	to       string
	fallback string
	validate *validator.Validate
	logger   *log.Logger
}

// NewContactUsecase wires the contact flow. Drafts are addressed to `to` when
// set, otherwise to the stored profile email, otherwise to fallback.
func NewContactUsecase(
	repo repository.ContactRepository,
	profiles repository.PortfolioRepository,
	to string,
	fallback string,
	logger *log.Logger,
) *Contact {
	if logger == nil {
		logger = log.Default()
	}
	return &Contact{
		repo:     repo,
		profiles: profiles,
		to:       strings.TrimSpace(to),
		fallback: strings.TrimSpace(fallback),
		validate: newValidator(),
		logger:   logger,
	}
}

func (u *Contact) Submit(ctx context.Context, in ContactInput) (portfolio.ContactMessage, error) {
	in, err := u.check(in)
	if err != nil {
		return portfolio.ContactMessage{}, err
	}

	msg, err := u.repo.CreateContactMessage(ctx, repository.ContactMessageInput{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	})
	if err != nil {
		u.logger.Printf("[Contact] create contact message: %v", err)
		return portfolio.ContactMessage{}, ErrInternal
	}
	return msg, nil
}

// Draft builds the mail client link for a contact request. Nothing is sent or stored.
func (u *Contact) Draft(ctx context.Context, in ContactInput) (showcase.MailDraft, error) {
	in, err := u.check(in)
	if err != nil {
		return showcase.MailDraft{}, err
	}

	to, err := u.recipient(ctx)
	if err != nil {
		return showcase.MailDraft{}, err
	}
	return showcase.NewMailDraft(to, in.Name, in.Email, in.Message), nil
}

func (u *Contact) recipient(ctx context.Context) (string, error) {
	if u.to != "" {
		return u.to, nil
	}
	if u.profiles != nil {
		p, found, err := u.profiles.GetProfile(ctx)
		if err != nil {
			u.logger.Printf("[Contact] resolve contact recipient: %v", err)
			return "", ErrInternal
		}
		if found && strings.TrimSpace(p.Email) != "" {
			return p.Email, nil
		}
	}
	if u.fallback == "" {
		return "", ErrInternal
	}
	return u.fallback, nil
}

func (u *Contact) check(in ContactInput) (ContactInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)

	if err := u.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return ContactInput{}, &ValidationError{Fields: fields}
		}
		return ContactInput{}, ErrInvalidInput
	}
	return in, nil
}

// newValidator reports field names by their json tag.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
