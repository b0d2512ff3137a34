package client

import (
	"context"
	"strings"

	"go.uber.org/zap"

	domain "insurance-brokerage/internal/domain/client"
	"insurance-brokerage/internal/validation"
	"insurance-brokerage/pkg/id"
)

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "client profile has invalid fields" }

type CreateInput struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DocumentNumber string `json:"document_number"`
	BirthDate      string `json:"birth_date"`
}

type Usecase struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewUsecase(r domain.Repository, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, log: log}
}

func (u *Usecase) List(ctx context.Context) ([]domain.Profile, error) {
	return u.repo.List(ctx)
}

func (u *Usecase) Get(ctx context.Context, clientID string) (*domain.Profile, error) {
	return u.repo.GetByClientID(ctx, clientID)
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*domain.Profile, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if fe := check(in); len(fe) > 0 {
		return nil, &ValidationError{Fields: fe}
	}

	p := &domain.Profile{
		ClientID:       id.NewID32(),
		FullName:       in.FullName,
		Email:          in.Email,
		Phone:          in.Phone,
		DocumentNumber: in.DocumentNumber,
		BirthDate:      in.BirthDate,
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	u.log.Info("client created", zap.String("client_id", p.ClientID))
	return p, nil
}

func check(in CreateInput) map[string]string {
	fe := map[string]string{}
	if in.FullName == "" || !validation.IsAlpha(in.FullName) {
		fe["full_name"] = "El nombre solo puede contener letras y espacios."
	}
	if !validation.IsEmail(in.Email) {
		fe["email"] = "Correo electrónico inválido."
	}
	if in.Phone != "" && !validation.IsDigitsOnly(in.Phone) {
		fe["phone"] = "El teléfono solo puede contener dígitos."
	}
	if in.DocumentNumber != "" && !validation.IsDigitsOnly(in.DocumentNumber) {
		fe["document_number"] = "El documento solo puede contener dígitos."
	}
	if in.BirthDate != "" && !validation.IsIsoDate(in.BirthDate) {
		fe["birth_date"] = "Fecha de nacimiento inválida (AAAA-MM-DD)."
	}
	return fe
}
