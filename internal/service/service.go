package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/samandr77/microservices/advances/internal/dashboard"
	"github.com/samandr77/microservices/advances/internal/entity"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/service.go -package=mocks -typed

type Records interface {
	List(ctx context.Context) ([]entity.Record, error)
	Create(ctx context.Context, f entity.Fields) (entity.Record, error)
	Update(ctx context.Context, id string, p entity.Patch) (entity.Record, error)
	Delete(ctx context.Context, id string) error
}

type Users interface {
	FindUser(ctx context.Context, username, password string) (entity.User, error)
}

type Service struct {
	records  Records
	users    Users
	validate *validator.Validate
}

func New(records Records, users Users) *Service {
	return &Service{
		records:  records,
		users:    users,
		validate: newValidator(),
	}
}

type credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Authenticate looks the user up by exact username and password. Unknown
// users and wrong passwords both yield entity.ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (entity.User, error) {
	err := s.validateStruct(credentials{Username: username, Password: password})
	if err != nil {
		return entity.User{}, err
	}

	user, err := s.users.FindUser(ctx, username, password)
	if err != nil {
		return entity.User{}, fmt.Errorf("authenticate %q: %w", username, err)
	}

	slog.InfoContext(ctx, "user authenticated", slog.String("username", user.Username), slog.String("role", user.Role.String()))

	return user, nil
}

func (s *Service) Records(ctx context.Context) ([]entity.Record, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	return records, nil
}

// CreateRecord stores f as given. Coercion of malformed values has already
// happened while decoding; form rules are checked by ValidateRecordForm.
func (s *Service) CreateRecord(ctx context.Context, f entity.Fields) (entity.Record, error) {
	rec, err := s.records.Create(ctx, f)
	if err != nil {
		return entity.Record{}, fmt.Errorf("create record: %w", err)
	}

	slog.InfoContext(ctx, "record created", slog.String("id", rec.ID), slog.String("reg_no", rec.Fields.RegNo))

	return rec, nil
}

// UpdateRecord sends only the fields set in p. Fields left out keep their
// stored values.
func (s *Service) UpdateRecord(ctx context.Context, id string, p entity.Patch) (entity.Record, error) {
	err := validateRecordID(id)
	if err != nil {
		return entity.Record{}, err
	}

	rec, err := s.records.Update(ctx, id, p)
	if err != nil {
		return entity.Record{}, fmt.Errorf("update record %q: %w", id, err)
	}

	slog.InfoContext(ctx, "record updated", slog.String("id", rec.ID))

	return rec, nil
}

// CloseBill records the final bill date and leaves every other field alone.
func (s *Service) CloseBill(ctx context.Context, id, date string) (entity.Record, error) {
	err := validateRecordID(id)
	if err != nil {
		return entity.Record{}, err
	}

	err = s.validate.Var(date, "required,datetime="+entity.DateLayout)
	if err != nil {
		return entity.Record{}, &entity.ValidationError{Fields: map[string]string{entity.KeyBillClosed: messageFor(err)}}
	}

	rec, err := s.records.Update(ctx, id, entity.CloseBillPatch(date))
	if err != nil {
		return entity.Record{}, fmt.Errorf("close bill of record %q: %w", id, err)
	}

	slog.InfoContext(ctx, "bill closed", slog.String("id", rec.ID), slog.String("date", date))

	return rec, nil
}

func (s *Service) DeleteRecord(ctx context.Context, id string) error {
	err := validateRecordID(id)
	if err != nil {
		return err
	}

	err = s.records.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete record %q: %w", id, err)
	}

	slog.InfoContext(ctx, "record deleted", slog.String("id", id))

	return nil
}

// View returns the filtered and sorted records together with the aggregates
// of the full list.
func (s *Service) View(ctx context.Context, q entity.ViewQuery) (entity.View, error) {
	err := q.Validate()
	if err != nil {
		return entity.View{}, err
	}

	records, err := s.Records(ctx)
	if err != nil {
		return entity.View{}, err
	}

	return dashboard.Compute(records, q), nil
}

func validateRecordID(id string) error {
	if strings.TrimSpace(id) == "" || strings.Contains(id, "/") {
		return fmt.Errorf("%w: invalid record id %q", entity.ErrInvalidArgument, id)
	}

	return nil
}
