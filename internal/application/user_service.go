package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-registration/config"
	"github.com/oksasatya/go-user-registration/internal/domain/entity"
	repo "github.com/oksasatya/go-user-registration/internal/domain/repository"
	"github.com/oksasatya/go-user-registration/pkg/helpers"
	"github.com/oksasatya/go-user-registration/pkg/mailer"
	mailtpl "github.com/oksasatya/go-user-registration/pkg/mailer/templates"
)

// EmailPublisher enqueues email jobs. *helpers.RabbitPublisher satisfies it.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserIndexer keeps the user search index in sync.
type UserIndexer interface {
	IndexUser(ctx context.Context, u *entity.User) error
	SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error)
}

// Observer records CreateUser outcomes. *metrics.Registration satisfies it.
type Observer interface {
	ObserveCreateUser(start time.Time, outcome string)
}

// RegistrationInput is the raw, untrusted registration form. Every field may
// be empty; nothing is trusted until the validators pass.
type RegistrationInput struct {
	Username   string
	Password   string
	RePassword string
	Email      string
	FirstName  string
	LastName   string
}

type Service struct {
	Repo      repo.UserRepository
	Publisher EmailPublisher
	Indexer   UserIndexer
	Metrics   Observer
	Cfg       *config.Config
	Logger    *logrus.Logger

	now func() time.Time
}

func NewService(repo repo.UserRepository, pub EmailPublisher, indexer UserIndexer, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		Repo:      repo,
		Publisher: pub,
		Indexer:   indexer,
		Cfg:       cfg,
		Logger:    logger,
		now:       time.Now,
	}
}

// CreateUser validates username, passwords and email in that order, stopping
// at the first failure, then persists the user. Validation errors are returned
// unchanged. Storage errors are wrapped; storage uniqueness remains the
// authoritative guard when two registrations race past validation.
func (s *Service) CreateUser(ctx context.Context, in RegistrationInput) (_ *entity.User, err error) {
	if s.Metrics != nil {
		start := time.Now()
		defer func() { s.Metrics.ObserveCreateUser(start, Outcome(err)) }()
	}

	username, err := s.ValidateUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	password, err := s.ValidatePasswords(in.Password, in.RePassword)
	if err != nil {
		return nil, err
	}
	email, err := s.ValidateUserEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Username:  username,
		Password:  password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     email,
	}
	if err = s.Repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	helpers.LogInfo(s.Logger, "user registered", logrus.Fields{"user_id": u.ID, "username": u.Username})

	s.afterCreate(ctx, u)
	return u, nil
}

// Outcome names the result of a CreateUser call for logs and metrics:
// "success", a lower-cased validation kind, "duplicate_username",
// "duplicate_email" or "storage_error".
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	if k, ok := KindOf(err); ok {
		return strings.ToLower(string(k))
	}
	switch {
	case errors.Is(err, repo.ErrDuplicateUsername):
		return "duplicate_username"
	case errors.Is(err, repo.ErrDuplicateEmail):
		return "duplicate_email"
	}
	return "storage_error"
}

// afterCreate runs best-effort side effects; failures are only logged.
func (s *Service) afterCreate(ctx context.Context, u *entity.User) {
	if s.Publisher != nil && (s.Cfg == nil || s.Cfg.MailSendEnabled) {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailtpl.Welcome,
			Data: mailtpl.NewWelcomeData(s.Cfg, u.FirstName, u.LastName, u.Email,
				mailtpl.WithUsername(u.Username),
				mailtpl.WithTime(s.clock()),
			),
		}
		if err := s.Publisher.PublishJSON(ctx, job); err != nil {
			helpers.LogWarn(s.Logger, "publish welcome email failed", err, logrus.Fields{"user_id": u.ID})
		}
	}
	if s.Indexer != nil {
		if err := s.Indexer.IndexUser(ctx, u); err != nil {
			helpers.LogWarn(s.Logger, "index user failed", err, logrus.Fields{"user_id": u.ID})
		}
	}
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// GetUser returns a stored user by id.
func (s *Service) GetUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && u == nil) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// SearchUsers queries the user index. Without an indexer the result is empty.
func (s *Service) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.Indexer == nil {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	return s.Indexer.SearchUsers(ctx, q, size)
}
