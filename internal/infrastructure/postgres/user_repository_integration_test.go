//go:build integration

package postgres_test

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/oksasatya/go-user-registration/internal/domain/entity"
	"github.com/oksasatya/go-user-registration/internal/domain/repository"
	"github.com/oksasatya/go-user-registration/internal/infrastructure/postgres"
)

type UserRepositoryIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	repo      *postgres.UserRepository
	closePool func()
}

func TestUserRepositoryIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UserRepositoryIntegrationSuite))
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "db", "migrations")
}

func (s *UserRepositoryIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	ctr, err := tcpostgres.Run(s.ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("appdb"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = ctr

	dsn, err := ctr.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)
	s.Require().NoError(postgres.RunMigrations(dsn, migrationsDir(), nil))

	pool, err := postgres.NewPool(s.ctx, dsn, 4, 0, time.Hour)
	s.Require().NoError(err)
	s.closePool = pool.Close
	s.repo = postgres.NewUserRepository(pool)
}

func (s *UserRepositoryIntegrationSuite) TearDownSuite() {
	if s.closePool != nil {
		s.closePool()
	}
	if s.container != nil {
		_ = testcontainers.TerminateContainer(s.container)
	}
}

func (s *UserRepositoryIntegrationSuite) TestCreateAndRead() {
	u := &entity.User{Username: "user", Password: "123456", FirstName: "fName", LastName: "lName", Email: "users@domain.com"}
	s.Require().NoError(s.repo.Create(s.ctx, u))
	s.NotEmpty(u.ID)
	s.False(u.CreatedAt.IsZero())

	byID, err := s.repo.GetByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(u.Username, byID.Username)
	s.Equal(u.Email, byID.Email)
	s.Equal("fName", byID.FirstName)

	byName, err := s.repo.FindByUsername(s.ctx, "user")
	s.Require().NoError(err)
	s.Equal(u.ID, byName.ID)

	names, err := s.repo.GetAllUsernames(s.ctx)
	s.Require().NoError(err)
	s.Contains(names, "user")

	users, err := s.repo.GetAllEmails(s.ctx)
	s.Require().NoError(err)
	found := false
	for _, x := range users {
		if x.Email == "users@domain.com" {
			found = true
		}
	}
	s.True(found)
}

func (s *UserRepositoryIntegrationSuite) TestUniqueConstraints() {
	s.Require().NoError(s.repo.Create(s.ctx, &entity.User{Username: "dup", Password: "123456", Email: "dup@domain.com"}))

	err := s.repo.Create(s.ctx, &entity.User{Username: "dup", Password: "123456", Email: "dup2@domain.com"})
	s.ErrorIs(err, repository.ErrDuplicateUsername)

	err = s.repo.Create(s.ctx, &entity.User{Username: "dup2", Password: "123456", Email: "dup@domain.com"})
	s.ErrorIs(err, repository.ErrDuplicateEmail)
}

func (s *UserRepositoryIntegrationSuite) TestNotFound() {
	_, err := s.repo.GetByID(s.ctx, "not-a-uuid")
	s.ErrorIs(err, repository.ErrNotFound)

	_, err = s.repo.FindByUsername(s.ctx, "nobody")
	s.ErrorIs(err, repository.ErrNotFound)
}
