package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/devfolio/devfolio-api/internal/domain/portfolio"
	"github.com/devfolio/devfolio-api/internal/domain/user"
	"github.com/devfolio/devfolio-api/internal/domain/view"
	"github.com/devfolio/devfolio-api/pkg/apperror"
	"github.com/devfolio/devfolio-api/pkg/logger"
)

type PortfolioRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool        *pgxpool.Pool
	pgContainer   *postgres.PostgresContainer
	testLogger    logger.Logger
	portfolioRepo portfolio.Repository
	userRepo      user.Repository
	viewRepo      view.Repository
	testOwner     *user.User
}

func (s *PortfolioRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	s.testLogger = logger.NewZapLogger("development")

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.portfolioRepo = NewPostgresPortfolioRepo(s.dbPool, s.testLogger)
	s.userRepo = NewPostgresUserRepo(s.dbPool, s.testLogger)
	s.viewRepo = NewPostgresViewRepo(s.dbPool, s.testLogger)

	s.testOwner = &user.User{
		ID:           uuid.New(),
		Email:        "testowner@example.com",
		PasswordHash: "hashedpassword",
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Save(ctx, s.testOwner); err != nil {
		s.T().Fatalf("Failed to seed owner: %s", err)
	}
}

func (s *PortfolioRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestPortfolioRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(PortfolioRepoIntegrationTestSuite))
}

func (s *PortfolioRepoIntegrationTestSuite) newPortfolio(slug string, public bool) *portfolio.Portfolio {
	return &portfolio.Portfolio{
		ID:        uuid.New(),
		UserID:    s.testOwner.ID,
		Name:      "Test Portfolio",
		Bio:       "bio",
		Slug:      slug,
		IsPublic:  public,
		CreatedAt: time.Now().UTC(),
	}
}

func (s *PortfolioRepoIntegrationTestSuite) Test_CreateAndFindPublicBySlug_FullAggregate() {
	ctx := context.Background()
	p := s.newPortfolio("full-aggregate-abc123", true)
	s.Require().NoError(s.portfolioRepo.Create(ctx, p))

	s.Require().NoError(s.portfolioRepo.AddEducation(ctx, &portfolio.Education{
		ID: uuid.New(), PortfolioID: p.ID, Institution: "MIT", Degree: "BSc",
	}))
	s.Require().NoError(s.portfolioRepo.AddEducation(ctx, &portfolio.Education{
		ID: uuid.New(), PortfolioID: p.ID, Institution: "Stanford", Degree: "MSc",
	}))
	s.Require().NoError(s.portfolioRepo.AddExperience(ctx, &portfolio.Experience{
		ID: uuid.New(), PortfolioID: p.ID, Company: "Initech", IsCurrent: true,
	}))
	s.Require().NoError(s.portfolioRepo.AddSkills(ctx, []portfolio.Skill{
		{ID: uuid.New(), PortfolioID: p.ID, Name: "Go", Category: "general"},
		{ID: uuid.New(), PortfolioID: p.ID, Name: "Postgres", Category: "general"},
		{ID: uuid.New(), PortfolioID: p.ID, Name: "Kafka", Category: "general"},
	}))
	s.Require().NoError(s.portfolioRepo.AddProject(ctx, &portfolio.Project{
		ID: uuid.New(), PortfolioID: p.ID, Title: "devfolio", Technologies: []string{"go", "postgres"},
	}))
	s.Require().NoError(s.portfolioRepo.AddSocialLinks(ctx, []portfolio.SocialLink{
		{ID: uuid.New(), PortfolioID: p.ID, Platform: portfolio.PlatformGithub, URL: "https://github.com/x"},
	}))
	email := "contact@example.com"
	s.Require().NoError(s.portfolioRepo.UpsertContactInfo(ctx, &portfolio.ContactInfo{
		PortfolioID: p.ID, Email: &email,
	}))

	agg, err := s.portfolioRepo.FindPublicBySlug(ctx, p.Slug)
	s.Require().NoError(err)

	s.Equal(p.ID, agg.Portfolio.ID)
	s.Len(agg.Education, 2)
	s.Equal("MIT", agg.Education[0].Institution)
	s.Equal("Stanford", agg.Education[1].Institution)
	s.Len(agg.Experience, 1)
	s.Len(agg.Skills, 3)
	s.Len(agg.Projects, 1)
	s.Equal([]string{"go", "postgres"}, agg.Projects[0].Technologies)
	s.Len(agg.SocialLinks, 1)
	s.Equal(portfolio.PlatformGithub, agg.SocialLinks[0].Platform)
	s.Require().NotNil(agg.ContactInfo)
	s.Equal(email, *agg.ContactInfo.Email)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_SlugConflict() {
	ctx := context.Background()
	first := s.newPortfolio("dup-slug-abc123", true)
	s.Require().NoError(s.portfolioRepo.Create(ctx, first))

	dup := s.newPortfolio("dup-slug-abc123", true)
	err := s.portfolioRepo.Create(ctx, dup)
	s.Require().Error(err)
	s.ErrorIs(err, apperror.ErrConflict)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_PrivatePortfolioIsNotFound() {
	ctx := context.Background()
	p := s.newPortfolio("private-one-abc123", false)
	s.Require().NoError(s.portfolioRepo.Create(ctx, p))

	_, err := s.portfolioRepo.FindPublicBySlug(ctx, p.Slug)
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_UnknownSlugIsNotFound() {
	_, err := s.portfolioRepo.FindPublicBySlug(context.Background(), "never-created")
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_UpsertContactInfo_Overwrites() {
	ctx := context.Background()
	p := s.newPortfolio("contact-upsert-abc123", true)
	s.Require().NoError(s.portfolioRepo.Create(ctx, p))

	first := "old@example.com"
	s.Require().NoError(s.portfolioRepo.UpsertContactInfo(ctx, &portfolio.ContactInfo{PortfolioID: p.ID, Email: &first}))

	second := "new@example.com"
	phone := "+1-555-0100"
	s.Require().NoError(s.portfolioRepo.UpsertContactInfo(ctx, &portfolio.ContactInfo{PortfolioID: p.ID, Email: &second, Phone: &phone}))

	agg, err := s.portfolioRepo.FindPublicBySlug(ctx, p.Slug)
	s.Require().NoError(err)
	s.Require().NotNil(agg.ContactInfo)
	s.Equal(second, *agg.ContactInfo.Email)
	s.Equal(phone, *agg.ContactInfo.Phone)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_UpdateScopedToOwner() {
	ctx := context.Background()
	p := s.newPortfolio("update-scope-abc123", true)
	s.Require().NoError(s.portfolioRepo.Create(ctx, p))

	// Another user cannot touch it.
	stranger := *p
	stranger.UserID = uuid.New()
	stranger.Name = "Hijacked"
	s.ErrorIs(s.portfolioRepo.Update(ctx, &stranger), apperror.ErrNotFound)

	p.Name = "Renamed"
	p.IsPublic = false
	s.Require().NoError(s.portfolioRepo.Update(ctx, p))

	// Unpublished means gone from the public path.
	_, err := s.portfolioRepo.FindPublicBySlug(ctx, p.Slug)
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_DeleteCascades() {
	ctx := context.Background()
	p := s.newPortfolio("delete-cascade-abc123", true)
	s.Require().NoError(s.portfolioRepo.Create(ctx, p))
	s.Require().NoError(s.portfolioRepo.AddSkills(ctx, []portfolio.Skill{
		{ID: uuid.New(), PortfolioID: p.ID, Name: "Go", Category: "general"},
	}))

	s.ErrorIs(s.portfolioRepo.Delete(ctx, p.ID, uuid.New()), apperror.ErrNotFound)
	s.Require().NoError(s.portfolioRepo.Delete(ctx, p.ID, s.testOwner.ID))

	var count int
	err := s.dbPool.QueryRow(ctx, `SELECT count(*) FROM skills WHERE portfolio_id = $1`, p.ID).Scan(&count)
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_ListByOwner_NewestFirst() {
	ctx := context.Background()
	older := s.newPortfolio("list-older-abc123", true)
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	s.Require().NoError(s.portfolioRepo.Create(ctx, older))

	newer := s.newPortfolio("list-newer-abc123", false)
	s.Require().NoError(s.portfolioRepo.Create(ctx, newer))

	aggs, err := s.portfolioRepo.ListByOwner(ctx, s.testOwner.ID)
	s.Require().NoError(err)
	s.Require().GreaterOrEqual(len(aggs), 2)

	var olderIdx, newerIdx = -1, -1
	for i, agg := range aggs {
		switch agg.Portfolio.ID {
		case older.ID:
			olderIdx = i
		case newer.ID:
			newerIdx = i
		}
	}
	s.Require().NotEqual(-1, olderIdx)
	s.Require().NotEqual(-1, newerIdx)
	s.Less(newerIdx, olderIdx)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_ViewRepo_Insert() {
	ctx := context.Background()
	p := s.newPortfolio("viewed-abc123", true)
	s.Require().NoError(s.portfolioRepo.Create(ctx, p))

	s.Require().NoError(s.viewRepo.Insert(ctx, &view.PortfolioView{
		ID:          uuid.New(),
		PortfolioID: p.ID,
		ViewerIP:    "203.0.113.9",
		UserAgent:   "curl/8",
		CreatedAt:   time.Now().UTC(),
	}))

	var count int
	err := s.dbPool.QueryRow(ctx, `SELECT count(*) FROM portfolio_views WHERE portfolio_id = $1`, p.ID).Scan(&count)
	s.Require().NoError(err)
	s.Equal(1, count)
}
