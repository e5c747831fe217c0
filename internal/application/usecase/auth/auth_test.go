package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/devfolio/devfolio-api/internal/domain/user"
	"github.com/devfolio/devfolio-api/pkg/apperror"
	"github.com/devfolio/devfolio-api/pkg/auth"
	"github.com/devfolio/devfolio-api/pkg/logger"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
	saveErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*user.User)}
}

func (f *fakeUserRepo) Save(_ context.Context, u *user.User) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return apperror.NewConflict("user", "email", u.Email)
	}
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	return u, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", id.String())
}

func (f *fakeUserRepo) ConfirmEmail(_ context.Context, id uuid.UUID, at time.Time) error {
	for _, u := range f.byEmail {
		if u.ID == id {
			u.EmailConfirmedAt = &at
			return nil
		}
	}
	return apperror.NewNotFound("user", id.String())
}

type AuthUseCaseTestSuite struct {
	suite.Suite
	repo   *fakeUserRepo
	jwtSvc *auth.JWTService
	log    logger.Logger
}

func (s *AuthUseCaseTestSuite) SetupTest() {
	s.repo = newFakeUserRepo()
	s.jwtSvc = auth.NewJWTService("test-secret-key", time.Hour)
	s.log = logger.NewZapLogger("development")
}

func TestAuthUseCases(t *testing.T) {
	suite.Run(t, new(AuthUseCaseTestSuite))
}

func (s *AuthUseCaseTestSuite) Test_Register_Success() {
	uc := NewRegisterUseCase(s.repo, s.jwtSvc, s.log)

	out, err := uc.Execute(context.Background(), RegisterInput{
		Email:    "  Jordan@Example.COM ",
		Password: "supersecret",
		Name:     "Jordan",
	})
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, out.UserID)
	s.NotEmpty(out.ConfirmToken)

	// Email is normalized before storage.
	stored, err := s.repo.FindByEmail(context.Background(), "jordan@example.com")
	s.Require().NoError(err)
	s.False(stored.EmailConfirmed())
	s.NotEqual("supersecret", stored.PasswordHash)
}

func (s *AuthUseCaseTestSuite) Test_Register_RejectsBadEmail() {
	uc := NewRegisterUseCase(s.repo, s.jwtSvc, s.log)

	_, err := uc.Execute(context.Background(), RegisterInput{Email: "not-an-email", Password: "supersecret"})
	s.True(errors.Is(err, apperror.ErrInvalidInput))
}

func (s *AuthUseCaseTestSuite) Test_Register_RejectsShortPassword() {
	uc := NewRegisterUseCase(s.repo, s.jwtSvc, s.log)

	_, err := uc.Execute(context.Background(), RegisterInput{Email: "a@b.com", Password: "short"})
	s.True(errors.Is(err, apperror.ErrInvalidInput))
}

func (s *AuthUseCaseTestSuite) Test_Register_DuplicateEmailConflicts() {
	uc := NewRegisterUseCase(s.repo, s.jwtSvc, s.log)
	input := RegisterInput{Email: "a@b.com", Password: "supersecret"}

	_, err := uc.Execute(context.Background(), input)
	s.Require().NoError(err)

	_, err = uc.Execute(context.Background(), input)
	s.True(errors.Is(err, apperror.ErrConflict))
}

func (s *AuthUseCaseTestSuite) register(email, password string) *RegisterOutput {
	out, err := NewRegisterUseCase(s.repo, s.jwtSvc, s.log).Execute(context.Background(), RegisterInput{
		Email:    email,
		Password: password,
	})
	s.Require().NoError(err)
	return out
}

func (s *AuthUseCaseTestSuite) Test_Login_Success() {
	s.register("a@b.com", "supersecret")
	uc := NewLoginUseCase(s.repo, s.jwtSvc, s.log)

	out, err := uc.Execute(context.Background(), LoginInput{Email: "a@b.com", Password: "supersecret"})
	s.Require().NoError(err)

	claims, err := s.jwtSvc.ValidateToken(out.AccessToken)
	s.Require().NoError(err)
	s.False(claims.EmailConfirmed)
}

func (s *AuthUseCaseTestSuite) Test_Login_WrongPassword() {
	s.register("a@b.com", "supersecret")
	uc := NewLoginUseCase(s.repo, s.jwtSvc, s.log)

	_, err := uc.Execute(context.Background(), LoginInput{Email: "a@b.com", Password: "wrong"})
	s.True(errors.Is(err, apperror.ErrUnauthorized))
}

func (s *AuthUseCaseTestSuite) Test_Login_UnknownEmailIsUnauthorizedNotNotFound() {
	uc := NewLoginUseCase(s.repo, s.jwtSvc, s.log)

	_, err := uc.Execute(context.Background(), LoginInput{Email: "ghost@b.com", Password: "whatever"})
	s.True(errors.Is(err, apperror.ErrUnauthorized))
	s.False(errors.Is(err, apperror.ErrNotFound))
}

func (s *AuthUseCaseTestSuite) Test_ConfirmEmail_FullFlow() {
	reg := s.register("a@b.com", "supersecret")
	confirmUC := NewConfirmEmailUseCase(s.repo, s.jwtSvc, s.log)

	err := confirmUC.Execute(context.Background(), ConfirmEmailInput{Token: reg.ConfirmToken})
	s.Require().NoError(err)

	stored, err := s.repo.FindByEmail(context.Background(), "a@b.com")
	s.Require().NoError(err)
	s.True(stored.EmailConfirmed())

	// A fresh login now carries the confirmed flag.
	out, err := NewLoginUseCase(s.repo, s.jwtSvc, s.log).Execute(context.Background(), LoginInput{
		Email: "a@b.com", Password: "supersecret",
	})
	s.Require().NoError(err)
	claims, err := s.jwtSvc.ValidateToken(out.AccessToken)
	s.Require().NoError(err)
	s.True(claims.EmailConfirmed)
}

func (s *AuthUseCaseTestSuite) Test_ConfirmEmail_RejectsAccessToken() {
	// An access token is not a confirmation token even though both are JWTs
	// signed with the same key.
	reg := s.register("a@b.com", "supersecret")
	accessToken, err := s.jwtSvc.GenerateToken(reg.UserID, false)
	s.Require().NoError(err)

	confirmUC := NewConfirmEmailUseCase(s.repo, s.jwtSvc, s.log)
	err = confirmUC.Execute(context.Background(), ConfirmEmailInput{Token: accessToken})
	s.True(errors.Is(err, apperror.ErrInvalidInput))
}

func (s *AuthUseCaseTestSuite) Test_ConfirmEmail_GarbageToken() {
	confirmUC := NewConfirmEmailUseCase(s.repo, s.jwtSvc, s.log)
	err := confirmUC.Execute(context.Background(), ConfirmEmailInput{Token: "garbage"})
	s.True(errors.Is(err, apperror.ErrInvalidInput))
}
