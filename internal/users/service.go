package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftboard/internal/apperr"
	"github.com/2beens/liftboard/internal/auth"
	"github.com/2beens/liftboard/internal/lifts"
	"github.com/2beens/liftboard/internal/telemetry/metrics"
	"github.com/2beens/liftboard/internal/telemetry/tracing"
	"github.com/2beens/liftboard/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=users_mocks_test.go -package=users_test

type usersRepo interface {
	Create(ctx context.Context, user User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type tokenGateway interface {
	Issue(userID uuid.UUID, username string) (string, time.Time, error)
	Revoke(ctx context.Context, identity auth.Identity) error
}

type liftsLister interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]lifts.Lift, error)
}

type profileBuilder interface {
	BuildProfile(ctx context.Context, ownerID uuid.UUID, params lifts.ProfileParams) (*lifts.Profile, error)
}

type Service struct {
	repo           usersRepo
	tokens         tokenGateway
	lifts          liftsLister
	profiles       profileBuilder
	metricsManager *metrics.Manager
	nowFunc        func() time.Time
}

func NewService(
	repo usersRepo,
	tokens tokenGateway,
	liftLister liftsLister,
	profiles profileBuilder,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:           repo,
		tokens:         tokens,
		lifts:          liftLister,
		profiles:       profiles,
		metricsManager: metricsManager,
		nowFunc:        time.Now,
	}
}

// SignUp creates the user and logs them in.
func (s *Service) SignUp(ctx context.Context, credentials Credentials) (_ *TokenResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.signUp")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	credentials = credentials.normalized()
	if err := credentials.validate(); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("user.name", credentials.Username))

	existing, err := s.repo.FindByUsername(ctx, credentials.Username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, apperr.Dependency(err, "find user")
	}
	if existing != nil {
		return nil, apperr.Duplicate("username already taken")
	}

	passwordHash, err := pkg.HashPassword(credentials.Password)
	if err != nil {
		return nil, apperr.Dependency(err, "hash password")
	}

	user := User{
		ID:           uuid.New(),
		Username:     credentials.Username,
		PasswordHash: passwordHash,
		CreatedAt:    s.nowFunc().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, apperr.Duplicate("username already taken")
		}
		return nil, apperr.Dependency(err, "create user")
	}

	s.metricsManager.CounterSignUps.Inc()
	log.Infof("new user signed up: %s [%s]", user.Username, user.ID)

	return s.issueToken(user)
}

func (s *Service) Login(ctx context.Context, credentials Credentials) (_ *TokenResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	credentials = credentials.normalized()
	if err := credentials.validate(); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("user.name", credentials.Username))

	user, err := s.repo.FindByUsername(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.metricsManager.CounterLogins.WithLabelValues("unknown_user").Inc()
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Dependency(err, "find user")
	}

	if !pkg.CheckPasswordHash(credentials.Password, user.PasswordHash) {
		s.metricsManager.CounterLogins.WithLabelValues("wrong_password").Inc()
		log.Warnf("failed login attempt for user [%s]", user.Username)
		return nil, apperr.Auth("invalid credentials")
	}

	tokenResp, err := s.issueToken(*user)
	if err != nil {
		return nil, err
	}

	s.metricsManager.CounterLogins.WithLabelValues("ok").Inc()
	return tokenResp, nil
}

// Logout revokes the token the caller authenticated with.
func (s *Service) Logout(ctx context.Context, identity auth.Identity) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.logout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.tokens.Revoke(ctx, identity); err != nil {
		return err
	}
	log.Debugf("user [%s] logged out", identity.Username)
	return nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (_ *UserWithLifts, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.getByID")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, findErr(err)
	}
	return s.withLifts(ctx, user)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (_ *UserWithLifts, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.getByUsername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, findErr(err)
	}
	return s.withLifts(ctx, user)
}

func (s *Service) ProfileByID(ctx context.Context, id uuid.UUID, params lifts.ProfileParams) (_ *ProfileResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.profileByID")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, findErr(err)
	}
	return s.profile(ctx, user, params)
}

func (s *Service) ProfileByUsername(ctx context.Context, username string, params lifts.ProfileParams) (_ *ProfileResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.profileByUsername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, findErr(err)
	}
	return s.profile(ctx, user, params)
}

func (s *Service) withLifts(ctx context.Context, user *User) (*UserWithLifts, error) {
	userLifts, err := s.lifts.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &UserWithLifts{
		User:  *user,
		Lifts: userLifts,
	}, nil
}

func (s *Service) profile(ctx context.Context, user *User, params lifts.ProfileParams) (*ProfileResponse, error) {
	profile, err := s.profiles.BuildProfile(ctx, user.ID, params)
	if err != nil {
		return nil, err
	}
	return &ProfileResponse{
		Username: user.Username,
		Profile:  profile,
	}, nil
}

func (s *Service) issueToken(user User) (*TokenResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, apperr.Dependency(err, "issue token")
	}
	return &TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func findErr(err error) error {
	if errors.Is(err, ErrUserNotFound) {
		return apperr.NotFound("user not found")
	}
	return apperr.Dependency(err, "find user")
}
