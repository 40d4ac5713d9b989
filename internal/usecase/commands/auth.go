package commands

import (
	"context"
	"log/slog"

	"brow-studio-api/internal/domain/user"
	reqdto "brow-studio-api/internal/handler/dto/request"
	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/pkg/clock"
	"brow-studio-api/internal/pkg/errs"
	"brow-studio-api/internal/pkg/jwt"
	"brow-studio-api/internal/pkg/password"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrEmailTaken           = errs.New("email already registered")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	UserID      uuid.UUID
	Role        user.Role
	AccessToken string
}

type AuthCommands interface {
	Register(ctx context.Context, req reqdto.RegisterRequest) (*LoginResult, error)
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
}

type authCommandsImpl struct {
	userRepo   UserRepository
	jwtService *jwt.Service
	clock      clock.Clock
	logger     *slog.Logger
}

func NewAuthCommands(userRepo UserRepository, jwtService *jwt.Service, clk clock.Clock, logger *slog.Logger) AuthCommands {
	return &authCommandsImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		clock:      clk,
		logger:     logger,
	}
}

// Register creates a customer account and logs it in. Admin accounts are
// provisioned out of band.
func (a *authCommandsImpl) Register(ctx context.Context, req reqdto.RegisterRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	hash, err := password.HashPassword(credentials.Password().Value())
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	newUser, err := user.NewUser(credentials.Email(), req.Name, hash, user.RoleCustomer)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := a.userRepo.Create(ctx, newUser); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return a.issueToken(newUser)
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	existing, err := a.userRepo.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if !existing.IsActive() {
		return nil, ErrUserInactive
	}
	if err := password.ComparePassword(existing.PasswordHash(), credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := a.userRepo.UpdateLastLogin(ctx, existing.ID(), a.clock.Now()); err != nil {
		// not critical, the login itself succeeded
		a.logger.Warn("failed to update last login",
			slog.String("user_id", existing.ID().String()),
			slog.String("error", err.Error()),
		)
	}

	return a.issueToken(existing)
}

func (a *authCommandsImpl) issueToken(u *user.User) (*LoginResult, error) {
	token, err := a.jwtService.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &LoginResult{
		UserID:      u.ID(),
		Role:        u.Role(),
		AccessToken: token,
	}, nil
}
