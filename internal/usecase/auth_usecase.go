package usecase

import (
	"context"
	"strings"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/pkg/errors"
	"fad/pkg/logger"
)

type AuthUseCase struct {
	profileRepo  repository.ProfileRepository
	firebaseAuth FirebaseAuthClient
}

func NewAuthUseCase(profileRepo repository.ProfileRepository, firebaseAuth FirebaseAuthClient) *AuthUseCase {
	return &AuthUseCase{
		profileRepo:  profileRepo,
		firebaseAuth: firebaseAuth,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
	FullName string
	Role     string
}

type AuthResult struct {
	Profile      *entity.Profile `json:"profile"`
	Token        string          `json:"token"`
	RefreshToken string          `json:"refresh_token"`
}

// Register creates the auth user, its role claim and its profile. A failure
// part way removes the auth user again.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	role := input.Role
	if role == "" {
		role = entity.RoleBuyer
	}
	if role != entity.RoleBuyer && role != entity.RoleVendor {
		return nil, errors.BadRequest("Role must be buyer or vendor", nil)
	}

	var uid string
	now := timeNow()
	profile := &entity.Profile{
		Email:     input.Email,
		FullName:  input.FullName,
		Username:  strings.TrimPrefix(strings.TrimSpace(input.Username), "@"),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	saga := NewSaga("register").
		Step("create_auth_user", func(ctx context.Context) error {
			id, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, profile.Username)
			if err != nil {
				return errors.BadRequest("Failed to create account", err)
			}
			uid = id
			profile.ID = id
			return nil
		}, func(ctx context.Context) error {
			return uc.firebaseAuth.DeleteUser(ctx, uid)
		}).
		Step("set_role", func(ctx context.Context) error {
			return uc.firebaseAuth.SetRole(ctx, uid, role)
		}, nil).
		Step("create_profile", func(ctx context.Context) error {
			return uc.profileRepo.Create(ctx, profile)
		}, nil)

	if err := saga.Execute(ctx); err != nil {
		return nil, sagaFailure(err)
	}

	token, refreshToken, err := uc.firebaseAuth.SignInWithEmailPassword(ctx, input.Email, input.Password)
	if err != nil {
		// the account exists, the client can log in normally
		logger.Warn("Sign-in after registration failed for %s: %v", uid, err)
	}

	return &AuthResult{
		Profile:      profile,
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, refreshToken, err := uc.firebaseAuth.SignInWithEmailPassword(ctx, email, password)
	if err != nil {
		logger.Info("Login failed for %s: %v", email, err)
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	verified, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}

	profile, err := uc.profileRepo.GetByID(ctx, verified.UID)
	if err != nil {
		return nil, errors.NotFound("Profile", err)
	}

	return &AuthResult{
		Profile:      profile,
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}

func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	token, newRefresh, err := uc.firebaseAuth.RefreshIDToken(ctx, refreshToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid refresh token", err)
	}
	return &AuthResult{Token: token, RefreshToken: newRefresh}, nil
}

// Logout revokes every refresh token of the caller. ID tokens issued before
// this call stop verifying.
func (uc *AuthUseCase) Logout(ctx context.Context, session *entity.Session) error {
	if err := requireSession(session); err != nil {
		return err
	}
	if err := uc.firebaseAuth.RevokeRefreshTokens(ctx, session.UID); err != nil {
		return errors.Internal("Failed to sign out", err)
	}
	return nil
}

func (uc *AuthUseCase) CurrentUser(ctx context.Context, session *entity.Session) (*entity.Profile, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	profile, err := uc.profileRepo.GetByID(ctx, session.UID)
	if err != nil {
		return nil, errors.NotFound("Profile", err)
	}
	return profile, nil
}

// Authenticate turns an ID token into the request session. The profile role
// wins over the token claim so role changes apply without a new token.
func (uc *AuthUseCase) Authenticate(ctx context.Context, idToken string) (*entity.Session, error) {
	verified, err := uc.firebaseAuth.VerifyToken(ctx, idToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}

	session := &entity.Session{
		UID:   verified.UID,
		Email: verified.Email,
		Role:  verified.Role,
	}

	profile, err := uc.profileRepo.GetByID(ctx, verified.UID)
	if err != nil {
		logger.Debug("No profile for %s, using token role", verified.UID)
	} else if profile.Role != "" {
		session.Role = profile.Role
	}
	if session.Role == "" {
		session.Role = entity.RoleBuyer
	}

	return session, nil
}
