package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/officehub/officehub-backend-go/internal/domain/auth"
	"github.com/officehub/officehub-backend-go/internal/domain/user"
	"github.com/officehub/officehub-backend-go/internal/pkg/database"
	"github.com/officehub/officehub-backend-go/internal/pkg/jwt"
	"github.com/officehub/officehub-backend-go/internal/pkg/oauth"
	"github.com/officehub/officehub-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	auth.SessionRepository
	jwt.Service
	google oauth.GoogleService
}

func NewAuthService(db *database.DB, userRepository user.UserRepository, sessionRepository auth.SessionRepository, jwtService jwt.Service, googleService oauth.GoogleService) auth.AuthService {
	return &AuthServiceImpl{
		db:                db,
		UserRepository:    userRepository,
		SessionRepository: sessionRepository,
		Service:           jwtService,
		google:            googleService,
	}
}

// issueTokens mints the access/refresh pair and persists the session,
// all inside one transaction.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse

	err := postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.TxContext(ctx, tx)

		var err error
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Name, userData.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}

		var tokenID string
		tokenResponse.RefreshToken, tokenID, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		_, err = a.SessionRepository.Create(txCtx, auth.Session{
			UserID:    userData.ID,
			TokenID:   tokenID,
			IPAddress: session.IPAddress,
			UserAgent: session.UserAgent,
			ExpiresAt: time.Unix(tokenResponse.RefreshTokenExpiresIn, 0),
		})
		if err != nil {
			return fmt.Errorf("failed to save refresh token session: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	tokenResponse.Name = userData.Name
	tokenResponse.Role = string(userData.Role)
	return tokenResponse, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !userData.IsActive {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData, session)
}

// Refresh implements auth.AuthService. The presented token must verify
// AND its session must still be live; a revoked session means a stolen
// or logged-out token and is refused even before expiry.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	userID, tokenID, err := a.Service.ParseRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.TokenResponse{}, auth.ErrTokenExpired
		}
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	session, err := a.SessionRepository.GetByTokenID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get session: %w", err)
	}
	if session.Revoked() {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	if !userData.IsActive {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	// Rotate: retire the presented token, issue a fresh pair.
	if err := a.SessionRepository.Revoke(ctx, tokenID, time.Now()); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to rotate session: %w", err)
	}

	return a.issueTokens(ctx, userData, auth.SessionTrackingRequest{
		IPAddress: session.IPAddress,
		UserAgent: session.UserAgent,
	})
}

// Logout implements auth.AuthService. An unparsable token is treated as
// already logged out rather than an error.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	_, tokenID, err := a.Service.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil
	}

	if err := a.SessionRepository.Revoke(ctx, tokenID, time.Now()); err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// LoginWithGoogleCode implements auth.AuthService. Accounts are
// provisioned by an admin first; an unknown Google email is refused
// rather than auto-registered.
func (a *AuthServiceImpl) LoginWithGoogleCode(ctx context.Context, code string, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	token, err := a.google.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to exchange google code: %w", err)
	}

	info, err := a.google.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to verify google user: %w", err)
	}

	userData, err := a.UserRepository.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrOAuthEmailNotFound
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if !userData.IsActive {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	if userData.OAuthGoogle == nil {
		userData, err = a.UserRepository.LinkGoogleAccount(ctx, info.GoogleID, info.Email)
		if err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to link google account: %w", err)
		}
	}

	return a.issueTokens(ctx, userData, session)
}
