package jwt

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/officehub/officehub-backend-go/internal/domain/user"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

type Service interface {
	GenerateAccessToken(userID string, email string, name string, role user.Role) (token string, expiresAt int64, err error)

	// GenerateRefreshToken mints a refresh token carrying a fresh jti;
	// the returned tokenID is what revocation is keyed on.
	GenerateRefreshToken(userID string) (token string, tokenID string, expiresAt int64, err error)

	// ParseRefreshToken verifies signature and expiry and returns the
	// subject and jti. Access tokens are rejected.
	ParseRefreshToken(token string) (userID string, tokenID string, err error)

	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
}

type JWTService struct {
	secretKey                  string
	accessTokenExpirationTime  string
	refreshTokenExpirationTime string
	tokenAuth                  *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                  secretKey,
		accessTokenExpirationTime:  accessTokenExpirationTime,
		refreshTokenExpirationTime: refreshTokenExpirationTime,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(userID string, email string, name string, role user.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"name":    name,
		"role":    string(role),
		"type":    "access",
		"exp":     expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, tokenID string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.refreshTokenExpirationTime)
	if err != nil {
		return "", "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()
	tokenID = uuid.NewString()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"jti":     tokenID,
		"exp":     expiresAt,
		"type":    "refresh",
	})
	return tokenString, tokenID, expiresAt, err
}

func (j *JWTService) ParseRefreshToken(token string) (userID string, tokenID string, err error) {
	parsed, err := jwtauth.VerifyToken(j.tokenAuth, token)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return "", "", ErrTokenExpired
		}
		return "", "", ErrInvalidToken
	}

	private := parsed.PrivateClaims()
	if tokenType, _ := private["type"].(string); tokenType != "refresh" {
		return "", "", ErrInvalidToken
	}

	userID, _ = private["user_id"].(string)
	tokenID = parsed.JwtID()
	if userID == "" || tokenID == "" {
		return "", "", ErrInvalidToken
	}
	return userID, tokenID, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
}
