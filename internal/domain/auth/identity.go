package auth

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
	"github.com/officehub/officehub-backend-go/internal/domain/user"
)

// Identity is the caller resolved from the verified access token.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   user.Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == user.RoleAdmin
}

// IdentityFromContext resolves the current caller from the JWT claims
// placed on the request context by the jwtauth verifier. The role claim
// is parsed against the closed enum; an unknown role is treated as
// unauthenticated rather than passed through.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, ErrUnauthenticated
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, ErrUnauthenticated
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return Identity{}, ErrUnauthenticated
	}
	role, ok := user.ParseRole(roleStr)
	if !ok {
		return Identity{}, ErrUnauthenticated
	}

	identity := Identity{
		UserID: userID,
		Role:   role,
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		identity.Name = name
	}

	return identity, nil
}
