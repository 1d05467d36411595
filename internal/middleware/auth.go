package middleware

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"dcover/internal/auth"
	apperrors "dcover/internal/errors"
	"dcover/internal/model"
	"dcover/internal/repository"
)

const (
	tokenContextKey  = "token"
	claimsContextKey = "claims"
	userContextKey   = "currentUser"
)

// Authenticator validates bearer tokens and loads the caller's user row on
// every request.
type Authenticator struct {
	users  repository.UserRepository
	tokens auth.TokenStoreInterface
	secret []byte
}

// NewAuthenticator creates a new authenticator.
func NewAuthenticator(users repository.UserRepository, tokens auth.TokenStoreInterface, secret []byte) *Authenticator {
	return &Authenticator{users: users, tokens: tokens, secret: secret}
}

// Required rejects requests without a valid token for an active user.
func (a *Authenticator) Required() echo.MiddlewareFunc {
	verify := echojwt.WithConfig(a.jwtConfig(false))
	load := a.loadUser(true)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(load(next))
	}
}

// Optional resolves the caller when a usable token is presented and
// otherwise continues anonymously.
func (a *Authenticator) Optional() echo.MiddlewareFunc {
	verify := echojwt.WithConfig(a.jwtConfig(true))
	load := a.loadUser(false)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(load(next))
	}
}

func (a *Authenticator) jwtConfig(optional bool) echojwt.Config {
	return echojwt.Config{
		SigningKey:    a.secret,
		SigningMethod: echojwt.AlgorithmHS256,
		ContextKey:    tokenContextKey,
		TokenLookup:   "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ContinueOnIgnoredError: optional,
		ErrorHandler: func(c echo.Context, err error) error {
			if optional {
				return nil
			}
			if errors.Is(err, echojwt.ErrJWTMissing) {
				return apperrors.Unauthorized("Authentication required")
			}
			return apperrors.Unauthorized("Invalid or expired token")
		},
	}
}

func (a *Authenticator) loadUser(required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reject := func(err error) error {
				if required {
					return err
				}
				return next(c)
			}

			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok {
				return reject(apperrors.Unauthorized("Authentication required"))
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok || claims.UserID == 0 {
				return reject(apperrors.Unauthorized("Invalid token"))
			}

			ctx := c.Request().Context()
			revoked, err := a.tokens.IsRevoked(ctx, claims.ID)
			if err != nil {
				return err
			}
			if revoked {
				return reject(apperrors.Unauthorized("Token has been revoked"))
			}

			user, err := a.users.FindByID(ctx, claims.UserID)
			if err != nil {
				if repository.IsNotFound(err) {
					return reject(apperrors.Unauthorized("User not found"))
				}
				return err
			}
			if user.Suspended {
				return reject(apperrors.Forbidden("Account suspended"))
			}

			c.Set(claimsContextKey, claims)
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireAdmin must run after Required.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return apperrors.Unauthorized("Authentication required")
		}
		if !user.IsAdmin() {
			return apperrors.Forbidden("Admin access required")
		}
		return next(c)
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

// CurrentClaims returns the validated token claims, or nil.
func CurrentClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsContextKey).(*auth.Claims)
	return claims
}
