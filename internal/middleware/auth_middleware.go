package middleware

import (
	"crypto/subtle"
	"errors"
	"strings"

	"microsite-shop/internal/model"
	"microsite-shop/internal/repository"
	"microsite-shop/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// CredentialKind is what an Authorization header turned out to be.
type CredentialKind int

const (
	CredentialNone CredentialKind = iota
	CredentialLegacyAdmin
	CredentialSession
)

func (k CredentialKind) String() string {
	switch k {
	case CredentialLegacyAdmin:
		return "legacy_admin"
	case CredentialSession:
		return "session"
	default:
		return "none"
	}
}

// Credential is the resolved caller. UserID, Email and Role are set for sessions only.
type Credential struct {
	Kind   CredentialKind
	UserID uint
	Email  string
	Role   string
}

func (c Credential) IsAdmin() bool {
	switch c.Kind {
	case CredentialLegacyAdmin:
		return true
	case CredentialSession:
		return c.Role == model.RoleAdmin
	}
	return false
}

var ErrInvalidCredential = errors.New("invalid credential")

const credentialKey = "credential"

// Authenticator maps bearer tokens to credentials.
type Authenticator struct {
	tokens      *jwt.Manager
	legacyToken string
	users       repository.UserRepository
}

func NewAuthenticator(tokens *jwt.Manager, legacyToken string, users repository.UserRepository) *Authenticator {
	return &Authenticator{tokens: tokens, legacyToken: legacyToken, users: users}
}

// Resolve inspects an Authorization header value. An empty header is CredentialNone
// without error; anything present but unusable is ErrInvalidCredential.
func (a *Authenticator) Resolve(header string) (Credential, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Credential{Kind: CredentialNone}, nil
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return Credential{Kind: CredentialNone}, ErrInvalidCredential
	}
	token := parts[1]

	if a.legacyToken != "" && subtle.ConstantTimeCompare([]byte(token), []byte(a.legacyToken)) == 1 {
		return Credential{Kind: CredentialLegacyAdmin, Role: model.RoleAdmin}, nil
	}

	claims, err := a.tokens.ValidateToken(token)
	if err != nil {
		return Credential{Kind: CredentialNone}, ErrInvalidCredential
	}

	// The stored role wins over the one baked into the token.
	user, err := a.users.FindByID(claims.UserID)
	if err != nil {
		return Credential{Kind: CredentialNone}, ErrInvalidCredential
	}

	return Credential{
		Kind:   CredentialSession,
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

// RequireAuth rejects requests without a credential (401) or with an unusable one (403).
func (a *Authenticator) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cred, err := a.Resolve(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		}
		if cred.Kind == CredentialNone {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		c.Locals(credentialKey, cred)
		return c.Next()
	}
}

// OptionalAuth records a credential when one resolves and otherwise continues as a guest.
func (a *Authenticator) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cred, err := a.Resolve(c.Get(fiber.HeaderAuthorization)); err == nil {
			c.Locals(credentialKey, cred)
		}
		return c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CredentialFrom(c).IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		}
		return c.Next()
	}
}

// CredentialFrom returns the credential stored by the auth middleware, CredentialNone if absent.
func CredentialFrom(c *fiber.Ctx) Credential {
	if cred, ok := c.Locals(credentialKey).(Credential); ok {
		return cred
	}
	return Credential{Kind: CredentialNone}
}
