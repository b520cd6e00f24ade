// Package middleware holds Fiber middleware for the fact service.
package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gofiber/fiber/v3"

	"yorkfacts/internal/config"
)

// tokenVerifier is satisfied by *oidc.IDTokenVerifier.
type tokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)
}

// ModeratorAuth guards moderation routes with OIDC bearer ID tokens.
type ModeratorAuth struct {
	verifier tokenVerifier
	logger   *slog.Logger
}

// NewModeratorAuth discovers the issuer configured in cfg and builds a
// verifier for its client id.
func NewModeratorAuth(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ModeratorAuth, error) {
	provider, err := oidc.NewProvider(ctx, cfg.OIDCIssuer)
	if err != nil {
		return nil, err
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.OIDCClientID})
	return &ModeratorAuth{verifier: verifier, logger: logger}, nil
}

// RequireBearer rejects requests without a valid bearer ID token and
// stores the token subject in c.Locals("moderator").
func (m *ModeratorAuth) RequireBearer(c fiber.Ctx) error {
	raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
	}

	token, err := m.verifier.Verify(c.Context(), raw)
	if err != nil {
		m.logger.Warn("rejected bearer token", "ip", c.IP(), "error", err)
		return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
	}

	c.Locals("moderator", token.Subject)
	return c.Next()
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
