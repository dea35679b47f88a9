package auth_fx

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"travelplan/internal/config"
	"travelplan/pkg/utils"
)

var Module = fx.Provide(ProvideTokenVerifier)

// ProvideTokenVerifier verifies Clerk tokens via JWKS when CLERK_JWKS_URL is set, HS256 otherwise.
func ProvideTokenVerifier(lc fx.Lifecycle, cfg *config.Config, log zerolog.Logger) (utils.TokenVerifier, error) {
	if !cfg.UsesJWKS() {
		log.Warn().Msg("CLERK_JWKS_URL not set, verifying HS256 tokens with JWT_SECRET")
		return utils.NewHMACVerifier(cfg.JWTSecret), nil
	}

	verifier, err := utils.NewJWKSVerifier(context.Background(), utils.JWKSOptions{
		URL:               cfg.ClerkJWKSURL,
		Issuer:            cfg.ClerkIssuer,
		AuthorizedParties: cfg.ClerkAuthorizedParties,
		RefreshInterval:   cfg.JWKSRefreshInterval,
	}, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			verifier.Close()
			return nil
		},
	})
	return verifier, nil
}
