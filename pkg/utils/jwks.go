package utils

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

type JWKSOptions struct {
	URL               string
	Issuer            string
	AuthorizedParties []string
	RefreshInterval   time.Duration
}

// JWKSVerifier validates Clerk session tokens against the instance's JWKS endpoint.
type JWKSVerifier struct {
	jwks    *keyfunc.JWKS
	issuer  string
	parties []string
}

func NewJWKSVerifier(ctx context.Context, opts JWKSOptions, log zerolog.Logger) (*JWKSVerifier, error) {
	interval := opts.RefreshInterval
	if interval <= 0 {
		interval = time.Hour
	}

	jwks, err := keyfunc.Get(opts.URL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   interval,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Error().Err(err).Str("jwks_url", opts.URL).Msg("jwks refresh error")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}

	return &JWKSVerifier{jwks: jwks, issuer: opts.Issuer, parties: opts.AuthorizedParties}, nil
}

func (v *JWKSVerifier) Verify(tokenString string) (string, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(5 * time.Second),
	}
	if v.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.issuer))
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.jwks.Keyfunc, parserOpts...)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	// Clerk puts the requesting origin in azp
	if len(v.parties) > 0 {
		if azp, _ := claims["azp"].(string); azp != "" && !slices.Contains(v.parties, azp) {
			return "", fmt.Errorf("%w: unauthorized party %q", ErrUnauthenticated, azp)
		}
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	}
	return sub, nil
}

// Close stops the background key refresh.
func (v *JWKSVerifier) Close() {
	v.jwks.EndBackground()
}
