package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftboard/internal/apperr"
	"github.com/2beens/liftboard/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=gateway_mocks_test.go -package=auth_test

const DefaultTokenTTL = 24 * time.Hour

var signingMethod = jwt.SigningMethodHS256

type revocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Gateway issues and verifies signed session tokens.
type Gateway struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	revoker revocationStore
	nowFunc func() time.Time
	jtiFunc func() string
}

func NewGateway(secret, issuer string, ttl time.Duration, revoker revocationStore) (*Gateway, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	if issuer == "" {
		return nil, errors.New("token issuer is required")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &Gateway{
		secret:  []byte(secret),
		issuer:  issuer,
		ttl:     ttl,
		revoker: revoker,
		nowFunc: time.Now,
		jtiFunc: uuid.NewString,
	}, nil
}

// Issue signs a token for the user, valid for the gateway TTL.
func (g *Gateway) Issue(userID uuid.UUID, username string) (string, time.Time, error) {
	now := g.nowFunc()
	expiresAt := now.Add(g.ttl)

	claims := Claims{
		UserID:   userID.String(),
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        g.jtiFunc(),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, signing method, issuer, expiry and revocation.
// A bad or revoked token is an apperr auth error. An unreachable revocation
// store is a dependency error and the token is not accepted.
func (g *Gateway) Verify(ctx context.Context, token string) (_ Identity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.gateway.verify")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	claims, err := g.parse(token)
	if err != nil {
		log.Tracef("token rejected: %s", err)
		return Identity{}, apperr.Wrap(apperr.KindAuth, err, "invalid token")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Identity{}, apperr.Wrap(apperr.KindAuth, err, "invalid token")
	}

	if g.revoker != nil {
		revoked, err := g.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return Identity{}, apperr.Dependency(err, "token check failed")
		}
		if revoked {
			return Identity{}, apperr.Auth("token revoked")
		}
	}

	return Identity{
		UserID:    userID,
		Username:  claims.Username,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke invalidates a verified identity's token until it expires.
func (g *Gateway) Revoke(ctx context.Context, identity Identity) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.gateway.revoke")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if g.revoker == nil {
		return errors.New("token revocation not configured")
	}
	ttl := identity.ExpiresAt.Sub(g.nowFunc())
	if err := g.revoker.Revoke(ctx, identity.TokenID, ttl); err != nil {
		return apperr.Dependency(err, "revoke token")
	}
	return nil
}

func (g *Gateway) parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != signingMethod {
				return nil, fmt.Errorf("unexpected signing method %s", t.Header["alg"])
			}
			return g.secret, nil
		},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(g.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(g.nowFunc),
	)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, errors.New("token id missing")
	}
	return claims, nil
}
