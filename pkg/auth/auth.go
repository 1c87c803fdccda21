package auth

import (
	"context"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const defaultLeeway = 30 * time.Second

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

type Config struct {
	Secret   string        `envconfig:"AUTH_JWT_SECRET"`
	Issuer   string        `envconfig:"AUTH_JWT_ISSUER"`
	Audience string        `envconfig:"AUTH_JWT_AUDIENCE" default:"authenticated"`
	Leeway   time.Duration `envconfig:"AUTH_JWT_LEEWAY" default:"30s"`
}

// Subject is the identity carried by an accepted token.
type Subject struct {
	ID    string
	Email string
}

type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 access tokens signed with a shared secret.
type Verifier struct {
	secret []byte
	opts   []jwt.ParserOption
}

func NewVerifier(cfg Config) (*Verifier, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, errors.New("token verifier requires a secret")
	}
	leeway := cfg.Leeway
	if leeway <= 0 {
		leeway = defaultLeeway
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(leeway),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	return &Verifier{secret: []byte(secret), opts: opts}, nil
}

func (v *Verifier) Verify(_ context.Context, token string) (Subject, error) {
	claims := new(Claims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, v.opts...)
	if err != nil || !parsed.Valid {
		return Subject{}, errors.Wrap(ErrInvalidToken, errMessage(err))
	}
	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return Subject{}, errors.Wrap(ErrInvalidToken, "subject missing")
	}
	return Subject{ID: sub, Email: claims.Email}, nil
}

func errMessage(err error) string {
	if err == nil {
		return "token not valid"
	}
	return err.Error()
}
