package identity

import (
	"context"
	"strings"

	"github.com/Astemirdum/home-library/lending/internal/errs"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/Astemirdum/home-library/pkg/auth"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const bearer = "Bearer "

//go:generate go run github.com/golang/mock/mockgen -source=identity.go -destination=mocks/mock.go

type CredentialVerifier interface {
	Verify(ctx context.Context, token string) (auth.Subject, error)
}

type ProfileStore interface {
	GetProfile(ctx context.Context, id string) (model.Profile, error)
}

type Resolver struct {
	verifier CredentialVerifier
	profiles ProfileStore
	log      *zap.Logger
}

func NewResolver(verifier CredentialVerifier, profiles ProfileStore, log *zap.Logger) *Resolver {
	return &Resolver{
		verifier: verifier,
		profiles: profiles,
		log:      log.Named("identity"),
	}
}

// Resolve turns an Authorization header value into an actor. An empty header
// is anonymous; whether that is enough is up to the caller.
func (r *Resolver) Resolve(ctx context.Context, authorization string) (model.Actor, error) {
	if authorization == "" {
		return model.Anonymous, nil
	}
	if !strings.HasPrefix(authorization, bearer) {
		return model.Anonymous, errors.Wrap(errs.ErrUnauthenticated, "invalid authorization header")
	}
	token := strings.TrimSpace(strings.TrimPrefix(authorization, bearer))
	if token == "" {
		return model.Anonymous, errors.Wrap(errs.ErrUnauthenticated, "empty token")
	}

	sub, err := r.verifier.Verify(ctx, token)
	if err != nil {
		r.log.Debug("token rejected", zap.Error(err))
		return model.Anonymous, errors.Wrap(errs.ErrUnauthenticated, "invalid or expired token")
	}

	actor := model.Actor{ID: sub.ID, Email: sub.Email}
	profile, err := r.profiles.GetProfile(ctx, sub.ID)
	switch {
	case err == nil:
		actor.Role = profile.Role
		if profile.Name != nil {
			actor.Name = *profile.Name
		}
		if actor.Email == "" && profile.Email != nil {
			actor.Email = *profile.Email
		}
	case errors.Is(err, errs.ErrNotFound):
		// authenticated before the profile row exists
		actor.Role = model.RoleBorrower
	default:
		return model.Anonymous, errors.Wrap(err, "get profile")
	}
	if !actor.Role.Valid() {
		return model.Anonymous, errors.Wrapf(errs.ErrInconsistent, "profile %s has role %d", sub.ID, uint8(actor.Role))
	}
	return actor, nil
}
