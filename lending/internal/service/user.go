package service

import (
	"context"

	"github.com/Astemirdum/home-library/lending/internal/errs"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/Astemirdum/home-library/lending/internal/policy"
	"github.com/pkg/errors"
)

func (s *Service) Me(ctx context.Context, actor model.Actor) (model.Profile, error) {
	if err := policy.Authorize(actor, policy.ReadSelf, policy.Scope{}); err != nil {
		return model.Profile{}, err
	}
	return s.profile(ctx, actor.ID, "profile")
}

func (s *Service) UpdateMe(ctx context.Context, actor model.Actor, req model.UpdateProfileRequest) (model.Profile, error) {
	if err := policy.Authorize(actor, policy.UpdateSelf, policy.Scope{}); err != nil {
		return model.Profile{}, err
	}
	if req.Name == nil {
		return model.Profile{}, errors.Wrap(errs.ErrValidation, "no fields to update")
	}
	p, err := s.repo.SaveProfileName(ctx, actor.ID, actor.Email, *req.Name)
	if err != nil {
		return model.Profile{}, errors.Wrap(err, "save profile")
	}
	return p, nil
}

func (s *Service) ListUsers(ctx context.Context, actor model.Actor, f model.UserFilter) (model.ListUsers, error) {
	if err := policy.Authorize(actor, policy.ReadUsers, policy.Scope{}); err != nil {
		return model.ListUsers{}, err
	}
	f.Page = f.Page.Normalize()
	users, err := s.repo.ListProfiles(ctx, f)
	if err != nil {
		return model.ListUsers{}, errors.Wrap(err, "list profiles")
	}
	if users == nil {
		users = []model.Profile{}
	}
	return model.ListUsers{Items: users, Count: len(users)}, nil
}

func (s *Service) GetUser(ctx context.Context, actor model.Actor, id string) (model.Profile, error) {
	if err := policy.Authorize(actor, policy.ReadUsers, policy.Scope{}); err != nil {
		return model.Profile{}, err
	}
	return s.profile(ctx, id, "user")
}

// UpdateUserRole sets the role of an existing user.
func (s *Service) UpdateUserRole(ctx context.Context, actor model.Actor, id, role string) (model.Profile, error) {
	if err := policy.Authorize(actor, policy.UpdateUserRole, policy.Scope{}); err != nil {
		return model.Profile{}, err
	}
	r, err := model.ParseRole(role)
	if err != nil {
		return model.Profile{}, errors.Wrap(errs.ErrValidation, err.Error())
	}
	if _, err = s.repo.GetProfile(ctx, id); err != nil {
		return model.Profile{}, notFound(err, "user", id)
	}
	p, err := s.repo.UpdateProfileRole(ctx, id, r)
	if err != nil {
		return model.Profile{}, notFound(err, "user", id)
	}
	return p, nil
}

func (s *Service) profile(ctx context.Context, id, what string) (model.Profile, error) {
	p, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return model.Profile{}, notFound(err, what, id)
	}
	if p.Branches, err = s.repo.BranchesByOwner(ctx, id); err != nil {
		return model.Profile{}, errors.Wrap(err, "branches by owner")
	}
	return p, nil
}
