package service

import (
	"context"

	"github.com/Astemirdum/home-library/lending/internal/availability"
	"github.com/Astemirdum/home-library/lending/internal/errs"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/Astemirdum/home-library/lending/internal/policy"
	"github.com/Astemirdum/home-library/lending/internal/repository"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

func (s *Service) ListBranches(ctx context.Context) (model.ListBranches, error) {
	branches, err := s.repo.ListBranches(ctx)
	if err != nil {
		return model.ListBranches{}, errors.Wrap(err, "list branches")
	}
	if branches == nil {
		branches = []model.Branch{}
	}
	return model.ListBranches{Items: branches}, nil
}

// GetBranch returns the branch with copy statistics.
func (s *Service) GetBranch(ctx context.Context, id string) (model.Branch, error) {
	var (
		branch model.Branch
		copies []model.Copy
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		branch, err = s.repo.GetBranch(gCtx, id)
		return notFound(err, "branch", id)
	})
	g.Go(func() error {
		list, err := s.repo.ListCopies(gCtx, repository.CopyQuery{BranchID: id})
		if err != nil {
			return errors.Wrap(err, "branch copies")
		}
		copies, _, err = s.annotate(gCtx, list)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Branch{}, err
	}
	st := availability.Stats(copies)
	branch.Stats = &st
	return branch, nil
}

func (s *Service) CreateBranch(ctx context.Context, actor model.Actor, req model.CreateBranchRequest) (model.Branch, error) {
	if err := policy.Authorize(actor, policy.CreateBranch, policy.Scope{}); err != nil {
		return model.Branch{}, err
	}
	if _, err := s.repo.GetProfile(ctx, req.OwnerID); err != nil {
		return model.Branch{}, notFound(err, "owner", req.OwnerID)
	}
	branch, err := s.repo.CreateBranch(ctx, req)
	if err != nil {
		return model.Branch{}, errors.Wrap(err, "create branch")
	}
	return branch, nil
}

// UpdateBranch changes name and address. The owner is fixed at creation.
func (s *Service) UpdateBranch(ctx context.Context, actor model.Actor, id string, req model.UpdateBranchRequest) (model.Branch, error) {
	if err := authenticated(actor); err != nil {
		return model.Branch{}, err
	}
	owner, err := s.repo.GetBranchOwner(ctx, id)
	if err != nil {
		return model.Branch{}, notFound(err, "branch", id)
	}
	if err = policy.Authorize(actor, policy.UpdateBranch, policy.BranchScope(owner)); err != nil {
		return model.Branch{}, err
	}
	if req.Empty() {
		return model.Branch{}, errors.Wrap(errs.ErrValidation, "no fields to update")
	}
	branch, err := s.repo.UpdateBranch(ctx, id, req)
	if err != nil {
		return model.Branch{}, notFound(err, "branch", id)
	}
	return branch, nil
}
