package service

import (
	"context"

	"github.com/Astemirdum/home-library/lending/internal/errs"
	"github.com/Astemirdum/home-library/lending/internal/loan"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/Astemirdum/home-library/lending/internal/policy"
	"github.com/pkg/errors"
)

// ListLoans returns the loans visible to actor, newest first.
func (s *Service) ListLoans(ctx context.Context, actor model.Actor, f model.LoanFilter) (model.ListLoans, error) {
	if err := policy.Authorize(actor, policy.ListLoans, policy.Scope{}); err != nil {
		return model.ListLoans{}, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return model.ListLoans{}, errors.Wrapf(errs.ErrValidation, "unknown status %q", f.Status)
	}
	f = policy.LoanListScope(actor, f)
	f.Page = f.Page.Normalize()

	today := s.today()
	loans, err := s.repo.ListLoans(ctx, f, model.DateOf(today))
	if err != nil {
		return model.ListLoans{}, errors.Wrap(err, "list loans")
	}
	if loans == nil {
		loans = []model.Loan{}
	}
	loans = loan.WithStatus(loans, today)
	return model.ListLoans{Items: loans, Count: len(loans)}, nil
}

func (s *Service) GetLoan(ctx context.Context, actor model.Actor, id string) (model.Loan, error) {
	if err := authenticated(actor); err != nil {
		return model.Loan{}, err
	}
	l, err := s.repo.GetLoan(ctx, id)
	if err != nil {
		return model.Loan{}, notFound(err, "loan", id)
	}
	if err = policy.Authorize(actor, policy.ReadLoan, policy.LoanScope(l)); err != nil {
		return model.Loan{}, err
	}
	l.Status = loan.Status(l, s.today())
	return l, nil
}

// CreateLoan checks a copy out to a borrower. A copy already on loan yields
// errs.ErrConflict; the attempt is not retried.
func (s *Service) CreateLoan(ctx context.Context, actor model.Actor, req model.CreateLoanRequest) (model.Loan, error) {
	if err := authenticated(actor); err != nil {
		return model.Loan{}, err
	}
	scope, err := s.repo.GetCopyScope(ctx, req.CopyID)
	if err != nil {
		return model.Loan{}, notFound(err, "copy", req.CopyID)
	}
	if err = policy.Authorize(actor, policy.CreateLoan, policy.BranchScope(scope.BranchOwnerID)); err != nil {
		return model.Loan{}, err
	}
	if err = loan.ValidateDueDate(req.DueDate); err != nil {
		return model.Loan{}, err
	}
	if _, err = s.repo.GetProfile(ctx, req.BorrowerID); err != nil {
		return model.Loan{}, notFound(err, "borrower", req.BorrowerID)
	}

	now := s.now()
	l, err := s.repo.CreateLoan(ctx, req, now)
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return model.Loan{}, errors.Wrapf(errs.ErrConflict, "copy %s is already on loan", req.CopyID)
		}
		return model.Loan{}, errors.Wrap(err, "create loan")
	}
	l.Status = loan.Status(l, now.UTC())
	s.publish(ctx, model.LoanCreated, l, now)
	return l, nil
}

// ReturnLoan closes an active loan. Notes are replaced only when given.
func (s *Service) ReturnLoan(ctx context.Context, actor model.Actor, id string, req model.ReturnLoanRequest) (model.Loan, error) {
	if err := authenticated(actor); err != nil {
		return model.Loan{}, err
	}
	l, err := s.repo.GetLoan(ctx, id)
	if err != nil {
		return model.Loan{}, notFound(err, "loan", id)
	}
	if err = policy.Authorize(actor, policy.ReturnLoan, policy.LoanScope(l)); err != nil {
		return model.Loan{}, err
	}
	if err = loan.CanReturn(l); err != nil {
		return model.Loan{}, err
	}

	now := s.now()
	l, err = s.repo.ReturnLoan(ctx, id, now, req.Notes)
	if err != nil {
		if errors.Is(err, errs.ErrAlreadyReturned) {
			return model.Loan{}, err
		}
		return model.Loan{}, errors.Wrap(err, "return loan")
	}
	l.Status = loan.Status(l, now.UTC())
	s.publish(ctx, model.LoanReturned, l, now)
	return l, nil
}
