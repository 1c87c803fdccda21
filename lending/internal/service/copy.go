package service

import (
	"context"

	"github.com/Astemirdum/home-library/lending/internal/availability"
	"github.com/Astemirdum/home-library/lending/internal/errs"
	"github.com/Astemirdum/home-library/lending/internal/loan"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/Astemirdum/home-library/lending/internal/policy"
	"github.com/Astemirdum/home-library/lending/internal/repository"
	"github.com/Astemirdum/home-library/pkg/isbn"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ListCopies filters by availability after the page is read, so a page may
// hold fewer than limit copies.
func (s *Service) ListCopies(ctx context.Context, f model.CopyFilter) (model.ListCopies, error) {
	q := repository.CopyQuery{
		Search:   f.Search,
		BranchID: f.BranchID,
		Page:     f.Page.Normalize(),
	}
	if f.BookID != "" {
		q.BookIDs = []string{f.BookID}
	}
	list, err := s.repo.ListCopies(ctx, q)
	if err != nil {
		return model.ListCopies{}, errors.Wrap(err, "list copies")
	}
	copies, _, err := s.annotate(ctx, list)
	if err != nil {
		return model.ListCopies{}, err
	}
	copies = availability.Filter(copies, availability.Criteria{Available: f.Available})
	return model.ListCopies{Items: copies, Count: len(copies)}, nil
}

// GetCopy returns the copy with its current loan and loan history.
func (s *Service) GetCopy(ctx context.Context, id string) (model.Copy, error) {
	c, err := s.repo.GetCopy(ctx, id)
	if err != nil {
		return model.Copy{}, notFound(err, "copy", id)
	}
	return s.withLoans(ctx, c)
}

func (s *Service) withLoans(ctx context.Context, c model.Copy) (model.Copy, error) {
	byCopy, err := s.repo.LoansByCopies(ctx, []string{c.ID})
	if err != nil {
		return model.Copy{}, errors.Wrap(err, "copy loans")
	}
	loans := loan.WithStatus(byCopy[c.ID], s.today())
	if err = availability.Validate(c.ID, loans); err != nil {
		s.log.Error("availability", zap.Error(err))
	}
	c = availability.Annotate(c, loans)
	c.Loans = loans
	return c, nil
}

// CreateCopy adds a copy to a branch the actor owns. Without a book id the
// book is found by ISBN or created from catalog metadata.
func (s *Service) CreateCopy(ctx context.Context, actor model.Actor, req model.CreateCopyRequest) (model.Copy, error) {
	if err := authenticated(actor); err != nil {
		return model.Copy{}, err
	}
	owner, err := s.repo.GetBranchOwner(ctx, req.BranchID)
	if err != nil {
		return model.Copy{}, notFound(err, "branch", req.BranchID)
	}
	if err = policy.Authorize(actor, policy.CreateCopy, policy.BranchScope(owner)); err != nil {
		return model.Copy{}, err
	}
	bookID, err := s.resolveBook(ctx, req)
	if err != nil {
		return model.Copy{}, err
	}

	c, err := s.repo.CreateCopy(ctx, model.Copy{
		BookID:    bookID,
		BranchID:  req.BranchID,
		Condition: req.Condition,
		Notes:     req.Notes,
		AddedBy:   actor.ID,
	})
	if err != nil {
		return model.Copy{}, errors.Wrap(err, "create copy")
	}
	return availability.Annotate(c, nil), nil
}

func (s *Service) resolveBook(ctx context.Context, req model.CreateCopyRequest) (string, error) {
	if req.BookID != nil && *req.BookID != "" {
		b, err := s.repo.GetBook(ctx, *req.BookID)
		if err != nil {
			return "", notFound(err, "book", *req.BookID)
		}
		return b.ID, nil
	}
	if req.ISBN == nil || isbn.Normalize(*req.ISBN) == "" {
		return "", errors.Wrap(errs.ErrValidation, "either bookId or isbn must be provided")
	}
	code := isbn.Normalize(*req.ISBN)

	b, err := s.repo.GetBookByISBN(ctx, code)
	switch {
	case err == nil:
		return b.ID, nil
	case !errors.Is(err, errs.ErrNotFound):
		return "", errors.Wrap(err, "get book by isbn")
	}

	meta, ok := s.enricher.Lookup(ctx, code)
	if !ok {
		return "", errors.Wrapf(errs.ErrValidation, "could not find metadata for isbn %s, create the book manually", code)
	}
	b, err = s.repo.CreateBook(ctx, bookFromMetadata(code, meta))
	if errors.Is(err, errs.ErrConflict) {
		// created concurrently by another request
		b, err = s.repo.GetBookByISBN(ctx, code)
	}
	if err != nil {
		return "", errors.Wrap(err, "create book")
	}
	return b.ID, nil
}

func bookFromMetadata(code string, m *isbn.Metadata) model.CreateBookRequest {
	return model.CreateBookRequest{
		ISBN:        &code,
		Title:       m.Title,
		Author:      m.Author,
		CoverURL:    m.CoverURL,
		Publisher:   m.Publisher,
		PublishYear: m.PublishYear,
		PageCount:   m.PageCount,
		Description: m.Description,
	}
}

func (s *Service) copyOwner(ctx context.Context, actor model.Actor, action policy.Action, id string) error {
	if err := authenticated(actor); err != nil {
		return err
	}
	scope, err := s.repo.GetCopyScope(ctx, id)
	if err != nil {
		return notFound(err, "copy", id)
	}
	return policy.Authorize(actor, action, policy.BranchScope(scope.BranchOwnerID))
}

func (s *Service) UpdateCopy(ctx context.Context, actor model.Actor, id string, req model.UpdateCopyRequest) (model.Copy, error) {
	if err := s.copyOwner(ctx, actor, policy.UpdateCopy, id); err != nil {
		return model.Copy{}, err
	}
	if req.Empty() {
		return model.Copy{}, errors.Wrap(errs.ErrValidation, "no fields to update")
	}
	c, err := s.repo.UpdateCopy(ctx, id, req)
	if err != nil {
		return model.Copy{}, notFound(err, "copy", id)
	}
	return s.withLoans(ctx, c)
}

// DeleteCopy removes the copy together with its loan history.
func (s *Service) DeleteCopy(ctx context.Context, actor model.Actor, id string) error {
	if err := s.copyOwner(ctx, actor, policy.DeleteCopy, id); err != nil {
		return err
	}
	return notFound(s.repo.DeleteCopy(ctx, id), "copy", id)
}
