package service

import (
	"context"

	"github.com/Astemirdum/home-library/lending/internal/availability"
	"github.com/Astemirdum/home-library/lending/internal/errs"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/Astemirdum/home-library/lending/internal/policy"
	"github.com/Astemirdum/home-library/lending/internal/repository"
	"github.com/Astemirdum/home-library/pkg/isbn"
	"github.com/pkg/errors"
)

// ListBooks returns books with their copies. With a branch or availability
// filter only matching copies are kept and books left without copies dropped.
func (s *Service) ListBooks(ctx context.Context, f model.BookFilter) (model.ListBooks, error) {
	books, err := s.repo.ListBooks(ctx, f.Search, f.Page.Normalize())
	if err != nil {
		return model.ListBooks{}, errors.Wrap(err, "list books")
	}
	if len(books) == 0 {
		return model.ListBooks{Items: []model.Book{}}, nil
	}
	ids := make([]string, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	list, err := s.repo.ListCopies(ctx, repository.CopyQuery{BookIDs: ids})
	if err != nil {
		return model.ListBooks{}, errors.Wrap(err, "book copies")
	}
	copies, _, err := s.annotate(ctx, list)
	if err != nil {
		return model.ListBooks{}, err
	}

	filtered := f.BranchID != "" || f.Available != nil
	copies = availability.Filter(copies, availability.Criteria{BranchID: f.BranchID, Available: f.Available})
	byBook := make(map[string][]model.Copy, len(books))
	for _, c := range copies {
		byBook[c.BookID] = append(byBook[c.BookID], c)
	}

	out := make([]model.Book, 0, len(books))
	for _, b := range books {
		b.Copies = byBook[b.ID]
		if filtered && len(b.Copies) == 0 {
			continue
		}
		out = append(out, b)
	}
	return model.ListBooks{Items: out, Count: len(out)}, nil
}

func (s *Service) GetBook(ctx context.Context, id string) (model.Book, error) {
	b, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return model.Book{}, notFound(err, "book", id)
	}
	list, err := s.repo.ListCopies(ctx, repository.CopyQuery{BookIDs: []string{id}})
	if err != nil {
		return model.Book{}, errors.Wrap(err, "book copies")
	}
	if b.Copies, _, err = s.annotate(ctx, list); err != nil {
		return model.Book{}, err
	}
	return b, nil
}

// LookupISBN previews catalog metadata without storing it.
func (s *Service) LookupISBN(ctx context.Context, raw string) (isbn.Metadata, error) {
	code := isbn.Normalize(raw)
	if code == "" {
		return isbn.Metadata{}, errors.Wrap(errs.ErrValidation, "isbn is required")
	}
	meta, ok := s.enricher.Lookup(ctx, code)
	if !ok {
		return isbn.Metadata{}, errors.Wrapf(errs.ErrNotFound, "book for isbn %s", code)
	}
	return *meta, nil
}

func (s *Service) CreateBook(ctx context.Context, actor model.Actor, req model.CreateBookRequest) (model.Book, error) {
	if err := policy.Authorize(actor, policy.CreateBook, policy.Scope{}); err != nil {
		return model.Book{}, err
	}
	if req.ISBN != nil {
		code := isbn.Normalize(*req.ISBN)
		if code == "" {
			req.ISBN = nil
		} else {
			req.ISBN = &code
			existing, err := s.repo.GetBookByISBN(ctx, code)
			if err == nil {
				return model.Book{}, errors.Wrapf(errs.ErrConflict, "book with isbn %s already exists: %s", code, existing.ID)
			}
			if !errors.Is(err, errs.ErrNotFound) {
				return model.Book{}, errors.Wrap(err, "get book by isbn")
			}
		}
	}
	b, err := s.repo.CreateBook(ctx, req)
	if err != nil {
		return model.Book{}, errors.Wrap(err, "create book")
	}
	return b, nil
}

// DeleteBook removes the book and, by cascade, its copies and their loans.
func (s *Service) DeleteBook(ctx context.Context, actor model.Actor, id string) error {
	if err := policy.Authorize(actor, policy.DeleteBook, policy.Scope{}); err != nil {
		return err
	}
	return notFound(s.repo.DeleteBook(ctx, id), "book", id)
}
