package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/google/uuid"
)

var bookColumns = []string{
	"id", "isbn", "title", "author", "cover_url", "publisher",
	"publish_year", "page_count", "description", "created_at",
}

func (r *repository) ListBooks(ctx context.Context, search string, p model.Page) ([]model.Book, error) {
	q := qb.Select(bookColumns...).
		From(booksTableName).
		OrderBy("title", "id")
	if search != "" {
		q = q.Where(ilike(search, "title", "author"))
	}
	return collectAll[model.Book](ctx, r.db, page(q, p))
}

func (r *repository) GetBook(ctx context.Context, id string) (model.Book, error) {
	return collectOne[model.Book](ctx, r.db, qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		Limit(1))
}

func (r *repository) GetBookByISBN(ctx context.Context, isbn string) (model.Book, error) {
	return collectOne[model.Book](ctx, r.db, qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"isbn": isbn}).
		Limit(1))
}

func (r *repository) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	return collectOne[model.Book](ctx, r.db, qb.Insert(booksTableName).
		Columns("id", "isbn", "title", "author", "cover_url", "publisher", "publish_year", "page_count", "description").
		Values(uuid.NewString(), req.ISBN, req.Title, req.Author, req.CoverURL, req.Publisher, req.PublishYear, req.PageCount, req.Description).
		Suffix("returning "+joinColumns(bookColumns)))
}

// DeleteBook removes the book with its copies and their loans.
func (r *repository) DeleteBook(ctx context.Context, id string) error {
	n, err := exec(ctx, r.db, qb.Delete(booksTableName).Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if n == 0 {
		return errNotFound("book", id)
	}
	return nil
}
