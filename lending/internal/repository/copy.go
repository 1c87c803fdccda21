package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var copyColumns = []string{
	"c.id", "c.book_id", "c.branch_id", "c.condition", "c.notes", "c.added_by", "c.created_at",
	"b.title as book_title", "b.author as book_author", "br.name as branch_name",
}

func (r *repository) selectCopies() sq.SelectBuilder {
	return qb.Select(copyColumns...).
		From(copiesTableName + " c").
		Join(fmt.Sprintf("%s b on b.id = c.book_id", booksTableName)).
		Join(fmt.Sprintf("%s br on br.id = c.branch_id", branchesTableName))
}

func (r *repository) ListCopies(ctx context.Context, cq CopyQuery) ([]model.Copy, error) {
	q := r.selectCopies().OrderBy("c.created_at", "c.id")
	if len(cq.BookIDs) > 0 {
		q = q.Where(sq.Eq{"c.book_id": cq.BookIDs})
	}
	if cq.BranchID != "" {
		q = q.Where(sq.Eq{"c.branch_id": cq.BranchID})
	}
	if cq.Search != "" {
		q = q.Where(ilike(cq.Search, "b.title", "b.author"))
	}
	query, args, _ := q.ToSql()
	r.log.Debug("ListCopies", zap.String("query", query), zap.Any("args", args))

	return collectAll[model.Copy](ctx, r.db, page(q, cq.Page))
}

func (r *repository) GetCopy(ctx context.Context, id string) (model.Copy, error) {
	return collectOne[model.Copy](ctx, r.db, r.selectCopies().Where(sq.Eq{"c.id": id}).Limit(1))
}

func (r *repository) GetCopyScope(ctx context.Context, id string) (model.CopyScope, error) {
	return collectOne[model.CopyScope](ctx, r.db, qb.Select("c.id", "c.branch_id", "br.owner_id").
		From(copiesTableName+" c").
		Join(fmt.Sprintf("%s br on br.id = c.branch_id", branchesTableName)).
		Where(sq.Eq{"c.id": id}).
		Limit(1))
}

func (r *repository) CreateCopy(ctx context.Context, c model.Copy) (model.Copy, error) {
	id := uuid.NewString()
	if _, err := exec(ctx, r.db, qb.Insert(copiesTableName).
		Columns("id", "book_id", "branch_id", "condition", "notes", "added_by").
		Values(id, c.BookID, c.BranchID, c.Condition, c.Notes, c.AddedBy)); err != nil {
		return model.Copy{}, err
	}
	return r.GetCopy(ctx, id)
}

func (r *repository) UpdateCopy(ctx context.Context, id string, req model.UpdateCopyRequest) (model.Copy, error) {
	q := qb.Update(copiesTableName).Where(sq.Eq{"id": id})
	if req.Condition != nil {
		q = q.Set("condition", *req.Condition)
	}
	if req.Notes != nil {
		q = q.Set("notes", *req.Notes)
	}
	n, err := exec(ctx, r.db, q)
	if err != nil {
		return model.Copy{}, err
	}
	if n == 0 {
		return model.Copy{}, errNotFound("copy", id)
	}
	return r.GetCopy(ctx, id)
}

// DeleteCopy removes the copy and its loan history.
func (r *repository) DeleteCopy(ctx context.Context, id string) error {
	n, err := exec(ctx, r.db, qb.Delete(copiesTableName).Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if n == 0 {
		return errNotFound("copy", id)
	}
	return nil
}
