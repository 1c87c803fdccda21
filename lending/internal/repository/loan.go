package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/Astemirdum/home-library/lending/internal/errs"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var loanColumns = []string{
	"l.id", "l.copy_id", "l.borrower_id", "l.due_date", "l.borrowed_at", "l.returned_at", "l.notes",
	"p.name as borrower_name",
	"c.book_id", "b.title as book_title",
	"c.branch_id", "br.name as branch_name", "br.owner_id",
}

func (r *repository) selectLoans() sq.SelectBuilder {
	return qb.Select(loanColumns...).
		From(loansTableName + " l").
		Join(fmt.Sprintf("%s c on c.id = l.copy_id", copiesTableName)).
		Join(fmt.Sprintf("%s b on b.id = c.book_id", booksTableName)).
		Join(fmt.Sprintf("%s br on br.id = c.branch_id", branchesTableName)).
		LeftJoin(fmt.Sprintf("%s p on p.id = l.borrower_id", profilesTableName))
}

// LoansByCopies returns the loan history of every copy, newest first.
func (r *repository) LoansByCopies(ctx context.Context, copyIDs []string) (map[string][]model.Loan, error) {
	out := make(map[string][]model.Loan, len(copyIDs))
	if len(copyIDs) == 0 {
		return out, nil
	}
	loans, err := collectAll[model.Loan](ctx, r.db, r.selectLoans().
		Where(sq.Eq{"l.copy_id": copyIDs}).
		OrderBy("l.borrowed_at desc", "l.id"))
	if err != nil {
		return nil, err
	}
	for _, l := range loans {
		out[l.CopyID] = append(out[l.CopyID], l)
	}
	return out, nil
}

// ListLoans filters by the status derived on the calendar day today.
func (r *repository) ListLoans(ctx context.Context, f model.LoanFilter, today model.Date) ([]model.Loan, error) {
	q := r.selectLoans().OrderBy("l.borrowed_at desc", "l.id")
	if f.BorrowerID != "" {
		q = q.Where(sq.Eq{"l.borrower_id": f.BorrowerID})
	}
	if f.BranchID != "" {
		q = q.Where(sq.Eq{"c.branch_id": f.BranchID})
	}
	if f.OwnerID != "" {
		q = q.Where(sq.Eq{"br.owner_id": f.OwnerID})
	}
	switch f.Status {
	case model.LoanStatusReturned:
		q = q.Where(sq.NotEq{"l.returned_at": nil})
	case model.LoanStatusOverdue:
		q = q.Where(sq.Eq{"l.returned_at": nil}).Where(sq.Lt{"l.due_date": today.Time})
	case model.LoanStatusActive:
		q = q.Where(sq.Eq{"l.returned_at": nil}).Where(sq.GtOrEq{"l.due_date": today.Time})
	}
	q = page(q, f.Page)

	query, args, _ := q.ToSql()
	r.log.Debug("ListLoans", zap.String("query", query), zap.Any("args", args))

	return collectAll[model.Loan](ctx, r.db, q)
}

func (r *repository) GetLoan(ctx context.Context, id string) (model.Loan, error) {
	return collectOne[model.Loan](ctx, r.db, r.selectLoans().Where(sq.Eq{"l.id": id}).Limit(1))
}

// CreateLoan relies on loans_active_copy_uidx: a second active loan for the
// same copy fails with errs.ErrConflict.
func (r *repository) CreateLoan(ctx context.Context, req model.CreateLoanRequest, at time.Time) (model.Loan, error) {
	id := uuid.NewString()
	if _, err := exec(ctx, r.db, qb.Insert(loansTableName).
		Columns("id", "copy_id", "borrower_id", "due_date", "borrowed_at", "notes").
		Values(id, req.CopyID, req.BorrowerID, req.DueDate.Time, at, req.Notes)); err != nil {
		return model.Loan{}, err
	}
	return r.GetLoan(ctx, id)
}

// ReturnLoan closes the loan only while it is still active; the loser of two
// concurrent returns gets errs.ErrAlreadyReturned.
func (r *repository) ReturnLoan(ctx context.Context, id string, at time.Time, notes *string) (model.Loan, error) {
	q := qb.Update(loansTableName).
		Set("returned_at", at).
		Where(sq.Eq{"id": id, "returned_at": nil})
	if notes != nil {
		q = q.Set("notes", *notes)
	}
	n, err := exec(ctx, r.db, q)
	if err != nil {
		return model.Loan{}, err
	}
	if n == 0 {
		return model.Loan{}, errors.Wrapf(errs.ErrAlreadyReturned, "loan %s", id)
	}
	return r.GetLoan(ctx, id)
}
