package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/Astemirdum/home-library/lending/internal/errs"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Repository interface {
	GetProfile(ctx context.Context, id string) (model.Profile, error)
	ListProfiles(ctx context.Context, f model.UserFilter) ([]model.Profile, error)
	SaveProfileName(ctx context.Context, id, email, name string) (model.Profile, error)
	UpdateProfileRole(ctx context.Context, id string, role model.Role) (model.Profile, error)

	ListBranches(ctx context.Context) ([]model.Branch, error)
	BranchesByOwner(ctx context.Context, ownerID string) ([]model.BranchRef, error)
	GetBranch(ctx context.Context, id string) (model.Branch, error)
	GetBranchOwner(ctx context.Context, id string) (string, error)
	CreateBranch(ctx context.Context, req model.CreateBranchRequest) (model.Branch, error)
	UpdateBranch(ctx context.Context, id string, req model.UpdateBranchRequest) (model.Branch, error)

	ListBooks(ctx context.Context, search string, page model.Page) ([]model.Book, error)
	GetBook(ctx context.Context, id string) (model.Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id string) error

	ListCopies(ctx context.Context, q CopyQuery) ([]model.Copy, error)
	GetCopy(ctx context.Context, id string) (model.Copy, error)
	GetCopyScope(ctx context.Context, id string) (model.CopyScope, error)
	CreateCopy(ctx context.Context, c model.Copy) (model.Copy, error)
	UpdateCopy(ctx context.Context, id string, req model.UpdateCopyRequest) (model.Copy, error)
	DeleteCopy(ctx context.Context, id string) error

	LoansByCopies(ctx context.Context, copyIDs []string) (map[string][]model.Loan, error)
	ListLoans(ctx context.Context, f model.LoanFilter, today model.Date) ([]model.Loan, error)
	GetLoan(ctx context.Context, id string) (model.Loan, error)
	CreateLoan(ctx context.Context, req model.CreateLoanRequest, at time.Time) (model.Loan, error)
	ReturnLoan(ctx context.Context, id string, at time.Time, notes *string) (model.Loan, error)
}

// CopyQuery selects copies by the columns stored on them. Availability is
// derived from loans and filtered by the caller.
type CopyQuery struct {
	Search   string
	BookIDs  []string
	BranchID string
	// Page is ignored when zero.
	Page model.Page
}

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	profilesTableName = `profiles`
	branchesTableName = `branches`
	booksTableName    = `books`
	copiesTableName   = `copies`
	loansTableName    = `loans`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func collectOne[T any](ctx context.Context, db *pgxpool.Pool, b sq.Sqlizer) (T, error) {
	var zero T
	query, args, err := b.ToSql()
	if err != nil {
		return zero, err
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return zero, mapErr(err)
	}
	defer rows.Close()

	v, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return zero, mapErr(err)
	}
	return v, nil
}

func collectAll[T any](ctx context.Context, db *pgxpool.Pool, b sq.Sqlizer) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", mapErr(err))
	}
	return items, nil
}

func exec(ctx context.Context, db *pgxpool.Pool, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return 0, mapErr(err)
	}
	return tag.RowsAffected(), nil
}

func mapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return errors.Wrap(errs.ErrConflict, pgErr.ConstraintName)
		case pgerrcode.ForeignKeyViolation:
			return errors.Wrap(errs.ErrNotFound, pgErr.ConstraintName)
		case pgerrcode.InvalidTextRepresentation, pgerrcode.CheckViolation:
			return errors.Wrap(errs.ErrValidation, pgErr.Message)
		}
	}
	return err
}

func page(b sq.SelectBuilder, p model.Page) sq.SelectBuilder {
	if p.Limit == 0 {
		return b
	}
	return b.Limit(uint64(p.Limit)).Offset(uint64(p.Offset))
}

func ilike(search string, cols ...string) sq.Or {
	pattern := "%" + search + "%"
	or := make(sq.Or, 0, len(cols))
	for _, col := range cols {
		or = append(or, sq.ILike{col: pattern})
	}
	return or
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

func errNotFound(what, id string) error {
	return errors.Wrapf(errs.ErrNotFound, "%s %s", what, id)
}
