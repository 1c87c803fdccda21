package handler

import (
	"context"

	"github.com/Astemirdum/home-library/lending/internal/identity"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/Astemirdum/home-library/lending/internal/service"
	"github.com/Astemirdum/home-library/pkg/isbn"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LendingService interface {
	ListBranches(ctx context.Context) (model.ListBranches, error)
	GetBranch(ctx context.Context, id string) (model.Branch, error)
	CreateBranch(ctx context.Context, actor model.Actor, req model.CreateBranchRequest) (model.Branch, error)
	UpdateBranch(ctx context.Context, actor model.Actor, id string, req model.UpdateBranchRequest) (model.Branch, error)

	ListBooks(ctx context.Context, f model.BookFilter) (model.ListBooks, error)
	GetBook(ctx context.Context, id string) (model.Book, error)
	LookupISBN(ctx context.Context, raw string) (isbn.Metadata, error)
	CreateBook(ctx context.Context, actor model.Actor, req model.CreateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, actor model.Actor, id string) error

	ListCopies(ctx context.Context, f model.CopyFilter) (model.ListCopies, error)
	GetCopy(ctx context.Context, id string) (model.Copy, error)
	CreateCopy(ctx context.Context, actor model.Actor, req model.CreateCopyRequest) (model.Copy, error)
	UpdateCopy(ctx context.Context, actor model.Actor, id string, req model.UpdateCopyRequest) (model.Copy, error)
	DeleteCopy(ctx context.Context, actor model.Actor, id string) error

	ListLoans(ctx context.Context, actor model.Actor, f model.LoanFilter) (model.ListLoans, error)
	GetLoan(ctx context.Context, actor model.Actor, id string) (model.Loan, error)
	CreateLoan(ctx context.Context, actor model.Actor, req model.CreateLoanRequest) (model.Loan, error)
	ReturnLoan(ctx context.Context, actor model.Actor, id string, req model.ReturnLoanRequest) (model.Loan, error)

	Me(ctx context.Context, actor model.Actor) (model.Profile, error)
	UpdateMe(ctx context.Context, actor model.Actor, req model.UpdateProfileRequest) (model.Profile, error)
	ListUsers(ctx context.Context, actor model.Actor, f model.UserFilter) (model.ListUsers, error)
	GetUser(ctx context.Context, actor model.Actor, id string) (model.Profile, error)
	UpdateUserRole(ctx context.Context, actor model.Actor, id, role string) (model.Profile, error)
}

type IdentityResolver interface {
	Resolve(ctx context.Context, authorization string) (model.Actor, error)
}

var (
	_ LendingService   = (*service.Service)(nil)
	_ IdentityResolver = (*identity.Resolver)(nil)
)
