// Package policy is the single authorization decision point. It performs no
// I/O: ownership facts are looked up by the caller and passed in a Scope.
package policy

import (
	"fmt"

	"github.com/Astemirdum/home-library/lending/internal/errs"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/pkg/errors"
)

type Action uint8

const (
	ReadCatalog Action = iota + 1
	LookupISBN
	CreateBook
	DeleteBook
	CreateBranch
	UpdateBranch
	CreateCopy
	UpdateCopy
	DeleteCopy
	CreateLoan
	ReturnLoan
	ReadLoan
	ListLoans
	ReadSelf
	UpdateSelf
	ReadUsers
	UpdateUserRole
)

var actionNames = map[Action]string{
	ReadCatalog:    "read catalog",
	LookupISBN:     "lookup isbn",
	CreateBook:     "create book",
	DeleteBook:     "delete book",
	CreateBranch:   "create branch",
	UpdateBranch:   "update branch",
	CreateCopy:     "create copy",
	UpdateCopy:     "update copy",
	DeleteCopy:     "delete copy",
	CreateLoan:     "create loan",
	ReturnLoan:     "return loan",
	ReadLoan:       "read loan",
	ListLoans:      "list loans",
	ReadSelf:       "read profile",
	UpdateSelf:     "update profile",
	ReadUsers:      "read users",
	UpdateUserRole: "update user role",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Scope holds the ownership facts of the resource an action targets.
type Scope struct {
	BranchOwnerID string
	BorrowerID    string
}

func BranchScope(ownerID string) Scope {
	return Scope{BranchOwnerID: ownerID}
}

func LoanScope(l model.Loan) Scope {
	return Scope{BranchOwnerID: l.BranchOwnerID, BorrowerID: l.BorrowerID}
}

func Allow(actor model.Actor, action Action, scope Scope) bool {
	if !actor.IsAnonymous() && actor.Role == model.RoleAdmin {
		return true
	}
	switch action {
	case ReadCatalog, LookupISBN:
		return true
	}
	if actor.IsAnonymous() {
		return false
	}

	switch action {
	case UpdateBranch, CreateCopy, UpdateCopy, DeleteCopy, CreateLoan, ReturnLoan:
		return actor.Role == model.RoleBranchOwner && ownedBy(actor, scope.BranchOwnerID)
	case ReadLoan:
		switch actor.Role {
		case model.RoleBorrower:
			return scope.BorrowerID != "" && actor.ID == scope.BorrowerID
		case model.RoleBranchOwner:
			return ownedBy(actor, scope.BranchOwnerID)
		}
		return false
	case ListLoans, CreateBook, ReadSelf, UpdateSelf:
		return actor.Role.Valid()
	case CreateBranch, DeleteBook, ReadUsers, UpdateUserRole:
		return false
	}
	return false
}

// Authorize is Allow reporting the denial kind: anonymous actors get
// ErrUnauthenticated, authenticated ones ErrForbidden.
func Authorize(actor model.Actor, action Action, scope Scope) error {
	if Allow(actor, action, scope) {
		return nil
	}
	if actor.IsAnonymous() {
		return errors.Wrap(errs.ErrUnauthenticated, action.String())
	}
	return errors.Wrapf(errs.ErrForbidden, "%s as %s", action, actor.Role)
}

// LoanListScope narrows f to the loans actor may see. Filters supplied by the
// caller never widen the scope.
func LoanListScope(actor model.Actor, f model.LoanFilter) model.LoanFilter {
	switch actor.Role {
	case model.RoleAdmin:
		f.OwnerID = ""
	case model.RoleBranchOwner:
		f.OwnerID = actor.ID
	default:
		f.OwnerID = ""
		f.BorrowerID = actor.ID
	}
	return f
}

func ownedBy(actor model.Actor, ownerID string) bool {
	return ownerID != "" && actor.ID == ownerID
}
