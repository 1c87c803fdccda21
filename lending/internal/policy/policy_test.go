package policy_test

import (
	"testing"

	"github.com/Astemirdum/home-library/lending/internal/errs"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/Astemirdum/home-library/lending/internal/policy"
	"github.com/stretchr/testify/require"
)

var (
	admin    = model.Actor{ID: "a-1", Role: model.RoleAdmin}
	owner    = model.Actor{ID: "o-1", Role: model.RoleBranchOwner}
	other    = model.Actor{ID: "o-2", Role: model.RoleBranchOwner}
	borrower = model.Actor{ID: "b-1", Role: model.RoleBorrower}
	anon     = model.Anonymous
)

var resourceWrites = []policy.Action{
	policy.UpdateBranch,
	policy.CreateCopy,
	policy.UpdateCopy,
	policy.DeleteCopy,
	policy.CreateLoan,
	policy.ReturnLoan,
}

func TestAllow_ResourceWrites(t *testing.T) {
	t.Parallel()
	scope := policy.BranchScope(owner.ID)
	for _, action := range resourceWrites {
		action := action
		t.Run(action.String(), func(t *testing.T) {
			t.Parallel()
			require.True(t, policy.Allow(admin, action, scope))
			require.True(t, policy.Allow(admin, action, policy.Scope{}))
			require.True(t, policy.Allow(owner, action, scope))
			require.False(t, policy.Allow(other, action, scope))
			require.False(t, policy.Allow(owner, action, policy.Scope{}))
			// a borrower owning the branch id is still not a branch owner
			require.False(t, policy.Allow(model.Actor{ID: owner.ID, Role: model.RoleBorrower}, action, scope))
			require.False(t, policy.Allow(borrower, action, scope))
			require.False(t, policy.Allow(anon, action, scope))
		})
	}
}

func TestAllow_ReadLoan(t *testing.T) {
	t.Parallel()
	scope := policy.Scope{BranchOwnerID: owner.ID, BorrowerID: borrower.ID}

	require.True(t, policy.Allow(admin, policy.ReadLoan, scope))
	require.True(t, policy.Allow(owner, policy.ReadLoan, scope))
	require.True(t, policy.Allow(borrower, policy.ReadLoan, scope))
	require.False(t, policy.Allow(other, policy.ReadLoan, scope))
	require.False(t, policy.Allow(model.Actor{ID: "b-2", Role: model.RoleBorrower}, policy.ReadLoan, scope))
	require.False(t, policy.Allow(anon, policy.ReadLoan, scope))
	// borrower id match does not grant a branch owner access
	require.False(t, policy.Allow(other, policy.ReadLoan, policy.Scope{BranchOwnerID: owner.ID, BorrowerID: other.ID}))
}

func TestAllow_Public(t *testing.T) {
	t.Parallel()
	for _, actor := range []model.Actor{anon, borrower, owner, admin} {
		require.True(t, policy.Allow(actor, policy.ReadCatalog, policy.Scope{}))
		require.True(t, policy.Allow(actor, policy.LookupISBN, policy.Scope{}))
	}
}

func TestAllow_AdminOnly(t *testing.T) {
	t.Parallel()
	for _, action := range []policy.Action{policy.CreateBranch, policy.DeleteBook, policy.ReadUsers, policy.UpdateUserRole} {
		require.True(t, policy.Allow(admin, action, policy.Scope{}), action.String())
		require.False(t, policy.Allow(owner, action, policy.BranchScope(owner.ID)), action.String())
		require.False(t, policy.Allow(borrower, action, policy.Scope{}), action.String())
		require.False(t, policy.Allow(anon, action, policy.Scope{}), action.String())
	}
}

func TestAllow_Authenticated(t *testing.T) {
	t.Parallel()
	for _, action := range []policy.Action{policy.ListLoans, policy.CreateBook, policy.ReadSelf, policy.UpdateSelf} {
		require.True(t, policy.Allow(borrower, action, policy.Scope{}), action.String())
		require.True(t, policy.Allow(owner, action, policy.Scope{}), action.String())
		require.False(t, policy.Allow(anon, action, policy.Scope{}), action.String())
		require.False(t, policy.Allow(model.Actor{ID: "x"}, action, policy.Scope{}), action.String())
	}
}

func TestAuthorize(t *testing.T) {
	t.Parallel()
	require.NoError(t, policy.Authorize(owner, policy.CreateCopy, policy.BranchScope(owner.ID)))
	require.ErrorIs(t, policy.Authorize(other, policy.CreateCopy, policy.BranchScope(owner.ID)), errs.ErrForbidden)
	require.ErrorIs(t, policy.Authorize(anon, policy.CreateCopy, policy.BranchScope(owner.ID)), errs.ErrUnauthenticated)
}

func TestLoanListScope(t *testing.T) {
	t.Parallel()
	requested := model.LoanFilter{BorrowerID: "someone-else", BranchID: "br-1", OwnerID: "o-9"}

	got := policy.LoanListScope(borrower, requested)
	require.Equal(t, borrower.ID, got.BorrowerID)
	require.Empty(t, got.OwnerID)
	require.Equal(t, "br-1", got.BranchID)

	got = policy.LoanListScope(owner, requested)
	require.Equal(t, owner.ID, got.OwnerID)
	require.Equal(t, "someone-else", got.BorrowerID)

	got = policy.LoanListScope(admin, requested)
	require.Empty(t, got.OwnerID)
	require.Equal(t, "someone-else", got.BorrowerID)
}
