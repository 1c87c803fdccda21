// Package availability derives whether a copy can be lent from its loan records.
package availability

import (
	"github.com/Astemirdum/home-library/lending/internal/errs"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/pkg/errors"
)

func IsAvailable(loans []model.Loan) bool {
	return CurrentLoan(loans) == nil
}

// CurrentLoan returns the first active loan. More than one active loan means
// the store lost a race; the first one wins here and Validate reports it.
func CurrentLoan(loans []model.Loan) *model.Loan {
	for i := range loans {
		if loans[i].IsActive() {
			l := loans[i]
			return &l
		}
	}
	return nil
}

func Validate(copyID string, loans []model.Loan) error {
	active := 0
	for i := range loans {
		if loans[i].IsActive() {
			active++
		}
	}
	if active > 1 {
		return errors.Wrapf(errs.ErrInconsistent, "copy %s has %d active loans", copyID, active)
	}
	return nil
}

// Annotate sets the derived availability fields of c.
func Annotate(c model.Copy, loans []model.Loan) model.Copy {
	c.CurrentLoan = CurrentLoan(loans)
	c.IsAvailable = c.CurrentLoan == nil
	return c
}

// AnnotateAll annotates copies from loans grouped by copy id.
func AnnotateAll(copies []model.Copy, loansByCopy map[string][]model.Loan) []model.Copy {
	out := make([]model.Copy, 0, len(copies))
	for _, c := range copies {
		out = append(out, Annotate(c, loansByCopy[c.ID]))
	}
	return out
}

type Criteria struct {
	BranchID  string
	Available *bool
}

// Filter keeps the copies matching cr in their original order.
// Copies must already be annotated.
func Filter(copies []model.Copy, cr Criteria) []model.Copy {
	out := make([]model.Copy, 0, len(copies))
	for _, c := range copies {
		if cr.BranchID != "" && c.BranchID != cr.BranchID {
			continue
		}
		if cr.Available != nil && c.IsAvailable != *cr.Available {
			continue
		}
		out = append(out, c)
	}
	return out
}

func Stats(copies []model.Copy) model.BranchStats {
	st := model.BranchStats{TotalCopies: len(copies)}
	for _, c := range copies {
		if c.IsAvailable {
			st.Available++
		}
	}
	st.OnLoan = st.TotalCopies - st.Available
	return st
}
