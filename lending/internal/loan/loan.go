// Package loan holds the lifecycle rules of a loan. A copy moves
// NONE -> ACTIVE -> RETURNED; OVERDUE is ACTIVE seen after the due date and is
// never stored. RETURNED is terminal.
package loan

import (
	"time"

	"github.com/Astemirdum/home-library/lending/internal/errs"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/pkg/errors"
)

// Status classifies l on the calendar day of today.
// A loan due today is still active.
func Status(l model.Loan, today time.Time) model.LoanStatus {
	if l.ReturnedAt != nil {
		return model.LoanStatusReturned
	}
	if l.DueDate.Before(model.DateOf(today)) {
		return model.LoanStatusOverdue
	}
	return model.LoanStatusActive
}

// WithStatus fills the derived status of every loan in place.
func WithStatus(loans []model.Loan, today time.Time) []model.Loan {
	for i := range loans {
		loans[i].Status = Status(loans[i], today)
	}
	return loans
}

func CanReturn(l model.Loan) error {
	if l.ReturnedAt != nil {
		return errors.Wrapf(errs.ErrAlreadyReturned, "returned at %s", l.ReturnedAt.UTC().Format(time.RFC3339))
	}
	return nil
}

func ValidateDueDate(due model.Date) error {
	if due.IsZero() {
		return errors.Wrap(errs.ErrValidation, "due date is required")
	}
	return nil
}
