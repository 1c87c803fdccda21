package loan_test

import (
	"testing"
	"time"

	"github.com/Astemirdum/home-library/lending/internal/errs"
	"github.com/Astemirdum/home-library/lending/internal/loan"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	t.Parallel()
	today := time.Date(2024, 5, 10, 23, 59, 0, 0, time.UTC)
	returned := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		loan model.Loan
		want model.LoanStatus
	}{
		{
			name: "due today is active",
			loan: model.Loan{DueDate: model.NewDate(2024, 5, 10)},
			want: model.LoanStatusActive,
		},
		{
			name: "due tomorrow",
			loan: model.Loan{DueDate: model.NewDate(2024, 5, 11)},
			want: model.LoanStatusActive,
		},
		{
			name: "due yesterday",
			loan: model.Loan{DueDate: model.NewDate(2024, 5, 9)},
			want: model.LoanStatusOverdue,
		},
		{
			name: "returned late is returned",
			loan: model.Loan{DueDate: model.NewDate(2024, 4, 1), ReturnedAt: &returned},
			want: model.LoanStatusReturned,
		},
		{
			name: "returned before due",
			loan: model.Loan{DueDate: model.NewDate(2024, 6, 1), ReturnedAt: &returned},
			want: model.LoanStatusReturned,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, loan.Status(tt.loan, today))
		})
	}
}

func TestStatus_AllDays(t *testing.T) {
	t.Parallel()
	due := model.NewDate(2024, 2, 29)
	l := model.Loan{DueDate: due}
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	for day := 0; day < 120; day++ {
		today := start.AddDate(0, 0, day)
		want := model.LoanStatusActive
		if due.Before(model.DateOf(today)) {
			want = model.LoanStatusOverdue
		}
		require.Equal(t, want, loan.Status(l, today), today.Format(time.DateOnly))
	}
	require.Equal(t, model.LoanStatusActive, loan.Status(l, time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC)))
	require.Equal(t, model.LoanStatusOverdue, loan.Status(l, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCanReturn(t *testing.T) {
	t.Parallel()
	require.NoError(t, loan.CanReturn(model.Loan{}))

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.ErrorIs(t, loan.CanReturn(model.Loan{ReturnedAt: &at}), errs.ErrAlreadyReturned)
}

func TestValidateDueDate(t *testing.T) {
	t.Parallel()
	require.NoError(t, loan.ValidateDueDate(model.NewDate(2024, 5, 10)))
	require.ErrorIs(t, loan.ValidateDueDate(model.Date{}), errs.ErrValidation)
}
