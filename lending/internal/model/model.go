package model

import (
	"time"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Actor is the principal behind a request. The zero value is anonymous.
type Actor struct {
	ID    string
	Email string
	Role  Role
	Name  string
}

var Anonymous = Actor{}

func (a Actor) IsAnonymous() bool {
	return a.ID == ""
}

type Profile struct {
	ID        string    `json:"id" db:"id"`
	Email     *string   `json:"email" db:"email"`
	Name      *string   `json:"name" db:"name"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Branches []BranchRef `json:"branches,omitempty" db:"-"`
}

type BranchRef struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Branch struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Address   *string   `json:"address" db:"address"`
	OwnerID   string    `json:"ownerId" db:"owner_id"`
	OwnerName *string   `json:"ownerName" db:"owner_name"`
	CopyCount int       `json:"copyCount" db:"copy_count"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Stats *BranchStats `json:"stats,omitempty" db:"-"`
}

type BranchStats struct {
	TotalCopies int `json:"totalCopies"`
	Available   int `json:"available"`
	OnLoan      int `json:"onLoan"`
}

type Book struct {
	ID          string    `json:"id" db:"id"`
	ISBN        *string   `json:"isbn" db:"isbn"`
	Title       string    `json:"title" db:"title"`
	Author      *string   `json:"author" db:"author"`
	CoverURL    *string   `json:"coverUrl" db:"cover_url"`
	Publisher   *string   `json:"publisher" db:"publisher"`
	PublishYear *int      `json:"publishYear" db:"publish_year"`
	PageCount   *int      `json:"pageCount" db:"page_count"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	Copies []Copy `json:"copies,omitempty" db:"-"`
}

type Copy struct {
	ID         string    `json:"id" db:"id"`
	BookID     string    `json:"bookId" db:"book_id"`
	BranchID   string    `json:"branchId" db:"branch_id"`
	Condition  *string   `json:"condition" db:"condition"`
	Notes      *string   `json:"notes" db:"notes"`
	AddedBy    string    `json:"addedBy" db:"added_by"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	BookTitle  string    `json:"bookTitle" db:"book_title"`
	BookAuthor *string   `json:"bookAuthor" db:"book_author"`
	BranchName string    `json:"branchName" db:"branch_name"`

	IsAvailable bool   `json:"isAvailable" db:"-"`
	CurrentLoan *Loan  `json:"currentLoan,omitempty" db:"-"`
	Loans       []Loan `json:"loans,omitempty" db:"-"`
}

// CopyScope carries the ownership facts of a copy.
type CopyScope struct {
	CopyID        string `db:"id"`
	BranchID      string `db:"branch_id"`
	BranchOwnerID string `db:"owner_id"`
}

type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "active"
	LoanStatusOverdue  LoanStatus = "overdue"
	LoanStatusReturned LoanStatus = "returned"
)

func (s LoanStatus) Valid() bool {
	switch s {
	case LoanStatusActive, LoanStatusOverdue, LoanStatusReturned:
		return true
	}
	return false
}

type Loan struct {
	ID            string     `json:"id" db:"id"`
	CopyID        string     `json:"copyId" db:"copy_id"`
	BorrowerID    string     `json:"borrowerId" db:"borrower_id"`
	DueDate       Date       `json:"dueDate" db:"due_date"`
	BorrowedAt    time.Time  `json:"borrowedAt" db:"borrowed_at"`
	ReturnedAt    *time.Time `json:"returnedAt" db:"returned_at"`
	Notes         *string    `json:"notes" db:"notes"`
	BorrowerName  *string    `json:"borrowerName" db:"borrower_name"`
	BookID        string     `json:"bookId" db:"book_id"`
	BookTitle     string     `json:"bookTitle" db:"book_title"`
	BranchID      string     `json:"branchId" db:"branch_id"`
	BranchName    string     `json:"branchName" db:"branch_name"`
	BranchOwnerID string     `json:"-" db:"owner_id"`

	// Status is filled at read time and never stored.
	Status LoanStatus `json:"status" db:"-"`
}

func (l Loan) IsActive() bool {
	return l.ReturnedAt == nil
}

type LoanEventType string

const (
	LoanCreated  LoanEventType = "loan.created"
	LoanReturned LoanEventType = "loan.returned"
)

type LoanEvent struct {
	Type       LoanEventType `json:"type"`
	LoanID     string        `json:"loanId"`
	CopyID     string        `json:"copyId"`
	BranchID   string        `json:"branchId"`
	BorrowerID string        `json:"borrowerId"`
	DueDate    Date          `json:"dueDate"`
	At         time.Time     `json:"at"`
}
