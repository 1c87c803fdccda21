package model

type Page struct {
	Offset int `query:"offset" validate:"gte=0"`
	Limit  int `query:"limit" validate:"gte=0"`
}

// Normalize applies the default limit and caps it at MaxLimit.
func (p Page) Normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

type CopyFilter struct {
	Page
	Search    string
	BookID    string
	BranchID  string
	Available *bool
}

type BookFilter struct {
	Page
	Search    string
	BranchID  string
	Available *bool
}

type LoanFilter struct {
	Page
	BorrowerID string
	BranchID   string
	// OwnerID restricts to loans at branches owned by the id.
	OwnerID string
	Status  LoanStatus
}

type UserFilter struct {
	Page
	Role   *Role
	Search string
}

type CreateBranchRequest struct {
	Name    string  `json:"name" validate:"required"`
	OwnerID string  `json:"ownerId" validate:"required,uuid"`
	Address *string `json:"address"`
}

type UpdateBranchRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1"`
	Address *string `json:"address"`
}

func (r UpdateBranchRequest) Empty() bool {
	return r.Name == nil && r.Address == nil
}

type CreateBookRequest struct {
	ISBN        *string `json:"isbn"`
	Title       string  `json:"title" validate:"required"`
	Author      *string `json:"author"`
	CoverURL    *string `json:"coverUrl" validate:"omitempty,url"`
	Publisher   *string `json:"publisher"`
	PublishYear *int    `json:"publishYear"`
	PageCount   *int    `json:"pageCount" validate:"omitempty,gt=0"`
	Description *string `json:"description"`
}

type CreateCopyRequest struct {
	BookID    *string `json:"bookId" validate:"omitempty,uuid"`
	BranchID  string  `json:"branchId" validate:"required,uuid"`
	ISBN      *string `json:"isbn"`
	Condition *string `json:"condition"`
	Notes     *string `json:"notes"`
}

type UpdateCopyRequest struct {
	Condition *string `json:"condition"`
	Notes     *string `json:"notes"`
}

func (r UpdateCopyRequest) Empty() bool {
	return r.Condition == nil && r.Notes == nil
}

type CreateLoanRequest struct {
	CopyID     string  `json:"copyId" validate:"required,uuid"`
	BorrowerID string  `json:"borrowerId" validate:"required,uuid"`
	DueDate    Date    `json:"dueDate"`
	Notes      *string `json:"notes"`
}

type ReturnLoanRequest struct {
	Notes *string `json:"notes"`
}

type UpdateProfileRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type ListCopies struct {
	Items []Copy `json:"copies"`
	Count int    `json:"count"`
}

type ListBooks struct {
	Items []Book `json:"books"`
	Count int    `json:"count"`
}

type ListLoans struct {
	Items []Loan `json:"loans"`
	Count int    `json:"count"`
}

type ListBranches struct {
	Items []Branch `json:"branches"`
}

type ListUsers struct {
	Items []Profile `json:"users"`
	Count int       `json:"count"`
}
