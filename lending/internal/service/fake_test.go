package service_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Astemirdum/home-library/lending/internal/errs"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/Astemirdum/home-library/lending/internal/repository"
	"github.com/Astemirdum/home-library/pkg/isbn"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// memRepo keeps the tables in memory and enforces the same constraints as
// the schema: unique isbn, one active loan per copy, cascading deletes.
type memRepo struct {
	mu       sync.Mutex
	profiles map[string]model.Profile
	branches map[string]model.Branch
	books    map[string]model.Book
	copies   map[string]model.Copy
	copySeq  []string
	loans    []model.Loan
}

var _ repository.Repository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{
		profiles: map[string]model.Profile{},
		branches: map[string]model.Branch{},
		books:    map[string]model.Book{},
		copies:   map[string]model.Copy{},
	}
}

func (r *memRepo) addProfile(role model.Role, name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.NewString()
	r.profiles[id] = model.Profile{ID: id, Name: &name, Role: role}
	return id
}

func (r *memRepo) GetProfile(_ context.Context, id string) (model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return model.Profile{}, errs.ErrNotFound
	}
	return p, nil
}

func (r *memRepo) ListProfiles(_ context.Context, f model.UserFilter) ([]model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Profile
	for _, p := range r.profiles {
		if f.Role != nil && p.Role != *f.Role {
			continue
		}
		if f.Search != "" && (p.Name == nil || !strings.Contains(strings.ToLower(*p.Name), strings.ToLower(f.Search))) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, f.Page), nil
}

func (r *memRepo) SaveProfileName(_ context.Context, id, email, name string) (model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		p = model.Profile{ID: id, Role: model.RoleBorrower}
		if email != "" {
			p.Email = &email
		}
	}
	p.Name = &name
	r.profiles[id] = p
	return p, nil
}

func (r *memRepo) UpdateProfileRole(_ context.Context, id string, role model.Role) (model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return model.Profile{}, errs.ErrNotFound
	}
	p.Role = role
	r.profiles[id] = p
	return p, nil
}

func (r *memRepo) branch(b model.Branch) model.Branch {
	if owner, ok := r.profiles[b.OwnerID]; ok {
		b.OwnerName = owner.Name
	}
	b.CopyCount = 0
	for _, c := range r.copies {
		if c.BranchID == b.ID {
			b.CopyCount++
		}
	}
	return b
}

func (r *memRepo) ListBranches(_ context.Context) ([]model.Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Branch
	for _, b := range r.branches {
		out = append(out, r.branch(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memRepo) BranchesByOwner(_ context.Context, ownerID string) ([]model.BranchRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.BranchRef
	for _, b := range r.branches {
		if b.OwnerID == ownerID {
			out = append(out, model.BranchRef{ID: b.ID, Name: b.Name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memRepo) GetBranch(_ context.Context, id string) (model.Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.branches[id]
	if !ok {
		return model.Branch{}, errs.ErrNotFound
	}
	return r.branch(b), nil
}

func (r *memRepo) GetBranchOwner(_ context.Context, id string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.branches[id]
	if !ok {
		return "", errs.ErrNotFound
	}
	return b.OwnerID, nil
}

func (r *memRepo) CreateBranch(_ context.Context, req model.CreateBranchRequest) (model.Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[req.OwnerID]; !ok {
		return model.Branch{}, errs.ErrNotFound
	}
	b := model.Branch{ID: uuid.NewString(), Name: req.Name, Address: req.Address, OwnerID: req.OwnerID}
	r.branches[b.ID] = b
	return r.branch(b), nil
}

func (r *memRepo) UpdateBranch(_ context.Context, id string, req model.UpdateBranchRequest) (model.Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.branches[id]
	if !ok {
		return model.Branch{}, errs.ErrNotFound
	}
	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.Address != nil {
		b.Address = req.Address
	}
	r.branches[id] = b
	return r.branch(b), nil
}

func (r *memRepo) ListBooks(_ context.Context, search string, p model.Page) ([]model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Book
	for _, b := range r.books {
		if search != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(search)) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return window(out, p), nil
}

func (r *memRepo) GetBook(_ context.Context, id string) (model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return model.Book{}, errs.ErrNotFound
	}
	return b, nil
}

func (r *memRepo) GetBookByISBN(_ context.Context, code string) (model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.books {
		if b.ISBN != nil && *b.ISBN == code {
			return b, nil
		}
	}
	return model.Book{}, errs.ErrNotFound
}

func (r *memRepo) CreateBook(_ context.Context, req model.CreateBookRequest) (model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ISBN != nil {
		for _, b := range r.books {
			if b.ISBN != nil && *b.ISBN == *req.ISBN {
				return model.Book{}, errors.Wrap(errs.ErrConflict, "books_isbn_key")
			}
		}
	}
	b := model.Book{
		ID: uuid.NewString(), ISBN: req.ISBN, Title: req.Title, Author: req.Author,
		CoverURL: req.CoverURL, Publisher: req.Publisher, PublishYear: req.PublishYear,
		PageCount: req.PageCount, Description: req.Description,
	}
	r.books[b.ID] = b
	return b, nil
}

func (r *memRepo) DeleteBook(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.books, id)
	for cid, c := range r.copies {
		if c.BookID == id {
			r.deleteCopy(cid)
		}
	}
	return nil
}

func (r *memRepo) copy(c model.Copy) model.Copy {
	c.BookTitle = r.books[c.BookID].Title
	c.BookAuthor = r.books[c.BookID].Author
	c.BranchName = r.branches[c.BranchID].Name
	return c
}

func (r *memRepo) ListCopies(_ context.Context, q repository.CopyQuery) ([]model.Copy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Copy
	for _, id := range r.copySeq {
		c, ok := r.copies[id]
		if !ok {
			continue
		}
		if len(q.BookIDs) > 0 && !contains(q.BookIDs, c.BookID) {
			continue
		}
		if q.BranchID != "" && c.BranchID != q.BranchID {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(r.books[c.BookID].Title), strings.ToLower(q.Search)) {
			continue
		}
		out = append(out, r.copy(c))
	}
	return window(out, q.Page), nil
}

func (r *memRepo) GetCopy(_ context.Context, id string) (model.Copy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.copies[id]
	if !ok {
		return model.Copy{}, errs.ErrNotFound
	}
	return r.copy(c), nil
}

func (r *memRepo) GetCopyScope(_ context.Context, id string) (model.CopyScope, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.copies[id]
	if !ok {
		return model.CopyScope{}, errs.ErrNotFound
	}
	return model.CopyScope{CopyID: c.ID, BranchID: c.BranchID, BranchOwnerID: r.branches[c.BranchID].OwnerID}, nil
}

func (r *memRepo) CreateCopy(_ context.Context, c model.Copy) (model.Copy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[c.BookID]; !ok {
		return model.Copy{}, errs.ErrNotFound
	}
	if _, ok := r.branches[c.BranchID]; !ok {
		return model.Copy{}, errs.ErrNotFound
	}
	c.ID = uuid.NewString()
	r.copies[c.ID] = c
	r.copySeq = append(r.copySeq, c.ID)
	return r.copy(c), nil
}

func (r *memRepo) UpdateCopy(_ context.Context, id string, req model.UpdateCopyRequest) (model.Copy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.copies[id]
	if !ok {
		return model.Copy{}, errs.ErrNotFound
	}
	if req.Condition != nil {
		c.Condition = req.Condition
	}
	if req.Notes != nil {
		c.Notes = req.Notes
	}
	r.copies[id] = c
	return r.copy(c), nil
}

func (r *memRepo) DeleteCopy(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.copies[id]; !ok {
		return errs.ErrNotFound
	}
	r.deleteCopy(id)
	return nil
}

func (r *memRepo) deleteCopy(id string) {
	delete(r.copies, id)
	kept := r.loans[:0]
	for _, l := range r.loans {
		if l.CopyID != id {
			kept = append(kept, l)
		}
	}
	r.loans = kept
}

func (r *memRepo) loan(l model.Loan) model.Loan {
	c := r.copies[l.CopyID]
	l.BookID = c.BookID
	l.BookTitle = r.books[c.BookID].Title
	l.BranchID = c.BranchID
	l.BranchName = r.branches[c.BranchID].Name
	l.BranchOwnerID = r.branches[c.BranchID].OwnerID
	l.BorrowerName = r.profiles[l.BorrowerID].Name
	return l
}

func (r *memRepo) newestLoans() []model.Loan {
	out := make([]model.Loan, 0, len(r.loans))
	for i := len(r.loans) - 1; i >= 0; i-- {
		out = append(out, r.loan(r.loans[i]))
	}
	return out
}

func (r *memRepo) LoansByCopies(_ context.Context, copyIDs []string) (map[string][]model.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string][]model.Loan{}
	for _, l := range r.newestLoans() {
		if contains(copyIDs, l.CopyID) {
			out[l.CopyID] = append(out[l.CopyID], l)
		}
	}
	return out, nil
}

func (r *memRepo) ListLoans(_ context.Context, f model.LoanFilter, today model.Date) ([]model.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Loan
	for _, l := range r.newestLoans() {
		if f.BorrowerID != "" && l.BorrowerID != f.BorrowerID {
			continue
		}
		if f.BranchID != "" && l.BranchID != f.BranchID {
			continue
		}
		if f.OwnerID != "" && l.BranchOwnerID != f.OwnerID {
			continue
		}
		switch f.Status {
		case model.LoanStatusReturned:
			if l.IsActive() {
				continue
			}
		case model.LoanStatusOverdue:
			if !l.IsActive() || !l.DueDate.Before(today) {
				continue
			}
		case model.LoanStatusActive:
			if !l.IsActive() || l.DueDate.Before(today) {
				continue
			}
		}
		out = append(out, l)
	}
	return window(out, f.Page), nil
}

func (r *memRepo) GetLoan(_ context.Context, id string) (model.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.loans {
		if l.ID == id {
			return r.loan(l), nil
		}
	}
	return model.Loan{}, errs.ErrNotFound
}

func (r *memRepo) CreateLoan(_ context.Context, req model.CreateLoanRequest, at time.Time) (model.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.loans {
		if l.CopyID == req.CopyID && l.IsActive() {
			return model.Loan{}, errors.Wrap(errs.ErrConflict, "loans_active_copy_uidx")
		}
	}
	l := model.Loan{
		ID:         uuid.NewString(),
		CopyID:     req.CopyID,
		BorrowerID: req.BorrowerID,
		DueDate:    req.DueDate,
		BorrowedAt: at,
		Notes:      req.Notes,
	}
	r.loans = append(r.loans, l)
	return r.loan(l), nil
}

func (r *memRepo) ReturnLoan(_ context.Context, id string, at time.Time, notes *string) (model.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.loans {
		if r.loans[i].ID != id || !r.loans[i].IsActive() {
			continue
		}
		r.loans[i].ReturnedAt = &at
		if notes != nil {
			r.loans[i].Notes = notes
		}
		return r.loan(r.loans[i]), nil
	}
	return model.Loan{}, errs.ErrAlreadyReturned
}

func window[T any](items []T, p model.Page) []T {
	if p.Limit == 0 {
		return items
	}
	if p.Offset >= len(items) {
		return nil
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type stubEnricher struct {
	mu    sync.Mutex
	calls int
	books map[string]isbn.Metadata
}

func (e *stubEnricher) Lookup(_ context.Context, code string) (*isbn.Metadata, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	m, ok := e.books[code]
	if !ok {
		return nil, false
	}
	return &m, true
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.LoanEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev model.LoanEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}
