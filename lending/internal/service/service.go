package service

import (
	"context"
	"time"

	"github.com/Astemirdum/home-library/lending/internal/availability"
	"github.com/Astemirdum/home-library/lending/internal/errs"
	"github.com/Astemirdum/home-library/lending/internal/loan"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/Astemirdum/home-library/lending/internal/repository"
	"github.com/Astemirdum/home-library/pkg/isbn"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Enricher finds catalog metadata for an ISBN. ok is false when no catalog
// knows the book or none could be reached.
type Enricher interface {
	Lookup(ctx context.Context, isbn string) (meta *isbn.Metadata, ok bool)
}

type Publisher interface {
	Publish(ctx context.Context, ev model.LoanEvent) error
}

type Clock func() time.Time

type Service struct {
	repo     repository.Repository
	enricher Enricher
	events   Publisher
	now      Clock
	log      *zap.Logger
}

func NewService(repo repository.Repository, enricher Enricher, events Publisher, now Clock, log *zap.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:     repo,
		enricher: enricher,
		events:   events,
		now:      now,
		log:      log.Named("service"),
	}
}

// GetProfile lets the service act as the identity profile store.
func (s *Service) GetProfile(ctx context.Context, id string) (model.Profile, error) {
	return s.repo.GetProfile(ctx, id)
}

func (s *Service) today() time.Time {
	return s.now().UTC()
}

func (s *Service) publish(ctx context.Context, typ model.LoanEventType, l model.Loan, at time.Time) {
	ev := model.LoanEvent{
		Type:       typ,
		LoanID:     l.ID,
		CopyID:     l.CopyID,
		BranchID:   l.BranchID,
		BorrowerID: l.BorrowerID,
		DueDate:    l.DueDate,
		At:         at,
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("publish loan event", zap.String("type", string(typ)), zap.String("loan", l.ID), zap.Error(err))
	}
}

func authenticated(actor model.Actor) error {
	if actor.IsAnonymous() {
		return errs.ErrUnauthenticated
	}
	return nil
}

func notFound(err error, what, id string) error {
	if errors.Is(err, errs.ErrNotFound) {
		return errors.Wrapf(errs.ErrNotFound, "%s %s", what, id)
	}
	return errors.Wrap(err, what)
}

// annotate attaches availability and the current loan, with derived statuses,
// to every copy.
func (s *Service) annotate(ctx context.Context, copies []model.Copy) ([]model.Copy, map[string][]model.Loan, error) {
	ids := make([]string, 0, len(copies))
	for _, c := range copies {
		ids = append(ids, c.ID)
	}
	loans, err := s.repo.LoansByCopies(ctx, ids)
	if err != nil {
		return nil, nil, errors.Wrap(err, "loans by copies")
	}
	today := s.today()
	for id := range loans {
		loans[id] = loan.WithStatus(loans[id], today)
	}
	return availability.AnnotateAll(copies, loans), loans, nil
}
