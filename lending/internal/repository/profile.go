package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/Astemirdum/home-library/lending/internal/model"
)

var profileColumns = []string{"id", "email", "name", "role", "created_at"}

func (r *repository) GetProfile(ctx context.Context, id string) (model.Profile, error) {
	return collectOne[model.Profile](ctx, r.db, qb.Select(profileColumns...).
		From(profilesTableName).
		Where(sq.Eq{"id": id}).
		Limit(1))
}

func (r *repository) ListProfiles(ctx context.Context, f model.UserFilter) ([]model.Profile, error) {
	q := qb.Select(profileColumns...).
		From(profilesTableName).
		OrderBy("created_at", "id")
	if f.Role != nil {
		q = q.Where(sq.Eq{"role": f.Role.String()})
	}
	if f.Search != "" {
		q = q.Where(ilike(f.Search, "name", "email"))
	}
	return collectAll[model.Profile](ctx, r.db, page(q, f.Page))
}

// SaveProfileName sets the display name, creating the borrower profile of an
// authenticated user that has none yet.
func (r *repository) SaveProfileName(ctx context.Context, id, email, name string) (model.Profile, error) {
	var mail *string
	if email != "" {
		mail = &email
	}
	return collectOne[model.Profile](ctx, r.db, qb.Insert(profilesTableName).
		Columns("id", "email", "name", "role").
		Values(id, mail, name, model.RoleBorrower.String()).
		Suffix("on conflict (id) do update set name = excluded.name").
		Suffix("returning "+joinColumns(profileColumns)))
}

func (r *repository) UpdateProfileRole(ctx context.Context, id string, role model.Role) (model.Profile, error) {
	return collectOne[model.Profile](ctx, r.db, qb.Update(profilesTableName).
		Set("role", role.String()).
		Where(sq.Eq{"id": id}).
		Suffix("returning "+joinColumns(profileColumns)))
}
