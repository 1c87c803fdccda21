package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/google/uuid"
)

var branchColumns = []string{
	"br.id", "br.name", "br.address", "br.owner_id",
	"p.name as owner_name",
	fmt.Sprintf("(select count(*) from %s c where c.branch_id = br.id) as copy_count", copiesTableName),
	"br.created_at",
}

func (r *repository) selectBranches() sq.SelectBuilder {
	return qb.Select(branchColumns...).
		From(branchesTableName + " br").
		LeftJoin(fmt.Sprintf("%s p on p.id = br.owner_id", profilesTableName))
}

func (r *repository) ListBranches(ctx context.Context) ([]model.Branch, error) {
	return collectAll[model.Branch](ctx, r.db, r.selectBranches().OrderBy("br.name", "br.id"))
}

func (r *repository) BranchesByOwner(ctx context.Context, ownerID string) ([]model.BranchRef, error) {
	return collectAll[model.BranchRef](ctx, r.db, qb.Select("id", "name").
		From(branchesTableName).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("name", "id"))
}

func (r *repository) GetBranch(ctx context.Context, id string) (model.Branch, error) {
	return collectOne[model.Branch](ctx, r.db, r.selectBranches().Where(sq.Eq{"br.id": id}).Limit(1))
}

func (r *repository) GetBranchOwner(ctx context.Context, id string) (string, error) {
	query, args, err := qb.Select("owner_id").
		From(branchesTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", err
	}
	var ownerID string
	if err = r.db.QueryRow(ctx, query, args...).Scan(&ownerID); err != nil {
		return "", mapErr(err)
	}
	return ownerID, nil
}

func (r *repository) CreateBranch(ctx context.Context, req model.CreateBranchRequest) (model.Branch, error) {
	id := uuid.NewString()
	if _, err := exec(ctx, r.db, qb.Insert(branchesTableName).
		Columns("id", "name", "address", "owner_id").
		Values(id, req.Name, req.Address, req.OwnerID)); err != nil {
		return model.Branch{}, err
	}
	return r.GetBranch(ctx, id)
}

func (r *repository) UpdateBranch(ctx context.Context, id string, req model.UpdateBranchRequest) (model.Branch, error) {
	q := qb.Update(branchesTableName).Where(sq.Eq{"id": id})
	if req.Name != nil {
		q = q.Set("name", *req.Name)
	}
	if req.Address != nil {
		q = q.Set("address", *req.Address)
	}
	n, err := exec(ctx, r.db, q)
	if err != nil {
		return model.Branch{}, err
	}
	if n == 0 {
		return model.Branch{}, errNotFound("branch", id)
	}
	return r.GetBranch(ctx, id)
}
