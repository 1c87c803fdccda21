package model

import (
	"database/sql/driver"
	"fmt"

	"github.com/pkg/errors"
)

// Role is the closed set of actor roles. The zero value is not a valid role.
type Role uint8

const (
	RoleBorrower Role = iota + 1
	RoleBranchOwner
	RoleAdmin
)

var ErrInvalidRole = errors.New("invalid role")

func (r Role) String() string {
	switch r {
	case RoleBorrower:
		return "borrower"
	case RoleBranchOwner:
		return "branch_owner"
	case RoleAdmin:
		return "admin"
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

func (r Role) Valid() bool {
	switch r {
	case RoleBorrower, RoleBranchOwner, RoleAdmin:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	switch s {
	case "borrower":
		return RoleBorrower, nil
	case "branch_owner":
		return RoleBranchOwner, nil
	case "admin":
		return RoleAdmin, nil
	}
	return 0, errors.Wrapf(ErrInvalidRole, "%q", s)
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, errors.Wrapf(ErrInvalidRole, "%d", uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	role, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

func (r *Role) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return r.UnmarshalText([]byte(v))
	case []byte:
		return r.UnmarshalText(v)
	}
	return errors.Errorf("role: unsupported scan type %T", src)
}

func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, errors.Wrapf(ErrInvalidRole, "%d", uint8(r))
	}
	return r.String(), nil
}
