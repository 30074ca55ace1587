package auth

import (
	"context"
	"errors"
)

var ErrStaffNotFound = errors.New("staff not found")

// StaffRepository defines the data-access contract.
// Service depends ONLY on this interface.
type StaffRepository interface {
	Save(ctx context.Context, staff *Staff) error
	FindByName(ctx context.Context, name string) (*Staff, error)
}
