package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid name or password")
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidHash        = errors.New("staff password hash is not a bcrypt hash")
)

type Service struct {
	repo StaffRepository
}

func NewService(repo StaffRepository) *Service {
	return &Service{repo: repo}
}

// HashPassword is what gets stored in KITCHEN_STAFF_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrMissingFields
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Seed stores a staff member whose password is already a bcrypt hash,
// replacing any previous entry with the same name.
func (s *Service) Seed(ctx context.Context, name, passwordHash string) error {
	if strings.TrimSpace(name) == "" || passwordHash == "" {
		return ErrMissingFields
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return ErrInvalidHash
	}

	return s.repo.Save(ctx, &Staff{
		Name:     strings.TrimSpace(name),
		Password: passwordHash,
		Role:     RoleKitchen,
	})
}

// LOGIN
func (s *Service) Login(ctx context.Context, name, password string) (*Staff, error) {
	staff, err := s.repo.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(staff.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return staff, nil
}
