package status

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service records and lists status checks.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new status service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create validates the request and stores a new check stamped with the current UTC time.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Check, error) {
	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return nil, ErrInvalidClientName
	}
	if len(name) > MaxClientNameLength {
		return nil, ErrClientNameTooLong
	}

	check := &Check{
		ID:         uuid.New().String(),
		ClientName: name,
		Timestamp:  s.now().UTC(),
	}
	if err := s.repo.Create(ctx, check); err != nil {
		return nil, err
	}
	return check, nil
}

// List returns recorded checks, oldest first.
func (s *Service) List(ctx context.Context) ([]*Check, error) {
	checks, err := s.repo.List(ctx, DefaultListLimit)
	if err != nil {
		return nil, err
	}
	if checks == nil {
		checks = []*Check{}
	}
	return checks, nil
}
