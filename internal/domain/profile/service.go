package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"paystub/internal/domain/export"
	"paystub/internal/domain/paystub"
	"paystub/internal/domain/statement"
)

type Service struct {
	store    StoreAPI
	exporter *export.Exporter
	maxPages int
	now      func() time.Time
}

func NewService(store StoreAPI, exporter *export.Exporter, maxPages int) *Service {
	return &Service{store: store, exporter: exporter, maxPages: maxPages, now: time.Now}
}

func (s *Service) List(ctx context.Context, limit, offset int) (ListResult, error) {
	items, total, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Items: items, Total: total}, nil
}

func (s *Service) Get(ctx context.Context, id string) (Profile, error) {
	if uuid.Validate(id) != nil {
		return Profile{}, ErrNotFound
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, name string, cfg paystub.PayConfiguration) (Profile, error) {
	name, err := cleanName(name)
	if err != nil {
		return Profile{}, err
	}
	now := s.now().UTC()
	p := Profile{
		ID:        uuid.NewString(),
		Name:      name,
		Config:    paystub.AssignDeductionIDs(cfg),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return Profile{}, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id, name string, cfg paystub.PayConfiguration) (Profile, error) {
	name, err := cleanName(name)
	if err != nil {
		return Profile{}, err
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	p.Name = name
	p.Config = paystub.AssignDeductionIDs(cfg)
	p.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return ErrNotFound
	}
	return s.store.Delete(ctx, id)
}

// Statement computes and formats the statement periodsBack periods before the
// profile's check date.
func (s *Service) Statement(ctx context.Context, id string, periodsBack int) (StatementResult, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return StatementResult{}, err
	}
	stub := paystub.Compute(p.Config, periodsBack)
	return StatementResult{Statement: stub, View: statement.Build(p.Config, stub)}, nil
}

// Export renders count consecutive statements for the profile as one PDF.
func (s *Service) Export(ctx context.Context, id string, count int) (export.Document, error) {
	if err := export.CheckCount(count, s.maxPages); err != nil {
		return export.Document{}, err
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return export.Document{}, err
	}
	return s.exporter.Render(ctx, p.Config, count)
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}
