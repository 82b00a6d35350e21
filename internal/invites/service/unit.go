package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dwellhq/dwell/internal/invites/domain"
	"github.com/dwellhq/dwell/internal/invites/store"
	"github.com/dwellhq/dwell/pkg/idx"
	"github.com/dwellhq/dwell/pkg/slogx"
)

var ErrInvalidUnitRequest = errors.New("invalid unit request")

type UnitService struct {
	Store store.Store

	Now func() time.Time
}

func (s *UnitService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateUnit registers a housing unit that invites can be minted against.
func (s *UnitService) CreateUnit(ctx context.Context, name string) (domain.Unit, error) {
	log := slogx.FromContext(ctx)

	if name == "" {
		return domain.Unit{}, ErrInvalidUnitRequest
	}

	u := domain.Unit{
		ID:        idx.New().String(),
		Name:      name,
		CreatedAt: s.now(),
	}
	if err := s.Store.Units().CreateUnit(ctx, u); err != nil {
		log.Error("failed to create unit", slog.Any("error", err))
		return domain.Unit{}, mapStoreErr(err)
	}

	log.Info("unit created", slog.String("unit_id", u.ID), slog.String("name", u.Name))
	return u, nil
}

// GetUnit returns a unit by id.
func (s *UnitService) GetUnit(ctx context.Context, id string) (domain.Unit, error) {
	u, err := s.Store.Units().GetUnitByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Unit{}, ErrUnitNotFound
		}
		return domain.Unit{}, mapStoreErr(err)
	}
	return u, nil
}
