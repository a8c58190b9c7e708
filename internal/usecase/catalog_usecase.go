package usecase

import (
	"context"

	"hospital-dashboard/internal/converter"
	"hospital-dashboard/internal/delivery/dto"
	"hospital-dashboard/internal/domain/entity"
	"hospital-dashboard/internal/domain/repository"
	"hospital-dashboard/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Cache keys for the selector lists.
const (
	CatalogKeySpecialties   = "specialties"
	CatalogKeyProfessionals = "professionals"
	CatalogKeyPatients      = "patients"
)

type CatalogUsecase interface {
	ListSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error)
	ListProfessionals(ctx context.Context) (*dto.CatalogListResponse, error)
	ListPatients(ctx context.Context) (*dto.CatalogListResponse, error)
}

type catalogUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	catalogRepo repository.CatalogRepository
	cache       service.CatalogCache
	group       singleflight.Group
}

func NewCatalogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	catalogRepo repository.CatalogRepository,
	cache service.CatalogCache,
) CatalogUsecase {
	if cache == nil {
		cache = service.NewNoopCatalogCache()
	}
	return &catalogUsecase{
		db:          db,
		log:         log,
		catalogRepo: catalogRepo,
		cache:       cache,
	}
}

// ListSpecialties returns every specialty ordered by name. The first entry is
// the selector's default.
func (u *catalogUsecase) ListSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error) {
	specialties, err := loadCached(ctx, u, CatalogKeySpecialties, func(db *gorm.DB) ([]entity.Specialty, error) {
		return u.catalogRepo.FindSpecialties(db)
	})
	if err != nil {
		return nil, err
	}
	return converter.SpecialtiesToResponse(specialties), nil
}

func (u *catalogUsecase) ListProfessionals(ctx context.Context) (*dto.CatalogListResponse, error) {
	items, err := loadCached(ctx, u, CatalogKeyProfessionals, u.catalogRepo.FindProfessionals)
	if err != nil {
		return nil, err
	}
	return converter.CatalogItemsToResponse(items), nil
}

func (u *catalogUsecase) ListPatients(ctx context.Context) (*dto.CatalogListResponse, error) {
	items, err := loadCached(ctx, u, CatalogKeyPatients, u.catalogRepo.FindPatients)
	if err != nil {
		return nil, err
	}
	return converter.CatalogItemsToResponse(items), nil
}

// loadCached reads a list from the cache, falling back to the store.
// Concurrent misses for the same key share one store query. That query runs
// detached from the caller's cancellation so one client going away does not
// fail the others waiting on it; a cancelled caller stops waiting and gets
// its own context error. A cache outage only costs the round trip.
func loadCached[T any](ctx context.Context, u *catalogUsecase, key string, fetch func(db *gorm.DB) ([]T, error)) ([]T, error) {
	var cached []T
	hit, err := u.cache.Get(ctx, key, &cached)
	if err != nil {
		u.log.Warnf("Catalog cache read failed for %s: %+v", key, err)
	}
	if hit {
		return cached, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := u.group.DoChan(key, func() (interface{}, error) {
		items, err := fetch(u.db.WithContext(shared))
		if err != nil {
			return nil, err
		}
		if err := u.cache.Set(shared, key, items); err != nil {
			u.log.Warnf("Catalog cache write failed for %s: %+v", key, err)
		}
		return items, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			u.log.Warnf("Failed to load %s: %+v", key, res.Err)
			return nil, res.Err
		}
		return res.Val.([]T), nil
	}
}
