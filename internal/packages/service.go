package packages

import (
	"context"
	"fmt"

	"roomly/internal/shared/config"
	"roomly/pkg/cache"
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	CreatePackage(ctx context.Context, req CreatePackageRequest) (*Package, error)
	GetPackage(ctx context.Context, id uint) (*Package, error)
	ListPackages(ctx context.Context, activeOnly bool) ([]Package, error)
	UpdatePackage(ctx context.Context, id uint, req UpdatePackageRequest) (*Package, error)
	DeletePackage(ctx context.Context, id uint) error

	CreateService(ctx context.Context, req CreateServiceRequest) (*HotelService, error)
	ListServices(ctx context.Context) ([]HotelService, error)
	UpdateService(ctx context.Context, id uint, req UpdateServiceRequest) (*HotelService, error)
	DeleteService(ctx context.Context, id uint) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
	cfg          *config.Config
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{repo: repo, cfg: cfg}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreatePackage(ctx context.Context, req CreatePackageRequest) (*Package, error) {
	items := make([]PackageItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		item, err := s.buildItem(ctx, itemReq)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	pkg := &Package{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Nights:      req.Nights,
		IsActive:    true,
		Items:       items,
	}
	if err := s.repo.CreatePackage(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}
	s.invalidateListCache(ctx)
	return pkg, nil
}

func (s *service) buildItem(ctx context.Context, req PackageItemRequest) (PackageItem, error) {
	var item PackageItem
	switch ItemKind(req.Kind) {
	case ItemKindRoom:
		if req.RoomTypeID == nil {
			return item, ErrMalformedItem
		}
		item = RoomItem(*req.RoomTypeID, req.Quantity)
	case ItemKindService:
		if req.ServiceID == nil {
			return item, ErrMalformedItem
		}
		if _, err := s.repo.GetServiceByID(ctx, *req.ServiceID); err != nil {
			return item, err
		}
		item = ServiceItem(*req.ServiceID, req.Quantity)
	default:
		return item, ErrMalformedItem
	}
	return item, item.Validate()
}

func (s *service) GetPackage(ctx context.Context, id uint) (*Package, error) {
	return s.repo.GetPackageByID(ctx, id)
}

func (s *service) ListPackages(ctx context.Context, activeOnly bool) ([]Package, error) {
	if s.cacheService != nil && activeOnly {
		var pkgs []Package
		err := s.cacheService.GetOrSet(ctx, cache.KeyPackageList, s.cfg.Redis.CatalogTTL, func() (interface{}, error) {
			return s.repo.GetAllPackages(ctx, true)
		}, &pkgs)
		if err == nil {
			return pkgs, nil
		}
	}
	return s.repo.GetAllPackages(ctx, activeOnly)
}

func (s *service) UpdatePackage(ctx context.Context, id uint, req UpdatePackageRequest) (*Package, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Nights != nil {
		updates["nights"] = *req.Nights
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	pkg, err := s.repo.UpdatePackage(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	if req.Items != nil {
		items := make([]PackageItem, 0, len(req.Items))
		for _, itemReq := range req.Items {
			item, err := s.buildItem(ctx, itemReq)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if err := s.repo.ReplaceItems(ctx, id, items); err != nil {
			return nil, err
		}
		pkg, err = s.repo.GetPackageByID(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	s.invalidateListCache(ctx)
	return pkg, nil
}

func (s *service) DeletePackage(ctx context.Context, id uint) error {
	if err := s.repo.DeletePackage(ctx, id); err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	return nil
}

func (s *service) CreateService(ctx context.Context, req CreateServiceRequest) (*HotelService, error) {
	svc := &HotelService{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *service) ListServices(ctx context.Context) ([]HotelService, error) {
	return s.repo.GetAllServices(ctx)
}

func (s *service) UpdateService(ctx context.Context, id uint, req UpdateServiceRequest) (*HotelService, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	return s.repo.UpdateService(ctx, id, updates)
}

func (s *service) DeleteService(ctx context.Context, id uint) error {
	return s.repo.DeleteService(ctx, id)
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(ctx, cache.KeyPackageList)
}
