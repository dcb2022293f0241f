package packages

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrPackageNotFound = errors.New("package not found")
	ErrServiceNotFound = errors.New("service not found")
)

type Repository interface {
	CreatePackage(ctx context.Context, pkg *Package) error
	GetPackageByID(ctx context.Context, id uint) (*Package, error)
	GetAllPackages(ctx context.Context, activeOnly bool) ([]Package, error)
	UpdatePackage(ctx context.Context, id uint, updates map[string]interface{}) (*Package, error)
	DeletePackage(ctx context.Context, id uint) error
	ReplaceItems(ctx context.Context, packageID uint, items []PackageItem) error

	CreateService(ctx context.Context, svc *HotelService) error
	GetServiceByID(ctx context.Context, id uint) (*HotelService, error)
	GetAllServices(ctx context.Context) ([]HotelService, error)
	UpdateService(ctx context.Context, id uint, updates map[string]interface{}) (*HotelService, error)
	DeleteService(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreatePackage(ctx context.Context, pkg *Package) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *repository) GetPackageByID(ctx context.Context, id uint) (*Package, error) {
	var pkg Package
	err := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&pkg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return &pkg, nil
}

func (r *repository) GetAllPackages(ctx context.Context, activeOnly bool) ([]Package, error) {
	var pkgs []Package
	query := r.db.WithContext(ctx).Preload("Items").Order("price asc")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&pkgs).Error; err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (r *repository) UpdatePackage(ctx context.Context, id uint, updates map[string]interface{}) (*Package, error) {
	var pkg Package
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&pkg).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetPackageByID(ctx, id)
}

func (r *repository) DeletePackage(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Package{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPackageNotFound
	}
	return nil
}

func (r *repository) ReplaceItems(ctx context.Context, packageID uint, items []PackageItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", packageID).Delete(&PackageItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].PackageID = packageID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *repository) CreateService(ctx context.Context, svc *HotelService) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *repository) GetServiceByID(ctx context.Context, id uint) (*HotelService, error) {
	var svc HotelService
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&svc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &svc, nil
}

func (r *repository) GetAllServices(ctx context.Context) ([]HotelService, error) {
	var svcs []HotelService
	if err := r.db.WithContext(ctx).Order("name asc").Find(&svcs).Error; err != nil {
		return nil, err
	}
	return svcs, nil
}

func (r *repository) UpdateService(ctx context.Context, id uint, updates map[string]interface{}) (*HotelService, error) {
	var svc HotelService
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&svc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&svc).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *repository) DeleteService(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&HotelService{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}
