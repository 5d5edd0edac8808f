package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kmalyshev/webshop/internal/domain"
	"github.com/kmalyshev/webshop/internal/models"
	"github.com/kmalyshev/webshop/internal/transport"
)

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func nameTaken(tx *gorm.DB, name string, excludeID uint) (bool, error) {
	var total int64
	q := tx.Model(&models.Product{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, prod.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrNameTaken
		}
		return tx.Create(prod).Error
	})
}

func (r *GormRepo) PatchProduct(ctx context.Context, req transport.UpdateProductRequest, id uint) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&prod, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProductNotFound
			}
			return err
		}

		if req.Name != nil && *req.Name != prod.Name {
			taken, err := nameTaken(tx, *req.Name, prod.ID)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("rename to %q: %w", *req.Name, domain.ErrNameTaken)
			}
			prod.Name = *req.Name
		}
		if req.Price != nil {
			prod.Price = *req.Price
		}
		if req.Description != nil {
			prod.Description = req.Description
		}
		if req.Stock != nil {
			prod.Stock = *req.Stock
		}

		return tx.Save(&prod).Error
	}); err != nil {
		return nil, err
	}

	return &prod, nil
}

// DeleteProduct also removes cart items that reference the product, in the
// same transaction. Stock is not restored: the product ceases to exist.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Product{}, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProductNotFound
			}
			return err
		}

		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Product{}, id).Error
	})
}
