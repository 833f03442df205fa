package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/kheyer/RESTful-App/internal/apperror"
	"github.com/kheyer/RESTful-App/models"
)

// Store is the GORM-backed implementation of Catalog. The underlying
// connection pool is safe for concurrent requests; every request gets a
// connection scoped to its query and released when the query returns.
type Store struct {
	db *gorm.DB
}

// Open connects to Postgres and runs migrations.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return New(db)
}

// New wraps an existing GORM handle and runs migrations. Tests use this
// with an in-memory SQLite handle.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Item{}); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user", fmt.Sprint(id))
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *Store) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *Store) CategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("category", name)
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &category, nil
}

func (s *Store) CategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("category", fmt.Sprint(id))
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &category, nil
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.Category{}, category.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperror.DuplicateName("Category", category.Name)
		}
		if err := tx.Create(category).Error; err != nil {
			return translateDuplicate(err, "Category", category.Name)
		}
		return nil
	})
}

func (s *Store) RenameCategory(ctx context.Context, id uint, name string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.Category{}, name, id)
		if err != nil {
			return err
		}
		if taken {
			return apperror.DuplicateName("Category", name)
		}
		res := tx.Model(&models.Category{}).Where("id = ?", id).Update("name", name)
		if res.Error != nil {
			return translateDuplicate(res.Error, "Category", name)
		}
		if res.RowsAffected == 0 {
			return apperror.NotFound("category", fmt.Sprint(id))
		}
		return nil
	})
}

func (s *Store) DeleteCategory(ctx context.Context, id uint) error {
	// Items are owned by their category, so the delete cascades in the
	// same transaction.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.Item{}).Error; err != nil {
			return fmt.Errorf("delete category items: %w", err)
		}
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete category: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.NotFound("category", fmt.Sprint(id))
		}
		return nil
	})
}

func (s *Store) Items(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (s *Store) ItemsByCategory(ctx context.Context, categoryID uint) ([]models.Item, error) {
	var items []models.Item
	err := s.db.WithContext(ctx).Where("category_id = ?", categoryID).Order("name ASC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list category items: %w", err)
	}
	return items, nil
}

func (s *Store) ItemByName(ctx context.Context, name string) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("item", name)
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return &item, nil
}

func (s *Store) CreateItem(ctx context.Context, item *models.Item) error {
	if item.Date.IsZero() {
		item.Date = time.Now()
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.Item{}, item.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperror.DuplicateName("Item", item.Name)
		}
		if err := tx.Create(item).Error; err != nil {
			return translateDuplicate(err, "Item", item.Name)
		}
		return nil
	})
}

func (s *Store) UpdateItem(ctx context.Context, item *models.Item) error {
	item.Date = time.Now()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.Item{}, item.Name, item.ID)
		if err != nil {
			return err
		}
		if taken {
			return apperror.DuplicateName("Item", item.Name)
		}
		res := tx.Model(&models.Item{}).Where("id = ?", item.ID).Updates(map[string]any{
			"name":        item.Name,
			"description": item.Description,
			"picture":     item.Picture,
			"category_id": item.CategoryID,
			"date":        item.Date,
		})
		if res.Error != nil {
			return translateDuplicate(res.Error, "Item", item.Name)
		}
		if res.RowsAffected == 0 {
			return apperror.NotFound("item", fmt.Sprint(item.ID))
		}
		return nil
	})
}

func (s *Store) DeleteItem(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Item{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete item: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.NotFound("item", fmt.Sprint(id))
		}
		return nil
	})
}

// nameTaken reports whether another row of the given model already uses
// name. The unique index backstops the window between this check and
// the write; translateDuplicate maps that case to the same condition.
func nameTaken(tx *gorm.DB, model any, name string, excludeID uint) (bool, error) {
	var count int64
	q := tx.Model(model).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check name: %w", err)
	}
	return count > 0, nil
}

func translateDuplicate(err error, kind, name string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.DuplicateName(kind, name)
	}
	return fmt.Errorf("write %s: %w", kind, err)
}
