// Package repository owns the relational schema and all reads/writes
// over it. Workflow code depends on the interfaces here, never on GORM
// directly, so the persistence engine stays swappable.
package repository

import (
	"context"

	"github.com/kheyer/RESTful-App/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uint) (*models.User, error)
}

type CategoryRepository interface {
	// Categories lists all categories ordered by name ascending.
	Categories(ctx context.Context) ([]models.Category, error)
	CategoryByName(ctx context.Context, name string) (*models.Category, error)
	CategoryByID(ctx context.Context, id uint) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	RenameCategory(ctx context.Context, id uint, name string) error
	// DeleteCategory removes the category and every item in it.
	DeleteCategory(ctx context.Context, id uint) error
}

type ItemRepository interface {
	// Items lists all items ordered by name ascending.
	Items(ctx context.Context) ([]models.Item, error)
	ItemsByCategory(ctx context.Context, categoryID uint) ([]models.Item, error)
	ItemByName(ctx context.Context, name string) (*models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id uint) error
}

// Catalog is the full persistence surface the handlers wire against.
type Catalog interface {
	UserRepository
	CategoryRepository
	ItemRepository
}
