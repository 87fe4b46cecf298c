// Package books provides the catalog operations: searching, adding and
// removing books.
//
// This package implements the CatalogStore interface defined in
// internal/http/stores.go.
//
//	var _ http.CatalogStore = (*Repository)(nil)
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/avolkov/libris/internal/entities"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrBookReserved = errors.New("book is currently reserved")
	ErrNameRequired = errors.New("book name is required")
)

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Search returns all books whose name contains pattern as a substring.
// An empty pattern matches every book. When availableOnly is set, books
// that are currently reserved are filtered out. A miss returns an empty
// slice, not an error.
func (r *Repository) Search(pattern string, availableOnly bool) ([]entities.Book, error) {
	books := []entities.Book{}

	query := r.db.Model(&entities.Book{}).Order("name ASC")
	if pattern != "" {
		query = query.Where("name LIKE ?", "%"+pattern+"%")
	}
	if availableOnly {
		query = query.Where("reserved = ?", false)
	}

	if err := query.Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	return books, nil
}

// All returns the whole catalog ordered by name.
func (r *Repository) All() ([]entities.Book, error) {
	return r.Search("", false)
}

// Add creates a new, unreserved catalog entry.
func (r *Repository) Add(isbn, name, author string) (*entities.Book, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	book := &entities.Book{
		ISBN:   isbn,
		Name:   name,
		Author: author,
	}
	if err := r.db.Create(book).Error; err != nil {
		return nil, fmt.Errorf("failed to add book: %w", err)
	}
	return book, nil
}

// GetByID retrieves a single book.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

// Remove deletes a book from the catalog. Removal of a book with an
// active reservation is rejected with ErrBookReserved; the check and the
// delete run in one transaction so a concurrent borrow cannot leave an
// orphaned reservation behind.
func (r *Repository) Remove(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return fmt.Errorf("failed to load book: %w", err)
		}

		if book.Reserved {
			return ErrBookReserved
		}

		// The reserved flag can only be false while no reservation row
		// exists, but guard against drift from older databases anyway.
		var active int64
		if err := tx.Model(&entities.Reservation{}).Where("book_id = ?", id).Count(&active).Error; err != nil {
			return fmt.Errorf("failed to count reservations: %w", err)
		}
		if active > 0 {
			return ErrBookReserved
		}

		if err := tx.Delete(&entities.Book{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete book: %w", err)
		}
		return nil
	})
}
