package http

import "github.com/avolkov/libris/internal/entities"

// Store interfaces consumed by the HTTP controllers. The repositories in
// internal/database implement them; controllers never see gorm directly.

// CatalogStore provides the catalog operations behind the search, add
// and remove pages.
type CatalogStore interface {
	Search(pattern string, availableOnly bool) ([]entities.Book, error)
	All() ([]entities.Book, error)
	Add(isbn, name, author string) (*entities.Book, error)
	GetByID(id uint) (*entities.Book, error)
	Remove(id uint) error
}

// ReservationStore provides the borrow/return workflow behind the
// dashboard.
type ReservationStore interface {
	Borrow(bookID, userID uint) (*entities.Reservation, error)
	Return(reservationID, userID uint) error
	ListForUser(userID uint) ([]entities.Reservation, error)
}
