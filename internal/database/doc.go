// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── books/           # Catalog operations: search, add, remove
//	├── reservations/    # Borrow/return workflow
//	└── users/           # User records backing authentication
//
// Each sub-package provides a Repository type with domain-specific
// operations:
//
//	db, err := database.NewDatabase("./app.db")
//
//	booksRepo := books.NewRepository(db.DB)
//	loansRepo := reservations.NewRepository(db.DB, 14*24*time.Hour)
//
//	results, err := booksRepo.Search("hobbit", true)
//	res, err := loansRepo.Borrow(bookID, userID)
//
// Repositories implement the store interfaces declared in internal/http
// (CatalogStore, ReservationStore) and internal/auth (UserStore); each
// carries a compile-time interface check.
//
// Compound mutations (borrow, return, remove-with-check) run inside a
// single gorm transaction so the Book.Reserved flag can never drift from
// the existence of its Reservation row.
package database
