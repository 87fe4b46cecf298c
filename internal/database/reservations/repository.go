// Package reservations provides the borrow/return workflow.
//
// This package implements the ReservationStore interface defined in
// internal/http/stores.go.
//
//	var _ http.ReservationStore = (*Repository)(nil)
package reservations

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/avolkov/libris/internal/entities"
)

var (
	ErrBookNotFound        = errors.New("book not found")
	ErrBookAlreadyReserved = errors.New("book is already reserved")
	ErrReservationNotFound = errors.New("reservation not found")
)

// Repository handles all reservation database operations.
type Repository struct {
	db         *gorm.DB
	loanPeriod time.Duration
}

// NewRepository creates a new reservation repository. loanPeriod is how
// long a borrowed book may be kept before it is due.
func NewRepository(db *gorm.DB, loanPeriod time.Duration) *Repository {
	return &Repository{db: db, loanPeriod: loanPeriod}
}

// Borrow creates a reservation for a book and marks it reserved. The two
// writes run in a single transaction, and the reserved-flag flip is
// guarded with a conditional update so two competing borrows of the same
// book cannot both succeed; the loser gets ErrBookAlreadyReserved.
func (r *Repository) Borrow(bookID, userID uint) (*entities.Reservation, error) {
	var reservation *entities.Reservation

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return fmt.Errorf("failed to load book: %w", err)
		}

		if book.Reserved {
			return ErrBookAlreadyReserved
		}

		// Conditional flip serializes competing borrow attempts: only
		// one transaction can move reserved from false to true.
		result := tx.Model(&entities.Book{}).
			Where("id = ? AND reserved = ?", bookID, false).
			Update("reserved", true)
		if result.Error != nil {
			return fmt.Errorf("failed to mark book reserved: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrBookAlreadyReserved
		}

		now := time.Now()
		reservation = &entities.Reservation{
			BookID:       bookID,
			UserID:       userID,
			BorrowedFrom: now,
			BorrowedTo:   now.Add(r.loanPeriod),
		}
		if err := tx.Create(reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// Return deletes a reservation and clears the book's reserved flag in a
// single transaction. A reservation owned by a different user is reported
// as ErrReservationNotFound rather than leaking its existence.
func (r *Repository) Return(reservationID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var reservation entities.Reservation
		if err := tx.First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("failed to load reservation: %w", err)
		}

		if reservation.UserID != userID {
			return ErrReservationNotFound
		}

		if err := tx.Delete(&entities.Reservation{}, reservationID).Error; err != nil {
			return fmt.Errorf("failed to delete reservation: %w", err)
		}

		err := tx.Model(&entities.Book{}).
			Where("id = ?", reservation.BookID).
			Update("reserved", false).Error
		if err != nil {
			return fmt.Errorf("failed to clear reserved flag: %w", err)
		}
		return nil
	})
}

// ListForUser returns the user's active reservations with their book
// details, oldest loan first.
func (r *Repository) ListForUser(userID uint) ([]entities.Reservation, error) {
	reservations := []entities.Reservation{}
	err := r.db.Preload("Book").
		Where("user_id = ?", userID).
		Order("borrowed_from ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}
