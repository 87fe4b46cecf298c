package entities

import "time"

type User struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Username     string        `gorm:"uniqueIndex;size:100" json:"username"`
	PasswordHash string        `gorm:"size:100" json:"-"`
	Reservations []Reservation `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type Book struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	ISBN         string        `gorm:"size:32" json:"isbn,omitempty"`
	Name         string        `gorm:"index;size:512" json:"name"`
	Author       string        `gorm:"size:256" json:"author"`
	Reserved     bool          `gorm:"default:false" json:"reserved"`
	Reservations []Reservation `gorm:"foreignKey:BookID" json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Reservation is an active loan of a Book by a User. Returning a book
// deletes the row; there is no history of completed loans.
type Reservation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BookID       uint      `gorm:"index" json:"book_id"`
	UserID       uint      `gorm:"index" json:"user_id"`
	BorrowedFrom time.Time `json:"borrowed_from"`
	BorrowedTo   time.Time `json:"borrowed_to"`
	Book         Book      `gorm:"foreignKey:BookID" json:"book,omitempty"`
	User         User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Overdue reports whether the due date has passed.
// Used by the dashboard template to flag late loans.
func (r Reservation) Overdue() bool {
	return time.Now().After(r.BorrowedTo)
}
