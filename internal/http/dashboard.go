package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avolkov/libris/internal/auth"
	"github.com/avolkov/libris/internal/database/reservations"
)

// DashboardController serves the logged-in user's loans and the
// borrow/return actions. All of its routes sit behind RequireAuth.
type DashboardController struct {
	store ReservationStore
}

func NewDashboardController(store ReservationStore) *DashboardController {
	return &DashboardController{store: store}
}

// Dashboard lists the current user's reservations with book details.
func (controller *DashboardController) Dashboard(c *gin.Context) {
	userID := auth.GetUserID(c)

	loans, err := controller.store.ListForUser(userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading reservations: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Title":        "My reservations",
		"Reservations": loans,
		"Username":     auth.GetUsername(c),
		"CSRFToken":    auth.GetCSRFToken(c),
		"Error":        c.Query("error"),
	})
}

// Borrow reserves a book for the current user.
func (controller *DashboardController) Borrow(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid book ID")
		return
	}

	userID := auth.GetUserID(c)

	if _, err := controller.store.Borrow(id, userID); err != nil {
		switch {
		case errors.Is(err, reservations.ErrBookNotFound):
			c.String(http.StatusNotFound, "Book not found")
		case errors.Is(err, reservations.ErrBookAlreadyReserved):
			c.Redirect(http.StatusFound, "/dashboard?error=Book+is+already+reserved")
		default:
			c.String(http.StatusInternalServerError, "Failed to borrow book")
		}
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

// Return deletes one of the current user's reservations and frees the
// book.
func (controller *DashboardController) Return(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid reservation ID")
		return
	}

	userID := auth.GetUserID(c)

	if err := controller.store.Return(id, userID); err != nil {
		if errors.Is(err, reservations.ErrReservationNotFound) {
			c.String(http.StatusNotFound, "Reservation not found")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to return book")
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}
