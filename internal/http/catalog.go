package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avolkov/libris/internal/auth"
	"github.com/avolkov/libris/internal/database/books"
)

// CatalogController serves the search page and the add/remove admin pages.
type CatalogController struct {
	store CatalogStore
}

func NewCatalogController(store CatalogStore) *CatalogController {
	return &CatalogController{store: store}
}

// SearchPage renders the catalog search form. A GET shows the empty
// form; a POST carries the search term and renders the matches.
func (controller *CatalogController) SearchPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":     "Search the catalog",
		"Username":  auth.GetUsername(c),
		"CSRFToken": auth.GetCSRFToken(c),
	})
}

// Search handles the search form submission.
func (controller *CatalogController) Search(c *gin.Context) {
	query := c.PostForm("searchbook")
	availableOnly := c.PostForm("available") != ""

	results, err := controller.store.Search(query, availableOnly)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error searching books: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":         "Search the catalog",
		"Books":         results,
		"Query":         query,
		"AvailableOnly": availableOnly,
		"Username":      auth.GetUsername(c),
		"CSRFToken":     auth.GetCSRFToken(c),
	})
}

// AddPage renders the add-book form together with the current catalog.
func (controller *CatalogController) AddPage(c *gin.Context) {
	catalog, err := controller.store.All()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "add.html", gin.H{
		"Title":     "Add a book",
		"Books":     catalog,
		"Username":  auth.GetUsername(c),
		"CSRFToken": auth.GetCSRFToken(c),
		"Error":     c.Query("error"),
	})
}

// AddBook handles the add-book form submission.
func (controller *CatalogController) AddBook(c *gin.Context) {
	isbn := c.PostForm("isbn")
	name := c.PostForm("bookname")
	author := c.PostForm("author")

	_, err := controller.store.Add(isbn, name, author)
	if err != nil {
		if errors.Is(err, books.ErrNameRequired) {
			c.Redirect(http.StatusFound, "/add?error=Book+name+is+required")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to add book")
		return
	}

	c.Redirect(http.StatusFound, "/add")
}

// RemovePage renders the removal page listing the whole catalog.
func (controller *CatalogController) RemovePage(c *gin.Context) {
	catalog, err := controller.store.All()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "remove.html", gin.H{
		"Title":     "Remove a book",
		"Books":     catalog,
		"Username":  auth.GetUsername(c),
		"CSRFToken": auth.GetCSRFToken(c),
		"Error":     c.Query("error"),
	})
}

// RemoveSearch narrows the removal page to matching books.
func (controller *CatalogController) RemoveSearch(c *gin.Context) {
	query := c.PostForm("searchbook")

	results, err := controller.store.Search(query, false)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error searching books: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "remove.html", gin.H{
		"Title":     "Remove a book",
		"Books":     results,
		"Query":     query,
		"Username":  auth.GetUsername(c),
		"CSRFToken": auth.GetCSRFToken(c),
	})
}

// RemoveBook deletes a book by id. Books with an active reservation are
// not removable.
func (controller *CatalogController) RemoveBook(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid book ID")
		return
	}

	if err := controller.store.Remove(id); err != nil {
		switch {
		case errors.Is(err, books.ErrBookNotFound):
			c.String(http.StatusNotFound, "Book not found")
		case errors.Is(err, books.ErrBookReserved):
			c.Redirect(http.StatusFound, "/remove?error=Book+is+currently+reserved+and+cannot+be+removed")
		default:
			c.String(http.StatusInternalServerError, "Failed to remove book")
		}
		return
	}

	c.Redirect(http.StatusFound, "/remove")
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
