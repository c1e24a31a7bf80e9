package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"postfeed/app/repositories"
	"postfeed/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// AuthorController handles HTTP requests for authors
type AuthorController struct {
	catalog *services.CatalogService
	logger  *zap.Logger
}

// NewAuthorController creates a new AuthorController
func NewAuthorController(catalog *services.CatalogService, logger *zap.Logger) *AuthorController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthorController{catalog: catalog, logger: logger}
}

// Show returns a single author
func (ac *AuthorController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, ac.logger, "Invalid author ID", http.StatusBadRequest)
		return
	}

	author, err := ac.catalog.GetAuthor(id)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, ac.logger, "Author not found", http.StatusNotFound)
		return
	}
	if err != nil {
		ac.logger.Error("failed to get author", zap.Int("author_id", id), zap.Error(err))
		sendError(w, ac.logger, "Failed to fetch author", http.StatusInternalServerError)
		return
	}
	sendJSON(w, ac.logger, http.StatusOK, author)
}
