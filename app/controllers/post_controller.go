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

// PostController handles HTTP requests for posts and their comments
type PostController struct {
	catalog *services.CatalogService
	logger  *zap.Logger
}

// NewPostController creates a new PostController
func NewPostController(catalog *services.CatalogService, logger *zap.Logger) *PostController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostController{catalog: catalog, logger: logger}
}

// Index lists all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.catalog.ListPosts()
	if err != nil {
		pc.logger.Error("failed to list posts", zap.Error(err))
		sendError(w, pc.logger, "Failed to fetch posts", http.StatusInternalServerError)
		return
	}
	sendJSON(w, pc.logger, http.StatusOK, posts)
}

// Comments lists the comments of a post
func (pc *PostController) Comments(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, pc.logger, "Invalid post ID", http.StatusBadRequest)
		return
	}

	comments, err := pc.catalog.ListComments(postID)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, pc.logger, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		pc.logger.Error("failed to list comments", zap.Int("post_id", postID), zap.Error(err))
		sendError(w, pc.logger, "Failed to fetch comments", http.StatusInternalServerError)
		return
	}
	sendJSON(w, pc.logger, http.StatusOK, comments)
}
