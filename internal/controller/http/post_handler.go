package http

import (
	"errors"
	"net/http"

	"inkwell/internal/entity"
	"inkwell/internal/usecase"
	"inkwell/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

// formatPostResponse is the presentation boundary: optional references are
// omitted when unset and the author collapses to display attributes, with a
// missing name coerced to an empty string here and nowhere else.
func (h *PostHandler) formatPostResponse(post *entity.Post) gin.H {
	response := gin.H{
		"id":         post.ID,
		"title":      post.Title,
		"content":    post.Content,
		"published":  post.Published,
		"created_at": post.CreatedAt,
		"updated_at": post.UpdatedAt,
	}

	if post.ImageURL != nil {
		response["image_url"] = *post.ImageURL
	}
	if post.VideoURL != nil {
		response["video_url"] = *post.VideoURL
	}
	if post.Author != nil {
		response["author"] = gin.H{
			"name":  post.Author.Name,
			"email": post.Author.Email,
		}
	}

	return response
}

func (h *PostHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only modify your own posts"})
	case errors.Is(err, usecase.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

type CreatePostRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Published bool   `json:"published"`
	ImageURL  string `json:"image_url"`
	VideoURL  string `json:"video_url"`
}

type UpdatePostRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
	ImageURL  *string `json:"image_url"`
	VideoURL  *string `json:"video_url"`
}

// ListPosts godoc
// @Summary      List published posts
// @Description  Get all published posts, optionally filtered by a case-insensitive substring match on title or content
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        q query string false "Search query (substring containment)"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	query := c.Query("q")

	posts, err := h.postUseCase.ListPosts(query)
	if err != nil {
		h.logger.Error("Failed to list posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	formatted := make([]gin.H, len(posts))
	for i, post := range posts {
		formatted[i] = h.formatPostResponse(post)
	}

	c.JSON(http.StatusOK, gin.H{"posts": formatted, "count": len(formatted)})
}

// GetPost godoc
// @Summary      Get post by ID
// @Description  Get a single post for viewing. Drafts are only visible to their author; everyone else gets 404.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID := c.Param("id")
	requesterID := c.GetString("user_id")

	post, err := h.postUseCase.GetPostForView(postID, requesterID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.formatPostResponse(post))
}

// GetPostForEdit godoc
// @Summary      Get post for editing
// @Description  Fetch a post for the edit surface. Only the author may load it; others get 403.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/edit [get]
func (h *PostHandler) GetPostForEdit(c *gin.Context) {
	postID := c.Param("id")
	requesterID := c.GetString("user_id")

	post, err := h.postUseCase.GetPostForEdit(postID, requesterID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.formatPostResponse(post))
}

// ListOwnPosts godoc
// @Summary      List own posts
// @Description  Get all posts of the authenticated author, drafts included
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /me/posts [get]
func (h *PostHandler) ListOwnPosts(c *gin.Context) {
	requesterID := c.GetString("user_id")

	posts, err := h.postUseCase.ListOwnPosts(requesterID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	formatted := make([]gin.H, len(posts))
	for i, post := range posts {
		formatted[i] = h.formatPostResponse(post)
	}

	c.JSON(http.StatusOK, gin.H{"posts": formatted, "count": len(formatted)})
}

// CreatePost godoc
// @Summary      Create a new post
// @Description  Create a post owned by the authenticated author. Posts default to unpublished.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePostRequest true "Post data"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requester := entity.Identity{
		ExternalID: c.GetString("user_id"),
		Name:       c.GetString("user_name"),
		Email:      c.GetString("user_email"),
	}

	input := usecase.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	}
	if req.ImageURL != "" {
		input.ImageURL = &req.ImageURL
	}
	if req.VideoURL != "" {
		input.VideoURL = &req.VideoURL
	}

	post, err := h.postUseCase.CreatePost(requester, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.formatPostResponse(post))
}

// UpdatePost godoc
// @Summary      Update post
// @Description  Update a post. Only supplied fields change; only the author may update.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body UpdatePostRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID := c.Param("id")
	requesterID := c.GetString("user_id")

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := usecase.UpdatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
		ImageURL:  req.ImageURL,
		VideoURL:  req.VideoURL,
	}

	post, err := h.postUseCase.UpdatePost(postID, requesterID, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.formatPostResponse(post))
}

// DeletePost godoc
// @Summary      Delete post
// @Description  Permanently delete a post. Only the author may delete.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("id")
	requesterID := c.GetString("user_id")

	if err := h.postUseCase.DeletePost(postID, requesterID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
