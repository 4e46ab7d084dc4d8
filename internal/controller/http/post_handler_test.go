package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/entity"
	"inkwell/internal/usecase"
	"inkwell/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPostUseCase is a mock implementation of PostUseCase
type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) ListPosts(query string) ([]*entity.Post, error) {
	args := m.Called(query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetPostForView(postID, requesterID string) (*entity.Post, error) {
	args := m.Called(postID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetPostForEdit(postID, requesterID string) (*entity.Post, error) {
	args := m.Called(postID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) ListOwnPosts(requesterID string) ([]*entity.Post, error) {
	args := m.Called(requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) CreatePost(requester entity.Identity, input usecase.CreatePostInput) (*entity.Post, error) {
	args := m.Called(requester, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) UpdatePost(postID, requesterID string, input usecase.UpdatePostInput) (*entity.Post, error) {
	args := m.Called(postID, requesterID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) DeletePost(postID, requesterID string) error {
	args := m.Called(postID, requesterID)
	return args.Error(0)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func samplePost(id string, published bool) *entity.Post {
	return &entity.Post{
		ID:        id,
		Title:     "Sample",
		Content:   "<p>body</p>",
		Published: published,
		AuthorID:  "author-1",
		Author: &entity.Author{
			ID:         "author-1",
			ExternalID: "user_x",
			Name:       "Author X",
			Email:      "x@test.com",
		},
	}
}

func TestListPosts_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts", handler.ListPosts)

	mockUseCase.On("ListPosts", "dragon").Return([]*entity.Post{
		samplePost("post-1", true),
		samplePost("post-2", true),
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts?q=dragon", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(2), response["count"])
	posts := response["posts"].([]interface{})
	assert.Len(t, posts, 2)

	mockUseCase.AssertExpectations(t)
}

func TestListPosts_OmitsUnsetMedia(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts", handler.ListPosts)

	image := "https://example.com/a.png"
	withImage := samplePost("post-1", true)
	withImage.ImageURL = &image
	withoutImage := samplePost("post-2", true)

	mockUseCase.On("ListPosts", "").Return([]*entity.Post{withImage, withoutImage}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	posts := response["posts"].([]interface{})

	first := posts[0].(map[string]interface{})
	second := posts[1].(map[string]interface{})
	assert.Equal(t, image, first["image_url"])
	_, present := second["image_url"]
	assert.False(t, present)

	mockUseCase.AssertExpectations(t)
}

func TestGetPost_NotFound(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:id", handler.GetPost)

	mockUseCase.On("GetPostForView", "post-1", "").Return(nil, usecase.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-1", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetPost_Anonymous(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:id", handler.GetPost)

	mockUseCase.On("GetPostForView", "post-1", "").Return(samplePost("post-1", true), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-1", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "post-1", response["id"])
	author := response["author"].(map[string]interface{})
	assert.Equal(t, "Author X", author["name"])

	mockUseCase.AssertExpectations(t)
}

func TestGetPostForEdit_Forbidden(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:id/edit", asUser("user_y"), handler.GetPostForEdit)

	mockUseCase.On("GetPostForEdit", "post-1", "user_y").Return(nil, usecase.ErrForbidden)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-1/edit", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCreatePost_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", func(c *gin.Context) {
		c.Set("user_id", "user_x")
		c.Set("user_name", "Author X")
		c.Set("user_email", "x@test.com")
		c.Next()
	}, handler.CreatePost)

	requester := entity.Identity{ExternalID: "user_x", Name: "Author X", Email: "x@test.com"}
	expectedInput := usecase.CreatePostInput{Title: "Hello", Content: "<p>hi</p>", Published: true}

	mockUseCase.On("CreatePost", requester, expectedInput).Return(samplePost("post-1", true), nil)

	body, _ := json.Marshal(map[string]interface{}{
		"title":     "Hello",
		"content":   "<p>hi</p>",
		"published": true,
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCreatePost_MissingTitle(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", asUser("user_x"), handler.CreatePost)

	body, _ := json.Marshal(map[string]interface{}{"content": "<p>hi</p>"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "CreatePost")
}

func TestUpdatePost_PartialBody(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/posts/:id", asUser("user_x"), handler.UpdatePost)

	title := "New title"
	expectedInput := usecase.UpdatePostInput{Title: &title}

	mockUseCase.On("UpdatePost", "post-1", "user_x", expectedInput).Return(samplePost("post-1", true), nil)

	body, _ := json.Marshal(map[string]interface{}{"title": "New title"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/posts/post-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestUpdatePost_Forbidden(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/posts/:id", asUser("user_y"), handler.UpdatePost)

	mockUseCase.On("UpdatePost", "post-1", "user_y", mock.Anything).Return(nil, usecase.ErrForbidden)

	body, _ := json.Marshal(map[string]interface{}{"title": "hijack"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/posts/post-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestDeletePost_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.DELETE("/posts/:id", asUser("user_x"), handler.DeletePost)

	mockUseCase.On("DeletePost", "post-1", "user_x").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/post-1", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestDeletePost_NotFound(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.DELETE("/posts/:id", asUser("user_x"), handler.DeletePost)

	mockUseCase.On("DeletePost", "missing", "user_x").Return(usecase.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/missing", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestListOwnPosts_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/me/posts", asUser("user_x"), handler.ListOwnPosts)

	draft := samplePost("post-2", false)
	mockUseCase.On("ListOwnPosts", "user_x").Return([]*entity.Post{
		samplePost("post-1", true),
		draft,
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me/posts", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(2), response["count"])

	mockUseCase.AssertExpectations(t)
}
