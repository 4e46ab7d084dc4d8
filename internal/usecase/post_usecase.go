package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkwell/internal/entity"
	"inkwell/internal/policy"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/logger"
	"inkwell/pkg/queue"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CreatePostInput struct {
	Title     string
	Content   string
	Published bool
	ImageURL  *string
	VideoURL  *string
}

// UpdatePostInput carries only the fields the caller wants to change; nil
// means "leave as is". An explicitly empty ImageURL/VideoURL clears the
// reference. AuthorID and CreatedAt are not representable here on purpose.
type UpdatePostInput struct {
	Title     *string
	Content   *string
	Published *bool
	ImageURL  *string
	VideoURL  *string
}

type PostUseCase interface {
	ListPosts(query string) ([]*entity.Post, error)
	GetPostForView(postID, requesterID string) (*entity.Post, error)
	GetPostForEdit(postID, requesterID string) (*entity.Post, error)
	ListOwnPosts(requesterID string) ([]*entity.Post, error)
	CreatePost(requester entity.Identity, input CreatePostInput) (*entity.Post, error)
	UpdatePost(postID, requesterID string, input UpdatePostInput) (*entity.Post, error)
	DeletePost(postID, requesterID string) error
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	authorRepo  persistent.AuthorRepository
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	authorRepo persistent.AuthorRepository,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		authorRepo:  authorRepo,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      logger,
	}
}

// ListPosts returns the publicly visible subset, optionally narrowed by a
// case-insensitive substring match on title or content. An empty query is
// equivalent to no query.
func (uc *postUseCase) ListPosts(query string) ([]*entity.Post, error) {
	return uc.postRepo.ListPublished(strings.TrimSpace(query))
}

func (uc *postUseCase) GetPostForView(postID, requesterID string) (*entity.Post, error) {
	if cached := uc.getCachedPost(postID); cached != nil {
		return cached, nil
	}

	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Absent and not-visible are deliberately the same answer.
	if !policy.CanView(post, requesterID) {
		return nil, ErrNotFound
	}

	if post.Published {
		uc.cachePost(post)
	}

	return post, nil
}

func (uc *postUseCase) GetPostForEdit(postID, requesterID string) (*entity.Post, error) {
	if requesterID == "" {
		return nil, ErrUnauthenticated
	}

	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !policy.CanMutate(post, requesterID) {
		return nil, ErrForbidden
	}

	return post, nil
}

func (uc *postUseCase) ListOwnPosts(requesterID string) ([]*entity.Post, error) {
	if requesterID == "" {
		return nil, ErrUnauthenticated
	}

	author, err := uc.authorRepo.GetByExternalID(requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Known identity, no posts yet: the author row appears on
			// first create or identity sync.
			return []*entity.Post{}, nil
		}
		return nil, err
	}

	return uc.postRepo.ListByAuthor(author.ID)
}

func (uc *postUseCase) CreatePost(requester entity.Identity, input CreatePostInput) (*entity.Post, error) {
	if requester.Anonymous() {
		return nil, ErrUnauthenticated
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	// Lazily mirror the provider profile so the author row always exists
	// before the post that references it.
	author := &entity.Author{
		ExternalID: requester.ExternalID,
		Name:       requester.Name,
		Email:      requester.Email,
	}
	if err := uc.authorRepo.Upsert(author); err != nil {
		return nil, fmt.Errorf("failed to sync author: %w", err)
	}

	post := &entity.Post{
		Title:     input.Title,
		Content:   input.Content,
		ImageURL:  normalizeURL(input.ImageURL),
		VideoURL:  normalizeURL(input.VideoURL),
		Published: input.Published,
		AuthorID:  author.ID,
	}

	if err := uc.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if post.Published {
		uc.cachePost(post)
		go uc.publishPostEvent(post)
	}

	return post, nil
}

func (uc *postUseCase) UpdatePost(postID, requesterID string, input UpdatePostInput) (*entity.Post, error) {
	if requesterID == "" {
		return nil, ErrUnauthenticated
	}

	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !policy.CanMutate(post, requesterID) {
		return nil, ErrForbidden
	}

	wasPublished := post.Published

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", ErrValidation)
		}
		post.Title = *input.Title
	}
	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, fmt.Errorf("%w: content is required", ErrValidation)
		}
		post.Content = *input.Content
	}
	if input.Published != nil {
		post.Published = *input.Published
	}
	if input.ImageURL != nil {
		post.ImageURL = normalizeURL(input.ImageURL)
	}
	if input.VideoURL != nil {
		post.VideoURL = normalizeURL(input.VideoURL)
	}

	// The write re-checks ownership in the statement itself, so a
	// concurrent delete cannot turn this into someone else's row.
	rows, err := uc.postRepo.UpdateOwned(post, post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	uc.invalidateCachedPost(post.ID)

	updated, err := uc.postRepo.GetByID(post.ID)
	if err != nil {
		return nil, err
	}

	if updated.Published {
		uc.cachePost(updated)
		if !wasPublished {
			go uc.publishPostEvent(updated)
		}
	}

	return updated, nil
}

func (uc *postUseCase) DeletePost(postID, requesterID string) error {
	if requesterID == "" {
		return ErrUnauthenticated
	}

	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !policy.CanMutate(post, requesterID) {
		return ErrForbidden
	}

	rows, err := uc.postRepo.DeleteOwned(post.ID, post.AuthorID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	uc.invalidateCachedPost(post.ID)
	return nil
}

func normalizeURL(url *string) *string {
	if url == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*url)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Only published posts enter the cache; a cache hit is therefore always
// safe to serve to anyone, anonymous included. Drafts go to the database
// every time.
func (uc *postUseCase) cachePost(post *entity.Post) {
	if uc.redisClient == nil {
		return
	}

	data, err := json.Marshal(post)
	if err != nil {
		return
	}

	ctx := context.Background()
	uc.redisClient.Set(ctx, postCacheKey(post.ID), data, 24*time.Hour)
}

func (uc *postUseCase) getCachedPost(postID string) *entity.Post {
	if uc.redisClient == nil {
		return nil
	}

	ctx := context.Background()
	data, err := uc.redisClient.Get(ctx, postCacheKey(postID)).Bytes()
	if err != nil {
		return nil
	}

	var post entity.Post
	if err := json.Unmarshal(data, &post); err != nil {
		return nil
	}
	return &post
}

func (uc *postUseCase) invalidateCachedPost(postID string) {
	if uc.redisClient == nil {
		return
	}
	uc.redisClient.Del(context.Background(), postCacheKey(postID))
}

func postCacheKey(postID string) string {
	return fmt.Sprintf("post:%s", postID)
}

func (uc *postUseCase) publishPostEvent(post *entity.Post) {
	if uc.queueClient == nil {
		return
	}

	event := map[string]interface{}{
		"type":      queue.PostPublishedKey,
		"post_id":   post.ID,
		"author_id": post.AuthorID,
		"title":     post.Title,
	}

	if err := uc.queueClient.PublishPostEvent(event); err != nil {
		uc.logger.Error("Failed to publish post event for post %s: %v", post.ID, err)
	}
}
