package usecase

import (
	"context"
	"errors"
	"fmt"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// AuthorUseCase mirrors identity provider users into local author rows.
// The provider owns these records; this service only keeps a denormalized
// copy of name and email current.
type AuthorUseCase interface {
	SyncAuthor(externalID, name, email string) (*entity.Author, error)
	RemoveAuthor(externalID string) error
}

type authorUseCase struct {
	authorRepo  persistent.AuthorRepository
	postRepo    persistent.PostRepository
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewAuthorUseCase(
	authorRepo persistent.AuthorRepository,
	postRepo persistent.PostRepository,
	redisClient *redis.Client,
	logger *logger.Logger,
) AuthorUseCase {
	return &authorUseCase{
		authorRepo:  authorRepo,
		postRepo:    postRepo,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (uc *authorUseCase) SyncAuthor(externalID, name, email string) (*entity.Author, error) {
	if externalID == "" {
		return nil, fmt.Errorf("%w: external id is required", ErrValidation)
	}

	author := &entity.Author{
		ExternalID: externalID,
		Name:       name,
		Email:      email,
	}

	if err := uc.authorRepo.Upsert(author); err != nil {
		return nil, fmt.Errorf("failed to sync author: %w", err)
	}

	uc.logger.Info("Synced author %s (%s)", author.ID, author.ExternalID)
	return author, nil
}

// RemoveAuthor is idempotent: deleting an unknown author is not an error,
// since provider webhooks can arrive out of order or more than once.
func (uc *authorUseCase) RemoveAuthor(externalID string) error {
	if externalID == "" {
		return fmt.Errorf("%w: external id is required", ErrValidation)
	}

	author, err := uc.authorRepo.GetByExternalID(externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load author: %w", err)
	}

	// The row delete cascades to the author's posts, so their cache
	// entries must go first or cached copies outlive the database rows.
	uc.evictCachedPosts(author.ID)

	rows, err := uc.authorRepo.DeleteByExternalID(externalID)
	if err != nil {
		return fmt.Errorf("failed to remove author: %w", err)
	}

	if rows > 0 {
		uc.logger.Info("Removed author with external id %s", externalID)
	}
	return nil
}

func (uc *authorUseCase) evictCachedPosts(authorID string) {
	if uc.redisClient == nil {
		return
	}

	posts, err := uc.postRepo.ListByAuthor(authorID)
	if err != nil {
		uc.logger.Warn("Failed to list posts of author %s for cache eviction: %v", authorID, err)
		return
	}

	ctx := context.Background()
	for _, post := range posts {
		uc.redisClient.Del(ctx, postCacheKey(post.ID))
	}
}
