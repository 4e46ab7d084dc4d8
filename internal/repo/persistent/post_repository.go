package persistent

import (
	"strings"

	"inkwell/internal/entity"
	"inkwell/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id string) (*entity.Post, error)
	ListPublished(query string) ([]*entity.Post, error)
	ListByAuthor(authorID string) ([]*entity.Post, error)
	UpdateOwned(post *entity.Post, authorID string) (int64, error)
	DeleteOwned(id, authorID string) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
	}

	if err := r.db.Create(postModel).Error; err != nil {
		return err
	}

	if err := r.db.Preload("Author").First(postModel, "id = ?", postModel.ID).Error; err != nil {
		return err
	}

	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.Preload("Author").Where("id = ?", id).First(&postModel).Error; err != nil {
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

// ListPublished returns published posts only, newest first. A non-empty
// query restricts to case-insensitive substring containment on title or
// content. The published filter always applies before the search filter;
// drafts never match a query.
func (r *postRepository) ListPublished(query string) ([]*entity.Post, error) {
	var postModels []model.PostModel

	q := r.db.Preload("Author").
		Where("published = ?", true).
		Order("created_at DESC")

	if query != "" {
		pattern := "%" + escapeLike(query) + "%"
		q = q.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	if err := q.Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE metacharacters so a query matches its characters
// literally. "50%" must contain-match "50%", not "50" followed by anything.
func escapeLike(query string) string {
	return likeEscaper.Replace(query)
}

func (r *postRepository) ListByAuthor(authorID string) ([]*entity.Post, error) {
	var postModels []model.PostModel

	err := r.db.Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

// UpdateOwned writes the mutable columns of a post in a single statement
// conditioned on both id and author_id, so the ownership check and the
// write cannot race. author_id and created_at are never written. The
// returned count is zero when the post is absent or owned by someone else.
func (r *postRepository) UpdateOwned(post *entity.Post, authorID string) (int64, error) {
	res := r.db.Model(&model.PostModel{}).
		Where("id = ? AND author_id = ?", post.ID, authorID).
		Select("title", "content", "image_url", "video_url", "published").
		Updates(ToPostModel(post))
	return res.RowsAffected, res.Error
}

// DeleteOwned removes a post permanently, conditioned on ownership the same
// way UpdateOwned is.
func (r *postRepository) DeleteOwned(id, authorID string) (int64, error) {
	res := r.db.Where("id = ? AND author_id = ?", id, authorID).Delete(&model.PostModel{})
	return res.RowsAffected, res.Error
}
