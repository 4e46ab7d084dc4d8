package persistent

import (
	"inkwell/internal/entity"
	"inkwell/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	post := &entity.Post{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		ImageURL:  m.ImageURL,
		VideoURL:  m.VideoURL,
		Published: m.Published,
		AuthorID:  m.AuthorID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	if m.Author.ID != "" {
		post.Author = ToAuthorEntity(&m.Author)
	}

	return post
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:        e.ID,
		Title:     e.Title,
		Content:   e.Content,
		ImageURL:  e.ImageURL,
		VideoURL:  e.VideoURL,
		Published: e.Published,
		AuthorID:  e.AuthorID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToAuthorEntity(m *model.AuthorModel) *entity.Author {
	if m == nil {
		return nil
	}

	return &entity.Author{
		ID:         m.ID,
		ExternalID: m.ExternalID,
		Name:       m.Name,
		Email:      m.Email,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func ToAuthorModel(e *entity.Author) *model.AuthorModel {
	if e == nil {
		return nil
	}

	return &model.AuthorModel{
		ID:         e.ID,
		ExternalID: e.ExternalID,
		Name:       e.Name,
		Email:      e.Email,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
