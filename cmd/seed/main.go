package main

import (
	"fmt"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/config"
	"inkwell/pkg/database"
	"inkwell/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	authorRepo := persistent.NewAuthorRepository(db)
	postRepo := persistent.NewPostRepository(db)

	testAuthors := []struct {
		externalID string
		name       string
		email      string
	}{
		{"user_seed_alice", "Alice Winters", "alice@test.com"},
		{"user_seed_bob", "Bob Marsh", "bob@test.com"},
		{"user_seed_charlie", "Charlie Dune", "charlie@test.com"},
	}

	imageURL := "https://picsum.photos/800/450"

	for i, authorData := range testAuthors {
		author := &entity.Author{
			ExternalID: authorData.externalID,
			Name:       authorData.name,
			Email:      authorData.email,
		}

		if err := authorRepo.Upsert(author); err != nil {
			log.Error("Failed to seed author %s: %v", authorData.name, err)
			continue
		}
		log.Info("Seeded author: %s (%s)", author.Name, author.ExternalID)

		postsCount := 2 + i
		for p := 0; p < postsCount; p++ {
			post := &entity.Post{
				Title:     fmt.Sprintf("Post #%d by %s", p+1, author.Name),
				Content:   fmt.Sprintf("<p>Seed content for post %d. Written by %s for local development.</p>", p+1, author.Name),
				Published: p%2 == 0, // alternate drafts and published posts
				AuthorID:  author.ID,
			}
			if p == 0 {
				post.ImageURL = &imageURL
			}

			if err := postRepo.Create(post); err != nil {
				log.Error("Failed to seed post for %s: %v", author.Name, err)
				continue
			}
			log.Info("Seeded post: %s (published=%t)", post.Title, post.Published)
		}
	}

	log.Info("Database seeded successfully!")
}
