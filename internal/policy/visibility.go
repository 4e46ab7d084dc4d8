// Package policy is the single authorization decision point for posts.
// Every view and mutation check goes through here with the requester
// identity passed in explicitly; nothing reads ambient request state.
package policy

import "inkwell/internal/entity"

// CanView reports whether the requester may see the post. Published posts
// are visible to everyone including anonymous requesters; drafts are visible
// only to their author.
func CanView(post *entity.Post, requesterID string) bool {
	if post == nil {
		return false
	}
	if post.Published {
		return true
	}
	return isOwner(post, requesterID)
}

// CanMutate reports whether the requester may edit or delete the post. The
// rule is identical for both: only the owning author, regardless of the
// published flag. An empty requester is never an owner.
func CanMutate(post *entity.Post, requesterID string) bool {
	if post == nil {
		return false
	}
	return isOwner(post, requesterID)
}

func isOwner(post *entity.Post, requesterID string) bool {
	if requesterID == "" || post.Author == nil {
		return false
	}
	return post.Author.ExternalID == requesterID
}
