package storage

import (
	"context"

	"linkcategorizer/internal/domain"
)

// Repository stores categorized links on behalf of bot users.
type Repository interface {
	// SaveLink stores a link or replaces the one with the same UserID and URL.
	SaveLink(ctx context.Context, link domain.SavedLink) error

	// GetLinksByUser returns every link saved by a user, newest first.
	GetLinksByUser(ctx context.Context, userID int64) ([]domain.SavedLink, error)

	// DeleteLink removes a single link. Deleting a missing link is not an error.
	DeleteLink(ctx context.Context, userID int64, linkURL string) error

	// DeleteLinksByUser removes every link saved by a user.
	DeleteLinksByUser(ctx context.Context, userID int64) error

	Close() error
}
