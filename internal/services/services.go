// package services defines interface Searcher for querying the video search HTTP API
//
// YouTube Data API v3
package services

import (
	"context"

	"github.com/desertthunder/jukebox/internal/models"
)

// Searcher defines the contract the jukebox consumes from a video search provider.
type Searcher interface {
	// Search returns zero or more videos for a free-text query.
	//
	// Upstream failures are returned as [*APIError]; transport failures wrap [shared.ErrTransport].
	Search(ctx context.Context, query string) ([]models.Video, error)

	// Name returns the name of the service (e.g., "YouTube")
	Name() string
}
