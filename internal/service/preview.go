package service

import (
	"context"

	"github.com/google/uuid"

	"social-feed-api/internal/domain"
	"social-feed-api/internal/repository"
)

// loadUserPreviews batch-fetches the users behind the given ids and returns
// their previews keyed by id. Missing users are simply absent from the map;
// callers fall back to an empty preview so a deleted author never fails a
// listing.
func loadUserPreviews(ctx context.Context, userRepo repository.UserRepository, ids []uuid.UUID) (map[uuid.UUID]domain.UserPreview, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	users, err := userRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	previews := make(map[uuid.UUID]domain.UserPreview, len(users))
	for _, u := range users {
		previews[u.ID] = u.Preview()
	}
	return previews, nil
}
