package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"social-feed-api/internal/client"
	"social-feed-api/internal/domain"
	"social-feed-api/internal/response"
)

// For any post holding E images and a batch of N new images, AddPostImages
// succeeds exactly when E+N stays strictly below the cap. A rejected batch
// leaves the post untouched and removes every staged object.
func TestProperty_AddPostImages_CapBoundary(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Image batch accepted iff existing+new < cap", prop.ForAll(
		func(existingCount, newCount int) bool {
			userID := uuid.New()
			postID := uuid.New()

			post := &domain.Post{
				BaseModel: domain.BaseModel{ID: postID},
				UserID:    userID,
				Content:   "Hello world, this is post one",
			}
			if err := post.SetImageKeys(makeImageKeys(existingCount)); err != nil {
				t.Logf("SetImageKeys failed: %v", err)
				return false
			}

			updated := false
			postRepo := &MockPostRepository{
				FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
					return post, nil
				},
				UpdateFunc: func(ctx context.Context, p *domain.Post) error {
					updated = true
					return nil
				},
			}
			storage := client.NewMockStorageClient()
			svc := newPostService(postRepo, &MockCommentRepository{}, &MockLikeRepository{}, storage)

			newKeys := make([]string, newCount)
			for i := range newKeys {
				newKeys[i] = uuid.New().String() + ".jpg"
			}

			result, err := svc.AddPostImages(context.Background(), userID, postID, newKeys)

			wantAccepted := existingCount+newCount < domain.MaxImagesCount
			if wantAccepted {
				if err != nil {
					t.Logf("Expected success for %d+%d, got %v", existingCount, newCount, err)
					return false
				}
				if !updated {
					t.Logf("Expected the post to be saved for %d+%d", existingCount, newCount)
					return false
				}
				if len(result.Post.Images) != existingCount+newCount {
					t.Logf("Expected %d images, got %d", existingCount+newCount, len(result.Post.Images))
					return false
				}
				return true
			}

			if err == nil {
				t.Logf("Expected rejection for %d+%d", existingCount, newCount)
				return false
			}
			appErr, ok := err.(*response.AppError)
			if !ok || appErr.Code != response.ErrCodeValidation {
				t.Logf("Expected VALIDATION_ERROR for %d+%d, got %v", existingCount, newCount, err)
				return false
			}
			if updated {
				t.Logf("Post must not be saved on rejection (%d+%d)", existingCount, newCount)
				return false
			}
			// 거부 시 스테이징된 객체는 모두 정리되어야 함
			if len(storage.DeletedKeys) != newCount {
				t.Logf("Expected %d staged keys cleaned up, got %d", newCount, len(storage.DeletedKeys))
				return false
			}
			return true
		},
		gen.IntRange(0, domain.MaxImagesCount+2),
		gen.IntRange(1, domain.MaxImagesCount+2),
	))

	properties.TestingRun(t)
}
