package services

import (
	"context"
	"log/slog"
	"strings"

	"echoes/internal/models"
	"echoes/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EngagementService struct {
	db *gorm.DB
}

func NewEngagementService(db *gorm.DB) *EngagementService {
	return &EngagementService{db: db}
}

type CreatePostInput struct {
	Author string `validate:"required"`
	Text   string `validate:"required,max=5000"`
	Kind   string `validate:"required,oneof=story quote"`
}

var createPostMessages = map[string]string{
	"Text.required": "Post cannot be empty.",
	"Text.max":      "Post is too long.",
	"Kind":          "Post type must be story or quote.",
}

func (s *EngagementService) CreatePost(ctx context.Context, author, text string, kind models.PostKind) (uint, error) {
	if author == "" {
		return 0, models.NewUnauthorizedError("Please log in first.")
	}
	in := CreatePostInput{Author: author, Text: strings.TrimSpace(text), Kind: string(kind)}
	if err := validateInput(in, createPostMessages); err != nil {
		return 0, err
	}

	post := models.Post{Username: in.Author, Content: in.Text, Kind: kind}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return 0, models.NewInternalError(err)
	}

	observability.PostsCreated.WithLabelValues(string(kind)).Inc()
	observability.Logger.InfoContext(ctx, "post created", slog.Uint64("post_id", uint64(post.ID)), slog.String("kind", string(kind)))
	return post.ID, nil
}

type CreateCommentInput struct {
	Text string `validate:"required,max=2000"`
}

var createCommentMessages = map[string]string{
	"Text.required": "Comment cannot be empty.",
	"Text.max":      "Comment is too long.",
}

// CreateComment rejects comments on posts that do not exist.
func (s *EngagementService) CreateComment(ctx context.Context, postID uint, author, text string) (*models.Comment, error) {
	if author == "" {
		return nil, models.NewUnauthorizedError("Please log in first.")
	}
	in := CreateCommentInput{Text: strings.TrimSpace(text)}
	if err := validateInput(in, createCommentMessages); err != nil {
		return nil, err
	}

	comment := models.Comment{PostID: postID, Username: author, Text: in.Text}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return models.NewNotFoundError("post", postID)
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, storeError(err, "post", postID)
	}

	observability.CommentsCreated.Inc()
	return &comment, nil
}

// CreateRepost copies the post's content and kind under reposter, crediting
// the copied post's author. A repost of a repost credits the reposter of the
// copied post, not the first author in the chain.
func (s *EngagementService) CreateRepost(ctx context.Context, originalPostID uint, reposter string) (uint, error) {
	if reposter == "" {
		return 0, models.NewUnauthorizedError("Please log in first.")
	}

	var repost models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var original models.Post
		if err := tx.First(&original, originalPostID).Error; err != nil {
			return err
		}
		author := original.Username
		repost = models.Post{
			Username:       reposter,
			Content:        original.Content,
			Kind:           original.Kind,
			OriginalAuthor: &author,
		}
		return tx.Create(&repost).Error
	})
	if err != nil {
		return 0, storeError(err, "post", originalPostID)
	}

	observability.PostsCreated.WithLabelValues("repost").Inc()
	observability.Logger.InfoContext(ctx, "post reposted",
		slog.Uint64("post_id", uint64(repost.ID)),
		slog.Uint64("original_post_id", uint64(originalPostID)))
	return repost.ID, nil
}

// ToggleLike removes the user's like if present, otherwise adds one, and
// returns the post's like count afterwards.
func (s *EngagementService) ToggleLike(ctx context.Context, postID uint, user string) (int64, error) {
	if user == "" {
		return 0, models.NewUnauthorizedError("Please log in first.")
	}

	var (
		count int64
		liked bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return models.NewNotFoundError("post", postID)
		}

		res := tx.Where("post_id = ? AND username = ?", postID, user).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			like := models.Like{PostID: postID, Username: user}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return err
			}
			liked = true
		}
		return tx.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	})
	if err != nil {
		return 0, storeError(err, "post", postID)
	}

	observability.LikeToggles.WithLabelValues(toggleAction(liked, "like", "unlike")).Inc()
	return count, nil
}

func toggleAction(on bool, onLabel, offLabel string) string {
	if on {
		return onLabel
	}
	return offLabel
}
