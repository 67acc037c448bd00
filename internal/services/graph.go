package services

import (
	"context"
	"log/slog"

	"echoes/internal/models"
	"echoes/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowState int

const (
	FollowUnchanged FollowState = iota
	Followed
	Unfollowed
)

func (s FollowState) String() string {
	switch s {
	case Followed:
		return "followed"
	case Unfollowed:
		return "unfollowed"
	default:
		return "unchanged"
	}
}

type GraphService struct {
	db *gorm.DB
}

func NewGraphService(db *gorm.DB) *GraphService {
	return &GraphService{db: db}
}

// ToggleFollow flips the follower -> followed edge. Following yourself is
// ignored.
func (s *GraphService) ToggleFollow(ctx context.Context, follower, followed string) (FollowState, error) {
	if follower == "" {
		return FollowUnchanged, models.NewUnauthorizedError("Please log in first.")
	}
	if follower == followed {
		return FollowUnchanged, nil
	}

	state := FollowUnchanged
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.User{}).Where("username = ?", followed).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return models.NewNotFoundError("user", followed)
		}

		res := tx.Where("follower = ? AND followed = ?", follower, followed).Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			state = Unfollowed
			return nil
		}

		edge := models.Follow{Follower: follower, Followed: followed}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
			return err
		}
		state = Followed
		return nil
	})
	if err != nil {
		return FollowUnchanged, storeError(err, "user", followed)
	}

	observability.FollowToggles.WithLabelValues(toggleAction(state == Followed, "follow", "unfollow")).Inc()
	observability.Logger.InfoContext(ctx, "follow toggled",
		slog.String("followed", followed), slog.String("state", state.String()))
	return state, nil
}

// ListFollowers returns the handles following handle, sorted.
func (s *GraphService) ListFollowers(ctx context.Context, handle string) ([]string, error) {
	followers := []string{}
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("followed = ?", handle).
		Order("follower ASC").
		Pluck("follower", &followers).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return followers, nil
}

// ListFollowing returns the handles handle follows, sorted.
func (s *GraphService) ListFollowing(ctx context.Context, handle string) ([]string, error) {
	following := []string{}
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower = ?", handle).
		Order("followed ASC").
		Pluck("followed", &following).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return following, nil
}

func (s *GraphService) IsFollowing(ctx context.Context, follower, followed string) (bool, error) {
	if follower == "" {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower = ? AND followed = ?", follower, followed).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
