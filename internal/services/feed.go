package services

import (
	"context"

	"echoes/internal/models"

	"gorm.io/gorm"
)

type FeedService struct {
	db *gorm.DB
}

func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{db: db}
}

// FeedFilter narrows a feed. Zero values mean "no restriction"; both fields
// combine with AND.
type FeedFilter struct {
	Kind   *models.PostKind
	Author string
}

// ListPosts returns posts newest first with comments and like counts attached.
func (s *FeedService) ListPosts(ctx context.Context, filter FeedFilter) ([]models.PostView, error) {
	return s.ListPostsFor(ctx, filter, "")
}

// ListPostsFor is ListPosts with LikedByViewer filled for viewer.
func (s *FeedService) ListPostsFor(ctx context.Context, filter FeedFilter, viewer string) ([]models.PostView, error) {
	query := s.db.WithContext(ctx).Model(&models.Post{})
	if filter.Kind != nil {
		if !filter.Kind.Valid() {
			return nil, models.NewValidationError("Unknown post type.")
		}
		query = query.Where("type = ?", *filter.Kind)
	}
	if filter.Author != "" {
		query = query.Where("username = ?", filter.Author)
	}

	var posts []models.Post
	if err := query.Order("created_at DESC").Order("id DESC").Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	views := make([]models.PostView, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		views[i] = models.PostView{Post: p, Comments: []models.Comment{}}
	}

	if err := s.fillComments(ctx, views, ids); err != nil {
		return nil, err
	}
	if err := s.fillLikes(ctx, views, ids, viewer); err != nil {
		return nil, err
	}
	return views, nil
}

func (s *FeedService) fillComments(ctx context.Context, views []models.PostView, ids []uint) error {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("post_id IN ?", ids).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return models.NewInternalError(err)
	}

	byPost := make(map[uint][]models.Comment, len(ids))
	for _, c := range comments {
		byPost[c.PostID] = append(byPost[c.PostID], c)
	}
	for i := range views {
		if cs, ok := byPost[views[i].ID]; ok {
			views[i].Comments = cs
		}
	}
	return nil
}

func (s *FeedService) fillLikes(ctx context.Context, views []models.PostView, ids []uint, viewer string) error {
	type likeCount struct {
		PostID uint
		Count  int64
	}
	var counts []likeCount
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&counts).Error
	if err != nil {
		return models.NewInternalError(err)
	}

	countMap := make(map[uint]int64, len(counts))
	for _, lc := range counts {
		countMap[lc.PostID] = lc.Count
	}

	liked := make(map[uint]bool)
	if viewer != "" {
		var likedIDs []uint
		err := s.db.WithContext(ctx).Model(&models.Like{}).
			Where("post_id IN ? AND username = ?", ids, viewer).
			Pluck("post_id", &likedIDs).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		for _, id := range likedIDs {
			liked[id] = true
		}
	}

	for i := range views {
		views[i].LikeCount = countMap[views[i].ID]
		views[i].LikedByViewer = liked[views[i].ID]
	}
	return nil
}

func (s *FeedService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, storeError(err, "post", id)
	}
	return &post, nil
}
