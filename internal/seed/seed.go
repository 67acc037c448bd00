// Package seed fills a database with demo users and activity. It goes
// through the services so seeded rows obey the same rules as real ones.
// Development and testing only.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"echoes/internal/models"
	"echoes/internal/observability"
	"echoes/internal/services"
	"echoes/internal/utils"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DemoPassword is the password of every seeded user.
const DemoPassword = "password123"

type Options struct {
	Users    int
	Posts    int
	Comments int // per post, upper bound
	Seed     int64
}

type Summary struct {
	Users    int
	Posts    int
	Reposts  int
	Comments int
	Likes    int
	Follows  int
}

type Seeder struct {
	db    *gorm.DB
	svc   *services.Services
	faker *gofakeit.Faker
	opts  Options
}

func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.Users <= 0 {
		opts.Users = 10
	}
	if opts.Posts < 0 {
		opts.Posts = 0
	}
	if opts.Comments < 0 {
		opts.Comments = 0
	}
	return &Seeder{
		db:    db,
		svc:   services.New(db),
		faker: gofakeit.New(opts.Seed),
		opts:  opts,
	}
}

// ClearAll deletes every row, children first.
func (s *Seeder) ClearAll(ctx context.Context) error {
	for _, model := range []interface{}{&models.Like{}, &models.Comment{}, &models.Follow{}, &models.Post{}, &models.User{}} {
		if err := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", model, err)
		}
	}
	return nil
}

var nonHandle = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	users, err := s.seedUsers(ctx)
	if err != nil {
		return sum, err
	}
	sum.Users = len(users)

	follows, err := s.seedFollows(ctx, users)
	if err != nil {
		return sum, err
	}
	sum.Follows = follows

	var postIDs []uint
	for i := 0; i < s.opts.Posts; i++ {
		author := users[s.faker.Number(0, len(users)-1)]
		kind, text := models.PostKindStory, s.faker.Paragraph(1, s.faker.Number(2, 4), 10, " ")
		if s.faker.Bool() {
			kind, text = models.PostKindQuote, s.faker.Quote()
		}
		id, err := s.svc.Engagement.CreatePost(ctx, author, text, kind)
		if err != nil {
			return sum, fmt.Errorf("failed to create post: %w", err)
		}
		postIDs = append(postIDs, id)
		sum.Posts++

		for j := s.faker.Number(0, s.opts.Comments); j > 0; j-- {
			commenter := users[s.faker.Number(0, len(users)-1)]
			if _, err := s.svc.Engagement.CreateComment(ctx, id, commenter, s.faker.Sentence(s.faker.Number(3, 12))); err != nil {
				return sum, fmt.Errorf("failed to create comment: %w", err)
			}
			sum.Comments++
		}

		for _, u := range users {
			if s.faker.Number(0, 3) != 0 {
				continue
			}
			if _, err := s.svc.Engagement.ToggleLike(ctx, id, u); err != nil {
				return sum, fmt.Errorf("failed to like post: %w", err)
			}
			sum.Likes++
		}
	}

	// a handful of reposts so profiles show attribution
	for i := 0; i < len(postIDs)/5; i++ {
		reposter := users[s.faker.Number(0, len(users)-1)]
		if _, err := s.svc.Engagement.CreateRepost(ctx, postIDs[s.faker.Number(0, len(postIDs)-1)], reposter); err != nil {
			return sum, fmt.Errorf("failed to repost: %w", err)
		}
		sum.Reposts++
	}

	observability.Logger.InfoContext(ctx, "seed complete",
		slog.Int("users", sum.Users), slog.Int("posts", sum.Posts), slog.Int("reposts", sum.Reposts),
		slog.Int("comments", sum.Comments), slog.Int("likes", sum.Likes), slog.Int("follows", sum.Follows))
	return sum, nil
}

func (s *Seeder) seedUsers(ctx context.Context) ([]string, error) {
	handles := make([]string, 0, s.opts.Users)
	for i := 0; len(handles) < s.opts.Users; i++ {
		handle := strings.TrimLeft(nonHandle.ReplaceAllString(s.faker.Username(), ""), "_.-")
		if handle == "" || i >= s.opts.Users {
			handle = fmt.Sprintf("%s%d", handle, i)
		}
		if len(handle) > 64 {
			handle = handle[:64]
		}

		user, err := s.svc.Accounts.Register(ctx, handle, DemoPassword, DemoPassword)
		if models.IsCode(err, models.CodeConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to register %q: %w", handle, err)
		}
		if _, err := s.svc.Accounts.UpdateProfile(ctx, user.Username, s.faker.Sentence(6), s.randomAvatar()); err != nil {
			return nil, fmt.Errorf("failed to update profile of %q: %w", handle, err)
		}
		handles = append(handles, user.Username)
	}
	return handles, nil
}

func (s *Seeder) seedFollows(ctx context.Context, users []string) (int, error) {
	count := 0
	for _, follower := range users {
		for _, followed := range users {
			if follower == followed || s.faker.Number(0, 2) != 0 {
				continue
			}
			state, err := s.svc.Graph.ToggleFollow(ctx, follower, followed)
			if err != nil {
				return count, fmt.Errorf("failed to follow: %w", err)
			}
			if state == services.Followed {
				count++
			}
		}
	}
	return count, nil
}

func (s *Seeder) randomAvatar() string {
	choices := utils.AvatarChoices()
	return choices[s.faker.Number(0, len(choices)-1)]
}
