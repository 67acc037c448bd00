package services

import (
	"context"
	"testing"

	"echoes/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPostsNewestFirst(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	first := mustPost(t, svc, "ada", "first", models.PostKindStory)
	second := mustPost(t, svc, "bob", "second", models.PostKindQuote)
	third := mustPost(t, svc, "ada", "third", models.PostKindStory)

	posts, err := svc.Feed.ListPosts(ctx, FeedFilter{})
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []uint{third, second, first}, []uint{posts[0].ID, posts[1].ID, posts[2].ID})

	again, err := svc.Feed.ListPosts(ctx, FeedFilter{})
	require.NoError(t, err)
	assert.Equal(t, posts, again)
}

func TestListPostsFilters(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	mustPost(t, svc, "ada", "a story", models.PostKindStory)
	mustPost(t, svc, "ada", "a quote", models.PostKindQuote)
	mustPost(t, svc, "bob", "b story", models.PostKindStory)

	stories, err := svc.Feed.ListPosts(ctx, FeedFilter{Kind: kindPtr(models.PostKindStory)})
	require.NoError(t, err)
	assert.Len(t, stories, 2)
	for _, p := range stories {
		assert.Equal(t, models.PostKindStory, p.Kind)
	}

	quotes, err := svc.Feed.ListPosts(ctx, FeedFilter{Kind: kindPtr(models.PostKindQuote)})
	require.NoError(t, err)
	assert.Len(t, quotes, 1)
	for _, p := range quotes {
		assert.Equal(t, models.PostKindQuote, p.Kind)
	}

	byAda, err := svc.Feed.ListPosts(ctx, FeedFilter{Author: "ada"})
	require.NoError(t, err)
	assert.Len(t, byAda, 2)
	for _, p := range byAda {
		assert.Equal(t, "ada", p.Username)
	}

	both, err := svc.Feed.ListPosts(ctx, FeedFilter{Kind: kindPtr(models.PostKindStory), Author: "bob"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "b story", both[0].Content)

	_, err = svc.Feed.ListPosts(ctx, FeedFilter{Kind: kindPtr("poem")})
	assert.True(t, models.IsCode(err, models.CodeValidation))
}

func TestListPostsAttachesCommentsAndLikes(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	mustRegister(t, svc, "ada", "bob")

	id := mustPost(t, svc, "ada", "hello", models.PostKindStory)
	quiet := mustPost(t, svc, "ada", "nobody cares", models.PostKindQuote)

	_, err := svc.Engagement.CreateComment(ctx, id, "bob", "one")
	require.NoError(t, err)
	_, err = svc.Engagement.CreateComment(ctx, id, "ada", "two")
	require.NoError(t, err)
	_, err = svc.Engagement.ToggleLike(ctx, id, "bob")
	require.NoError(t, err)

	posts, err := svc.Feed.ListPostsFor(ctx, FeedFilter{}, "bob")
	require.NoError(t, err)
	require.Len(t, posts, 2)

	byID := map[uint]models.PostView{}
	for _, p := range posts {
		byID[p.ID] = p
	}

	hello := byID[id]
	require.Len(t, hello.Comments, 2)
	assert.Equal(t, "one", hello.Comments[0].Text)
	assert.Equal(t, "two", hello.Comments[1].Text)
	assert.EqualValues(t, 1, hello.LikeCount)
	assert.True(t, hello.LikedByViewer)
	assert.Nil(t, hello.OriginalAuthor)

	empty := byID[quiet]
	assert.NotNil(t, empty.Comments)
	assert.Empty(t, empty.Comments)
	assert.Zero(t, empty.LikeCount)
	assert.False(t, empty.LikedByViewer)

	anonymous, err := svc.Feed.ListPosts(ctx, FeedFilter{})
	require.NoError(t, err)
	for _, p := range anonymous {
		assert.False(t, p.LikedByViewer)
	}
}

func TestListPostsEmpty(t *testing.T) {
	svc, _ := newTestServices(t)

	posts, err := svc.Feed.ListPosts(context.Background(), FeedFilter{})
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestGetPost(t *testing.T) {
	svc, _ := newTestServices(t)
	id := mustPost(t, svc, "ada", "hello", models.PostKindStory)

	post, err := svc.Feed.GetPost(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "hello", post.Content)

	_, err = svc.Feed.GetPost(context.Background(), id+100)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
