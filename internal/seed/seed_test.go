package seed

import (
	"context"
	"testing"

	"echoes/internal/db"
	"echoes/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeederRun(t *testing.T) {
	gdb, err := db.OpenDSN(":memory:")
	require.NoError(t, err)
	defer db.Close(gdb)

	ctx := context.Background()
	s := NewSeeder(gdb, Options{Users: 4, Posts: 10, Comments: 2, Seed: 42})
	sum, err := s.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, sum.Users)
	assert.Equal(t, 10, sum.Posts)
	assert.Equal(t, 2, sum.Reposts)

	var users, posts, comments, follows int64
	gdb.Model(&models.User{}).Count(&users)
	gdb.Model(&models.Post{}).Count(&posts)
	gdb.Model(&models.Comment{}).Count(&comments)
	gdb.Model(&models.Follow{}).Count(&follows)
	assert.EqualValues(t, sum.Users, users)
	assert.EqualValues(t, sum.Posts+sum.Reposts, posts)
	assert.EqualValues(t, sum.Comments, comments)
	assert.EqualValues(t, sum.Follows, follows)

	var reposts int64
	gdb.Model(&models.Post{}).Where("original_author IS NOT NULL").Count(&reposts)
	assert.EqualValues(t, sum.Reposts, reposts)

	require.NoError(t, s.ClearAll(ctx))
	gdb.Model(&models.User{}).Count(&users)
	gdb.Model(&models.Post{}).Count(&posts)
	assert.Zero(t, users)
	assert.Zero(t, posts)
}
