package services

import (
	"context"
	"testing"

	"echoes/internal/db"
	"echoes/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestServices(t *testing.T) (*Services, *gorm.DB) {
	t.Helper()
	gdb, err := db.OpenDSN(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	return New(gdb), gdb
}

func mustRegister(t *testing.T, svc *Services, handles ...string) {
	t.Helper()
	for _, h := range handles {
		_, err := svc.Accounts.Register(context.Background(), h, "secret", "secret")
		require.NoError(t, err)
	}
}

func mustPost(t *testing.T, svc *Services, author, text string, kind models.PostKind) uint {
	t.Helper()
	id, err := svc.Engagement.CreatePost(context.Background(), author, text, kind)
	require.NoError(t, err)
	return id
}

func kindPtr(k models.PostKind) *models.PostKind {
	return &k
}
