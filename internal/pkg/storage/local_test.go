package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key, err := s.Upload(ctx, strings.NewReader("hello"), "documents/app-1/idCard.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "documents/app-1/idCard.pdf", key)

	exists, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Download(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key))

	_, err = s.Download(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Upload(ctx, strings.NewReader("x"), "../escape.txt", "text/plain")
	assert.Error(t, err)

	_, err = s.Download(ctx, "../../etc/passwd")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
