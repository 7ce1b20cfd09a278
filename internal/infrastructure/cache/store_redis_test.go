package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
)

func newRedisStore(t *testing.T) (*Store, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb, time.Minute, nil), mr, rdb
}

func TestRemember_MissThenHit(t *testing.T) {
	store, mr, _ := newRedisStore(t)
	ctx := context.Background()
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	v, err := remember(ctx, store, Key("letters"), load)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)
	assert.True(t, mr.Exists("content:letters"))
	assert.Equal(t, time.Minute, mr.TTL("content:letters"))

	v, err = remember(ctx, store, Key("letters"), load)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)
	assert.Equal(t, 1, calls)
}

func TestRemember_LoaderErrorIsNotCached(t *testing.T) {
	store, mr, _ := newRedisStore(t)
	_, err := remember(context.Background(), store, Key("broken"), func(context.Context) (int, error) {
		return 0, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, mr.Exists("content:broken"))
}

func TestRemember_UnreadableEntryFallsBackToLoader(t *testing.T) {
	store, mr, _ := newRedisStore(t)
	require.NoError(t, mr.Set("content:count", "not json"))

	v, err := remember(context.Background(), store, Key("count"), func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestProjectRepository_CachedReadKeepsLanguageOrder(t *testing.T) {
	store, _, _ := newRedisStore(t)
	next := &countingProjects{}
	next.project = &entity.Project{
		ID:    "p1",
		Slug:  "api",
		Title: entity.NewLocalizedString("en", "Service", "es", "Servicio", "pt", "Serviço"),
	}
	repo := NewProjectRepository(next, store)
	ctx := context.Background()

	_, err := repo.GetPublishedBySlug(ctx, "api")
	require.NoError(t, err)
	p, err := repo.GetPublishedBySlug(ctx, "api")
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, []string{"en", "es", "pt"}, p.Title.Langs())
	assert.Equal(t, "Servicio", p.Title.Resolve("es", "en"))
	assert.Equal(t, "Service", p.Title.Resolve("fr", "de"))
}

func TestProjectRepository_CachesNotFound(t *testing.T) {
	store, mr, _ := newRedisStore(t)
	next := &countingProjects{}
	repo := NewProjectRepository(next, store)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		p, err := repo.GetPublishedBySlug(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, p)
	}
	assert.Equal(t, 1, next.calls)
	v, err := mr.Get("content:projects:slug:missing")
	require.NoError(t, err)
	assert.Equal(t, "null", v)
}

func TestStorePurge_OnlyContentKeys(t *testing.T) {
	store, mr, _ := newRedisStore(t)
	ctx := context.Background()
	next := &countingProjects{}
	repo := NewProjectRepository(next, store)

	_, err := repo.ListPublished(ctx)
	require.NoError(t, err)
	_, err = repo.ListBySkill(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, mr.Set("session:abc", "admin"))
	require.NoError(t, mr.Set("contents", "unrelated"))

	require.NoError(t, store.Purge(ctx))

	assert.False(t, mr.Exists("content:projects"))
	assert.False(t, mr.Exists("content:projects:skill:s1"))
	assert.True(t, mr.Exists("session:abc"))
	assert.True(t, mr.Exists("contents"))

	_, err = repo.ListPublished(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, next.calls)
}

func TestProfileRepository_UpsertPurges(t *testing.T) {
	store, mr, _ := newRedisStore(t)
	ctx := context.Background()
	next := &stubProfiles{profile: &entity.Profile{ID: "pr1", FullName: "Ana"}}
	repo := NewProfileRepository(next, store)

	_, err := repo.Get(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists("content:profile"))

	name := "Ana P."
	_, err = repo.Upsert(ctx, entity.ProfilePatch{FullName: &name})
	require.NoError(t, err)
	assert.False(t, mr.Exists("content:profile"))

	p, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana P.", p.FullName)
	assert.Equal(t, 2, next.gets)
}

type stubProfiles struct {
	profile *entity.Profile
	gets    int
}

func (s *stubProfiles) Get(context.Context) (*entity.Profile, error) {
	s.gets++
	return s.profile, nil
}

func (s *stubProfiles) Upsert(_ context.Context, patch entity.ProfilePatch) (*entity.Profile, error) {
	if patch.FullName != nil {
		s.profile.FullName = *patch.FullName
	}
	return s.profile, nil
}
