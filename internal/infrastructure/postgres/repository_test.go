package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/postgres/pgtest"
)

func seedPortfolio(f *pgtest.Fake) {
	f.Seed(postgres.TableSkills,
		map[string]any{"id": "s1", "name": "Go", "slug": "go", "type": "backend", "featured": true, "display_order": 1},
		map[string]any{"id": "s2", "name": "Angular", "slug": "angular", "type": "frontend", "featured": false, "display_order": 0},
		map[string]any{"id": "s3", "name": "Docker", "type": "tool", "featured": true, "display_order": 2},
	)
	f.Seed(postgres.TableProjects,
		map[string]any{"id": "p1", "slug": "api", "title": map[string]string{"es": "API"}, "display_order": 2, "published": true},
		map[string]any{"id": "p2", "slug": "web", "title": map[string]string{"es": "Web"}, "display_order": 1, "published": true},
		map[string]any{"id": "p3", "slug": "draft", "title": map[string]string{"es": "Borrador"}, "display_order": 0, "published": false},
	)
	f.Seed(postgres.TableProjectSkills,
		map[string]any{"project_id": "p1", "skill_id": "s1"},
		map[string]any{"project_id": "p1", "skill_id": "s3"},
		map[string]any{"project_id": "p2", "skill_id": "s2"},
		map[string]any{"project_id": "p3", "skill_id": "s1"},
	)
}

func projectIDs(ps []entity.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestProjectRepository_ListPublished(t *testing.T) {
	f := pgtest.New()
	seedPortfolio(f)
	repo := postgres.NewProjectRepository(f)

	got, err := repo.ListPublished(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1"}, projectIDs(got))

	require.Len(t, got[1].Technologies, 2)
	assert.Equal(t, "s1", got[1].Technologies[0].ID)
	assert.Equal(t, "s3", got[1].Technologies[1].ID)
	assert.Equal(t, []string{"select:projects"}, f.Ops())
}

func TestProjectRepository_GetPublishedBySlug(t *testing.T) {
	f := pgtest.New()
	seedPortfolio(f)
	repo := postgres.NewProjectRepository(f)
	ctx := context.Background()

	p, err := repo.GetPublishedBySlug(ctx, "api")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "API", p.Title.Resolve("en", "es"))

	again, err := repo.GetPublishedBySlug(ctx, "api")
	require.NoError(t, err)
	assert.Equal(t, p, again)

	missing, err := repo.GetPublishedBySlug(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	draft, err := repo.GetPublishedBySlug(ctx, "draft")
	require.NoError(t, err)
	assert.Nil(t, draft)
}

func TestProjectRepository_StoreErrorPropagates(t *testing.T) {
	f := pgtest.New()
	f.FailOn("single", postgres.TableProjects, errors.New("permission denied for table projects"))
	repo := postgres.NewProjectRepository(f)

	p, err := repo.GetPublishedBySlug(context.Background(), "api")
	assert.Nil(t, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied for table projects")
	assert.False(t, postgres.IsNoRows(err))
}

func TestProjectRepository_ListBySkill(t *testing.T) {
	f := pgtest.New()
	seedPortfolio(f)
	repo := postgres.NewProjectRepository(f)

	got, err := repo.ListBySkill(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, projectIDs(got))

	none, err := repo.ListBySkill(context.Background(), "zzz")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestProjectRepository_ListAllIncludesDrafts(t *testing.T) {
	f := pgtest.New()
	seedPortfolio(f)
	got, err := postgres.NewProjectRepository(f).ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p2", "p1"}, projectIDs(got))
}

func TestSkillRepository(t *testing.T) {
	f := pgtest.New()
	seedPortfolio(f)
	repo := postgres.NewSkillRepository(f)
	ctx := context.Background()

	all, err := repo.List(ctx)
	require.NoError(t, err)
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Angular", "Docker", "Go"}, names)

	featured, err := repo.ListFeatured(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 2)
	assert.Equal(t, "Docker", featured[0].Name)
	assert.Equal(t, "Go", featured[1].Name)

	s, err := repo.GetBySlug(ctx, "go")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, entity.SkillBackend, s.Type)

	s, err = repo.GetBySlug(ctx, "rust")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestHobbyAndCourseRepositories(t *testing.T) {
	f := pgtest.New()
	f.Seed(postgres.TableHobbies,
		map[string]any{"id": "h1", "slug": "climb", "name": map[string]string{"en": "Climbing"}, "display_order": 3},
		map[string]any{"id": "h2", "slug": "photo", "name": map[string]string{"en": "Photography"}, "display_order": 1},
	)
	f.Seed(postgres.TableCourses,
		map[string]any{"id": "c1", "slug": "k8s", "name": map[string]string{"en": "Kubernetes"}, "display_order": 1, "completion_date": "2023-04-01"},
	)
	ctx := context.Background()

	hobbies, err := postgres.NewHobbyRepository(f).List(ctx)
	require.NoError(t, err)
	require.Len(t, hobbies, 2)
	assert.Equal(t, "h2", hobbies[0].ID)

	h, err := postgres.NewHobbyRepository(f).GetBySlug(ctx, "none")
	require.NoError(t, err)
	assert.Nil(t, h)

	c, err := postgres.NewCourseRepository(f).GetBySlug(ctx, "k8s")
	require.NoError(t, err)
	require.NotNil(t, c)
	require.NotNil(t, c.CompletionDate)
	assert.Equal(t, 2023, c.CompletionDate.Year())
}

func TestProfileRepository_GetAbsent(t *testing.T) {
	p, err := postgres.NewProfileRepository(pgtest.New()).Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProfileRepository_UpsertInsertsWhenAbsent(t *testing.T) {
	f := pgtest.New()
	repo := postgres.NewProfileRepository(f)
	name := "Ana"

	p, err := repo.Upsert(context.Background(), entity.ProfilePatch{FullName: &name})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Ana", p.FullName)

	assert.Len(t, f.CallsFor("insert", postgres.TableProfile), 1)
	assert.Empty(t, f.CallsFor("update", postgres.TableProfile))
	assert.Equal(t, []string{"tx", "lock", "select:profile", "insert:profile", "commit"}, f.Ops())
}

func TestProfileRepository_UpsertUpdatesEarliest(t *testing.T) {
	f := pgtest.New()
	f.Seed(postgres.TableProfile,
		map[string]any{"id": "late", "full_name": "Dup", "created_at": "2024-02-01T00:00:00Z"},
		map[string]any{"id": "early", "full_name": "Ana", "github_url": "https://github.com/ana", "created_at": "2023-01-01T00:00:00Z"},
	)
	repo := postgres.NewProfileRepository(f)
	bio := entity.NewLocalizedString("es", "Hola", "en", "Hi")

	p, err := repo.Upsert(context.Background(), entity.ProfilePatch{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "early", p.ID)
	assert.Equal(t, "Ana", p.FullName)
	assert.Equal(t, "Hi", p.Bio.Resolve("en", "es"))
	require.NotNil(t, p.GithubURL)

	updates := f.CallsFor("update", postgres.TableProfile)
	require.Len(t, updates, 1)
	_, touchedName := updates[0].Set["full_name"]
	assert.False(t, touchedName)
	assert.Empty(t, f.CallsFor("insert", postgres.TableProfile))
}

func TestMessageRepository(t *testing.T) {
	f := pgtest.New()
	repo := postgres.NewMessageRepository(f)
	ctx := context.Background()

	require.NoError(t, repo.Send(ctx, entity.ContactMessage{FullName: "Luis", Email: "luis@example.com", Content: "Hola"}))
	inserts := f.CallsFor("insert", postgres.TableMessages)
	require.Len(t, inserts, 1)
	assert.Equal(t, false, inserts[0].Rows[0]["read"])
	_, hasID := inserts[0].Rows[0]["id"]
	assert.False(t, hasID)

	msgs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Luis", msgs[0].FullName)

	ok, err := repo.MarkRead(ctx, msgs[0].ID, true)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdminUserRepository(t *testing.T) {
	f := pgtest.New()
	repo := postgres.NewAdminUserRepository(f)
	ctx := context.Background()

	u := &entity.AdminUser{Email: "admin@example.com", Password: "hash", DisplayName: "Admin"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEmpty(t, u.ID)

	got, err := repo.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hash", got.Password)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.Error(t, repo.Update(ctx, &entity.AdminUser{ID: "nope"}))
}
