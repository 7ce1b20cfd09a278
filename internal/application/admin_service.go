package application

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/mapper"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/portfolio-backend/pkg/slug"
)

// ObjectStorage uploads an object and returns its public URL. It must refuse
// to overwrite an existing object.
type ObjectStorage interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// ContentCache drops cached public reads.
type ContentCache interface {
	Purge(ctx context.Context) error
}

// ProjectIndexer mirrors published projects into the search index.
type ProjectIndexer interface {
	Index(ctx context.Context, p entity.Project) error
	Delete(ctx context.Context, id string) error
}

// ContentKind names an orderable content table.
type ContentKind string

const (
	KindProjects ContentKind = "projects"
	KindSkills   ContentKind = "skills"
	KindHobbies  ContentKind = "hobbies"
	KindCourses  ContentKind = "courses"
)

func (k ContentKind) table() (string, bool) {
	switch k {
	case KindProjects:
		return postgres.TableProjects, true
	case KindSkills:
		return postgres.TableSkills, true
	case KindHobbies:
		return postgres.TableHobbies, true
	case KindCourses:
		return postgres.TableCourses, true
	}
	return "", false
}

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// AdminService owns every multi-step write of the admin console. Writes that
// touch more than one row run inside a single transaction.
type AdminService struct {
	DB           postgres.Client
	Projects     *postgres.ProjectRepository
	Skills       *postgres.SkillRepository
	Hobbies      *postgres.HobbyRepository
	Courses      *postgres.CourseRepository
	Profile      *postgres.ProfileRepository
	Messages     *postgres.MessageRepository
	Storage      ObjectStorage
	Cache        ContentCache
	Index        ProjectIndexer
	Logger       *logrus.Logger
	FallbackLang string

	now    func() time.Time
	suffix func() string
}

func NewAdminService(db postgres.Client, storage ObjectStorage, cache ContentCache, index ProjectIndexer, logger *logrus.Logger, fallbackLang string) *AdminService {
	return &AdminService{
		DB:           db,
		Projects:     postgres.NewProjectRepository(db),
		Skills:       postgres.NewSkillRepository(db),
		Hobbies:      postgres.NewHobbyRepository(db),
		Courses:      postgres.NewCourseRepository(db),
		Profile:      postgres.NewProfileRepository(db),
		Messages:     postgres.NewMessageRepository(db),
		Storage:      storage,
		Cache:        cache,
		Index:        index,
		Logger:       logger,
		FallbackLang: fallbackLang,
		now:          time.Now,
		suffix:       func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:12] },
	}
}

func insertOne[R any](ctx context.Context, db postgres.Client, table string, set postgres.Values) (R, error) {
	var rec R
	raws, err := db.Insert(ctx, table, set)
	if err != nil {
		return rec, err
	}
	if len(raws) == 0 {
		return rec, fmt.Errorf("insert %s: no row returned", table)
	}
	return postgres.DecodeOne[R](raws[0])
}

func updateByID(ctx context.Context, db postgres.Client, table, id string, set postgres.Values) error {
	n, err := db.Update(ctx, postgres.From(table).Eq("id", id), set)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", table, id, ErrNotFound)
	}
	return nil
}

func deleteByID(ctx context.Context, db postgres.Client, table, id string) error {
	n, err := db.Delete(ctx, postgres.From(table).Eq("id", id))
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", table, id, ErrNotFound)
	}
	return nil
}

// linkSkills bulk-inserts one join row per distinct skill id, in input order.
func linkSkills(ctx context.Context, tx postgres.Client, projectID string, skillIDs []string) error {
	seen := make(map[string]bool, len(skillIDs))
	ids := make([]string, 0, len(skillIDs))
	for _, id := range skillIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}
	rows := mapper.ProjectSkillRows(projectID, ids)
	vals := make([]postgres.Values, len(rows))
	for i, r := range rows {
		vals[i] = postgres.Values(r)
	}
	_, err := tx.Insert(ctx, postgres.TableProjectSkills, vals...)
	return err
}

func (s *AdminService) warn(err error, msg string, fields logrus.Fields) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithError(err).WithFields(fields).Warn(msg)
}

func (s *AdminService) purge(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Purge(ctx); err != nil {
		s.warn(err, "cache purge failed", nil)
	}
}

func (s *AdminService) syncIndex(ctx context.Context, p entity.Project) {
	if s.Index == nil {
		return
	}
	var err error
	if p.Published {
		err = s.Index.Index(ctx, p)
	} else {
		err = s.Index.Delete(ctx, p.ID)
	}
	if err != nil {
		s.warn(err, "project index sync failed", logrus.Fields{"project_id": p.ID})
	}
}

func (s *AdminService) slugFrom(given string, name entity.LocalizedString) string {
	if given = strings.TrimSpace(given); given != "" {
		return given
	}
	if out := slug.From(name.Resolve(s.FallbackLang, s.FallbackLang)); out != "" {
		return out
	}
	// the resolved text may be blank; take the first language that yields a slug
	for _, l := range name.Langs() {
		v, _ := name.Get(l)
		if out := slug.From(v); out != "" {
			return out
		}
	}
	return ""
}

// Projects

func (s *AdminService) ListProjects(ctx context.Context) ([]entity.Project, error) {
	return s.Projects.ListAll(ctx)
}

// ReindexProjects rebuilds the search index from the database: published
// projects are indexed and drafts removed. It returns the number indexed.
func (s *AdminService) ReindexProjects(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	all, err := s.Projects.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range all {
		if p.Published {
			if err := s.Index.Index(ctx, p); err != nil {
				return n, fmt.Errorf("index project %s: %w", p.ID, err)
			}
			n++
			continue
		}
		if err := s.Index.Delete(ctx, p.ID); err != nil {
			return n, fmt.Errorf("unindex project %s: %w", p.ID, err)
		}
	}
	return n, nil
}

func (s *AdminService) GetProject(ctx context.Context, id string) (*entity.Project, error) {
	p, err := s.Projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return p, nil
}

// CreateProject inserts the project row and then its skill links.
func (s *AdminService) CreateProject(ctx context.Context, in entity.ProjectInput) (*entity.Project, error) {
	in.Slug = s.slugFrom(in.Slug, in.Title)
	if in.Slug == "" {
		return nil, fmt.Errorf("project slug: %w", ErrInvalidInput)
	}
	var id string
	err := s.DB.Tx(ctx, func(tx postgres.Client) error {
		rec, err := insertOne[mapper.ProjectRecord](ctx, tx, postgres.TableProjects, postgres.Values(mapper.ProjectInputToRecord(in, true)))
		if err != nil {
			return err
		}
		id = rec.ID
		return linkSkills(ctx, tx, id, in.SkillIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.projectWritten(ctx, id)
}

// UpdateProject overwrites the row and replaces all skill links. The slug is kept.
func (s *AdminService) UpdateProject(ctx context.Context, id string, in entity.ProjectInput) (*entity.Project, error) {
	err := s.DB.Tx(ctx, func(tx postgres.Client) error {
		set := postgres.Values(mapper.ProjectInputToRecord(in, false))
		set["updated_at"] = s.now().UTC()
		if err := updateByID(ctx, tx, postgres.TableProjects, id, set); err != nil {
			return err
		}
		if _, err := tx.Delete(ctx, postgres.From(postgres.TableProjectSkills).Eq("project_id", id)); err != nil {
			return err
		}
		return linkSkills(ctx, tx, id, in.SkillIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.projectWritten(ctx, id)
}

func (s *AdminService) projectWritten(ctx context.Context, id string) (*entity.Project, error) {
	s.purge(ctx)
	p, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	s.syncIndex(ctx, *p)
	return p, nil
}

// DeleteProject removes the skill links before the project row.
func (s *AdminService) DeleteProject(ctx context.Context, id string) error {
	err := s.DB.Tx(ctx, func(tx postgres.Client) error {
		if _, err := tx.Delete(ctx, postgres.From(postgres.TableProjectSkills).Eq("project_id", id)); err != nil {
			return err
		}
		return deleteByID(ctx, tx, postgres.TableProjects, id)
	})
	if err != nil {
		return err
	}
	if s.Index != nil {
		if err := s.Index.Delete(ctx, id); err != nil {
			s.warn(err, "project unindex failed", logrus.Fields{"project_id": id})
		}
	}
	s.purge(ctx)
	return nil
}

// Skills

func (s *AdminService) ListSkills(ctx context.Context) ([]entity.Skill, error) {
	return s.Skills.List(ctx)
}

func (s *AdminService) GetSkill(ctx context.Context, id string) (*entity.Skill, error) {
	sk, err := s.Skills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sk == nil {
		return nil, fmt.Errorf("skill %s: %w", id, ErrNotFound)
	}
	return sk, nil
}

func (s *AdminService) CreateSkill(ctx context.Context, in entity.SkillInput) (*entity.Skill, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("skill name: %w", ErrInvalidInput)
	}
	if in.Slug == nil || strings.TrimSpace(*in.Slug) == "" {
		if derived := slug.From(in.Name); derived != "" {
			in.Slug = &derived
		}
	}
	rec, err := insertOne[mapper.SkillRecord](ctx, s.DB, postgres.TableSkills, postgres.Values(mapper.SkillInputToRecord(in, true)))
	if err != nil {
		return nil, err
	}
	sk := mapper.SkillToDomain(rec)
	s.purge(ctx)
	return &sk, nil
}

func (s *AdminService) UpdateSkill(ctx context.Context, id string, in entity.SkillInput) (*entity.Skill, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("skill name: %w", ErrInvalidInput)
	}
	if err := updateByID(ctx, s.DB, postgres.TableSkills, id, postgres.Values(mapper.SkillInputToRecord(in, false))); err != nil {
		return nil, err
	}
	s.purge(ctx)
	return s.GetSkill(ctx, id)
}

// DeleteSkill removes the links to projects before the skill row.
func (s *AdminService) DeleteSkill(ctx context.Context, id string) error {
	err := s.DB.Tx(ctx, func(tx postgres.Client) error {
		if _, err := tx.Delete(ctx, postgres.From(postgres.TableProjectSkills).Eq("skill_id", id)); err != nil {
			return err
		}
		return deleteByID(ctx, tx, postgres.TableSkills, id)
	})
	if err != nil {
		return err
	}
	s.purge(ctx)
	return nil
}

// Hobbies

func (s *AdminService) ListHobbies(ctx context.Context) ([]entity.Hobby, error) {
	return s.Hobbies.List(ctx)
}

func (s *AdminService) GetHobby(ctx context.Context, id string) (*entity.Hobby, error) {
	h, err := s.Hobbies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("hobby %s: %w", id, ErrNotFound)
	}
	return h, nil
}

func (s *AdminService) CreateHobby(ctx context.Context, in entity.HobbyInput) (*entity.Hobby, error) {
	if in.Name.IsEmpty() {
		return nil, fmt.Errorf("hobby name: %w", ErrInvalidInput)
	}
	if in.Slug == nil || strings.TrimSpace(*in.Slug) == "" {
		if derived := s.slugFrom("", in.Name); derived != "" {
			in.Slug = &derived
		}
	}
	rec, err := insertOne[mapper.HobbyRecord](ctx, s.DB, postgres.TableHobbies, postgres.Values(mapper.HobbyInputToRecord(in, true)))
	if err != nil {
		return nil, err
	}
	h := mapper.HobbyToDomain(rec)
	s.purge(ctx)
	return &h, nil
}

func (s *AdminService) UpdateHobby(ctx context.Context, id string, in entity.HobbyInput) (*entity.Hobby, error) {
	if in.Name.IsEmpty() {
		return nil, fmt.Errorf("hobby name: %w", ErrInvalidInput)
	}
	if err := updateByID(ctx, s.DB, postgres.TableHobbies, id, postgres.Values(mapper.HobbyInputToRecord(in, false))); err != nil {
		return nil, err
	}
	s.purge(ctx)
	return s.GetHobby(ctx, id)
}

func (s *AdminService) DeleteHobby(ctx context.Context, id string) error {
	if err := deleteByID(ctx, s.DB, postgres.TableHobbies, id); err != nil {
		return err
	}
	s.purge(ctx)
	return nil
}

// Courses

func (s *AdminService) ListCourses(ctx context.Context) ([]entity.Course, error) {
	return s.Courses.List(ctx)
}

func (s *AdminService) GetCourse(ctx context.Context, id string) (*entity.Course, error) {
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("course %s: %w", id, ErrNotFound)
	}
	return c, nil
}

func (s *AdminService) CreateCourse(ctx context.Context, in entity.CourseInput) (*entity.Course, error) {
	if in.Name.IsEmpty() {
		return nil, fmt.Errorf("course name: %w", ErrInvalidInput)
	}
	if in.Slug == nil || strings.TrimSpace(*in.Slug) == "" {
		if derived := s.slugFrom("", in.Name); derived != "" {
			in.Slug = &derived
		}
	}
	rec, err := insertOne[mapper.CourseRecord](ctx, s.DB, postgres.TableCourses, postgres.Values(mapper.CourseInputToRecord(in, true)))
	if err != nil {
		return nil, err
	}
	c := mapper.CourseToDomain(rec)
	s.purge(ctx)
	return &c, nil
}

func (s *AdminService) UpdateCourse(ctx context.Context, id string, in entity.CourseInput) (*entity.Course, error) {
	if in.Name.IsEmpty() {
		return nil, fmt.Errorf("course name: %w", ErrInvalidInput)
	}
	if err := updateByID(ctx, s.DB, postgres.TableCourses, id, postgres.Values(mapper.CourseInputToRecord(in, false))); err != nil {
		return nil, err
	}
	s.purge(ctx)
	return s.GetCourse(ctx, id)
}

func (s *AdminService) DeleteCourse(ctx context.Context, id string) error {
	if err := deleteByID(ctx, s.DB, postgres.TableCourses, id); err != nil {
		return err
	}
	s.purge(ctx)
	return nil
}

// Ordering

// Reorder sets display_order to each id's index. All updates share one
// transaction; an unknown id rolls every change back.
func (s *AdminService) Reorder(ctx context.Context, kind ContentKind, ids []string) error {
	table, ok := kind.table()
	if !ok {
		return fmt.Errorf("reorder %q: %w", kind, ErrInvalidInput)
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			return fmt.Errorf("reorder %s: duplicate or empty id: %w", kind, ErrInvalidInput)
		}
		seen[id] = true
	}
	if len(ids) == 0 {
		return nil
	}
	err := s.DB.Tx(ctx, func(tx postgres.Client) error {
		for i, id := range ids {
			if err := updateByID(ctx, tx, table, id, postgres.Values{"display_order": i}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.purge(ctx)
	return nil
}

// Profile

func (s *AdminService) GetProfile(ctx context.Context) (*entity.Profile, error) {
	return s.Profile.Get(ctx)
}

func (s *AdminService) UpsertProfile(ctx context.Context, patch entity.ProfilePatch) (*entity.Profile, error) {
	p, err := s.Profile.Upsert(ctx, patch)
	if err != nil {
		return nil, err
	}
	s.purge(ctx)
	return p, nil
}

// Uploads

// Upload stores r under folder with a generated "<unix-millis>-<random><ext>"
// name and returns its public URL.
func (s *AdminService) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (string, error) {
	if s.Storage == nil {
		return "", ErrStorageDisabled
	}
	if !slug.Valid(folder) {
		return "", fmt.Errorf("upload folder %q: %w", folder, ErrInvalidInput)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), s.suffix(), ext)
	objectPath := path.Join(folder, name)
	url, err := s.Storage.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("object", objectPath).Error("upload failed")
		}
		return "", err
	}
	return url, nil
}

// Messages

func (s *AdminService) ListMessages(ctx context.Context) ([]entity.Message, error) {
	return s.Messages.List(ctx)
}

func (s *AdminService) MarkMessageRead(ctx context.Context, id string, read bool) error {
	ok, err := s.Messages.MarkRead(ctx, id, read)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("message %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *AdminService) DeleteMessage(ctx context.Context, id string) error {
	ok, err := s.Messages.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("message %s: %w", id, ErrNotFound)
	}
	return nil
}

// Dashboard

type DashboardStats struct {
	Projects          int64 `json:"projects"`
	PublishedProjects int64 `json:"published_projects"`
	Skills            int64 `json:"skills"`
	Hobbies           int64 `json:"hobbies"`
	Courses           int64 `json:"courses"`
	Messages          int64 `json:"messages"`
	UnreadMessages    int64 `json:"unread_messages"`
}

// Stats runs the counts concurrently. They are not a consistent snapshot.
func (s *AdminService) Stats(ctx context.Context) (DashboardStats, error) {
	var st DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int64, q *postgres.Query) {
		g.Go(func() error {
			n, err := s.DB.Count(gctx, q)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}
	count(&st.Projects, postgres.From(postgres.TableProjects))
	count(&st.PublishedProjects, postgres.From(postgres.TableProjects).Eq("published", true))
	count(&st.Skills, postgres.From(postgres.TableSkills))
	count(&st.Hobbies, postgres.From(postgres.TableHobbies))
	count(&st.Courses, postgres.From(postgres.TableCourses))
	count(&st.Messages, postgres.From(postgres.TableMessages))
	count(&st.UnreadMessages, postgres.From(postgres.TableMessages).Eq("read", false))
	if err := g.Wait(); err != nil {
		return DashboardStats{}, err
	}
	return st, nil
}
