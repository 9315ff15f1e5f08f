package usecase_test

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
)

// ── Completion service ────────────────────────────────────────────────────────

type fakeLLM struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []ports.CompletionRequest
}

func (f *fakeLLM) Complete(_ context.Context, req ports.CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.reply, f.err
}

type fakeTemplates map[string]string

func (f fakeTemplates) Text(_ context.Context, id string) (string, error) {
	t, ok := f[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return t, nil
}

type fakeRefs struct{ hits []dto.ReferenceHit }

func (f fakeRefs) SearchChunks(context.Context, string, string, string, int) ([]dto.ReferenceHit, error) {
	return f.hits, nil
}

type memQueryLogs struct{ logs []*entity.QueryLog }

func (m *memQueryLogs) Create(_ context.Context, l *entity.QueryLog) error {
	m.logs = append(m.logs, l)
	return nil
}

func (m *memQueryLogs) CountSince(_ context.Context, since time.Time) (int, error) {
	n := 0
	for _, l := range m.logs {
		if !l.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// ── Auditor ───────────────────────────────────────────────────────────────────

type recordingAuditor struct{ entries []ports.AuditEntry }

func (r *recordingAuditor) Record(_ context.Context, e ports.AuditEntry) {
	r.entries = append(r.entries, e)
}

// ── Library repository and storage ────────────────────────────────────────────

type memLibrary struct {
	files map[string]*entity.LibraryFile
}

func newMemLibrary() *memLibrary { return &memLibrary{files: map[string]*entity.LibraryFile{}} }

func (m *memLibrary) Create(_ context.Context, f *entity.LibraryFile) error {
	cp := *f
	m.files[f.ID] = &cp
	return nil
}

func (m *memLibrary) GetByID(_ context.Context, id string) (*entity.LibraryFile, error) {
	f, ok := m.files[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (m *memLibrary) List(_ context.Context, f repository.LibraryFilter) ([]*entity.LibraryFile, int, error) {
	var out []*entity.LibraryFile
	for _, file := range m.files {
		if f.Status != "" && string(file.Status) != f.Status {
			continue
		}
		if f.Section != "" && file.Section != f.Section {
			continue
		}
		if f.VisibleTo != "" && file.Status != entity.LibraryApproved && file.UploadedBy != f.VisibleTo {
			continue
		}
		cp := *file
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, len(out), nil
}

func (m *memLibrary) Review(_ context.Context, f *entity.LibraryFile) error {
	cur, ok := m.files[f.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Status != entity.LibraryPending {
		return domain.ErrConflict
	}
	cp := *f
	m.files[f.ID] = &cp
	return nil
}

func (m *memLibrary) Sections(_ context.Context, visibleTo string) ([]repository.LibrarySection, error) {
	counts := map[[2]string]int{}
	for _, f := range m.files {
		if visibleTo != "" && f.Status != entity.LibraryApproved && f.UploadedBy != visibleTo {
			continue
		}
		counts[[2]string{f.Section, f.Subfolder}]++
	}
	var out []repository.LibrarySection
	for k, n := range counts {
		out = append(out, repository.LibrarySection{Section: k[0], Subfolder: k[1], Count: n})
	}
	return out, nil
}

func (m *memLibrary) CountByStatus(context.Context) (map[entity.LibraryStatus]int, error) {
	out := map[entity.LibraryStatus]int{}
	for _, f := range m.files {
		out[f.Status]++
	}
	return out, nil
}

type memStorage struct {
	files map[string][]byte
	saves int
}

func newMemStorage() *memStorage { return &memStorage{files: map[string][]byte{}} }

func (s *memStorage) Save(_ context.Context, req ports.SaveRequest, r io.Reader) (*ports.StoredFile, error) {
	s.saves++
	rule := req.Allow.RuleFor(strings.ToLower(filepath.Ext(req.OriginalName)))
	if rule == nil {
		return nil, domain.ErrUnsupportedFileType
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(req.Dir, req.OriginalName)
	s.files[path] = data
	return &ports.StoredFile{Path: path, Size: int64(len(data)), MimeType: rule.MIMEs[0], Kind: rule.Kind}, nil
}

func (s *memStorage) Open(path string) (io.ReadCloser, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStorage) Remove(path string) error {
	delete(s.files, path)
	return nil
}

// ── Users ─────────────────────────────────────────────────────────────────────

type memUsers struct{ users map[string]*entity.User }

func newMemUsers(users ...*entity.User) *memUsers {
	m := &memUsers{users: map[string]*entity.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) RecordLogin(context.Context, string) error { return nil }

func (m *memUsers) List(context.Context, repository.UserFilter) ([]*entity.User, int, error) {
	out := make([]*entity.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

// ── Schemes ───────────────────────────────────────────────────────────────────

type memSchemes struct{ items map[string]*entity.SchemeOfWork }

func newMemSchemes() *memSchemes { return &memSchemes{items: map[string]*entity.SchemeOfWork{}} }

func (m *memSchemes) Create(_ context.Context, s *entity.SchemeOfWork) error {
	cp := *s
	m.items[s.ID] = &cp
	return nil
}

func (m *memSchemes) GetByID(_ context.Context, id string) (*entity.SchemeOfWork, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSchemes) Update(_ context.Context, s *entity.SchemeOfWork) error {
	if _, ok := m.items[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	m.items[s.ID] = &cp
	return nil
}

func (m *memSchemes) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memSchemes) List(_ context.Context, f repository.PlanFilter) ([]*entity.SchemeOfWork, int, error) {
	var out []*entity.SchemeOfWork
	for _, s := range m.items {
		if f.OwnerID != "" && s.CreatedBy != f.OwnerID {
			continue
		}
		out = append(out, s)
	}
	return out, len(out), nil
}

func (m *memSchemes) Count(context.Context) (int, error) { return len(m.items), nil }
