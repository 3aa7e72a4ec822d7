// Package memory is the zero-dependency backend used for development and
// tests. Records are guarded by an RWMutex and copied on the way in and out
// so callers can never mutate shared state.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/okamel/cvbank/internal/models"
	"github.com/okamel/cvbank/internal/utils"
)

type CVStore struct {
	mu  sync.RWMutex
	cvs map[string]*models.CV
}

func NewCVStore() *CVStore {
	return &CVStore{cvs: make(map[string]*models.CV)}
}

func (s *CVStore) snapshot(filter func(*models.CV) bool, limit int) []models.CV {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]models.CV, 0, len(s.cvs))
	for _, cv := range s.cvs {
		if filter == nil || filter(cv) {
			rows = append(rows, *cv)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].UploadDate.Equal(rows[j].UploadDate) {
			return rows[i].ID < rows[j].ID
		}
		return rows[i].UploadDate.After(rows[j].UploadDate)
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func (s *CVStore) ListAll(ctx context.Context, limit int) ([]models.CV, error) {
	return s.snapshot(nil, limit), nil
}

func (s *CVStore) ListByNationality(ctx context.Context, nationality string, limit int) ([]models.CV, error) {
	return s.snapshot(func(cv *models.CV) bool {
		return cv.Nationality == nationality
	}, limit), nil
}

func (s *CVStore) GetByID(ctx context.Context, id string) (*models.CV, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cv, ok := s.cvs[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *cv
	return &cp, nil
}

func (s *CVStore) Create(ctx context.Context, cv *models.CV) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *cv
	s.cvs[cv.ID] = &cp
	return nil
}

func (s *CVStore) Update(ctx context.Context, id string, upd models.CVUpdate) (*models.CV, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cv, ok := s.cvs[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	upd.Apply(cv)
	cp := *cv
	return &cp, nil
}

func (s *CVStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cvs[id]; !ok {
		return utils.ErrNotFound
	}
	delete(s.cvs, id)
	return nil
}

type UserStore struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*models.User)}
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[u.Username] = &cp
	return nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *u
	return &cp, nil
}
