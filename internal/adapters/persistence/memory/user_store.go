// Package memory provides in-memory implementations of the repository
// interfaces. They back the service and handler tests and mirror the SQL
// semantics the services rely on, including changed-row reporting and the
// conditional accept update.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/repositories"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"

	"gorm.io/gorm"
)

// UserStore is an in-memory UserRepository
type UserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[string]*models.User // keyed by email
}

// NewUserStore creates an empty user store
func NewUserStore() *UserStore {
	return &UserStore{nextID: 1, users: make(map[string]*models.User)}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	user.ID = s.nextID
	s.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	cp := *user
	s.users[user.Email] = &cp
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[email]
	return ok, nil
}

func (s *UserStore) UpdateFields(ctx context.Context, email string, fields map[string]interface{}) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return 0, nil
	}
	changed := false
	for col, val := range fields {
		str, _ := val.(string)
		switch col {
		case "name":
			changed = setString(&u.Name, str) || changed
		case "blood":
			changed = setString(&u.BloodGroup, str) || changed
		case "district":
			changed = setString(&u.District, str) || changed
		case "upazila":
			changed = setString(&u.Upazila, str) || changed
		case "avatar":
			changed = setString(&u.Avatar, str) || changed
		}
	}
	if !changed {
		return 0, nil
	}
	u.UpdatedAt = time.Now()
	return 1, nil
}

func (s *UserStore) SetStatus(ctx context.Context, id uint, status string) (bool, error) {
	return s.overwrite(id, func(u *models.User) bool {
		if u.Status == status {
			return false
		}
		u.Status = status
		return true
	})
}

func (s *UserStore) SetRole(ctx context.Context, id uint, role string) (bool, error) {
	return s.overwrite(id, func(u *models.User) bool {
		if u.Role == role {
			return false
		}
		u.Role = role
		return true
	})
}

// overwrite reports changed rows the way MySQL does: writing the value a
// row already holds reports false.
func (s *UserStore) overwrite(id uint, apply func(*models.User) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			if !apply(u) {
				return false, nil
			}
			u.UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

func (s *UserStore) Search(ctx context.Context, filter repositories.DonorFilter) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.User
	for _, u := range s.users {
		if matchesFilter(u, filter) {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *UserStore) List(ctx context.Context, filter repositories.DonorFilter, offset, limit int) ([]*models.User, int64, error) {
	all, err := s.Search(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

func matchesFilter(u *models.User, f repositories.DonorFilter) bool {
	if f.BloodGroup != "" && u.BloodGroup != f.BloodGroup {
		return false
	}
	if f.District != "" && u.District != f.District {
		return false
	}
	if f.Upazila != "" && u.Upazila != f.Upazila {
		return false
	}
	if f.Status != "" && f.Status != domain.StatusFilterAll && u.Status != f.Status {
		return false
	}
	return true
}

func setString(dst *string, val string) bool {
	if val == "" || *dst == val {
		return false
	}
	*dst = val
	return true
}
