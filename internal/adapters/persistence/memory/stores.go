package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"

	"gorm.io/gorm"
)

// FundStore is an in-memory FundRepository
type FundStore struct {
	mu    sync.Mutex
	funds []*models.Fund
}

func NewFundStore() *FundStore {
	return &FundStore{}
}

func (s *FundStore) Create(ctx context.Context, fund *models.Fund) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *fund
	s.funds = append(s.funds, &cp)
	return nil
}

func (s *FundStore) List(ctx context.Context) ([]*models.Fund, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Fund, 0, len(s.funds))
	for _, f := range s.funds {
		cp := *f
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *FundStore) Total(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, f := range s.funds {
		total += f.Amount
	}
	return total, nil
}

// BlogStore is an in-memory BlogRepository
type BlogStore struct {
	mu    sync.Mutex
	blogs map[string]*models.Blog
}

func NewBlogStore() *BlogStore {
	return &BlogStore{blogs: make(map[string]*models.Blog)}
}

func (s *BlogStore) Create(ctx context.Context, blog *models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *blog
	s.blogs[blog.ID] = &cp
	return nil
}

func (s *BlogStore) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blogs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *BlogStore) List(ctx context.Context, status string) ([]*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Blog
	for _, b := range s.blogs {
		if status != "" && status != domain.StatusFilterAll && b.Status != status {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *BlogStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blogs[id]
	if !ok {
		return 0, nil
	}
	changed := false
	for col, val := range fields {
		str, _ := val.(string)
		switch col {
		case "title":
			changed = setString(&b.Title, str) || changed
		case "thumbnail":
			changed = setString(&b.Thumbnail, str) || changed
		case "content":
			changed = setString(&b.Content, str) || changed
		}
	}
	if !changed {
		return 0, nil
	}
	return 1, nil
}

func (s *BlogStore) SetStatus(ctx context.Context, id, status string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blogs[id]
	if !ok {
		return false, nil
	}
	b.Status = status
	return true, nil
}

func (s *BlogStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blogs[id]; !ok {
		return false, nil
	}
	delete(s.blogs, id)
	return true, nil
}

// TokenStore is an in-memory RefreshTokenRepository
type TokenStore struct {
	mu     sync.Mutex
	nextID uint
	tokens map[uint]*models.RefreshToken
}

func NewTokenStore() *TokenStore {
	return &TokenStore{nextID: 1, tokens: make(map[uint]*models.RefreshToken)}
}

func (s *TokenStore) Create(ctx context.Context, token *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	token.ID = s.nextID
	s.nextID++
	cp := *token
	s.tokens[token.ID] = &cp
	return nil
}

func (s *TokenStore) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tokens {
		if t.TokenHash == tokenHash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *TokenStore) Revoke(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	t.RevokedAt = &now
	return nil
}

func (s *TokenStore) RevokeAllByUserID(ctx context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, t := range s.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (s *TokenStore) DeleteExpired(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	for id, t := range s.tokens {
		if t.IsExpired() {
			delete(s.tokens, id)
			removed++
		}
	}
	return removed, nil
}

// LocationStore is an in-memory LocationRepository
type LocationStore struct {
	mu        sync.Mutex
	districts []*models.District
	upazilas  []*models.Upazila
}

func NewLocationStore() *LocationStore {
	return &LocationStore{}
}

// Seed replaces the master data in one call
func (s *LocationStore) Seed(districts []*models.District, upazilas []*models.Upazila) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.districts = districts
	s.upazilas = upazilas
}

func (s *LocationStore) ListDistricts(ctx context.Context) ([]*models.District, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.District, 0, len(s.districts))
	for _, d := range s.districts {
		cp := *d
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *LocationStore) ListUpazilas(ctx context.Context, districtID uint) ([]*models.Upazila, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Upazila
	for _, u := range s.upazilas {
		if districtID != 0 && u.DistrictID != districtID {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
