package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"

	"gorm.io/gorm"
)

// RequestStore is an in-memory RequestRepository. AcceptPending holds the
// store lock across the status check and the write, so concurrent accepts
// behave like the SQL conditional update: one winner, the rest see false.
type RequestStore struct {
	mu       sync.Mutex
	requests map[string]*models.DonationRequest
}

// NewRequestStore creates an empty request store
func NewRequestStore() *RequestStore {
	return &RequestStore{requests: make(map[string]*models.DonationRequest)}
}

func (s *RequestStore) Create(ctx context.Context, req *models.DonationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *req
	s.requests[req.ID] = &cp
	return nil
}

func (s *RequestStore) GetByID(ctx context.Context, id string) (*models.DonationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *req
	return &cp, nil
}

func (s *RequestStore) ListByRequester(ctx context.Context, email string) ([]*models.DonationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.DonationRequest
	for _, r := range s.requests {
		if r.RequestedBy == email || r.RequesterEmail == email {
			cp := *r
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *RequestStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return 0, nil
	}
	changed := false
	for col, val := range fields {
		str, _ := val.(string)
		switch col {
		case "recipient_name":
			changed = setString(&r.RecipientName, str) || changed
		case "blood":
			changed = setString(&r.BloodGroup, str) || changed
		case "district":
			changed = setString(&r.District, str) || changed
		case "upazila":
			changed = setString(&r.Upazila, str) || changed
		case "hospital":
			changed = setString(&r.Hospital, str) || changed
		case "full_address":
			changed = setString(&r.FullAddress, str) || changed
		case "donation_date":
			changed = setString(&r.DonationDate, str) || changed
		case "donation_time":
			changed = setString(&r.DonationTime, str) || changed
		case "request_message":
			changed = setString(&r.RequestMessage, str) || changed
		}
	}
	if !changed {
		return 0, nil
	}
	return 1, nil
}

func (s *RequestStore) AcceptPending(ctx context.Context, id, donorName, donorEmail string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok || r.Status != domain.RequestPending {
		return false, nil
	}
	r.Status = domain.RequestInProgress
	r.DonorName = donorName
	r.DonorEmail = donorEmail
	return true, nil
}

func (s *RequestStore) UpdateStatus(ctx context.Context, id, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok || r.Status == status {
		return 0, nil
	}
	r.Status = status
	return 1, nil
}

func (s *RequestStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[id]; !ok {
		return false, nil
	}
	delete(s.requests, id)
	return true, nil
}

func (s *RequestStore) ListAll(ctx context.Context, offset, limit int) ([]*models.DonationRequest, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.DonationRequest
	for _, r := range s.requests {
		cp := *r
		out = append(out, &cp)
	}
	sortNewestFirst(out)
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (s *RequestStore) ListByStatus(ctx context.Context, statuses ...string) ([]*models.DonationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.DonationRequest
	for _, r := range s.requests {
		for _, st := range statuses {
			if r.Status == st {
				cp := *r
				out = append(out, &cp)
				break
			}
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *RequestStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.requests)), nil
}

func sortNewestFirst(reqs []*models.DonationRequest) {
	sort.SliceStable(reqs, func(i, j int) bool {
		return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
	})
}
