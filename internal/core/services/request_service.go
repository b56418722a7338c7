package services

import (
	"context"
	"errors"
	"time"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/repositories"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/pkg/cache"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/pkg/pagination"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	pendingBoardKey = "requests:pending"
	pendingBoardTTL = 30 * time.Second
)

// RequestService handles donation request business logic
type RequestService struct {
	requestRepo repositories.RequestRepository
	authz       *AuthzService
	cache       *cache.Cache
	log         *zap.Logger
}

// NewRequestService creates a new request service
func NewRequestService(
	requestRepo repositories.RequestRepository,
	authz *AuthzService,
	c *cache.Cache,
	log *zap.Logger,
) *RequestService {
	return &RequestService{requestRepo: requestRepo, authz: authz, cache: c, log: log}
}

// CreateRequestInput carries the descriptive payload of a new request.
// Everything here is opaque: stored and echoed back, never interpreted.
type CreateRequestInput struct {
	RequesterName  string `json:"requesterName"`
	RecipientName  string `json:"recipientName"`
	BloodGroup     string `json:"blood"`
	District       string `json:"district"`
	Upazila        string `json:"upazila"`
	Hospital       string `json:"hospital"`
	FullAddress    string `json:"fullAddress"`
	DonationDate   string `json:"donationDate"`
	DonationTime   string `json:"donationTime"`
	RequestMessage string `json:"requestMessage"`
}

// RequestPatch carries the editable descriptive fields. Status, donor
// identity and requester identity are never patchable through this path.
type RequestPatch struct {
	RecipientName  string `json:"recipientName"`
	BloodGroup     string `json:"blood"`
	District       string `json:"district"`
	Upazila        string `json:"upazila"`
	Hospital       string `json:"hospital"`
	FullAddress    string `json:"fullAddress"`
	DonationDate   string `json:"donationDate"`
	DonationTime   string `json:"donationTime"`
	RequestMessage string `json:"requestMessage"`
}

// Create records a new donation request. The server owns the identity
// fields: reference, requester binding, status and creation time are
// all assigned here regardless of what the client sent.
func (s *RequestService) Create(ctx context.Context, requesterEmail string, input *CreateRequestInput) (*models.DonationRequest, error) {
	req := &models.DonationRequest{
		ID:             uuid.New().String(),
		RequestedBy:    requesterEmail,
		RequesterEmail: requesterEmail,
		RequesterName:  input.RequesterName,
		Status:         domain.RequestPending,
		RecipientName:  input.RecipientName,
		BloodGroup:     input.BloodGroup,
		District:       input.District,
		Upazila:        input.Upazila,
		Hospital:       input.Hospital,
		FullAddress:    input.FullAddress,
		DonationDate:   input.DonationDate,
		DonationTime:   input.DonationTime,
		RequestMessage: input.RequestMessage,
		CreatedAt:      time.Now(),
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, pendingBoardKey)
	s.log.Info("donation request created",
		zap.String("id", req.ID),
		zap.String("requestedBy", requesterEmail))
	return req, nil
}

// Get returns one request by its reference. A malformed reference is
// reported as invalid, not as missing.
func (s *RequestService) Get(ctx context.Context, id string) (*models.DonationRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidReference
	}
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

// ListMine returns the caller's own requests, newest first
func (s *RequestService) ListMine(ctx context.Context, email string) ([]*models.DonationRequest, error) {
	return s.requestRepo.ListByRequester(ctx, email)
}

// Patch merges the editable fields into a request the caller owns (or
// the caller is an admin). Reports whether anything actually changed.
func (s *RequestService) Patch(ctx context.Context, cap domain.Capability, id string, patch *RequestPatch) (bool, error) {
	req, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if err := s.authz.CanModify(cap, req.RequestedBy, req.RequesterEmail); err != nil {
		return false, err
	}

	fields := make(map[string]interface{})
	put := func(col, val string) {
		if val != "" {
			fields[col] = val
		}
	}
	put("recipient_name", patch.RecipientName)
	put("blood", patch.BloodGroup)
	put("district", patch.District)
	put("upazila", patch.Upazila)
	put("hospital", patch.Hospital)
	put("full_address", patch.FullAddress)
	put("donation_date", patch.DonationDate)
	put("donation_time", patch.DonationTime)
	put("request_message", patch.RequestMessage)
	if len(fields) == 0 {
		return false, nil
	}

	changed, err := s.requestRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		return false, err
	}
	if changed > 0 {
		s.cache.Invalidate(ctx, pendingBoardKey)
	}
	return changed > 0, nil
}

// Accept claims a pending request for a donor. The transition is a
// single conditional update: the status swap and the donor stamp land
// together, and of any number of concurrent accepts exactly one wins.
// Losers get ErrAlreadyAssigned.
func (s *RequestService) Accept(ctx context.Context, id, donorName, donorEmail string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidReference
	}
	ok, err := s.requestRepo.AcceptPending(ctx, id, donorName, donorEmail)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAlreadyAssigned
	}
	s.cache.Invalidate(ctx, pendingBoardKey)
	s.log.Info("donation request accepted",
		zap.String("id", id),
		zap.String("donorEmail", donorEmail))
	return nil
}

// UpdateStatus is the volunteer/admin status overwrite. The value is
// stored as sent; no transition rules apply here. Reports whether the
// stored status actually changed.
func (s *RequestService) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, domain.ErrInvalidReference
	}
	changed, err := s.requestRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return false, err
	}
	if changed > 0 {
		s.cache.Invalidate(ctx, pendingBoardKey)
	}
	return changed > 0, nil
}

// Delete removes a request the caller owns (or the caller is an admin)
func (s *RequestService) Delete(ctx context.Context, cap domain.Capability, id string) error {
	req, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authz.CanModify(cap, req.RequestedBy, req.RequesterEmail); err != nil {
		return err
	}
	ok, err := s.requestRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrRequestNotFound
	}
	s.cache.Invalidate(ctx, pendingBoardKey)
	return nil
}

// ListAll is the back-office ledger view, newest first
func (s *RequestService) ListAll(ctx context.Context, params *pagination.Params) ([]*models.DonationRequest, *pagination.Meta, error) {
	reqs, total, err := s.requestRepo.ListAll(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, nil, err
	}
	return reqs, pagination.GetMeta(params, total), nil
}

// PendingBoard is the public list of open requests. It is the hottest
// read in the system and serves from cache when one is configured.
func (s *RequestService) PendingBoard(ctx context.Context) ([]*models.DonationRequest, error) {
	return cache.GetOrLoadJSON(s.cache, ctx, pendingBoardKey, pendingBoardTTL,
		func(ctx context.Context) ([]*models.DonationRequest, error) {
			return s.requestRepo.ListByStatus(ctx, domain.RequestPending)
		})
}

// ListByStatus lists requests carrying one status value. The value is
// matched as sent; unknown statuses just match nothing.
func (s *RequestService) ListByStatus(ctx context.Context, status string) ([]*models.DonationRequest, error) {
	return s.requestRepo.ListByStatus(ctx, status)
}

// VolunteerQueue lists the requests a volunteer works from
func (s *RequestService) VolunteerQueue(ctx context.Context) ([]*models.DonationRequest, error) {
	return s.requestRepo.ListByStatus(ctx, domain.RequestPending, domain.RequestApproved)
}
