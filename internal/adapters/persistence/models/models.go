package models

import (
	"time"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"
	"gorm.io/gorm"
)

// JSON field names here are stable client contract: the front-end predates
// this server and expects the original camelCase document fields
// (status, createdAt, requestedBy/requesterEmail, blood, district, upazila).

// User represents the users table
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"size:100;not null" json:"name"`
	Email      string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password   string         `gorm:"size:255" json:"-"`
	BloodGroup string         `gorm:"column:blood;size:5;index" json:"blood"`
	District   string         `gorm:"size:100;index" json:"district"`
	Upazila    string         `gorm:"size:100;index" json:"upazila"`
	Avatar     string         `gorm:"size:255" json:"avatar,omitempty"`
	Role       string         `gorm:"size:20;default:'donor'" json:"role"`
	Status     string         `gorm:"size:20;default:'active';index" json:"status"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	BloodGroup string    `json:"blood"`
	District   string    `json:"district"`
	Upazila    string    `json:"upazila"`
	Avatar     string    `json:"avatar,omitempty"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		BloodGroup: u.BloodGroup,
		District:   u.District,
		Upazila:    u.Upazila,
		Avatar:     u.Avatar,
		Role:       u.Role,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
	}
}

// ToDomain converts the row to the domain user
func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Password:   u.Password,
		BloodGroup: u.BloodGroup,
		District:   u.District,
		Upazila:    u.Upazila,
		Avatar:     u.Avatar,
		Role:       domain.Role(u.Role),
		Status:     domain.UserStatus(u.Status),
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// DonationRequest represents the requests table. The reference is an opaque
// UUID assigned at creation. Descriptive fields below the status block are
// opaque payload: stored and returned, never interpreted.
type DonationRequest struct {
	ID             string         `gorm:"primaryKey;size:36" json:"id"`
	RequestedBy    string         `gorm:"size:100;index" json:"requestedBy"`
	RequesterEmail string         `gorm:"size:100;index" json:"requesterEmail,omitempty"`
	RequesterName  string         `gorm:"size:100" json:"requesterName,omitempty"`
	Status         string         `gorm:"size:30;not null;index" json:"status"`
	DonorEmail     string         `gorm:"size:100" json:"donorEmail,omitempty"`
	DonorName      string         `gorm:"size:100" json:"donorName,omitempty"`
	RecipientName  string         `gorm:"size:100" json:"recipientName,omitempty"`
	BloodGroup     string         `gorm:"column:blood;size:5" json:"blood,omitempty"`
	District       string         `gorm:"size:100" json:"district,omitempty"`
	Upazila        string         `gorm:"size:100" json:"upazila,omitempty"`
	Hospital       string         `gorm:"size:200" json:"hospital,omitempty"`
	FullAddress    string         `gorm:"size:255" json:"fullAddress,omitempty"`
	DonationDate   string         `gorm:"size:20" json:"donationDate,omitempty"`
	DonationTime   string         `gorm:"size:20" json:"donationTime,omitempty"`
	RequestMessage string         `gorm:"type:text" json:"requestMessage,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (DonationRequest) TableName() string {
	return "requests"
}

// Fund represents the funds table (append-only ledger)
type Fund struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100" json:"name"`
	Email     string    `gorm:"size:100;index" json:"email"`
	Amount    float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Date      string    `gorm:"size:20" json:"date"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Fund) TableName() string {
	return "funds"
}

// Blog represents the blogs table
type Blog struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Thumbnail   string         `gorm:"size:255" json:"thumbnail,omitempty"`
	Content     string         `gorm:"type:text" json:"content"`
	AuthorEmail string         `gorm:"size:100;index" json:"authorEmail"`
	Status      string         `gorm:"size:20;default:'draft';index" json:"status"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Blog) TableName() string {
	return "blogs"
}

// District represents the districts master table
type District struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (District) TableName() string {
	return "districts"
}

// Upazila represents the upazilas master table
type Upazila struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	DistrictID uint   `gorm:"index;not null" json:"district_id"`
	Name       string `gorm:"size:100;not null" json:"name"`
}

func (Upazila) TableName() string {
	return "upazilas"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&DonationRequest{},
		&Fund{},
		&Blog{},
		&District{},
		&Upazila{},
	)
}
