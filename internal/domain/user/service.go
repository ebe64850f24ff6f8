// internal/domain/user/service.go
package user

import (
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/session"
	"gorm.io/gorm"
)

// Service handles customer profile business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// UpdateProfileRequest represents a partial profile update. Nil fields are
// left untouched.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// SaveAddressRequest represents a partial address update
type SaveAddressRequest struct {
	Village    *string `json:"village"`
	PostOffice *string `json:"post_office"`
	District   *string `json:"district"`
	Pincode    *string `json:"pincode"`
	State      *string `json:"state"`
	Landmark   *string `json:"landmark"`
}

// ProfileResponse represents a profile with its derived view state
type ProfileResponse struct {
	User      *User     `json:"user"`
	Complete  bool      `json:"complete"`
	ViewState ViewState `json:"view_state"`
}

// EnsureUser creates the user record on first login and refreshes provider
// fields on subsequent logins. Profile fields the user manages themselves
// are never overwritten here.
func (s *Service) EnsureUser(info *session.UserInfo) (*User, error) {
	var u User
	err := s.db.Where("uid = ?", info.UID).First(&u).Error

	if err == gorm.ErrRecordNotFound {
		u = User{
			UID:      info.UID,
			Email:    info.Email,
			Name:     info.Name,
			PhotoURL: info.PhotoURL,
		}
		if err := s.db.Create(&u).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return &u, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	updates := map[string]interface{}{}
	if info.Email != "" && info.Email != u.Email {
		updates["email"] = info.Email
	}
	if info.PhotoURL != "" && info.PhotoURL != u.PhotoURL {
		updates["photo_url"] = info.PhotoURL
	}
	if len(updates) > 0 {
		if err := s.db.Model(&u).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to refresh user: %w", err)
		}
	}

	return &u, nil
}

// GetProfile returns the user's profile with its derived view state
func (s *Service) GetProfile(uid string) (*ProfileResponse, error) {
	var u User
	if err := s.db.Where("uid = ?", uid).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to retrieve profile: %w", err)
	}
	return s.toProfileResponse(&u), nil
}

// GetUser returns the bare user record
func (s *Service) GetUser(uid string) (*User, error) {
	var u User
	if err := s.db.Where("uid = ?", uid).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return &u, nil
}

// UpdateProfile merges the given fields into the profile. Fields not present
// in the request keep their stored values.
func (s *Service) UpdateProfile(uid string, req *UpdateProfileRequest) (*ProfileResponse, error) {
	var u User
	if err := s.db.Where("uid = ?", uid).First(&u).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	if len(updates) > 0 {
		if err := s.db.Model(&u).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return s.toProfileResponse(&u), nil
}

// SaveAddress merges the given fields into the embedded shipping address
func (s *Service) SaveAddress(uid string, req *SaveAddressRequest) (*ProfileResponse, error) {
	var u User
	if err := s.db.Where("uid = ?", uid).First(&u).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}

	updates := map[string]interface{}{}
	if req.Village != nil {
		updates["address_village"] = *req.Village
	}
	if req.PostOffice != nil {
		updates["address_post_office"] = *req.PostOffice
	}
	if req.District != nil {
		updates["address_district"] = *req.District
	}
	if req.Pincode != nil {
		updates["address_pincode"] = *req.Pincode
	}
	if req.State != nil {
		updates["address_state"] = *req.State
	}
	if req.Landmark != nil {
		updates["address_landmark"] = *req.Landmark
	}

	if len(updates) > 0 {
		if err := s.db.Model(&u).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to save address: %w", err)
		}
	}

	return s.toProfileResponse(&u), nil
}

func (s *Service) toProfileResponse(u *User) *ProfileResponse {
	return &ProfileResponse{
		User:      u,
		Complete:  u.IsComplete(),
		ViewState: ProfileViewState(u),
	}
}
