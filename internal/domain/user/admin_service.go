// internal/domain/user/admin_service.go
package user

import (
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// AdminService handles staff authentication
type AdminService struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
}

// NewAdminService creates a new admin service
func NewAdminService(db *gorm.DB, cfg *config.Config) *AdminService {
	return &AdminService{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
	}
}

// AdminLoginRequest represents admin login data
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminAuthResponse represents an admin authentication response
type AdminAuthResponse struct {
	Admin       *Admin `json:"admin"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Login authenticates an admin account
func (s *AdminService) Login(req *AdminLoginRequest) (*AdminAuthResponse, error) {
	var admin Admin
	result := s.db.Where("email = ? AND is_active = ?", req.Email, true).First(&admin)
	if result.Error != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := s.passwordManager.VerifyPassword(req.Password, admin.Password); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := s.jwtManager.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	admin.Password = ""

	return &AdminAuthResponse{
		Admin:       &admin,
		AccessToken: token,
		ExpiresIn:   int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

// GetAdmin retrieves an admin account by ID
func (s *AdminService) GetAdmin(id uint) (*Admin, error) {
	var admin Admin
	result := s.db.Where("id = ? AND is_active = ?", id, true).First(&admin)
	if result.Error != nil {
		return nil, fmt.Errorf("admin not found")
	}
	admin.Password = ""
	return &admin, nil
}
