// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents a storefront customer. The primary key is the UID assigned
// by the identity provider; accounts are created on first login.
type User struct {
	UID       string         `gorm:"primaryKey;size:128" json:"uid"`
	Email     string         `gorm:"index;size:255" json:"email"`
	Name      string         `gorm:"size:255" json:"name"`
	Phone     string         `gorm:"size:20" json:"phone"`
	PhotoURL  string         `gorm:"size:500" json:"photo_url,omitempty"`
	Address   ShippingAddress `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ShippingAddress is the delivery address embedded in the user profile
type ShippingAddress struct {
	Village    string `gorm:"size:255" json:"village"` // address line
	PostOffice string `gorm:"size:255" json:"post_office"`
	District   string `gorm:"size:100" json:"district"`
	Pincode    string `gorm:"size:10" json:"pincode"`
	State      string `gorm:"size:100" json:"state"`
	Landmark   string `gorm:"size:255" json:"landmark,omitempty"`
}

// Admin represents a staff account for the management endpoints
type Admin struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password  string         `gorm:"not null;size:255" json:"-"`
	Name      string         `gorm:"size:255" json:"name"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (User) TableName() string  { return "users" }
func (Admin) TableName() string { return "admins" }

// BeforeCreate hook normalizes the email before insert
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = strings.ToLower(u.Email)
	return nil
}

// BeforeCreate hook normalizes the admin email before insert
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	a.Email = strings.ToLower(a.Email)
	return nil
}

// IsComplete reports whether the profile has what checkout needs: a phone
// number and an address line.
func (u *User) IsComplete() bool {
	return strings.TrimSpace(u.Phone) != "" && strings.TrimSpace(u.Address.Village) != ""
}

// ViewState tells the client which profile view to render
type ViewState string

const (
	// ViewStateEditing means required fields are missing and the edit form
	// should be shown.
	ViewStateEditing ViewState = "editing"
	// ViewStateViewing means the profile is complete and the read-only view
	// should be shown.
	ViewStateViewing ViewState = "viewing"
)

// ProfileViewState derives the profile view from completeness
func ProfileViewState(u *User) ViewState {
	if u.IsComplete() {
		return ViewStateViewing
	}
	return ViewStateEditing
}
