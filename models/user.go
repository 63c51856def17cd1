package models

import (
	"time"
)

// UserRole distinguishes clients from professionals
type UserRole string

const (
	RoleClient       UserRole = "client"
	RoleProfessional UserRole = "professional"
)

// User represents a marketplace user as returned by the backend
type User struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      UserRole  `json:"role"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfessionalProfile represents a service provider's public profile
type ProfessionalProfile struct {
	ID           uint     `json:"id"`
	UserID       uint     `json:"user_id"`
	BusinessName string   `json:"business_name"`
	CategoryID   uint     `json:"category_id"`
	Bio          string   `json:"bio,omitempty"`
	HourlyRate   *float64 `json:"hourly_rate,omitempty"`
	Rating       float64  `json:"rating"`
	ReviewsCount int      `json:"reviews_count"`
	IsVerified   bool     `json:"is_verified"`
	City         string   `json:"city,omitempty"`

	User *User `json:"user,omitempty"`
}

// ProfessionalProfileUpdate is the payload for editing a profile
type ProfessionalProfileUpdate struct {
	BusinessName *string  `json:"business_name"`
	Bio          *string  `json:"bio"`
	HourlyRate   *float64 `json:"hourly_rate"`
	City         *string  `json:"city"`
}

// ServiceCategory represents a category of home services
type ServiceCategory struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// Review represents a client review of a professional
type Review struct {
	ID             uint      `json:"id"`
	ProfessionalID uint      `json:"professional_id"`
	ClientID       uint      `json:"client_id"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment"`
	Response       string    `json:"response,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ReviewCreate is the payload for posting a review
type ReviewCreate struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	Rating         int    `json:"rating" binding:"required,min=1,max=5"`
	Comment        string `json:"comment"`
}
