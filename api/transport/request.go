package transport

import (
	"encoding/json"

	"github.com/learnity/backend/domain"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ActivationRequest struct {
	ActivationToken string `json:"activation_token"`
	ActivationCode  string `json:"activation_code"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SocialAuthRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type UpdateAvatarRequest struct {
	AvatarURL string `json:"avatar_url"`
}

type UpdateRoleRequest struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

type CourseRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Price        int64           `json:"price"`
	ThumbnailURL string          `json:"thumbnail_url"`
	Content      json.RawMessage `json:"content"`
}

type OrderRequest struct {
	CourseID    string          `json:"course_id"`
	PaymentInfo json.RawMessage `json:"payment_info"`
}

type LayoutRequest struct {
	Type       string            `json:"type"`
	Banner     *domain.Banner    `json:"banner,omitempty"`
	FAQ        []domain.FAQItem  `json:"faq,omitempty"`
	Categories []domain.Category `json:"categories,omitempty"`
}

// Auth responses carry the shapes the web client expects instead of
// the generic envelope.

type LoginResponse struct {
	Success     bool         `json:"success"`
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

type RegisterResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	ActivationToken string `json:"activationToken"`
}

type RefreshResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"accessToken"`
}
