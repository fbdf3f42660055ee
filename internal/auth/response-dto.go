package auth

import "time"

// UserInfo is the denormalized account summary returned by login. It
// carries the full role and permission sets even though tokens only ever
// embed the primary role.
type UserInfo struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FullName    string   `json:"fullName"`
	Phone       string   `json:"phone,omitempty"`
	StudentID   *string  `json:"studentId,omitempty"`
	TeacherID   *string  `json:"teacherId,omitempty"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// login response body
type LoginResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	TokenType    string   `json:"tokenType"` // always "Bearer"
	ExpiresIn    int64    `json:"expiresIn"` // access token lifetime in seconds
	UserInfo     UserInfo `json:"userInfo"`
}

// refresh response body; RefreshToken echoes the input unchanged
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// token validity probe body
type ValidateResponse struct {
	Valid bool `json:"valid"`
}

// decoded claim projection for the diagnostic /token/info endpoint
type TokenInfoResponse struct {
	Username   string    `json:"username"`
	UserID     string    `json:"userId"`
	Role       string    `json:"role"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	TokenType  string    `json:"tokenType"`
	Expiration time.Time `json:"expiration"`
	IsExpired  bool      `json:"isExpired"`
}
