package dto

type RegisterRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Program   string `json:"program,omitempty"`
	YearLevel int    `json:"year_level,omitempty" validate:"omitempty,min=1,max=5"`
}

type UserLogin struct {
	// Email also accepts a student ID (login by either works).
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role,omitempty" example:"student"`
}

type LoginResponse struct {
	Token string              `json:"token"`
	User  UserProfileResponse `json:"user"`
}

type UserProfileResponse struct {
	ID        uint   `json:"id"`
	Role      string `json:"role"`
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Program   string `json:"program,omitempty"`
	YearLevel int    `json:"year_level,omitempty"`
}

type AuthResponse struct {
	UserID int     `json:"user_id"`
	Email  string  `json:"email"`
	Role   string  `json:"role"`
	Iat    float64 `json:"iat"`
	Expiry float64 `json:"expiry"`
}
