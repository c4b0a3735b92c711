package structs

type RegisterRequest struct {
	FullName        string `json:"fullName" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Role            string `json:"role" binding:"required,oneof=student teacher admin"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`

	// Student-specific
	StudentID string `json:"studentId"`
	Course    string `json:"course"`
	Interest  string `json:"interest"`

	// Teacher-specific
	Dept        string `json:"dept"`
	Designation string `json:"designation"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=student teacher admin"`
}

type UpdateProfileRequest struct {
	FullName    string `json:"fullName"`
	Course      string `json:"course"`
	Interest    string `json:"interest"`
	Dept        string `json:"dept"`
	Designation string `json:"designation"`
	Password    string `json:"password"`
}
