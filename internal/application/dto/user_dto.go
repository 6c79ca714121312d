package dto

import "time"

// RegisterRequest entrada de POST /api/register (campos camelCase como los envía el frontend).
// customer requiere mobile y address; supplier requiere businessName, contactNo y businessAddress.
type RegisterRequest struct {
	Role             string `json:"role"`
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	TermsAccepted    Flag   `json:"termsAccepted"`
	Mobile           string `json:"mobile,omitempty"`
	Address          string `json:"address,omitempty"`
	BusinessName     string `json:"businessName,omitempty"`
	ContactNo        string `json:"contactNo,omitempty"`
	BusinessAddress  string `json:"businessAddress,omitempty"`
	BusinessDocument string `json:"businessDocument,omitempty"`
}

// RegisterResponse salida de registro exitoso.
type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

// LoginRequest entrada de POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUser proyección sanitizada de la cuenta (nunca incluye el hash).
// Username es alias de FullName para compatibilidad con el frontend.
type SessionUser struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	Username string `json:"username,omitempty"`
}

// LoginResponse salida de login exitoso con token JWT.
type LoginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    SessionUser `json:"user"`
	Token   string      `json:"token,omitempty"`
}

// UserResponse usuario en el listado de administración (sin password).
type UserResponse struct {
	ID               int64     `json:"id"`
	Role             string    `json:"role"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	Mobile           string    `json:"mobile"`
	Address          string    `json:"address"`
	BusinessName     string    `json:"business_name,omitempty"`
	BusinessDocument string    `json:"business_document,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// UserListRequest filtros de GET /api/admin/users.
type UserListRequest struct {
	Role   string `query:"role"`
	Search string `query:"search"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// UpdateUserStatusRequest cuerpo de PUT /api/admin/users/:id/status.
type UpdateUserStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

// UpdateUserRoleRequest cuerpo de PUT /api/admin/users/:id/role.
type UpdateUserRoleRequest struct {
	Role string `json:"role"`
}
