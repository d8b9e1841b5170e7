package handler

type loginRequest struct {
	LoginName string `json:"loginName" validate:"required"`
	Password  string `json:"password"  validate:"required"`
}

type registerRequest struct {
	LoginName string `json:"loginName" validate:"required"`
	Password  string `json:"password"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Phone     string `json:"phone"`
	FullName  string `json:"fullName"`
	Role      string `json:"role"`
}

type loginResponse struct {
	Token    string `json:"token"`
	RoleName string `json:"roleName"`
}
