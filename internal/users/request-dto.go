package users

// query parameters for listing users
type UserListQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Search string `form:"search"`
	Active *bool  `form:"active"`
}

// role assignment request payload
type AssignRoleRequest struct {
	Role string `json:"role" validate:"required,min=2,max=50"`
}

// account activation toggle payload
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}
