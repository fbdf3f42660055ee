package students

type CreateStudentRequest struct {
	EnrollmentNumber string `json:"enrollment_number" binding:"required,min=2,max=50"`
	FullName         string `json:"full_name" binding:"required,min=2,max=200"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone" binding:"omitempty,max=30"`
}

type UpdateStudentRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=2,max=200"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=30"`
	Active   *bool   `json:"active"`
}

type StudentListQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search"`
	Active    *bool  `form:"active"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=full_name enrollment_number created_at"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}
