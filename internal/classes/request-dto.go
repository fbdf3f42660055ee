package classes

type CreateClassRequest struct {
	Code      string  `json:"code" binding:"required,min=2,max=50"`
	Name      string  `json:"name" binding:"required,min=2,max=200"`
	Subject   string  `json:"subject" binding:"required,min=2,max=100"`
	Term      string  `json:"term" binding:"required,min=2,max=50"`
	TeacherID *string `json:"teacher_id" binding:"omitempty,uuid"`
	Room      string  `json:"room" binding:"omitempty,max=50"`
	Capacity  int     `json:"capacity" binding:"omitempty,min=1,max=500"`
}

type UpdateClassRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=2,max=200"`
	Subject   *string `json:"subject" binding:"omitempty,min=2,max=100"`
	Term      *string `json:"term" binding:"omitempty,min=2,max=50"`
	TeacherID *string `json:"teacher_id" binding:"omitempty,uuid"`
	Room      *string `json:"room" binding:"omitempty,max=50"`
	Capacity  *int    `json:"capacity" binding:"omitempty,min=1,max=500"`
	Active    *bool   `json:"active"`
}

type ClassListQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search"`
	Term      string `form:"term"`
	TeacherID string `form:"teacher_id" binding:"omitempty,uuid"`
	Active    *bool  `form:"active"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=name code term created_at"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}
