package grades

type CreateGradeRequest struct {
	StudentID string  `json:"student_id" binding:"required,uuid"`
	ClassID   string  `json:"class_id" binding:"required,uuid"`
	Term      string  `json:"term" binding:"required,min=2,max=50"`
	Score     float64 `json:"score" binding:"min=0,max=100"`
	Comment   string  `json:"comment" binding:"omitempty,max=500"`
}

type UpdateGradeRequest struct {
	Score   *float64 `json:"score" binding:"omitempty,min=0,max=100"`
	Comment *string  `json:"comment" binding:"omitempty,max=500"`
}

type GradeListQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
	ClassID   string `form:"class_id" binding:"omitempty,uuid"`
	Term      string `form:"term"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=score term created_at"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}
