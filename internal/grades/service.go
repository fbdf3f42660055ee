package grades

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

type Service interface {
	CreateGrade(ctx context.Context, graderID uuid.UUID, req CreateGradeRequest) (*GradeResponse, error)
	GetGrade(ctx context.Context, id uuid.UUID) (*GradeResponse, error)
	ListGrades(ctx context.Context, query GradeListQuery) (*PaginatedGrades, error)
	GetStudentTermSummary(ctx context.Context, studentID uuid.UUID, term string) (*StudentTermSummary, error)
	UpdateGrade(ctx context.Context, graderID uuid.UUID, id uuid.UUID, req UpdateGradeRequest) (*GradeResponse, error)
	DeleteGrade(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateGrade(ctx context.Context, graderID uuid.UUID, req CreateGradeRequest) (*GradeResponse, error) {
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("invalid student id: %w", err)
	}
	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		return nil, fmt.Errorf("invalid class id: %w", err)
	}

	grade := &Grade{
		StudentID: studentID,
		ClassID:   classID,
		Term:      strings.TrimSpace(req.Term),
		Score:     req.Score,
		Letter:    LetterFor(req.Score),
		Comment:   strings.TrimSpace(req.Comment),
		GradedBy:  graderID,
	}

	if err := s.repo.Create(ctx, grade); err != nil {
		return nil, err
	}

	resp := grade.ToResponse()
	return &resp, nil
}

func (s *service) GetGrade(ctx context.Context, id uuid.UUID) (*GradeResponse, error) {
	grade, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := grade.ToResponse()
	return &resp, nil
}

func (s *service) ListGrades(ctx context.Context, query GradeListQuery) (*PaginatedGrades, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	result, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list grades: %w", err)
	}

	responses := make([]GradeResponse, len(result))
	for i, grade := range result {
		responses[i] = grade.ToResponse()
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &PaginatedGrades{
		Grades:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) GetStudentTermSummary(ctx context.Context, studentID uuid.UUID, term string) (*StudentTermSummary, error) {
	result, err := s.repo.GetByStudentAndTerm(ctx, studentID, term)
	if err != nil {
		return nil, fmt.Errorf("failed to get student grades: %w", err)
	}

	responses := make([]GradeResponse, len(result))
	var total float64
	for i, grade := range result {
		responses[i] = grade.ToResponse()
		total += grade.Score
	}

	var average float64
	if len(result) > 0 {
		average = math.Round(total/float64(len(result))*100) / 100
	}

	return &StudentTermSummary{
		StudentID:    studentID.String(),
		Term:         term,
		Grades:       responses,
		AverageScore: average,
	}, nil
}

func (s *service) UpdateGrade(ctx context.Context, graderID uuid.UUID, id uuid.UUID, req UpdateGradeRequest) (*GradeResponse, error) {
	updates := make(map[string]interface{})

	if req.Score != nil {
		updates["score"] = *req.Score
		updates["letter"] = LetterFor(*req.Score)
	}
	if req.Comment != nil {
		updates["comment"] = strings.TrimSpace(*req.Comment)
	}
	updates["graded_by"] = graderID

	grade, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	resp := grade.ToResponse()
	return &resp, nil
}

func (s *service) DeleteGrade(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
