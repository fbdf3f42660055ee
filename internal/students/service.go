package students

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrDuplicateEnrollment = errors.New("a student with this enrollment number already exists")

type Service interface {
	CreateStudent(ctx context.Context, req CreateStudentRequest) (*StudentResponse, error)
	GetStudent(ctx context.Context, id uuid.UUID) (*StudentResponse, error)
	ListStudents(ctx context.Context, query StudentListQuery) (*PaginatedStudents, error)
	UpdateStudent(ctx context.Context, id uuid.UUID, req UpdateStudentRequest) (*StudentResponse, error)
	DeleteStudent(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateStudent(ctx context.Context, req CreateStudentRequest) (*StudentResponse, error) {
	number := strings.TrimSpace(req.EnrollmentNumber)

	existing, err := s.repo.GetByEnrollmentNumber(ctx, number)
	if err != nil && !errors.Is(err, ErrStudentNotFound) {
		return nil, fmt.Errorf("failed to check existing student: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEnrollment
	}

	student := &Student{
		EnrollmentNumber: number,
		FullName:         strings.TrimSpace(req.FullName),
		Email:            strings.TrimSpace(req.Email),
		Phone:            strings.TrimSpace(req.Phone),
		EnrolledAt:       time.Now(),
		Active:           true,
	}

	if err := s.repo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	resp := student.ToResponse()
	return &resp, nil
}

func (s *service) GetStudent(ctx context.Context, id uuid.UUID) (*StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := student.ToResponse()
	return &resp, nil
}

func (s *service) ListStudents(ctx context.Context, query StudentListQuery) (*PaginatedStudents, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	result, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	responses := make([]StudentResponse, len(result))
	for i, student := range result {
		responses[i] = student.ToResponse()
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &PaginatedStudents{
		Students:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) UpdateStudent(ctx context.Context, id uuid.UUID, req UpdateStudentRequest) (*StudentResponse, error) {
	updates := make(map[string]interface{})

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, errors.New("student name cannot be empty")
		}
		updates["full_name"] = name
	}
	if req.Email != nil {
		updates["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	student, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	resp := student.ToResponse()
	return &resp, nil
}

func (s *service) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
