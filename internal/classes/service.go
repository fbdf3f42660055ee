package classes

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

var ErrDuplicateCode = errors.New("a class with this code already exists")

type Service interface {
	CreateClass(ctx context.Context, req CreateClassRequest) (*ClassResponse, error)
	GetClass(ctx context.Context, id uuid.UUID) (*ClassResponse, error)
	ListClasses(ctx context.Context, query ClassListQuery) (*PaginatedClasses, error)
	UpdateClass(ctx context.Context, id uuid.UUID, req UpdateClassRequest) (*ClassResponse, error)
	DeleteClass(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateClass(ctx context.Context, req CreateClassRequest) (*ClassResponse, error) {
	code := strings.TrimSpace(req.Code)

	existing, err := s.repo.GetByCode(ctx, code)
	if err != nil && !errors.Is(err, ErrClassNotFound) {
		return nil, fmt.Errorf("failed to check existing class: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateCode
	}

	capacity := req.Capacity
	if capacity <= 0 {
		capacity = 30
	}

	class := &Class{
		Code:     code,
		Name:     strings.TrimSpace(req.Name),
		Subject:  strings.TrimSpace(req.Subject),
		Term:     strings.TrimSpace(req.Term),
		Room:     strings.TrimSpace(req.Room),
		Capacity: capacity,
		Active:   true,
	}

	if req.TeacherID != nil {
		teacherID, err := uuid.Parse(*req.TeacherID)
		if err != nil {
			return nil, errors.New("invalid teacher id")
		}
		class.TeacherID = &teacherID
	}

	if err := s.repo.Create(ctx, class); err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}

	resp := class.ToResponse()
	return &resp, nil
}

func (s *service) GetClass(ctx context.Context, id uuid.UUID) (*ClassResponse, error) {
	class, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := class.ToResponse()
	return &resp, nil
}

func (s *service) ListClasses(ctx context.Context, query ClassListQuery) (*PaginatedClasses, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	result, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}

	responses := make([]ClassResponse, len(result))
	for i, class := range result {
		responses[i] = class.ToResponse()
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &PaginatedClasses{
		Classes:    responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) UpdateClass(ctx context.Context, id uuid.UUID, req UpdateClassRequest) (*ClassResponse, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errors.New("class name cannot be empty")
		}
		updates["name"] = name
	}
	if req.Subject != nil {
		updates["subject"] = strings.TrimSpace(*req.Subject)
	}
	if req.Term != nil {
		updates["term"] = strings.TrimSpace(*req.Term)
	}
	if req.TeacherID != nil {
		teacherID, err := uuid.Parse(*req.TeacherID)
		if err != nil {
			return nil, errors.New("invalid teacher id")
		}
		updates["teacher_id"] = teacherID
	}
	if req.Room != nil {
		updates["room"] = strings.TrimSpace(*req.Room)
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	class, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	resp := class.ToResponse()
	return &resp, nil
}

func (s *service) DeleteClass(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
