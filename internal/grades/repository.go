package grades

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, grade *Grade) error
	GetByID(ctx context.Context, id uuid.UUID) (*Grade, error)
	GetAll(ctx context.Context, query GradeListQuery) ([]Grade, int64, error)
	GetByStudentAndTerm(ctx context.Context, studentID uuid.UUID, term string) ([]Grade, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Grade, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, grade *Grade) error {
	err := r.db.WithContext(ctx).Create(grade).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateGrade
	}
	return err
}

// isUniqueViolation matches the Postgres duplicate-key error surfaced
// through the driver.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "23505")
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Grade, error) {
	var grade Grade
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&grade).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGradeNotFound
		}
		return nil, err
	}
	return &grade, nil
}

func (r *repository) GetAll(ctx context.Context, query GradeListQuery) ([]Grade, int64, error) {
	var result []Grade
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Grade{})

	if query.StudentID != "" {
		db = db.Where("student_id = ?", query.StudentID)
	}
	if query.ClassID != "" {
		db = db.Where("class_id = ?", query.ClassID)
	}
	if query.Term != "" {
		db = db.Where("term = ?", query.Term)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "desc"
	if query.SortBy != "" {
		sortBy = query.SortBy
	}
	if query.SortOrder != "" {
		sortOrder = query.SortOrder
	}

	offset := (query.Page - 1) * query.Limit
	err := db.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Offset(offset).
		Limit(query.Limit).
		Find(&result).Error

	return result, totalCount, err
}

func (r *repository) GetByStudentAndTerm(ctx context.Context, studentID uuid.UUID, term string) ([]Grade, error) {
	var result []Grade
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND term = ?", studentID, term).
		Order("created_at ASC").
		Find(&result).Error
	return result, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Grade, error) {
	var grade Grade
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&grade).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGradeNotFound
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&grade).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&grade).Error; err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Grade{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGradeNotFound
	}
	return nil
}
