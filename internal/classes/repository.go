package classes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, class *Class) error
	GetByID(ctx context.Context, id uuid.UUID) (*Class, error)
	GetByCode(ctx context.Context, code string) (*Class, error)
	GetAll(ctx context.Context, query ClassListQuery) ([]Class, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Class, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, class *Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Class, error) {
	var class Class
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&class).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return &class, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Class, error) {
	var class Class
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&class).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return &class, nil
}

func (r *repository) GetAll(ctx context.Context, query ClassListQuery) ([]Class, int64, error) {
	var result []Class
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Class{})

	if query.Search != "" {
		term := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR code ILIKE ? OR subject ILIKE ?", term, term, term)
	}
	if query.Term != "" {
		db = db.Where("term = ?", query.Term)
	}
	if query.TeacherID != "" {
		db = db.Where("teacher_id = ?", query.TeacherID)
	}
	if query.Active != nil {
		db = db.Where("active = ?", *query.Active)
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

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Class, error) {
	var class Class
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&class).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&class).Error; err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Class{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClassNotFound
	}
	return nil
}
