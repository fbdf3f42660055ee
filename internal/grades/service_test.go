package grades

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	byID      map[uuid.UUID]*Grade
	duplicate bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: make(map[uuid.UUID]*Grade)}
}

func (f *fakeRepository) Create(ctx context.Context, grade *Grade) error {
	if f.duplicate {
		return ErrDuplicateGrade
	}
	grade.ID = uuid.New()
	grade.CreatedAt = time.Now()
	f.byID[grade.ID] = grade
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Grade, error) {
	grade, ok := f.byID[id]
	if !ok {
		return nil, ErrGradeNotFound
	}
	return grade, nil
}

func (f *fakeRepository) GetAll(ctx context.Context, query GradeListQuery) ([]Grade, int64, error) {
	result := make([]Grade, 0, len(f.byID))
	for _, grade := range f.byID {
		result = append(result, *grade)
	}
	return result, int64(len(result)), nil
}

func (f *fakeRepository) GetByStudentAndTerm(ctx context.Context, studentID uuid.UUID, term string) ([]Grade, error) {
	var result []Grade
	for _, grade := range f.byID {
		if grade.StudentID == studentID && grade.Term == term {
			result = append(result, *grade)
		}
	}
	return result, nil
}

func (f *fakeRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Grade, error) {
	grade, ok := f.byID[id]
	if !ok {
		return nil, ErrGradeNotFound
	}
	if score, ok := updates["score"].(float64); ok {
		grade.Score = score
	}
	if letter, ok := updates["letter"].(string); ok {
		grade.Letter = letter
	}
	if comment, ok := updates["comment"].(string); ok {
		grade.Comment = comment
	}
	if gradedBy, ok := updates["graded_by"].(uuid.UUID); ok {
		grade.GradedBy = gradedBy
	}
	return grade, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return ErrGradeNotFound
	}
	delete(f.byID, id)
	return nil
}

func TestLetterFor(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A"},
		{90, "A"},
		{89.9, "B"},
		{80, "B"},
		{79, "C"},
		{70, "C"},
		{65, "D"},
		{60, "D"},
		{59.9, "F"},
		{0, "F"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LetterFor(tt.score), "score %v", tt.score)
	}
}

func TestCreateGradeDerivesLetterAndGrader(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	graderID := uuid.New()

	resp, err := svc.CreateGrade(context.Background(), graderID, CreateGradeRequest{
		StudentID: uuid.New().String(),
		ClassID:   uuid.New().String(),
		Term:      "  2026-1  ",
		Score:     87.5,
		Comment:   "solid work",
	})
	require.NoError(t, err)

	assert.Equal(t, "B", resp.Letter)
	assert.Equal(t, "2026-1", resp.Term)
	assert.Equal(t, graderID.String(), resp.GradedBy)
}

func TestCreateGradeRejectsBadIDs(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.CreateGrade(context.Background(), uuid.New(), CreateGradeRequest{
		StudentID: "not-a-uuid",
		ClassID:   uuid.New().String(),
		Term:      "2026-1",
		Score:     80,
	})
	assert.Error(t, err)
}

func TestCreateGradeDuplicate(t *testing.T) {
	repo := newFakeRepository()
	repo.duplicate = true
	svc := NewService(repo)

	_, err := svc.CreateGrade(context.Background(), uuid.New(), CreateGradeRequest{
		StudentID: uuid.New().String(),
		ClassID:   uuid.New().String(),
		Term:      "2026-1",
		Score:     80,
	})
	assert.ErrorIs(t, err, ErrDuplicateGrade)
}

func TestUpdateGradeRecomputesLetter(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	firstGrader := uuid.New()

	created, err := svc.CreateGrade(context.Background(), firstGrader, CreateGradeRequest{
		StudentID: uuid.New().String(),
		ClassID:   uuid.New().String(),
		Term:      "2026-1",
		Score:     55,
	})
	require.NoError(t, err)
	require.Equal(t, "F", created.Letter)

	secondGrader := uuid.New()
	newScore := 92.0
	updated, err := svc.UpdateGrade(context.Background(), secondGrader,
		uuid.MustParse(created.ID), UpdateGradeRequest{Score: &newScore})
	require.NoError(t, err)

	assert.Equal(t, "A", updated.Letter)
	assert.Equal(t, secondGrader.String(), updated.GradedBy)
}

func TestStudentTermSummaryAverage(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	studentID := uuid.New()
	grader := uuid.New()

	for _, score := range []float64{90, 81, 70.5} {
		_, err := svc.CreateGrade(context.Background(), grader, CreateGradeRequest{
			StudentID: studentID.String(),
			ClassID:   uuid.New().String(),
			Term:      "2026-1",
			Score:     score,
		})
		require.NoError(t, err)
	}

	summary, err := svc.GetStudentTermSummary(context.Background(), studentID, "2026-1")
	require.NoError(t, err)

	assert.Len(t, summary.Grades, 3)
	assert.Equal(t, 80.5, summary.AverageScore)
	assert.Equal(t, studentID.String(), summary.StudentID)
}

func TestStudentTermSummaryEmpty(t *testing.T) {
	svc := NewService(newFakeRepository())

	summary, err := svc.GetStudentTermSummary(context.Background(), uuid.New(), "2026-2")
	require.NoError(t, err)

	assert.Empty(t, summary.Grades)
	assert.Zero(t, summary.AverageScore)
}

func TestDeleteGrade(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	created, err := svc.CreateGrade(context.Background(), uuid.New(), CreateGradeRequest{
		StudentID: uuid.New().String(),
		ClassID:   uuid.New().String(),
		Term:      "2026-1",
		Score:     75,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGrade(context.Background(), uuid.MustParse(created.ID)))
	assert.ErrorIs(t, svc.DeleteGrade(context.Background(), uuid.MustParse(created.ID)), ErrGradeNotFound)
}
