package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Karthik0081/smart-exam-ai-genius/models"
)

// ErrExamNotFound is returned when looking up an unknown exam ID.
var ErrExamNotFound = errors.New("exam not found")

// ExamStore receives generated questions as part of exam creation. The
// generation core never writes persisted exam data itself; this interface
// is the hand-off boundary.
type ExamStore interface {
	CreateExam(ctx context.Context, title, description string, durationMin int, questions []models.Question) (*models.Exam, error)
	GetExam(ctx context.Context, id string) (*models.Exam, error)
	ListExams(ctx context.Context) ([]*models.Exam, error)
}

// MemoryExamStore keeps exams in memory for the session, single-writer
// multiple-reader.
type MemoryExamStore struct {
	mu    sync.RWMutex
	exams map[string]*models.Exam
}

func NewMemoryExamStore() *MemoryExamStore {
	return &MemoryExamStore{exams: make(map[string]*models.Exam)}
}

func (s *MemoryExamStore) CreateExam(ctx context.Context, title, description string, durationMin int, questions []models.Question) (*models.Exam, error) {
	exam := &models.Exam{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		DurationMin: durationMin,
		Questions:   questions,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	s.exams[exam.ID] = exam
	s.mu.Unlock()

	return exam, nil
}

func (s *MemoryExamStore) GetExam(ctx context.Context, id string) (*models.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exam, ok := s.exams[id]
	if !ok {
		return nil, ErrExamNotFound
	}
	return exam, nil
}

func (s *MemoryExamStore) ListExams(ctx context.Context) ([]*models.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exams := make([]*models.Exam, 0, len(s.exams))
	for _, exam := range s.exams {
		exams = append(exams, exam)
	}
	sort.Slice(exams, func(a, b int) bool {
		return exams[a].CreatedAt.Before(exams[b].CreatedAt)
	})
	return exams, nil
}
