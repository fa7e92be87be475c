package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/responder/core/internal/domain/entities"
	"github.com/responder/core/internal/infrastructure/logger"
	"github.com/responder/core/internal/infrastructure/metrics"
	"github.com/responder/core/internal/infrastructure/storage"
	"github.com/responder/core/internal/ports"
)

// QuestionRepositoryImpl implements the QuestionRepository interface on top of
// a single JSON file. Every call reads the whole file; mutating calls write it
// back in full. The read-modify-write cycle runs under one lock so concurrent
// adds cannot overwrite each other.
type QuestionRepositoryImpl struct {
	file    *storage.File
	mu      sync.RWMutex
	newID   func() string
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// Option configures a QuestionRepositoryImpl
type Option func(*QuestionRepositoryImpl)

// WithIDGenerator replaces the UUID generator used for new records
func WithIDGenerator(fn func() string) Option {
	return func(r *QuestionRepositoryImpl) {
		r.newID = fn
	}
}

// WithMetrics records every operation in the given metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *QuestionRepositoryImpl) {
		r.metrics = m
	}
}

// WithLogger logs every operation with the given logger
func WithLogger(l *logger.Logger) Option {
	return func(r *QuestionRepositoryImpl) {
		r.logger = l
	}
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(file *storage.File, opts ...Option) ports.QuestionRepository {
	r := &QuestionRepositoryImpl{
		file:  file,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *QuestionRepositoryImpl) List(ctx context.Context) (questions []entities.Question, err error) {
	defer r.observe("list_questions", time.Now(), &err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.file.Read()
}

func (r *QuestionRepositoryImpl) GetByID(ctx context.Context, id string) (question *entities.Question, err error) {
	defer r.observe("get_question", time.Now(), &err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	questions, err := r.file.Read()
	if err != nil {
		return nil, err
	}

	idx, ok := entities.FindQuestion(questions, id)
	if !ok {
		return nil, entities.ErrQuestionNotFound
	}

	return &questions[idx], nil
}

func (r *QuestionRepositoryImpl) Create(ctx context.Context, input entities.QuestionInput) (questions []entities.Question, err error) {
	defer r.observe("add_question", time.Now(), &err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	questions, err = r.file.Read()
	if err != nil {
		return nil, err
	}

	id := r.uniqueID(func(candidate string) bool {
		_, taken := entities.FindQuestion(questions, candidate)
		return taken
	})
	questions = append(questions, entities.NewQuestion(id, input))

	if err := r.file.Write(questions); err != nil {
		return nil, err
	}

	return questions, nil
}

func (r *QuestionRepositoryImpl) ListAnswers(ctx context.Context, questionID string) (answers []entities.Answer, err error) {
	defer r.observe("list_answers", time.Now(), &err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	questions, err := r.file.Read()
	if err != nil {
		return nil, err
	}

	idx, ok := entities.FindQuestion(questions, questionID)
	if !ok {
		return nil, entities.ErrQuestionNotFound
	}

	return questions[idx].Answers, nil
}

func (r *QuestionRepositoryImpl) GetAnswer(ctx context.Context, questionID, answerID string) (answer *entities.Answer, err error) {
	defer r.observe("get_answer", time.Now(), &err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	questions, err := r.file.Read()
	if err != nil {
		return nil, err
	}

	idx, ok := entities.FindQuestion(questions, questionID)
	if !ok {
		return nil, entities.ErrQuestionNotFound
	}

	answer, ok = questions[idx].FindAnswer(answerID)
	if !ok {
		return nil, entities.ErrAnswerNotFound
	}

	return answer, nil
}

func (r *QuestionRepositoryImpl) AddAnswer(ctx context.Context, questionID string, input entities.AnswerInput) (answer *entities.Answer, err error) {
	defer r.observe("add_answer", time.Now(), &err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	questions, err := r.file.Read()
	if err != nil {
		return nil, err
	}

	idx, ok := entities.FindQuestion(questions, questionID)
	if !ok {
		return nil, entities.ErrQuestionNotFound
	}

	question := &questions[idx]
	id := r.uniqueID(func(candidate string) bool {
		_, taken := question.FindAnswer(candidate)
		return taken
	})
	created := entities.NewAnswer(id, input)
	question.AddAnswer(created)

	if err := r.file.Write(questions); err != nil {
		return nil, err
	}

	return &created, nil
}

// uniqueID draws IDs until one is not taken in the target collection
func (r *QuestionRepositoryImpl) uniqueID(taken func(string) bool) string {
	for {
		id := r.newID()
		if !taken(id) {
			return id
		}
	}
}

func (r *QuestionRepositoryImpl) observe(operation string, start time.Time, errp *error) {
	duration := time.Since(start)
	err := *errp

	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, entities.ErrQuestionNotFound), errors.Is(err, entities.ErrAnswerNotFound):
		result = "not_found"
		err = nil
	default:
		result = "error"
	}

	if r.metrics != nil {
		r.metrics.ObserveStoreOperation(operation, result, duration)
	}
	if r.logger != nil {
		r.logger.LogStoreOperation(operation, r.file.Path(), float64(duration.Nanoseconds())/1e6, err)
	}
}
