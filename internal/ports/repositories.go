package ports

import (
	"context"

	"github.com/responder/core/internal/domain/entities"
)

// QuestionRepository defines the interface for question and answer data operations.
// Lookups by ID report absence with entities.ErrQuestionNotFound or
// entities.ErrAnswerNotFound; storage problems are wrapped in entities.ErrStorage.
type QuestionRepository interface {
	List(ctx context.Context) ([]entities.Question, error)
	GetByID(ctx context.Context, id string) (*entities.Question, error)
	// Create appends a new question and returns the whole updated collection.
	// The created question is the last element.
	Create(ctx context.Context, input entities.QuestionInput) ([]entities.Question, error)
	ListAnswers(ctx context.Context, questionID string) ([]entities.Answer, error)
	GetAnswer(ctx context.Context, questionID, answerID string) (*entities.Answer, error)
	AddAnswer(ctx context.Context, questionID string, input entities.AnswerInput) (*entities.Answer, error)
}
