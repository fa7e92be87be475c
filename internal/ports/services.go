package ports

import (
	"context"

	"github.com/responder/core/internal/domain/entities"
)

// QuestionService interface for question and answer operations
type QuestionService interface {
	ListQuestions(ctx context.Context) ([]entities.Question, error)
	GetQuestion(ctx context.Context, id string) (*entities.Question, error)
	CreateQuestion(ctx context.Context, req CreateQuestionRequest) (*entities.Question, error)
	ListAnswers(ctx context.Context, questionID string) ([]entities.Answer, error)
	GetAnswer(ctx context.Context, questionID, answerID string) (*entities.Answer, error)
	CreateAnswer(ctx context.Context, questionID string, req CreateAnswerRequest) (*entities.Answer, error)
}

// Request DTOs

// CreateQuestionRequest is the body of POST /questions, as JSON or a
// url-encoded form. Answers is accepted for compatibility with existing
// clients but never stored; a null list counts as absent.
type CreateQuestionRequest struct {
	Summary string   `json:"summary" form:"summary" validate:"required"`
	Author  string   `json:"author" form:"author" validate:"required"`
	Answers []string `json:"answers,omitempty" form:"answers" validate:"omitempty,dive,required"`
}

// CreateAnswerRequest is the body of POST /questions/{id}/answers
type CreateAnswerRequest struct {
	Author  string `json:"author" form:"author" validate:"required"`
	Summary string `json:"summary" form:"summary" validate:"required"`
}
