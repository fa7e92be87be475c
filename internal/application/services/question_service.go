package services

import (
	"context"
	"fmt"

	"github.com/responder/core/internal/domain/entities"
	"github.com/responder/core/internal/infrastructure/logger"
	"github.com/responder/core/internal/ports"
)

// QuestionService handles question and answer operations
type QuestionService struct {
	questionRepo ports.QuestionRepository
	logger       *logger.Logger
}

// NewQuestionService creates a new question service
func NewQuestionService(questionRepo ports.QuestionRepository, logger *logger.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		logger:       logger,
	}
}

// ListQuestions returns every question in storage order
func (s *QuestionService) ListQuestions(ctx context.Context) ([]entities.Question, error) {
	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	return questions, nil
}

// GetQuestion retrieves a question by ID
func (s *QuestionService) GetQuestion(ctx context.Context, id string) (*entities.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get question %s: %w", id, err)
	}

	return question, nil
}

// CreateQuestion stores a new question. Answers sent along with the request
// are dropped; answers are only ever added through CreateAnswer.
func (s *QuestionService) CreateQuestion(ctx context.Context, req ports.CreateQuestionRequest) (*entities.Question, error) {
	questions, err := s.questionRepo.Create(ctx, entities.QuestionInput{
		Summary: req.Summary,
		Author:  req.Author,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("failed to create question: %w", entities.ErrStorage)
	}

	created := questions[len(questions)-1]

	s.logger.Infow("Question created successfully",
		"question_id", created.ID,
		"author", created.Author,
		"ignored_answers", len(req.Answers),
	)

	return &created, nil
}

// ListAnswers returns the answers of a question in insertion order
func (s *QuestionService) ListAnswers(ctx context.Context, questionID string) ([]entities.Answer, error) {
	answers, err := s.questionRepo.ListAnswers(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers of question %s: %w", questionID, err)
	}

	return answers, nil
}

// GetAnswer retrieves one answer of a question
func (s *QuestionService) GetAnswer(ctx context.Context, questionID, answerID string) (*entities.Answer, error) {
	answer, err := s.questionRepo.GetAnswer(ctx, questionID, answerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get answer %s of question %s: %w", answerID, questionID, err)
	}

	return answer, nil
}

// CreateAnswer adds an answer to an existing question
func (s *QuestionService) CreateAnswer(ctx context.Context, questionID string, req ports.CreateAnswerRequest) (*entities.Answer, error) {
	answer, err := s.questionRepo.AddAnswer(ctx, questionID, entities.AnswerInput{
		Summary: req.Summary,
		Author:  req.Author,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add answer to question %s: %w", questionID, err)
	}

	s.logger.Infow("Answer added successfully",
		"question_id", questionID,
		"answer_id", answer.ID,
		"author", answer.Author,
	)

	return answer, nil
}
