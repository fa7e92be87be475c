package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/responder/core/internal/domain/entities"
	"github.com/responder/core/internal/infrastructure/logger"
	"github.com/responder/core/internal/ports"
)

// QuestionHandler handles question and answer requests
type QuestionHandler struct {
	questionService ports.QuestionService
	logger          *logger.Logger
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionService ports.QuestionService, logger *logger.Logger) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		logger:          logger,
	}
}

// ListQuestions godoc
// @Summary List questions
// @Description List every question with its answers, in the order they were added
// @Tags questions
// @Produce json
// @Success 200 {array} entities.Question
// @Failure 500 {object} ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) ListQuestions(c echo.Context) error {
	questions, err := h.questionService.ListQuestions(c.Request().Context())
	if err != nil {
		return h.fail(c, "List questions failed", err)
	}

	return c.JSON(http.StatusOK, questions)
}

// GetQuestion godoc
// @Summary Get question by ID
// @Tags questions
// @Produce json
// @Param questionId path string true "Question ID"
// @Success 200 {object} entities.Question
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /questions/{questionId} [get]
func (h *QuestionHandler) GetQuestion(c echo.Context) error {
	questionID := c.Param("questionId")

	question, err := h.questionService.GetQuestion(c.Request().Context(), questionID)
	if err != nil {
		return h.fail(c, "Get question failed", err, "question_id", questionID)
	}

	return c.JSON(http.StatusOK, question)
}

// CreateQuestion godoc
// @Summary Add a question
// @Description Answers in the body are accepted but not stored
// @Tags questions
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body ports.CreateQuestionRequest true "Question data"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) CreateQuestion(c echo.Context) error {
	var req ports.CreateQuestionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	question, err := h.questionService.CreateQuestion(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, "Create question failed", err)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "Question added", ID: question.ID})
}

// ListAnswers godoc
// @Summary List answers of a question
// @Tags answers
// @Produce json
// @Param questionId path string true "Question ID"
// @Success 200 {array} entities.Answer
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /questions/{questionId}/answers [get]
func (h *QuestionHandler) ListAnswers(c echo.Context) error {
	questionID := c.Param("questionId")

	answers, err := h.questionService.ListAnswers(c.Request().Context(), questionID)
	if err != nil {
		return h.fail(c, "List answers failed", err, "question_id", questionID)
	}

	return c.JSON(http.StatusOK, answers)
}

// CreateAnswer godoc
// @Summary Add an answer to a question
// @Tags answers
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param questionId path string true "Question ID"
// @Param request body ports.CreateAnswerRequest true "Answer data"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /questions/{questionId}/answers [post]
func (h *QuestionHandler) CreateAnswer(c echo.Context) error {
	questionID := c.Param("questionId")

	var req ports.CreateAnswerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	answer, err := h.questionService.CreateAnswer(c.Request().Context(), questionID, req)
	if err != nil {
		return h.fail(c, "Create answer failed", err, "question_id", questionID)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "Answer added", ID: answer.ID})
}

// GetAnswer godoc
// @Summary Get answer by ID
// @Tags answers
// @Produce json
// @Param questionId path string true "Question ID"
// @Param answerId path string true "Answer ID"
// @Success 200 {object} entities.Answer
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /questions/{questionId}/answers/{answerId} [get]
func (h *QuestionHandler) GetAnswer(c echo.Context) error {
	questionID := c.Param("questionId")
	answerID := c.Param("answerId")

	answer, err := h.questionService.GetAnswer(c.Request().Context(), questionID, answerID)
	if err != nil {
		return h.fail(c, "Get answer failed", err, "question_id", questionID, "answer_id", answerID)
	}

	return c.JSON(http.StatusOK, answer)
}

// fail maps service errors to HTTP errors. Not-found conditions become 404;
// everything else is logged against the request ID and hidden behind a generic 500.
func (h *QuestionHandler) fail(c echo.Context, msg string, err error, fields ...interface{}) error {
	switch {
	case errors.Is(err, entities.ErrQuestionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Question not found")
	case errors.Is(err, entities.ErrAnswerNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Answer not found")
	}

	h.requestLogger(c).WithError(err).Errorw(msg, fields...)
	return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)).SetInternal(err)
}

func (h *QuestionHandler) requestLogger(c echo.Context) *logger.Logger {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return h.logger.WithRequestID(id)
	}
	return h.logger
}
