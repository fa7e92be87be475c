package entities

import (
	"errors"
)

// Common errors
var (
	ErrQuestionNotFound  = errors.New("question not found")
	ErrAnswerNotFound    = errors.New("answer not found")
	ErrStorage           = errors.New("question storage failure")
	ErrInvalidCollection = errors.New("stored data is not a list of questions")
)

// Question represents a question together with the answers given to it
type Question struct {
	ID      string   `json:"id" yaml:"id"`
	Summary string   `json:"summary" yaml:"summary"`
	Author  string   `json:"author" yaml:"author"`
	Answers []Answer `json:"answers" yaml:"answers"`
}

// Answer represents a single answer owned by a question
type Answer struct {
	ID      string `json:"id" yaml:"id"`
	Summary string `json:"summary" yaml:"summary"`
	Author  string `json:"author" yaml:"author"`
}

// QuestionInput holds the fields a caller may set when creating a question
type QuestionInput struct {
	Summary string
	Author  string
}

// AnswerInput holds the fields a caller may set when creating an answer
type AnswerInput struct {
	Summary string
	Author  string
}

// NewQuestion builds a question from whitelisted input. A new question never
// carries answers; they are added one by one afterwards.
func NewQuestion(id string, in QuestionInput) Question {
	return Question{
		ID:      id,
		Summary: in.Summary,
		Author:  in.Author,
		Answers: []Answer{},
	}
}

// NewAnswer builds an answer from whitelisted input
func NewAnswer(id string, in AnswerInput) Answer {
	return Answer{
		ID:      id,
		Summary: in.Summary,
		Author:  in.Author,
	}
}

// FindAnswer looks up an answer of the question by its ID
func (q *Question) FindAnswer(answerID string) (*Answer, bool) {
	for i := range q.Answers {
		if q.Answers[i].ID == answerID {
			return &q.Answers[i], true
		}
	}
	return nil, false
}

// AddAnswer appends an answer, keeping insertion order
func (q *Question) AddAnswer(answer Answer) {
	if q.Answers == nil {
		q.Answers = []Answer{}
	}
	q.Answers = append(q.Answers, answer)
}

// Normalize replaces a missing answers list with an empty one so that
// questions always serialize with "answers": [].
func (q *Question) Normalize() {
	if q.Answers == nil {
		q.Answers = []Answer{}
	}
}

// FindQuestion returns the index of the question with the given ID
func FindQuestion(questions []Question, id string) (int, bool) {
	for i := range questions {
		if questions[i].ID == id {
			return i, true
		}
	}
	return -1, false
}
