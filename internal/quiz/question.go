package quiz

import (
	"slices"

	"github.com/abhisek/voltquest/internal/gameerr"
)

// Question is a single multiple-choice quiz question.
type Question struct {
	ID                 string   `json:"id"`
	Category           string   `json:"category"`
	Prompt             string   `json:"prompt"`
	Answers            []string `json:"answers"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
	Explanation        string   `json:"explanation,omitempty"`
}

// Validate checks the question's own invariants: at least two answers and a
// correct index that points into them.
func (q Question) Validate() error {
	if len(q.Answers) < 2 {
		return gameerr.InvalidArgument("quiz.Question", "question %q has %d answers, need at least 2", q.ID, len(q.Answers))
	}
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Answers) {
		return gameerr.InvalidArgument("quiz.Question", "question %q correct index %d out of range [0,%d)", q.ID, q.CorrectAnswerIndex, len(q.Answers))
	}
	return nil
}

// CorrectAnswer returns the text of the correct answer.
func (q Question) CorrectAnswer() string {
	return q.Answers[q.CorrectAnswerIndex]
}

// clone returns a deep copy so sessions never alias the bank's slices.
func (q Question) clone() Question {
	q.Answers = slices.Clone(q.Answers)
	return q
}
