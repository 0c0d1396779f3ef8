package quiz

import "github.com/abhisek/voltquest/internal/gameerr"

// Unanswered marks a question the player did not answer, e.g. because the
// per-question timer ran out.
const Unanswered = -1

// DefaultPassPercent is the score needed to pass a quiz.
const DefaultPassPercent = 70

// ItemResult is the outcome of a single question.
type ItemResult struct {
	QuestionID  string
	Chosen      int
	Correct     bool
	Explanation string
}

// Result summarises a scored session.
type Result struct {
	SessionID string
	Correct   int
	Total     int
	Percent   float64
	Passed    bool
	Items     []ItemResult
}

// Score grades responses against the session. responses[i] is the chosen
// answer index for question i, or Unanswered. passPercent is inclusive.
func Score(s *Session, responses []int, passPercent float64) (*Result, error) {
	const op = "quiz.Score"

	if len(responses) != s.Len() {
		return nil, gameerr.InvalidArgument(op, "got %d responses for %d questions", len(responses), s.Len())
	}
	if passPercent < 0 || passPercent > 100 {
		return nil, gameerr.InvalidArgument(op, "pass percent %v outside [0,100]", passPercent)
	}

	res := &Result{
		SessionID: s.ID(),
		Total:     s.Len(),
		Items:     make([]ItemResult, 0, s.Len()),
	}
	for i, q := range s.questions {
		chosen := responses[i]
		if chosen != Unanswered && (chosen < 0 || chosen >= len(q.Answers)) {
			return nil, gameerr.InvalidArgument(op, "response %d for question %q out of range", chosen, q.ID)
		}
		ok := chosen == q.CorrectAnswerIndex
		if ok {
			res.Correct++
		}
		res.Items = append(res.Items, ItemResult{
			QuestionID:  q.ID,
			Chosen:      chosen,
			Correct:     ok,
			Explanation: q.Explanation,
		})
	}

	if res.Total > 0 {
		res.Percent = float64(res.Correct) * 100 / float64(res.Total)
	}
	res.Passed = res.Percent >= passPercent
	return res, nil
}
