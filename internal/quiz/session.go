package quiz

import "time"

// Session is one quiz attempt: a fixed, shuffled subset of the bank with
// shuffled answers. It is immutable; accessors hand out copies.
type Session struct {
	id        string
	questions []Question
	createdAt time.Time
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// CreatedAt returns when the session was generated.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Len returns the number of questions in the session.
func (s *Session) Len() int { return len(s.questions) }

// Question returns a copy of the i-th question. ok is false when i is
// outside [0, Len()).
func (s *Session) Question(i int) (q Question, ok bool) {
	if i < 0 || i >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[i].clone(), true
}

// Questions returns a copy of every question in session order.
func (s *Session) Questions() []Question {
	out := make([]Question, len(s.questions))
	for i, q := range s.questions {
		out[i] = q.clone()
	}
	return out
}

// Categories returns the distinct categories present, in first-seen order.
func (s *Session) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, q := range s.questions {
		if !seen[q.Category] {
			seen[q.Category] = true
			cats = append(cats, q.Category)
		}
	}
	return cats
}
