package quiz

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/abhisek/voltquest/internal/gameerr"
	"github.com/abhisek/voltquest/internal/shuffle"
)

func testBank(perCategory map[string]int, order []string) []Question {
	var bank []Question
	for _, cat := range order {
		for i := 0; i < perCategory[cat]; i++ {
			bank = append(bank, Question{
				ID:                 fmt.Sprintf("%s-%d", cat, i),
				Category:           cat,
				Prompt:             fmt.Sprintf("prompt %s %d", cat, i),
				Answers:            []string{"right", "wrong-a", "wrong-b", "wrong-c"},
				CorrectAnswerIndex: 0,
			})
		}
	}
	return bank
}

func testGenerator(seed uint64) *Generator {
	fixed := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	return NewGenerator(shuffle.NewSeeded(seed),
		WithClock(func() time.Time { return fixed }),
		WithIDFunc(func() string { return "session-1" }),
	)
}

func TestCreate_ExactSizeAndCategoryCoverage(t *testing.T) {
	order := []string{"a", "b", "c", "d"}
	bank := testBank(map[string]int{"a": 4, "b": 4, "c": 4, "d": 4}, order)
	gen := testGenerator(1)

	for k := 1; k <= len(bank); k++ {
		s, err := gen.Create(bank, k)
		if err != nil {
			t.Fatalf("Create(k=%d): %v", k, err)
		}
		if s.Len() != k {
			t.Errorf("k=%d: Len = %d", k, s.Len())
		}
		wantCats := min(k, len(order))
		if got := len(s.Categories()); got != wantCats {
			t.Errorf("k=%d: %d categories represented, want %d", k, got, wantCats)
		}
	}
}

func TestCreate_BalancedQuotas(t *testing.T) {
	order := []string{"a", "b", "c"}
	bank := testBank(map[string]int{"a": 5, "b": 5, "c": 5}, order)

	s, err := testGenerator(2).Create(bank, 8)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	counts := map[string]int{}
	for _, q := range s.Questions() {
		counts[q.Category]++
	}
	// 8 = 3*2 + 2: first two categories in bank order get one extra.
	want := map[string]int{"a": 3, "b": 3, "c": 2}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("category counts = %v, want %v", counts, want)
	}
}

func TestCreate_RedistributesShortCategories(t *testing.T) {
	order := []string{"a", "b", "c"}
	bank := testBank(map[string]int{"a": 5, "b": 1, "c": 1}, order)

	s, err := testGenerator(3).Create(bank, 6)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	counts := map[string]int{}
	for _, q := range s.Questions() {
		counts[q.Category]++
	}
	want := map[string]int{"a": 4, "b": 1, "c": 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("category counts = %v, want %v", counts, want)
	}
}

func TestCreate_AnswerIndexTracksCorrectText(t *testing.T) {
	bank := []Question{
		{ID: "q1", Category: "x", Prompt: "p1", Answers: []string{"A", "B", "C", "D"}, CorrectAnswerIndex: 2},
		{ID: "q2", Category: "x", Prompt: "p2", Answers: []string{"yes", "no"}, CorrectAnswerIndex: 1},
		{ID: "q3", Category: "y", Prompt: "p3", Answers: []string{"1", "2", "3"}, CorrectAnswerIndex: 0},
		{ID: "q4", Category: "y", Prompt: "p4", Answers: []string{"red", "green", "blue", "black"}, CorrectAnswerIndex: 3},
	}
	original := map[string]string{}
	for _, q := range bank {
		original[q.ID] = q.CorrectAnswer()
	}

	for seed := uint64(0); seed < 25; seed++ {
		s, err := testGenerator(seed).Create(bank, len(bank))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		for _, q := range s.Questions() {
			if got := q.Answers[q.CorrectAnswerIndex]; got != original[q.ID] {
				t.Errorf("seed %d question %s: answers[%d] = %q, want %q", seed, q.ID, q.CorrectAnswerIndex, got, original[q.ID])
			}
		}
	}
}

func TestCreate_DoesNotMutateBank(t *testing.T) {
	bank := testBank(map[string]int{"a": 3, "b": 3}, []string{"a", "b"})
	before := make([]Question, len(bank))
	for i, q := range bank {
		before[i] = q.clone()
	}

	if _, err := testGenerator(4).Create(bank, 6); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !reflect.DeepEqual(bank, before) {
		t.Error("Create mutated the bank")
	}
}

func TestCreate_DeterministicForSeed(t *testing.T) {
	bank := testBank(map[string]int{"a": 4, "b": 4, "c": 4}, []string{"a", "b", "c"})

	s1, err := testGenerator(77).Create(bank, 7)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := testGenerator(77).Create(bank, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s1.Questions(), s2.Questions()) {
		t.Error("same seed produced different sessions")
	}
	if s1.ID() != "session-1" {
		t.Errorf("ID = %q, want session-1", s1.ID())
	}
	if !s1.CreatedAt().Equal(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", s1.CreatedAt())
	}
}

func TestCreate_DefaultIDIsUnique(t *testing.T) {
	bank := testBank(map[string]int{"a": 2}, []string{"a"})
	gen := NewGenerator(shuffle.NewSeeded(1))

	s1, _ := gen.Create(bank, 1)
	s2, _ := gen.Create(bank, 1)
	if s1.ID() == "" || s1.ID() == s2.ID() {
		t.Errorf("expected distinct non-empty IDs, got %q and %q", s1.ID(), s2.ID())
	}
}

func TestCreate_Errors(t *testing.T) {
	good := testBank(map[string]int{"a": 2, "b": 2}, []string{"a", "b"})

	tests := []struct {
		name    string
		bank    []Question
		size    int
		wantErr error
	}{
		{"oversized", good, 5, gameerr.ErrInvalidArgument},
		{"zero size", good, 0, gameerr.ErrInvalidArgument},
		{"negative size", good, -1, gameerr.ErrInvalidArgument},
		{"empty bank", nil, 1, gameerr.ErrInvalidArgument},
		{"missing category", []Question{
			{ID: "q1", Category: "a", Prompt: "p", Answers: []string{"x", "y"}},
			{ID: "q2", Prompt: "p", Answers: []string{"x", "y"}},
		}, 1, gameerr.ErrInvalidArgument},
		{"single answer", []Question{
			{ID: "q1", Category: "a", Prompt: "p", Answers: []string{"x"}},
		}, 1, gameerr.ErrInvalidArgument},
		{"index out of range", []Question{
			{ID: "q1", Category: "a", Prompt: "p", Answers: []string{"x", "y"}, CorrectAnswerIndex: 2},
		}, 1, gameerr.ErrInvalidArgument},
		{"duplicate correct text", []Question{
			{ID: "q1", Category: "a", Prompt: "p", Answers: []string{"same", "same", "other"}, CorrectAnswerIndex: 0},
		}, 1, gameerr.ErrInvariantViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testGenerator(9).Create(tt.bank, tt.size)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSession_AccessorsReturnCopies(t *testing.T) {
	bank := testBank(map[string]int{"a": 2}, []string{"a"})
	s, err := testGenerator(5).Create(bank, 2)
	if err != nil {
		t.Fatal(err)
	}

	qs := s.Questions()
	qs[0].Answers[0] = "tampered"
	qs[0].Prompt = "tampered"
	q, ok := s.Question(1)
	if !ok {
		t.Fatal("Question(1) not found in a two-question session")
	}
	q.Answers[1] = "tampered"

	for _, q := range s.Questions() {
		if q.Prompt == "tampered" {
			t.Error("session prompt changed through a copy")
		}
		for _, a := range q.Answers {
			if a == "tampered" {
				t.Error("session answers changed through a copy")
			}
		}
	}
}

func TestSession_QuestionOutOfRange(t *testing.T) {
	bank := testBank(map[string]int{"a": 2}, []string{"a"})
	s, err := testGenerator(5).Create(bank, 2)
	if err != nil {
		t.Fatal(err)
	}
	for _, i := range []int{-1, 2, 100} {
		if q, ok := s.Question(i); ok {
			t.Errorf("Question(%d) = %+v, want not ok", i, q)
		}
	}
	if _, ok := s.Question(s.Len() - 1); !ok {
		t.Error("last question not found")
	}
}

func TestValidateBank(t *testing.T) {
	if err := ValidateBank(testBank(map[string]int{"a": 2, "b": 1}, []string{"a", "b"})); err != nil {
		t.Fatalf("valid bank: %v", err)
	}

	tests := []struct {
		name    string
		q       Question
		wantErr error
	}{
		{"missing category", Question{ID: "q", Answers: []string{"x", "y"}}, gameerr.ErrInvalidArgument},
		{"index out of range", Question{ID: "q", Category: "a", Answers: []string{"x", "y"}, CorrectAnswerIndex: 5}, gameerr.ErrInvalidArgument},
		{"duplicate correct text", Question{ID: "q", Category: "a", Answers: []string{"y", "x", "y"}, CorrectAnswerIndex: 2}, gameerr.ErrInvariantViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank := append(testBank(map[string]int{"a": 1}, []string{"a"}), tt.q)
			if err := ValidateBank(bank); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
