package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/voltquest/internal/quiz"
	"github.com/abhisek/voltquest/internal/shuffle"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a quiz session from the question bank",
	Long: `Generate a balanced quiz session and print it.

With --interactive the questions are asked one by one on the terminal and
the attempt is scored. Nothing is written to the database.`,
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().Int("size", 0, "Number of questions (default VOLTQUEST_SESSION_SIZE)")
	quizCmd.Flags().Uint64("seed", 0, "Shuffle seed (default VOLTQUEST_SEED, 0 = random)")
	quizCmd.Flags().Bool("answers", false, "Mark the correct answers")
	quizCmd.Flags().BoolP("interactive", "i", false, "Answer the questions and get a score")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	size, _ := cmd.Flags().GetInt("size")
	seed, _ := cmd.Flags().GetUint64("seed")
	showAnswers, _ := cmd.Flags().GetBool("answers")
	interactive, _ := cmd.Flags().GetBool("interactive")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if size == 0 {
		size = cfg.SessionSize
	}
	engine, err := cfg.Engine()
	if err != nil {
		return err
	}
	if seed != 0 {
		engine = shuffle.NewSeeded(seed)
	}
	bank, err := cfg.Bank()
	if err != nil {
		return err
	}

	session, err := quiz.NewGenerator(engine).Create(bank.Questions, size)
	if err != nil {
		return fmt.Errorf("generate session: %w", err)
	}

	out := cmd.OutOrStdout()
	if interactive {
		return askQuiz(out, cmd.InOrStdin(), session, cfg.PassPercent)
	}

	fmt.Fprintf(out, "Session %s: %d questions (%s)\n\n",
		session.ID(), session.Len(), strings.Join(session.Categories(), ", "))
	for i, q := range session.Questions() {
		printQuestion(out, i, q, showAnswers)
	}
	return nil
}

func printQuestion(out io.Writer, i int, q quiz.Question, showAnswers bool) {
	fmt.Fprintf(out, "%d. [%s] %s\n", i+1, q.Category, q.Prompt)
	for j, a := range q.Answers {
		mark := " "
		if showAnswers && j == q.CorrectAnswerIndex {
			mark = "*"
		}
		fmt.Fprintf(out, "  %s %d) %s\n", mark, j+1, a)
	}
	fmt.Fprintln(out)
}

// askQuiz reads one answer number per question. Blank or invalid input
// counts as unanswered.
func askQuiz(out io.Writer, in io.Reader, session *quiz.Session, passPercent float64) error {
	scanner := bufio.NewScanner(in)
	responses := make([]int, session.Len())

	for i, q := range session.Questions() {
		printQuestion(out, i, q, false)
		fmt.Fprint(out, "Your answer: ")

		responses[i] = quiz.Unanswered
		if !scanner.Scan() {
			fmt.Fprintln(out)
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err == nil && n >= 1 && n <= len(q.Answers) {
			responses[i] = n - 1
		}
		if responses[i] == q.CorrectAnswerIndex {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintf(out, "The answer was: %s\n", q.CorrectAnswer())
		}
		if q.Explanation != "" {
			fmt.Fprintln(out, q.Explanation)
		}
		fmt.Fprintln(out)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read answers: %w", err)
	}

	res, err := quiz.Score(session, responses, passPercent)
	if err != nil {
		return err
	}
	verdict := "not passed"
	if res.Passed {
		verdict = "passed"
	}
	fmt.Fprintf(out, "Score: %d/%d (%.0f%%), %s\n", res.Correct, res.Total, res.Percent, verdict)
	return nil
}
