package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"brainflip/internal/quiz"
)

func promptLine(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptYesNo(reader *bufio.Reader, out io.Writer, prompt string) (bool, error) {
	for {
		fmt.Fprint(out, prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(out, "Please answer yes or no.")
		}
	}
}

func parseCount(args []string, index int, defaultValue int) (int, error) {
	if len(args) <= index {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(args[index])
	if err != nil || value <= 0 {
		return 0, errors.New("must be a positive integer")
	}
	return value, nil
}

func printQuestion(out io.Writer, number, total int, question quiz.Question) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Question %d/%d: %s\n\n", number, total, question.QuestionText)
	for _, answer := range question.Answers {
		fmt.Fprintf(out, "%s. %s\n", answer.ID, answer.Text)
	}
	fmt.Fprintln(out)
}

func answerTextByID(question quiz.Question, answerID string) string {
	answer, ok := question.AnswerByID(answerID)
	if !ok {
		return ""
	}
	return answer.Text
}

func printViolations(out io.Writer, violations quiz.ValidationErrors) {
	fmt.Fprintln(out, "The quiz is not valid yet:")
	for _, violation := range violations {
		fmt.Fprintf(out, "  %s: %s\n", violation.Field, violation.Message)
	}
}
