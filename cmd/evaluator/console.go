package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"evaluator/internal/domain"
)

type consoleNotifier struct {
	out io.Writer
}

func newConsoleNotifier(out io.Writer) *consoleNotifier {
	return &consoleNotifier{out: out}
}

func (n *consoleNotifier) Notify(_ context.Context, event domain.Event) error {
	var msg string
	switch event.Type {
	case domain.EventSubmissionCreated:
		msg = fmt.Sprintf("Submission successful! (id %d)", event.Submission.ID)
	case domain.EventSubmissionGraded:
		msg = "Saved marks & feedback."
	case domain.EventSubmissionDeleted:
		msg = fmt.Sprintf("Submission %d deleted.", event.Submission.ID)
	default:
		return fmt.Errorf("unknown event type %q", event.Type)
	}
	_, err := fmt.Fprintln(n.out, msg)
	return err
}

// promptConfirmer asks on out and reads a single line from in. Only "y" or
// "yes" approve; EOF declines.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptConfirmer(in io.Reader, out io.Writer) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewReader(in), out: out}
}

func (c *promptConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := fmt.Fprintf(c.out, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}

	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
