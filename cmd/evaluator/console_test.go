package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evaluator/internal/domain"
)

func TestConsoleNotifier(t *testing.T) {
	tests := []struct {
		name      string
		eventType domain.EventType
		want      string
		wantErr   bool
	}{
		{name: "created", eventType: domain.EventSubmissionCreated, want: "Submission successful! (id 7)\n"},
		{name: "graded", eventType: domain.EventSubmissionGraded, want: "Saved marks & feedback.\n"},
		{name: "deleted", eventType: domain.EventSubmissionDeleted, want: "Submission 7 deleted.\n"},
		{name: "unknown", eventType: domain.EventType("submission.archived"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := newConsoleNotifier(&buf).Notify(context.Background(), domain.Event{
				Type:       tt.eventType,
				Submission: domain.Submission{ID: 7},
			})
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, buf.String())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: " yes ", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
		{input: "maybe\n", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			ok, err := newPromptConfirmer(strings.NewReader(tt.input), &out).Confirm(context.Background(), "Sure?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, "Sure? [y/N]: ", out.String())
		})
	}

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ok, err := newPromptConfirmer(strings.NewReader("y\n"), &bytes.Buffer{}).Confirm(ctx, "Sure?")
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, ok)
	})
}
