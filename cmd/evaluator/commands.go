package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"evaluator/internal/ctxdata"
	"evaluator/internal/domain"
	"evaluator/internal/events"
	"evaluator/internal/logging"
	"evaluator/internal/service"
)

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "evaluator",
		Short:         "Experiment submissions, grading and registration checks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.init(); err != nil {
				return err
			}

			traceID, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("failed to generate trace id: %w", err)
			}
			ctx := ctxdata.WithTraceID(cmd.Context(), traceID.String())
			ctx = ctxdata.WithCommand(ctx, cmd.CommandPath())
			ctx = logging.ContextWithLogger(ctx, a.logger)
			cmd.SetContext(ctx)

			a.logger.Debug(ctx, "command started", zap.Strings("args", cmd.Flags().Args()))
			return nil
		},
	}

	root.AddCommand(
		newSubmitCommand(a),
		newListCommand(a),
		newShowCommand(a),
		newGradeCommand(a),
		newDeleteCommand(a),
		newAverageCommand(a),
		newRegisterCommand(a),
		newEventsCommand(a),
	)
	return root
}

func newSubmitCommand(a *app) *cobra.Command {
	var input domain.SubmissionInput

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record a new experiment submission",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.submissions(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			_, err = svc.Submit(cmd.Context(), input)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&input.StudentName, "name", "", "student name")
	flags.StringVar(&input.StudentID, "student-id", "", "student id")
	flags.StringVar(&input.ExperimentTitle, "title", "", "experiment title")
	flags.StringVar(&input.Date, "date", "", "experiment date (YYYY-MM-DD, defaults to today)")
	flags.StringVar(&input.Observations, "observations", "", "observations")
	flags.StringVar(&input.Data, "data", "", "recorded data")
	return cmd
}

func newListCommand(a *app) *cobra.Command {
	var (
		filter string
		output string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List submissions, optionally filtered by student name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.submissions(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			return writeSubmissions(cmd.OutOrStdout(), output, svc.List(cmd.Context(), filter))
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "case-insensitive student name filter")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	return cmd
}

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.submissions(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			submission, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeSubmission(cmd.OutOrStdout(), *submission)
		},
	}
}

func newGradeCommand(a *app) *cobra.Command {
	var (
		marks    string
		feedback string
	)

	cmd := &cobra.Command{
		Use:   "grade <id>",
		Short: "Set marks and feedback of a submission",
		Long:  "Set marks and feedback of a submission. Both fields are replaced; omitting --marks clears the grade.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.submissions(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			_, err = svc.Grade(cmd.Context(), id, marks, feedback)
			return err
		},
	}

	cmd.Flags().StringVar(&marks, "marks", "", "marks awarded")
	cmd.Flags().StringVar(&feedback, "feedback", "", "feedback for the student")
	return cmd
}

func newDeleteCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a submission after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.submissions(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			var confirmer service.Confirmer = newPromptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			if yes {
				confirmer = service.AlwaysConfirm
			}

			removed, err := svc.Delete(cmd.Context(), id, confirmer)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "No submission with id %d.\n", id)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newAverageCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "average",
		Short: "Print the average of all graded submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.submissions(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Average Score: %s\n", service.FormatAverage(svc.Average(cmd.Context())))
			return err
		},
	}
}

func newRegisterCommand(a *app) *cobra.Command {
	var form domain.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Validate a registration form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.registration().Validate(form); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Registration Successful!")
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&form.Name, "name", "", "full name")
	flags.StringVar(&form.Email, "email", "", "email address")
	flags.StringVar(&form.Password, "password", "", "password")
	flags.StringVar(&form.Mobile, "mobile", "", "10 digit mobile number")
	return cmd
}

func newEventsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Submission event stream",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "tail",
		Short: "Print submission events as they arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.cfg.EventsEnabled() {
				return errors.New("kafka brokers are not configured")
			}

			consumer := events.NewConsumer(a.cfg.Kafka.Brokers, a.cfg.Kafka.Topic, a.cfg.Kafka.GroupID, a.logger)
			defer func() {
				if err := consumer.Close(); err != nil {
					a.logger.Warn(cmd.Context(), "failed to close consumer", zap.Error(err))
				}
			}()

			out := cmd.OutOrStdout()
			return consumer.Run(cmd.Context(), func(ctx context.Context, event domain.Event) error {
				_, err := fmt.Fprintf(out, "%s\t%s\t%d\t%s\n",
					event.At.Format(time.RFC3339),
					event.Type,
					event.Submission.ID,
					event.Submission.StudentName,
				)
				return err
			})
		},
	})
	return cmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid submission id %q", raw)
	}
	return id, nil
}
