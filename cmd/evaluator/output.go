package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v2"

	"evaluator/internal/domain"
	"evaluator/internal/service"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func writeSubmissions(w io.Writer, format string, submissions []domain.Submission) error {
	if submissions == nil {
		submissions = []domain.Submission{}
	}

	switch format {
	case outputTable:
		return writeTable(w, submissions)
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(submissions)
	case outputYAML:
		data, err := yaml.Marshal(submissions)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeTable(w io.Writer, submissions []domain.Submission) error {
	if len(submissions) == 0 {
		_, err := fmt.Fprintln(w, "No submissions found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTUDENT\tSTUDENT ID\tEXPERIMENT\tDATE\tMARKS\tFEEDBACK")
	for _, s := range submissions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			strconv.FormatInt(s.ID, 10),
			s.StudentName,
			s.StudentID,
			s.ExperimentTitle,
			s.Date,
			domain.FormatMarks(s.Marks),
			s.Feedback,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nAverage Score: %s\n", service.FormatAverage(service.AverageMarks(submissions)))
	return err
}

func writeSubmission(w io.Writer, s domain.Submission) error {
	marks := "not graded"
	if s.IsGraded() {
		marks = domain.FormatMarks(s.Marks)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", s.ID)
	fmt.Fprintf(tw, "Student:\t%s (%s)\n", s.StudentName, s.StudentID)
	fmt.Fprintf(tw, "Experiment:\t%s\n", s.ExperimentTitle)
	fmt.Fprintf(tw, "Date:\t%s\n", s.Date)
	fmt.Fprintf(tw, "Observations:\t%s\n", s.Observations)
	fmt.Fprintf(tw, "Data:\t%s\n", s.Data)
	fmt.Fprintf(tw, "Marks:\t%s\n", marks)
	fmt.Fprintf(tw, "Feedback:\t%s\n", s.Feedback)
	return tw.Flush()
}
