package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"evaluator/internal/domain"
)

func sampleSubmissions() []domain.Submission {
	marks := 72.5
	return []domain.Submission{
		{ID: 1, StudentName: "Ada", StudentID: "S1", ExperimentTitle: "Pendulum", Date: "2024-03-01", Marks: &marks, Feedback: "ok"},
		{ID: 2, StudentName: "Alan", StudentID: "S2", ExperimentTitle: "Optics", Date: "2024-03-02"},
	}
}

func TestWriteSubmissions(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeSubmissions(&buf, outputTable, sampleSubmissions()))

		out := buf.String()
		assert.Contains(t, out, "ID  STUDENT")
		assert.Contains(t, out, "72.5")
		assert.Contains(t, out, "Average Score: 72.50")
	})

	t.Run("empty table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeSubmissions(&buf, outputTable, nil))
		assert.Equal(t, "No submissions found.\n", buf.String())
	})

	t.Run("json empty is an array", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeSubmissions(&buf, outputJSON, nil))
		assert.Equal(t, "[]\n", buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeSubmissions(&buf, outputYAML, sampleSubmissions()))

		var decoded []map[string]interface{}
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "Ada", decoded[0]["studentName"])
		assert.Equal(t, 72.5, decoded[0]["marks"])
		assert.Nil(t, decoded[1]["marks"])
	})

	t.Run("unknown format", func(t *testing.T) {
		err := writeSubmissions(&bytes.Buffer{}, "xml", nil)
		assert.EqualError(t, err, `unknown output format "xml"`)
	})
}

func TestWriteSubmission(t *testing.T) {
	subs := sampleSubmissions()

	var buf bytes.Buffer
	require.NoError(t, writeSubmission(&buf, subs[1]))
	assert.Contains(t, buf.String(), "Marks:        not graded")
	assert.Contains(t, buf.String(), "Student:      Alan (S2)")
}
