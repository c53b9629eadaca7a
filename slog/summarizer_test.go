package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/feeddistill/mock"
	fdslog "github.com/fwojciec/feeddistill/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSummarizer_Summarize(t *testing.T) {
	t.Parallel()

	t.Run("logs sizes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Summarizer{
			SummarizeFn: func(ctx context.Context, text, instruction string) (string, error) {
				return "short", nil
			},
		}

		s := fdslog.NewLoggingSummarizer(inner, logger)
		got, err := s.Summarize(context.Background(), "a long artifact", "")

		require.NoError(t, err)
		assert.Equal(t, "short", got)
		output := buf.String()
		assert.Contains(t, output, "msg=summarize")
		assert.Contains(t, output, "bytes=15")
		assert.Contains(t, output, "summary_bytes=5")
		assert.Contains(t, output, "instruction=false")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Summarizer{
			SummarizeFn: func(ctx context.Context, text, instruction string) (string, error) {
				return "", errors.New("quota exceeded")
			},
		}

		s := fdslog.NewLoggingSummarizer(inner, logger)
		_, err := s.Summarize(context.Background(), "text", "List topics")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "instruction=true")
		assert.Contains(t, output, `err="quota exceeded"`)
	})
}
