package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySlot(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyUntilWritten", func(t *testing.T) {
		s := NewMemorySlot()
		_, err := s.Read(ctx)
		assert.ErrorIs(t, err, ErrSlotEmpty)

		require.NoError(t, s.Write(ctx, []byte(`[]`)))
		data, err := s.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(data))
	})

	t.Run("CopiesPayload", func(t *testing.T) {
		payload := []byte(`[1]`)
		s := NewMemorySlotWith(payload)
		payload[1] = '2'

		data, err := s.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, `[1]`, string(data))

		data[1] = '3'
		again, err := s.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, `[1]`, string(again))
	})

	t.Run("CancelledContext", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		s := NewMemorySlot()
		assert.ErrorIs(t, s.Write(cctx, []byte(`[]`)), context.Canceled)
		_, err := s.Read(cctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
