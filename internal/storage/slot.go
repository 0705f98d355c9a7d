// Package storage holds the persisted slot: one named key carrying the whole
// serialized submission collection, read once at start-up and overwritten
// after every mutation.
package storage

import (
	"context"
	"errors"
)

const DefaultKey = "ee_submissions_v1"

// ErrSlotEmpty is returned by Read when nothing has been written yet.
var ErrSlotEmpty = errors.New("slot is empty")

type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}
