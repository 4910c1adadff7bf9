package repository

import (
	"context"

	"github.com/oksasatya/go-user-registration/internal/domain/entity"
)

// FlashRepository stores one-time registration flashes keyed by session id.
// Pop returns the stored flash and removes it; ok is false when none exists.
type FlashRepository interface {
	Put(ctx context.Context, sessionID string, f entity.RegisterFlash) error
	Pop(ctx context.Context, sessionID string) (f entity.RegisterFlash, ok bool, err error)
}
