package storage

import (
	"context"
	"time"

	"github.com/dodomains/dodomains/internal/session"
)

type StorageI interface {
	GetOrCreate(context.Context, string) (*session.Session, error)
	Find(context.Context, string) (*session.Session, error)
	Exists(context.Context, string) bool
	Delete(context.Context, string) error
	Sweep(context.Context, time.Time) (int, error)
	Count() int
}

var _ StorageI = (*MemoryStorage)(nil)
