// Package dataset materializes the penguin dataset from its source.
// Providers run once at startup; the resulting Dataset is immutable
// for the lifetime of the process.
package dataset

import (
	"context"

	"github.com/gjrich/cintel-04-local/internal/domain"
)

// Provider loads the full dataset from some backing source.
type Provider interface {
	Load(ctx context.Context) (domain.Dataset, error)
}
