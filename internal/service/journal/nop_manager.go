package journal

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

// NopManager выполняет функцию без транзакции.
// Используется с журналом в памяти
type NopManager struct{}

var _ trm.Manager = NopManager{}

func (NopManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (NopManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
