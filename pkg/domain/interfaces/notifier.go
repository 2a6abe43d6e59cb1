package interfaces

import (
	"context"

	"github.com/m-mizutani/deploystat/pkg/domain/model"
)

type Notifier interface {
	NotifySummary(ctx context.Context, summary *model.Summary) error
}
