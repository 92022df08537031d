package clients

import (
	"context"

	"autoglm-helper/app/domains"
)

// StorageAdapter defines the interface for durable command and history storage
type StorageAdapter interface {
	ListCommands(ctx context.Context) ([]domains.Command, error)
	GetCommand(ctx context.Context, id string) (*domains.Command, error)
	SaveCommand(ctx context.Context, cmd *domains.Command) error
	DeleteCommand(ctx context.Context, id string) error
	InsertHistory(ctx context.Context, entry *domains.CommandHistory) error
	ListHistory(ctx context.Context, commandID string) ([]domains.CommandHistory, error)
	Ping(ctx context.Context) error
	Close() error
}
