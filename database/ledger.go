package database

import (
	"context"
	"fmt"

	"roombooking/config"
	ledgerRepo "roombooking/database/repository/ledger"
	"roombooking/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// Ledger bundles the selected ledger repository with the client backing it.
type Ledger struct {
	Backend string
	Repo    ledgerRepo.LedgerRepository
	Mongo   *mongo.Client
	Redis   *redis.Client
}

// OpenLedger builds the repository chosen by LEDGER_BACKEND.
func OpenLedger(ctx context.Context) (*Ledger, error) {
	l := &Ledger{Backend: config.AppConfig.LedgerBackend}
	switch l.Backend {
	case "mongo":
		client, err := Connect(ctx)
		if err != nil {
			return nil, err
		}
		if err := ledgerRepo.EnsureIndexes(ctx, client, config.AppConfig.DatabaseName); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		l.Mongo = client
		l.Repo = ledgerRepo.NewMongoLedgerRepo(client, config.AppConfig.DatabaseName)
	case "redis":
		client, err := utils.NewLedgerRedisClient()
		if err != nil {
			return nil, err
		}
		l.Redis = client
		l.Repo = ledgerRepo.NewRedisLedgerRepo(client, config.AppConfig.LedgerKey)
	case "memory", "":
		l.Backend = "memory"
		l.Repo = ledgerRepo.NewMemoryLedgerRepo(0)
	default:
		return nil, fmt.Errorf("unknown LEDGER_BACKEND %q", l.Backend)
	}
	return l, nil
}

// Close releases the backing client, if any.
func (l *Ledger) Close(ctx context.Context) {
	if l.Redis != nil {
		_ = l.Redis.Close()
	}
	if l.Mongo != nil {
		_ = l.Mongo.Disconnect(ctx)
	}
}
