package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/olegiv/folio-go/internal/model"
)

// DefaultAPIKeyName labels the key created on first boot.
const DefaultAPIKeyName = "bootstrap"

// Seed creates the bootstrap API key when no key exists yet. The raw key
// is logged once so the operator can record it; only the hash is stored.
func Seed(ctx context.Context, db *sql.DB) error {
	st := New(db)

	keys, err := st.APIKeys.List(ctx)
	if err != nil {
		return fmt.Errorf("checking for api keys: %w", err)
	}
	if len(keys) > 0 {
		slog.Info("api keys already exist, skipping seed")
		return nil
	}

	rawKey, prefix, err := model.GenerateAPIKey()
	if err != nil {
		return fmt.Errorf("generating bootstrap key: %w", err)
	}

	key := &model.APIKey{
		Name:      DefaultAPIKeyName,
		KeyHash:   model.HashAPIKey(rawKey),
		KeyPrefix: prefix,
	}
	if err := st.APIKeys.Create(ctx, key); err != nil {
		return fmt.Errorf("creating bootstrap key: %w", err)
	}

	slog.Info("created bootstrap API key, store it now; it will not be shown again",
		"id", key.ID,
		"key", rawKey,
	)

	return nil
}
