package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adforge/adforge/internal/veolink"
)

// AppendHistory records a generated strategy, evicting the oldest rows so at
// most maxItems remain. maxItems <= 0 disables eviction.
func (s *Store) AppendHistory(ctx context.Context, productName string, strategy veolink.GeneratedStrategy, maxItems int) (*veolink.HistoryItem, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	payload, err := json.Marshal(strategy)
	if err != nil {
		return nil, fmt.Errorf("encode strategy: %w", err)
	}

	item := veolink.HistoryItem{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now().UTC(),
		ProductName: productName,
		Strategy:    strategy,
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO generation_history (id, product_name, strategy_json, created_at)
		 VALUES (?, ?, ?, ?)`,
		item.ID, item.ProductName, string(payload), item.CreatedAt.UnixMilli(),
	); err != nil {
		return nil, fmt.Errorf("insert history item: %w", err)
	}

	if maxItems > 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM generation_history WHERE id NOT IN (
				SELECT id FROM generation_history
				ORDER BY created_at DESC, rowid DESC
				LIMIT ?
			)`,
			maxItems,
		); err != nil {
			return nil, fmt.Errorf("evict history items: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit history transaction: %w", err)
	}

	return &item, nil
}

// ListHistory returns history items, most recent first.
func (s *Store) ListHistory(ctx context.Context) ([]veolink.HistoryItem, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, product_name, strategy_json, created_at
		 FROM generation_history
		 ORDER BY created_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup on SQL rows

	items := make([]veolink.HistoryItem, 0)
	for rows.Next() {
		var (
			item      veolink.HistoryItem
			payload   string
			createdAt int64
		)
		if err := rows.Scan(&item.ID, &item.ProductName, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("scan history item: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &item.Strategy); err != nil {
			return nil, fmt.Errorf("decode history item %s: %w", item.ID, err)
		}
		item.CreatedAt = time.UnixMilli(createdAt).UTC()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return items, nil
}

// GetHistory returns a single history item by ID, or nil when absent.
func (s *Store) GetHistory(ctx context.Context, id string) (*veolink.HistoryItem, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	row := s.DB.QueryRowContext(ctx,
		`SELECT id, product_name, strategy_json, created_at
		 FROM generation_history WHERE id = ?`,
		id,
	)

	var (
		item      veolink.HistoryItem
		payload   string
		createdAt int64
	)
	if err := row.Scan(&item.ID, &item.ProductName, &payload, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query history item: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &item.Strategy); err != nil {
		return nil, fmt.Errorf("decode history item %s: %w", item.ID, err)
	}
	item.CreatedAt = time.UnixMilli(createdAt).UTC()

	return &item, nil
}

// ClearHistory removes all history items.
func (s *Store) ClearHistory(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM generation_history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
