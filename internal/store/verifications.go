package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ppiankov/trustlens/internal/model"
)

// SaveVerification inserts or replaces one verification. The full
// result is stored as JSON; the indexed columns exist for lookups.
func (s *Store) SaveVerification(ctx context.Context, v *model.Verification) error {
	result, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal verification: %w", err)
	}

	_, err = s.conn.ExecContext(ctx, `
INSERT OR REPLACE INTO verifications (id, status, url, page_score, content_hash, result)
VALUES (?, ?, ?, ?, ?, ?)`,
		v.ID, v.Status, v.URL, v.PageScore, v.ContentHash, string(result))
	if err != nil {
		return fmt.Errorf("save verification %s: %w", v.ID, err)
	}
	return nil
}

// GetVerification loads one verification by ID
func (s *Store) GetVerification(ctx context.Context, id string) (*model.Verification, error) {
	var result string
	err := s.conn.QueryRowContext(ctx,
		"SELECT result FROM verifications WHERE id = ?", id).Scan(&result)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load verification %s: %w", id, err)
	}

	var v model.Verification
	if err := json.Unmarshal([]byte(result), &v); err != nil {
		return nil, fmt.Errorf("decode verification %s: %w", id, err)
	}
	return &v, nil
}

// ListRecent returns the newest verifications, most recent first
func (s *Store) ListRecent(ctx context.Context, limit int) ([]*model.Verification, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.conn.QueryContext(ctx, `
SELECT result FROM verifications ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list verifications: %w", err)
	}
	defer rows.Close()

	var out []*model.Verification
	for rows.Next() {
		var result string
		if err := rows.Scan(&result); err != nil {
			return nil, fmt.Errorf("scan verification: %w", err)
		}
		var v model.Verification
		if err := json.Unmarshal([]byte(result), &v); err != nil {
			return nil, fmt.Errorf("decode verification: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}
