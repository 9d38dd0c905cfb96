package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Play records one playback of an algorithm in the viewer.
type Play struct {
	PlayID      string
	AlgID       string
	PlayedAt    time.Time
	EndFacelets string
}

// PlayRepository stores algorithm plays.
type PlayRepository struct {
	db *DB
}

// NewPlayRepository creates a new play repository.
func NewPlayRepository(db *DB) *PlayRepository {
	return &PlayRepository{db: db}
}

// Record stores a play of algID that ended in endFacelets.
func (r *PlayRepository) Record(algID, endFacelets string) (string, error) {
	id := uuid.New().String()
	playedAt := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO plays (play_id, alg_id, played_at, end_facelets)
		VALUES (?, ?, ?, ?)
	`, id, algID, playedAt.Format(time.RFC3339Nano), endFacelets)
	if err != nil {
		return "", fmt.Errorf("failed to record play: %w", err)
	}

	return id, nil
}

// ForAlgorithm returns the plays of algID, newest first.
func (r *PlayRepository) ForAlgorithm(algID string) ([]Play, error) {
	rows, err := r.db.Query(`
		SELECT play_id, alg_id, played_at, end_facelets
		FROM plays
		WHERE alg_id = ?
		ORDER BY played_at DESC
	`, algID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plays: %w", err)
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var p Play
		var playedAt string
		if err := rows.Scan(&p.PlayID, &p.AlgID, &playedAt, &p.EndFacelets); err != nil {
			return nil, fmt.Errorf("failed to scan play: %w", err)
		}
		p.PlayedAt, err = time.Parse(time.RFC3339Nano, playedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse played_at: %w", err)
		}
		plays = append(plays, p)
	}

	return plays, rows.Err()
}

// Count returns how many times algID was played.
func (r *PlayRepository) Count(algID string) (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM plays WHERE alg_id = ?", algID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count plays: %w", err)
	}
	return n, nil
}
