package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/cubeviz"
)

// Sentinel errors for the storage package.
var (
	ErrNotFound      = errors.New("storage: not found")
	ErrDuplicateName = errors.New("storage: name already exists")
	ErrEmptyName     = errors.New("storage: name is empty")
)

// Algorithm is a named move sequence, optionally with the facelet string it
// starts from.
type Algorithm struct {
	AlgID         string
	Name          string
	Moves         []cubeviz.Move
	StartFacelets string
	CreatedAt     time.Time
}

// Notation returns the moves in standard notation.
func (a Algorithm) Notation() string {
	return cubeviz.FormatMoves(a.Moves)
}

// Start returns the facelet string the algorithm starts from.
func (a Algorithm) Start() string {
	if a.StartFacelets == "" {
		return cubeviz.SolvedFacelets
	}
	return a.StartFacelets
}

// AlgorithmRepository provides CRUD operations for algorithms.
type AlgorithmRepository struct {
	db *DB
}

// NewAlgorithmRepository creates a new algorithm repository.
func NewAlgorithmRepository(db *DB) *AlgorithmRepository {
	return &AlgorithmRepository{db: db}
}

// Create validates and stores a new algorithm. Adjacent turns of the same
// face are merged before storing.
func (r *AlgorithmRepository) Create(name, notation, startFacelets string) (*Algorithm, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	moves, err := cubeviz.ParseMoves(notation)
	if err != nil {
		return nil, err
	}
	moves = cubeviz.SimplifyMoves(moves)
	if len(moves) == 0 {
		return nil, fmt.Errorf("%w: no moves", cubeviz.ErrInvalidNotation)
	}
	if startFacelets != "" {
		if err := cubeviz.ValidateFacelets(startFacelets); err != nil {
			return nil, err
		}
	}

	if _, err := r.Get(name); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	alg := &Algorithm{
		AlgID:         uuid.New().String(),
		Name:          name,
		Moves:         moves,
		StartFacelets: startFacelets,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}

	var startPtr *string
	if startFacelets != "" {
		startPtr = &startFacelets
	}

	_, err = r.db.Exec(`
		INSERT INTO algorithms (alg_id, name, moves, move_count, start_facelets, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, alg.AlgID, alg.Name, alg.Notation(), len(moves), startPtr, alg.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to create algorithm: %w", err)
	}

	return alg, nil
}

// Get retrieves an algorithm by name.
func (r *AlgorithmRepository) Get(name string) (*Algorithm, error) {
	row := r.db.QueryRow(`
		SELECT alg_id, name, moves, start_facelets, created_at
		FROM algorithms
		WHERE name = ?
	`, name)

	alg, err := scanAlgorithm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: algorithm %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get algorithm: %w", err)
	}
	return alg, nil
}

// List returns all algorithms ordered by name.
func (r *AlgorithmRepository) List() ([]Algorithm, error) {
	rows, err := r.db.Query(`
		SELECT alg_id, name, moves, start_facelets, created_at
		FROM algorithms
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list algorithms: %w", err)
	}
	defer rows.Close()

	var algs []Algorithm
	for rows.Next() {
		alg, err := scanAlgorithm(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan algorithm: %w", err)
		}
		algs = append(algs, *alg)
	}

	return algs, rows.Err()
}

// Delete removes an algorithm and its plays.
func (r *AlgorithmRepository) Delete(name string) error {
	res, err := r.db.Exec("DELETE FROM algorithms WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete algorithm: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete algorithm: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: algorithm %q", ErrNotFound, name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAlgorithm(s scanner) (*Algorithm, error) {
	var alg Algorithm
	var notation, createdAt string
	var start sql.NullString

	if err := s.Scan(&alg.AlgID, &alg.Name, &notation, &start, &createdAt); err != nil {
		return nil, err
	}

	moves, err := cubeviz.ParseMoves(notation)
	if err != nil {
		return nil, fmt.Errorf("stored moves for %q: %w", alg.Name, err)
	}
	alg.Moves = moves
	alg.StartFacelets = start.String
	alg.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &alg, nil
}
