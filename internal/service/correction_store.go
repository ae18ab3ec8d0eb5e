package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"ocr-backend/internal/models"
)

const learnedCorrectionLimit = 500

// CorrectionStore is the persistence contract for the learning loop.
// TopCorrections returns at most 500 rules observed at least twice,
// ordered by frequency descending. SaveCorrection records one
// observation of an (original, corrected) pair.
type CorrectionStore interface {
	TopCorrections() ([]models.LearnedCorrection, error)
	SaveCorrection(original, corrected, context string) error
	Close() error
}

// ComparisonLogger accepts one comparison record per call. Failures are
// the caller's to swallow; comparisons always succeed regardless of
// logging outcome.
type ComparisonLogger interface {
	LogComparison(result models.ComparisonResult) error
}

// PostgresConfig holds connection details for the Postgres backend
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string // "disable", "require"
}

// PostgresStore implements CorrectionStore and ComparisonLogger on
// PostgreSQL. Corrections are insert-only rows; frequency is the group
// count at read time, so repeat observations need no upsert.
type PostgresStore struct {
	db *sql.DB
}

// ConnectPostgres opens and pings a Postgres connection and ensures the
// correction and comparison-log tables exist.
func ConnectPostgres(config PostgresConfig) (*PostgresStore, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	store := &PostgresStore{db: db}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// ConnectPostgresURL opens a connection from a DATABASE_URL-style string.
func ConnectPostgresURL(url string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	store := &PostgresStore{db: db}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (p *PostgresStore) ensureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ocr_corrections (
			id SERIAL PRIMARY KEY,
			original TEXT NOT NULL,
			corrected TEXT NOT NULL,
			context TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ocr_comparison_log (
			id UUID PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			document_type TEXT,
			similarity DOUBLE PRECISION NOT NULL,
			quality TEXT NOT NULL,
			recommendation TEXT NOT NULL,
			payload JSONB NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := p.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (p *PostgresStore) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// TopCorrections performs the grouped read backing the learned cache.
func (p *PostgresStore) TopCorrections() ([]models.LearnedCorrection, error) {
	query := `
		SELECT original, corrected, COUNT(*) AS frequency
		FROM ocr_corrections
		GROUP BY original, corrected
		HAVING COUNT(*) >= 2
		ORDER BY COUNT(*) DESC
		LIMIT $1;
	`
	rows, err := p.db.Query(query, learnedCorrectionLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var corrections []models.LearnedCorrection
	for rows.Next() {
		var c models.LearnedCorrection
		if err := rows.Scan(&c.Original, &c.Corrected, &c.Frequency); err != nil {
			return nil, err
		}
		corrections = append(corrections, c)
	}
	return corrections, rows.Err()
}

// SaveCorrection records a single correction observation.
func (p *PostgresStore) SaveCorrection(original, corrected, context string) error {
	_, err := p.db.Exec(
		`INSERT INTO ocr_corrections (original, corrected, context) VALUES ($1, $2, $3)`,
		original, corrected, context,
	)
	return err
}

// LogComparison writes one comparison record with a fresh opaque id.
func (p *PostgresStore) LogComparison(result models.ComparisonResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}

	_, err = p.db.Exec(
		`INSERT INTO ocr_comparison_log (id, created_at, document_type, similarity, quality, recommendation, payload)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.New().String(), result.Timestamp, result.DocumentType,
		result.Similarity, result.Quality, result.Recommendation, payload,
	)
	if err == nil {
		log.Printf("[CorrectionStore] Logged comparison: type=%s similarity=%.3f quality=%s",
			result.DocumentType, result.Similarity, result.Quality)
	}
	return err
}
