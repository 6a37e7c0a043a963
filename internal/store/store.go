// Package store persists extracted feature records in a DuckDB database,
// append-only and queryable by feature type and identity.
package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/mattdoug604/ensembl-map/internal/feature"
	"github.com/mattdoug604/ensembl-map/internal/output"
)

// Store manages a DuckDB connection for persisting feature records.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist. The primary key is the
// feature type plus the identity tuple.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS features (
		feature_type VARCHAR,
		id VARCHAR,
		name VARCHAR,
		contig VARCHAR,
		start_pos INTEGER,
		end_pos INTEGER,
		strand VARCHAR,
		biotype VARCHAR,
		transcript_id VARCHAR,
		transcript_name VARCHAR,
		exon_index INTEGER,
		seq VARCHAR,
		PRIMARY KEY (feature_type, id, start_pos, end_pos)
	)`)
	return err
}

// rowKey is the composite key for deduplicating records before writing.
type rowKey struct {
	featureType, id string
	start, end      int
}

// WriteFeatures batch-inserts feature records using the Appender API.
// Records sharing a (type, id, start, end) key are deduplicated before
// writing.
func (s *Store) WriteFeatures(feats []feature.Feature) error {
	if len(feats) == 0 {
		return nil
	}

	seen := make(map[rowKey]bool, len(feats))
	deduped := make([]output.Record, 0, len(feats))
	for _, f := range feats {
		r, err := output.NewRecord(f)
		if err != nil {
			return err
		}
		k := rowKey{r.Type, r.ID, r.Start, r.End}
		if !seen[k] {
			seen[k] = true
			deduped = append(deduped, r)
		}
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "features")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range deduped {
		if err := appender.AppendRow(
			r.Type, r.ID, r.Name, r.Contig,
			int32(r.Start), int32(r.End),
			r.Strand, r.Biotype,
			r.TranscriptID, r.TranscriptName,
			int32(r.Index), r.Seq,
		); err != nil {
			return fmt.Errorf("append feature: %w", err)
		}
	}

	return appender.Flush()
}

// CountFeatures returns the number of stored records.
func (s *Store) CountFeatures() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM features").Scan(&n); err != nil {
		return 0, fmt.Errorf("count features: %w", err)
	}
	return n, nil
}

// QueryByType returns all stored records of one feature type, ordered by
// identity (id, start, end).
func (s *Store) QueryByType(featureType string) ([]output.Record, error) {
	rows, err := s.db.Query(`SELECT
		feature_type, id, name, contig, start_pos, end_pos,
		strand, biotype, transcript_id, transcript_name, exon_index, seq
		FROM features
		WHERE feature_type=?
		ORDER BY id, start_pos, end_pos`, featureType)
	if err != nil {
		return nil, fmt.Errorf("query by type: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// LookupFeature returns all stored records with the given type and ID.
func (s *Store) LookupFeature(featureType, id string) ([]output.Record, error) {
	rows, err := s.db.Query(`SELECT
		feature_type, id, name, contig, start_pos, end_pos,
		strand, biotype, transcript_id, transcript_name, exon_index, seq
		FROM features
		WHERE feature_type=? AND id=?
		ORDER BY start_pos, end_pos`, featureType, id)
	if err != nil {
		return nil, fmt.Errorf("lookup feature: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ClearFeatures removes all stored records.
func (s *Store) ClearFeatures() error {
	_, err := s.db.Exec("DELETE FROM features")
	return err
}

// scanRecords scans rows into flattened records.
func scanRecords(rows *sql.Rows) ([]output.Record, error) {
	var records []output.Record
	for rows.Next() {
		var r output.Record
		if err := rows.Scan(
			&r.Type, &r.ID, &r.Name, &r.Contig, &r.Start, &r.End,
			&r.Strand, &r.Biotype, &r.TranscriptID, &r.TranscriptName,
			&r.Index, &r.Seq,
		); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate features: %w", err)
	}
	return records, nil
}
