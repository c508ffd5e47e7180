// Package snapshot persists scrape runs in a local sqlite database so offer
// comparisons can use an earlier run as the reference set.
package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mekedron/swiggy-audit/internal/domain"
)

// ErrRunNotFound reports a run id with no stored snapshot.
var ErrRunNotFound = errors.New("snapshot run not found")

// Run stores one recorded scrape.
type Run struct {
	ID            int64     `json:"id" yaml:"id"`
	Client        string    `json:"client" yaml:"client"`
	RestaurantIDs []string  `json:"restaurant_ids" yaml:"restaurant_ids"`
	ItemCount     int       `json:"item_count" yaml:"item_count"`
	OfferCount    int       `json:"offer_count" yaml:"offer_count"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
}

// Store wraps the sqlite snapshot database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	client TEXT NOT NULL,
	restaurant_ids TEXT NOT NULL,
	item_count INTEGER NOT NULL,
	offer_count INTEGER NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS run_offers (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	position INTEGER NOT NULL,
	res_id TEXT NOT NULL,
	restaurant TEXT NOT NULL,
	subzone TEXT NOT NULL,
	title TEXT NOT NULL,
	code TEXT NOT NULL,
	description TEXT NOT NULL,
	discount TEXT NOT NULL,
	image TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);
`

// Open opens or creates the snapshot database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init snapshot schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun records one scrape with its offers and returns the run id.
func (s *Store) SaveRun(ctx context.Context, client string, restaurantIDs []string, itemCount int, offers []domain.Offer) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	createdAt := time.Now().UTC().Format(time.RFC3339)
	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (client, restaurant_ids, item_count, offer_count, created_at) VALUES (?, ?, ?, ?, ?)`,
		client,
		strings.Join(restaurantIDs, ","),
		itemCount,
		len(offers),
		createdAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve run id: %w", err)
	}

	stmt, err := tx.PrepareContext(
		ctx,
		`INSERT INTO run_offers (run_id, position, res_id, restaurant, subzone, title, code, description, discount, image)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare offer insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()
	for position, offer := range offers {
		if _, err := stmt.ExecContext(
			ctx,
			runID,
			position,
			offer.ResID,
			offer.Restaurant,
			offer.Subzone,
			offer.Title,
			offer.Code,
			offer.Description,
			offer.Discount,
			offer.Image,
		); err != nil {
			return 0, fmt.Errorf("insert run offer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit snapshot tx: %w", err)
	}
	return runID, nil
}

// History returns recorded runs, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, client, restaurant_ids, item_count, offer_count, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	runs := []Run{}
	for rows.Next() {
		var run Run
		var restaurantIDs, createdAt string
		if err := rows.Scan(&run.ID, &run.Client, &restaurantIDs, &run.ItemCount, &run.OfferCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if restaurantIDs != "" {
			run.RestaurantIDs = strings.Split(restaurantIDs, ",")
		}
		if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
			run.CreatedAt = parsed
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// RunOffers returns the offers stored for one run in scrape order.
func (s *Store) RunOffers(ctx context.Context, runID int64) ([]domain.Offer, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("lookup run: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: id %d", ErrRunNotFound, runID)
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT res_id, restaurant, subzone, title, code, description, discount, image
		 FROM run_offers WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query run offers: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	offers := []domain.Offer{}
	for rows.Next() {
		var offer domain.Offer
		if err := rows.Scan(
			&offer.ResID,
			&offer.Restaurant,
			&offer.Subzone,
			&offer.Title,
			&offer.Code,
			&offer.Description,
			&offer.Discount,
			&offer.Image,
		); err != nil {
			return nil, fmt.Errorf("scan run offer: %w", err)
		}
		offers = append(offers, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run offers: %w", err)
	}
	return offers, nil
}
