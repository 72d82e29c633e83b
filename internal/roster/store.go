// Package roster loads and refreshes the listed-company table the matching
// pass runs against.
package roster

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/beaten-by-the-market/krx-radar/internal/models"
)

const tableName = "ds_entitysummary"

// Store reads and rewrites the roster table.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore opens a connection pool for databaseURL.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open database pool: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Entities loads every roster row in symbol order. Null columns come back
// as empty strings.
func (s *Store) Entities(ctx context.Context) ([]models.Entity, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT COALESCE(symbol, ''),
		       COALESCE(symbol_nice, ''),
		       COALESCE(entity_name, ''),
		       COALESCE(business_rid, ''),
		       COALESCE(company_rid, ''),
		       COALESCE(mkt, ''),
		       COALESCE(last_update, '')
		FROM `+tableName+`
		ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("query roster: %w", err)
	}
	defer rows.Close()

	var out []models.Entity
	for rows.Next() {
		var e models.Entity
		var mkt string
		if err := rows.Scan(&e.Symbol, &e.SymbolNICE, &e.Name, &e.BusinessRID, &e.CompanyRID, &mkt, &e.LastUpdate); err != nil {
			return nil, fmt.Errorf("scan roster row: %w", err)
		}
		e.Market = models.Market(mkt)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read roster rows: %w", err)
	}
	return out, nil
}

// LastUpdate reports the newest refresh stamp in the table, empty when the
// table has no rows.
func (s *Store) LastUpdate(ctx context.Context) (string, error) {
	var stamp string
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(last_update), '') FROM `+tableName).Scan(&stamp)
	if err != nil {
		return "", fmt.Errorf("query last update: %w", err)
	}
	return stamp, nil
}

var summaryColumns = []string{
	"symbol", "entity_name", "symbol_nice", "ceo", "business_rid",
	"company_rid", "website", "company_type_l1", "company_type_size",
	"market_id", "industry_id", "industry_name", "date_listed", "status",
	"mkt", "last_update",
}

// Replace swaps the whole table for the given snapshot in one transaction.
// The batch job rebuilds from scratch every run, so drop and recreate keeps
// schema drift from accumulating.
func (s *Store) Replace(ctx context.Context, summaries []models.EntitySummary) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DROP TABLE IF EXISTS `+tableName); err != nil {
		return fmt.Errorf("drop roster table: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		CREATE TABLE `+tableName+` (
			symbol            VARCHAR(100),
			entity_name       VARCHAR(100),
			symbol_nice       VARCHAR(100),
			ceo               VARCHAR(100),
			business_rid      VARCHAR(100),
			company_rid       VARCHAR(100),
			website           VARCHAR(200),
			company_type_l1   VARCHAR(100),
			company_type_size VARCHAR(100),
			market_id         VARCHAR(100),
			industry_id       VARCHAR(100),
			industry_name     VARCHAR(200),
			date_listed       VARCHAR(100),
			status            VARCHAR(100),
			mkt               VARCHAR(100),
			last_update       VARCHAR(100)
		)`); err != nil {
		return fmt.Errorf("create roster table: %w", err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{tableName},
		summaryColumns,
		pgx.CopyFromSlice(len(summaries), func(i int) ([]any, error) {
			s := summaries[i]
			return []any{
				s.Symbol, s.Name, s.SymbolNICE, s.CEO, s.BusinessRID,
				s.CompanyRID, s.Website, s.CompanyTypeL1, s.CompanyTypeSize,
				s.MarketID, s.IndustryID, s.IndustryName, s.DateListed,
				s.Status, string(s.Market), s.LastUpdate,
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy roster rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}
