package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/DevStar234/nautilus-trader/internal/monitoring"
	"github.com/DevStar234/nautilus-trader/pkg/common"
	"github.com/DevStar234/nautilus-trader/pkg/utility"
)

const storeName = "duckdb"

var ErrNotConnected = errors.New("bar store is not connected")

const schema = `CREATE TABLE IF NOT EXISTS bars (
	bar_type     VARCHAR NOT NULL,
	open         VARCHAR NOT NULL,
	high         VARCHAR NOT NULL,
	low          VARCHAR NOT NULL,
	close        VARCHAR NOT NULL,
	volume       VARCHAR NOT NULL,
	ts_event     BIGINT  NOT NULL,
	ts_init      BIGINT  NOT NULL,
	is_revision  BOOLEAN NOT NULL DEFAULT false,
	execution_id VARCHAR
)`

// BarStore persists bars as their record form. Prices stay decimal strings so a replay
// reproduces the stored precision exactly.
type BarStore struct {
	dataSourceName string
	logger         *zap.Logger
	db             *sql.DB
}

type Option func(*BarStore)

func WithLogger(logger *zap.Logger) Option {
	return func(s *BarStore) {
		s.logger = logger
	}
}

// NewBarStore prepares a store for the given duckdb data source; an empty name is an in memory
// database.
func NewBarStore(dataSourceName string, options ...Option) *BarStore {
	s := &BarStore{
		dataSourceName: dataSourceName,
		logger:         zap.NewNop(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *BarStore) Connect() error {
	db, err := sql.Open("duckdb", s.dataSourceName)
	if err != nil {
		return fmt.Errorf("unable to open duckdb %q: %w", s.dataSourceName, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("unable to connect to duckdb %q: %w", s.dataSourceName, err)
	}
	s.db = db
	return nil
}

func (s *BarStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *BarStore) CreateSchema(ctx context.Context) error {
	if s.db == nil {
		return ErrNotConnected
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("unable to create bars table: %w", err)
	}
	return nil
}

func (s *BarStore) Insert(ctx context.Context, bars ...common.Bar) error {
	if s.db == nil {
		return ErrNotConnected
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("unable to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO bars
		(bar_type, open, high, low, close, volume, ts_event, ts_init, is_revision, execution_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	executionID := utility.GetExecutionID().String()
	for _, bar := range bars {
		if _, err := stmt.ExecContext(ctx,
			bar.BarType.String(),
			bar.Open.String(),
			bar.High.String(),
			bar.Low.String(),
			bar.Close.String(),
			bar.Volume.String(),
			bar.TsEvent,
			bar.TsInit,
			bar.IsRevision,
			executionID,
		); err != nil {
			return fmt.Errorf("error inserting bar %s: %w", bar, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("unable to commit bars: %w", err)
	}

	monitoring.RecordBarsStored(storeName, len(bars))
	return nil
}

// LoadBars replays the bars of barType with from <= ts_event <= to in event order. Rows that
// do not decode are logged and skipped; a handler error stops the replay.
func (s *BarStore) LoadBars(ctx context.Context, barType common.BarType, from, to time.Time, handler func(bar common.Bar) error) error {
	if s.db == nil {
		return ErrNotConnected
	}

	rows, err := s.db.QueryContext(ctx, `SELECT bar_type, open, high, low, close, volume, ts_event, ts_init, is_revision
		FROM bars WHERE bar_type = ? AND ts_event BETWEEN ? AND ? ORDER BY ts_event, ts_init`,
		barType.String(), from.UnixNano(), to.UnixNano())
	if err != nil {
		return fmt.Errorf("error preparing query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			barTypeText, open, high, low, closePrice, volume string
			tsEvent, tsInit                             int64
			isRevision                                  bool
		)
		if err := rows.Scan(&barTypeText, &open, &high, &low, &closePrice, &volume, &tsEvent, &tsInit, &isRevision); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}

		options := []common.BarOption{common.WithoutValidation()}
		if isRevision {
			options = append(options, common.WithRevision())
		}

		bar, err := common.BarFromRecord(map[string]any{
			common.RecordKeyBarType: barTypeText,
			common.RecordKeyOpen:    open,
			common.RecordKeyHigh:    high,
			common.RecordKeyLow:     low,
			common.RecordKeyClose:   closePrice,
			common.RecordKeyVolume:  volume,
			common.RecordKeyTsEvent: tsEvent,
			common.RecordKeyTsInit:  tsInit,
		}, options...)
		if err != nil {
			s.logger.Warn("dropping stored bar", zap.String("bar_type", barTypeText), zap.Int64("ts_event", tsEvent), zap.Error(err))
			monitoring.RecordBarRejected(storeName)
			continue
		}

		monitoring.RecordBarLoaded(storeName)
		if err := handler(bar); err != nil {
			return fmt.Errorf("error processing bar: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error scanning rows: %w", err)
	}

	return nil
}
