package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wheelBacktester/internal/domain"
	"wheelBacktester/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements the ports.RunRepository interface using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/wheel_backtests.db" // Default path
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w: %w", dbPath, ports.ErrDBConnection, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w: %w", dbPath, ports.ErrDBConnection, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; the Go driver benefits from
	// limiting connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cfg.Logger.Info(context.Background(), "SQLite database connection established", map[string]interface{}{"path": dbPath})

	repo := &Repository{db: db, logger: cfg.Logger}

	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	return repo, nil
}

// initializeSchema creates tables if they don't exist.
func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		start_date TIMESTAMP NOT NULL,
		end_date TIMESTAMP NOT NULL,
		initial_capital REAL NOT NULL,
		put_otm_pct REAL NOT NULL,
		call_otm_pct REAL NOT NULL,
		premium_pct REAL NOT NULL,
		final_cash REAL NOT NULL,
		stock_value REAL NOT NULL,
		total_value REAL NOT NULL,
		total_return_pct REAL NOT NULL,
		annualized_return_pct REAL NOT NULL,
		total_premiums REAL NOT NULL,
		total_stock_gains REAL NOT NULL,
		buy_hold_value REAL NOT NULL,
		outperformance REAL NOT NULL,
		total_weeks INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		week INTEGER NOT NULL,
		trade_date TIMESTAMP NOT NULL,
		type TEXT NOT NULL,
		stock_price REAL NOT NULL,
		strike REAL NOT NULL,
		premium REAL NOT NULL,
		cash REAL NOT NULL,
		status TEXT NOT NULL,
		assignment_price REAL NOT NULL DEFAULT 0,
		shares_acquired INTEGER NOT NULL DEFAULT 0,
		capital_deployed REAL NOT NULL DEFAULT 0,
		cost_basis REAL NOT NULL DEFAULT 0,
		sale_price REAL NOT NULL DEFAULT 0,
		stock_gain REAL NOT NULL DEFAULT 0,
		total_proceeds REAL NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_runs_symbol_created_at ON runs (symbol, created_at);
	CREATE INDEX IF NOT EXISTS idx_run_trades_run_id_week ON run_trades (run_id, week);
	`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// SaveRun stores a run and its full ledger in one transaction.
func (r *Repository) SaveRun(ctx context.Context, run *domain.Run, trades []*domain.Trade) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w: %w", ports.ErrQueryFailed, err)
	}
	defer tx.Rollback()

	const runQuery = `
	INSERT INTO runs (symbol, start_date, end_date, initial_capital, put_otm_pct, call_otm_pct,
	                  premium_pct, final_cash, stock_value, total_value, total_return_pct,
	                  annualized_return_pct, total_premiums, total_stock_gains, buy_hold_value,
	                  outperformance, total_weeks, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	result, err := tx.ExecContext(ctx, runQuery,
		run.Symbol, run.StartDate, run.EndDate, run.InitialCapital, run.PutOTMPct, run.CallOTMPct,
		run.PremiumPct, run.FinalCash, run.StockValue, run.TotalValue, run.TotalReturnPct,
		run.AnnualizedReturnPct, run.TotalPremiums, run.TotalStockGains, run.BuyHoldValue,
		run.Outperformance, run.TotalWeeks, createdAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run for symbol %s: %w", run.Symbol, err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for run %s: %w", run.Symbol, err)
	}

	const tradeQuery = `
	INSERT INTO run_trades (run_id, week, trade_date, type, stock_price, strike, premium, cash,
	                        status, assignment_price, shares_acquired, capital_deployed,
	                        cost_basis, sale_price, stock_gain, total_proceeds)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PrepareContext(ctx, tradeQuery)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare trade insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range trades {
		res, err := stmt.ExecContext(ctx,
			runID, t.Week, t.Date, t.Type, t.StockPrice, t.Strike, t.Premium, t.Cash,
			t.Status, t.AssignmentPrice, t.SharesAcquired, t.CapitalDeployed,
			t.CostBasis, t.SalePrice, t.StockGain, t.TotalProceeds)
		if err != nil {
			return 0, fmt.Errorf("failed to insert trade for week %d: %w", t.Week, err)
		}
		tradeID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get last insert ID for trade week %d: %w", t.Week, err)
		}
		t.ID = tradeID
		t.RunID = runID
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run for symbol %s: %w", run.Symbol, err)
	}

	run.ID = runID
	run.CreatedAt = createdAt
	r.logger.Debug(ctx, "Run saved", map[string]interface{}{"runID": runID, "symbol": run.Symbol, "trades": len(trades)})
	return runID, nil
}

// FindRunsBySymbol retrieves the most recent runs for a given symbol, up to a limit.
func (r *Repository) FindRunsBySymbol(ctx context.Context, symbol string, limit int) ([]*domain.Run, error) {
	const query = `
	SELECT id, symbol, start_date, end_date, initial_capital, put_otm_pct, call_otm_pct,
	       premium_pct, final_cash, stock_value, total_value, total_return_pct,
	       annualized_return_pct, total_premiums, total_stock_gains, buy_hold_value,
	       outperformance, total_weeks, created_at
	FROM runs
	WHERE symbol = ? ORDER BY created_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs for symbol %s: %w", symbol, err)
	}
	defer rows.Close()

	runs := make([]*domain.Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run during FindRunsBySymbol: %w", err)
		}
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}
	return runs, nil
}

// FindTradesByRun retrieves the full ledger of a run in week order.
func (r *Repository) FindTradesByRun(ctx context.Context, runID int64) ([]*domain.Trade, error) {
	const query = `
	SELECT id, run_id, week, trade_date, type, stock_price, strike, premium, cash, status,
	       assignment_price, shares_acquired, capital_deployed, cost_basis, sale_price,
	       stock_gain, total_proceeds
	FROM run_trades
	WHERE run_id = ? ORDER BY week ASC`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades for run %d: %w", runID, err)
	}
	defer rows.Close()

	trades := make([]*domain.Trade, 0)
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade during FindTradesByRun: %w", err)
		}
		trades = append(trades, trade)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade rows: %w", err)
	}
	return trades, nil
}

// --- Helper Scan Functions ---

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRun scans a row into a domain.Run struct.
func scanRun(s scanner) (*domain.Run, error) {
	run := &domain.Run{}
	err := s.Scan(
		&run.ID, &run.Symbol, &run.StartDate, &run.EndDate, &run.InitialCapital,
		&run.PutOTMPct, &run.CallOTMPct, &run.PremiumPct, &run.FinalCash, &run.StockValue,
		&run.TotalValue, &run.TotalReturnPct, &run.AnnualizedReturnPct, &run.TotalPremiums,
		&run.TotalStockGains, &run.BuyHoldValue, &run.Outperformance, &run.TotalWeeks,
		&run.CreatedAt)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// scanTrade scans a row into a domain.Trade struct.
func scanTrade(s scanner) (*domain.Trade, error) {
	t := &domain.Trade{}
	var tradeType, status string
	err := s.Scan(
		&t.ID, &t.RunID, &t.Week, &t.Date, &tradeType, &t.StockPrice, &t.Strike, &t.Premium,
		&t.Cash, &status, &t.AssignmentPrice, &t.SharesAcquired, &t.CapitalDeployed,
		&t.CostBasis, &t.SalePrice, &t.StockGain, &t.TotalProceeds)
	if err != nil {
		return nil, err
	}
	t.Type = domain.TradeType(tradeType)
	t.Status = domain.TradeStatus(status)
	return t, nil
}
