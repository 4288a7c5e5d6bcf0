package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wheelBacktester/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (noopLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (noopLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (noopLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// setupTestDB creates a file-backed repository in a temp directory so WAL
// mode behaves as it does in production.
func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(Config{
		DBPath: filepath.Join(t.TempDir(), "test.db"),
		Logger: noopLogger{},
	})
	require.NoError(t, err, "Failed to create test repository")
	t.Cleanup(func() {
		assert.NoError(t, repo.Close())
	})
	return repo
}

func sampleRun(symbol string, createdAt time.Time) *domain.Run {
	return &domain.Run{
		Symbol:              symbol,
		StartDate:           time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:             time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		InitialCapital:      50000,
		PutOTMPct:           0.05,
		CallOTMPct:          0.05,
		PremiumPct:          0.02,
		FinalCash:           51234.5,
		StockValue:          0,
		TotalValue:          51234.5,
		TotalReturnPct:      2.469,
		AnnualizedReturnPct: 2.469,
		TotalPremiums:       1100.25,
		TotalStockGains:     134.25,
		BuyHoldValue:        48000,
		Outperformance:      3234.5,
		TotalWeeks:          52,
		CreatedAt:           createdAt,
	}
}

func sampleTrades() []*domain.Trade {
	return []*domain.Trade{
		{
			Week:       1,
			Date:       time.Date(2022, 1, 7, 0, 0, 0, 0, time.UTC),
			Type:       domain.SellPut,
			StockPrice: 100,
			Strike:     95,
			Premium:    142.5,
			Cash:       50142.5,
			Status:     domain.StatusExpiredWorthless,
		},
		{
			Week:            2,
			Date:            time.Date(2022, 1, 14, 0, 0, 0, 0, time.UTC),
			Type:            domain.SellPut,
			StockPrice:      99,
			Strike:          94.05,
			Premium:         141.08,
			Cash:            40878.58,
			Status:          domain.StatusAssigned,
			AssignmentPrice: 95,
			SharesAcquired:  100,
			CapitalDeployed: 9405,
		},
		{
			Week:          3,
			Date:          time.Date(2022, 1, 21, 0, 0, 0, 0, time.UTC),
			Type:          domain.SellCall,
			StockPrice:    95,
			Strike:        99.75,
			Premium:       149.63,
			Cash:          51003.21,
			Status:        domain.StatusCalledAway,
			CostBasis:     94.05,
			SalePrice:     99.75,
			StockGain:     570,
			TotalProceeds: 9975,
		},
	}
}

func TestNewRepositoryRequiresLogger(t *testing.T) {
	_, err := NewRepository(Config{DBPath: filepath.Join(t.TempDir(), "test.db")})
	assert.Error(t, err)
}

func TestSaveRunRoundTrip(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	run := sampleRun("BTCUSDT", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	trades := sampleTrades()

	runID, err := repo.SaveRun(ctx, run, trades)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))
	assert.Equal(t, runID, run.ID, "SaveRun should stamp the run ID")
	for _, tr := range trades {
		assert.Greater(t, tr.ID, int64(0), "SaveRun should stamp trade IDs")
		assert.Equal(t, runID, tr.RunID)
	}

	runs, err := repo.FindRunsBySymbol(ctx, "BTCUSDT", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	got := runs[0]
	assert.Equal(t, run.Symbol, got.Symbol)
	assert.Equal(t, run.InitialCapital, got.InitialCapital)
	assert.Equal(t, run.FinalCash, got.FinalCash)
	assert.Equal(t, run.TotalPremiums, got.TotalPremiums)
	assert.Equal(t, run.TotalWeeks, got.TotalWeeks)
	assert.True(t, got.StartDate.Equal(run.StartDate))
	assert.True(t, got.EndDate.Equal(run.EndDate))

	saved, err := repo.FindTradesByRun(ctx, runID)
	require.NoError(t, err)
	require.Len(t, saved, len(trades))
	for i, want := range trades {
		assert.Equal(t, want.Week, saved[i].Week, "Trade %d week", i)
		assert.Equal(t, want.Type, saved[i].Type, "Trade %d type", i)
		assert.Equal(t, want.Status, saved[i].Status, "Trade %d status", i)
		assert.Equal(t, want.Strike, saved[i].Strike, "Trade %d strike", i)
		assert.Equal(t, want.Premium, saved[i].Premium, "Trade %d premium", i)
		assert.Equal(t, want.SharesAcquired, saved[i].SharesAcquired, "Trade %d shares", i)
		assert.Equal(t, want.CapitalDeployed, saved[i].CapitalDeployed, "Trade %d capital", i)
		assert.Equal(t, want.StockGain, saved[i].StockGain, "Trade %d gain", i)
		assert.True(t, saved[i].Date.Equal(want.Date), "Trade %d date", i)
	}
}

func TestFindRunsBySymbolOrderAndLimit(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := sampleRun("ETHUSDT", base.Add(time.Duration(i)*time.Hour))
		run.TotalWeeks = 10 + i // Distinguish the runs
		_, err := repo.SaveRun(ctx, run, nil)
		require.NoError(t, err)
	}
	// A different symbol must not leak into the result.
	_, err := repo.SaveRun(ctx, sampleRun("BTCUSDT", base), nil)
	require.NoError(t, err)

	runs, err := repo.FindRunsBySymbol(ctx, "ETHUSDT", 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 12, runs[0].TotalWeeks, "Most recent run first")
	assert.Equal(t, 11, runs[1].TotalWeeks)
	for _, r := range runs {
		assert.Equal(t, "ETHUSDT", r.Symbol)
	}
}

func TestFindTradesByRunUnknownID(t *testing.T) {
	repo := setupTestDB(t)

	trades, err := repo.FindTradesByRun(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestSaveRunEmptyLedger(t *testing.T) {
	repo := setupTestDB(t)

	runID, err := repo.SaveRun(context.Background(), sampleRun("BTCUSDT", time.Time{}), nil)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	runs, err := repo.FindRunsBySymbol(context.Background(), "BTCUSDT", 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].CreatedAt.IsZero(), "Zero CreatedAt is replaced at save time")
}
