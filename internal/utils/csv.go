package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"wheelBacktester/internal/domain"
	"wheelBacktester/internal/ports"
)

const dateLayout = "2006-01-02"

// SanitizeFilename reduces a caller-supplied filename to its base name,
// rejecting names that are empty once path separators are removed. Export
// paths are always relative to the working directory; a caller cannot
// steer output elsewhere.
func SanitizeFilename(name string) (string, error) {
	cleaned := strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(cleaned)
	if base == "" || base == "." || base == ".." || base == "/" {
		return "", fmt.Errorf("sanitize %q: %w", name, ports.ErrInvalidFilename)
	}
	return base, nil
}

// WriteTradesToCSV exports a trade ledger into dir. The caller-supplied
// filename is sanitized to its base name before any I/O; dir comes from
// trusted configuration.
func WriteTradesToCSV(trades []*domain.Trade, dir, filename string) error {
	base, err := SanitizeFilename(filename)
	if err != nil {
		return err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory '%s': %w", dir, err)
	}

	file, err := os.Create(filepath.Join(dir, base))
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{
		"week", "date", "type", "stock_price", "strike", "premium", "cash", "status",
		"assignment_price", "shares_acquired", "capital_deployed",
		"cost_basis", "sale_price", "stock_gain", "total_proceeds",
	})

	for _, t := range trades {
		writer.Write([]string{
			strconv.Itoa(t.Week),
			t.Date.Format(dateLayout),
			string(t.Type),
			formatFloat(t.StockPrice),
			formatFloat(t.Strike),
			formatFloat(t.Premium),
			formatFloat(t.Cash),
			string(t.Status),
			formatFloat(t.AssignmentPrice),
			strconv.Itoa(t.SharesAcquired),
			formatFloat(t.CapitalDeployed),
			formatFloat(t.CostBasis),
			formatFloat(t.SalePrice),
			formatFloat(t.StockGain),
			formatFloat(t.TotalProceeds),
		})
	}
	return writer.Error()
}

// WriteDailyBarsToCSV exports raw daily bars, e.g. for offline backtests.
// The path is program-constructed, so no sanitization applies; parent
// directories are created as needed.
func WriteDailyBarsToCSV(bars []*domain.DailyBar, filename string) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory '%s': %w", dir, err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"date", "open", "high", "low", "close", "volume"})

	for _, b := range bars {
		writer.Write([]string{
			b.Date.Format(dateLayout),
			formatFloat(b.Open),
			formatFloat(b.High),
			formatFloat(b.Low),
			formatFloat(b.Close),
			formatFloat(b.Volume),
		})
	}
	return writer.Error()
}

// ReadDailyBarsFromCSV loads daily bars previously written by
// WriteDailyBarsToCSV. The header row is required.
func ReadDailyBarsFromCSV(filename string) ([]*domain.DailyBar, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", filename, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("read %s: %w", filename, ports.ErrNoData)
	}

	bars := make([]*domain.DailyBar, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != 6 {
			return nil, fmt.Errorf("row %d of %s: expected 6 columns, got %d", i+2, filename, len(rec))
		}
		date, err := time.Parse(dateLayout, rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d of %s: bad date %q: %w", i+2, filename, rec[0], err)
		}
		vals := make([]float64, 5)
		for j, s := range rec[1:] {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d of %s: bad number %q: %w", i+2, filename, s, err)
			}
			vals[j] = v
		}
		bars = append(bars, &domain.DailyBar{
			Date:   date,
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vals[4],
		})
	}
	return bars, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
