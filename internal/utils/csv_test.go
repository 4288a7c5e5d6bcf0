package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wheelBacktester/internal/domain"
	"wheelBacktester/internal/ports"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain name", "trades.csv", "trades.csv", false},
		{"strips directory", "export/trades.csv", "trades.csv", false},
		{"strips traversal", "../../etc/passwd", "passwd", false},
		{"strips windows separators", "..\\..\\trades.csv", "trades.csv", false},
		{"empty", "", "", true},
		{"dot", ".", "", true},
		{"dot dot", "..", "", true},
		{"root", "/", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeFilename(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q, got %q", tt.in, got)
				}
				if !errors.Is(err, ports.ErrInvalidFilename) {
					t.Errorf("Expected ErrInvalidFilename, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestWriteTradesToCSV(t *testing.T) {
	dir := t.TempDir()
	trades := []*domain.Trade{
		{
			Week:       1,
			Date:       time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			Type:       domain.SellPut,
			StockPrice: 100,
			Strike:     95,
			Premium:    142.5,
			Cash:       50142.5,
			Status:     domain.StatusExpiredWorthless,
		},
		{
			Week:            2,
			Date:            time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
			Type:            domain.SellPut,
			StockPrice:      99,
			Strike:          94.05,
			Premium:         141.07,
			Cash:            40878.57,
			Status:          domain.StatusAssigned,
			AssignmentPrice: 95,
			SharesAcquired:  100,
			CapitalDeployed: 9405,
		},
	}

	// A traversal attempt in the filename must stay inside dir.
	if err := WriteTradesToCSV(trades, dir, "../trades.csv"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "trades.csv"))
	if err != nil {
		t.Fatalf("Expected file inside export dir: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "week,date,type,") {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "SELL_PUT") || !strings.Contains(lines[1], "142.5") {
		t.Errorf("Unexpected first row: %s", lines[1])
	}
	if !strings.Contains(lines[2], "ASSIGNED") || !strings.Contains(lines[2], "9405") {
		t.Errorf("Unexpected second row: %s", lines[2])
	}
}

func TestWriteTradesToCSVRejectsInvalidFilename(t *testing.T) {
	err := WriteTradesToCSV(nil, t.TempDir(), "..")
	if !errors.Is(err, ports.ErrInvalidFilename) {
		t.Errorf("Expected ErrInvalidFilename, got %v", err)
	}
}

func TestDailyBarsCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bars.csv")
	bars := []*domain.DailyBar{
		{Date: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), Open: 100, High: 103.5, Low: 99.25, Close: 102, Volume: 1234.5},
		{Date: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), Open: 102, High: 106, Low: 101, Close: 105, Volume: 987},
	}

	if err := WriteDailyBarsToCSV(bars, path); err != nil {
		t.Fatalf("Unexpected write error: %v", err)
	}

	got, err := ReadDailyBarsFromCSV(path)
	if err != nil {
		t.Fatalf("Unexpected read error: %v", err)
	}
	if len(got) != len(bars) {
		t.Fatalf("Expected %d bars, got %d", len(bars), len(got))
	}
	for i, b := range bars {
		g := got[i]
		if !g.Date.Equal(b.Date) {
			t.Errorf("Bar %d: expected date %s, got %s", i, b.Date, g.Date)
		}
		if g.Open != b.Open || g.High != b.High || g.Low != b.Low || g.Close != b.Close || g.Volume != b.Volume {
			t.Errorf("Bar %d: expected %+v, got %+v", i, b, g)
		}
	}
}

func TestReadDailyBarsFromCSVBadRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "date,open,high,low,close,volume\n2024-01-08,100,abc,99,102,10\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	_, err := ReadDailyBarsFromCSV(path)
	if err == nil {
		t.Fatal("Expected error for malformed numeric field")
	}
	if !strings.Contains(err.Error(), "row 2") {
		t.Errorf("Expected row position in error, got: %v", err)
	}
}

func TestReadDailyBarsFromCSVMissingFile(t *testing.T) {
	_, err := ReadDailyBarsFromCSV(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}
