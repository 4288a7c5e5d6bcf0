package binanceclient

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wheelBacktester/internal/ports"
)

type noopLogger struct{}

func (noopLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (noopLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (noopLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (noopLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func TestNewBaseURLSelection(t *testing.T) {
	c, err := New(Config{Logger: noopLogger{}})
	require.NoError(t, err)
	assert.Equal(t, baseURLProduction, c.spotClient.BaseURL)

	c, err = New(Config{Logger: noopLogger{}, UseTestnet: true})
	require.NoError(t, err)
	assert.Equal(t, baseURLTestnet, c.spotClient.BaseURL)
}

func TestNewRequiresLogger(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHandleErrorAPIMapping(t *testing.T) {
	c, err := New(Config{Logger: noopLogger{}})
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name string
		code int64
		want error
	}{
		{"rate limited", -1003, ports.ErrRateLimited},
		{"timestamp skew", -1021, ports.ErrTimeout},
		{"bad signature", -1022, ports.ErrAuthenticationFailed},
		{"invalid api key", -2014, ports.ErrAuthenticationFailed},
		{"rejected api key", -2015, ports.ErrAuthenticationFailed},
		{"illegal chars", -1100, ports.ErrInvalidRequest},
		{"bad symbol", -1121, ports.ErrInvalidRequest},
		{"unmapped code", -9999, ports.ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := &common.APIError{Code: tt.code, Message: tt.name}
			got := c.handleError(ctx, apiErr, "TestOp")
			assert.True(t, errors.Is(got, tt.want), "code %d should map to %v, got %v", tt.code, tt.want, got)
			assert.True(t, errors.Is(got, apiErr), "original error must stay in the chain")
		})
	}
}

func TestHandleErrorNonAPI(t *testing.T) {
	c, err := New(Config{Logger: noopLogger{}})
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"deadline", context.DeadlineExceeded, ports.ErrTimeout},
		{"canceled", context.Canceled, ports.ErrContextCanceled},
		{"refused", fmt.Errorf("dial tcp: connection refused"), ports.ErrConnectionFailed},
		{"reset", fmt.Errorf("read: connection reset by peer"), ports.ErrConnectionFailed},
		{"other", fmt.Errorf("something odd"), ports.ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.handleError(ctx, tt.in, "TestOp")
			assert.True(t, errors.Is(got, tt.want), "expected %v in chain, got %v", tt.want, got)
		})
	}

	assert.NoError(t, c.handleError(ctx, nil, "TestOp"))
}

func TestTranslateKline(t *testing.T) {
	openTime := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	k := &binance.Kline{
		OpenTime: openTime.UnixMilli(),
		Open:     "42000.5",
		High:     "43250.75",
		Low:      "41800",
		Close:    "43100.25",
		Volume:   "1234.567",
	}

	bar, err := translateKline(k)
	require.NoError(t, err)
	assert.True(t, bar.Date.Equal(openTime))
	assert.Equal(t, 42000.5, bar.Open)
	assert.Equal(t, 43250.75, bar.High)
	assert.Equal(t, 41800.0, bar.Low)
	assert.Equal(t, 43100.25, bar.Close)
	assert.Equal(t, 1234.567, bar.Volume)
}

func TestTranslateKlineBadNumbers(t *testing.T) {
	fields := []func(*binance.Kline){
		func(k *binance.Kline) { k.Open = "x" },
		func(k *binance.Kline) { k.High = "" },
		func(k *binance.Kline) { k.Low = "1,5" },
		func(k *binance.Kline) { k.Close = "NaN-ish" },
		func(k *binance.Kline) { k.Volume = "many" },
	}

	for i, corrupt := range fields {
		k := &binance.Kline{Open: "1", High: "2", Low: "0.5", Close: "1.5", Volume: "10"}
		corrupt(k)
		_, err := translateKline(k)
		assert.Error(t, err, "field %d should fail to parse", i)
	}
}
