package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/seadmustafa/FXAPI/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFixer answers every request with EUR-based rates.
func fakeFixer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"base":"EUR","rates":{"USD":1.25,"GBP":0.85,"EUR":1}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupEnv(t *testing.T) {
	t.Helper()
	srv := fakeFixer(t)
	t.Setenv("FIXER_API_URL", srv.URL)
	t.Setenv("FIXER_API_KEY", "test")
	t.Setenv("FIXER_REQUESTS_PER_SECOND", "0")
	t.Setenv("RETRY_INITIAL_DELAY", "1ms")
	t.Setenv("HISTORY_STORE", "memory")
	t.Setenv("KAFKA_BROKERS", "")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func TestConvertCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "convert", "USD", "EUR", "125")
	require.NoError(t, err)

	var resp dto.ConversionResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.NotEmpty(t, resp.TransactionID)
	assert.Equal(t, "USD", resp.SourceCurrency)
	assert.True(t, resp.ConvertedAmount.Equal(decimal.NewFromInt(100)), resp.ConvertedAmount.String())
}

func TestConvertCommand_SameCurrency(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "convert", "USD", "USD", "10")

	assert.ErrorContains(t, err, "Source and target currencies must be different")
}

func TestRateCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "rate", "EUR", "USD", "GBP")
	require.NoError(t, err)

	var resp map[string]dto.ExchangeRateResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Contains(t, resp, "GBP")
	assert.True(t, resp["GBP"].Rates["GBP"].Equal(decimal.RequireFromString("0.85")))
}

func TestBulkCommand(t *testing.T) {
	setupEnv(t)
	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte("transactionId,sourceCurrency,targetCurrency,amount\nt1,USD,EUR,125\nt2,USD,EUR,abc\n"), 0o600))

	out, err := run(t, "bulk", path)
	require.NoError(t, err)

	var resp dto.BulkConversionResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 2, resp.TotalRecords)
	assert.Equal(t, 1, resp.SuccessfulConversions)
	assert.Equal(t, "Invalid amount: 'abc'", resp.Results[1].ErrorMessage)
}

func TestCorsConfig(t *testing.T) {
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)
	c := corsConfig([]string{"https://app.example.com"})
	assert.False(t, c.AllowAllOrigins)
	assert.Equal(t, []string{"https://app.example.com"}, c.AllowOrigins)
}
