package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-json"
	"github.com/seadmustafa/FXAPI/internal/apperrors"
	"github.com/seadmustafa/FXAPI/internal/core/domain"
	"github.com/seadmustafa/FXAPI/internal/dto"
	"github.com/seadmustafa/FXAPI/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// withApp runs fn against a bootstrapped app. Commands log to stderr so
// stdout carries only the JSON result.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := middleware.WithLogger(cmd.Context(), logger)
	cmd.SetContext(ctx)

	a, err := bootstrap(ctx, logger)
	if err != nil {
		return err
	}
	defer a.cleanup()
	return fn(a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// commandError keeps the client-facing message and drops wrapped causes.
func commandError(err error) error {
	return fmt.Errorf("%s (%s)", apperrors.UserMessage(err), apperrors.KindOf(err))
}

func newRateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate BASE TARGET...",
		Short: "Print the current rate from BASE to each TARGET",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				rates, err := a.services.ExchangeRate.GetExchangeRates(cmd.Context(), args[0], args[1:])
				if err != nil {
					return commandError(err)
				}
				return printJSON(cmd.OutOrStdout(), dto.ToExchangeRateResponses(rates))
			})
		},
	}
}

func newConvertCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "convert SOURCE TARGET AMOUNT",
		Short: "Convert one amount and record it in the history store",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[2])
			}
			req := domain.ConversionRequest{SourceCurrency: args[0], TargetCurrency: args[1], Amount: amount}
			if date != "" {
				at, err := domain.ParseConversionDate(date)
				if err != nil {
					return fmt.Errorf("invalid conversion date %q", date)
				}
				req.RequestedAt = &at
			}

			return withApp(cmd, func(a *app) error {
				record, err := a.services.Conversion.Convert(cmd.Context(), req)
				if err != nil {
					return commandError(err)
				}
				return printJSON(cmd.OutOrStdout(), dto.ToConversionResponse(record))
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "conversion date to record (RFC 3339 or YYYY-MM-DD)")
	return cmd
}

func newBulkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bulk FILE",
		Short: "Convert every row of a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			return withApp(cmd, func(a *app) error {
				result, err := a.services.Bulk.ProcessBatch(cmd.Context(), f)
				if err != nil {
					return commandError(err)
				}
				return printJSON(cmd.OutOrStdout(), dto.ToBulkConversionResponse(result))
			})
		},
	}
}
