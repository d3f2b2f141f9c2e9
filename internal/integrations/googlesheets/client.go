package googlesheets

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// NewSheetsService authenticates with a service account. Inline JSON
// credentials take precedence over the credentials file.
func NewSheetsService(ctx context.Context, credentialsJSON, credentialsFile string, logger *zap.Logger) (*sheets.Service, error) {
	var raw []byte

	if credentialsJSON != "" {
		logger.Info("Using Google credentials from environment")
		raw = []byte(credentialsJSON)
	} else {
		logger.Info("Using Google credentials from file", zap.String("path", credentialsFile))
		b, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read credentials file: %w", err)
		}
		raw = b
	}

	credentials, err := google.CredentialsFromJSON(ctx, raw, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to load Google credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, credentials.TokenSource)
	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Google Sheets client: %w", err)
	}

	return sheetsService, nil
}

// valuesClient is the subset of the Sheets values API the store needs.
type valuesClient interface {
	Get(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error)
	Update(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}) error
	Clear(ctx context.Context, spreadsheetID, clearRange string) error
	Append(ctx context.Context, spreadsheetID, appendRange string, values [][]interface{}) error
}

type sheetsValues struct {
	values *sheets.SpreadsheetsValuesService
}

func (s *sheetsValues) Get(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error) {
	resp, err := s.values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (s *sheetsValues) Update(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}) error {
	_, err := s.values.Update(spreadsheetID, writeRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func (s *sheetsValues) Clear(ctx context.Context, spreadsheetID, clearRange string) error {
	_, err := s.values.Clear(spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

func (s *sheetsValues) Append(ctx context.Context, spreadsheetID, appendRange string, values [][]interface{}) error {
	_, err := s.values.Append(spreadsheetID, appendRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}
