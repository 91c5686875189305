// src/services/interfaces.go
package services

import (
	"errors"
	"io"

	"github.com/username/bankstress/src/models"
)

// Define common service errors
var (
	ErrParsingFailed = errors.New("csv parsing failed")
)

// StressService defines the interface for the core stress-test logic: load a
// balance sheet, normalize it, and run the configured scenario set over it.
type StressService interface {
	// RunStress parses and normalizes a CSV payload, then runs every
	// configured shock. Results are cached by payload+params.
	RunStress(payload io.Reader, params models.StressParams) (*models.StressResult, error)

	// RunScenarios runs the scenario loop over an already-normalized table.
	RunScenarios(rows []models.BalanceSheetRow, params models.StressParams) (*models.StressResult, error)
}
