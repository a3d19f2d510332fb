package sheets

import "errors"

var (
	// ErrMissingSpreadsheetID is returned when no spreadsheet is configured
	ErrMissingSpreadsheetID = errors.New("sheets: spreadsheet id is required")

	// ErrMissingCredentials is returned when neither a service account nor a
	// transport override is supplied
	ErrMissingCredentials = errors.New("sheets: service account email and private key are required")
)
