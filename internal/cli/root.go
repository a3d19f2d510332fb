// Package cli implements leadctl, the operator tool for the lead intake service.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/SebasPM15/landing-personal/internal/config"
	"github.com/SebasPM15/landing-personal/internal/contactform"
	"github.com/SebasPM15/landing-personal/internal/leadclient"
	"github.com/SebasPM15/landing-personal/internal/leads"
	"github.com/SebasPM15/landing-personal/internal/sheets"
	"github.com/SebasPM15/landing-personal/pkg/logging"
)

// LeadAPI is the part of the intake service the CLI talks to.
type LeadAPI interface {
	contactform.Submitter
	ListLeads(ctx context.Context) ([]leads.Row, error)
}

// SheetLister lists the tabs of the configured spreadsheet.
type SheetLister interface {
	ListSheetNames(ctx context.Context) ([]string, error)
}

// Deps are the collaborators the commands run against.
type Deps struct {
	Out        io.Writer
	Err        io.Writer
	APIBaseURL string
	NewAPI     func(baseURL string) LeadAPI
	OpenSheets func(ctx context.Context) (SheetLister, error)
}

// DefaultDeps wires the commands to the real HTTP client and spreadsheet.
func DefaultDeps(cfg *config.Config, logger *logging.Logger) Deps {
	return Deps{
		Out:        os.Stdout,
		Err:        os.Stderr,
		APIBaseURL: cfg.APIBaseURL,
		NewAPI: func(baseURL string) LeadAPI {
			return leadclient.New(leadclient.Config{BaseURL: baseURL, Logger: logger})
		},
		OpenSheets: func(ctx context.Context) (SheetLister, error) {
			if err := cfg.ValidateSheets(); err != nil {
				return nil, err
			}
			store, err := sheets.New(ctx, sheets.Config{
				SpreadsheetID: cfg.SpreadsheetID,
				Range:         cfg.SheetsRange,
				Credentials: sheets.Credentials{
					ClientEmail: cfg.GoogleClientEmail,
					PrivateKey:  cfg.GooglePrivateKey,
				},
				Endpoint: cfg.SheetsEndpointBase,
				Logger:   logger,
			})
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	}
}

// NewRootCommand builds the leadctl command tree.
func NewRootCommand(d Deps) *cobra.Command {
	var apiURL string

	root := &cobra.Command{
		Use:           "leadctl",
		Short:         "Submit and inspect portfolio contact leads",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(d.Out)
	root.SetErr(d.Err)
	root.PersistentFlags().StringVar(&apiURL, "api-url", d.APIBaseURL, "Base URL of the lead intake service")

	api := func() LeadAPI { return d.NewAPI(apiURL) }

	root.AddCommand(newSubmitCmd(api))
	root.AddCommand(newListCmd(api))
	root.AddCommand(newSheetsCmd(d.OpenSheets))
	return root
}

// Execute runs leadctl with configuration from the environment.
func Execute(version string) error {
	cfg := config.Load()
	logger := logging.NewWithWriter(cfg.LogLevel, os.Stderr)

	root := NewRootCommand(DefaultDeps(cfg, logger))
	root.Version = version
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
