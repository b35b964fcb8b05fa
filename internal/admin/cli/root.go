// Package cli implements the salesctl command-line administration client.
//
// The package is responsible for:
//   - the root command and its subcommands;
//   - flag parsing;
//   - loading the stored access token from the local credentials file;
//   - running commands and printing results.
//
// The entry point is Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdv-labs/api-sales/internal/admin/config"
)

// App is the state shared between salesctl commands: the server address
// and the credentials loaded from disk.
type App struct {
	// ServerURL is the sales backend base URL.
	ServerURL string

	// CredsPath points to the local credentials file.
	CredsPath string
	// Creds holds the loaded credentials. May be nil before
	// PersistentPreRunE runs.
	Creds *config.Credentials
}

// NewRootCmd builds the root command and registers subcommands.
//
// PersistentPreRunE resolves the credentials path and loads the stored
// access token so that every subcommand sees the same App state.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{
		ServerURL: "http://127.0.0.1:8080",
	}

	cmd := &cobra.Command{
		Use:   "salesctl",
		Short: "salesctl — administration client for the sales backend",
		Long: `salesctl.

Commands:
  login           Log in (stores the access token locally)
  user-create     Register a new user
  product-create  Add a product to the catalog
  product-list    List the catalog
  sale-create     Record a sale
  sale-list       List sales
  version         Show version and build date

Examples:

Login:
  salesctl login --email admin@example.com
  (prompts for the password, saves the token to the local config)

Record a sale:
  salesctl sale-create --user 1 --product 3 --product 5
`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			app.CredsPath = p

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return err
			}
			app.Creds = creds
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", "http://127.0.0.1:8080", "server base URL")

	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewUserCreateCmd(app))
	cmd.AddCommand(NewProductCreateCmd(app))
	cmd.AddCommand(NewProductListCmd(app))
	cmd.AddCommand(NewSaleCreateCmd(app))
	cmd.AddCommand(NewSaleListCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute runs the CLI. On error the message goes to stderr and the
// process exits with code 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
