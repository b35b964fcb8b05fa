package cli

import (
	"github.com/spf13/cobra"

	"github.com/pdv-labs/api-sales/internal/admin/api"
	"github.com/pdv-labs/api-sales/internal/admin/config"
)

// seams for tests
var (
	NewAPIClient    = api.NewClient
	SaveCredentials = config.Save
	ReadPassword    = func(cmd *cobra.Command, fromStdin bool) (string, error) {
		return readPassword(cmd, fromStdin)
	}
)
