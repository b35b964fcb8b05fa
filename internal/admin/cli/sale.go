package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// NewSaleCreateCmd builds the sale-create command. Requires a prior
// login; the stored access token authorizes the request.
//
// Example:
//
//	salesctl sale-create --user 1 --product 3 --product 5
func NewSaleCreateCmd(app *App) *cobra.Command {
	var user string
	var products []string

	cmd := &cobra.Command{
		Use:   "sale-create",
		Short: "Record a sale",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds.AccessToken == "" {
				return errors.New("not logged in; run: salesctl login")
			}

			c := NewAPIClient(app.ServerURL)
			sale, err := c.CreateSale(user, products, app.Creds.AccessToken)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "sale created: id=%d products=%d\n", sale.ID, len(sale.Products))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "buyer user id")
	cmd.Flags().StringArrayVar(&products, "product", nil, "product id (repeatable)")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("product")

	return cmd
}

// NewSaleListCmd builds the sale-list command.
func NewSaleListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sale-list",
		Short: "List sales",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds.AccessToken == "" {
				return errors.New("not logged in; run: salesctl login")
			}

			c := NewAPIClient(app.ServerURL)
			sales, err := c.ListSales(app.Creds.AccessToken)
			if err != nil {
				return err
			}

			for _, s := range sales {
				buyer := "-"
				if s.User != nil {
					buyer = s.User.Email
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d product(s)\n", s.ID, buyer, len(s.Products))
			}
			return nil
		},
	}
}
