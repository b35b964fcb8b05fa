package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewProductCreateCmd builds the product-create command.
//
// Example:
//
//	salesctl product-create --code P-001 --name "Coffee" --price 9.90
func NewProductCreateCmd(app *App) *cobra.Command {
	var code, name string
	var price float64

	cmd := &cobra.Command{
		Use:   "product-create",
		Short: "Add a product to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewAPIClient(app.ServerURL)
			product, err := c.CreateProduct(code, name, price)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "product created: id=%d code=%s\n", product.ID, product.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "product code")
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().Float64Var(&price, "price", 0, "product price")
	cmd.MarkFlagRequired("code")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("price")

	return cmd
}

// NewProductListCmd builds the product-list command.
func NewProductListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "product-list",
		Short: "List the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewAPIClient(app.ServerURL)
			products, err := c.ListProducts()
			if err != nil {
				return err
			}

			for _, p := range products {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%.2f\n", p.ID, p.Code, p.Name, p.Price)
			}
			return nil
		},
	}
}
