package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fixora/auditguard/application/port/inbound"
	"github.com/fixora/auditguard/infrastructure/config"
)

func newCreateCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var (
		req     inbound.CreateProductRequest
		reprice float64
		sell    int
		restock int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create one product and optionally change it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			product, err := a.products.Create(a.ctx, req)
			if err == nil && cmd.Flags().Changed("reprice") {
				product, err = a.products.Reprice(a.ctx, inbound.RepriceRequest{ObjectName: product.ObjectName, Price: reprice})
			}
			if err == nil && cmd.Flags().Changed("sell") {
				product, err = a.products.Sell(a.ctx, inbound.StockRequest{ObjectName: product.ObjectName, Units: sell})
			}
			if err == nil && cmd.Flags().Changed("restock") {
				product, err = a.products.Restock(a.ctx, inbound.StockRequest{ObjectName: product.ObjectName, Units: restock})
			}
			if err != nil {
				// The audit lines written so far are still worth showing.
				_ = a.finish(out)
				return err
			}

			printProduct(out, product)
			return a.finish(out)
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "product name")
	cmd.Flags().Float64Var(&req.Price, "price", 0, "product price")
	cmd.Flags().IntVar(&req.Quantity, "quantity", 0, "product quantity")
	cmd.Flags().StringVar(&req.ObjectName, "obj-name", "", "display name used in audit lines")
	cmd.Flags().Float64Var(&reprice, "reprice", 0, "set a new price after creation")
	cmd.Flags().IntVar(&sell, "sell", 0, "sell units after creation")
	cmd.Flags().IntVar(&restock, "restock", 0, "restock units after creation")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func printProduct(out io.Writer, p *inbound.ProductResponse) {
	fmt.Fprintf(out, "obj_name: %s\n", p.ObjectName)
	fmt.Fprintf(out, "name: %s\n", p.Name)
	fmt.Fprintf(out, "price: %v\n", p.Price)
	fmt.Fprintf(out, "quantity: %d\n", p.Quantity)
	fmt.Fprintf(out, "total_sum: %v\n", p.TotalSum)
}
