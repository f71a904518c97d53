package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fixora/auditguard/application/port/inbound"
	"github.com/fixora/auditguard/infrastructure/config"
)

func newDemoCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Create a sample product, reprice it and show a rejected one",
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

			product, err := a.products.Create(a.ctx, inbound.CreateProductRequest{
				ObjectName: "Product1",
				Name:       "Laptop",
				Price:      99,
				Quantity:   10,
			})
			if err != nil {
				a.Close()
				return err
			}
			fmt.Fprintln(out, product.Name)
			fmt.Fprintln(out, product.Price)
			fmt.Fprintln(out, product.Quantity)

			product, err = a.products.Reprice(a.ctx, inbound.RepriceRequest{ObjectName: "Product1", Price: 1200})
			if err != nil {
				a.Close()
				return err
			}
			fmt.Fprintln(out, product.TotalSum)

			_, err = a.products.Create(a.ctx, inbound.CreateProductRequest{
				ObjectName: "Product2",
				Name:       "L",
				Price:      999,
				Quantity:   10,
			})
			if err != nil {
				fmt.Fprintf(out, "rejected: %v\n", err)
			}

			return a.finish(out)
		},
	}
}
