// fairctl is the operator CLI for the fairprice service.
//
// Usage:
//
//	fairctl migrate
//	fairctl score --eco A --nutri B --brand "Alnatura"
//	fairctl price set --product 4001 --store "REWE Drochtersen" --price 1.29
//	fairctl store add --chain REWE --location Drochtersen --city Drochtersen
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/wirkaufenfair/fairprice/internal/config"
	"github.com/wirkaufenfair/fairprice/internal/database"
	"github.com/wirkaufenfair/fairprice/internal/dto"
	"github.com/wirkaufenfair/fairprice/internal/ethics"
	"github.com/wirkaufenfair/fairprice/internal/logging"
	"github.com/wirkaufenfair/fairprice/internal/models"
	"github.com/wirkaufenfair/fairprice/internal/repository"
	"github.com/wirkaufenfair/fairprice/internal/services"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "fairctl",
		Usage:   "Operate the fairprice database and scoring tables",
		Version: version,
		Before: func(c *cli.Context) error {
			logging.Setup(config.Load().AppEnv)
			return nil
		},
		Commands: []*cli.Command{
			migrateCommand(),
			scoreCommand(),
			priceCommand(),
			storeCommand(),
		},
	}
}

// =============================================================================
// MIGRATE
// =============================================================================

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or update all tables",
		Action: func(c *cli.Context) error {
			if err := connect(); err != nil {
				return err
			}
			defer database.Close()

			if err := database.Migrate(); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "migrations applied")
			return nil
		},
	}
}

// =============================================================================
// SCORE
// =============================================================================

func scoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "score",
		Usage: "Compute the fairness score for a product",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "eco", Usage: "Eco-Score grade (A-E)"},
			&cli.StringFlag{Name: "nutri", Usage: "Nutri-Score grade (A-E)"},
			&cli.StringFlag{Name: "brand", Usage: "Brand or manufacturer"},
			&cli.StringFlag{Name: "product-name", Usage: "Product name, searched for a known brand when --brand is empty"},
		},
		Action: func(c *cli.Context) error {
			result := services.NewFairnessService(ethics.Default()).Score(dto.FairnessQuery{
				Ecoscore:    c.String("eco"),
				Nutriscore:  c.String("nutri"),
				Brand:       c.String("brand"),
				ProductName: c.String("product-name"),
			})
			return writeJSON(c.App.Writer, result)
		},
	}
}

// =============================================================================
// PRICE
// =============================================================================

func priceCommand() *cli.Command {
	return &cli.Command{
		Name:  "price",
		Usage: "Manage canonical product-location prices",
		Subcommands: []*cli.Command{
			{
				Name:  "set",
				Usage: "Set the canonical price of a product at a store",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "product", Usage: "Product identifier (EAN)", Required: true},
					&cli.StringFlag{Name: "store", Usage: "Full store name", Required: true},
					&cli.Float64Flag{Name: "price", Usage: "Price in EUR", Required: true},
					&cli.Float64Flag{Name: "size-amount", Usage: "Package size"},
					&cli.StringFlag{Name: "size-unit", Usage: "Package size unit (g, kg, ml, l, Stück)"},
				},
				Action: func(c *cli.Context) error {
					if err := connect(); err != nil {
						return err
					}
					defer database.Close()

					p := services.CanonicalPrice{
						ProductIdentifier: c.String("product"),
						StoreName:         c.String("store"),
						Price:             c.Float64("price"),
					}
					if c.IsSet("size-amount") {
						amount := c.Float64("size-amount")
						p.SizeAmount = &amount
					}
					if c.IsSet("size-unit") {
						unit := c.String("size-unit")
						p.SizeUnit = &unit
					}

					loc, err := catalog().SetCanonicalPrice(context.Background(), p)
					if err != nil {
						return err
					}
					return writeJSON(c.App.Writer, loc)
				},
			},
		},
	}
}

// =============================================================================
// STORE
// =============================================================================

func storeCommand() *cli.Command {
	return &cli.Command{
		Name:  "store",
		Usage: "Manage the store registry",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Register a store",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "chain", Usage: "Chain name, e.g. REWE", Required: true},
					&cli.StringFlag{Name: "location", Usage: "Location within the chain, e.g. Drochtersen", Required: true},
					&cli.StringFlag{Name: "address", Usage: "Street address"},
					&cli.StringFlag{Name: "postal-code", Usage: "Postal code"},
					&cli.StringFlag{Name: "city", Usage: "City"},
					&cli.Float64Flag{Name: "lat", Usage: "Latitude"},
					&cli.Float64Flag{Name: "lng", Usage: "Longitude"},
				},
				Action: func(c *cli.Context) error {
					if err := connect(); err != nil {
						return err
					}
					defer database.Close()

					st := &models.Store{
						Chain:      c.String("chain"),
						Location:   c.String("location"),
						Address:    c.String("address"),
						PostalCode: c.String("postal-code"),
						City:       c.String("city"),
					}
					if c.IsSet("lat") && c.IsSet("lng") {
						lat, lng := c.Float64("lat"), c.Float64("lng")
						st.Latitude, st.Longitude = &lat, &lng
					}

					registered, err := catalog().RegisterStore(context.Background(), st)
					if err != nil {
						return err
					}
					return writeJSON(c.App.Writer, registered)
				},
			},
		},
	}
}

func connect() error {
	cfg := config.Load()
	if err := database.Connect(cfg); err != nil {
		return err
	}
	return nil
}

func catalog() *services.CatalogService {
	return services.NewCatalogService(repository.NewGormStore(database.DB), config.Load().DBTimeout)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
