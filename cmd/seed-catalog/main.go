// Command seed-catalog loads the product catalog and admin API keys into
// PostgreSQL. Products come from a JSON file (optionally gzip-compressed) or
// the embedded seed data when no file is given.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/blissbakes/bakehouse/db"
	"github.com/blissbakes/bakehouse/internal/auth"
	"github.com/blissbakes/bakehouse/internal/catalog"
	"github.com/blissbakes/bakehouse/internal/storage/postgres"
)

// upsertWorkers bounds concurrent product upserts against the pool.
const upsertWorkers = 4

type textJSON struct {
	EN string `json:"en"`
	BN string `json:"bn"`
}

type productJSON struct {
	ID          int64           `json:"id"`
	Slug        string          `json:"slug"`
	Name        textJSON        `json:"name"`
	Description textJSON        `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Calories    int             `json:"calories"`
	Image       string          `json:"image"`
	Ingredients []string        `json:"ingredients"`
	Tags        []string        `json:"tags"`
}

func main() {
	var (
		databaseURL  string
		productsFile string
		apiKey       string
		apiKeyPepper string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "", "path to products JSON or JSON.gz file (default: embedded seed)")
	flag.StringVar(&apiKey, "api-key", "", "admin API key to seed (or BAKEHOUSE_SEED_API_KEY env)")
	flag.StringVar(&apiKeyPepper, "api-key-pepper", "", "HMAC pepper for API key hashing (or BAKEHOUSE_API_KEY_PEPPER env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}
	if apiKey == "" {
		apiKey = os.Getenv("BAKEHOUSE_SEED_API_KEY")
	}
	if apiKeyPepper == "" {
		apiKeyPepper = os.Getenv("BAKEHOUSE_API_KEY_PEPPER")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile, apiKey, apiKeyPepper); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, productsFile, apiKey, pepper string) error {
	products, err := readProducts(productsFile)
	if err != nil {
		return errors.Wrap(err, "read products")
	}

	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedProducts(ctx, postgres.NewCatalogRepository(pool), products); err != nil {
		return errors.Wrap(err, "seed products")
	}

	if apiKey != "" {
		if err := seedAPIKey(ctx, postgres.NewAPIKeyRepository(pool), apiKey, pepper); err != nil {
			return errors.Wrap(err, "seed api key")
		}
	}

	return nil
}

// readProducts parses the catalog from path, transparently decompressing .gz
// files. An empty path falls back to the embedded seed.
func readProducts(path string) ([]productJSON, error) {
	var data []byte
	if path == "" {
		slog.Info("using embedded seed catalog")
		data = db.SeedProducts
	} else {
		slog.Info("reading products file", slog.String("path", path))

		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open %s", path)
		}
		defer func() { _ = f.Close() }()

		var r io.Reader = f
		if strings.HasSuffix(path, ".gz") {
			gz, err := pgzip.NewReader(f)
			if err != nil {
				return nil, errors.Wrapf(err, "create gzip reader for %s", path)
			}
			defer func() { _ = gz.Close() }()
			r = gz
		}

		if data, err = io.ReadAll(r); err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
	}

	var products []productJSON
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, errors.Wrap(err, "parse products JSON")
	}
	return products, nil
}

func seedProducts(ctx context.Context, repo *postgres.CatalogRepository, products []productJSON) error {
	slog.Info("upserting products", slog.Int("count", len(products)))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(upsertWorkers)

	for i, p := range products {
		g.Go(func() error {
			product := catalog.Product{
				ID:          p.ID,
				Slug:        p.Slug,
				Name:        catalog.Text{EN: p.Name.EN, BN: p.Name.BN},
				Description: catalog.Text{EN: p.Description.EN, BN: p.Description.BN},
				Price:       p.Price,
				Calories:    p.Calories,
				Image:       p.Image,
				Ingredients: p.Ingredients,
				Tags:        p.Tags,
			}
			if err := repo.Upsert(ctx, product, i); err != nil {
				return errors.Wrapf(err, "upsert product %s", p.Slug)
			}

			slog.Info("upserted product", slog.String("slug", p.Slug), slog.String("name", p.Name.EN))
			return nil
		})
	}

	return g.Wait()
}

func seedAPIKey(ctx context.Context, repo *postgres.APIKeyRepository, apiKey, pepper string) error {
	slog.Info("seeding admin API key")

	hash := auth.HashKey([]byte(pepper), apiKey)
	if err := repo.Upsert(ctx, uuid.New().String(), hash, "Seeded admin key"); err != nil {
		return errors.Wrap(err, "upsert admin API key")
	}

	slog.Info("upserted API key", slog.String("name", "Seeded admin key"))
	return nil
}
