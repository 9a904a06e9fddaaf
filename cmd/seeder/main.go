// Command seeder loads a YAML fixture of accounts and catalog products into
// a development database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/benx421/points-exchange/internal/config"
	"github.com/benx421/points-exchange/internal/db"
	"github.com/benx421/points-exchange/internal/service"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func main() {
	fixturePath := flag.String("fixture", "cmd/seeder/fixture.yaml", "path to the YAML fixture")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := cfg.Logger.NewLogger()

	fixture, err := LoadFixture(*fixturePath)
	if err != nil {
		logger.Error("invalid fixture", "error", err)
		os.Exit(1)
	}

	if err := seed(context.Background(), cfg, fixture, logger); err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func seed(ctx context.Context, cfg *config.Config, fixture *Fixture, logger *slog.Logger) error {
	database, err := db.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return err
	}

	if err := seedAccounts(ctx, cfg, database, fixture.Accounts, logger); err != nil {
		return err
	}

	return seedProducts(ctx, cfg.Database.DSN(), fixture.Products, logger)
}

// seedAccounts opens each account through the service layer. Opening
// balances are credited only for newly created accounts, so reruns are safe.
func seedAccounts(ctx context.Context, cfg *config.Config, database *db.DB, seeds []AccountSeed, logger *slog.Logger) error {
	runner := service.NewRunner(database, service.RunnerConfig{
		LockTimeout: cfg.Database.LockTimeout,
		Backoff:     cfg.App.TxRetryBackoff,
		MaxAttempts: cfg.App.TxMaxAttempts,
	}, logger)
	accounts := service.NewAccountService(database)
	deposits := service.NewDepositService(runner)

	var created int
	for _, s := range seeds {
		_, isNew, err := accounts.CreateAccount(ctx, s.OwnerID)
		if err != nil {
			return fmt.Errorf("creating account %s: %w", s.OwnerID, err)
		}
		if !isNew {
			continue
		}
		created++

		if s.OpeningBalance == 0 {
			continue
		}
		if _, err := deposits.Deposit(ctx, s.OwnerID, s.OpeningBalance, s.Memo); err != nil {
			return fmt.Errorf("crediting account %s: %w", s.OwnerID, err)
		}
	}

	logger.Info("seeded accounts", "created", created, "skipped", len(seeds)-created)
	return nil
}

// seedProducts bulk loads the catalog with COPY. An already populated
// catalog is left untouched.
func seedProducts(ctx context.Context, dsn string, seeds []ProductSeed, logger *slog.Logger) error {
	if len(seeds) == 0 {
		return nil
	}

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("unable to connect for bulk load: %w", err)
	}
	defer conn.Close(ctx)

	var existing int
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&existing); err != nil {
		return fmt.Errorf("counting products: %w", err)
	}
	if existing > 0 {
		logger.Info("catalog already seeded, skipping products", "count", existing)
		return nil
	}

	rows := make([][]any, 0, len(seeds))
	for _, p := range seeds {
		rows = append(rows, []any{uuid.New(), p.StoreID, p.Name, p.Memo, p.RequiredPoints, p.Stock})
	}

	copied, err := conn.CopyFrom(
		ctx,
		pgx.Identifier{"products"},
		[]string{"id", "store_id", "name", "memo", "required_points", "stock"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("bulk insert of products failed: %w", err)
	}

	logger.Info("seeded products", "count", copied)
	return nil
}
