// seed carga datos iniciales en PostgreSQL: el catálogo de códigos KOAJ y el
// usuario administrador.
//
// Uso:
//
//	go run ./cmd/seed migrate
//	go run ./cmd/seed codes [--file codigos.csv]
//	ADMIN_PASSWORD=... go run ./cmd/seed admin --email admin@tienda.co --name "Administrador"
//
// Sin --file usa el catálogo embebido koaj_codes.csv.
package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/alegra-reports-api/internal/application/auth"
	"github.com/jhoicas/alegra-reports-api/internal/application/catalog"
	"github.com/jhoicas/alegra-reports-api/internal/domain/repository"
	"github.com/jhoicas/alegra-reports-api/internal/infrastructure/postgres"
	"github.com/jhoicas/alegra-reports-api/pkg/config"
	"github.com/jhoicas/alegra-reports-api/pkg/logger"
)

//go:embed koaj_codes.csv
var defaultCodes []byte

func main() {
	app := &cli.App{
		Name:  "seed",
		Usage: "carga inicial de códigos KOAJ y administrador",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "aplica las migraciones pendientes",
				Action: migrate,
			},
			{
				Name:  "codes",
				Usage: "crea o actualiza los códigos KOAJ desde un CSV o Excel",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "archivo con columnas code, category, applies_to, description"},
				},
				Action: seedCodes,
			},
			{
				Name:  "admin",
				Usage: "crea el usuario administrador o restablece su contraseña",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", EnvVars: []string{"ADMIN_EMAIL"}, Required: true},
					&cli.StringFlag{Name: "name", EnvVars: []string{"ADMIN_NAME"}, Value: "Administrador"},
					&cli.StringFlag{Name: "password", EnvVars: []string{"ADMIN_PASSWORD"}, Required: true},
				},
				Action: seedAdmin,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return pool, nil
}

func migrate(c *cli.Context) error {
	pool, err := openPool(c.Context)
	if err != nil {
		return err
	}
	defer pool.Close()
	log := logger.New(logger.Config{Env: "development", Service: "seed"})
	return postgres.Migrate(c.Context, pool, log.Component("migrations"))
}

// withTx abre el pool y ejecuta fn dentro de una transacción.
func withTx(ctx context.Context, fn func(users repository.UserRepository, codes repository.KoajCodeRepository) error) error {
	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()
	return postgres.NewTxRunner(pool).Run(ctx, fn)
}

func seedCodes(c *cli.Context) error {
	name, content := "koaj_codes.csv", defaultCodes
	if path := c.String("file"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("leer %s: %w", path, err)
		}
		name, content = path, b
	}
	rows, err := parseCodes(name, content)
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{Env: "development", Service: "seed"})
	var res importResult
	err = withTx(c.Context, func(_ repository.UserRepository, codes repository.KoajCodeRepository) error {
		res, err = importCodes(c.Context, catalog.NewUseCase(codes, log.Component("koaj")), rows)
		return err
	})
	if err != nil {
		return err
	}
	log.Info().Int("creados", res.Created).Int("actualizados", res.Updated).Msg("catálogo KOAJ cargado")
	return nil
}

func seedAdmin(c *cli.Context) error {
	log := logger.New(logger.Config{Env: "development", Service: "seed"})
	var created bool
	err := withTx(c.Context, func(users repository.UserRepository, _ repository.KoajCodeRepository) error {
		var err error
		created, err = auth.NewUserUseCase(users, log.Component("users")).
			EnsureAdmin(c.Context, c.String("email"), c.String("name"), c.String("password"))
		return err
	})
	if err != nil {
		return err
	}
	msg := "contraseña del administrador restablecida"
	if created {
		msg = "administrador creado"
	}
	log.Info().Str("email", c.String("email")).Msg(msg)
	return nil
}
