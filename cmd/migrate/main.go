package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"icms/internal/handler/middleware"
	"icms/internal/infra/db"
	"icms/internal/pkg/config"
)

func main() {
	force := flag.Int("force", -1, "force the schema version without running migrations")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: migrate [-force N] up|down|version\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(flag.Arg(0), *force); err != nil {
		slog.Error("migration failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(command string, force int) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	middleware.NewLogger(cfg.Log)

	sqlDB, err := db.OpenSQL(cfg.DB)
	if err != nil {
		return err
	}

	migrator, err := db.NewMigrator(sqlDB, cfg.DB.MigrationsPath)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer func() {
		if cerr := migrator.Close(); cerr != nil {
			slog.Warn("failed to close migrator", "error", cerr.Error())
		}
	}()

	if force >= 0 {
		slog.Info("forcing schema version", "version", force)
		return migrator.Force(force)
	}

	switch command {
	case "up", "":
		return migrator.Up()
	case "down":
		return migrator.Down()
	case "version":
		v, dirty, err := migrator.Version()
		if err != nil {
			return err
		}
		slog.Info("schema version", "version", v, "dirty", dirty)
		return nil
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}
