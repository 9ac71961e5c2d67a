package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/ecotech-backend/pkg/config"
	"github.com/angelmondragon/ecotech-backend/pkg/db"
	"github.com/angelmondragon/ecotech-backend/pkg/logger"
	"github.com/angelmondragon/ecotech-backend/pkg/migrate"
)

type options struct {
	dir     string
	source  string
	name    string
	version string
}

// offline commands touch only the migration files.
var offline = map[string]func(opts options) error{
	"create": func(opts options) error {
		if opts.name == "" {
			return fmt.Errorf("missing -name for create")
		}
		path, err := migrate.CreateSQLMigration(opts.dir, opts.name)
		if err != nil {
			return err
		}
		fmt.Println("created migration:", path)
		return nil
	},
	"validate": func(opts options) error {
		if err := migrate.Validate(sourceFor(opts)); err != nil {
			return err
		}
		fmt.Println("migration validation passed")
		return nil
	},
}

// online commands need a database connection.
var online = map[string]func(ctx context.Context, sqlDB *sql.DB, opts options) error{
	"version": func(ctx context.Context, sqlDB *sql.DB, opts options) error {
		if opts.version == "" {
			return fmt.Errorf("missing -version for version command")
		}
		return migrate.MigrateToVersion(ctx, sqlDB, sourceFor(opts), opts.version)
	},
}

var gooseCommands = []string{"up", "up-by-one", "down", "redo", "reset", "status"}

func init() {
	for _, command := range gooseCommands {
		online[command] = func(ctx context.Context, sqlDB *sql.DB, opts options) error {
			return migrate.Run(ctx, sqlDB, sourceFor(opts), command)
		}
	}
}

func main() {
	cmd := flag.String("cmd", "up", "migration command: "+strings.Join(commandNames(), "|"))
	var opts options
	flag.StringVar(&opts.dir, "dir", migrate.DefaultDir, "migrations directory used by create and -source=disk")
	flag.StringVar(&opts.source, "source", "embedded", "where to read migrations from: embedded|disk")
	flag.StringVar(&opts.name, "name", "", "migration name (for create)")
	flag.StringVar(&opts.version, "version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.Parse()

	_ = godotenv.Load()
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	if run, ok := offline[*cmd]; ok {
		if err := run(opts); err != nil {
			fail(err)
		}
		return
	}
	run, ok := online[*cmd]
	if !ok {
		fail(fmt.Errorf("unknown -cmd value %q", *cmd))
	}

	cfg, err := config.Load()
	requireResource(logg, "config", err)
	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"cmd":    *cmd,
		"source": opts.source,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(logg, "database", err)
	defer dbClient.Close()
	sqlDB, err := dbClient.DB().DB()
	requireResource(logg, "sql database", err)

	logg.Info(ctx, "migrate.start")
	if err := run(ctx, sqlDB, opts); err != nil {
		logg.Error(ctx, "migrate.failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "migrate.done")
}

func sourceFor(opts options) migrate.Source {
	if opts.source == "disk" {
		return migrate.Disk(opts.dir)
	}
	return migrate.Embedded()
}

func commandNames() []string {
	names := make([]string, 0, len(offline)+len(online))
	for name := range offline {
		names = append(names, name)
	}
	for name := range online {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func requireResource(logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "resource not working: "+resource, err)
	os.Exit(1)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
