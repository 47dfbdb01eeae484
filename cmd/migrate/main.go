package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"leo-chat/config"
	"leo-chat/internal/repository"
	"leo-chat/pkg/database"
	"leo-chat/pkg/logger"
)

const usage = `
Leo Chat - Database CLI Tool

Usage:
  migrate [flags] [command]

Commands:
  up          Create or update the chat tables and indexes
  status      Show database connection status

Flags:
  -timeout duration   Give up waiting for the database after this long (default 1m)
`

func main() {
	timeout := flag.Duration("timeout", time.Minute, "Give up waiting for the database after this long")
	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	l := logger.New(cfg.LogMode)
	defer l.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := database.Connect(ctx, cfg, l)
	if err != nil {
		l.Errorf("failed to connect to database: %v", err)
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "up":
		if err := repository.InitSchema(db); err != nil {
			l.Errorf("migration failed: %v", err)
			os.Exit(1)
		}
		l.Infof("chat schema is up to date")
	case "status":
		if err := database.HealthCheck(ctx, db); err != nil {
			l.Errorf("database unhealthy: %v", err)
			os.Exit(1)
		}
		l.Infof("database %s on %s:%s is reachable", cfg.DBName, cfg.DBHost, cfg.DBPort)
	default:
		flag.Usage()
		os.Exit(1)
	}
}
