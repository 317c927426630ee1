package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"gitlab.com/dirk.krummacker/contacts-app/internal/config"
)

// Usage example on the command line:
// > DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 go run main.go -file=../../scripts/database.sql
func main() {
	filePtr := flag.String("file", "scripts/database.sql", "the sql file to execute")
	timeoutPtr := flag.Duration("timeout", 30*time.Second, "time allowed for connecting and executing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}
	if cfg.DB.Driver == config.DriverMemory {
		slog.Info("nothing to do for the in-memory store")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutPtr)
	defer cancel()
	if err := apply(ctx, cfg, *filePtr); err != nil {
		slog.Error("Cannot apply schema", "file", *filePtr, "error", err)
		os.Exit(1)
	}
}

func apply(ctx context.Context, cfg *config.Config, file string) error {
	readFile, err := os.Open(file) // nosemgrep
	if err != nil {
		return err
	}
	defer readFile.Close()

	stmts, err := statements(readFile)
	if err != nil {
		return err
	}

	db, err := sqlx.ConnectContext(ctx, cfg.DB.Driver, cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("statement %d: %w", i+1, err)
		}
	}
	slog.Info("schema applied", "file", file, "statements", len(stmts))
	return nil
}

// statements splits a SQL script into statements. A statement ends with the line that contains
// its semicolon; lines starting with "--" are skipped.
func statements(r io.Reader) ([]string, error) {
	var stmts []string
	fileScanner := bufio.NewScanner(r)
	fileScanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	for fileScanner.Scan() {
		line := strings.TrimSpace(fileScanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			stmts = append(stmts, strings.TrimSpace(builder.String()))
			builder = strings.Builder{}
		}
	}
	if err := fileScanner.Err(); err != nil {
		return nil, err
	}
	if rest := strings.TrimSpace(builder.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts, nil
}
