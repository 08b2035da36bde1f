// testconn 連線到 MONGODB_URI 指定的資料庫並列出基本資訊，失敗時印出排除建議並以 1 結束
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"user-crud/internal/config"
	"user-crud/internal/database"
	"user-crud/internal/logger"

	"github.com/rs/zerolog"
)

type mongoConn interface {
	database.Conn
	CollectionNames(ctx context.Context) ([]string, error)
}

var (
	loadConfig = config.Load
	connect    = func(ctx context.Context, uri, dbName string, log zerolog.Logger) (mongoConn, error) {
		conn, err := database.ConnectMongo(ctx, uri, dbName, log)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
	exitFunc           = os.Exit
	stdout   io.Writer = os.Stdout
)

type options struct {
	timeout time.Duration
	verbose bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("testconn", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.DurationVar(&opts.timeout, "timeout", 30*time.Second, "connection timeout")
	fs.BoolVar(&opts.verbose, "v", false, "log driver events")
	err := fs.Parse(args)
	return opts, err
}

func yesNo(ok bool) string {
	if ok {
		return "Yes"
	}
	return "No"
}

func printFailure(w io.Writer, err error) {
	fmt.Fprintln(w, "Connection failed:")
	fmt.Fprintf(w, "   - Error: %v\n", err)

	var ce *database.ConnectError
	if !errors.As(err, &ce) {
		return
	}
	hints := database.Hints(ce.Kind)
	if len(hints) == 0 {
		return
	}
	fmt.Fprintln(w, "Troubleshooting tips:")
	for i, h := range hints {
		fmt.Fprintf(w, "   %d. %s\n", i+1, h)
	}
}

// run 回傳 process exit code
func run(ctx context.Context, args []string, w io.Writer) int {
	opts, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(w, "invalid flags: %v\n", err)
		return 2
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "invalid configuration: %v\n", err)
		return 1
	}
	log := zerolog.Nop()
	if opts.verbose {
		log = logger.New("debug", "development")
	}

	fmt.Fprintln(w, "Testing MongoDB connection...")
	fmt.Fprintln(w, "Connection details:")
	fmt.Fprintf(w, "   - URI provided: %s\n", yesNo(cfg.MongoURI != ""))
	if cfg.MongoURI == "" {
		fmt.Fprintln(w, "MONGODB_URI is not set in .env file")
		return 1
	}
	fmt.Fprintf(w, "   - URI format: %s\n", database.MaskURI(cfg.MongoURI))

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	conn, err := connect(ctx, cfg.MongoURI, cfg.MongoDatabase, log)
	if err != nil {
		printFailure(w, err)
		return 1
	}

	fmt.Fprintln(w, "Connection successful!")
	fmt.Fprintln(w, "Connection info:")
	fmt.Fprintf(w, "   - Host: %s\n", conn.Host())
	fmt.Fprintf(w, "   - Database: %s\n", conn.Name())
	fmt.Fprintf(w, "   - Ready State: %d\n", conn.ReadyState())

	names, err := conn.CollectionNames(ctx)
	if err != nil {
		_ = conn.Close(context.Background())
		printFailure(w, err)
		return 1
	}
	fmt.Fprintf(w, "Available collections: %d\n", len(names))

	if err := conn.Close(context.Background()); err != nil {
		printFailure(w, err)
		return 1
	}
	fmt.Fprintln(w, "Connection closed successfully")
	return 0
}

func main() {
	if code := run(context.Background(), os.Args[1:], stdout); code != 0 {
		exitFunc(code)
	}
}
