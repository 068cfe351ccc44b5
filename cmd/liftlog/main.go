package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/myrjola/liftlog/internal/coach"
	"github.com/myrjola/liftlog/internal/envstruct"
	"github.com/myrjola/liftlog/internal/errors"
	"github.com/myrjola/liftlog/internal/logging"
	"github.com/myrjola/liftlog/internal/sqlite"
	"github.com/myrjola/liftlog/internal/workout"
)

type application struct {
	logger         *slog.Logger
	workoutService *workout.Service
	coach          *coach.Coach
	cfg            config
	now            func() time.Time
}

type config struct {
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"LIFTLOG_SQLITE_URL" envDefault:"./liftlog.sqlite3"`
	// OpenAIAPIKey enables the coach. Without it the coach answers with a fixed message.
	OpenAIAPIKey string `env:"LIFTLOG_OPENAI_API_KEY" envDefault:""`
	// LogLevel is one of debug, info, warn and error.
	LogLevel string `env:"LIFTLOG_LOG_LEVEL" envDefault:"info"`
	// PlanHorizonDays is how many days plan autofill covers by default.
	PlanHorizonDays int `env:"LIFTLOG_PLAN_HORIZON_DAYS" envDefault:"60"`
}

func run(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	lookupEnv func(string) (string, bool),
	args []string,
) (err error) {
	defer func() {
		if excp := recover(); excp != nil {
			err = errors.Join(err, errors.DecoratePanic(excp))
		}
	}()

	var cancel context.CancelFunc
	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "parse log level")
	}
	logger := logging.NewLogger(stderr, level)

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		// Stop the optimizer before the connections go away.
		cancel()
		if closeErr := db.Close(); closeErr != nil {
			err = errors.Join(err, errors.Wrap(closeErr, "close db"))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelDebug, "connected to db")

	app := application{
		logger:         logger,
		workoutService: workout.NewService(db, logger, time.Now),
		coach:          coach.NewFromAPIKey(cfg.OpenAIAPIKey, logger),
		cfg:            cfg,
		now:            time.Now,
	}

	root := app.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err = root.ExecuteContext(ctx); err != nil {
		return errors.Wrap(err, "execute command")
	}
	return nil
}

func main() {
	ctx := context.Background()
	if err := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.LookupEnv, os.Args[1:]); err != nil {
		logger := logging.NewLogger(os.Stderr, slog.LevelError)
		logger.LogAttrs(ctx, slog.LevelError, "command failed", errors.SlogError(err))
		os.Exit(1)
	}
}
