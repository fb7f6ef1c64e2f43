package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/infrastructure/config"
	"github.com/vsinha/plantrecon/pkg/infrastructure/logging"
	"github.com/vsinha/plantrecon/pkg/interfaces/cli/commands"
)

type command interface {
	Execute(ctx context.Context) error
}

// common holds the flags every subcommand accepts. Only flags given on the
// command line override the config file and environment.
type common struct {
	configPath string
	driver     string
	dir        string
	dsn        string
	logLevel   string
	format     string
	outputDir  string
	addr       string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "YAML or TOML config file")
	fs.StringVar(&c.driver, "store", "", "Store driver: files or sqlite")
	fs.StringVar(&c.dir, "dir", "", "Scenario directory for the files driver")
	fs.StringVar(&c.dsn, "dsn", "", "Database path for the sqlite driver")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func (c *common) load(fs *flag.FlagSet) (config.Config, error) {
	return config.Load(c.configPath, func(cfg *config.Config) {
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "store":
				cfg.Store.Driver = c.driver
			case "dir":
				cfg.Store.Dir = c.dir
			case "dsn":
				cfg.Store.DSN = c.dsn
			case "log-level":
				cfg.App.LogLevel = c.logLevel
			case "format":
				cfg.Output.Format = c.format
			case "output":
				cfg.Output.Dir = c.outputDir
			case "addr":
				cfg.Server.Addr = c.addr
			}
		})
	})
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		commands.ShowHelp(os.Stdout)
		return nil
	}
	name, args := args[0], args[1:]
	if name == "help" || name == "-help" || name == "--help" || name == "-h" {
		commands.ShowHelp(os.Stdout)
		return nil
	}

	// A missing .env is not an error.
	_ = godotenv.Load()

	var opts common
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() { commands.ShowHelp(os.Stderr) }
	opts.register(fs)

	var build func(env *commands.Environment) command

	switch name {
	case "reconcile":
		var rc commands.ReconcileConfig
		fs.StringVar(&rc.Category, "category", "", "Category filter (substring, case-insensitive)")
		fs.BoolVar(&rc.Dedupe, "dedupe", false, "Keep the first row of each duplicated drawing number")
		fs.BoolVar(&rc.Verbose, "verbose", false, "Enable verbose output")
		fs.StringVar(&opts.format, "format", "", "Output format: text, json, csv, xlsx")
		fs.StringVar(&opts.outputDir, "output", "", "Output directory for results")
		build = func(env *commands.Environment) command { return commands.NewReconcileCommand(env, rc) }
	case "import":
		var ic commands.ImportConfig
		fs.StringVar(&ic.DrawingsFile, "drawings", "", "Drawing register (.csv or .xlsx)")
		fs.StringVar(&ic.MaterialsFile, "materials", "", "Material master (.csv or .xlsx)")
		fs.StringVar(&ic.InstallationsFile, "installations", "", "Installation register (.csv or .xlsx)")
		fs.BoolVar(&ic.ConfirmDedupe, "confirm-dedupe", false, "Drop duplicate drawing numbers, keeping the first row")
		build = func(env *commands.Environment) command { return commands.NewImportCommand(env, ic) }
	case "receive", "issue":
		lc := commands.LedgerConfig{Type: entities.Receipt}
		if name == "issue" {
			lc.Type = entities.Issue
			fs.StringVar(&lc.DrawingNumber, "drawing", "", "Drawing the material is issued for")
		}
		fs.StringVar(&lc.IdentCode, "ident", "", "Material ident code")
		fs.Int64Var(&lc.Quantity, "qty", 0, "Positive quantity")
		fs.StringVar(&lc.Date, "date", "", "Transaction date YYYY-MM-DD (default: today)")
		fs.StringVar(&lc.Remark, "remark", "", "Free-text remark")
		build = func(env *commands.Environment) command { return commands.NewLedgerCommand(env, lc) }
	case "serve":
		fs.StringVar(&opts.addr, "addr", "", "Listen address")
		build = func(env *commands.Environment) command { return commands.NewServeCommand(env, env.Config.Server.Addr) }
	default:
		commands.ShowHelp(os.Stderr)
		return fmt.Errorf("unknown command: %s", name)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := opts.load(fs)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(ctx, logging.New(os.Stderr, level))

	env, err := commands.OpenEnvironment(ctx, cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	return build(env).Execute(ctx)
}
