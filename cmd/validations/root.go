package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	validations "github.com/reoring/validations"
	"github.com/reoring/validations/internal/config"
	"github.com/reoring/validations/internal/logger"
	"github.com/reoring/validations/schemadoc"
)

// app is the state shared by subcommands once the root has loaded config.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	envFile string
	cfg     config.Config
	log     *slog.Logger
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:           "validations",
		Short:         "Validate payloads against declarative schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading VALIDATIONS_* variables")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-format", "", "log format (text, json)")
	pf.String("lang", "", "message language")
	pf.String("catalog", "", "YAML message catalog")

	cmd.AddCommand(a.checkCmd(), a.serveCmd(), a.predicatesCmd())
	return cmd
}

// setup loads config, applies flag overrides and installs messages and the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("log-level", &cfg.LogLevel)
	override("log-format", &cfg.LogFormat)
	override("lang", &cfg.Lang)
	override("catalog", &cfg.Catalog)
	override("schema", &cfg.Schema)
	override("addr", &cfg.Addr)
	if flags.Changed("max-body-bytes") {
		cfg.MaxBodyBytes, _ = flags.GetInt64("max-body-bytes")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.ApplyMessages(); err != nil {
		return err
	}
	a.cfg = cfg
	a.log = cfg.Logger(logger.WithOutput(a.stderr))
	return nil
}

func (a *app) loadSchema() (*validations.Schema, error) {
	if a.cfg.Schema == "" {
		return nil, &exitError{code: exitFault, err: errSchemaRequired}
	}
	s, err := schemadoc.LoadFile(a.cfg.Schema)
	if err != nil {
		return nil, err
	}
	a.log.Debug("schema loaded", logger.Schema(a.cfg.Schema), slog.Int("fields", s.Len()))
	return s, nil
}
