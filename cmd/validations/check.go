package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	validations "github.com/reoring/validations"
	"github.com/reoring/validations/internal/logger"
	"github.com/reoring/validations/source"
)

var errSchemaRequired = errors.New("a schema is required (--schema or VALIDATIONS_SCHEMA)")

func (a *app) checkCmd() *cobra.Command {
	var (
		inputPath string
		format    string
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate one payload and print the result",
		Long: `Validate one JSON or YAML object against a schema document and print the
result as JSON. Exit status is 0 when valid, 1 when invalid and 2 on usage
errors or predicate faults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.check(inputPath, format)
		},
	}
	cmd.Flags().String("schema", "", "schema document (YAML)")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "payload file, - for stdin")
	cmd.Flags().StringVar(&format, "format", "", "payload format (json, yaml); default from file extension, else json")
	return cmd
}

func (a *app) check(inputPath, format string) error {
	s, err := a.loadSchema()
	if err != nil {
		return err
	}
	in, err := a.readInput(inputPath, format)
	if err != nil {
		return &exitError{code: exitFault, err: err}
	}
	res, err := s.Validate(in)
	if err != nil {
		a.log.Error("validation fault", logger.Fault(err), logger.Schema(a.cfg.Schema))
		return &exitError{code: exitFault, err: err}
	}
	out, err := j.MarshalIndent(res, "", "  ")
	if err != nil {
		return &exitError{code: exitFault, err: err}
	}
	fmt.Fprintln(a.stdout, string(out))
	if !res.Success {
		return &exitError{code: exitInvalid}
	}
	return nil
}

func (a *app) readInput(path, format string) (validations.Input, error) {
	var r io.Reader = a.stdin
	if path != "-" && path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "json"
		}
	}
	switch strings.ToLower(format) {
	case "json":
		return source.JSONReader(r)
	case "yaml", "yml":
		return source.YAMLReader(r)
	default:
		return nil, fmt.Errorf("unknown payload format %q", format)
	}
}
