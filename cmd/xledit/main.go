// Package main provides the CLI entry point for xledit-go.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xledit-go/pkg/xledit"
)

// app carries flag values and the resolved options for one invocation.
type app struct {
	configFile string
	sheetLabel string
	rawValues  bool
	password   string
	verbose    bool

	opts xledit.Options
	log  *log.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{log: log.New(io.Discard, "xledit: ", log.LstdFlags)}

	rootCmd := &cobra.Command{
		Use:   "xledit",
		Short: "View and edit the first sheet of Excel files",
		Long: `xledit-go loads the first worksheet of an .xlsx file as a grid of text
cells, applies edits and writes the grid back as a single-sheet workbook.
Formulas, styles and number types are not preserved.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: ./.xledit.yaml or ~/.xledit.yaml)")
	pf.StringVar(&a.sheetLabel, "sheet-label", xledit.DefaultSheetLabel, "sheet name used when saving")
	pf.BoolVar(&a.rawValues, "raw", false, "read stored values instead of formatted text")
	pf.StringVar(&a.password, "password", "", "password for encrypted workbooks")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log progress to stderr")

	rootCmd.AddCommand(
		newShowCmd(a),
		newInfoCmd(a),
		newSetCmd(a),
		newHeaderCmd(a),
	)
	return rootCmd
}

// setup loads configuration once flags are parsed.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if a.verbose {
		a.log.SetOutput(cmd.ErrOrStderr())
	}

	v, err := loadConfig(a.configFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		a.log.Printf("using config %s", used)
	}

	a.opts = optionsFrom(v)
	return nil
}

// load reads path into a new session named after the file.
func (a *app) load(path string) (*xledit.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	s := xledit.NewSession(a.opts)
	if err := s.Load(data, filepath.Base(path)); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	a.log.Printf("loaded %s: %d rows", path, s.RowCount())
	return s, nil
}

// save encodes the session and writes it next to the input unless
// outputPath is set.
func (a *app) save(s *xledit.Session, inputPath, outputPath string) (string, error) {
	preferred := ""
	if outputPath != "" {
		preferred = filepath.Base(outputPath)
	}

	data, name, err := s.Save(preferred)
	if err != nil {
		return "", fmt.Errorf("save: %w", err)
	}

	dest := outputPath
	if dest == "" {
		dest = filepath.Join(filepath.Dir(inputPath), name)
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write output: %w", err)
	}
	a.log.Printf("wrote %s (%d bytes)", dest, len(data))
	return dest, nil
}
