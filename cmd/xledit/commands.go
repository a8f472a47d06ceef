package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xledit-go/pkg/xledit"
	"github.com/ukaji3/xledit-go/pkg/xledit/models"
	"github.com/ukaji3/xledit-go/pkg/xledit/output"
	"github.com/ukaji3/xledit-go/pkg/xledit/parser"
	"github.com/xuri/excelize/v2"
)

func newShowCmd(a *app) *cobra.Command {
	var asJSON, pretty bool

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print the first sheet as a table or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(args[0])
			if err != nil {
				return err
			}

			if !asJSON {
				return output.WriteTable(cmd.OutOrStdout(), s.Rows())
			}

			jsonData, err := output.GridToJSON(s.Name(), models.NewGrid(s.Rows()), pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

// infoReport is the JSON shape printed by the info command.
type infoReport struct {
	Container models.ContainerInfo `json:"container"`
	Summary   models.Summary       `json:"summary"`
}

func newInfoCmd(a *app) *cobra.Command {
	var asJSON, pretty bool

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Describe the container and the first sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			container, err := xledit.Inspect(data, a.opts)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", args[0], err)
			}

			s, err := a.load(args[0])
			if err != nil {
				return err
			}
			report := infoReport{Container: container, Summary: s.Summary()}

			out := cmd.OutOrStdout()
			if asJSON {
				jsonData, err := output.ToJSON(&report, pretty)
				if err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
				fmt.Fprintln(out, string(jsonData))
				return nil
			}

			fmt.Fprintf(out, "name:       %s\n", report.Summary.Name)
			fmt.Fprintf(out, "container:  %s\n", report.Container.Kind)
			fmt.Fprintf(out, "sheets:     %s\n", strings.Join(report.Container.Sheets, ", "))
			fmt.Fprintf(out, "rows:       %d\n", report.Summary.Rows)
			fmt.Fprintf(out, "columns:    %d\n", report.Summary.Cols)
			fmt.Fprintf(out, "filled:     %d\n", report.Summary.Filled)
			fmt.Fprintf(out, "used range: %s\n", report.Summary.UsedRange)
			fmt.Fprintf(out, "header:     %s\n", strings.Join(report.Summary.Header, " | "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func newSetCmd(a *app) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "set <file> <CELL=value>...",
		Short: "Set cell values and save the workbook",
		Example: `  xledit set report.xlsx B2=done C2="needs review"
  xledit set report.xlsx A10=total -o edited.xlsx`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			edits, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}

			s, err := a.load(args[0])
			if err != nil {
				return err
			}
			for _, e := range edits {
				if err := s.Edit(e.row, e.col, e.text); err != nil {
					return fmt.Errorf("set %s: %w", e.cell, err)
				}
				a.log.Printf("set %s = %q", e.cell, e.text)
			}

			dest, err := a.save(s, args[0], outputPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d cell(s) written to %s\n", len(edits), dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: overwrite input)")
	return cmd
}

func newHeaderCmd(a *app) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "header <file> <col> <text>",
		Short: "Set a header cell; col is a letter (C) or 1-based number (3)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := parseColumn(args[1])
			if err != nil {
				return err
			}

			s, err := a.load(args[0])
			if err != nil {
				return err
			}
			if err := s.Edit(0, col, args[2]); err != nil {
				return fmt.Errorf("set header: %w", err)
			}

			dest, err := a.save(s, args[0], outputPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "header written to %s\n", dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: overwrite input)")
	return cmd
}

type assignment struct {
	cell     string
	row, col int
	text     string
}

// parseAssignments parses CELL=value arguments. The value may be empty
// and may itself contain '='.
func parseAssignments(args []string) ([]assignment, error) {
	edits := make([]assignment, 0, len(args))
	for _, arg := range args {
		cell, text, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q: want CELL=value", arg)
		}
		row, col, err := parser.ParseCellName(cell)
		if err != nil {
			return nil, fmt.Errorf("invalid assignment %q: %w", arg, err)
		}
		edits = append(edits, assignment{
			cell: strings.ToUpper(strings.TrimSpace(cell)),
			row:  row,
			col:  col,
			text: text,
		})
	}
	return edits, nil
}

// parseColumn returns a zero-based column index from a letter name or a
// 1-based number.
func parseColumn(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > excelize.MaxColumns {
			return 0, fmt.Errorf("invalid column %q", s)
		}
		return n - 1, nil
	}
	n, err := excelize.ColumnNameToNumber(s)
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: %w", s, err)
	}
	return n - 1, nil
}
