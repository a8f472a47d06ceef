package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xledit-go/pkg/xledit/models"
	"github.com/xuri/excelize/v2"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"id", "name", "status"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1, "alice", "open"}))

	path := filepath.Join(t.TempDir(), "tasks.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func showJSON(t *testing.T, path string) models.GridView {
	t.Helper()
	out, err := execute(t, "show", path, "--json")
	require.NoError(t, err)

	var view models.GridView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	return view
}

func TestShowTable(t *testing.T) {
	isolateConfig(t)
	path := writeFixture(t)

	out, err := execute(t, "show", path)
	require.NoError(t, err)
	assert.Equal(t, "id  name   status\n1   alice  open\n", out)
}

func TestSetWritesOutput(t *testing.T) {
	isolateConfig(t)
	path := writeFixture(t)
	dest := filepath.Join(t.TempDir(), "edited.xlsx")

	out, err := execute(t, "set", path, "C2=done", "D4=a=b", "-o", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "2 cell(s) written to "+dest)

	view := showJSON(t, dest)
	assert.Equal(t, "edited.xlsx", view.Name)
	assert.Equal(t, []string{"id", "name", "status"}, view.Header)
	assert.Equal(t, [][]string{{"1", "alice", "done"}, {}, {"", "", "", "a=b"}}, view.Rows)

	original := showJSON(t, path)
	assert.Equal(t, "open", original.Rows[0][2])
}

func TestSetOverwritesInput(t *testing.T) {
	isolateConfig(t)
	path := writeFixture(t)

	_, err := execute(t, "set", path, "B2=")
	require.NoError(t, err)

	view := showJSON(t, path)
	assert.Equal(t, []string{"1", "", "open"}, view.Rows[0])
}

func TestSetSheetLabel(t *testing.T) {
	isolateConfig(t)
	path := writeFixture(t)

	_, err := execute(t, "--sheet-label", "Tasks", "set", path, "A1=key")
	require.NoError(t, err)

	out, err := execute(t, "info", path, "--json")
	require.NoError(t, err)

	var report infoReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, []string{"Tasks"}, report.Container.Sheets)
	assert.Equal(t, "key", report.Summary.Header[0])
}

func TestSetRejectsBadAssignments(t *testing.T) {
	isolateConfig(t)
	path := writeFixture(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, arg := range []string{"B2", "=x", "ZZZZ1=x", "A0=x"} {
		_, err := execute(t, "set", path, arg)
		assert.Error(t, err, arg)
	}

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestHeader(t *testing.T) {
	isolateConfig(t)
	path := writeFixture(t)

	_, err := execute(t, "header", path, "4", "owner")
	require.NoError(t, err)
	_, err = execute(t, "header", path, "b", "full name")
	require.NoError(t, err)

	view := showJSON(t, path)
	assert.Equal(t, []string{"id", "full name", "status", "owner"}, view.Header)
}

func TestInfoText(t *testing.T) {
	isolateConfig(t)
	path := writeFixture(t)

	out, err := execute(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "sheets:     Sheet1\n")
	assert.Contains(t, out, "used range: A1:C2\n")
	assert.Contains(t, out, "header:     id | name | status\n")
}

func TestShowRejectsNonWorkbook(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "notes.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

	_, err := execute(t, "show", path)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid"), err.Error())
}

func TestVerboseLogsToStderr(t *testing.T) {
	isolateConfig(t)
	path := writeFixture(t)

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--verbose", "set", path, "A2=7"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stderr.String(), "loaded "+path)
	assert.Contains(t, stderr.String(), `set A2 = "7"`)
	assert.NotContains(t, stdout.String(), "loaded")
}

func TestParseColumn(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"A", 0, false},
		{"c", 2, false},
		{"AA", 26, false},
		{"1", 0, false},
		{"16384", 16383, false},
		{"0", 0, true},
		{"16385", 0, true},
		{"A1", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseColumn(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
