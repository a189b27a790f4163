package main

import (
	"fmt"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/bgrewell/fmpkit/pkg/consts"
	"github.com/bgrewell/fmpkit/pkg/fmp"
	"github.com/bgrewell/fmpkit/pkg/version"
	"github.com/bgrewell/usage"
	"github.com/fatih/color"
	"github.com/theckman/yacspin"
	"golang.org/x/term"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// exportConfig is the optional --config file: which tables to carry over.
// flatten_rich_text is parsed but not used; cell values are always written
// as plain strings.
type exportConfig struct {
	IncludeTables   []string `yaml:"include_tables"`
	ExcludeTables   []string `yaml:"exclude_tables"`
	FlattenRichText bool     `yaml:"flatten_rich_text"`
}

func loadConfig(path string) (*exportConfig, error) {
	if path == "" {
		return &exportConfig{}, nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &exportConfig{}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func wanted(cfg *exportConfig, name string) bool {
	if len(cfg.IncludeTables) > 0 {
		found := false
		for _, n := range cfg.IncludeTables {
			if n == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, n := range cfg.ExcludeTables {
		if n == name {
			return false
		}
	}
	return true
}

type jsonColumn struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Collation string `json:"collation"`
}

type jsonTable struct {
	Name    string              `json:"name"`
	Columns []jsonColumn        `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

func exportTable(handle *fmp.Handle, table *fmp.Table, spinner *yacspin.Spinner) (*jsonTable, error) {
	columns, err := handle.ListColumns(table)
	if err != nil {
		return nil, fmt.Errorf("list columns for %q: %w", table.Name, err)
	}

	out := &jsonTable{Name: table.Name}
	for _, c := range columns {
		out.Columns = append(out.Columns, jsonColumn{
			Name:      c.Name,
			Type:      c.Type.String(),
			Collation: consts.CollationTag(c.Collation),
		})
	}

	rows := map[int]map[string]string{}
	var order []int
	err = handle.ReadValues(table, func(row int, column *fmp.Column, value string) fmp.ValueStatus {
		r, ok := rows[row]
		if !ok {
			r = map[string]string{}
			rows[row] = r
			order = append(order, row)
		}
		r[column.Name] = value
		if spinner != nil {
			spinner.Message(fmt.Sprintf("%s: row %d", table.Name, row))
		}
		return fmp.ValueContinue
	})
	if err != nil {
		return nil, fmt.Errorf("read values for %q: %w", table.Name, err)
	}

	for _, r := range order {
		out.Rows = append(out.Rows, rows[r])
	}
	return out, nil
}

func main() {
	u := usage.NewUsage(
		usage.WithApplicationName("fmp2json"),
		usage.WithApplicationVersion(version.Version()),
		usage.WithApplicationDescription("fmp2json exports every table of an FMP (FileMaker Pro) file to a single JSON document."),
	)
	help := u.AddBooleanOption("h", "help", false, "Display this help message", "", nil)
	configPath := u.AddStringOption("c", "config", "", "Optional YAML config controlling table include/exclude", "", nil)
	input := u.AddArgument(1, "input", "Path to the FMP file to export", "")
	output := u.AddArgument(2, "output", "Path to write the JSON document to", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}
	if *help {
		u.PrintUsage()
		os.Exit(0)
	}
	if input == nil || *input == "" || output == nil || *output == "" {
		u.PrintError(fmt.Errorf("both <input> and <output> must be provided"))
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("failed to load config: %v", err))
		os.Exit(1)
	}

	handle, err := fmp.OpenFile(*input)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("failed to open %s: %v", *input, err))
		os.Exit(1)
	}
	defer handle.Close()

	tables, err := handle.ListTables()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("failed to list tables: %v", err))
		os.Exit(1)
	}

	var spinner *yacspin.Spinner
	if term.IsTerminal(int(os.Stdout.Fd())) {
		spinner, _ = yacspin.New(yacspin.Config{
			Frequency:       100 * time.Millisecond,
			CharSet:         yacspin.CharSets[9],
			Suffix:          " exporting",
			SuffixAutoColon: true,
			Message:         "starting",
			StopMessage:     "done",
		})
		if spinner != nil {
			spinner.Start()
			defer spinner.Stop()
		}
	}

	var result []*jsonTable
	for _, table := range tables {
		if !wanted(cfg, table.Name) {
			continue
		}
		jt, err := exportTable(handle, table, spinner)
		if err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("%v", err))
			os.Exit(1)
		}
		result = append(result, jt)
	}

	out, err := os.Create(*output)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("failed to create %s: %v", *output, err))
		os.Exit(1)
	}
	defer out.Close()

	enc := jsonAPI.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("failed to write json: %v", err))
		os.Exit(1)
	}

	fmt.Println(color.GreenString("wrote %d table(s) to %s", len(result), *output))
}
