package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/theckman/yacspin"
	"golang.org/x/term"

	"github.com/bgrewell/fmpkit/pkg/fmp"
	"github.com/bgrewell/fmpkit/pkg/version"
	"github.com/bgrewell/usage"
	"github.com/fatih/color"
)

// quoteIdent wraps a table or column name in double quotes for use as a
// SQLite identifier, doubling any embedded quote. FMP names are user
// supplied and frequently contain spaces or punctuation SQL requires
// quoting for.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func exportTable(db *sql.DB, handle *fmp.Handle, table *fmp.Table, spinner *yacspin.Spinner) error {
	columns, err := handle.ListColumns(table)
	if err != nil {
		return fmt.Errorf("list columns for %q: %w", table.Name, err)
	}
	if len(columns) == 0 {
		return nil
	}

	var colDefs []string
	var colNames []string
	for _, c := range columns {
		colDefs = append(colDefs, quoteIdent(c.Name)+" TEXT")
		colNames = append(colNames, quoteIdent(c.Name))
	}

	createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table.Name), strings.Join(colDefs, ", "))
	if _, err := db.Exec(createSQL); err != nil {
		return fmt.Errorf("create table %q: %w", table.Name, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction for %q: %w", table.Name, err)
	}

	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table.Name), strings.Join(colNames, ", "), placeholders(len(colNames)))
	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert for %q: %w", table.Name, err)
	}
	defer stmt.Close()

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
		tx.Rollback()
		return fmt.Errorf("read values for %q: %w", table.Name, err)
	}

	for _, r := range order {
		values := make([]interface{}, len(columns))
		for i, c := range columns {
			values[i] = rows[r][c.Name]
		}
		if _, err := stmt.Exec(values...); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert row %d of %q: %w", r, table.Name, err)
		}
	}

	return tx.Commit()
}

func placeholders(n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = "?"
	}
	return strings.Join(ph, ", ")
}

func main() {
	u := usage.NewUsage(
		usage.WithApplicationName("fmp2sqlite"),
		usage.WithApplicationVersion(version.Version()),
		usage.WithApplicationDescription("fmp2sqlite exports every table of an FMP (FileMaker Pro) file into a SQLite database, one table and one TEXT column per FMP field."),
	)
	help := u.AddBooleanOption("h", "help", false, "Display this help message", "", nil)
	input := u.AddArgument(1, "input", "Path to the FMP file to export", "")
	output := u.AddArgument(2, "output", "Path to the SQLite database to create", "")
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

	if _, err := os.Stat(*output); err == nil {
		fmt.Fprintln(os.Stderr, color.RedString("refusing to overwrite existing file %s", *output))
		os.Exit(1)
	}

	handle, err := fmp.OpenFile(*input)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("failed to open %s: %v", *input, err))
		os.Exit(1)
	}
	defer handle.Close()

	db, err := sql.Open("sqlite3", *output)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("failed to create %s: %v", *output, err))
		os.Exit(1)
	}
	defer db.Close()

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

	for _, table := range tables {
		if err := exportTable(db, handle, table, spinner); err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("%v", err))
			os.Exit(1)
		}
	}

	fmt.Println(color.GreenString("wrote %d table(s) to %s", len(tables), *output))
}
