// fmp2xlsx exports an FMP file to a minimal single-sheet-per-table OOXML
// workbook. No spreadsheet library appears anywhere in the retrieval
// corpus, so this tool is built directly on archive/zip and encoding/xml —
// see DESIGN.md for why that's the one CLI component resting on the
// standard library instead of a third-party dependency.
package main

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/bgrewell/fmpkit/pkg/fmp"
	"github.com/bgrewell/fmpkit/pkg/version"
	"github.com/bgrewell/usage"
	"github.com/fatih/color"
)

const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>
%s
</Types>`

	rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>
</Relationships>`

	workbookRelsHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
`
	workbookRelsFooter = `</Relationships>`

	workbookHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets>
`
	workbookFooter = `</sheets>
</workbook>`
)

// The worksheet body is built with encoding/xml so cell text is escaped by
// the marshaler rather than by hand; the surrounding package boilerplate
// (content types, relationships) is static enough to stay as plain string
// templates.
type xlInlineStr struct {
	T string `xml:"t"`
}

type xlCell struct {
	R    string      `xml:"r,attr"`
	Type string      `xml:"t,attr"`
	Is   xlInlineStr `xml:"is"`
}

type xlRow struct {
	R     int      `xml:"r,attr"`
	Cells []xlCell `xml:"c"`
}

type xlWorksheet struct {
	XMLName   xml.Name `xml:"worksheet"`
	Xmlns     string   `xml:"xmlns,attr"`
	SheetData struct {
		Rows []xlRow `xml:"row"`
	} `xml:"sheetData"`
}

func colLetter(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}
	return s
}

func sheetXML(columns []*fmp.Column, orderedRows []map[string]string) ([]byte, error) {
	ws := xlWorksheet{Xmlns: "http://schemas.openxmlformats.org/spreadsheetml/2006/main"}

	header := xlRow{R: 1}
	for i, c := range columns {
		header.Cells = append(header.Cells, xlCell{R: colLetter(i+1) + "1", Type: "inlineStr", Is: xlInlineStr{T: c.Name}})
	}
	ws.SheetData.Rows = append(ws.SheetData.Rows, header)

	for i, row := range orderedRows {
		r := xlRow{R: i + 2}
		for j, c := range columns {
			r.Cells = append(r.Cells, xlCell{
				R:    fmt.Sprintf("%s%d", colLetter(j+1), i+2),
				Type: "inlineStr",
				Is:   xlInlineStr{T: row[c.Name]},
			})
		}
		ws.SheetData.Rows = append(ws.SheetData.Rows, r)
	}

	body, err := xml.Marshal(ws)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// exportWorkbook writes a minimal workbook with one sheet per table to w.
func exportWorkbook(w *zip.Writer, handle *fmp.Handle, tables []*fmp.Table) error {
	var contentOverrides, sheetEntries, relEntries strings.Builder

	for i, table := range tables {
		idx := i + 1
		columns, err := handle.ListColumns(table)
		if err != nil {
			return fmt.Errorf("list columns for %q: %w", table.Name, err)
		}

		rowsByIndex := map[int]map[string]string{}
		var order []int
		err = handle.ReadValues(table, func(row int, column *fmp.Column, value string) fmp.ValueStatus {
			r, ok := rowsByIndex[row]
			if !ok {
				r = map[string]string{}
				rowsByIndex[row] = r
				order = append(order, row)
			}
			r[column.Name] = value
			return fmp.ValueContinue
		})
		if err != nil {
			return fmt.Errorf("read values for %q: %w", table.Name, err)
		}

		orderedRows := make([]map[string]string, len(order))
		for i, r := range order {
			orderedRows[i] = rowsByIndex[r]
		}

		sheetBytes, err := sheetXML(columns, orderedRows)
		if err != nil {
			return fmt.Errorf("encode sheet for %q: %w", table.Name, err)
		}

		sheetPath := fmt.Sprintf("xl/worksheets/sheet%d.xml", idx)
		f, err := w.Create(sheetPath)
		if err != nil {
			return err
		}
		if _, err := f.Write(sheetBytes); err != nil {
			return err
		}

		name := table.Name
		if name == "" {
			name = fmt.Sprintf("Sheet%d", idx)
		}
		nameAttr, err := xml.Marshal(struct {
			XMLName xml.Name `xml:"n"`
			Value   string   `xml:",chardata"`
		}{Value: name})
		if err != nil {
			return err
		}
		escapedName := strings.TrimSuffix(strings.TrimPrefix(string(nameAttr), "<n>"), "</n>")

		sheetEntries.WriteString(fmt.Sprintf(`<sheet name="%s" sheetId="%d" r:id="rId%d"/>`+"\n", escapedName, idx, idx))
		relEntries.WriteString(fmt.Sprintf(`<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet%d.xml"/>`+"\n", idx, idx))
		contentOverrides.WriteString(fmt.Sprintf(`<Override PartName="/xl/worksheets/sheet%d.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>`+"\n", idx))
	}

	if f, err := w.Create("[Content_Types].xml"); err != nil {
		return err
	} else if _, err := f.Write([]byte(fmt.Sprintf(contentTypesXML, contentOverrides.String()))); err != nil {
		return err
	}

	if f, err := w.Create("_rels/.rels"); err != nil {
		return err
	} else if _, err := f.Write([]byte(rootRelsXML)); err != nil {
		return err
	}

	if f, err := w.Create("xl/_rels/workbook.xml.rels"); err != nil {
		return err
	} else if _, err := f.Write([]byte(workbookRelsHeader + relEntries.String() + workbookRelsFooter)); err != nil {
		return err
	}

	if f, err := w.Create("xl/workbook.xml"); err != nil {
		return err
	} else if _, err := f.Write([]byte(workbookHeader + sheetEntries.String() + workbookFooter)); err != nil {
		return err
	}

	return nil
}

func main() {
	u := usage.NewUsage(
		usage.WithApplicationName("fmp2xlsx"),
		usage.WithApplicationVersion(version.Version()),
		usage.WithApplicationDescription("fmp2xlsx exports every table of an FMP (FileMaker Pro) file to a single .xlsx workbook, one worksheet per table."),
	)
	help := u.AddBooleanOption("h", "help", false, "Display this help message", "", nil)
	input := u.AddArgument(1, "input", "Path to the FMP file to export", "")
	output := u.AddArgument(2, "output", "Path to the .xlsx file to create", "")
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

	out, err := os.Create(*output)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("failed to create %s: %v", *output, err))
		os.Exit(1)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	if err := exportWorkbook(zw, handle, tables); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("export failed: %v", err))
		os.Exit(1)
	}
	if err := zw.Close(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("failed to finalize workbook: %v", err))
		os.Exit(1)
	}

	fmt.Println(color.GreenString("wrote %d table(s) to %s", len(tables), *output))
}
