package commands

import (
	"fmt"
	"io"
)

// ShowHelp prints usage for every subcommand
func ShowHelp(w io.Writer) {
	fmt.Fprint(w, `Plant Revision & Inventory Reconciliation

USAGE:
    recon <command> [flags]

COMMANDS:
    reconcile   Build the drawing, material and installation views
    import      Replace master tables from CSV or XLSX files
    receive     Append a receipt (IN) to the material ledger
    issue       Append an issue (OUT) to the material ledger
    serve       Run the JSON API

COMMON FLAGS:
    -config <path>       YAML or TOML config file
    -store <driver>      Store driver: files or sqlite
    -dir <path>          Scenario directory for the files driver
    -dsn <path>          Database path for the sqlite driver
    -log-level <level>   debug, info, warn or error

RECONCILE FLAGS:
    -category <text>     Only show rows whose category contains text ("all" shows everything)
    -dedupe              Keep the first row of each duplicated drawing number
    -format <fmt>        Output format: text, json, csv, xlsx (default: text)
    -output <dir>        Output directory for csv, json and xlsx results
    -verbose             Show timing and duplicate details

IMPORT FLAGS:
    -drawings <path>       Drawing register (.csv or .xlsx)
    -materials <path>      Material master (.csv or .xlsx)
    -installations <path>  Installation register (.csv or .xlsx)
    -confirm-dedupe        Drop duplicate drawing numbers, keeping the first row

RECEIVE / ISSUE FLAGS:
    -ident <code>        Material ident code
    -qty <n>             Positive quantity
    -date <YYYY-MM-DD>   Transaction date (default: today)
    -drawing <no>        Drawing the material is issued for (issue only)
    -remark <text>       Free-text remark

SERVE FLAGS:
    -addr <addr>         Listen address (default: :8080)

FILES DRIVER LAYOUT:
    drawings.csv       drawing_no, category, area, system, title, hold, status,
                       rev_1, rev_1_date, ... rev_N, rev_N_date, remark
    materials.csv      ident_code, description, size, unit, required_qty
    ledger.csv         id, date, type, ident_code, quantity, drawing_no, remark
    installations.csv  drawing_no, joint_id, nominal_size, completed_length, field_revision

    Masters may be .xlsx instead of .csv (first sheet, same header).

EXAMPLES:
    recon import -dir ./plant -drawings register.xlsx -materials materials.csv
    recon reconcile -dir ./plant -category iso
    recon issue -dir ./plant -ident M1 -qty 10 -drawing P-101
    recon serve -store sqlite -dsn ./plant.sqlite -addr :9090
`)
}
