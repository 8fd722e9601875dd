// Rowcheck validates delimited text files against a field-count contract and
// an optional per-column schema.
//
// Usage:
//
//	# Validate a file against a schema, splitting output
//	rowcheck data.csv --schema orders.yml --outgood good.csv --outerr bad.csv
//
//	# Read from stdin with an explicit field count
//	cat data.csv | rowcheck - --field-count 5
//
//	# Append the diagnostic as an extra column on invalid records
//	rowcheck data.csv --schema orders.yml --err-msg
//
// Exit status: 0 when every record is valid, 1 when invalid records were
// found, 61 when the input held no records, 78 on configuration errors
// (malformed schema, bad flags) raised before any record is read.
package main

import "os"

func main() {
	os.Exit(Execute())
}
