package rowcheck

// Package rowcheck validates delimited text records against a declared
// per-column contract. It provides:
//
// - A fail-fast Schema Validator that turns a raw schema document into a
//   typed Schema/FieldRule structure, rejecting malformed schemas before any
//   data is touched
// - A Record Validator applying a field-count contract plus per-column
//   numeric-type, numeric-range, and generic structural checks, reporting the
//   first failing check per record
// - A stable diagnostic model via Issue (code, column, message)
// - Streaming single-pass execution over a record source/sink
//
// Design policy:
// - Keep only public APIs in the root package; put the generic structural
//   engine adapter under internal/.
// - Place the record source/sink under csvio/, metrics under metrics/, and
//   the CLI under cmd/rowcheck.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  schema, err := rowcheck.LoadSchema("orders.yml")
//  v := rowcheck.NewRecordValidator(rowcheck.WithSchema(schema))
//  if iss := v.CheckFieldCount(len(rec)); iss != nil { ... }
//  if iss := v.CheckSchema(rec); iss != nil { ... }
//
