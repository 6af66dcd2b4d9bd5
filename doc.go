// Package idms implements the IDMS-to-MySQL migration engine: parsing IDMS
// record schemas, fixed-width data unloads, and SET relationships, and
// translating them into MySQL CREATE TABLE/INSERT/ALTER TABLE/CREATE VIEW
// statements plus a COBOL copybook per record.
//
// The package is organized the same way the pipeline is described: this
// package holds the shared data model (Column, Table, Catalog) and the
// two leaf operations (name normalization, PIC-literal parsing) that every
// other stage depends on. The stages themselves live in sibling packages:
//
//	schema  - walks a schema file into a Table and a COBOL copybook
//	mysql   - parses a data file against a Table and emits SQL
//	set     - parses a SET file into FK constraints or a view
//	job     - orchestrates the three stages per migration job
//	blobstore - the object-storage contract the orchestrator consumes
//
// Byte-vs-character note: IDMS unload files are byte-positional. All
// positional slicing in this module operates on []byte, never on runes,
// regardless of the configured encoding.
package idms
