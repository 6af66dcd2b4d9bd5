// Package config loads job default settings from a TOML file, the same way
// this codebase's schema-tool configuration loader decodes a TOML document
// into typed Go structs before validation.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// File is the on-disk shape of a job-defaults config file. An individual
// trigger request's JSON body (see the job package) may override any of the
// Defaults fields field-by-field; Buckets and Concurrency come from the file
// only.
type File struct {
	Buckets    Buckets    `toml:"buckets"`
	Defaults   Defaults   `toml:"defaults"`
	Concurrency Concurrency `toml:"concurrency"`
}

// Buckets names the two blob-store buckets the orchestrator reads from and
// writes to.
type Buckets struct {
	Primary   string `toml:"primary"`
	Secondary string `toml:"secondary"`
}

// Defaults mirrors the optional fields of the trigger request, used when a
// request omits them.
type Defaults struct {
	UploadToStorage   bool   `toml:"upload_to_storage"`
	SchemasSuffix     string `toml:"schemas_suffix"`
	DataSuffix        string `toml:"data_suffix"`
	SetSuffix         string `toml:"set_suffix"`
	MigrateFKs        bool   `toml:"migrate_fks"`
	CopybookExtension string `toml:"copybook_extension"`
	Encoding          string `toml:"encoding"`
}

// Concurrency bounds the worker pool used for the data parser's
// row-transform fan-out.
type Concurrency struct {
	Workers int `toml:"workers"`
}

// Default returns the built-in defaults used when no config file is
// supplied.
func Default() File {
	return File{
		Buckets: Buckets{Primary: "eve", Secondary: "theory"},
		Defaults: Defaults{
			UploadToStorage: true,
			SchemasSuffix:   "_SCHEMA.txt",
			DataSuffix:      "_DATA.txt",
			SetSuffix:       ".txt",
			MigrateFKs:      false,
			Encoding:        "utf-8",
		},
		Concurrency: Concurrency{Workers: 4},
	}
}

// Load decodes a TOML config file from path; any field the file leaves
// unset keeps its Default value.
func Load(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a TOML config document from r and validates it.
func Parse(r io.Reader) (File, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return File{}, fmt.Errorf("config: decoding toml: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return File{}, err
	}
	return cfg, nil
}

func (f File) validate() error {
	if f.Buckets.Primary == "" || f.Buckets.Secondary == "" {
		return fmt.Errorf("config: both buckets.primary and buckets.secondary must be set")
	}
	if f.Concurrency.Workers <= 0 {
		return fmt.Errorf("config: concurrency.workers must be positive")
	}
	return nil
}
