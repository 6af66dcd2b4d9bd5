// Package job implements the Job Orchestrator: it drives one migration job
// end to end across the Schema Parser, Data Parser, and Set Parser,
// producing a single ordered SQL script and one copybook per schema.
package job

import "github.com/joshnies/turring-eve/config"

// TriggerRequest is the decoded shape of one trigger call, whether it
// arrives as an HTTP JSON body or is assembled from CLI flags. Every
// optional field defaults from config.Defaults when left zero-valued.
type TriggerRequest struct {
	BasePath             string `json:"base_path"`
	CobolCopybookOutPath string `json:"cobol_copybook_out_path"`
	UploadToS3           *bool  `json:"upload_to_s3,omitempty"`
	SchemasSuffix        string `json:"schemas_suffix,omitempty"`
	DataSuffix           string `json:"data_suffix,omitempty"`
	SetSuffix            string `json:"set_suffix,omitempty"`
	MigrateFKs           *bool  `json:"migrate_fks,omitempty"`
	CobolCopybookExt     string `json:"cobol_copybook_ext,omitempty"`
	Encoding             string `json:"encoding,omitempty"`
}

// resolved is a TriggerRequest with every optional field defaulted, the
// form the orchestrator actually consumes.
type resolved struct {
	BasePath             string
	CobolCopybookOutPath string
	UploadToS3           bool
	SchemasSuffix        string
	DataSuffix           string
	SetSuffix            string
	MigrateFKs           bool
	CobolCopybookExt     string
	Encoding             string
	Workers              int
}

// withDefaults merges req with defaults, field by field: a request field
// left unset takes the configured default rather than a Go zero value.
func (req TriggerRequest) withDefaults(defaults config.File) resolved {
	r := resolved{
		BasePath:             req.BasePath,
		CobolCopybookOutPath: req.CobolCopybookOutPath,
		UploadToS3:           defaults.Defaults.UploadToStorage,
		SchemasSuffix:        defaults.Defaults.SchemasSuffix,
		DataSuffix:           defaults.Defaults.DataSuffix,
		SetSuffix:            defaults.Defaults.SetSuffix,
		MigrateFKs:           defaults.Defaults.MigrateFKs,
		CobolCopybookExt:     defaults.Defaults.CopybookExtension,
		Encoding:             defaults.Defaults.Encoding,
		Workers:              defaults.Concurrency.Workers,
	}

	if req.UploadToS3 != nil {
		r.UploadToS3 = *req.UploadToS3
	}
	if req.SchemasSuffix != "" {
		r.SchemasSuffix = req.SchemasSuffix
	}
	if req.DataSuffix != "" {
		r.DataSuffix = req.DataSuffix
	}
	if req.SetSuffix != "" {
		r.SetSuffix = req.SetSuffix
	}
	if req.MigrateFKs != nil {
		r.MigrateFKs = *req.MigrateFKs
	}
	if req.CobolCopybookExt != "" {
		r.CobolCopybookExt = req.CobolCopybookExt
	}
	if req.Encoding != "" {
		r.Encoding = req.Encoding
	}

	return r
}
