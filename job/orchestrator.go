package job

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	idms "github.com/joshnies/turring-eve"
	"github.com/joshnies/turring-eve/blobstore"
	"github.com/joshnies/turring-eve/config"
	"github.com/joshnies/turring-eve/logger"
	"github.com/joshnies/turring-eve/migerr"
	"github.com/joshnies/turring-eve/monitoring"
	"github.com/joshnies/turring-eve/mysql"
	"github.com/joshnies/turring-eve/schema"
	"github.com/joshnies/turring-eve/set"

	"github.com/google/uuid"
)

// Job is one migration run's identity and private scratch space. Per this
// repository's job-lifecycle convention, its temp directories are created
// up front and never removed by the job itself.
type Job struct {
	ID        string
	InputDir  string
	OutputDir string
}

func newJob() (*Job, error) {
	id := uuid.New().String()
	inputDir := filepath.Join("temp", "inputs", id)
	outputDir := filepath.Join("temp", "outputs", id)

	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		return nil, fmt.Errorf("job: creating input dir: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("job: creating output dir: %w", err)
	}

	return &Job{ID: id, InputDir: inputDir, OutputDir: outputDir}, nil
}

// Result is the orchestrator's return value: the two buckets touched and
// the keys of everything it wrote.
type Result struct {
	PrimaryBucket   string   `json:"primary_bucket"`
	SecondaryBucket string   `json:"secondary_bucket"`
	SQLKey          string   `json:"sql_key"`
	CopybookKeys    []string `json:"copybook_keys"`
}

// Orchestrator drives one job's Schemas -> Sets -> Finalize pipeline over a
// Store, using cfg for bucket names and field defaults.
type Orchestrator struct {
	Store   blobstore.Store
	Log     *logger.Logger
	Metrics *monitoring.MetricsCollector
	Alerts  *monitoring.AlertManager
	Config  config.File
}

// defaultAlertThresholds bounds a single job's error rate, average
// processing time, and memory footprint before CheckThresholds fires.
var defaultAlertThresholds = monitoring.AlertThreshold{
	ErrorRate:      10,
	ProcessingTime: 30 * time.Second,
	MemoryUsage:    1024,
}

// NewOrchestrator builds an Orchestrator from its collaborators, the same
// set of dependencies the CLI and HTTP entry points resolve through the DI
// container. The alert manager shares metrics with the orchestrator so its
// threshold checks see the job's own counters.
func NewOrchestrator(store blobstore.Store, log *logger.Logger, metrics *monitoring.MetricsCollector, cfg config.File) *Orchestrator {
	alerts := monitoring.NewAlertManager(monitoring.AlertConfig{Threshold: defaultAlertThresholds}, metrics)
	return &Orchestrator{Store: store, Log: log, Metrics: metrics, Alerts: alerts, Config: cfg}
}

// Run executes one migration job end to end: schemas, then sets, then
// finalize. A fatal schema error (no record name) aborts the job; per-set
// and missing-data-blob errors are logged and skipped.
func (o *Orchestrator) Run(ctx context.Context, req TriggerRequest) (Result, error) {
	r := req.withDefaults(o.Config)
	primary := o.Config.Buckets.Primary
	secondary := o.Config.Buckets.Secondary

	j, err := newJob()
	if err != nil {
		return Result{}, err
	}
	log := o.Log.WithContext(map[string]interface{}{"job_id": j.ID, "base_path": r.BasePath})

	catalog := idms.NewCatalog()
	sqlPath := filepath.Join(j.OutputDir, "idms_migration.sql")
	sqlEmitter, err := mysql.NewFileEmitter(sqlPath)
	if err != nil {
		return Result{}, err
	}
	defer sqlEmitter.Close()

	var copybookLocalPaths []string
	var copybookKeys []string

	schemaPrefix := path.Join("inputs", r.BasePath, "schemas") + "/"
	schemaKeys, err := o.Store.List(ctx, primary, schemaPrefix)
	if err != nil {
		return Result{}, fmt.Errorf("job: listing schemas: %w", err)
	}

	for _, schemaKey := range schemaKeys {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		tableName, copybookPath, copybookKey, err := o.processSchema(ctx, j, r, primary, schemaKey, catalog, sqlEmitter, log)
		if err != nil {
			o.Metrics.IncrementFailedOperations()
			return Result{}, err
		}
		o.Metrics.IncrementProcessedObjects()
		log.Info("schema processed", map[string]interface{}{"table": tableName, "schema_key": schemaKey})

		copybookLocalPaths = append(copybookLocalPaths, copybookPath)
		copybookKeys = append(copybookKeys, copybookKey)
	}

	setPrefix := path.Join("inputs", r.BasePath, "sets") + "/"
	setKeys, err := o.Store.List(ctx, primary, setPrefix)
	if err != nil {
		return Result{}, fmt.Errorf("job: listing sets: %w", err)
	}

	for _, setKey := range setKeys {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		o.processSet(ctx, j, r, primary, setKey, catalog, sqlEmitter, log)
	}

	if err := o.Alerts.CheckThresholds(); err != nil {
		log.Warn("alert threshold check failed", map[string]interface{}{"error": err.Error()})
	}

	if err := sqlEmitter.Close(); err != nil {
		return Result{}, fmt.Errorf("job: closing sql output: %w", err)
	}

	sqlKey := path.Join("outputs", r.BasePath, "idms_migration.sql")
	if r.UploadToS3 {
		if err := o.Store.Upload(ctx, primary, sqlPath, sqlKey); err != nil {
			return Result{}, fmt.Errorf("job: uploading sql script: %w", err)
		}
		for i, localPath := range copybookLocalPaths {
			if err := o.Store.Upload(ctx, secondary, localPath, copybookKeys[i]); err != nil {
				return Result{}, fmt.Errorf("job: uploading copybook %q: %w", copybookKeys[i], err)
			}
		}
	}

	return Result{
		PrimaryBucket:   primary,
		SecondaryBucket: secondary,
		SQLKey:          sqlKey,
		CopybookKeys:    copybookKeys,
	}, nil
}

// processSchema downloads and parses one schema blob, emits its CREATE
// TABLE and copybook, registers the table in catalog, and attempts its
// matching data blob. It returns the copybook's local path and upload key.
func (o *Orchestrator) processSchema(ctx context.Context, j *Job, r resolved, primary, schemaKey string, catalog *idms.Catalog, sqlEmitter *mysql.Emitter, log *logger.Logger) (tableName, copybookPath, copybookKey string, err error) {
	localSchemaPath := filepath.Join(j.InputDir, path.Base(schemaKey))
	if err := o.Store.Download(ctx, primary, schemaKey, localSchemaPath); err != nil {
		return "", "", "", fmt.Errorf("job: downloading schema %q: %w", schemaKey, err)
	}

	content, err := os.ReadFile(localSchemaPath)
	if err != nil {
		return "", "", "", fmt.Errorf("job: reading schema %q: %w", schemaKey, err)
	}

	result, err := schema.Parse(string(content))
	if err != nil {
		return "", "", "", fmt.Errorf("job: parsing schema %q: %w", schemaKey, err)
	}

	catalog.Register(result.Table)
	if err := sqlEmitter.WriteFragment(result.CreateTableSQL); err != nil {
		return "", "", "", err
	}

	copybookName := result.Table.Name + r.CobolCopybookExt
	copybookPath = filepath.Join(j.OutputDir, copybookName)
	if err := os.WriteFile(copybookPath, []byte(result.Copybook), 0o644); err != nil {
		return "", "", "", fmt.Errorf("job: writing copybook %q: %w", copybookName, err)
	}
	copybookKey = path.Join(r.CobolCopybookOutPath, copybookName)

	o.emitDataForSchema(ctx, j, r, primary, schemaKey, result.Table, sqlEmitter, log)

	return result.Table.Name, copybookPath, copybookKey, nil
}

// emitDataForSchema attempts the data blob matching schemaKey and, if
// present, emits its INSERT statement. A missing or unreadable data blob is
// a warning only.
func (o *Orchestrator) emitDataForSchema(ctx context.Context, j *Job, r resolved, primary, schemaKey string, table *idms.Table, sqlEmitter *mysql.Emitter, log *logger.Logger) {
	dataKey := deriveDataKey(schemaKey, r.BasePath, r.SchemasSuffix, r.DataSuffix)
	localDataPath := filepath.Join(j.InputDir, path.Base(dataKey))

	if err := o.Store.Download(ctx, primary, dataKey, localDataPath); err != nil {
		o.Metrics.IncrementErrorCount(string(migerr.KindMissingDataBlob))
		log.Warn("no matching data blob, skipping insert", map[string]interface{}{
			"table": table.Name, "data_key": dataKey,
		})
		return
	}

	content, err := os.ReadFile(localDataPath)
	if err != nil {
		log.Warn("data blob downloaded but unreadable, skipping insert", map[string]interface{}{
			"table": table.Name, "data_key": dataKey, "error": err.Error(),
		})
		return
	}

	insertSQL, err := mysql.ParseDataFile(table, content, r.Encoding, r.Workers)
	if err != nil {
		log.Warn("failed to parse data file, skipping insert", map[string]interface{}{
			"table": table.Name, "data_key": dataKey, "error": err.Error(),
		})
		return
	}

	if err := sqlEmitter.WriteFragment(insertSQL); err != nil {
		log.Warn("failed to write insert fragment", map[string]interface{}{
			"table": table.Name, "error": err.Error(),
		})
	}
}

// processSet downloads and parses one set blob and, on success, appends its
// fragment to the SQL script. Any failure here is logged and skipped; the
// job continues with the next set.
func (o *Orchestrator) processSet(ctx context.Context, j *Job, r resolved, primary, setKey string, catalog *idms.Catalog, sqlEmitter *mysql.Emitter, log *logger.Logger) {
	localSetPath := filepath.Join(j.InputDir, path.Base(setKey))
	if err := o.Store.Download(ctx, primary, setKey, localSetPath); err != nil {
		o.Metrics.IncrementErrorCount(string(migerr.KindBlobIO))
		log.Error("failed to download set, skipping", map[string]interface{}{"set_key": setKey, "error": err.Error()})
		return
	}

	content, err := os.ReadFile(localSetPath)
	if err != nil {
		log.Error("failed to read set, skipping", map[string]interface{}{"set_key": setKey, "error": err.Error()})
		return
	}

	fragment, err := set.Parse(string(content), catalog, set.Options{MigrateFKs: r.MigrateFKs}, log)
	if err != nil {
		if me, ok := err.(*migerr.MigrationError); ok {
			o.Metrics.IncrementErrorCount(string(me.Kind))
		}
		log.Warn("failed to parse set, skipping", map[string]interface{}{"set_key": setKey, "error": err.Error()})
		return
	}

	if err := sqlEmitter.WriteFragment(fragment); err != nil {
		log.Warn("failed to write set fragment", map[string]interface{}{"set_key": setKey, "error": err.Error()})
	}
}

// deriveDataKey replaces a trailing schemasSuffix on schemaKey's basename
// with dataSuffix (a basename without that suffix just gets dataSuffix
// appended), rebuilding the key under the data/ prefix.
func deriveDataKey(schemaKey, basePath, schemasSuffix, dataSuffix string) string {
	base := path.Base(schemaKey)
	trimmed := strings.TrimSuffix(base, schemasSuffix)
	return path.Join("inputs", basePath, "data", trimmed+dataSuffix)
}
