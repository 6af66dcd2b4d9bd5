// Command idmsmigrate runs one IDMS-to-MySQL migration job from the command
// line, using hand-rolled flag parsing rather than a CLI framework.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joshnies/turring-eve/blobstore"
	"github.com/joshnies/turring-eve/config"
	"github.com/joshnies/turring-eve/di"
	"github.com/joshnies/turring-eve/job"
	"github.com/joshnies/turring-eve/logger"
	"github.com/joshnies/turring-eve/monitoring"
	"github.com/joshnies/turring-eve/mysql"
)

func main() {
	basePath := flag.String("base-path", "", "input root under inputs/ and outputs/ in the primary bucket")
	copybookOut := flag.String("copybook-out", "", "prefix for copybook uploads in the secondary bucket")
	storageRoot := flag.String("storage-root", "storage", "local directory backing both buckets")
	configPath := flag.String("config", "", "path to a TOML job-defaults file (optional)")
	migrateFKs := flag.Bool("migrate-fks", false, "emit ALTER TABLE ... ADD FOREIGN KEY for CHAIN sets")
	noUpload := flag.Bool("no-upload", false, "skip uploading the SQL script and copybooks")
	serveAddr := flag.String("serve", "", "if set, run the HTTP trigger server on this address instead of a one-shot run")
	verifyDSN := flag.Bool("verify-dsn", false, "check connectivity to the target schema and exit, without running a migration")
	dsnHost := flag.String("dsn-host", "127.0.0.1", "target MySQL host, used with --verify-dsn")
	dsnPort := flag.Int("dsn-port", 3306, "target MySQL port, used with --verify-dsn")
	dsnUser := flag.String("dsn-user", "", "target MySQL user, used with --verify-dsn")
	dsnPassword := flag.String("dsn-password", "", "target MySQL password, used with --verify-dsn")
	dsnSchema := flag.String("dsn-schema", "", "target MySQL schema name, used with --verify-dsn")
	flag.Parse()

	if *verifyDSN {
		dsn := mysql.BuildDSN(*dsnUser, *dsnPassword, *dsnHost, *dsnPort, *dsnSchema)
		if err := mysql.VerifyReachable(context.Background(), dsn); err != nil {
			fmt.Printf("dsn unreachable: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("dsn reachable: %s:%d/%s\n", *dsnHost, *dsnPort, *dsnSchema)
		return
	}

	if *serveAddr == "" && (*basePath == "" || *copybookOut == "") {
		fmt.Println("usage: idmsmigrate --base-path=<name> --copybook-out=<prefix> [--config=<file>] [--migrate-fks] [--no-upload]")
		fmt.Println("   or: idmsmigrate --serve=<addr> [--config=<file>]")
		fmt.Println("   or: idmsmigrate --verify-dsn [--dsn-host=<host>] [--dsn-port=<port>] [--dsn-user=<user>] [--dsn-password=<pass>] [--dsn-schema=<name>]")
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Printf("loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	store, err := blobstore.NewFileStore(map[string]string{
		cfg.Buckets.Primary:   *storageRoot + "/" + cfg.Buckets.Primary,
		cfg.Buckets.Secondary: *storageRoot + "/" + cfg.Buckets.Secondary,
	})
	if err != nil {
		fmt.Printf("opening storage root: %v\n", err)
		os.Exit(1)
	}

	// Pointer- and interface-typed services resolve through a factory, the
	// only wiring this container's reflection-based Register can do without
	// the caller copying the service by value.
	container := di.NewContainer()
	mustRegisterFactory(container, func() *logger.Logger { return logger.NewLogger(logger.Config{Level: logger.INFO}) })
	mustRegisterFactory(container, func() *monitoring.MetricsCollector { return monitoring.NewMetricsCollector() })
	mustRegisterFactory(container, func() blobstore.Store { return store })
	mustRegister(container, cfg)

	var log *logger.Logger
	mustResolve(container, &log)
	var metrics *monitoring.MetricsCollector
	mustResolve(container, &metrics)
	var resolvedStore blobstore.Store
	mustResolve(container, &resolvedStore)
	var resolvedCfg config.File
	mustResolve(container, &resolvedCfg)

	o := job.NewOrchestrator(resolvedStore, log, metrics, resolvedCfg)

	if *serveAddr != "" {
		log.Info("starting http trigger server", map[string]interface{}{"addr": *serveAddr})
		if err := http.ListenAndServe(*serveAddr, newRouter(o, log)); err != nil {
			fmt.Printf("http server: %v\n", err)
			os.Exit(1)
		}
		return
	}

	upload := !*noUpload
	req := job.TriggerRequest{
		BasePath:             *basePath,
		CobolCopybookOutPath: *copybookOut,
		UploadToS3:           &upload,
		MigrateFKs:           migrateFKs,
	}

	result, err := o.Run(context.Background(), req)
	if err != nil {
		fmt.Printf("migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("migration complete: sql=%s/%s copybooks=%d\n", result.PrimaryBucket, result.SQLKey, len(result.CopybookKeys))
}

func mustRegister(c *di.Container, service interface{}) {
	if err := c.Register(service); err != nil {
		fmt.Printf("registering %T: %v\n", service, err)
		os.Exit(1)
	}
}

func mustRegisterFactory(c *di.Container, factory interface{}) {
	if err := c.RegisterFactory(factory); err != nil {
		fmt.Printf("registering factory %T: %v\n", factory, err)
		os.Exit(1)
	}
}

func mustResolve(c *di.Container, target interface{}) {
	if err := c.Resolve(target); err != nil {
		fmt.Printf("resolving %T: %v\n", target, err)
		os.Exit(1)
	}
}
