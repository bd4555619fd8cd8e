package generator

import (
	"fmt"
	"strings"
	"time"

	"csvgen/src/config"
	"csvgen/src/util"

	"github.com/docker/go-units"
	"github.com/google/uuid"
	"github.com/pingcap/errors"
)

// Orchestrator drives batched row generation until the output file reaches the
// configured target size.
type Orchestrator struct {
	gen    formatGenerator
	cfg    *config.Config
	logger *util.ProgressLogger
	runID  string
}

// NewOrchestrator creates an orchestrator using the config and its name table.
func NewOrchestrator(cfg *config.Config) (*Orchestrator, error) {
	names, err := cfg.ResolveNames()
	if err != nil {
		return nil, errors.Trace(err)
	}

	source := newRowSource(cfg.Common.Seed, names)
	logger := util.NewProgressLogger(cfg.Common.SizeBytes, "writing", time.Second)

	gen, err := newGenerator(cfg, source, logger)
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		gen:    gen,
		cfg:    cfg,
		logger: logger,
		runID:  uuid.NewString(),
	}, nil
}

func newGenerator(cfg *config.Config, source *rowSource, logger *util.ProgressLogger) (formatGenerator, error) {
	switch strings.ToLower(cfg.Common.FileFormat) {
	case "parquet":
		return newParquetGenerator(cfg, source, logger), nil
	case "csv":
		return newCSVGenerator(cfg, source, logger), nil
	default:
		return nil, errors.Errorf("unsupported file format: %s", cfg.Common.FileFormat)
	}
}

// Run generates batches until the output size reaches the target. The size is
// checked only after a whole batch has been flushed, so at least one batch is
// always written (target 0 included) and the final size may exceed the target
// by up to one batch's worth of bytes.
func (o *Orchestrator) Run() error {
	var (
		start        = time.Now()
		path         = o.cfg.Common.Path
		target       = o.cfg.Common.SizeBytes
		batchRows    = int64(o.cfg.Common.BatchRows)
		progressRows = int64(o.cfg.Common.ProgressRows)
	)

	fmt.Printf("Run %s: generating a %s %s file at %s...\n",
		o.runID, units.BytesSize(float64(target)), o.gen.FileSuffix(), path)
	fmt.Println("This process may take a significant amount of time and disk space.")

	if err := o.gen.Open(path); err != nil {
		return errors.Trace(err)
	}

	var rows int64
	for {
		if err := o.gen.WriteBatch(int(batchRows)); err != nil {
			return errors.Annotatef(err, "failed writing to %s", path)
		}
		rows += batchRows
		o.logger.UpdateRows(batchRows)

		size, err := o.gen.Size()
		if err != nil {
			return errors.Annotatef(err, "failed to query size of %s", path)
		}

		if rows%progressRows == 0 {
			fmt.Printf("Generated %d rows. Current file size: %.2fGiB\n",
				rows, float64(size)/float64(units.GiB))
		}

		if size >= target {
			break
		}
	}

	if err := o.gen.Close(); err != nil {
		return errors.Annotatef(err, "failed to finalize %s", path)
	}

	finalSize, err := o.gen.Size()
	if err != nil {
		return errors.Annotatef(err, "failed to query size of %s", path)
	}
	o.logger.Finish()

	o.printSummary(rows, finalSize, time.Since(start))
	return nil
}

func (o *Orchestrator) printSummary(rows, size int64, elapsed time.Duration) {
	throughput := 0.0
	if elapsed.Seconds() > 0 {
		throughput = float64(size) / elapsed.Seconds()
	}

	fmt.Println("Summary:")
	fmt.Printf("  Run: %s\n", o.runID)
	fmt.Printf("  Format: %s\n", o.gen.FileSuffix())
	fmt.Printf("  Rows: %d\n", rows)
	fmt.Printf("  Size: %s (%.2fGiB)\n", units.BytesSize(float64(size)), float64(size)/float64(units.GiB))
	fmt.Printf("  Elapsed: %s\n", elapsed)
	fmt.Printf("  Throughput: %s/s\n", units.BytesSize(throughput))
	fmt.Printf("  Path: %s\n", o.cfg.Common.Path)
}
