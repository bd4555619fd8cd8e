package generator

import (
	"bufio"
	"encoding/csv"
	"os"

	"csvgen/src/config"
	"csvgen/src/util"

	"github.com/docker/go-units"
	"github.com/pingcap/errors"
)

var csvHeader = []string{"id", "name", "age"}

// CSVGenerator implements formatGenerator for CSV files. Records go through
// encoding/csv, so fields containing the separator, quotes or newlines are
// quoted per RFC 4180 even though generated fields never need it.
type CSVGenerator struct {
	cfg    *config.Config
	source *rowSource
	logger *util.ProgressLogger

	path     string
	file     *os.File
	buffered *bufio.Writer
	w        *csv.Writer
}

func newCSVGenerator(cfg *config.Config, source *rowSource, logger *util.ProgressLogger) *CSVGenerator {
	return &CSVGenerator{
		cfg:    cfg,
		source: source,
		logger: logger,
	}
}

func (g *CSVGenerator) FileSuffix() string {
	return "csv"
}

func (g *CSVGenerator) Open(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Annotatef(err, "failed to create %s", path)
	}

	g.path = path
	g.file = file
	g.buffered = bufio.NewWriterSize(util.NewCountingWriter(file, g.logger), 64*units.KiB)
	g.w = csv.NewWriter(g.buffered)
	if sep := g.cfg.CSV.Separator; sep != "" {
		g.w.Comma = []rune(sep)[0]
	}

	if err := g.w.Write(csvHeader); err != nil {
		return errors.Trace(err)
	}
	return nil
}

// WriteBatch appends n rows and flushes both buffer layers so the on-disk
// size query reflects every row written so far.
func (g *CSVGenerator) WriteBatch(n int) error {
	for range n {
		if err := g.w.Write(g.source.nextRecord()); err != nil {
			return errors.Trace(err)
		}
	}

	g.w.Flush()
	if err := g.w.Error(); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(g.buffered.Flush())
}

func (g *CSVGenerator) Size() (int64, error) {
	info, err := os.Stat(g.path)
	if err != nil {
		return 0, errors.Trace(err)
	}
	return info.Size(), nil
}

func (g *CSVGenerator) Close() error {
	g.w.Flush()
	if err := g.w.Error(); err != nil {
		return errors.Trace(err)
	}
	if err := g.buffered.Flush(); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(g.file.Close())
}
