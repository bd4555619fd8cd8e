package generator

import (
	"io"
	"os"
	"strings"

	"csvgen/src/config"
	"csvgen/src/util"

	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/schema"
	"github.com/pingcap/errors"
)

// writeWrapper adapts an io.Writer to the interface expected by the parquet
// file writer.
type writeWrapper struct {
	w io.Writer
}

func (ww *writeWrapper) Seek(offset int64, whence int) (int64, error) {
	return 0, nil
}

func (ww *writeWrapper) Read(b []byte) (int, error) {
	return 0, nil
}

func (ww *writeWrapper) Write(b []byte) (int, error) {
	return ww.w.Write(b)
}

func (ww *writeWrapper) Close() error {
	return nil
}

// ParquetGenerator implements formatGenerator for Parquet files with the fixed
// id/name/age schema. Each batch becomes one row group. The parquet writer
// buffers pages internally and only pushes a row group out on close, so the
// size oracle is the counting writer rather than a filesystem query; the
// overshoot bound is still one batch.
type ParquetGenerator struct {
	cfg    *config.Config
	source *rowSource
	logger *util.ProgressLogger

	f        *os.File
	counting *util.CountingWriter
	w        *file.Writer

	ids       []parquet.ByteArray
	names     []parquet.ByteArray
	ages      []int32
	defLevels []int16
}

func newParquetGenerator(cfg *config.Config, source *rowSource, logger *util.ProgressLogger) *ParquetGenerator {
	return &ParquetGenerator{
		cfg:    cfg,
		source: source,
		logger: logger,
	}
}

func (g *ParquetGenerator) FileSuffix() string {
	return "parquet"
}

func compressionCodec(name string) (compress.Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "snappy":
		return compress.Codecs.Snappy, nil
	case "zstd":
		return compress.Codecs.Zstd, nil
	case "gzip":
		return compress.Codecs.Gzip, nil
	case "brotli":
		return compress.Codecs.Brotli, nil
	case "lz4_raw", "lz4":
		return compress.Codecs.Lz4Raw, nil
	case "uncompressed", "none":
		return compress.Codecs.Uncompressed, nil
	default:
		return compress.Codecs.Uncompressed, errors.Errorf("unsupported parquet compression: %q", name)
	}
}

func (g *ParquetGenerator) schemaNode() (*schema.GroupNode, error) {
	idNode, err := schema.NewPrimitiveNodeConverted(
		"id", parquet.Repetitions.Optional,
		parquet.Types.ByteArray, schema.ConvertedTypes.UTF8,
		0, 0, 0, -1,
	)
	if err != nil {
		return nil, errors.Trace(err)
	}

	nameNode, err := schema.NewPrimitiveNodeConverted(
		"name", parquet.Repetitions.Optional,
		parquet.Types.ByteArray, schema.ConvertedTypes.UTF8,
		0, 0, 0, -1,
	)
	if err != nil {
		return nil, errors.Trace(err)
	}

	ageNode, err := schema.NewPrimitiveNodeConverted(
		"age", parquet.Repetitions.Optional,
		parquet.Types.Int32, schema.ConvertedTypes.Int32,
		0, 0, 0, -1,
	)
	if err != nil {
		return nil, errors.Trace(err)
	}

	fields := []schema.Node{idNode, nameNode, ageNode}
	node, err := schema.NewGroupNode("schema", parquet.Repetitions.Required, fields, -1)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return node, nil
}

func (g *ParquetGenerator) Open(path string) error {
	codec, err := compressionCodec(g.cfg.Parquet.Compression)
	if err != nil {
		return err
	}

	node, err := g.schemaNode()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Annotatef(err, "failed to create %s", path)
	}
	g.f = f
	g.counting = util.NewCountingWriter(f, g.logger)

	props := parquet.NewWriterProperties(
		parquet.WithDataPageSize(g.cfg.Parquet.PageSizeBytes),
		parquet.WithDataPageVersion(parquet.DataPageV2),
		parquet.WithVersion(parquet.V2_LATEST),
		parquet.WithCompression(codec),
	)
	g.w = file.NewParquetWriter(&writeWrapper{w: g.counting}, node, file.WithWriterProps(props))
	return nil
}

func (g *ParquetGenerator) ensureBuffers(n int) {
	if len(g.ids) >= n {
		return
	}
	g.ids = make([]parquet.ByteArray, n)
	g.names = make([]parquet.ByteArray, n)
	g.ages = make([]int32, n)
	g.defLevels = make([]int16, n)
	for i := range g.defLevels {
		g.defLevels[i] = 1
	}
}

// WriteBatch appends n rows as one row group.
func (g *ParquetGenerator) WriteBatch(n int) error {
	g.ensureBuffers(n)
	for i := range n {
		g.ids[i] = parquet.ByteArray(g.source.nextID())
		g.names[i] = parquet.ByteArray(g.source.nextName())
		g.ages[i] = int32(g.source.nextAge())
	}

	rgw := g.w.AppendRowGroup()
	if err := writeByteArrayColumn(rgw, g.ids[:n], g.defLevels[:n]); err != nil {
		return err
	}
	if err := writeByteArrayColumn(rgw, g.names[:n], g.defLevels[:n]); err != nil {
		return err
	}
	if err := writeInt32Column(rgw, g.ages[:n], g.defLevels[:n]); err != nil {
		return err
	}
	return errors.Trace(rgw.Close())
}

func writeByteArrayColumn(rgw file.SerialRowGroupWriter, values []parquet.ByteArray, defLevels []int16) error {
	cw, err := rgw.NextColumn()
	if err != nil {
		return errors.Trace(err)
	}
	w, ok := cw.(*file.ByteArrayColumnChunkWriter)
	if !ok {
		return errors.Errorf("unexpected column writer type %T", cw)
	}
	if _, err := w.WriteBatch(values, defLevels, nil); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(cw.Close())
}

func writeInt32Column(rgw file.SerialRowGroupWriter, values []int32, defLevels []int16) error {
	cw, err := rgw.NextColumn()
	if err != nil {
		return errors.Trace(err)
	}
	w, ok := cw.(*file.Int32ColumnChunkWriter)
	if !ok {
		return errors.Errorf("unexpected column writer type %T", cw)
	}
	if _, err := w.WriteBatch(values, defLevels, nil); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(cw.Close())
}

func (g *ParquetGenerator) Size() (int64, error) {
	return g.counting.BytesWritten(), nil
}

func (g *ParquetGenerator) Close() error {
	if err := g.w.Close(); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(g.f.Close())
}
