package generator

// formatGenerator writes batches of rows in one output format and reports the
// bytes visible at the destination.
type formatGenerator interface {
	FileSuffix() string

	// Open prepares the destination file and writes any leading metadata,
	// such as the CSV header record.
	Open(path string) error

	// WriteBatch appends n rows and flushes them so that a subsequent Size
	// call reflects them.
	WriteBatch(n int) error

	// Size reports the destination's current size in bytes.
	Size() (int64, error)

	Close() error
}
