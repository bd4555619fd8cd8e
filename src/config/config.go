package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/docker/go-units"
	"github.com/pingcap/errors"
)

const (
	defaultOutputPath    = "large_data.csv"
	defaultTargetSize    = "10GiB"
	defaultBatchRows     = 10000
	defaultProgressRows  = 100000
	defaultPageSizeBytes = units.MiB
	defaultCompression   = "snappy"
)

// DefaultNames is the built-in name table used when no [names] section is configured.
var DefaultNames = []string{
	"Liam", "Noah", "Jack", "Levi", "Owen", "John", "Leo", "Luke", "Ezra", "Luca",
	"Alex", "Alan", "Ben", "Kyle", "Kurt", "Lou", "Matt", "Ryan", "Mia", "Elias",
	"Mila", "Nova", "Axel", "Leon", "Amara", "Finn", "Molly", "Brian", "Dante",
	"Rhys", "Thea", "Otis", "Rohan", "Anne", "Britt", "Brooks", "Cash", "Dane",
	"Eve", "Gem", "Huck", "Ivy", "Lael", "Mack", "Maeve", "Nell", "Onyx", "Pace",
	"Quinn", "Reed", "Scout", "Taft", "Ula", "Van", "Wade", "West",
}

type CommonConfig struct {
	Path         string `toml:"path"`
	Size         string `toml:"size"`
	FileFormat   string `toml:"format"`
	BatchRows    int    `toml:"batch_rows"`
	ProgressRows int    `toml:"progress_rows"`
	Seed         int64  `toml:"seed,omitempty"`

	// SizeBytes is derived at runtime and not read from config.
	SizeBytes int64 `toml:"-"`
}

type CSVConfig struct {
	Separator string `toml:"separator,omitempty"`
}

type ParquetConfig struct {
	PageSize    string `toml:"page_size"`
	Compression string `toml:"compression"`

	// PageSizeBytes is derived at runtime and not read from config.
	PageSizeBytes int64 `toml:"-"`
}

type NamesConfig struct {
	List []string `toml:"list"`
	File string   `toml:"file,omitempty"`
}

type Config struct {
	Common  CommonConfig  `toml:"common"`
	CSV     CSVConfig     `toml:"csv"`
	Parquet ParquetConfig `toml:"parquet"`
	Names   NamesConfig   `toml:"names"`
}

// Default returns a config matching the built-in fixture profile.
func Default() *Config {
	return &Config{
		Common: CommonConfig{
			Path:         defaultOutputPath,
			Size:         defaultTargetSize,
			FileFormat:   "csv",
			BatchRows:    defaultBatchRows,
			ProgressRows: defaultProgressRows,
		},
		Parquet: ParquetConfig{
			Compression: defaultCompression,
		},
	}
}

// Load reads a TOML config file, fills defaults and resolves derived values.
// An empty path yields the default config.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, errors.Annotatef(err, "failed to load config from %s", path)
		}
	}

	if err := Normalize(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize resolves derived config values after loading.
func Normalize(cfg *Config) error {
	if cfg.Common.FileFormat == "" {
		cfg.Common.FileFormat = "csv"
	}
	if cfg.Common.BatchRows == 0 {
		cfg.Common.BatchRows = defaultBatchRows
	}
	if cfg.Common.ProgressRows == 0 {
		cfg.Common.ProgressRows = defaultProgressRows
	}
	if cfg.Parquet.Compression == "" {
		cfg.Parquet.Compression = defaultCompression
	}

	sizeBytes, err := cfg.Common.resolveSizeBytes()
	if err != nil {
		return err
	}
	cfg.Common.SizeBytes = sizeBytes

	pageBytes, err := cfg.Parquet.resolvePageSizeBytes()
	if err != nil {
		return err
	}
	cfg.Parquet.PageSizeBytes = pageBytes
	return nil
}

// Validate returns a user-friendly error if the configuration is invalid.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Common.Path == "" {
		errs = append(errs, "common.path is required")
	}
	if cfg.Common.SizeBytes < 0 {
		errs = append(errs, "common.size must not be negative")
	}
	if cfg.Common.BatchRows <= 0 {
		errs = append(errs, "common.batch_rows must be greater than 0")
	}
	if cfg.Common.ProgressRows <= 0 {
		errs = append(errs, "common.progress_rows must be greater than 0")
	}

	format := strings.ToLower(strings.TrimSpace(cfg.Common.FileFormat))
	switch format {
	case "csv", "parquet":
	default:
		errs = append(errs, "common.format must be csv or parquet")
	}

	if sep := cfg.CSV.Separator; sep != "" {
		if len([]rune(sep)) != 1 {
			errs = append(errs, "csv.separator must be a single character")
		} else if sep == "\"" || sep == "\r" || sep == "\n" {
			errs = append(errs, "csv.separator must not be a quote or newline")
		}
	}

	if format == "parquet" && cfg.Parquet.PageSizeBytes <= 0 {
		errs = append(errs, "parquet.page_size must be greater than 0")
	}

	if len(errs) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("invalid config:\n")
	for _, err := range errs {
		sb.WriteString(" - ")
		sb.WriteString(err)
		sb.WriteString("\n")
	}
	return fmt.Errorf("%s", strings.TrimRight(sb.String(), "\n"))
}

// ResolveNames returns the name table for this run. An explicitly empty list is
// honored; an absent [names] section falls back to DefaultNames.
func (c *Config) ResolveNames() ([]string, error) {
	if c.Names.File != "" {
		data, err := os.ReadFile(c.Names.File)
		if err != nil {
			return nil, errors.Annotatef(err, "failed to read name table from %s", c.Names.File)
		}
		var names []string
		for _, line := range strings.Split(string(data), "\n") {
			if name := strings.TrimSpace(line); name != "" {
				names = append(names, name)
			}
		}
		return names, nil
	}

	if c.Names.List != nil {
		return c.Names.List, nil
	}
	return DefaultNames, nil
}

func (c *CommonConfig) resolveSizeBytes() (int64, error) {
	if c.Size == "" {
		return 0, nil
	}
	bytes, err := units.RAMInBytes(c.Size)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", c.Size, err)
	}
	return bytes, nil
}

func (c *ParquetConfig) resolvePageSizeBytes() (int64, error) {
	if c.PageSize != "" {
		bytes, err := units.RAMInBytes(c.PageSize)
		if err != nil {
			return 0, fmt.Errorf("invalid page_size %q: %w", c.PageSize, err)
		}
		if bytes <= 0 {
			return 0, fmt.Errorf("invalid page_size %q: must be greater than 0", c.PageSize)
		}
		return bytes, nil
	}
	return defaultPageSizeBytes, nil
}
