package main

import (
	"log"
	"os"
	"path/filepath"
	"runtime"

	"csvgen/src/config"

	"github.com/pingcap/errors"
	"golang.org/x/sync/errgroup"
)

// fixtureFiles lists files in the output directory sharing the configured
// output path's extension.
func fixtureFiles(cfg *config.Config) ([]string, error) {
	dir := filepath.Dir(cfg.Common.Path)
	ext := filepath.Ext(cfg.Common.Path)

	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if ext == "" || filepath.Ext(path) == ext {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return files, nil
}

// ShowFiles prints the name and size of every generated fixture file.
func ShowFiles(cfg *config.Config) error {
	files, err := fixtureFiles(cfg)
	if err != nil {
		return err
	}

	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			return errors.Trace(err)
		}
		log.Printf("Name: %s, Size: %d, Size (MiB): %f", path, info.Size(), float64(info.Size())/1024/1024)
	}
	return nil
}

// DeleteFiles removes every generated fixture file.
func DeleteFiles(cfg *config.Config) error {
	files, err := fixtureFiles(cfg)
	if err != nil {
		return err
	}

	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())
	for _, path := range files {
		p := path
		eg.Go(func() error {
			return os.Remove(p)
		})
	}

	return errors.Trace(eg.Wait())
}
