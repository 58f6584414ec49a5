package main

import (
	"bufio"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/pflag"

	"github.com/emmetools/mtx2csv/internal/mtx"
)

func main() {
	column := pflag.BoolP("column", "c", false, "write long-form Origin,Destination,Value CSV")
	compress := pflag.BoolP("compress", "z", false, "gzip-compress the CSV output")
	npy := pflag.Bool("npy", false, "write a numpy .npy file instead of CSV")
	jobs := pflag.IntP("jobs", "j", runtime.NumCPU(), "number of files to convert in parallel")
	pflag.Parse()

	if pflag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-c] [-z] [--npy] <input1.mtx(.gz) | dir | dir/*> [...]\n", os.Args[0])
		os.Exit(1)
	}

	files := gatherFiles(pflag.Args())
	if len(files) == 0 {
		slog.Error("no .mtx or .mtx.gz files found")
		os.Exit(1)
	}

	workers := *jobs
	if workers < 1 {
		workers = 1
	}

	// One file per task, no shared state between tasks.
	var failed atomic.Int64
	paths := make(chan string, workers)
	var wg sync.WaitGroup

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for path := range paths {
				if err := processFile(path, *column, *compress, *npy); err != nil {
					slog.Error("conversion failed", "path", path, "err", err)
					failed.Add(1)
				}
			}
		}()
	}

	for _, path := range files {
		paths <- path
	}
	close(paths)
	wg.Wait()

	if failed.Load() > 0 {
		os.Exit(1)
	}
}

// processFile decodes one matrix file and writes it back out in the selected
// encoding. The output sits next to the input with the encoding's suffix
// appended.
func processFile(path string, column, compress, npy bool) error {
	matrix, err := mtx.FromEmmeFile(path)
	if err != nil {
		return err
	}

	if npy {
		return matrix.ToNpy(path + ".npy")
	}

	outPath := path + ".csv"
	if compress {
		outPath += ".gz"
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}

	var w *bufio.Writer
	var gz *gzip.Writer
	if compress {
		gz = gzip.NewWriter(f)
		w = bufio.NewWriter(gz)
	} else {
		w = bufio.NewWriter(f)
	}

	if column {
		err = matrix.WriteCSVLong(w)
	} else {
		err = matrix.WriteCSVSquare(w)
	}
	if err == nil {
		err = w.Flush()
	}
	if gz != nil {
		if cerr := gz.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// gatherFiles expands the command line into the list of matrix files to
// convert. Plain files are taken as-is; directories, and the "dir/*" form a
// shell without glob expansion passes through, are walked recursively.
func gatherFiles(args []string) []string {
	var files []string

	for _, arg := range args {
		if strings.HasSuffix(arg, "*") {
			dir := strings.TrimSuffix(arg, "*")
			if dir == "" {
				dir = "."
			}
			exploreDirectory(dir, &files)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			slog.Error("cannot stat input", "path", arg, "err", err)
			continue
		}
		if info.IsDir() {
			exploreDirectory(arg, &files)
		} else {
			files = append(files, arg)
		}
	}

	return files
}

// exploreDirectory collects .mtx and .mtx.gz files under dir recursively.
// Unreadable entries are logged and skipped so one bad subtree never aborts
// the walk.
func exploreDirectory(dir string, files *[]string) {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Error("cannot read directory entry", "path", path, "err", err)
			return nil
		}
		if d.Type().IsRegular() && isMatrixFile(path) {
			*files = append(*files, path)
		}
		return nil
	})
	if err != nil {
		slog.Error("directory walk failed", "path", dir, "err", err)
	}
}

// isMatrixFile reports whether path names an EMME matrix file: .mtx, or a
// .gz whose stem ends in mtx.
func isMatrixFile(path string) bool {
	switch filepath.Ext(path) {
	case ".mtx":
		return true
	case ".gz":
		return strings.HasSuffix(strings.TrimSuffix(path, ".gz"), "mtx")
	default:
		return false
	}
}
