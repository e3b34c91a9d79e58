// Command ingest runs the historic-data pipeline over local files and
// prints the results as JSON.
//
//	ingest --type campaigns --file q1.csv --file q2.tsv
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/AngelCh415/landing-insights/internal/config"
	"github.com/AngelCh415/landing-insights/internal/ingest"
	"github.com/AngelCh415/landing-insights/internal/models"
)

func main() {
	var (
		files    = flag.StringSliceP("file", "f", nil, "input file (repeatable)")
		dataType = flag.StringP("type", "t", "campaigns", "data type: campaigns or experiments")
		fileType = flag.String("file-type", "", "force file type (csv, tsv, excel); inferred from extension when empty")
		synonyms = flag.String("synonyms", "", "YAML file with extra column synonyms")
		records  = flag.Bool("records", false, "include reconciled records in the output")
		verbose  = flag.BoolP("verbose", "v", false, "debug logging to stderr")
	)
	flag.Parse()
	paths := append(*files, flag.Args()...)

	lvl := slog.LevelWarn
	if *verbose {
		lvl = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	if err := run(logger, paths, *dataType, *fileType, *synonyms, *records); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, files []string, dataType, fileType, synonyms string, withRecords bool) error {
	if len(files) == 0 {
		return fmt.Errorf("no input files")
	}
	dt, ok := models.ParseDataType(dataType)
	if !ok {
		return ingest.ErrUnknownDataType
	}
	var ft models.FileType
	if fileType != "" {
		if ft, ok = models.ParseFileType(fileType); !ok {
			return fmt.Errorf("unknown file type %q", fileType)
		}
	}
	overrides, err := ingest.LoadSynonymFile(synonyms)
	if err != nil {
		return err
	}

	ups := make([]ingest.Upload, 0, len(files))
	for _, path := range files {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		ups = append(ups, ingest.Upload{FileName: filepath.Base(path), FileType: ft, DataType: dt, Content: b})
	}

	p := ingest.NewPipeline(nil, ingest.NewReconciler(ingest.WithOverrides(overrides)), nil, logger, config.FromEnv())
	results, err := p.ProcessAll(context.Background(), ups)
	if err != nil {
		return err
	}
	if !withRecords {
		for _, r := range results {
			r.Campaigns, r.Experiments = nil, nil
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
