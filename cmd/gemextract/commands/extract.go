package commands

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Palash-creator/gem-extract/internal/logger"
	"github.com/Palash-creator/gem-extract/pkg/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract field values from local text files",
	Long: `Run one-shot extraction over local files and print the records.

Examples:
  gemextract extract --fields company,person report.txt
  gemextract extract --fields title,author --format csv -o out.csv *.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()
	flags.StringSliceP("fields", "f", nil, "field names to extract (required)")
	flags.StringP("model", "m", extract.DefaultModel, "model identifier")
	flags.StringP("api-key", "k", "", "API key (or use env var)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "output format: json, csv")

	_ = extractCmd.MarkFlagRequired("fields")
}

// extractOutput is the JSON shape printed by the extract command.
type extractOutput struct {
	Fields  []string         `json:"fields"`
	Records []extract.Record `json:"records"`
	Logs    []string         `json:"logs"`
	Engine  string           `json:"engine"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rawFields, _ := cmd.Flags().GetStringSlice("fields")
	fields := extract.NormalizeFields(rawFields)
	if len(fields) == 0 {
		logError("no usable field names given")
		return extract.ErrNoFields
	}

	docs := make([]extract.Document, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			logError("failed to read %s: %v", path, err)
			return err
		}
		docs = append(docs, extract.Document{Name: path, Text: string(data)})
	}

	model, _ := cmd.Flags().GetString("model")
	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = viper.GetString("api_key")
	}

	result, err := newAdapter(model, apiKey).Extract(ctx, docs, fields, "")
	if err != nil {
		logError("extraction failed: %v", err)
		return err
	}

	for _, line := range result.Logs {
		logInfo("%s", line)
	}

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			logError("failed to create %s: %v", path, err)
			return err
		}
		defer f.Close()
		out = f
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		return writeJSONOutput(out, fields, result)
	case "csv":
		return writeCSVOutput(out, fields, result)
	default:
		err := fmt.Errorf("unknown format: %s (use json or csv)", format)
		logError("%v", err)
		return err
	}
}

func writeJSONOutput(w io.Writer, fields []string, result *extract.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(extractOutput{
		Fields:  append([]string{extract.DocumentKey}, fields...),
		Records: result.Records,
		Logs:    result.Logs,
		Engine:  result.Engine,
	})
}

func writeCSVOutput(w io.Writer, fields []string, result *extract.Result) error {
	cols := append([]string{extract.DocumentKey}, fields...)

	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	for _, rec := range result.Records {
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = rec[col]
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
