package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/evadvisor/internal/model"
	"github.com/ppiankov/evadvisor/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	concurrency  int
	batchOutput  string
	batchRole    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Answer many messages from a file in parallel",
	Long: `Batch answers every message in a file concurrently:
- One message per line; blank lines and # comments are skipped
- Duplicate lines are answered once
- Results keep the input order
- Output is CSV or JSON (by --output extension), or a table on stdout

Example:
  evadvisor batch questions.txt
  evadvisor batch questions.txt --output answers.csv
  evadvisor batch questions.txt --mode learned --concurrency 8 --output answers.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: batch.workers)")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "output file (.csv or .json); stdout table if empty")
	batchCmd.Flags().StringVar(&batchRole, "role", "", "answer every message as this role")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 5*time.Minute, "total timeout for batch processing")

	_ = viper.BindPFlag("batch.workers", batchCmd.Flags().Lookup("concurrency"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	role, err := model.ParseRole(batchRole)
	if err != nil {
		return err
	}

	cfg, p, err := buildPipeline()
	if err != nil {
		return err
	}
	workers := cfg.Batch.Workers

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  evadvisor Batch\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Resolver:     %s\n", p.Mode())
	fmt.Fprintf(os.Stderr, "  Role:         %s\n", role)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(os.Stderr, "\n")

	processor := worker.NewBatchProcessor(p, workers)
	results, err := processor.ProcessFile(ctx, file, role)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	failures := 0
	counts := make(map[model.Intent]int)
	for _, r := range results {
		if r.Error != nil {
			failures++
			continue
		}
		counts[r.Reply.Intent]++
	}

	if err := writeBatch(cmd.OutOrStdout(), batchOutput, results); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d messages\n", len(results))
	for _, in := range model.Intents() {
		if counts[in] > 0 {
			fmt.Fprintf(os.Stderr, "  %-15s %d\n", in.String()+":", counts[in])
		}
	}
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failures)
	if batchOutput != "" {
		fmt.Fprintf(os.Stderr, "  Output:    %s\n", batchOutput)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if failures > 0 {
		return fmt.Errorf("%d of %d messages not answered", failures, len(results))
	}
	return nil
}

// writeBatch writes results to path, or a table to out when path is empty
func writeBatch(out io.Writer, path string, results []*worker.BatchResult) (err error) {
	if path == "" {
		for _, r := range results {
			if r.Error != nil {
				fmt.Fprintf(out, "✗ %s: %v\n", r.Message, r.Error)
				continue
			}
			fmt.Fprintf(out, "[%s] %s\n    %s\n", r.Reply.Intent, r.Message, r.Reply.Response)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return writeBatchJSON(f, results)
	}
	return writeBatchCSV(f, results)
}

type batchRecord struct {
	Index int          `json:"index"`
	Reply *model.Reply `json:"reply,omitempty"`
	Query string       `json:"message"`
	Error string       `json:"error,omitempty"`
}

func writeBatchJSON(w io.Writer, results []*worker.BatchResult) error {
	records := make([]batchRecord, len(results))
	for i, r := range results {
		records[i] = batchRecord{Index: r.Index, Reply: r.Reply, Query: r.Message}
		if r.Error != nil {
			records[i].Error = r.Error.Error()
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}

func writeBatchCSV(w io.Writer, results []*worker.BatchResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "message", "intent", "source", "role", "cluster", "response", "error"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range results {
		row := []string{strconv.Itoa(r.Index), r.Message, "", "", "", "", "", ""}
		if r.Reply != nil {
			row[2] = r.Reply.Intent.String()
			row[3] = string(r.Reply.Source)
			row[4] = r.Reply.Role.String()
			row[5] = r.Reply.Cluster.String()
			row[6] = r.Reply.Response
		}
		if r.Error != nil {
			row[7] = r.Error.Error()
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", r.Index, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
