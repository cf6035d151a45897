package session

import (
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
)

var csvHeader = []string{"position", "speaker", "intent", "text", "at"}

// WriteCSV writes turns as CSV with a header row
func WriteCSV(w io.Writer, turns []model.ChatTurn) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range turns {
		in := ""
		if t.Intent != nil {
			in = t.Intent.String()
		}
		record := []string{
			strconv.Itoa(t.Position),
			string(t.Speaker),
			in,
			t.Text,
			t.At.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write turn %d: %w", t.Position, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes turns as an indented JSON array
func WriteJSON(w io.Writer, turns []model.ChatTurn) error {
	if turns == nil {
		turns = []model.ChatTurn{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(turns); err != nil {
		return fmt.Errorf("encode turns: %w", err)
	}
	return nil
}

// ExportFile writes turns to path; the format follows the extension
// (.json, anything else is CSV)
func ExportFile(path string, turns []model.ChatTurn) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close export file: %w", closeErr)
		}
	}()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return WriteJSON(f, turns)
	}
	return WriteCSV(f, turns)
}
