package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer stores one benchmark run as CSV files under a timestamped
// directory.
type Writer struct {
	baseDir string
}

func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) BaseDir() string { return w.baseDir }

func (w *Writer) WriteMatchConfigs(configs []MatchConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			c.Variant,
			strconv.FormatUint(c.Seed, 10),
			c.RedAgent,
			c.BlueAgent,
		})
	}
	return w.writeFile("match_configs.csv",
		[]string{"id", "variant", "seed", "red_agent", "blue_agent"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			r.Variant,
			strconv.FormatUint(r.Seed, 10),
			r.RedAgent,
			r.BlueAgent,
			r.Status,
			r.Winner,
			strconv.Itoa(r.Turns),
			r.StartTime.Format(time.RFC3339),
			r.EndTime.Format(time.RFC3339),
			r.Duration.String(),
		})
	}
	return w.writeFile("game_records.csv",
		[]string{"id", "variant", "seed", "red_agent", "blue_agent", "status", "winner", "turns", "start_time", "end_time", "duration"},
		rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.Game),
			strconv.Itoa(r.Turn),
			r.Player,
			r.Move,
			r.Outcome,
			strconv.Itoa(r.Rejected),
			r.Duration.String(),
		})
	}
	return w.writeFile("move_records.csv",
		[]string{"game", "turn", "player", "move", "outcome", "rejected", "duration"}, rows)
}

func (w *Writer) writeFile(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}
	return nil
}
