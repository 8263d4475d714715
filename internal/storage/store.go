package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/algoviz/internal/engine"
)

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.csv"
)

var ErrEmptyRun = errors.New("storage: run has no frames")

var stepsHeader = []string{"seq", "phase", "active", "sorted", "values", "current", "visited", "status"}

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Algorithm string             `json:"algorithm"`
	Kind      string             `json:"kind"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Steps     int                `json:"steps"`
	Input     []int              `json:"input,omitempty"`
	Rows      int                `json:"rows,omitempty"`
	Cols      int                `json:"cols,omitempty"`
	Status    string             `json:"status"`
	Metrics   map[string]float64 `json:"metrics"`
}

// StepRecord is one row of steps.csv.
type StepRecord struct {
	Seq     int    `json:"seq"`
	Phase   string `json:"phase"`
	Active  []int  `json:"active,omitempty"`
	Sorted  int    `json:"sorted"`
	Values  []int  `json:"values,omitempty"`
	Current string `json:"current,omitempty"`
	Visited int    `json:"visited"`
	Status  string `json:"status"`
}

// Save writes a drained run under <baseDir>/<algorithm>_<unix> and returns
// the run id. input is the sequence the run started from.
func (s *Store) Save(result *engine.Result, seed int64, input []int) (string, error) {
	if len(result.Frames) == 0 {
		return "", ErrEmptyRun
	}

	now := s.now()
	runID, runDir, err := s.newRunDir(result.Algorithm, now)
	if err != nil {
		return "", err
	}

	last := result.Last()
	meta := RunMetadata{
		ID:        runID,
		Algorithm: result.Algorithm,
		Kind:      last.Kind.String(),
		Timestamp: now,
		Seed:      seed,
		Steps:     len(result.Frames),
		Status:    last.Status,
		Metrics:   result.Metrics,
	}
	if last.IsGrid() {
		meta.Rows, meta.Cols = last.Graph.Grid.Rows, last.Graph.Grid.Cols
	} else {
		meta.Input = input
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, stepsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(stepsHeader); err != nil {
		return "", err
	}
	for _, f := range result.Frames {
		if err := w.Write(Record(f).row()); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// newRunDir creates the run directory, suffixing the id when two runs of
// one algorithm land in the same second.
func (s *Store) newRunDir(algorithm string, now time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%d", algorithm, now.Unix())
	runID := base
	for n := 2; ; n++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, n)
	}
}

// Record flattens a frame into a steps.csv row.
func Record(f engine.Frame) StepRecord {
	rec := StepRecord{Seq: f.Seq, Status: f.Status}
	if f.IsGrid() {
		rec.Phase = f.Graph.Phase.String()
		rec.Current = fmt.Sprintf("%d:%d", f.Graph.Current.Row, f.Graph.Current.Col)
		rec.Visited = f.Graph.Grid.VisitedCount()
		return rec
	}
	rec.Phase = "step"
	if f.Final {
		rec.Phase = "final"
	}
	rec.Active = f.Sort.Active
	rec.Sorted = len(f.Sort.Sorted)
	rec.Values = f.Sort.Values
	return rec
}

func (r StepRecord) row() []string {
	return []string{
		strconv.Itoa(r.Seq),
		r.Phase,
		joinInts(r.Active),
		strconv.Itoa(r.Sorted),
		joinInts(r.Values),
		r.Current,
		strconv.Itoa(r.Visited),
		r.Status,
	}
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadSteps(runID string) ([]StepRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, stepsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(stepsHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []StepRecord{}, nil
	}

	steps := make([]StepRecord, 0, len(records)-1)
	for i, record := range records[1:] {
		step, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("run %s, row %d: %w", runID, i+1, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseRecord(record []string) (StepRecord, error) {
	var (
		rec StepRecord
		err error
	)
	if rec.Seq, err = strconv.Atoi(record[0]); err != nil {
		return rec, err
	}
	rec.Phase = record[1]
	if rec.Active, err = splitInts(record[2]); err != nil {
		return rec, err
	}
	if rec.Sorted, err = strconv.Atoi(record[3]); err != nil {
		return rec, err
	}
	if rec.Values, err = splitInts(record[4]); err != nil {
		return rec, err
	}
	rec.Current = record[5]
	if rec.Visited, err = strconv.Atoi(record[6]); err != nil {
		return rec, err
	}
	rec.Status = record[7]
	return rec, nil
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ";")
}

func splitInts(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
