package storage

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/pendsim/internal/history"
	"github.com/san-kum/pendsim/internal/params"
	"github.com/san-kum/pendsim/internal/sim"
)

const (
	MetadataFile = "metadata.json"
	SeriesFile   = "series.csv"
	ThetaFile    = "theta.txt"
	TimeFile     = "time.txt"
)

// Store writes each export into its own run directory under baseDir.
type Store struct {
	baseDir string
	now     func() time.Time
	lastID  string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// LastID is the run id written by the most recent successful Export.
func (s *Store) LastID() string { return s.lastID }

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Samples   int                `json:"samples"`
	Params    map[string]float64 `json:"params"`
}

// Values returns the stored parameters indexed by id. Missing names keep
// their defaults.
func (m RunMetadata) Values() params.Values {
	v := params.Defaults()
	for name, val := range m.Params {
		if id, err := params.ParseID(name); err == nil {
			v[id] = val
		}
	}
	return v
}

// Export implements sim.ExportSink.
func (s *Store) Export(x sim.Export) error {
	_, err := s.Save(x)
	return err
}

// Save writes x to a fresh run directory and returns its id.
func (s *Store) Save(x sim.Export) (string, error) {
	ts := s.now()
	runID := fmt.Sprintf("pendulum_%d", ts.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	values := params.New(x.Params).Map()
	meta := RunMetadata{
		ID:        runID,
		Timestamp: ts,
		Dt:        x.Dt,
		Duration:  x.Duration,
		Samples:   x.Series.Len(),
		Params:    values,
	}

	if err := writeFile(filepath.Join(runDir, MetadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, SeriesFile), func(w io.Writer) error {
		return WriteCSV(w, x.Series, x.Dt)
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, ThetaFile), func(w io.Writer) error {
		return writeColumn(w, degrees(x.Series.Angle))
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, TimeFile), func(w io.Writer) error {
		return writeColumn(w, x.Series.TimeSlice(x.Dt))
	}); err != nil {
		return "", err
	}

	s.lastID = runID
	return runID, nil
}

// WriteCSV writes a header and one row per sample.
func WriteCSV(w io.Writer, series history.Series, dt float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "angle", "velocity", "acceleration"}); err != nil {
		return err
	}

	i := 0
	for t := range series.Times(dt) {
		row := []string{
			formatFloat(t),
			formatFloat(series.Angle[i]),
			formatFloat(series.Velocity[i]),
			formatFloat(series.Acceleration[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
		i++
	}

	cw.Flush()
	return cw.Error()
}

// RunDump is a complete run in one JSON document.
type RunDump struct {
	RunMetadata
	Times        []float64 `json:"times"`
	Angle        []float64 `json:"angle"`
	Velocity     []float64 `json:"velocity"`
	Acceleration []float64 `json:"acceleration"`
}

// WriteJSON writes the metadata and series of runID to w.
func (s *Store) WriteJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(RunDump{
		RunMetadata:  *meta,
		Times:        series.TimeSlice(meta.Dt),
		Angle:        series.Angle,
		Velocity:     series.Velocity,
		Acceleration: series.Acceleration,
	})
}

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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, MetadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads the recorded series of a run.
func (s *Store) LoadSeries(runID string) (history.Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, SeriesFile))
	if err != nil {
		return history.Series{}, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return history.Series{}, fmt.Errorf("read %s: %w", runID, err)
	}

	var series history.Series
	for i := 1; i < len(records); i++ {
		var row [3]float64
		for j := range row {
			row[j], err = strconv.ParseFloat(records[i][j+1], 64)
			if err != nil {
				return history.Series{}, fmt.Errorf("read %s row %d: %w", runID, i, err)
			}
		}
		series.Angle = append(series.Angle, row[0])
		series.Velocity = append(series.Velocity, row[1])
		series.Acceleration = append(series.Acceleration, row[2])
	}

	return series, nil
}

// Latest returns the id of the most recent run.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", errors.New("storage: no runs")
	}
	return runs[len(runs)-1].ID, nil
}

func writeFile(path string, fill func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := fill(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeColumn(w io.Writer, xs []float64) error {
	for _, x := range xs {
		if _, err := fmt.Fprintln(w, formatFloat(x)); err != nil {
			return err
		}
	}
	return nil
}

func degrees(rad []float64) []float64 {
	out := make([]float64, len(rad))
	for i, r := range rad {
		out[i] = r * 180 / math.Pi
	}
	return out
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
