package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/san-kum/raresim/internal/traj"
)

// Store persists sampling runs under a base directory: one directory per
// run holding metadata.json and zstd-compressed CSV trajectory files.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Algorithm string             `json:"algorithm"`
	Potential string             `json:"potential"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Beta      float64            `json:"beta"`
	Timestep  float64            `json:"timestep"`
	Diffusion float64            `json:"diffusion"`
	Stats     map[string]float64 `json:"stats"`
}

// Save writes a run's metadata and trajectories, returning the run ID.
func (s *Store) Save(meta RunMetadata, trajectories []traj.Trajectory) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Algorithm, time.Now().Unix())
	meta.ID = runID
	meta.Timestamp = time.Now()

	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	for i, t := range trajectories {
		name := fmt.Sprintf("traj_%03d.csv.zst", i)
		if err := writeTrajectory(filepath.Join(runDir, name), t); err != nil {
			return "", err
		}
	}
	return runID, nil
}

func writeTrajectory(path string, t traj.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return err
	}
	defer zw.Close()

	w := csv.NewWriter(zw)
	defer w.Flush()

	if len(t) == 0 {
		return nil
	}

	header := make([]string, len(t[0]))
	for i := range header {
		header[i] = fmt.Sprintf("x%d", i)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, p := range t {
		row := make([]string, len(p))
		for i, v := range p {
			row[i] = strconv.FormatFloat(v, 'f', 6, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// LoadTrajectory reads back one compressed trajectory file.
func LoadTrajectory(path string) (traj.Trajectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	rows, err := csv.NewReader(zr).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, nil
	}

	out := make(traj.Trajectory, 0, len(rows)-1)
	for _, row := range rows[1:] {
		p := make([]float64, len(row))
		for i, field := range row {
			p[i], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, err
			}
		}
		out = append(out, p)
	}
	return out, nil
}
