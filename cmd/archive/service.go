// Package archive keeps a history of renders on disk, one JSON file per
// render next to an optional PNG of the grid.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sumwatshade/surfgrid/cmd/dotgrid"
)

// Record summarizes one render.
type Record struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Date      string `json:"date"`
	Location  string `json:"location"`
	Source    string `json:"source"`
	HourStart int    `json:"hour_start"`
	HourEnd   int    `json:"hour_end"`
	Totals    []int  `json:"totals"`
	TideRows  []int  `json:"tide_rows"`
	Image     string `json:"image,omitempty"`
}

// NewRecord fills a record from a render result.
func NewRecord(date time.Time, location, source string, window dotgrid.Window, res *dotgrid.Result) Record {
	r := Record{
		Date:      date.Format("2006-01-02"),
		Location:  location,
		Source:    source,
		HourStart: window.Start,
		HourEnd:   window.End,
	}
	if res != nil {
		r.Totals = append([]int(nil), res.Scores.Total...)
		r.TideRows = append([]int(nil), res.TideRows...)
	}
	return r
}

// Peak returns the best total score and the clock time of its column. ok is
// false for a record without scores.
func (r Record) Peak() (score int, at string, ok bool) {
	if len(r.Totals) == 0 {
		return 0, "", false
	}
	best := 0
	for j, s := range r.Totals {
		if s > r.Totals[best] {
			best = j
		}
	}
	minutes := r.HourStart*60 + best*(r.HourEnd-r.HourStart)*60/len(r.Totals)
	return r.Totals[best], fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), true
}

// Service defines persistence operations for archived renders.
type Service interface {
	List() ([]Record, error)
	Get(id string) (Record, error)
	// Create stores r under a new id. A non-empty image is written as a PNG
	// beside the record.
	Create(r Record, image []byte) (Record, error)
}

var _ Service = (*fileService)(nil)

// fileService stores each record as a JSON file under baseDir.
type fileService struct {
	baseDir string
}

// NewFileService creates an archive rooted at dir (created if missing).
func NewFileService(dir string) (Service, error) {
	if dir == "" {
		return nil, errors.New("empty archive dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &fileService{baseDir: dir}, nil
}

func (s *fileService) recordPath(id string) string { return filepath.Join(s.baseDir, id+".json") }

// List loads all record files (best-effort; skips corrupt ones) newest first.
func (s *fileService) List() ([]Record, error) {
	var files []fs.FileInfo
	dir, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}
	for _, de := range dir {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		files = append(files, info)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ModTime().After(files[j].ModTime()) })

	var records []Record
	for _, fi := range files {
		b, err := os.ReadFile(filepath.Join(s.baseDir, fi.Name()))
		if err != nil {
			continue
		}
		var r Record
		if err := json.Unmarshal(b, &r); err != nil || r.ID == "" {
			continue
		}
		if strings.TrimSpace(r.CreatedAt) == "" { // backfill from file mtime
			r.CreatedAt = fi.ModTime().UTC().Format(time.RFC3339)
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *fileService) Get(id string) (Record, error) {
	if id == "" {
		return Record{}, errors.New("empty id")
	}
	b, err := os.ReadFile(s.recordPath(id))
	if err != nil {
		return Record{}, err
	}
	var r Record
	if err := json.Unmarshal(b, &r); err != nil {
		return Record{}, err
	}
	if r.ID == "" {
		return Record{}, errors.New("record missing id")
	}
	return r, nil
}

func (s *fileService) Create(r Record, image []byte) (Record, error) {
	if strings.TrimSpace(r.Date) == "" {
		return Record{}, errors.New("date required")
	}
	r.ID = uuid.NewString()
	if strings.TrimSpace(r.CreatedAt) == "" {
		r.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if len(image) > 0 {
		r.Image = filepath.Join(s.baseDir, r.ID+".png")
		if err := os.WriteFile(r.Image, image, 0o644); err != nil {
			return Record{}, err
		}
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return Record{}, err
	}
	tmp := s.recordPath(r.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return Record{}, err
	}
	if err := os.Rename(tmp, s.recordPath(r.ID)); err != nil {
		return Record{}, err
	}
	return r, nil
}
