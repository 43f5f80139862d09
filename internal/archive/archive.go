// Package archive persists outgoing days as Markdown files with YAML
// front-matter so that rolled-over checklists remain inspectable.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/calahan-dev/dailyctl/internal/task"
)

// Archiver writes and reads per-day Markdown archives.
type Archiver struct {
	baseDir string // e.g. ~/.dailyctl/archive/
}

// DaySummary is the parsed front-matter of one archived day.
type DaySummary struct {
	Date      string `yaml:"date"`
	Total     int    `yaml:"total"`
	Completed int    `yaml:"completed"`
	Streak    int    `yaml:"streak"`
}

// Day is a fully parsed archive: summary plus the checklist items.
type Day struct {
	DaySummary
	Items []task.Task
}

// New creates an archiver rooted under dataDir.
func New(dataDir string) (*Archiver, error) {
	dir := filepath.Join(dataDir, "archive")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}
	return &Archiver{baseDir: dir}, nil
}

func (a *Archiver) dayPath(date string) string {
	return filepath.Join(a.baseDir, date+".md")
}

// ArchiveDay writes the given day's checklist. An existing archive for the
// same date is overwritten (reset and re-rollover on the same day).
func (a *Archiver) ArchiveDay(date string, items []task.Task, streak int) error {
	completed := 0
	for _, t := range items {
		if t.Completed {
			completed++
		}
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "date: %s\n", date)
	fmt.Fprintf(&b, "total: %d\n", len(items))
	fmt.Fprintf(&b, "completed: %d\n", completed)
	fmt.Fprintf(&b, "streak: %d\n", streak)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", date)
	for _, t := range items {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", mark, t.Text)
	}

	return os.WriteFile(a.dayPath(date), []byte(b.String()), 0644)
}

// ReadDay parses the archive for the given date.
func (a *Archiver) ReadDay(date string) (Day, error) {
	data, err := os.ReadFile(a.dayPath(date))
	if err != nil {
		return Day{}, fmt.Errorf("reading archive for %s: %w", date, err)
	}
	return parseDay(data)
}

func parseDay(data []byte) (Day, error) {
	var d Day
	body, err := frontmatter.Parse(strings.NewReader(string(data)), &d.DaySummary)
	if err != nil {
		return Day{}, fmt.Errorf("parsing front-matter: %w", err)
	}

	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		var completed bool
		var text string
		switch {
		case strings.HasPrefix(line, "- [x] "):
			completed = true
			text = strings.TrimPrefix(line, "- [x] ")
		case strings.HasPrefix(line, "- [ ] "):
			text = strings.TrimPrefix(line, "- [ ] ")
		default:
			continue
		}
		d.Items = append(d.Items, task.Task{Text: text, Completed: completed})
	}
	return d, nil
}

// ListDays returns summaries for all archived days, most recent first.
func (a *Archiver) ListDays() ([]DaySummary, error) {
	entries, err := os.ReadDir(a.baseDir)
	if err != nil {
		return nil, fmt.Errorf("listing archive directory: %w", err)
	}

	var days []DaySummary
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(a.baseDir, e.Name()))
		if err != nil {
			continue
		}
		var s DaySummary
		if _, err := frontmatter.Parse(strings.NewReader(string(data)), &s); err != nil {
			continue
		}
		if s.Date == "" {
			s.Date = strings.TrimSuffix(e.Name(), ".md")
		}
		days = append(days, s)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date > days[j].Date })
	return days, nil
}
