package archive_test

import (
	"testing"
	"time"

	"github.com/calahan-dev/dailyctl/internal/archive"
	"github.com/calahan-dev/dailyctl/internal/task"
)

func setupArchiver(t *testing.T) *archive.Archiver {
	t.Helper()
	a, err := archive.New(t.TempDir())
	if err != nil {
		t.Fatalf("archive.New: %v", err)
	}
	return a
}

func sampleItems() []task.Task {
	at := time.Date(2026, 9, 1, 15, 4, 0, 0, time.Local)
	return []task.Task{
		{ID: "aaaaaaaa", Text: "Write spec", Completed: true, CompletedAt: &at},
		{ID: "bbbbbbbb", Text: "Review code", Completed: false},
	}
}

func TestArchiveAndReadDay(t *testing.T) {
	a := setupArchiver(t)

	if err := a.ArchiveDay("2026-09-01", sampleItems(), 4); err != nil {
		t.Fatalf("ArchiveDay: %v", err)
	}

	d, err := a.ReadDay("2026-09-01")
	if err != nil {
		t.Fatalf("ReadDay: %v", err)
	}
	if d.Date != "2026-09-01" || d.Total != 2 || d.Completed != 1 || d.Streak != 4 {
		t.Errorf("summary = %+v, want date=2026-09-01 total=2 completed=1 streak=4", d.DaySummary)
	}
	if len(d.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(d.Items))
	}
	if !d.Items[0].Completed || d.Items[0].Text != "Write spec" {
		t.Errorf("Items[0] = %+v, want completed 'Write spec'", d.Items[0])
	}
	if d.Items[1].Completed || d.Items[1].Text != "Review code" {
		t.Errorf("Items[1] = %+v, want pending 'Review code'", d.Items[1])
	}
}

func TestListDaysMostRecentFirst(t *testing.T) {
	a := setupArchiver(t)

	for _, date := range []string{"2026-08-30", "2026-09-01", "2026-08-31"} {
		if err := a.ArchiveDay(date, sampleItems(), 1); err != nil {
			t.Fatalf("ArchiveDay(%s): %v", date, err)
		}
	}

	days, err := a.ListDays()
	if err != nil {
		t.Fatalf("ListDays: %v", err)
	}
	want := []string{"2026-09-01", "2026-08-31", "2026-08-30"}
	if len(days) != len(want) {
		t.Fatalf("len(days) = %d, want %d", len(days), len(want))
	}
	for i, w := range want {
		if days[i].Date != w {
			t.Errorf("days[%d].Date = %q, want %q", i, days[i].Date, w)
		}
	}
}

func TestListDaysEmptyArchive(t *testing.T) {
	a := setupArchiver(t)

	days, err := a.ListDays()
	if err != nil {
		t.Fatalf("ListDays: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("expected no days, got %d", len(days))
	}
}
