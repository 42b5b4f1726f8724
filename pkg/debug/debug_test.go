package debug

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewRequestTrace_Disabled(t *testing.T) {
	Disable()
	if tr := NewRequestTrace("translate", "http://x"); tr != nil {
		t.Fatal("NewRequestTrace() should return nil when disabled")
	}

	// nil trace methods are no-ops
	var tr *RequestTrace
	tr.SetFields(map[string]string{"a": "b"})
	tr.SetResponse([]byte("{}"))
	tr.Finish(time.Second, nil)
	if err := tr.Save(); err != nil {
		t.Errorf("Save() on nil trace error = %v", err)
	}
}

func TestRequestTrace_Save(t *testing.T) {
	dir := t.TempDir()
	if err := EnableAt(dir); err != nil {
		t.Fatalf("EnableAt() error = %v", err)
	}
	defer Disable()

	tr := NewRequestTrace("translate", "http://example/translate")
	if tr == nil {
		t.Fatal("NewRequestTrace() = nil when enabled")
	}
	tr.SetFields(map[string]string{"q": "hello", "sign": "abc"})
	tr.SetFile("a.png", 42)
	tr.SetResponse([]byte("not json"))
	tr.Finish(15*time.Millisecond, errors.New("boom"))

	if err := tr.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, tr.Timestamp.Format("2006-01-02"), "*.json"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected 1 trace file, got %v (%v)", files, err)
	}

	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var saved RequestTrace
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if saved.Fields["q"] != "hello" || saved.FileSize != 42 || saved.Error != "boom" {
		t.Errorf("saved trace = %+v", saved)
	}
	if string(saved.RawResponse) != `"not json"` {
		t.Errorf("RawResponse = %s", saved.RawResponse)
	}
}

func TestCleanOldLogs(t *testing.T) {
	dir := t.TempDir()
	if err := EnableAt(dir); err != nil {
		t.Fatalf("EnableAt() error = %v", err)
	}
	defer Disable()

	old := filepath.Join(dir, time.Now().AddDate(0, 0, -10).Format("2006-01-02"))
	recent := filepath.Join(dir, time.Now().Format("2006-01-02"))
	for _, d := range []string{old, recent} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}

	if err := CleanOldLogs(3); err != nil {
		t.Fatalf("CleanOldLogs() error = %v", err)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old log directory should be removed")
	}
	if _, err := os.Stat(recent); err != nil {
		t.Error("recent log directory should be kept")
	}
}
