package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiskUsageBytes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.bin"), make([]byte, 100), 0644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "b.bin"), make([]byte, 50), 0644); err != nil {
		t.Fatal(err)
	}

	total, err := DiskUsageBytes(dir)
	if err != nil {
		t.Fatalf("DiskUsageBytes: %v", err)
	}
	if total != 150 {
		t.Errorf("total = %d, want 150", total)
	}

	// missing paths contribute zero
	total, err = DiskUsageBytes(dir, filepath.Join(dir, "absent"), "")
	if err != nil {
		t.Fatalf("DiskUsageBytes with missing path: %v", err)
	}
	if total != 150 {
		t.Errorf("total = %d, want 150", total)
	}
}
