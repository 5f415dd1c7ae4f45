package fsops_test

import (
	"testing"

	"github.com/styleforge/styleforge/internal/fsops"
)

func TestWriteFileAtomic_LeavesNoTempFile(t *testing.T) {
	mem := fsops.NewMem()
	if err := mem.MkdirAll("/data", 0o755); err != nil {
		t.Fatal(err)
	}

	if err := fsops.WriteFileAtomic(mem, "/data/state.json", []byte(`{}`), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}

	data, err := mem.ReadFile("/data/state.json")
	if err != nil || string(data) != `{}` {
		t.Fatalf("target = %q err=%v", data, err)
	}
	if _, err := mem.Stat("/data/state.json.tmp"); err == nil {
		t.Fatal("temporary file must not survive the rename")
	}
}

func TestWriteFileAtomic_OverwritesExisting(t *testing.T) {
	mem := fsops.NewMem()
	if err := fsops.WriteFileAtomic(mem, "/state.json", []byte(`1`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := fsops.WriteFileAtomic(mem, "/state.json", []byte(`2`), 0o644); err != nil {
		t.Fatal(err)
	}
	data, _ := mem.ReadFile("/state.json")
	if string(data) != `2` {
		t.Fatalf("expected overwrite, got %q", data)
	}
}
