package embedded

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestReadFileRequiresInit(t *testing.T) {
	Init(nil)
	if _, err := ReadFile("data/story.yaml"); err == nil {
		t.Error("ReadFile before Init should fail")
	}
}

func TestReadFileFromFS(t *testing.T) {
	Init(fstest.MapFS{
		"data/story.yaml": &fstest.MapFile{Data: []byte("tickRate: 60\n")},
	})
	defer Init(nil)

	tests := []string{"data/story.yaml", "./data/story.yaml"}
	for _, path := range tests {
		data, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%q): %v", path, err)
		}
		if string(data) != "tickRate: 60\n" {
			t.Errorf("ReadFile(%q) = %q", path, data)
		}
	}

	if !Exists("data/story.yaml") {
		t.Error("Exists should report the embedded file")
	}
	if Exists("data/missing.yaml") {
		t.Error("Exists should be false for a missing file")
	}
	if _, err := ReadFile("assets/story.yaml"); err == nil {
		t.Error("Paths outside data/ should be rejected")
	}
}

func TestReadFileOrDiskFallsBack(t *testing.T) {
	Init(fstest.MapFS{})
	defer Init(nil)

	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	if err := os.MkdirAll("data", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("data", "story.yaml"), []byte("disk"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := ReadFileOrDisk("data/story.yaml")
	if err != nil || string(data) != "disk" {
		t.Errorf("ReadFileOrDisk = %q, %v", data, err)
	}
	if _, err := ReadFileOrDisk("data/none.yaml"); err == nil {
		t.Error("Missing file should fail on both sources")
	}
}
