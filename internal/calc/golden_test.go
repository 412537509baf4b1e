package calc

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// goldenCase mirrors the records written by cmd/generate-golden.
type goldenCase struct {
	Width string   `json:"width"`
	Op    string   `json:"op"`
	Args  []string `json:"args"`
	Want  string   `json:"want"`
}

func loadGolden(t *testing.T) []goldenCase {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "golden.json"))
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	var file struct {
		Cases []goldenCase `json:"cases"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		t.Fatalf("decoding golden file: %v", err)
	}
	if len(file.Cases) == 0 {
		t.Fatal("golden file has no cases")
	}
	return file.Cases
}

// TestGolden checks every width against results computed with math/big.
func TestGolden(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	for _, gc := range loadGolden(t) {
		c, err := f.Get(gc.Width)
		if err != nil {
			t.Fatalf("golden case uses %v", err)
		}
		res, err := c.Eval(context.Background(), Request{Op: gc.Op, Args: gc.Args})
		if err != nil {
			t.Errorf("%s %s %v: %v", gc.Width, gc.Op, gc.Args, err)
			continue
		}
		if got := res.Value(); got != gc.Want {
			t.Errorf("%s %s %v = %s, want %s", gc.Width, gc.Op, gc.Args, got, gc.Want)
		}
	}
}
