package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/laserhop/internal/games/laserhop/engine"
)

func TestLoaderLoadAll(t *testing.T) {
	loader := NewLoader(filepath.Join("testdata", "levels"))

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(lvls) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(lvls))
	}
	if lvls[0].ID != "01" || lvls[1].ID != "02" {
		t.Errorf("levels not sorted: %s, %s", lvls[0].ID, lvls[1].ID)
	}
	if lvls[0].Metadata["author"] != "laserhop" {
		t.Errorf("metadata lost: %v", lvls[0].Metadata)
	}
}

func TestLoaderColourNames(t *testing.T) {
	loader := NewLoader(filepath.Join("testdata", "levels"))

	lvl, err := loader.LoadByID("02")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.Name != "Ring" {
		t.Errorf("Name = %q", lvl.Name)
	}
	if got := lvl.Board.Targets(); got != 16 {
		t.Errorf("Targets = %d, want 16", got)
	}
	// grey and gray are the same variant.
	if lvl.Board[engine.Index(4, 1)] != engine.CellCleared || lvl.Board[engine.Index(4, 4)] != engine.CellCleared {
		t.Error("grey/gray cells did not parse as cleared")
	}
	if lvl.Board[engine.Index(2, 2)] != engine.CellHazard {
		t.Error("expected red at row 2 col 2")
	}
}

func TestLoaderLoadByIDMissing(t *testing.T) {
	loader := NewLoader(filepath.Join("testdata", "levels"))

	if _, err := loader.LoadByID("99"); !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("err = %v, want ErrLevelNotFound", err)
	}
}

func TestLoaderInvalidFiles(t *testing.T) {
	tests := []struct {
		file string
		code string
	}{
		{"no-green.yaml", "NO_TARGETS"},
		{"short.yaml", "ROW_COUNT"},
		{"bad-color.yaml", "UNKNOWN_COLOR"},
	}

	loader := NewLoader(filepath.Join("testdata", "invalid"))
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := loader.LoadFile(filepath.Join(loader.Root, tt.file))
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Code != tt.code {
				t.Errorf("Code = %s, want %s", verr.Code, tt.code)
			}
		})
	}

	if _, err := loader.LoadAll(); err == nil {
		t.Error("LoadAll should fail on a pack with invalid files")
	}
}

func TestCampaign(t *testing.T) {
	campaign, err := NewLoader(filepath.Join("testdata", "levels")).Campaign()
	if err != nil {
		t.Fatalf("Campaign failed: %v", err)
	}
	if len(campaign) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(campaign))
	}
	if campaign[0].ID != 1 || campaign[1].ID != 2 {
		t.Errorf("campaign IDs = %d, %d", campaign[0].ID, campaign[1].ID)
	}

	e := engine.New(engine.WithLevels(campaign))
	if e.CampaignLength() != 2 || !e.IsEndless(3) {
		t.Error("engine did not adopt the custom campaign")
	}
	if e.InitBoard(1) != campaign[0].Board {
		t.Error("level 1 board mismatch")
	}
}

func TestCampaignEmptyDir(t *testing.T) {
	_, err := NewLoader(t.TempDir()).Campaign()
	var verr ValidationError
	if !errors.As(err, &verr) || verr.Code != "EMPTY_PACK" {
		t.Errorf("err = %v, want EMPTY_PACK", err)
	}
}

func TestLoaderDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	body := []byte("id: same\nrows: [G....., ......, ......, ......, ......, ......, ......, ......, ......]\n")
	for _, name := range []string{"a.yaml", "b.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), body, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	_, err := NewLoader(dir).LoadAll()
	var verr ValidationError
	if !errors.As(err, &verr) || verr.Code != "DUPLICATE_ID" {
		t.Errorf("err = %v, want DUPLICATE_ID", err)
	}
}

func TestLoaderDefaultsIDToFileName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "07-plain.yaml")
	body := []byte("rows: [G....., ......, ......, ......, ......, ......, ......, ......, ......]\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	lvl, err := NewLoader(dir).LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if lvl.ID != "07-plain" {
		t.Errorf("ID = %q, want file name", lvl.ID)
	}
}

func TestExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	stock := engine.BuiltinLevels()

	if err := Export(dir, stock); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	campaign, err := NewLoader(dir).Campaign()
	if err != nil {
		t.Fatalf("Campaign failed: %v", err)
	}
	if len(campaign) != len(stock) {
		t.Fatalf("got %d levels, want %d", len(campaign), len(stock))
	}
	for i := range stock {
		if campaign[i].Board != stock[i].Board {
			t.Errorf("level %d changed after export", i+1)
		}
		if campaign[i].Name != stock[i].Name {
			t.Errorf("level %d name = %q, want %q", i+1, campaign[i].Name, stock[i].Name)
		}
	}
}
