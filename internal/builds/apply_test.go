package builds

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func sampleBuilds() []ItemBuild {
	return []ItemBuild{
		{
			Title:               "OP.GG Aatrox top",
			AssociatedChampions: []int{266},
			Blocks: []Block{
				{Type: "Starter", Items: []Item{{ID: "1054", Count: 1}}},
				{Type: "Core", Items: []Item{{ID: "6630", Count: 1}, {ID: "3071", Count: 1}}},
			},
			Type: "custom",
			Map:  "any",
			Mode: "any",
		},
		{
			Title:               "OP.GG Aatrox mid",
			AssociatedChampions: []int{266},
			Blocks:              []Block{{Type: "Starter", Items: []Item{{ID: "1055", Count: 1}}}},
			Type:                "custom",
		},
	}
}

func TestApply(t *testing.T) {
	gameDir := t.TempDir()

	n, err := Apply(gameDir, "op.gg", "Aatrox", sampleBuilds())
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("записано %d файлов, ожидали 2", n)
	}

	dir := filepath.Join(gameDir, "Game", "Config", "Champions", "Aatrox", "Recommended")
	for _, name := range []string{"op.gg-Aatrox-1.json", "op.gg-Aatrox-2.json"} {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		var got ItemBuild
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got.Type != "custom" || len(got.Blocks) == 0 {
			t.Errorf("%s: %+v", name, got)
		}
	}

	// tmp-файлов после атомарной записи оставаться не должно
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("остался tmp-файл %s", e.Name())
		}
	}
}

func TestApplyEmptyGameDir(t *testing.T) {
	if _, err := Apply("", "op.gg", "Aatrox", sampleBuilds()); err == nil {
		t.Fatal("ожидали ошибку про пустой каталог игры")
	}
}

func TestRemove(t *testing.T) {
	gameDir := t.TempDir()
	if _, err := Apply(gameDir, "op.gg", "Aatrox", sampleBuilds()); err != nil {
		t.Fatal(err)
	}
	// чужие файлы трогать нельзя
	dir := filepath.Join(gameDir, "Game", "Config", "Champions", "Aatrox", "Recommended")
	foreign := filepath.Join(dir, "murderbridge-Aatrox-1.json")
	if err := os.WriteFile(foreign, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Remove(gameDir, "op.gg", "Aatrox"); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "murderbridge-Aatrox-1.json" {
		t.Errorf("после Remove в каталоге: %v", entries)
	}

	// отсутствующий каталог — не ошибка
	if err := Remove(gameDir, "op.gg", "Ahri"); err != nil {
		t.Fatal(err)
	}
}

func TestSanitizeSource(t *testing.T) {
	if got := sanitizeSource("op gg/x"); got != "op_gg_x" {
		t.Errorf("sanitizeSource = %q", got)
	}
}
