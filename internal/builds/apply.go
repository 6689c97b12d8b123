package builds

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// Apply записывает item-сборки чемпиона в каталог игры:
//
//	<gameDir>/Game/Config/Champions/<champ>/Recommended/<source>-<champ>-<n>.json
//
// Каталог на время записи держится под файловой блокировкой, чтобы два
// экземпляра приложения не перемешали файлы друг друга. Запись атомарная:
// tmp-файл + rename. Возвращает число записанных файлов.
func Apply(gameDir, source, champion string, items []ItemBuild) (int, error) {
	if gameDir == "" {
		return 0, fmt.Errorf("game dir is empty")
	}
	cfgDir := filepath.Join(gameDir, "Game", "Config", "Champions")
	dir := filepath.Join(cfgDir, champion, "Recommended")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}

	lock := flock.New(filepath.Join(cfgDir, ".champbot.lock"))
	if err := lock.Lock(); err != nil {
		return 0, err
	}
	defer func() { _ = lock.Unlock() }()

	// id прогона — только для связывания строк лога одной операции
	runID := strings.Split(uuid.NewString(), "-")[0]

	n := 0
	for i, b := range items {
		name := fmt.Sprintf("%s-%s-%d.json", sanitizeSource(source), champion, i+1)
		path := filepath.Join(dir, name)
		if err := writeAtomic(path, b); err != nil {
			return n, fmt.Errorf("write %s: %w", name, err)
		}
		slog.Info("build written", "run", runID, "champion", champion, "file", name)
		n++
	}
	return n, nil
}

// Remove стирает ранее записанные файлы данного источника для чемпиона.
func Remove(gameDir, source, champion string) error {
	dir := filepath.Join(gameDir, "Game", "Config", "Champions", champion, "Recommended")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	prefix := sanitizeSource(source) + "-" + champion + "-"
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeAtomic(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// имена источников вида "op.gg-aram" не должны ломать имена файлов
func sanitizeSource(source string) string {
	return strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(source)
}
