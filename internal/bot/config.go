package bot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// источник по умолчанию, если пользователь ничего не выбрал
const defaultSource = "op.gg"

type Config struct {
	// Выбранные источники сборок (значения из webapi.Source.Value):
	SelectedSources []string `json:"selected_sources"`
	// Каталог игры; пустой — берём автоопределённый из командной строки.
	GameDir string `json:"game_dir,omitempty"`
	// Применять лучшую страницу рун сразу при выборе чемпиона:
	AutoApplyRunes bool `json:"auto_apply_runes"`
}

type configStore struct {
	mu   sync.Mutex
	path string
	data Config
}

// UseConfig подключает JSON-конфиг (создаётся при первом запуске).
func (b *Champbot) UseConfig(path string) error {
	b.cfg = newConfigStore(path)
	return b.cfg.Load()
}

// SetSources меняет выбранные источники и сразу сохраняет конфиг.
func (b *Champbot) SetSources(sources []string) error {
	if b.cfg == nil {
		return nil
	}
	b.cfg.mu.Lock()
	b.cfg.data.SelectedSources = append([]string(nil), sources...)
	b.cfg.mu.Unlock()
	return b.cfg.Save()
}

func (cs *configStore) Load() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	f := cs.path
	_ = os.MkdirAll(filepath.Dir(f), 0755)
	b, err := os.ReadFile(f)
	if err != nil {
		if os.IsNotExist(err) {
			return cs.save() // создаём пустой
		}
		return err
	}
	return json.Unmarshal(b, &cs.data)
}

func (cs *configStore) Save() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.save()
}

func (cs *configStore) save() error {
	b, err := json.MarshalIndent(&cs.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cs.path, b, 0644)
}

func newConfigStore(path string) *configStore {
	return &configStore{path: path}
}
