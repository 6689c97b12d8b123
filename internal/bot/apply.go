package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/EgorLis/Champbot/internal/builds"
)

// параллельность скачивания сборок (сотни мелких json с CDN)
const applyWorkers = 8

// ApplyResult — итог по одному чемпиону одного источника.
type ApplyResult struct {
	Source   string
	Champion string
	Files    int
	Err      error
}

// ApplyBuilds — разовый прогон: скачивает сборки выбранных источников по
// всем чемпионам и раскладывает item-файлы в каталог игры. Ошибка по одному
// чемпиону не останавливает остальных.
func (b *Champbot) ApplyBuilds(ctx context.Context, gameDir string) ([]ApplyResult, error) {
	if gameDir == "" {
		gameDir = b.GameDir()
	}
	if gameDir == "" {
		return nil, fmt.Errorf("game dir is unknown: клиент не запущен и game_dir в конфиге пуст")
	}

	b.mu.Lock()
	champions := b.championsMap
	b.mu.Unlock()
	if len(champions) == 0 {
		version, err := b.web.LatestVersion(ctx)
		if err != nil {
			return nil, err
		}
		champions, err = b.web.FetchChampions(ctx, version)
		if err != nil {
			return nil, err
		}
		b.mu.Lock()
		b.championsMap = champions
		b.fetchedRemote = true
		b.mu.Unlock()
	}

	type job struct {
		source string
		alias  string
	}
	jobs := make(chan job)
	results := make(chan ApplyResult)

	var wg sync.WaitGroup
	for i := 0; i < applyWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- b.applyOne(ctx, gameDir, j.source, j.alias)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, source := range b.selectedSources() {
			for alias := range champions {
				select {
				case jobs <- job{source: source, alias: alias}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var out []ApplyResult
	for r := range results {
		if r.Err != nil {
			slog.Warn("apply build", "source", r.Source, "champion", r.Champion, "err", r.Err)
		}
		out = append(out, r)
	}
	return out, ctx.Err()
}

func (b *Champbot) applyOne(ctx context.Context, gameDir, source, alias string) ApplyResult {
	res := ApplyResult{Source: source, Champion: alias}

	sections, err := b.web.FetchChampionBuild(ctx, source, strings.ToLower(alias))
	if err != nil {
		res.Err = err
		return res
	}

	var items []builds.ItemBuild
	for _, s := range sections {
		items = append(items, s.ItemBuilds...)
	}
	n, err := builds.Apply(gameDir, source, alias, items)
	res.Files, res.Err = n, err
	if err == nil {
		b.appendLog(source, fmt.Sprintf("%d build file(s) written for %s", n, alias))
	}
	return res
}
