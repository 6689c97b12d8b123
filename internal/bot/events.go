package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/EgorLis/Champbot/internal/builds"
	"github.com/EgorLis/Champbot/internal/lcuclient"
)

// LCU заворачивает каждое событие в WAMP-подобный массив:
//
//	[8, "OnJsonApiEvent", {"data": ..., "eventType": ..., "uri": ...}]
const champSelectURI = "/lol-champ-select/v1/session"

// championFromEvent вытаскивает чемпиона текущего игрока из события
// champ select; (0, false) — фрейм не про champ select или выбора ещё нет.
func championFromEvent(raw []byte) (int64, bool) {
	if gjson.GetBytes(raw, "2.uri").String() != champSelectURI {
		return 0, false
	}

	data := gjson.GetBytes(raw, "2.data")
	cell := data.Get("localPlayerCellId").Int()

	var champID int64
	data.Get("myTeam").ForEach(func(_, m gjson.Result) bool {
		if m.Get("cellId").Int() == cell {
			champID = m.Get("championId").Int()
			return false
		}
		return true
	})
	return champID, champID != 0
}

// handleEvent — колбэк на каждый сырой фрейм сокета. Интересует только
// champ select: по чемпиону текущего игрока запускаем догрузку рун.
func (b *Champbot) handleEvent(raw []byte) {
	champID, ok := championFromEvent(raw)
	if !ok {
		return
	}

	// Пока идёт загрузка, смену чемпиона не фиксируем: champ select шлёт
	// фреймы с тем же championId постоянно, следующий фрейм дотриггерит.
	b.mu.Lock()
	start := champID != b.currentChampID && !b.loadingRunes
	if start {
		b.currentChampID = champID
		b.loadingRunes = true
	}
	b.mu.Unlock()

	if start {
		ctx := b.ctx
		if ctx == nil {
			ctx = context.Background()
		}
		go b.loadRunes(ctx, champID)
	}
}

// loadRunes тянет руны по выбранным источникам для чемпиона champID и
// (опционально) сразу применяет лучшую страницу через REST.
func (b *Champbot) loadRunes(ctx context.Context, champID int64) {
	b.mu.Lock()
	champions := b.championsMap
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		b.loadingRunes = false
		b.mu.Unlock()
	}()

	info, ok := champions.FindByID(champID)
	if !ok {
		slog.Warn("unknown champion id", "id", champID)
		return
	}

	var runes []builds.Rune
	for _, source := range b.selectedSources() {
		sections, err := b.web.FetchChampionBuild(ctx, source, strings.ToLower(info.ID))
		if err != nil {
			slog.Warn("fetch build", "source", source, "champion", info.ID, "err", err)
			continue
		}
		for _, s := range sections {
			runes = append(runes, s.Runes...)
		}
		b.appendLog(source, fmt.Sprintf("runes fetched for %s", info.Name))
	}

	b.mu.Lock()
	b.currentChampion = info.ID
	b.currentRunes = runes
	b.mu.Unlock()

	auto := false
	if b.cfg != nil {
		b.cfg.mu.Lock()
		auto = b.cfg.data.AutoApplyRunes
		b.cfg.mu.Unlock()
	}
	if len(runes) == 0 || !auto {
		return
	}
	page := runePageFromSource(info.ID, runes[0])
	if err := b.lcu.ApplyRunePage(ctx, page); err != nil {
		slog.Warn("apply rune page", "champion", info.ID, "err", err)
		return
	}
	b.appendLog("lcu", fmt.Sprintf("rune page applied for %s", info.Name))
}

// runePageFromSource — конвертация страницы источника в формат /lol-perks.
func runePageFromSource(alias string, r builds.Rune) lcuclient.RunePage {
	name := fmt.Sprintf("[CR] %s", alias)
	if r.Position != "" {
		name = fmt.Sprintf("[CR] %s @ %s", alias, r.Position)
	}
	return lcuclient.RunePage{
		Name:            name,
		PrimaryStyleID:  r.PrimaryStyleID,
		SubStyleID:      r.SubStyleID,
		SelectedPerkIDs: append([]int64(nil), r.SelectedPerkIDs...),
	}
}

func (b *Champbot) selectedSources() []string {
	if b.cfg == nil {
		return []string{defaultSource}
	}
	b.cfg.mu.Lock()
	sources := append([]string(nil), b.cfg.data.SelectedSources...)
	b.cfg.mu.Unlock()
	if len(sources) == 0 {
		return []string{defaultSource}
	}
	return sources
}
