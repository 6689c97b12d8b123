package bot

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/EgorLis/Champbot/internal/builds"
	"github.com/EgorLis/Champbot/internal/lcuclient"
	"github.com/EgorLis/Champbot/internal/procwatch"
	"github.com/EgorLis/Champbot/internal/webapi"
)

// LogItem — строка журнала для статусной поверхности: (источник, текст).
type LogItem struct {
	Source string
	Text   string
}

// сколько строк журнала держим в памяти
const logLimit = 200

type Champbot struct {
	lcu *lcuclient.LcuClient
	web *webapi.Client

	cfg *configStore

	mu              sync.Mutex
	gameDir         string
	isTencent       bool
	championsMap    webapi.ChampionsMap
	fetchedRemote   bool
	currentChampID  int64
	currentChampion string // alias, напр. "Aatrox"
	currentRunes    []builds.Rune
	loadingRunes    bool
	logs            []LogItem

	ctx    context.Context
	cancel context.CancelFunc
	stopCh chan struct{}
	wg     sync.WaitGroup
	smu    sync.Mutex
}

func New() *Champbot {
	return &Champbot{
		lcu: lcuclient.New(),
		web: webapi.NewClient(),
	}
}

// Lcu отдаёт клиента LCU (статус/REST для внешней поверхности).
func (b *Champbot) Lcu() *lcuclient.LcuClient { return b.lcu }

// Web отдаёт клиента удалённых данных.
func (b *Champbot) Web() *webapi.Client { return b.web }

func (b *Champbot) Start() error {
	b.smu.Lock()
	defer b.smu.Unlock()

	if b == nil {
		return errors.New("бот не инициализирован")
	}
	if b.stopCh != nil {
		return errors.New("уже запущен")
	}
	b.stopCh = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	b.ctx, b.cancel = ctx, cancel

	b.lcu.OnConnecting = func() { slog.Info("lcu connecting...") }
	b.lcu.OnConnected = func() {
		slog.Info("lcu connected")
		go b.onConnected(ctx)
	}
	b.lcu.OnDisconnected = func() { slog.Info("lcu disconnected") }
	b.lcu.OnError = func(err error) { slog.Warn("lcu", "err", err) }
	b.lcu.OnEvent = b.handleEvent

	samples := procwatch.Start(ctx)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.lcu.Watch(ctx, samples)
	}()

	// сторож для остановки
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		<-b.stopCh
		cancel()
		b.lcu.Close()
	}()

	return nil
}

func (b *Champbot) Stop() {
	b.smu.Lock()
	ch := b.stopCh
	b.stopCh = nil
	b.smu.Unlock()

	if ch != nil {
		close(ch)   // безопасно: повторный Stop() ничего не делает
		b.wg.Wait() // дождёмся фоновых горутин
	}
}

// onConnected — разовая догрузка удалённых данных после (ре)коннекта:
// свежая версия игры, карта чемпионов, каталог установки.
func (b *Champbot) onConnected(ctx context.Context) {
	if dir, tencent := procwatch.FindInstallInfo(); dir != "" {
		b.mu.Lock()
		b.gameDir = dir
		b.isTencent = tencent
		b.mu.Unlock()
		if tencent {
			slog.Info("tencent client detected", "dir", dir)
		}
	}

	b.mu.Lock()
	done := b.fetchedRemote
	b.mu.Unlock()
	if done {
		return
	}

	version, err := b.web.LatestVersion(ctx)
	if err != nil {
		slog.Warn("fetch versions", "err", err)
		return
	}
	champions, err := b.web.FetchChampions(ctx, version)
	if err != nil {
		slog.Warn("fetch champions", "err", err)
		return
	}

	b.mu.Lock()
	b.championsMap = champions
	b.fetchedRemote = true
	b.mu.Unlock()
	slog.Info("remote data fetched", "version", version, "champions", len(champions))
}

// GameDir — каталог игры: из конфига, иначе автоопределённый.
func (b *Champbot) GameDir() string {
	if b.cfg != nil {
		b.cfg.mu.Lock()
		dir := b.cfg.data.GameDir
		b.cfg.mu.Unlock()
		if dir != "" {
			return dir
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gameDir
}

// IsTencent — true для китайской сборки клиента.
func (b *Champbot) IsTencent() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.isTencent
}

// CurrentRunes — руны текущего чемпиона (копия).
func (b *Champbot) CurrentRunes() (string, []builds.Rune) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentChampion, append([]builds.Rune(nil), b.currentRunes...)
}

// Logs — копия журнала.
func (b *Champbot) Logs() []LogItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]LogItem(nil), b.logs...)
}

func (b *Champbot) appendLog(source, text string) {
	b.mu.Lock()
	b.logs = append(b.logs, LogItem{Source: source, Text: text})
	if len(b.logs) > logLimit {
		b.logs = b.logs[len(b.logs)-logLimit:]
	}
	b.mu.Unlock()
}
