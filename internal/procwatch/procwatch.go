// Package procwatch периодически опрашивает список процессов ОС в поисках
// клиента лиги (LeagueClientUx) и достаёт из его командной строки параметры
// локального API: порт и auth-токен. Результат опроса — сэмпл
// (authURL, running); отсутствие процесса — не ошибка, а обычное значение.
//
// Опрос живёт в выделенной горутине (перечисление процессов блокирует),
// сэмплы уходят потребителю через неограниченную FIFO-очередь: producer
// никогда не ждёт медленного потребителя.
package procwatch

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// интервал опроса списка процессов
const pollInterval = 5 * time.Second

// процесс, который несёт параметры LCU в аргументах
const targetProcess = "LeagueClientUx"

// Sample — одно наблюдение за процессом клиента лиги.
type Sample struct {
	AuthURL string
	Running bool
}

var (
	rePort  = regexp.MustCompile(`--app-port=(\d+)`)
	reToken = regexp.MustCompile(`--remoting-auth-token=([\w-]+)`)
	reDir   = regexp.MustCompile(`--install-directory=([^"]+?)(?:"|\s--|$)`)
)

// GetCommandline — один блокирующий опрос: найти LeagueClientUx и собрать
// auth url из его аргументов. Нет процесса или нужных аргументов — ("", false).
func GetCommandline() (string, bool) {
	procs, err := process.Processes()
	if err != nil {
		return "", false
	}
	for _, p := range procs {
		name, err := p.Name()
		if err != nil || !strings.HasPrefix(name, targetProcess) {
			continue
		}
		cmdline, err := p.Cmdline()
		if err != nil {
			continue
		}
		if url, ok := ParseCmdline(cmdline); ok {
			return url, true
		}
	}
	return "", false
}

// ParseCmdline извлекает "riot:<token>@127.0.0.1:<port>" из командной строки.
func ParseCmdline(cmdline string) (string, bool) {
	port := rePort.FindStringSubmatch(cmdline)
	token := reToken.FindStringSubmatch(cmdline)
	if port == nil || token == nil {
		return "", false
	}
	return fmt.Sprintf("riot:%s@127.0.0.1:%s", token[1], port[1]), true
}

// IsTencent — китайская (Tencent) сборка клиента: другой лаунчер, другие
// пути до конфигов.
func IsTencent(cmdline string) bool {
	return strings.Contains(cmdline, "--region=TENCENT")
}

// InstallDir — каталог установки лиги из аргументов, "" если не нашли.
func InstallDir(cmdline string) string {
	m := reDir.FindStringSubmatch(cmdline)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// FindInstallInfo опрашивает процессы и возвращает каталог установки и
// признак Tencent-сборки. ("", false) — клиент не найден.
func FindInstallInfo() (dir string, tencent bool) {
	procs, err := process.Processes()
	if err != nil {
		return "", false
	}
	for _, p := range procs {
		name, err := p.Name()
		if err != nil || !strings.HasPrefix(name, targetProcess) {
			continue
		}
		cmdline, err := p.Cmdline()
		if err != nil {
			continue
		}
		if d := InstallDir(cmdline); d != "" {
			return d, IsTencent(cmdline)
		}
	}
	return "", false
}

// Start запускает опрос и возвращает канал сэмплов. Канал закрывается после
// отмены ctx (когда очередь опустеет).
func Start(ctx context.Context) <-chan Sample {
	return start(ctx, GetCommandline, pollInterval)
}

// start отделён от Start ради тестов: подменяемый опрос и интервал.
func start(ctx context.Context, sample func() (string, bool), every time.Duration) <-chan Sample {
	raw := make(chan Sample)
	out := make(chan Sample)

	// producer: блокирующий опрос на выделенной горутине
	go func() {
		defer close(raw)
		for {
			url, running := sample()
			select {
			case raw <- Sample{AuthURL: url, Running: running}:
			case <-ctx.Done():
				return
			}
			select {
			case <-time.After(every):
			case <-ctx.Done():
				return
			}
		}
	}()

	// неограниченный FIFO-буфер между producer'ом и потребителем
	go func() {
		defer close(out)
		in := raw
		var queue []Sample
		for in != nil || len(queue) > 0 {
			var send chan Sample
			var head Sample
			if len(queue) > 0 {
				send = out
				head = queue[0]
			}
			select {
			case s, ok := <-in:
				if !ok {
					in = nil
					continue
				}
				queue = append(queue, s)
			case send <- head:
				queue = queue[1:]
			}
		}
	}()

	return out
}
