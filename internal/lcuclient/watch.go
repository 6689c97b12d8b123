package lcuclient

import (
	"context"
	"log/slog"

	"github.com/EgorLis/Champbot/internal/procwatch"
)

// Watch — главный цикл: превращает сэмплы опроса процесса в переходы
// состояния. Сэмплы обрабатываются строго по порядку; пока Connect висит
// в read-цикле, новые копятся в очереди procwatch.
//
// Живёт, пока канал не закрыт (то есть до отмены ctx у procwatch).
func (lc *LcuClient) Watch(ctx context.Context, samples <-chan procwatch.Sample) {
	for s := range samples {
		lc.SetRunning(s.Running)
		slog.Debug("lcu sample", "running", s.Running)

		if !s.Running {
			lc.Close()
			continue
		}
		if !lc.UpdateAuthURL(s.AuthURL) {
			continue
		}
		// Connect сам крутит retry; если он вернулся — сокет успел умереть,
		// следующий реконнект случится только по новому сэмплу со сменой url
		if err := lc.Connect(ctx); err != nil {
			slog.Warn("lcu connect", "err", err)
		}
	}
}
