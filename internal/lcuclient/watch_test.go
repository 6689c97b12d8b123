package lcuclient

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/EgorLis/Champbot/internal/procwatch"
)

// Сценарий из жизни: два опроса подряд с тем же url, затем смена порта
// (клиент перезапустился), затем клиент пропал.
func TestWatchSampleSequence(t *testing.T) {
	stub := newLcuStub(t, 0)

	lc := New()
	var connecting atomic.Int32
	lc.OnConnecting = func() { connecting.Add(1) }

	u1 := stub.authURL("riot", "abc")
	u2 := stub.authURL("riot", "def")

	samples := make(chan procwatch.Sample, 4)
	samples <- procwatch.Sample{AuthURL: u1, Running: true}
	samples <- procwatch.Sample{AuthURL: u1, Running: true} // тот же url — no-op
	samples <- procwatch.Sample{AuthURL: u2, Running: true} // смена — реконнект
	samples <- procwatch.Sample{Running: false}             // пропал — Close
	close(samples)

	lc.Watch(context.Background(), samples)

	// первый коннект + ровно один реконнект на смену url
	if got := connecting.Load(); got != 2 {
		t.Fatalf("коннектов = %d, ожидали 2", got)
	}
	if lc.AuthURL() != "" {
		t.Errorf("после absence-сэмпла authURL = %q, ожидали пустой", lc.AuthURL())
	}
	if lc.IsConnected() {
		t.Error("после absence-сэмпла осталось соединение")
	}
	if lc.IsRunning() {
		t.Error("флаг running должен быть снят")
	}
}

// Мёртвый линк сам по себе не должен приводить к реконнекту: до следующей
// смены url или пропажи процесса supervisor ничего не предпринимает.
func TestWatchNoReconnectOnSameURL(t *testing.T) {
	stub := newLcuStub(t, 0)

	lc := New()
	var connecting atomic.Int32
	lc.OnConnecting = func() { connecting.Add(1) }

	u := stub.authURL("riot", "abc")
	samples := make(chan procwatch.Sample, 3)
	samples <- procwatch.Sample{AuthURL: u, Running: true}
	// сессия у стаба короткая: к моменту следующих сэмплов линк уже мёртв
	samples <- procwatch.Sample{AuthURL: u, Running: true}
	samples <- procwatch.Sample{AuthURL: u, Running: true}
	close(samples)

	lc.Watch(context.Background(), samples)

	if got := connecting.Load(); got != 1 {
		t.Fatalf("коннектов = %d, ожидали 1", got)
	}
}
