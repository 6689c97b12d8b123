package lcuclient

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// LcuClient — состояние подключения к локальному API клиента лиги.
// conn != nil строго между успешным апгрейдом и Close()/смертью read-цикла.
type LcuClient struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	authURL string
	running bool

	// "События" (аналог EventEmitter)
	OnConnecting   func()
	OnConnected    func()
	OnEvent        func(raw []byte)
	OnDisconnected func()
	OnError        func(error)
}

func New() *LcuClient {
	return &LcuClient{}
}

// UpdateAuthURL сохраняет новый auth url; false — значение не изменилось.
// Единственный фильтр против лишних реконнектов, когда опрос процесса
// раз за разом приносит один и тот же url.
func (lc *LcuClient) UpdateAuthURL(candidate string) bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if lc.authURL == candidate {
		return false
	}
	lc.authURL = candidate
	slog.Info("lcu auth url updated", "url", candidate)
	return true
}

// SetRunning — только флаг; закрытие/открытие сокета решает Watch.
func (lc *LcuClient) SetRunning(v bool) {
	lc.mu.Lock()
	lc.running = v
	lc.mu.Unlock()
}

func (lc *LcuClient) IsRunning() bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.running
}

func (lc *LcuClient) AuthURL() string {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.authURL
}

func (lc *LcuClient) IsConnected() bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn != nil
}

// Close — best-effort: шлём close frame, любые ошибки игнорируем, хэндл
// выбрасываем в любом случае. Сбрасывает и authURL. Повторный Close — no-op.
func (lc *LcuClient) Close() {
	lc.mu.Lock()
	conn := lc.conn
	lc.conn = nil
	lc.authURL = ""
	lc.mu.Unlock()

	if conn == nil {
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "closing"),
		time.Now().Add(500*time.Millisecond))
	_ = conn.Close()
}

// dropConn сбрасывает хэндл, если read-цикл завершился именно за этим conn.
// Умерший линк не трогает authURL — реконнект случится только по следующему
// сэмплу со сменой url или с пропажей процесса.
func (lc *LcuClient) dropConn(conn *websocket.Conn) {
	lc.mu.Lock()
	if lc.conn == conn {
		lc.conn = nil
	}
	lc.mu.Unlock()
}

func (lc *LcuClient) publishConn(conn *websocket.Conn) {
	lc.mu.Lock()
	lc.conn = conn
	lc.mu.Unlock()
}
