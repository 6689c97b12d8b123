package lcuclient

import (
	"log/slog"

	"github.com/gorilla/websocket"
)

// readLoop тянет входящие фреймы по одному до первой ошибки чтения.
// Чистое закрытие и обрыв для нас неразличимы: цикл просто заканчивается,
// наружу ничего не репортим — Watch узнает о мёртвом линке из следующего
// сэмпла (смена url или пропажа процесса).
func (lc *LcuClient) readLoop(conn *websocket.Conn) {
	defer func() {
		lc.dropConn(conn)
		_ = conn.Close()
		if lc.OnDisconnected != nil {
			lc.OnDisconnected()
		}
	}()

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if lc.OnError != nil && !websocket.IsCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				lc.OnError(err)
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		slog.Debug("lcu event", "len", len(data))
		if lc.OnEvent != nil {
			lc.OnEvent(data)
		}
	}
}
