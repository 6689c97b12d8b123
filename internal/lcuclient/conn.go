package lcuclient

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// ========================= low-level =========================

const (
	// интервал между попытками апгрейда: локальный LCU "вот-вот поднимется"
	retryInterval = 2 * time.Second

	// подписка на поток JSON-событий — ровно один текстовый фрейм после апгрейда
	subscribeFrame = `[5, "OnJsonApiEvent"]`
)

// parseAuthURL разбирает "user:pass@host:port" на host:port и Basic-токен.
// Пароль обязателен: без него попытка не делается вовсе.
func parseAuthURL(authURL string) (host, authHeader string, err error) {
	u, err := url.Parse("wss://" + authURL)
	if err != nil {
		return "", "", fmt.Errorf("bad auth url: %w", err)
	}
	if u.User == nil {
		return "", "", errors.New("auth url: credentials missing")
	}
	pass, ok := u.User.Password()
	if !ok || pass == "" {
		return "", "", errors.New("auth url: password missing")
	}
	creds := u.User.Username() + ":" + pass
	authHeader = "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
	// gorilla не принимает userinfo в url — кладём креды только в заголовок
	return u.Host, authHeader, nil
}

func (lc *LcuClient) dialer() *websocket.Dialer {
	return &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: 45 * time.Second,
		// LCU слушает loopback с self-signed сертификатом: PKI тут не работает,
		// доверие обеспечивает Basic-токен
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
}

// Connect — апгрейд wss с бесконечным retry раз в 2s. Любая сетевая ошибка
// означает "LCU ещё не готов" и не различается по типу. Наружу уходят только
// ошибка разбора url/кредов и ctx.Err() при отмене.
//
// После апгрейда хэндл сразу публикуется (Close() может его закрыть), дальше
// отправляется подписка и Connect блокируется в read-цикле до смерти линка.
func (lc *LcuClient) Connect(ctx context.Context) error {
	lc.mu.Lock()
	authURL := lc.authURL
	lc.mu.Unlock()

	if authURL == "" {
		return errors.New("auth url is empty")
	}
	host, authHeader, err := parseAuthURL(authURL)
	if err != nil {
		return err
	}
	wsURL := "wss://" + host

	if lc.OnConnecting != nil {
		lc.OnConnecting()
	}

	header := http.Header{"Authorization": []string{authHeader}}
	dialer := lc.dialer()

	var conn *websocket.Conn
	for {
		c, resp, derr := dialer.DialContext(ctx, wsURL, header)
		if derr == nil {
			conn = c
			break
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		if lc.OnError != nil {
			lc.OnError(fmt.Errorf("dial %s (retry in %v): %w", wsURL, retryInterval, derr))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}

	lc.publishConn(conn)
	if lc.OnConnected != nil {
		lc.OnConnected()
	}

	if werr := conn.WriteMessage(websocket.TextMessage, []byte(subscribeFrame)); werr != nil {
		// линк умер между апгрейдом и подпиской — для вызывающего это
		// обычная короткая сессия, не ошибка Connect
		if lc.OnError != nil {
			lc.OnError(werr)
		}
		lc.dropConn(conn)
		_ = conn.Close()
		if lc.OnDisconnected != nil {
			lc.OnDisconnected()
		}
		return nil
	}

	lc.readLoop(conn)
	return nil
}
