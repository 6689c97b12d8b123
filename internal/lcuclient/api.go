package lcuclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ========================= high-level API (REST) =========================
//
// Тот же loopback-эндпоинт и те же креды, что и у сокета, только https.
// Используется для применения рун: страницы перков живут в /lol-perks/v1.

type Summoner struct {
	AccountID     int64  `json:"accountId"`
	DisplayName   string `json:"displayName"`
	SummonerID    int64  `json:"summonerId"`
	SummonerLevel int    `json:"summonerLevel"`
}

type RunePage struct {
	ID              int64   `json:"id,omitempty"`
	Name            string  `json:"name"`
	PrimaryStyleID  int64   `json:"primaryStyleId"`
	SubStyleID      int64   `json:"subStyleId"`
	SelectedPerkIDs []int64 `json:"selectedPerkIds"`
	Current         bool    `json:"current"`
	IsDeletable     bool    `json:"isDeletable,omitempty"`
}

var restHTTP = &http.Client{
	Timeout: 10 * time.Second,
	Transport: &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	},
}

// restBase — https-адрес и Basic-заголовок из текущего authURL.
func (lc *LcuClient) restBase() (base, authHeader string, err error) {
	lc.mu.Lock()
	authURL := lc.authURL
	lc.mu.Unlock()

	if authURL == "" {
		return "", "", errors.New("auth url is empty")
	}
	host, authHeader, err := parseAuthURL(authURL)
	if err != nil {
		return "", "", err
	}
	return "https://" + host, authHeader, nil
}

func (lc *LcuClient) doREST(ctx context.Context, method, path string, in, out any) error {
	base, authHeader, err := lc.restBase()
	if err != nil {
		return err
	}

	var body *bytes.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", authHeader)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := restHTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("lcu %s %s: %s", method, path, resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (lc *LcuClient) CurrentSummoner(ctx context.Context) (*Summoner, error) {
	var s Summoner
	if err := lc.doREST(ctx, http.MethodGet, "/lol-summoner/v1/current-summoner", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// CurrentChampion — id выбранного чемпиона в champ select (0 — никто).
func (lc *LcuClient) CurrentChampion(ctx context.Context) (int64, error) {
	var id int64
	if err := lc.doREST(ctx, http.MethodGet, "/lol-champ-select/v1/current-champion", nil, &id); err != nil {
		return 0, err
	}
	return id, nil
}

func (lc *LcuClient) ListRunePages(ctx context.Context) ([]RunePage, error) {
	var pages []RunePage
	if err := lc.doREST(ctx, http.MethodGet, "/lol-perks/v1/pages", nil, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

func (lc *LcuClient) CreateRunePage(ctx context.Context, page RunePage) error {
	return lc.doREST(ctx, http.MethodPost, "/lol-perks/v1/pages", page, nil)
}

func (lc *LcuClient) DeleteRunePage(ctx context.Context, id int64) error {
	return lc.doREST(ctx, http.MethodDelete, fmt.Sprintf("/lol-perks/v1/pages/%d", id), nil, nil)
}

// ApplyRunePage — записывает страницу в клиент: слотов у аккаунта мало,
// поэтому сперва освобождаем первый удаляемый, затем создаём новую.
func (lc *LcuClient) ApplyRunePage(ctx context.Context, page RunePage) error {
	pages, err := lc.ListRunePages(ctx)
	if err != nil {
		return err
	}
	for _, p := range pages {
		if p.IsDeletable {
			if err := lc.DeleteRunePage(ctx, p.ID); err != nil {
				return err
			}
			break
		}
	}
	page.Current = true
	return lc.CreateRunePage(ctx, page)
}
