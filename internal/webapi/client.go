// Пакет для получения удалённых данных: список источников сборок и сами
// сборки с CDN, версии/чемпионы/руны из Data Dragon.
package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/EgorLis/Champbot/internal/builds"
)

const (
	defaultCDN     = "https://cdn.jsdelivr.net/npm"
	defaultDDragon = "https://ddragon.leagueoflegends.com"
)

// Source — один источник сборок (пакет @champ-r/<value> на CDN).
type Source struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	IsAram  bool   `json:"isAram,omitempty"`
	IsURF   bool   `json:"isURF,omitempty"`
	Version string `json:"version,omitempty"`
}

// ChampionInfo — запись из champion.json Data Dragon.
type ChampionInfo struct {
	ID    string `json:"id"`
	Key   string `json:"key"` // числовой id строкой, напр. "266"
	Name  string `json:"name"`
	Title string `json:"title"`
}

// ChampionsMap: alias ("Aatrox") -> инфо.
type ChampionsMap map[string]ChampionInfo

// FindByID ищет чемпиона по числовому id (LCU оперирует числами).
func (m ChampionsMap) FindByID(id int64) (ChampionInfo, bool) {
	key := fmt.Sprintf("%d", id)
	for _, info := range m {
		if info.Key == key {
			return info, true
		}
	}
	return ChampionInfo{}, false
}

// RuneStyle — ветка рун из runesReforged.json (для отображения иконок/имён).
type RuneStyle struct {
	ID    int64  `json:"id"`
	Key   string `json:"key"`
	Icon  string `json:"icon"`
	Name  string `json:"name"`
	Slots []struct {
		Runes []struct {
			ID   int64  `json:"id"`
			Key  string `json:"key"`
			Icon string `json:"icon"`
			Name string `json:"name"`
		} `json:"runes"`
	} `json:"slots"`
}

// BuildSection — данные одного источника по одному чемпиону: позиции,
// item-сборки и страницы рун.
type BuildSection struct {
	Index      int                `json:"index"`
	Alias      string             `json:"alias"`
	Position   string             `json:"position"`
	ItemBuilds []builds.ItemBuild `json:"itemBuilds"`
	Runes      []builds.Rune      `json:"runes"`
}

type Client struct {
	http    *http.Client
	cdn     string
	ddragon string

	mu    sync.RWMutex
	etags map[string]string // url -> ETag, для If-None-Match
	cache map[string][]byte // url -> последнее тело, отдаётся на 304
}

func NewClient() *Client {
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		cdn:     defaultCDN,
		ddragon: defaultDDragon,
		etags:   map[string]string{},
		cache:   map[string][]byte{},
	}
}

// getJSON — GET с ETag-кэшем: 304 декодируем из прошлого тела.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	c.mu.RLock()
	if et := c.etags[url]; et != "" {
		req.Header.Set("If-None-Match", et)
	}
	c.mu.RUnlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		c.mu.RLock()
		body := c.cache[url]
		c.mu.RUnlock()
		if body == nil {
			return errors.New("304 without cached body")
		}
		return json.Unmarshal(body, out)
	}
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if et := resp.Header.Get("ETag"); et != "" {
		c.mu.Lock()
		c.etags[url] = et
		c.cache[url] = body
		c.mu.Unlock()
	}
	return json.Unmarshal(body, out)
}

// FetchSources — реестр источников сборок.
func (c *Client) FetchSources(ctx context.Context) ([]Source, error) {
	var out struct {
		Sources []Source `json:"sources"`
	}
	url := c.cdn + "/@champ-r/source-list@latest/index.json"
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	return out.Sources, nil
}

// FetchVersions — список версий игры, свежая первой.
func (c *Client) FetchVersions(ctx context.Context) ([]string, error) {
	var versions []string
	if err := c.getJSON(ctx, c.ddragon+"/api/versions.json", &versions); err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, errors.New("empty versions list")
	}
	return versions, nil
}

func (c *Client) LatestVersion(ctx context.Context) (string, error) {
	v, err := c.FetchVersions(ctx)
	if err != nil {
		return "", err
	}
	return v[0], nil
}

// FetchChampions — карта чемпионов данной версии.
func (c *Client) FetchChampions(ctx context.Context, version string) (ChampionsMap, error) {
	var out struct {
		Data ChampionsMap `json:"data"`
	}
	url := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", c.ddragon, version)
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// FetchRunesReforged — справочник веток рун данной версии.
func (c *Client) FetchRunesReforged(ctx context.Context, version string) ([]RuneStyle, error) {
	var styles []RuneStyle
	url := fmt.Sprintf("%s/cdn/%s/data/en_US/runesReforged.json", c.ddragon, version)
	if err := c.getJSON(ctx, url, &styles); err != nil {
		return nil, err
	}
	return styles, nil
}

// FetchChampionBuild — сборки источника по чемпиону (alias в нижнем регистре
// в имени файла пакета).
func (c *Client) FetchChampionBuild(ctx context.Context, source, champion string) ([]BuildSection, error) {
	var sections []BuildSection
	url := fmt.Sprintf("%s/@champ-r/%s@latest/%s.json", c.cdn, source, champion)
	if err := c.getJSON(ctx, url, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}
