package webapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func testClient(ts *httptest.Server) *Client {
	c := NewClient()
	c.cdn = ts.URL
	c.ddragon = ts.URL
	return c
}

func TestFetchChampions(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cdn/14.9.1/data/en_US/champion.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{
			"Aatrox":{"id":"Aatrox","key":"266","name":"Aatrox","title":"the Darkin Blade"},
			"Ahri":{"id":"Ahri","key":"103","name":"Ahri","title":"the Nine-Tailed Fox"}}}`))
	}))
	defer ts.Close()

	c := testClient(ts)
	champions, err := c.FetchChampions(context.Background(), "14.9.1")
	if err != nil {
		t.Fatal(err)
	}
	if len(champions) != 2 {
		t.Fatalf("чемпионов = %d", len(champions))
	}

	info, ok := champions.FindByID(266)
	if !ok || info.ID != "Aatrox" {
		t.Errorf("FindByID(266) = %+v, %v", info, ok)
	}
	if _, ok := champions.FindByID(999); ok {
		t.Error("FindByID(999) нашёл несуществующего чемпиона")
	}
}

func TestFetchSourcesAndBuild(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/@champ-r/source-list@latest/index.json":
			_, _ = w.Write([]byte(`{"sources":[
				{"label":"OP.GG","value":"op.gg"},
				{"label":"OP.GG ARAM","value":"op.gg-aram","isAram":true}]}`))
		case "/@champ-r/op.gg@latest/aatrox.json":
			_, _ = w.Write([]byte(`[{
				"index":0,"alias":"Aatrox","position":"top",
				"itemBuilds":[{"title":"OP.GG Aatrox top","associatedChampions":[266],
					"blocks":[{"type":"Starter","items":[{"id":"1054","count":1}]}]}],
				"runes":[{"alias":"Aatrox","name":"Conqueror","position":"top",
					"primaryStyleId":8000,"subStyleId":8400,
					"selectedPerkIds":[8010,9111,9104,8299,8444,8453]}]}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	c := testClient(ts)

	sources, err := c.FetchSources(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 2 || sources[1].Value != "op.gg-aram" || !sources[1].IsAram {
		t.Fatalf("sources = %+v", sources)
	}

	sections, err := c.FetchChampionBuild(context.Background(), "op.gg", "aatrox")
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 1 {
		t.Fatalf("секций = %d", len(sections))
	}
	s := sections[0]
	if s.Position != "top" || len(s.ItemBuilds) != 1 || len(s.Runes) != 1 {
		t.Fatalf("секция = %+v", s)
	}
	if s.Runes[0].PrimaryStyleID != 8000 || len(s.Runes[0].SelectedPerkIDs) != 6 {
		t.Errorf("руны = %+v", s.Runes[0])
	}
}

// Повторный запрос с совпавшим ETag отдаёт 304 — ответ берём из кэша.
func TestGetJSONETag(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte(`["14.9.1","14.8.1"]`))
	}))
	defer ts.Close()

	c := testClient(ts)

	for i := 0; i < 2; i++ {
		versions, err := c.FetchVersions(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(versions) != 2 || versions[0] != "14.9.1" {
			t.Fatalf("попытка %d: versions = %v", i, versions)
		}
	}
	if hits.Load() != 2 {
		t.Errorf("запросов = %d, ожидали 2 (второй — 304)", hits.Load())
	}
}
