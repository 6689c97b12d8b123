// Package builds — типы сборок/рун из внешних источников и запись
// item-сборок в конфиг игры (Game/Config/Champions/.../Recommended).
package builds

// Item — позиция в блоке предметов (id магазина + количество).
type Item struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

type Block struct {
	Type  string `json:"type"`
	Items []Item `json:"items"`
}

// ItemBuild — файл рекомендованной сборки в схеме, которую понимает игра.
type ItemBuild struct {
	Title               string  `json:"title"`
	AssociatedMaps      []int   `json:"associatedMaps"`
	AssociatedChampions []int   `json:"associatedChampions"`
	Blocks              []Block `json:"blocks"`
	Map                 string  `json:"map"`
	Mode                string  `json:"mode"`
	Type                string  `json:"type"`
	Sortrank            int     `json:"sortrank"`
	StartedFrom         string  `json:"startedFrom"`
}

// Rune — страница рун из источника (до конвертации в формат LCU).
type Rune struct {
	Alias           string  `json:"alias"`
	Name            string  `json:"name"`
	Position        string  `json:"position"`
	PickCount       int     `json:"pickCount"`
	Win             string  `json:"win"`
	Score           float64 `json:"score"`
	PrimaryStyleID  int64   `json:"primaryStyleId"`
	SubStyleID      int64   `json:"subStyleId"`
	SelectedPerkIDs []int64 `json:"selectedPerkIds"`
}
