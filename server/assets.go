package main

import "fmt"

// Asset describes a named visual representation. The core never renders;
// it only hands these descriptors to clients, which own the actual
// meshes and materials.
type Asset struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Mesh   string  `json:"mesh"`
	Color1 string  `json:"color1"`
	Color2 string  `json:"color2"`
	Scale  float64 `json:"scale"`
}

// AssetCatalog is the full set of shared visual assets.
var AssetCatalog = []Asset{
	{ID: "ground", Name: "Arena Floor", Mesh: "plane", Color1: "#2b2b33", Color2: "#1d1d24", Scale: 1.0},
	{ID: "wall", Name: "Barrier Block", Mesh: "cube", Color1: "#6b6f7a", Color2: "#3c3f47", Scale: 1.0},
	{ID: "tank_player", Name: "Player Tank", Mesh: "tank", Color1: "#44cc88", Color2: "#1f7a4d", Scale: 1.0},
	{ID: "tank_enemy", Name: "Enemy Tank", Mesh: "tank", Color1: "#cc4444", Color2: "#7a1f1f", Scale: 1.0},
	{ID: "bullet", Name: "Shell", Mesh: "sphere", Color1: "#ffcc44", Color2: "#aa8800", Scale: 0.25},
	{ID: "explosion", Name: "Explosion", Mesh: "burst", Color1: "#ff6622", Color2: "#ffaa00", Scale: 2.0},
	{ID: "spark", Name: "Impact Spark", Mesh: "burst", Color1: "#ffee88", Color2: "#ffffff", Scale: 0.8},
}

// requiredAssets must all resolve at startup or the world cannot be shown.
var requiredAssets = []string{
	"ground", "wall", "tank_player", "tank_enemy", "bullet", "explosion",
}

// AssetLibrary is the resource collaborator: loaded once at startup,
// synchronous lookups afterwards.
type AssetLibrary struct {
	loaded map[string]Asset
}

// LoadAssets loads all shared assets. A missing required asset is a
// fatal startup error; no partial game state may be shown.
func LoadAssets() (*AssetLibrary, error) {
	lib := &AssetLibrary{loaded: make(map[string]Asset, len(AssetCatalog))}
	for _, a := range AssetCatalog {
		lib.loaded[a.ID] = a
	}
	for _, id := range requiredAssets {
		if _, ok := lib.loaded[id]; !ok {
			return nil, fmt.Errorf("required visual asset %q is missing", id)
		}
	}
	return lib, nil
}

// Get looks up a named visual asset.
func (l *AssetLibrary) Get(id string) (Asset, bool) {
	a, ok := l.loaded[id]
	return a, ok
}
