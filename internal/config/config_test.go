package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadRoot(t *testing.T) {
	path := writeTemp(t, "pipeline.yaml", `
pipeline:
  search_limit: 50
  page_max: 2
  dedup_capacity: 500
filter:
  price_floor: 20.0
  premium_price: 50.0
  strict:
    mid_rating_min: 4.8
    mid_sales_min: 300
schedule:
  quiet_sleep_minutes: 30
  windows:
    - name: "quiet"
      from: 2
      to: 6
      quiet: true
  default:
    name: "normal"
    min_minutes: 35
    max_minutes: 55
gemini:
  model_ranking: "gemini-2.5-flash"
`)

	cfg, err := LoadRoot(path)
	if err != nil {
		t.Fatalf("LoadRoot: %v", err)
	}

	if cfg.Pipeline.SearchLimit != 50 || cfg.Pipeline.DedupCapacity != 500 {
		t.Errorf("pipeline block: %+v", cfg.Pipeline)
	}
	if cfg.Filter.PriceFloor != 20.0 || cfg.Filter.Strict.MidSalesMin != 300 {
		t.Errorf("filter block: %+v", cfg.Filter)
	}
	if len(cfg.Schedule.Windows) != 1 || !cfg.Schedule.Windows[0].Quiet {
		t.Errorf("schedule windows: %+v", cfg.Schedule.Windows)
	}
	if cfg.Schedule.Default.MaxMinutes != 55 {
		t.Errorf("default window: %+v", cfg.Schedule.Default)
	}
	if cfg.Gemini.ModelRanking != "gemini-2.5-flash" {
		t.Errorf("gemini block: %+v", cfg.Gemini)
	}
}

func TestLoadCatalog(t *testing.T) {
	path := writeTemp(t, "catalog.yaml", `
keywords:
  - "fone bluetooth"
  - "mini projetor"
blacklist:
  - "capa"
headlines:
  super_discount:
    - "🔥 SUPER DESCONTO!"
  default:
    - "✨ Achadinho do dia!"
ctas:
  - "👉 <b>Aproveite:</b>"
`)

	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	if len(cat.Keywords) != 2 || cat.Keywords[1] != "mini projetor" {
		t.Errorf("keywords: %v", cat.Keywords)
	}
	if len(cat.Blacklist) != 1 {
		t.Errorf("blacklist: %v", cat.Blacklist)
	}
	if len(cat.Headlines.SuperDiscount) != 1 || len(cat.Headlines.Default) != 1 {
		t.Errorf("headlines: %+v", cat.Headlines)
	}
	if len(cat.CTAs) != 1 {
		t.Errorf("ctas: %v", cat.CTAs)
	}
}

func TestLoadRootMissingFile(t *testing.T) {
	if _, err := LoadRoot(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadRootMalformedYAML(t *testing.T) {
	path := writeTemp(t, "broken.yaml", "pipeline: [not: a map")
	if _, err := LoadRoot(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
