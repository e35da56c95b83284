package ops

import (
	"encoding/json"
	"fmt"
	"os"

	"main/internal/bookcache"
	"main/internal/exec"
	"main/internal/registry"
	"main/internal/risk"
	"main/internal/schema"
	"main/internal/signal"
)

// FileConfig mirrors the JSON config layout for a hedgebot run.
type FileConfig struct {
	Registry RegistryConfig     `json:"registry"`
	Risk     risk.Config        `json:"risk"`
	Exec     exec.Config        `json:"exec"`
	Book     BookConfig         `json:"book"`
	LeadLag  LeadLagConfig      `json:"leadLag"`
	Features FeatureFlagsConfig `json:"features"`
}

// RegistryConfig defines venues, markets, fee packs, and pairs.
type RegistryConfig struct {
	Venues   []VenueConfig   `json:"venues"`
	Markets  []MarketConfig  `json:"markets"`
	FeePacks []FeePackConfig `json:"feePacks"`
	Pairs    []PairConfig    `json:"pairs"`
}

// VenueConfig describes a venue entry.
type VenueConfig struct {
	Name string `json:"name"`
}

// MarketConfig describes a single market entry.
type MarketConfig struct {
	Name       string           `json:"name"`
	Venue      string           `json:"venue"`
	QuestionID string           `json:"questionId"`
	Scale      schema.ScaleSpec `json:"scale"`
}

// FeePackConfig describes a venue's fee schedule.
type FeePackConfig struct {
	Venue         string              `json:"venue"`
	TakerBps      int64               `json:"takerBps"`
	MakerBps      int64               `json:"makerBps"`
	ProfitFeeBps  int64               `json:"profitFeeBps"`
	RoundingRule  schema.RoundingRule `json:"roundingRule"`
	FrictionCents schema.Price        `json:"frictionCents"`
}

// PairConfig describes a candidate cross-venue market pair.
type PairConfig struct {
	MarketA              string  `json:"marketA"`
	MarketB              string  `json:"marketB"`
	SimilarityScore      float64 `json:"similarityScore"`
	SameResolutionSource bool    `json:"sameResolutionSource"`
	SameCloseTimeWindow  bool    `json:"sameCloseTimeWindow"`
	BothBinary           bool    `json:"bothBinary"`
	TickSizeCompatible   bool    `json:"tickSizeCompatible"`
	Active               bool    `json:"active"`
}

// BookConfig configures the book cache's bar accumulator.
type BookConfig struct {
	BarDurationMs int64 `json:"barDurationMs"`
	RetentionMs   int64 `json:"retentionMs"`
	EvictAfterMs  int64 `json:"evictAfterMs"`
}

// LeadLagConfig configures the cross-correlation lead-lag detector.
type LeadLagConfig struct {
	WindowBars int `json:"windowBars"`
	MaxLagBars int `json:"maxLagBars"`
}

// FeatureFlagsConfig captures optional runtime flags.
type FeatureFlagsConfig struct {
	EnableExecution *bool `json:"enableExecution"`
	EnableChaos     *bool `json:"enableChaos"`
}

// FeatureFlags are resolved runtime flags.
type FeatureFlags struct {
	EnableExecution bool
	EnableChaos     bool
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	Registry     *registry.Store
	FeePacks     map[schema.VenueID]schema.FeePack
	Risk         risk.Config
	Exec         exec.Config
	BookDuration int64
	BookRetain   int64
	BookEvict    int64
	LeadLag      signal.LeadLagDetector
	Features     FeatureFlags
}

// Load reads a JSON config file and builds the registry, fee packs, and
// pairs, applying spec-default risk/exec/book settings where the file
// omits them.
func Load(path string) (Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, err
	}
	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Loaded{}, err
	}

	store, feePacks, symbolIDs, err := buildRegistry(cfg.Registry)
	if err != nil {
		return Loaded{}, err
	}
	if err := buildPairs(store, cfg.Registry.Pairs, symbolIDs); err != nil {
		return Loaded{}, err
	}

	riskCfg := cfg.Risk
	if riskCfg.PairsMax == 0 {
		riskCfg = risk.DefaultConfig()
	}
	execCfg := cfg.Exec
	if execCfg.HedgeTimeoutMs == 0 {
		execCfg = exec.DefaultConfig()
	}
	barDuration := cfg.Book.BarDurationMs
	if barDuration == 0 {
		barDuration = bookcache.DefaultBarDurationMs
	}
	retain := cfg.Book.RetentionMs
	if retain == 0 {
		retain = bookcache.DefaultRetentionMs
	}
	windowBars := cfg.LeadLag.WindowBars
	if windowBars == 0 {
		windowBars = signal.DefaultWindowBars
	}
	maxLagBars := cfg.LeadLag.MaxLagBars
	if maxLagBars == 0 {
		maxLagBars = signal.DefaultMaxLagBars
	}

	return Loaded{
		Registry:     store,
		FeePacks:     feePacks,
		Risk:         riskCfg,
		Exec:         execCfg,
		BookDuration: barDuration,
		BookRetain:   retain,
		BookEvict:    cfg.Book.EvictAfterMs,
		LeadLag:      *signal.NewLeadLagDetector(windowBars, maxLagBars),
		Features:     resolveFeatures(cfg.Features),
	}, nil
}

func buildRegistry(cfg RegistryConfig) (*registry.Store, map[schema.VenueID]schema.FeePack, map[string]schema.MarketID, error) {
	reg := schema.NewRegistry()
	venueIDs := make(map[string]schema.VenueID, len(cfg.Venues))
	for _, venue := range cfg.Venues {
		id, err := reg.AddVenue(venue.Name)
		if err != nil {
			return nil, nil, nil, err
		}
		venueIDs[venue.Name] = id
	}

	symbolIDs := make(map[string]schema.MarketID, len(cfg.Markets))
	for _, mkt := range cfg.Markets {
		venueID, ok := venueIDs[mkt.Venue]
		if !ok {
			return nil, nil, nil, fmt.Errorf("market %s: venue not found: %s", mkt.Name, mkt.Venue)
		}
		if err := validateScale(mkt.Scale); err != nil {
			return nil, nil, nil, fmt.Errorf("invalid scale for %s: %w", mkt.Name, err)
		}
		id, err := reg.AddSymbol(mkt.Name, venueID, mkt.Scale)
		if err != nil {
			return nil, nil, nil, err
		}
		symbolIDs[mkt.Name] = id
	}

	store := registry.New(reg)
	for _, mkt := range cfg.Markets {
		id := symbolIDs[mkt.Name]
		venueID := venueIDs[mkt.Venue]
		store.PutMarket(schema.Market{
			ID:         id,
			VenueID:    venueID,
			QuestionID: mkt.QuestionID,
			Name:       mkt.Name,
			Active:     true,
		})
	}

	feePacks := make(map[schema.VenueID]schema.FeePack, len(cfg.FeePacks))
	for _, fp := range cfg.FeePacks {
		venueID, ok := venueIDs[fp.Venue]
		if !ok {
			return nil, nil, nil, fmt.Errorf("fee pack: venue not found: %s", fp.Venue)
		}
		pack := schema.FeePack{
			VenueID:       venueID,
			Version:       1,
			TakerBps:      fp.TakerBps,
			MakerBps:      fp.MakerBps,
			ProfitFeeBps:  fp.ProfitFeeBps,
			RoundingRule:  fp.RoundingRule,
			FrictionCents: fp.FrictionCents,
		}
		store.PutFeePack(pack)
		feePacks[venueID] = pack
	}

	return store, feePacks, symbolIDs, nil
}

func buildPairs(store *registry.Store, pairs []PairConfig, symbolIDs map[string]schema.MarketID) error {
	for _, p := range pairs {
		marketA, ok := symbolIDs[p.MarketA]
		if !ok {
			return fmt.Errorf("pair: market not found: %s", p.MarketA)
		}
		marketB, ok := symbolIDs[p.MarketB]
		if !ok {
			return fmt.Errorf("pair: market not found: %s", p.MarketB)
		}
		mktA, ok := store.Market(marketA)
		if !ok {
			return fmt.Errorf("pair: market metadata missing: %s", p.MarketA)
		}
		mktB, ok := store.Market(marketB)
		if !ok {
			return fmt.Errorf("pair: market metadata missing: %s", p.MarketB)
		}
		id, err := store.RegisterPair(marketA, marketB, mktA.VenueID, mktB.VenueID, p.SimilarityScore, schema.HardRules{
			SameResolutionSource: p.SameResolutionSource,
			SameCloseTimeWindow:  p.SameCloseTimeWindow,
			BothBinary:           p.BothBinary,
			TickSizeCompatible:   p.TickSizeCompatible,
		})
		if err != nil {
			return err
		}
		if p.Active {
			if err := store.SetPairActive(id, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateScale(scale schema.ScaleSpec) error {
	if scale.PriceScale < 0 || scale.QuantityScale < 0 || scale.NotionalScale < 0 || scale.FeeScale < 0 {
		return fmt.Errorf("scale must be >= 0")
	}
	return nil
}

func resolveFeatures(cfg FeatureFlagsConfig) FeatureFlags {
	flags := FeatureFlags{
		EnableExecution: true,
		EnableChaos:     false,
	}
	if cfg.EnableExecution != nil {
		flags.EnableExecution = *cfg.EnableExecution
	}
	if cfg.EnableChaos != nil {
		flags.EnableChaos = *cfg.EnableChaos
	}
	return flags
}
