package cmd

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/etnz/capgrowth"
	"github.com/etnz/capgrowth/config"
	"github.com/etnz/capgrowth/date"
)

// optionalBool is a boolean flag that knows whether it was set.
type optionalBool struct {
	value, set bool
}

func (b *optionalBool) String() string   { return strconv.FormatBool(b.value) }
func (b *optionalBool) IsBoolFlag() bool { return true }
func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.value, b.set = v, true
	return nil
}

// or returns the flag value if set, def otherwise.
func (b *optionalBool) or(def bool) bool {
	if b.set {
		return b.value
	}
	return def
}

// purchaseFlags are the analysis inputs, defaulting to the configuration.
type purchaseFlags struct {
	index     string
	price     float64
	purchased string
	raw       optionalBool
}

func (p *purchaseFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.index, "index", "", "Index type: real or nominal. Defaults to the configuration.")
	f.Float64Var(&p.price, "price", 0, "Purchase price, at least 1. Defaults to the configuration.")
	f.StringVar(&p.purchased, "purchased", "", "Purchase date (YYYY-MM-DD). Defaults to the configuration.")
	f.Var(&p.raw, "raw", "Show the raw data table. Defaults to the configuration.")
}

// analyze reads the index and analyzes the purchase.
func (p *purchaseFlags) analyze(cfg *config.Config) (*capgrowth.Growth, error) {
	typ := cfg.IndexType()
	if p.index != "" {
		var err error
		if typ, err = capgrowth.ParseIndexType(p.index); err != nil {
			return nil, err
		}
	}
	anchor, err := p.anchor(cfg)
	if err != nil {
		return nil, err
	}
	index, err := cfg.LoadIndex(typ)
	if err != nil {
		return nil, err
	}
	return capgrowth.Analyze(index, anchor)
}

func (p *purchaseFlags) anchor(cfg *config.Config) (capgrowth.Anchor, error) {
	anchor := cfg.Anchor()
	if p.price != 0 {
		anchor.Value = p.price
	}
	if anchor.Value < 1 {
		return anchor, fmt.Errorf("purchase price must be at least 1, got %v", anchor.Value)
	}
	if p.purchased != "" {
		on, err := date.Parse(p.purchased)
		if err != nil {
			return anchor, err
		}
		anchor.Date = on
	}
	return anchor, nil
}

func (p *purchaseFlags) isRaw(cfg *config.Config) bool { return p.raw.or(cfg.Defaults.Raw) }
