package cmd

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"testing"

	"github.com/etnz/capgrowth"
	"github.com/etnz/capgrowth/config"
	"github.com/etnz/capgrowth/date"
)

func TestPurchaseFlags(t *testing.T) {
	cfg := config.Default()
	testCases := []struct {
		name    string
		args    []string
		want    capgrowth.Anchor
		raw     bool
		wantErr bool
	}{
		{"defaults", nil, capgrowth.Anchor{Date: date.New(1988, 1, 1), Value: 500000}, true, false},
		{"overrides", []string{"-price", "320000", "-purchased", "2010-06-15", "-raw=false"}, capgrowth.Anchor{Date: date.New(2010, 6, 15), Value: 320000}, false, false},
		{"bare raw", []string{"-raw"}, capgrowth.Anchor{Date: date.New(1988, 1, 1), Value: 500000}, true, false},
		{"price too low", []string{"-price", "0.5"}, capgrowth.Anchor{}, false, true},
		{"invalid date", []string{"-purchased", "15/06/2010"}, capgrowth.Anchor{}, false, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var p purchaseFlags
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			p.SetFlags(fs)
			if err := fs.Parse(tc.args); err != nil {
				t.Fatalf("Parse(%v) failed: %v", tc.args, err)
			}
			got, err := p.anchor(cfg)
			if tc.wantErr {
				if err == nil {
					t.Errorf("anchor() = %v, want an error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("anchor() failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("anchor() = %v, want %v", got, tc.want)
			}
			if p.isRaw(cfg) != tc.raw {
				t.Errorf("isRaw() = %v, want %v", p.isRaw(cfg), tc.raw)
			}
		})
	}
}

func TestExplain(t *testing.T) {
	for _, sentinel := range []error{capgrowth.ErrEmptySegment, capgrowth.ErrDivision, capgrowth.ErrDomain} {
		err := explain(fmt.Errorf("context: %w", sentinel))
		if !errors.Is(err, sentinel) {
			t.Errorf("explain() = %v, want it to wrap %v", err, sentinel)
		}
		if !strings.Contains(err.Error(), "\n") {
			t.Errorf("explain(%v) has no hint", sentinel)
		}
	}
	other := errors.New("boom")
	if err := explain(other); err != other {
		t.Errorf("explain(%v) = %v, want it unchanged", other, err)
	}
}

func TestCompletion(t *testing.T) {
	fs := flag.NewFlagSet("cgr", flag.ContinueOnError)
	fs.String("config", "", "")
	root := Completion(fs)

	if _, ok := root.Flags["config"]; !ok {
		t.Errorf("global flag %q is not completed", "config")
	}
	for _, c := range Commands {
		if _, ok := root.Sub[c.Command.Name()]; !ok {
			t.Errorf("command %q is not completed", c.Command.Name())
		}
	}
	if _, ok := root.Sub["growth"].Flags["purchased"]; !ok {
		t.Errorf("growth flag %q is not completed", "purchased")
	}
	fetch := root.Sub["fetch"]
	for _, sub := range []string{"fred", "insee"} {
		if _, ok := fetch.Sub[sub]; !ok {
			t.Errorf("fetch %q is not completed", sub)
		}
	}
	topics := root.Sub["topic"].Args.Predict("")
	if len(topics) == 0 {
		t.Errorf("topic completion is empty")
	}
}
