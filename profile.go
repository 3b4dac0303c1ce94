package rebalance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile enumerates every user-declared input of a rebalance run: which
// account number plays which role, the glide-path and flat-split settings,
// and the per-account cash deltas and externally-held dollars. It is the
// explicit, file-backed counterpart of the engine's Request.
type Profile struct {
	BrokerageAccount   string `yaml:"brokerage_account"`
	TraditionalAccount string `yaml:"traditional_account"`
	RothAccount        string `yaml:"roth_account"`

	BirthYear      int     `yaml:"birth_year"`
	RetirementYear int     `yaml:"retirement_year"`
	PercentStock   float64 `yaml:"percent_stock"`
	PoolBrokerage  bool    `yaml:"pool_brokerage"`

	Brokerage   Additions `yaml:"brokerage"`
	Traditional Additions `yaml:"traditional"`
	Roth        Additions `yaml:"roth"`
}

// Additions are the user-declared deltas for one account: cash to add to
// the sweep bucket and dollars held outside the custodial account, split
// by class. All default to zero.
type Additions struct {
	Cash      float64 `yaml:"cash"`
	USStock   float64 `yaml:"us_stock"`
	USBond    float64 `yaml:"us_bond"`
	IntlStock float64 `yaml:"intl_stock"`
	IntlBond  float64 `yaml:"intl_bond"`
}

// LoadProfile reads and decodes a YAML profile. Unknown keys are rejected:
// a typoed input silently defaulting to zero would skew the targets.
func LoadProfile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open profile: %w", err)
	}
	defer f.Close()

	var p Profile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("cannot parse profile %q: %w", path, err)
	}
	return &p, nil
}

// Request assembles the engine request for the current holdings.
func (p *Profile) Request(h *Holdings) Request {
	input := func(account string, adds Additions) AccountInput {
		return AccountInput{
			Holdings:     h.Account(account),
			CashAdd:      adds.Cash,
			USStockAdd:   adds.USStock,
			USBondAdd:    adds.USBond,
			IntlStockAdd: adds.IntlStock,
			IntlBondAdd:  adds.IntlBond,
		}
	}
	return Request{
		RetirementYear: p.RetirementYear,
		PercentStock:   Percent(p.PercentStock),
		PoolBrokerage:  p.PoolBrokerage,
		Quotes:         h.Quotes(),
		Brokerage:      input(p.BrokerageAccount, p.Brokerage),
		Traditional:    input(p.TraditionalAccount, p.Traditional),
		Roth:           input(p.RothAccount, p.Roth),
	}
}
