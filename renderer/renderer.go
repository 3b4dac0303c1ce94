// Package renderer renders rebalance and distribution results to markdown,
// suitable for terminal display or inclusion in a report.
package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Rhymond/go-money"
	"github.com/etnz/rebalance"
)

// usd formats a dollar value for display.
func usd(v float64) string {
	return money.NewFromFloat(v, money.USD).Display()
}

// mix formats a stock:bond:inflation-protected breakdown.
func mix(v rebalance.Vector) string {
	stock, bond, inflation := v.Breakdown()
	return fmt.Sprintf("%.1f:%.1f:%.1f", float64(stock), float64(bond), float64(inflation))
}

// renderTemplate executes a named inline template over data.
func renderTemplate(name, text string, data any) string {
	t := template.Must(template.New(name).Parse(text))
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		// Inline templates over value structs: an execution error is a bug.
		panic(err)
	}
	return b.String()
}

type accountRow struct {
	Symbol  string
	Delta   string // share count to buy (positive) or sell (negative)
	Current string
	Target  string
}

type accountReport struct {
	Title        string
	Rows         []accountRow
	CashCurrent  string
	CashTarget   string
	Total        string
	OutsideStock string
	OutsideBond  string
	CurrentMix   string
	TargetMix    string
}

const accountTemplate = `### {{.Title}}

| Symbol | Buy/Sell (shares) | Current | Target |
|:-------|------------------:|--------:|-------:|
{{range .Rows}}| {{.Symbol}} | {{.Delta}} | {{.Current}} | {{.Target}} |
{{end}}
- Cash: {{.CashCurrent}} (target {{.CashTarget}})
- Total: {{.Total}}
- Outside stock: {{.OutsideStock}}, outside bond: {{.OutsideBond}}
- Stock:Bond:Inflation, current {{.CurrentMix}}, target {{.TargetMix}}
`

// Account renders one account's current/target/delta triple as a markdown
// section.
func Account(title string, a *rebalance.AccountHoldings) string {
	report := accountReport{
		Title:        title,
		CashCurrent:  usd(a.Current.Value(rebalance.Cash)),
		CashTarget:   usd(a.Target.Value(rebalance.Cash)),
		Total:        usd(a.Current.TotalValue()),
		OutsideStock: usd(a.Current.OutsideStock()),
		OutsideBond:  usd(a.Current.OutsideBond()),
		CurrentMix:   mix(a.Current),
		TargetMix:    mix(a.Target),
	}
	for _, sym := range rebalance.Tradable() {
		report.Rows = append(report.Rows, accountRow{
			Symbol:  sym.String(),
			Delta:   fmt.Sprintf("%.2f", a.Delta.Value(sym)),
			Current: usd(a.Current.Value(sym)),
			Target:  usd(a.Target.Value(sym)),
		})
	}
	return renderTemplate("account", accountTemplate, report)
}

type targetRow struct {
	Symbol string
	Value  string
}

const targetTemplate = `### Retirement target (all accounts pooled)

| Symbol | Target |
|:-------|-------:|
{{range .Rows}}| {{.Symbol}} | {{.Value}} |
{{end}}
- Total: {{.Total}}
- Stock:Bond:Inflation {{.Mix}}
`

// RetirementTarget renders the pooled retirement target vector.
func RetirementTarget(v rebalance.Vector) string {
	data := struct {
		Rows  []targetRow
		Total string
		Mix   string
	}{
		Total: usd(v.TotalValue()),
		Mix:   mix(v),
	}
	for _, sym := range rebalance.Tradable() {
		data.Rows = append(data.Rows, targetRow{Symbol: sym.String(), Value: usd(v.Value(sym))})
	}
	return renderTemplate("target", targetTemplate, data)
}

// Rebalance renders a full rebalance result: the pooled retirement target
// when present, then one section per participating account.
func Rebalance(r *rebalance.Rebalance) string {
	var b strings.Builder
	b.WriteString("## Rebalance\n\n")
	if r.RetirementTarget != nil {
		b.WriteString(RetirementTarget(*r.RetirementTarget))
		b.WriteString("\n")
	}
	if r.Traditional != nil {
		b.WriteString(Account("Traditional IRA", r.Traditional))
		b.WriteString("\n")
	}
	if r.Roth != nil {
		b.WriteString(Account("Roth IRA", r.Roth))
		b.WriteString("\n")
	}
	if r.Brokerage != nil {
		b.WriteString(Account("Brokerage", r.Brokerage))
		b.WriteString("\n")
	}
	return b.String()
}

const distributionTemplate = `## Minimum required distribution, {{.Year}}

| | Amount |
|:-|-------:|
| Minimum required | {{.Minimum}} |
| Already distributed | {{.Taken}} |
| Remaining | {{.Remaining}} |
`

// Distribution renders the RMD figures for a distribution year.
func Distribution(year int, d rebalance.Distribution) string {
	if d.NotYetRequired {
		return fmt.Sprintf("## Minimum required distribution, %d\n\nNo distribution is required yet: %s already distributed this year.\n", year, usd(d.Taken))
	}
	data := struct {
		Year                      int
		Minimum, Taken, Remaining string
	}{year, usd(d.Minimum), usd(d.Taken), usd(d.Remaining)}
	return renderTemplate("distribution", distributionTemplate, data)
}
