package reporting

import "github.com/shopspring/decimal"

// Change computes the percentage change between a current and a previous
// aggregate as a display string. The value is clamped to [-100, 100]; a
// previous of zero yields "0%" when current is also zero and "100%"
// otherwise. Downstream dashboards rely on this clamp for formatting.
func Change(current, previous float64) string {
	if previous == 0 {
		if current == 0 {
			return "0%"
		}
		return "100%"
	}
	pct := decimal.NewFromFloat(current).
		Sub(decimal.NewFromFloat(previous)).
		Div(decimal.NewFromFloat(previous)).
		Mul(decimal.NewFromInt(100))
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return "100%"
	}
	if pct.LessThan(decimal.NewFromInt(-100)) {
		return "-100%"
	}
	return pct.Round(1).StringFixed(1) + "%"
}

// ChangeInt is Change for integer aggregates.
func ChangeInt(current, previous int) string {
	return Change(float64(current), float64(previous))
}

// ChangeDecimal is Change for decimal aggregates.
func ChangeDecimal(current, previous decimal.Decimal) string {
	c, _ := current.Float64()
	p, _ := previous.Float64()
	return Change(c, p)
}
