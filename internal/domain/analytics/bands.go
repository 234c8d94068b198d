package analytics

import "github.com/shopspring/decimal"

// Band is one bucket of a distribution. Bands are lower-inclusive and
// upper-exclusive; the final band of a table is open-ended. Representing
// only the exclusive upper bound keeps the table gap-free by construction.
type Band struct {
	Label string
	Upper int64
	Open  bool
}

var SalaryBands = []Band{
	{Label: "<30K", Upper: 30000},
	{Label: "30K-49K", Upper: 50000},
	{Label: "50K-69K", Upper: 70000},
	{Label: "70K-89K", Upper: 90000},
	{Label: "90K and above", Open: true},
}

var AgeBands = []Band{
	{Label: "<20", Upper: 20},
	{Label: "20-29", Upper: 30},
	{Label: "30-39", Upper: 40},
	{Label: "40-49", Upper: 50},
	{Label: "50-59", Upper: 60},
	{Label: "60 and above", Open: true},
}

// SalaryBandFor returns the band label for a salary value.
func SalaryBandFor(v decimal.Decimal) string {
	for _, b := range SalaryBands {
		if !b.Open && v.LessThan(decimal.NewFromInt(b.Upper)) {
			return b.Label
		}
	}
	return SalaryBands[len(SalaryBands)-1].Label
}

// AgeBandFor returns the band label for an age in whole years.
func AgeBandFor(age int64) string {
	for _, b := range AgeBands {
		if !b.Open && age < b.Upper {
			return b.Label
		}
	}
	return AgeBands[len(AgeBands)-1].Label
}
