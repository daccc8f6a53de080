package rules

import "github.com/shopspring/decimal"

// d parses a literal constant. Only used for the embedded tables below.
func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Table2026 returns the federal payroll table for fiscal year 2026.
// Each call returns a fresh copy; callers may not share mutations.
func Table2026() Table {
	return Table{
		Year:                  2026,
		MinimumWage:           d("1621.00"),
		ContributionCap:       d("8475.55"),
		PerDependentDeduction: d("189.59"),
		StandardDeduction:     d("607.20"),

		ContributionBrackets: []Bracket{
			{Upper: UpTo(d("1621.00")), Rate: d("0.075"), Adjustment: d("0")},
			{Upper: UpTo(d("2902.84")), Rate: d("0.09"), Adjustment: d("24.32")},
			{Upper: UpTo(d("4354.27")), Rate: d("0.12"), Adjustment: d("111.40")},
			{Upper: UpTo(d("8475.55")), Rate: d("0.14"), Adjustment: d("198.49")},
		},

		IncomeTaxBrackets: []Bracket{
			{Upper: UpTo(d("2259.20")), Rate: d("0"), Adjustment: d("0")},
			{Upper: UpTo(d("2826.65")), Rate: d("0.075"), Adjustment: d("169.44")},
			{Upper: UpTo(d("3751.05")), Rate: d("0.15"), Adjustment: d("381.44")},
			{Upper: UpTo(d("4664.68")), Rate: d("0.225"), Adjustment: d("662.77")},
			{Upper: Unbounded(), Rate: d("0.275"), Adjustment: d("896.00")},
		},

		Exemption: Exemption{
			Threshold:    d("5000"),
			TaperCeiling: d("7350"),
			TaperBase:    d("978.62"),
			TaperRate:    d("0.133145"),
		},
	}
}

// Current returns the table embedded for the running fiscal year.
func Current() Table { return Table2026() }
