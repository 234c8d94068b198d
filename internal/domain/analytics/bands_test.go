package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSalaryBandFor_Boundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		salary string
		want   string
	}{
		{"0", "<30K"},
		{"29999.99", "<30K"},
		{"30000", "30K-49K"},
		{"49999.99", "30K-49K"},
		{"50000", "50K-69K"},
		{"55000", "50K-69K"},
		{"69999.99", "50K-69K"},
		{"70000", "70K-89K"},
		{"89999.99", "70K-89K"},
		{"90000", "90K and above"},
		{"250000", "90K and above"},
	}
	for _, c := range cases {
		got := SalaryBandFor(decimal.RequireFromString(c.salary))
		assert.Equal(t, c.want, got, "salary %s", c.salary)
	}
}

func TestAgeBandFor_Boundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		age  int64
		want string
	}{
		{0, "<20"},
		{19, "<20"},
		{20, "20-29"},
		{29, "20-29"},
		{30, "30-39"},
		{39, "30-39"},
		{40, "40-49"},
		{50, "50-59"},
		{59, "50-59"},
		{60, "60 and above"},
		{97, "60 and above"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, AgeBandFor(c.age), "age %d", c.age)
	}
}

// Every value lands in exactly one band: the lower-inclusive boundaries
// leave no gap and no overlap across the whole domain.
func TestBands_PartitionTheDomain(t *testing.T) {
	t.Parallel()

	for v := int64(0); v <= 200000; v += 500 {
		matched := 0
		label := SalaryBandFor(decimal.NewFromInt(v))
		for _, b := range SalaryBands {
			if b.Label == label {
				matched++
			}
		}
		assert.Equal(t, 1, matched, "salary %d", v)
	}

	for age := int64(0); age <= 120; age++ {
		matched := 0
		label := AgeBandFor(age)
		for _, b := range AgeBands {
			if b.Label == label {
				matched++
			}
		}
		assert.Equal(t, 1, matched, "age %d", age)
	}
}
