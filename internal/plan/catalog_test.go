// AngelaMos | 2026
// catalog_test.go

package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_KnownTypes(t *testing.T) {
	cases := []struct {
		planType   string
		investment int64
		ret        int64
		roi        int64
	}{
		{TypeBasic, 500, 2000, 300},
		{TypeGold, 1000, 6500, 550},
		{TypePlatinum, 2000, 15000, 650},
		{TypeDiamond, 5000, 50000, 900},
	}

	for _, tc := range cases {
		t.Run(tc.planType, func(t *testing.T) {
			def, ok := Lookup(tc.planType)
			require.True(t, ok)

			assert.Equal(t, tc.planType, def.Type)
			assert.Equal(t, tc.investment, def.InvestmentAmount)
			assert.Equal(t, tc.ret, def.ExpectedReturn)
			assert.Equal(t, tc.roi, def.ROI)
			assert.Equal(t, 7, def.DurationDays)
		})
	}
}

func TestLookup_UnknownType(t *testing.T) {
	_, ok := Lookup("silver")
	assert.False(t, ok)

	_, ok = Lookup("")
	assert.False(t, ok)

	_, ok = Lookup("BASIC")
	assert.False(t, ok, "lookup is case sensitive")
}

func TestCatalogDefinitions_Ordered(t *testing.T) {
	defs := CatalogDefinitions()
	require.Len(t, defs, 4)

	assert.Equal(t, TypeBasic, defs[0].Type)
	assert.Equal(t, TypeGold, defs[1].Type)
	assert.Equal(t, TypePlatinum, defs[2].Type)
	assert.Equal(t, TypeDiamond, defs[3].Type)

	// Tiers are strictly increasing by investment.
	for i := 1; i < len(defs); i++ {
		assert.Greater(t, defs[i].InvestmentAmount, defs[i-1].InvestmentAmount)
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusActive))
	assert.True(t, ValidStatus(StatusCompleted))

	assert.False(t, ValidStatus("cancelled"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("Active"))
}
