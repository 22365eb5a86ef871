// AngelaMos | 2026
// catalog.go

package plan

// Definition is one of the four canonical investment presets. Plans are
// only ever created from this catalog; the numeric triple is not
// caller-supplied.
type Definition struct {
	Type             string
	Name             string
	InvestmentAmount int64
	ExpectedReturn   int64
	ROI              int64
	DurationDays     int
}

const (
	TypeBasic    = "basic"
	TypeGold     = "gold"
	TypePlatinum = "platinum"
	TypeDiamond  = "diamond"
)

var catalog = map[string]Definition{
	TypeBasic: {
		Type:             TypeBasic,
		Name:             "Basic Plan",
		InvestmentAmount: 500,
		ExpectedReturn:   2000,
		ROI:              300,
		DurationDays:     7,
	},
	TypeGold: {
		Type:             TypeGold,
		Name:             "Gold Plan",
		InvestmentAmount: 1000,
		ExpectedReturn:   6500,
		ROI:              550,
		DurationDays:     7,
	},
	TypePlatinum: {
		Type:             TypePlatinum,
		Name:             "Platinum Plan",
		InvestmentAmount: 2000,
		ExpectedReturn:   15000,
		ROI:              650,
		DurationDays:     7,
	},
	TypeDiamond: {
		Type:             TypeDiamond,
		Name:             "Diamond Plan",
		InvestmentAmount: 5000,
		ExpectedReturn:   50000,
		ROI:              900,
		DurationDays:     7,
	},
}

func Lookup(planType string) (Definition, bool) {
	def, ok := catalog[planType]
	return def, ok
}

func CatalogDefinitions() []Definition {
	return []Definition{
		catalog[TypeBasic],
		catalog[TypeGold],
		catalog[TypePlatinum],
		catalog[TypeDiamond],
	}
}
