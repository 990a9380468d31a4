package service

// Risk levels
const (
	RiskConservative = "conservative"
	RiskSteady       = "steady"
	RiskBalanced     = "balanced"
	RiskGrowth       = "growth"
	RiskAggressive   = "aggressive"
)

// RiskAllocation is a money/bond/equity split (percent) for one risk level.
type RiskAllocation struct {
	RiskLevel string  `json:"riskLevel"`
	Label     string  `json:"label"`
	Money     float64 `json:"money"`
	Bond      float64 `json:"bond"`
	Equity    float64 `json:"equity"`
}

// RecommendedFund is a teaching shortlist entry for one asset class.
type RecommendedFund struct {
	FundCode string `json:"fundCode"`
	FundName string `json:"fundName"`
	Category string `json:"category"`
}

var riskAllocations = []RiskAllocation{
	{RiskLevel: RiskConservative, Label: "保守型", Money: 50, Bond: 40, Equity: 10},
	{RiskLevel: RiskSteady, Label: "稳健型", Money: 20, Bond: 50, Equity: 30},
	{RiskLevel: RiskBalanced, Label: "平衡型", Money: 10, Bond: 40, Equity: 50},
	{RiskLevel: RiskGrowth, Label: "成长型", Money: 5, Bond: 25, Equity: 70},
	{RiskLevel: RiskAggressive, Label: "进取型", Money: 0, Bond: 10, Equity: 90},
}

// allocationForRisk falls back to the steady template for unknown levels.
func allocationForRisk(riskLevel string) RiskAllocation {
	for _, a := range riskAllocations {
		if a.RiskLevel == riskLevel {
			return a
		}
	}
	return riskAllocations[1]
}

var recommendedFunds = map[string][]RecommendedFund{
	"money": {
		{FundCode: "000198", FundName: "天弘余额宝货币", Category: "货币型"},
		{FundCode: "000330", FundName: "华夏现金增利货币A", Category: "货币型"},
	},
	"bond": {
		{FundCode: "110003", FundName: "易方达稳健收益债券B", Category: "债券型"},
		{FundCode: "000032", FundName: "易方达信用债债券A", Category: "债券型"},
	},
	"equity": {
		{FundCode: "510300", FundName: "华泰柏瑞沪深300ETF", Category: "指数型"},
		{FundCode: "110011", FundName: "易方达中小盘混合", Category: "混合型"},
		{FundCode: "161725", FundName: "招商中证白酒指数", Category: "指数型"},
	},
}
