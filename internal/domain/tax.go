package domain

// ============================================================
// Tax API contract (POST <base>/api/<calculator>)
// ============================================================
//
// Keys are the API's Korean field names. Radio-backed flags are pointers
// so that an unanswered choice is sent as null instead of false. Response
// numbers are pointers so that a field the API did not return renders as a
// placeholder rather than as zero.

// CapitalGainsRequest is the body of POST /api/capital-gains.
type CapitalGainsRequest struct {
	AssetType      string `json:"양도물건"`
	NonTaxable     *bool  `json:"비과세여부"`
	HoldingYears   int64  `json:"보유기간"`
	ResidenceYears int64  `json:"거주기간"`
	DeductionTable string `json:"장특공제표"`
	Joint          *bool  `json:"공동명의"`
	SurchargeType  string `json:"중과세유형"`
	SalePrice      int64  `json:"양도가액"`
	PurchasePrice  int64  `json:"매입가액"`
}

// CapitalGainsResult is the response of POST /api/capital-gains.
type CapitalGainsResult struct {
	TotalGain         *float64 `json:"전체_양도차익"`
	NonTaxableGain    *float64 `json:"비과세_양도차익"`
	TaxableGain       *float64 `json:"과세_양도차익"`
	LongTermRate      *float64 `json:"장특공제_공제율"`
	LongTermDeduction *float64 `json:"장특공제"`
	GainIncome        *float64 `json:"양도소득금액"`
	BasicDeduction    *float64 `json:"기본공제"`
	TaxBase           *float64 `json:"과세표준"`
	RateLabel         string   `json:"세율라벨"`
	AppliedRate       *float64 `json:"적용세율"`
	ProgressiveCredit *float64 `json:"누진공제"`
	BaseTax           *float64 `json:"기본세액"`
	ComputedTax       *float64 `json:"산출세액"`
	LocalIncomeTax    *float64 `json:"지방소득세"`
	TaxWithLocal      *float64 `json:"지방세포함_세액"`
	FinalTax          *float64 `json:"최종세액"`
	Joint             *bool    `json:"공동명의"`
}

// GiftTaxRequest is the body of POST /api/gift-tax.
type GiftTaxRequest struct {
	Relation      string `json:"수증자_관계"`
	GiftValue     int64  `json:"증여재산가액"`
	PriorGifts    int64  `json:"재차증여재산"`
	NonTaxable    int64  `json:"비과세"`
	Excluded      int64  `json:"과세가액_불산입"`
	Debt          int64  `json:"채무"`
	PaidTaxCredit int64  `json:"납부세액공제"`
}

// GiftTaxResult is the response of POST /api/gift-tax.
type GiftTaxResult struct {
	TaxableValue      *float64 `json:"증여세_과세가액"`
	GiftDeduction     *float64 `json:"증여재산공제"`
	TaxBase           *float64 `json:"과세표준"`
	AppliedRate       *float64 `json:"적용세율"`
	ProgressiveCredit *float64 `json:"누진공제"`
	ComputedTax       *float64 `json:"산출세액"`
	PaidTaxCredit     *float64 `json:"납부세액공제"`
	FilingCredit      *float64 `json:"신고세액공제"`
	TaxDue            *float64 `json:"납부세액"`
}

// AcquisitionTaxRequest is the body of POST /api/acquisition-tax.
type AcquisitionTaxRequest struct {
	PropertyType       string `json:"취득물건"`
	Cause              string `json:"취득원인"`
	HouseCount         string `json:"주택수"`
	Regulated          *bool  `json:"조정대상지역"`
	Price              int64  `json:"취득가액"`
	StandardOver300M   bool   `json:"기준시가_3억이상"`
	SingleHouseInherit bool   `json:"가구1주택_상속"`
}

// AcquisitionTaxResult is the response of POST /api/acquisition-tax.
type AcquisitionTaxResult struct {
	AcquisitionRate *float64 `json:"취득세율"`
	RuralRate       *float64 `json:"농특세율"`
	EducationRate   *float64 `json:"지방교육세율"`
	TotalRate       *float64 `json:"합계세율"`
	AcquisitionTax  *float64 `json:"취득세"`
	RuralTax        *float64 `json:"농특세"`
	EducationTax    *float64 `json:"지방교육세"`
	Total           *float64 `json:"합계"`
}

// ReconstructionRequest is the body of POST /api/reconstruction.
type ReconstructionRequest struct {
	NewSalePrice        int64  `json:"신축양도가액"`
	NewExpenses         int64  `json:"신축필요경비"`
	RightsValue         int64  `json:"권리가액"`
	Settlement          int64  `json:"청산금납부액"`
	PriorPrice          int64  `json:"종전취득가액"`
	PriorExpenses       int64  `json:"종전필요경비"`
	SaleDate            string `json:"신축양도일"`
	ApprovalDate        string `json:"관리처분계획인가일"`
	PriorAcquiredDate   string `json:"종전취득일"`
	NonTaxable          *bool  `json:"비과세여부"`
	PriorTable          string `json:"기존표구분"`
	PriorResidence      int64  `json:"기존거주기간"`
	SettlementTable     string `json:"청산금표구분"`
	SettlementResidence int64  `json:"청산금거주기간"`
	Joint               *bool  `json:"공동명의"`
}

// ReconstructionResult is the response of POST /api/reconstruction.
type ReconstructionResult struct {
	PriorHolding        *float64 `json:"기존보유기간"`
	SettlementHolding   *float64 `json:"청산금보유기간"`
	PriorRate           *float64 `json:"기존공제율"`
	SettlementRate      *float64 `json:"청산금공제율"`
	TotalGain           *float64 `json:"전체양도차익"`
	GainBeforeApproval  *float64 `json:"관처일전_양도차익"`
	GainAfterApproval   *float64 `json:"관처일후_양도차익"`
	PriorGain           *float64 `json:"종전분_양도차익"`
	SettlementGain      *float64 `json:"청산금분_양도차익"`
	CombinedGain        *float64 `json:"합계양도차익"`
	NonTaxableGain      *float64 `json:"비과세양도차익"`
	TaxableGain         *float64 `json:"과세양도차익"`
	PriorDeduction      *float64 `json:"종전분_장특공제"`
	SettlementDeduction *float64 `json:"청산금분_장특공제"`
	TotalLongTermDeduct *float64 `json:"총장특공제"`
	GainIncome          *float64 `json:"양도소득금액"`
	BasicDeduction      *float64 `json:"기본공제"`
	TaxBase             *float64 `json:"과세표준"`
	AppliedRate         *float64 `json:"적용세율"`
	ProgressiveCredit   *float64 `json:"누진공제"`
	ComputedTax         *float64 `json:"산출세액"`
	LocalIncomeTax      *float64 `json:"지방소득세"`
	TaxWithLocal        *float64 `json:"지방세포함세액"`
	FinalTax            *float64 `json:"최종세액"`
	Joint               *bool    `json:"공동명의"`
}
