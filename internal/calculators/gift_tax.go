package calculators

import (
	"github.com/boddenberg/taxcalc-bff-go/internal/domain"
	"github.com/boddenberg/taxcalc-bff-go/internal/format"
	"github.com/boddenberg/taxcalc-bff-go/internal/panel"
)

type (
	gtReq  = domain.GiftTaxRequest
	gtResp = domain.GiftTaxResult
)

// GiftTax is the 증여세 panel.
func GiftTax() panel.Definition[gtReq, gtResp] {
	return panel.Definition[gtReq, gtResp]{
		ID:       GiftTaxID,
		Title:    "증여세",
		Endpoint: GiftTaxID,
		Hint:     hint,
		Fields: []panel.Field[gtReq]{
			panel.Select("수증자_관계", func(r *gtReq, v string) { r.Relation = v }),
			panel.Amount("증여재산가액", func(r *gtReq, v int64) { r.GiftValue = v }),
			panel.Amount("재차증여재산", func(r *gtReq, v int64) { r.PriorGifts = v }),
			panel.Amount("비과세", func(r *gtReq, v int64) { r.NonTaxable = v }),
			panel.Amount("과세가액_불산입", func(r *gtReq, v int64) { r.Excluded = v }),
			panel.Amount("채무", func(r *gtReq, v int64) { r.Debt = v }),
			panel.Amount("납부세액공제", func(r *gtReq, v int64) { r.PaidTaxCredit = v }),
		},
		Rows: []panel.Row[gtResp]{
			panel.Section[gtResp]("과세표준"),
			panel.Value("증여세 과세가액", won(func(r gtResp) *float64 { return r.TaxableValue })),
			panel.Value("증여재산공제", won(func(r gtResp) *float64 { return r.GiftDeduction })),
			panel.Value("과세표준", won(func(r gtResp) *float64 { return r.TaxBase })),

			panel.Section[gtResp]("세액"),
			panel.Value("적용세율", percent(func(r gtResp) *float64 { return r.AppliedRate })),
			panel.Value("누진공제", won(func(r gtResp) *float64 { return r.ProgressiveCredit })),
			panel.Value("산출세액", won(func(r gtResp) *float64 { return r.ComputedTax })),
			panel.Value("납부세액공제", won(func(r gtResp) *float64 { return r.PaidTaxCredit })).
				If(func(r gtResp) bool { return format.NonZero(r.PaidTaxCredit) }),
			panel.Value("신고세액공제", won(func(r gtResp) *float64 { return r.FilingCredit })).
				Sub(func(gtResp) string { return "산출세액의 3%" }),
			panel.Value("납부세액", won(func(r gtResp) *float64 { return r.TaxDue })),
		},
		Headline: func(_ gtReq, resp gtResp) panel.Headline {
			return panel.Headline{Caption: "납부할 증여세", Amount: format.Won(resp.TaxDue)}
		},
		Footnote: func(gtReq, gtResp) string {
			return "증여일이 속하는 달의 말일부터 3개월 이내에 신고해야 신고세액공제가 적용됩니다."
		},
	}
}
