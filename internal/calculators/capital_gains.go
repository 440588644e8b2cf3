package calculators

import (
	"fmt"

	"github.com/boddenberg/taxcalc-bff-go/internal/domain"
	"github.com/boddenberg/taxcalc-bff-go/internal/format"
	"github.com/boddenberg/taxcalc-bff-go/internal/panel"
)

type (
	cgReq  = domain.CapitalGainsRequest
	cgResp = domain.CapitalGainsResult
)

// CapitalGains is the 양도소득세 panel.
func CapitalGains() panel.Definition[cgReq, cgResp] {
	return panel.Definition[cgReq, cgResp]{
		ID:       CapitalGainsID,
		Title:    "양도소득세",
		Endpoint: CapitalGainsID,
		Hint:     hint,
		Fields: []panel.Field[cgReq]{
			panel.Select("양도물건", func(r *cgReq, v string) { r.AssetType = v }),
			panel.Radio("비과세여부", func(r *cgReq, v *bool) { r.NonTaxable = v }),
			panel.Int("보유기간", func(r *cgReq, v int64) { r.HoldingYears = v }),
			panel.Int("거주기간", func(r *cgReq, v int64) { r.ResidenceYears = v }),
			panel.Select("장특공제표", func(r *cgReq, v string) { r.DeductionTable = v }),
			panel.Radio("공동명의", func(r *cgReq, v *bool) { r.Joint = v }),
			panel.Select("중과세유형", func(r *cgReq, v string) { r.SurchargeType = v }),
			panel.Amount("양도가액", func(r *cgReq, v int64) { r.SalePrice = v }),
			panel.Amount("매입가액", func(r *cgReq, v int64) { r.PurchasePrice = v }),
		},
		Rows: []panel.Row[cgResp]{
			panel.Section[cgResp]("양도차익"),
			panel.Value("전체 양도차익", won(func(r cgResp) *float64 { return r.TotalGain })).Sub(perOwner),
			panel.Value("비과세 양도차익", won(func(r cgResp) *float64 { return r.NonTaxableGain })),
			panel.Value("과세 양도차익", won(func(r cgResp) *float64 { return r.TaxableGain })),

			panel.Section[cgResp]("공제"),
			panel.Value("장기보유특별공제", won(func(r cgResp) *float64 { return r.LongTermDeduction })).
				Sub(func(r cgResp) string { return "공제율 " + format.Percent(r.LongTermRate) }),
			panel.Value("양도소득금액", won(func(r cgResp) *float64 { return r.GainIncome })),
			panel.Value("기본공제", won(func(r cgResp) *float64 { return r.BasicDeduction })),
			panel.Value("과세표준", won(func(r cgResp) *float64 { return r.TaxBase })),

			panel.Section[cgResp]("세액"),
			panel.Value("적용세율", rateWithLabel),
			panel.Value("누진공제", won(func(r cgResp) *float64 { return r.ProgressiveCredit })),
			panel.Value("산출세액 (기본세율)", won(func(r cgResp) *float64 { return r.BaseTax })),
			panel.Value("중과세 적용 산출세액", won(func(r cgResp) *float64 { return r.ComputedTax })).
				If(surcharged),
			panel.Value("지방소득세", won(func(r cgResp) *float64 { return r.LocalIncomeTax })),
			panel.Value("지방세 포함 세액", won(func(r cgResp) *float64 { return r.TaxWithLocal })).Sub(perOwner),
			panel.Value("최종 납부세액", won(func(r cgResp) *float64 { return r.FinalTax })),
		},
		Headline: func(req cgReq, resp cgResp) panel.Headline {
			return jointHeadline(isTrue(req.Joint) || isTrue(resp.Joint), resp.FinalTax, resp.TaxWithLocal)
		},
		Footnote: func(req cgReq, resp cgResp) string {
			if req.SurchargeType != "" && req.SurchargeType != "없음" {
				return fmt.Sprintf("%s 적용으로 장기보유특별공제가 배제되었습니다.", req.SurchargeType)
			}
			return fmt.Sprintf("보유기간 %d년 기준 장기보유특별공제율 %s가 적용되었습니다.",
				req.HoldingYears, format.Percent(resp.LongTermRate))
		},
	}
}

// surcharged reports whether a heavy-tax surcharge changed the tax.
func surcharged(r cgResp) bool {
	return !format.Equal(r.BaseTax, r.ComputedTax)
}

func rateWithLabel(r cgResp) string {
	if r.RateLabel == "" {
		return format.Percent(r.AppliedRate)
	}
	return fmt.Sprintf("%s (%s)", format.Percent(r.AppliedRate), r.RateLabel)
}

func perOwner(r cgResp) string {
	if isTrue(r.Joint) {
		return "1인 지분 기준"
	}
	return ""
}
