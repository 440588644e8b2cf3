package calculators

import (
	"fmt"

	"github.com/boddenberg/taxcalc-bff-go/internal/domain"
	"github.com/boddenberg/taxcalc-bff-go/internal/format"
	"github.com/boddenberg/taxcalc-bff-go/internal/panel"
)

type (
	rcReq  = domain.ReconstructionRequest
	rcResp = domain.ReconstructionResult
)

// Reconstruction is the 재건축 양도소득세 panel: the gain on a newly built
// unit is split at the management-disposal approval date into the prior
// house's share and the settlement payment's share.
func Reconstruction() panel.Definition[rcReq, rcResp] {
	return panel.Definition[rcReq, rcResp]{
		ID:       ReconstructionID,
		Title:    "재건축 양도소득세",
		Endpoint: ReconstructionID,
		Hint:     hint,
		Fields: []panel.Field[rcReq]{
			panel.Amount("신축양도가액", func(r *rcReq, v int64) { r.NewSalePrice = v }),
			panel.Amount("신축필요경비", func(r *rcReq, v int64) { r.NewExpenses = v }),
			panel.Amount("권리가액", func(r *rcReq, v int64) { r.RightsValue = v }),
			panel.Amount("청산금납부액", func(r *rcReq, v int64) { r.Settlement = v }),
			panel.Amount("종전취득가액", func(r *rcReq, v int64) { r.PriorPrice = v }),
			panel.Amount("종전필요경비", func(r *rcReq, v int64) { r.PriorExpenses = v }),
			panel.Date("신축양도일", func(r *rcReq, v string) { r.SaleDate = v }),
			panel.Date("관리처분계획인가일", func(r *rcReq, v string) { r.ApprovalDate = v }),
			panel.Date("종전취득일", func(r *rcReq, v string) { r.PriorAcquiredDate = v }),
			panel.Radio("비과세여부", func(r *rcReq, v *bool) { r.NonTaxable = v }),
			panel.Select("기존표구분", func(r *rcReq, v string) { r.PriorTable = v }),
			panel.Int("기존거주기간", func(r *rcReq, v int64) { r.PriorResidence = v }),
			panel.Select("청산금표구분", func(r *rcReq, v string) { r.SettlementTable = v }),
			panel.Int("청산금거주기간", func(r *rcReq, v int64) { r.SettlementResidence = v }),
			panel.Radio("공동명의", func(r *rcReq, v *bool) { r.Joint = v }),
		},
		Rows: []panel.Row[rcResp]{
			panel.Section[rcResp]("보유기간"),
			panel.Value("종전분 보유기간", years(func(r rcResp) *float64 { return r.PriorHolding })),
			panel.Value("청산금분 보유기간", years(func(r rcResp) *float64 { return r.SettlementHolding })),

			panel.Section[rcResp]("양도차익"),
			panel.Value("전체 양도차익", won(func(r rcResp) *float64 { return r.TotalGain })),
			panel.Value("인가일 전 양도차익", won(func(r rcResp) *float64 { return r.GainBeforeApproval })),
			panel.Value("인가일 후 양도차익", won(func(r rcResp) *float64 { return r.GainAfterApproval })),
			panel.Value("종전분 양도차익", won(func(r rcResp) *float64 { return r.PriorGain })),
			panel.Value("청산금분 양도차익", won(func(r rcResp) *float64 { return r.SettlementGain })),
			panel.Value("합계 양도차익", won(func(r rcResp) *float64 { return r.CombinedGain })),
			panel.Value("비과세 양도차익", won(func(r rcResp) *float64 { return r.NonTaxableGain })),
			panel.Value("과세 양도차익", won(func(r rcResp) *float64 { return r.TaxableGain })),

			panel.Section[rcResp]("장기보유특별공제"),
			panel.Value("종전분 장특공제", won(func(r rcResp) *float64 { return r.PriorDeduction })).
				Sub(func(r rcResp) string { return "공제율 " + format.Percent(r.PriorRate) }),
			panel.Value("청산금분 장특공제", won(func(r rcResp) *float64 { return r.SettlementDeduction })).
				Sub(func(r rcResp) string { return "공제율 " + format.Percent(r.SettlementRate) }),
			panel.Value("장특공제 합계", won(func(r rcResp) *float64 { return r.TotalLongTermDeduct })),

			panel.Section[rcResp]("세액"),
			panel.Value("양도소득금액", won(func(r rcResp) *float64 { return r.GainIncome })),
			panel.Value("기본공제", won(func(r rcResp) *float64 { return r.BasicDeduction })),
			panel.Value("과세표준", won(func(r rcResp) *float64 { return r.TaxBase })),
			panel.Value("적용세율", percent(func(r rcResp) *float64 { return r.AppliedRate })),
			panel.Value("누진공제", won(func(r rcResp) *float64 { return r.ProgressiveCredit })),
			panel.Value("산출세액", won(func(r rcResp) *float64 { return r.ComputedTax })),
			panel.Value("지방소득세", won(func(r rcResp) *float64 { return r.LocalIncomeTax })),
			panel.Value("지방세 포함 세액", won(func(r rcResp) *float64 { return r.TaxWithLocal })),
			panel.Value("최종 납부세액", won(func(r rcResp) *float64 { return r.FinalTax })),
		},
		Headline: func(req rcReq, resp rcResp) panel.Headline {
			return jointHeadline(isTrue(req.Joint) || isTrue(resp.Joint), resp.FinalTax, resp.TaxWithLocal)
		},
		Footnote: func(_ rcReq, resp rcResp) string {
			return fmt.Sprintf("종전분 보유 %s, 청산금분 보유 %s 기준으로 장기보유특별공제율이 적용되었습니다.",
				format.Years(resp.PriorHolding), format.Years(resp.SettlementHolding))
		},
	}
}
