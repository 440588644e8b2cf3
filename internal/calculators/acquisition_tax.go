package calculators

import (
	"fmt"

	"github.com/boddenberg/taxcalc-bff-go/internal/domain"
	"github.com/boddenberg/taxcalc-bff-go/internal/format"
	"github.com/boddenberg/taxcalc-bff-go/internal/panel"
)

type (
	atReq  = domain.AcquisitionTaxRequest
	atResp = domain.AcquisitionTaxResult
)

// AcquisitionTax is the 취득세 panel.
func AcquisitionTax() panel.Definition[atReq, atResp] {
	hasRural := func(r atResp) bool { return format.NonZero(r.RuralRate) }

	return panel.Definition[atReq, atResp]{
		ID:       AcquisitionTaxID,
		Title:    "취득세",
		Endpoint: AcquisitionTaxID,
		Hint:     hint,
		Fields: []panel.Field[atReq]{
			panel.Select("취득물건", func(r *atReq, v string) { r.PropertyType = v }),
			panel.Select("취득원인", func(r *atReq, v string) { r.Cause = v }),
			panel.Select("주택수", func(r *atReq, v string) { r.HouseCount = v }),
			panel.Radio("조정대상지역", func(r *atReq, v *bool) { r.Regulated = v }),
			panel.Amount("취득가액", func(r *atReq, v int64) { r.Price = v }),
			panel.Checkbox("기준시가_3억이상", func(r *atReq, v bool) { r.StandardOver300M = v }),
			panel.Checkbox("가구1주택_상속", func(r *atReq, v bool) { r.SingleHouseInherit = v }),
		},
		Rows: []panel.Row[atResp]{
			panel.Section[atResp]("세율"),
			panel.Value("취득세율", percent(func(r atResp) *float64 { return r.AcquisitionRate })),
			panel.Value("농어촌특별세율", percent(func(r atResp) *float64 { return r.RuralRate })).If(hasRural),
			panel.Value("지방교육세율", percent(func(r atResp) *float64 { return r.EducationRate })),
			panel.Value("합계세율", percent(func(r atResp) *float64 { return r.TotalRate })),

			panel.Section[atResp]("세액"),
			panel.Value("취득세", won(func(r atResp) *float64 { return r.AcquisitionTax })),
			panel.Value("농어촌특별세", won(func(r atResp) *float64 { return r.RuralTax })).If(hasRural),
			panel.Value("지방교육세", won(func(r atResp) *float64 { return r.EducationTax })),
			panel.Value("합계", won(func(r atResp) *float64 { return r.Total })),
		},
		Headline: func(_ atReq, resp atResp) panel.Headline {
			return panel.Headline{Caption: "취득세 합계", Amount: format.Won(resp.Total)}
		},
		Footnote: func(_ atReq, resp atResp) string {
			if !hasRural(resp) {
				return fmt.Sprintf("합계세율 %s (농어촌특별세 비과세)가 적용되었습니다.", format.Percent(resp.TotalRate))
			}
			return fmt.Sprintf("합계세율 %s가 적용되었습니다.", format.Percent(resp.TotalRate))
		},
	}
}
