// Package calculators declares the four calculator panels of the page:
// which controls each one reads into its request, and how each response is
// turned into a headline, a result table and a footnote.
package calculators

import (
	"github.com/boddenberg/taxcalc-bff-go/internal/format"
	"github.com/boddenberg/taxcalc-bff-go/internal/panel"
	"github.com/boddenberg/taxcalc-bff-go/internal/port"
)

// Panel ids. Each panel calls the calculator endpoint of the same name.
const (
	CapitalGainsID   = "capital-gains"
	GiftTaxID        = "gift-tax"
	AcquisitionTaxID = "acquisition-tax"
	ReconstructionID = "reconstruction"
)

const hint = "입력값을 확인한 뒤 다시 계산해 주세요. 문제가 계속되면 잠시 후 다시 시도해 주세요."

// All builds every calculator panel in page order.
func All(t port.Transport, opts ...panel.Option) []panel.Calculator {
	return []panel.Calculator{
		panel.New(CapitalGains(), t, opts...),
		panel.New(GiftTax(), t, opts...),
		panel.New(AcquisitionTax(), t, opts...),
		panel.New(Reconstruction(), t, opts...),
	}
}

func won[Resp any](get func(Resp) *float64) func(Resp) string {
	return func(r Resp) string { return format.Won(get(r)) }
}

func percent[Resp any](get func(Resp) *float64) func(Resp) string {
	return func(r Resp) string { return format.Percent(get(r)) }
}

func years[Resp any](get func(Resp) *float64) func(Resp) string {
	return func(r Resp) string { return format.Years(get(r)) }
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

// jointHeadline is shared by the two capital gains panels. For joint
// ownership the API reports the per-person tax and a total for both owners.
func jointHeadline(joint bool, total, perPerson *float64) panel.Headline {
	if joint {
		return panel.Headline{
			Caption: "공동명의 전체 세액 (2인 합산)",
			Amount:  format.Won(total),
			SubLine: "1인당 " + format.Won(perPerson),
		}
	}
	return panel.Headline{
		Caption: "최종 납부세액 (지방소득세 포함)",
		Amount:  format.Won(total),
	}
}
