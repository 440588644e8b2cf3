package calculators_test

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/boddenberg/taxcalc-bff-go/internal/calculators"
	"github.com/boddenberg/taxcalc-bff-go/internal/domain"
	"github.com/boddenberg/taxcalc-bff-go/internal/format"
	"github.com/boddenberg/taxcalc-bff-go/internal/layout"
	"github.com/boddenberg/taxcalc-bff-go/internal/panel"
)

// --- Fakes ---

type fakeTransport struct {
	calls    int
	endpoint string
	body     []byte
	result   string
}

func (f *fakeTransport) Call(_ context.Context, endpoint string, in, out any) error {
	f.calls++
	f.endpoint = endpoint
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	f.body = b
	return json.Unmarshal([]byte(f.result), out)
}

type lastView struct {
	view *panel.View
	err  *panel.ErrorView
}

func (l *lastView) Hide()                       { l.view, l.err = nil, nil }
func (l *lastView) ShowResult(v panel.View)     { l.view = &v }
func (l *lastView) ShowError(e panel.ErrorView) { l.err = &e }

func labels(rows []panel.RenderedRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Label
	}
	return out
}

func rowValue(rows []panel.RenderedRow, label string) (string, bool) {
	for _, r := range rows {
		if r.Label == label {
			return r.Value, true
		}
	}
	return "", false
}

// --- Tests ---

func TestAll_ControlsExistInDefaultLayout(t *testing.T) {
	l, err := layout.Load("")
	if err != nil {
		t.Fatalf("default layout: %v", err)
	}
	all := calculators.All(&fakeTransport{})
	if len(all) != 4 {
		t.Fatalf("expected 4 calculators, got %d", len(all))
	}
	for _, c := range all {
		if err := l.Check(c); err != nil {
			t.Errorf("%s: %v", c.ID(), err)
		}
		if c.Endpoint() != c.ID() {
			t.Errorf("%s: endpoint %q differs from id", c.ID(), c.Endpoint())
		}
	}
}

func TestCapitalGains_RequestBody(t *testing.T) {
	form := panel.FormValues(url.Values{
		"양도물건":  {"일반 주택 상가 토지"},
		"보유기간":  {"5"},
		"거주기간":  {""},
		"장특공제표": {"표1"},
		"공동명의":  {"false"},
		"중과세유형": {"없음"},
		"양도가액":  {"900,000,000"},
		"매입가액":  {"600,000,000"},
	})
	tr := &fakeTransport{result: `{}`}
	p := panel.New(calculators.CapitalGains(), tr)

	p.Calculate(context.Background(), form, &lastView{})

	want := `{"양도물건":"일반 주택 상가 토지","비과세여부":null,"보유기간":5,"거주기간":0,` +
		`"장특공제표":"표1","공동명의":false,"중과세유형":"없음","양도가액":900000000,"매입가액":600000000}`
	if string(tr.body) != want {
		t.Errorf("unexpected body\n got: %s\nwant: %s", tr.body, want)
	}
	if tr.endpoint != "capital-gains" || tr.calls != 1 {
		t.Errorf("expected one call to capital-gains, got %d to %q", tr.calls, tr.endpoint)
	}
}

func TestCapitalGains_JointHeadline(t *testing.T) {
	tr := &fakeTransport{result: `{"최종세액": 12345678, "지방세포함_세액": 6172839, "공동명의": true}`}
	p := panel.New(calculators.CapitalGains(), tr)
	form := panel.FormValues(url.Values{"공동명의": {"true"}})
	target := &lastView{}

	out := p.Calculate(context.Background(), form, target)

	if out.State != panel.Rendered || target.view == nil {
		t.Fatalf("expected a rendered view, got %v", out.State)
	}
	h := target.view.Headline
	if h.Caption != "공동명의 전체 세액 (2인 합산)" {
		t.Errorf("unexpected caption %q", h.Caption)
	}
	if h.Amount != "12,345,678원" {
		t.Errorf("expected total 12,345,678원, got %q", h.Amount)
	}
	if h.SubLine != "1인당 6,172,839원" {
		t.Errorf("expected per-person line, got %q", h.SubLine)
	}

	rows := target.view.Rows
	last := rows[len(rows)-1]
	if last.Label != "최종 납부세액" || last.Value != "12,345,678원" {
		t.Errorf("expected final row repeating the total, got %+v", last)
	}
	if v, _ := rowValue(rows, "과세표준"); v != format.Placeholder {
		t.Errorf("absent field should render as placeholder, got %q", v)
	}
}

func TestCapitalGains_SingleOwnerHeadline(t *testing.T) {
	p := panel.New(calculators.CapitalGains(), &fakeTransport{})
	v := p.Render(domain.CapitalGainsRequest{}, domain.CapitalGainsResult{FinalTax: format.Float(3_300_000)})

	if v.Headline.Caption != "최종 납부세액 (지방소득세 포함)" || v.Headline.SubLine != "" {
		t.Errorf("unexpected headline %+v", v.Headline)
	}
	if v.Headline.Amount != "3,300,000원" {
		t.Errorf("unexpected amount %q", v.Headline.Amount)
	}
}

func TestCapitalGains_SurchargeRow(t *testing.T) {
	p := panel.New(calculators.CapitalGains(), &fakeTransport{})
	const row = "중과세 적용 산출세액"

	cases := []struct {
		name     string
		base     *float64
		computed *float64
		want     bool
	}{
		{"equal", format.Float(1_000_000), format.Float(1_000_000), false},
		{"surcharged", format.Float(1_000_000), format.Float(1_600_000), true},
		{"both absent", nil, nil, false},
		{"one absent", format.Float(1_000_000), nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := p.Render(domain.CapitalGainsRequest{}, domain.CapitalGainsResult{BaseTax: tc.base, ComputedTax: tc.computed})
			_, got := rowValue(v.Rows, row)
			if got != tc.want {
				t.Errorf("row present = %v, want %v", got, tc.want)
			}
		})
	}

	v := p.Render(domain.CapitalGainsRequest{}, domain.CapitalGainsResult{
		BaseTax:     format.Float(1_000_000),
		ComputedTax: format.Float(1_600_000),
	})
	got := labels(v.Rows)
	for i, l := range got {
		if l == row {
			if got[i-1] != "산출세액 (기본세율)" || got[i+1] != "지방소득세" {
				t.Errorf("surcharge row out of place: %v", got)
			}
		}
	}
}

func TestCapitalGains_Footnote(t *testing.T) {
	p := panel.New(calculators.CapitalGains(), &fakeTransport{})

	v := p.Render(domain.CapitalGainsRequest{HoldingYears: 10}, domain.CapitalGainsResult{LongTermRate: format.Float(0.2)})
	if v.Footnote != "보유기간 10년 기준 장기보유특별공제율 20%가 적용되었습니다." {
		t.Errorf("unexpected footnote %q", v.Footnote)
	}

	v = p.Render(domain.CapitalGainsRequest{SurchargeType: "20% 중과세"}, domain.CapitalGainsResult{})
	if v.Footnote != "20% 중과세 적용으로 장기보유특별공제가 배제되었습니다." {
		t.Errorf("unexpected footnote %q", v.Footnote)
	}
}

func TestCapitalGains_SectionRows(t *testing.T) {
	p := panel.New(calculators.CapitalGains(), &fakeTransport{})
	v := p.Render(domain.CapitalGainsRequest{}, domain.CapitalGainsResult{})

	var sections []string
	for _, r := range v.Rows {
		if r.Section {
			if r.Value != "" {
				t.Errorf("section row %q must not carry a value", r.Label)
			}
			sections = append(sections, r.Label)
		}
	}
	if len(sections) != 3 || sections[0] != "양도차익" || sections[1] != "공제" || sections[2] != "세액" {
		t.Errorf("unexpected sections %v", sections)
	}
}

func TestGiftTax_PaidCreditRow(t *testing.T) {
	p := panel.New(calculators.GiftTax(), &fakeTransport{})

	v := p.Render(domain.GiftTaxRequest{}, domain.GiftTaxResult{PaidTaxCredit: format.Float(0), TaxDue: format.Float(4_850_000)})
	if _, ok := rowValue(v.Rows, "납부세액공제"); ok {
		t.Error("zero credit row should be omitted")
	}
	if v.Headline.Amount != "4,850,000원" {
		t.Errorf("unexpected headline %+v", v.Headline)
	}

	v = p.Render(domain.GiftTaxRequest{}, domain.GiftTaxResult{PaidTaxCredit: format.Float(1_000_000)})
	if got, ok := rowValue(v.Rows, "납부세액공제"); !ok || got != "1,000,000원" {
		t.Errorf("expected credit row, got %q (present=%v)", got, ok)
	}
}

func TestGiftTax_RequestBody(t *testing.T) {
	form := panel.FormValues(url.Values{
		"수증자_관계": {"배우자"},
		"증여재산가액": {"700,000,000"},
		"채무":     {"50,000,000"},
	})
	tr := &fakeTransport{result: `{}`}
	panel.New(calculators.GiftTax(), tr).Calculate(context.Background(), form, &lastView{})

	want := `{"수증자_관계":"배우자","증여재산가액":700000000,"재차증여재산":0,"비과세":0,` +
		`"과세가액_불산입":0,"채무":50000000,"납부세액공제":0}`
	if string(tr.body) != want {
		t.Errorf("unexpected body\n got: %s\nwant: %s", tr.body, want)
	}
}

func TestAcquisitionTax_RuralRows(t *testing.T) {
	p := panel.New(calculators.AcquisitionTax(), &fakeTransport{})

	national := p.Render(domain.AcquisitionTaxRequest{}, domain.AcquisitionTaxResult{
		AcquisitionRate: format.Float(0.01),
		RuralRate:       format.Float(0),
		EducationRate:   format.Float(0.001),
		TotalRate:       format.Float(0.011),
		Total:           format.Float(5_500_000),
	})
	for _, l := range labels(national.Rows) {
		if l == "농어촌특별세율" || l == "농어촌특별세" {
			t.Errorf("row %q should be hidden when the rural rate is zero", l)
		}
	}
	if national.Footnote != "합계세율 1.1% (농어촌특별세 비과세)가 적용되었습니다." {
		t.Errorf("unexpected footnote %q", national.Footnote)
	}

	larger := p.Render(domain.AcquisitionTaxRequest{}, domain.AcquisitionTaxResult{
		RuralRate: format.Float(0.002),
		RuralTax:  format.Float(1_000_000),
		TotalRate: format.Float(0.013),
	})
	if got, ok := rowValue(larger.Rows, "농어촌특별세율"); !ok || got != "0.2%" {
		t.Errorf("expected rural rate row, got %q", got)
	}
	if got, ok := rowValue(larger.Rows, "농어촌특별세"); !ok || got != "1,000,000원" {
		t.Errorf("expected rural tax row, got %q", got)
	}
}

func TestAcquisitionTax_UnansweredRadioIsNull(t *testing.T) {
	form := panel.FormValues(url.Values{
		"취득물건":       {"국민주택"},
		"취득원인":       {"증여"},
		"주택수":        {"1주택"},
		"취득가액":       {"400,000,000"},
		"기준시가_3억이상": {"on"},
	})
	tr := &fakeTransport{result: `{}`}
	panel.New(calculators.AcquisitionTax(), tr).Calculate(context.Background(), form, &lastView{})

	var body map[string]any
	if err := json.Unmarshal(tr.body, &body); err != nil {
		t.Fatal(err)
	}
	if v, ok := body["조정대상지역"]; !ok || v != nil {
		t.Errorf("expected explicit null, got %v (present=%v)", v, ok)
	}
	if body["기준시가_3억이상"] != true || body["가구1주택_상속"] != false {
		t.Errorf("unexpected checkbox values %v", body)
	}
}

func TestReconstruction_Render(t *testing.T) {
	p := panel.New(calculators.Reconstruction(), &fakeTransport{})
	v := p.Render(domain.ReconstructionRequest{Joint: boolPtr(true)}, domain.ReconstructionResult{
		PriorHolding:      format.Float(10),
		SettlementHolding: format.Float(4),
		PriorRate:         format.Float(0.2),
		TaxWithLocal:      format.Float(5_000_000),
		FinalTax:          format.Float(10_000_000),
	})

	if v.Headline.SubLine != "1인당 5,000,000원" {
		t.Errorf("unexpected sub line %q", v.Headline.SubLine)
	}
	if got, _ := rowValue(v.Rows, "종전분 보유기간"); got != "10년" {
		t.Errorf("unexpected holding %q", got)
	}
	for _, r := range v.Rows {
		if r.Label == "종전분 장특공제" && r.SubLabel != "공제율 20%" {
			t.Errorf("unexpected sub label %q", r.SubLabel)
		}
	}
	if v.Footnote != "종전분 보유 10년, 청산금분 보유 4년 기준으로 장기보유특별공제율이 적용되었습니다." {
		t.Errorf("unexpected footnote %q", v.Footnote)
	}
}

func boolPtr(b bool) *bool { return &b }
