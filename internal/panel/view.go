package panel

import (
	"context"
	"errors"
	"net"

	"github.com/boddenberg/taxcalc-bff-go/internal/domain"
)

// Headline is the block above the result table.
type Headline struct {
	Caption string `json:"caption"`
	Amount  string `json:"amount"`
	SubLine string `json:"subLine,omitempty"`
}

// View is a rendered successful calculation.
type View struct {
	PanelID  string        `json:"panelId"`
	Headline Headline      `json:"headline"`
	Rows     []RenderedRow `json:"rows"`
	Footnote string        `json:"footnote,omitempty"`
}

// ErrorView is a rendered failed calculation.
type ErrorView struct {
	PanelID string `json:"panelId"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// Message returns the user-facing text for a failed call.
func Message(err error) string {
	var upstream *domain.ErrUpstream
	var circuitOpen *domain.ErrCircuitOpen

	switch {
	case errors.As(err, &upstream):
		return upstream.Message
	case errors.As(err, &circuitOpen):
		return "계산 서버가 일시적으로 응답하지 않습니다. 잠시 후 다시 시도해 주세요."
	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return "계산 서버 응답 시간이 초과되었습니다."
	case errors.Is(err, context.Canceled):
		return "요청이 취소되었습니다."
	default:
		return "계산 서버에 연결할 수 없습니다."
	}
}

// isTimeout reports a timeout raised by the HTTP client or the network,
// such as http.Client.Timeout elapsing.
func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
