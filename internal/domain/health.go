package domain

// ============================================================
// Health & Metrics API Responses
// ============================================================

// HealthStatus is returned by GET /healthz and GET /readyz.
type HealthStatus struct {
	Status   string          `json:"status"` // healthy, degraded, unhealthy
	Services []ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents the health of an individual dependency.
type ServiceHealth struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	LatencyMs int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

// CalculationStats is returned by GET /v1/metrics/calculations.
type CalculationStats struct {
	TotalRequests int64        `json:"totalRequests"`
	Panels        []PanelStats `json:"panels"`
	Period        string       `json:"period"`
}

// PanelStats holds the counters of one calculator panel.
type PanelStats struct {
	Panel        string  `json:"panel"`
	Rendered     int64   `json:"rendered"`
	Failed       int64   `json:"failed"`
	ErrorRate    float64 `json:"errorRate"`
	CacheHitRate float64 `json:"cacheHitRate"`
}

// PanelInfo describes one calculator in GET /v1/panels.
type PanelInfo struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Endpoint string   `json:"endpoint"`
	Controls []string `json:"controls"`
}
