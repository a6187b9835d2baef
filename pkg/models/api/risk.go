package api

type RiskScore struct {
	Severity   int    `json:"severity"`
	Likelihood int    `json:"likelihood"`
	Score      int    `json:"score"`
	Level      string `json:"level"`
}

type RiskMatrix struct {
	Size int           `json:"size"`
	Rows [][]RiskScore `json:"rows"`
}
