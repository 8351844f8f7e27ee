package handler

type MessageResponse struct {
	Message string `json:"message"`
}

type ArticleResponse struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Summary        *string `json:"summary"`
	Source         string  `json:"source"`
	Country        *string `json:"country"`
	Category       *string `json:"category"`
	Timestamp      string  `json:"timestamp"`
	ImageURL       *string `json:"imageUrl"`
	RelevanceScore float64 `json:"relevanceScore"`
}

type TrendResponse struct {
	URI   string  `json:"uri"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type TrendsResponse struct {
	Trends []TrendResponse `json:"trends"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Upstream string `json:"upstream"`
}

type UsageResponse struct {
	API      string `json:"api"`
	Date     string `json:"date"`
	Requests int64  `json:"requests"`
}
