package models

// HealthSnapshot is a point-in-time aggregate of device health by category
type HealthSnapshot struct {
	OverallScore int
	Categories   []CategoryHealth // Ordered as returned by the controller
}

// CategoryHealth is the health of a single device category (Access, Core, WLC, ...)
type CategoryHealth struct {
	Name    string
	Total   int
	Healthy int
	Score   int
}

// Unhealthy is the count of devices in poor or fair state, or without data
func (c CategoryHealth) Unhealthy() int {
	return c.Total - c.Healthy
}

// HealthDistributionEntry is one element of the controller's health distribution list
type HealthDistributionEntry struct {
	Category    string `json:"category"`
	TotalCount  int    `json:"totalCount"`
	GoodCount   int    `json:"goodCount"`
	HealthScore int    `json:"healthScore"`
}

// ComponentErrorResponse is the controller's structured error item
type ComponentErrorResponse struct {
	CompErrorCode    string `json:"compErrorCode"`
	CompErrorMessage string `json:"compErrorMessage"`
}

// HealthErrorResponse wraps the controller's list of component errors
type HealthErrorResponse struct {
	ComponentErrorResponse []ComponentErrorResponse `json:"componentErrorResponse"`
}

// OverallHealth is an element of the controller's "response" list for network health
type OverallHealth struct {
	HealthScore int   `json:"healthScore"`
	Time        int64 `json:"time"`
}
