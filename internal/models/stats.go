package models

// CriteriaProgress splits a criteria's documents into approved and not.
type CriteriaProgress struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// Stats is the dashboard snapshot served by GET /stats.
type Stats struct {
	TotalDocuments int                         `json:"totalDocuments"`
	Approved       int                         `json:"approved"`
	Pending        int                         `json:"pending"`
	Rejected       int                         `json:"rejected"`
	ByYear         map[string]int              `json:"byYear"`
	ByCriteria     map[string]CriteriaProgress `json:"byCriteria"`
}
