package model

// ComplaintDetails is a complaint together with its update history,
// newest update first.
type ComplaintDetails struct {
	Complaint
	Updates []CaseUpdate `json:"updates"`
}
