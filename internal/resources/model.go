package resources

// Facility types recognized by the eligibility filter.
const (
	TypeHospital   = "hospital"
	TypeUrgentCare = "urgent_care"
	TypeClinic     = "clinic"
	TypePharmacy   = "pharmacy"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Resource is a healthcare facility record. Distance is a view-local field
// computed per query; the stored record never carries one.
type Resource struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Type             string      `json:"type"`
	Address          string      `json:"address"`
	Distance         float64     `json:"distance"` // miles, non-negative
	Phone            string      `json:"phone"`
	Hours            string      `json:"hours"`
	AcceptsInsurance bool        `json:"accepts_insurance"`
	FinancialAid     bool        `json:"financial_aid"`
	Rating           float64     `json:"rating"`
	Coordinates      Coordinates `json:"coordinates"`
	Specialties      []string    `json:"specialties"`
	WaitTime         string      `json:"wait_time,omitempty"`
}
