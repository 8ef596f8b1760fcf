package favorite

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a per-user saved job listing. JobID is the opaque identifier
// from the search source and deduplicates the pair (user, job): a user holds
// at most one Favorite per JobID.
type Favorite struct {
	ID             uuid.UUID `json:"-"`
	UserID         uuid.UUID `json:"-"`
	JobID          string    `json:"jobId"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employmentType"`
	ApplyLink      string    `json:"applyLink"`
	CompanyLogo    string    `json:"companyLogo,omitempty"`
	Description    string    `json:"description"`
	Salary         string    `json:"salary"`
	SavedAt        time.Time `json:"savedAt"`

	// Seq is the insertion-order position, used as the stable tie-break
	// when sorting by an equal key.
	Seq int64 `json:"-"`
}
