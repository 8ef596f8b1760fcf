package job

// Job is the canonical projection of one heterogeneous JSearch result. It is
// transient: never persisted unless the user favorites it.
type Job struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employmentType"`
	ApplyLink      string   `json:"applyLink"`
	CompanyLogo    string   `json:"companyLogo,omitempty"`
	Description    string   `json:"description"`
	Salary         string   `json:"salary"`
	PostedDate     string   `json:"postedDate,omitempty"`
	Requirements   []string `json:"requirements"`
	Benefits       []string `json:"benefits"`
	IsRemote       bool     `json:"isRemote"`
}
