package entities

type SchemeStatus string

const (
	SchemeActive      SchemeStatus = "active"
	SchemeClosingSoon SchemeStatus = "closing-soon"
	SchemeUpcoming    SchemeStatus = "upcoming"
)

// Scheme is a government support programme. Schemes come from a static
// catalog and are never stored.
type Scheme struct {
	Name            string       `yaml:"name" json:"name"`
	Category        string       `yaml:"category" json:"category"`
	Description     string       `yaml:"description" json:"description"`
	Benefits        []string     `yaml:"benefits" json:"benefits"`
	Eligibility     []string     `yaml:"eligibility" json:"eligibility"`
	Documents       []string     `yaml:"documents" json:"documents"`
	Deadline        string       `yaml:"deadline" json:"deadline"`
	Status          SchemeStatus `yaml:"status" json:"status"`
	ApplicationLink string       `yaml:"application_link" json:"application_link"`
	State           string       `yaml:"state" json:"state"`
}
