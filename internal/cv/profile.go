// Package cv generates a category-tailored CV PDF for a posting.
package cv

// Profile is the structured CV content behind one category template.
type Profile struct {
	PersonalInfo PersonalInfo        `yaml:"personal_info"`
	Experience   []CompanyExperience `yaml:"experience"`
	Education    []Education         `yaml:"education"`
	Skills       []Skill             `yaml:"skills"`
	Projects     []Project           `yaml:"projects"`
}

// PersonalInfo is the identity block at the top of the document.
type PersonalInfo struct {
	Name     string `yaml:"name"`
	Title    string `yaml:"title"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Location string `yaml:"location"`
	Website  string `yaml:"website"`
	LinkedIn string `yaml:"linkedin"`
	Summary  string `yaml:"summary"`
}

// CompanyExperience groups roles held at one employer.
type CompanyExperience struct {
	Company  string `yaml:"company"`
	Location string `yaml:"location"`
	Roles    []Role `yaml:"roles"`
}

// Role is one position within a company.
type Role struct {
	Title        string   `yaml:"title"`
	StartDate    string   `yaml:"start_date"`
	EndDate      string   `yaml:"end_date"`
	Location     string   `yaml:"location"`
	Description  string   `yaml:"description"`
	Achievements []string `yaml:"achievements"`
}

// Education is one degree entry.
type Education struct {
	Degree      string `yaml:"degree"`
	Institution string `yaml:"institution"`
	StartDate   string `yaml:"start_date"`
	EndDate     string `yaml:"end_date"`
	Location    string `yaml:"location"`
	GPA         string `yaml:"gpa"`
	Details     string `yaml:"details"`
}

// Skill is one skill group, e.g. "Languages: Go, SQL, JavaScript".
type Skill struct {
	Category string `yaml:"category"`
	Name     string `yaml:"name"`
}

// Project is one portfolio entry.
type Project struct {
	Name         string   `yaml:"name"`
	Link         string   `yaml:"link"`
	StartDate    string   `yaml:"start_date"`
	EndDate      string   `yaml:"end_date"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
	Achievements []string `yaml:"achievements"`
}

// Artifact is the generated document: the rendered file plus the short
// summary that was embedded into it. The file is consumed by the applicator
// and not retained; only the summary is persisted.
type Artifact struct {
	Path    string
	Summary string
}
