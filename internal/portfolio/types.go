package portfolio

// Section keys for the list-based parts of the document.
const (
	SectionExperiences  = "experiences"
	SectionProjects     = "projects"
	SectionEducations   = "educations"
	SectionCertificates = "certificates"
	SectionSkills       = "skills"
)

// Data is the portfolio document. Every field may be absent, in which case the
// matching section is not rendered.
type Data struct {
	About        Optional[About]           `json:"about" yaml:"about"`
	Skills       Optional[[]SkillCategory] `json:"skills" yaml:"skills"`
	Experiences  Optional[[]Experience]    `json:"experiences" yaml:"experiences"`
	Projects     Optional[[]Project]       `json:"projects" yaml:"projects"`
	Educations   Optional[[]Education]     `json:"educations" yaml:"educations"`
	Certificates Optional[[]Certificate]   `json:"certificates" yaml:"certificates"`
	Contacts     Optional[Contact]         `json:"contacts" yaml:"contacts"`
	Footer       Optional[Footer]          `json:"footer" yaml:"footer"`
	LeftSides    Optional[[]Link]          `json:"leftSides" yaml:"leftSides"`
	Headers      Optional[[]Link]          `json:"headers" yaml:"headers"`
}

type About struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
	ResumeLink  string `json:"resumeLink" yaml:"resumeLink"`
}

type Experience struct {
	ID           string `json:"_id" yaml:"id"`
	Company      string `json:"company" yaml:"company" validate:"required"`
	Position     string `json:"position" yaml:"position"`
	Duration     string `json:"duration" yaml:"duration"`
	Description  string `json:"description" yaml:"description"`
	Technologies string `json:"technologies" yaml:"technologies"`
	Image        string `json:"image" yaml:"image"`
	Link         string `json:"link" yaml:"link"`
}

type Project struct {
	ID           string `json:"_id" yaml:"id"`
	Title        string `json:"title" yaml:"title" validate:"required"`
	Description  string `json:"description" yaml:"description"`
	Technologies string `json:"technologies" yaml:"technologies"`
	Image        string `json:"image" yaml:"image"`
	ProjectLink  string `json:"projectLink" yaml:"projectLink"`
	GithubLink   string `json:"githubLink" yaml:"githubLink"`
}

type Education struct {
	ID          string `json:"_id" yaml:"id"`
	Institution string `json:"institution" yaml:"institution" validate:"required"`
	Degree      string `json:"degree" yaml:"degree"`
	Duration    string `json:"duration" yaml:"duration"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
}

type Certificate struct {
	ID             string `json:"_id" yaml:"id"`
	Title          string `json:"title" yaml:"title" validate:"required"`
	Issuer         string `json:"issuer" yaml:"issuer"`
	Date           string `json:"date" yaml:"date"`
	Description    string `json:"description" yaml:"description"`
	Image          string `json:"image" yaml:"image"`
	CredentialLink string `json:"credentialLink" yaml:"credentialLink"`
}

// SkillCategory groups skills under a heading. Skills is a comma-separated list.
type SkillCategory struct {
	ID          string `json:"_id" yaml:"id"`
	Category    string `json:"category" yaml:"category" validate:"required"`
	Skills      string `json:"skills" yaml:"skills"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
}

type Contact struct {
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	Location string `json:"location" yaml:"location"`
	Message  string `json:"message" yaml:"message"`
}

// Link is used for header navigation, the social sidebar and footer links.
type Link struct {
	Label string `json:"label" yaml:"label" validate:"required"`
	Href  string `json:"href" yaml:"href" validate:"required"`
	Icon  string `json:"icon" yaml:"icon"`
}

type Footer struct {
	Text  string `json:"text" yaml:"text"`
	Links []Link `json:"links" yaml:"links"`
}
