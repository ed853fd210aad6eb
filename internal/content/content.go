// Package content holds the baseline portfolio content shipped with the binary.
// The seeder writes it to the database and the showcase falls back to it.
package content

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v4"
)

//go:embed portfolio.yaml
var embedded []byte

type Document struct {
	Profile     Profile              `yaml:"profile" json:"profile"`
	Experiences []Experience         `yaml:"experiences" json:"experiences"`
	Education   []Education          `yaml:"education" json:"education"`
	Projects    []Project            `yaml:"projects" json:"projects"`
	Skills      []Skill              `yaml:"skills" json:"skills"`
	CaseStudies map[string]CaseStudy `yaml:"caseStudies" json:"caseStudies"`
}

type Profile struct {
	Name        string   `yaml:"name" json:"name"`
	Title       string   `yaml:"title" json:"title"`
	Bio         string   `yaml:"bio" json:"bio"`
	Email       string   `yaml:"email" json:"email"`
	ImageURL    string   `yaml:"imageUrl" json:"imageUrl"`
	LinkedinURL string   `yaml:"linkedinUrl" json:"linkedinUrl"`
	GithubURL   string   `yaml:"githubUrl" json:"githubUrl"`
	ResumeURL   string   `yaml:"resumeUrl" json:"resumeUrl"`
	About       []string `yaml:"about" json:"about"`
	LookingFor  string   `yaml:"lookingFor" json:"lookingFor"`
}

type Experience struct {
	Company   string   `yaml:"company" json:"company"`
	Role      string   `yaml:"role" json:"role"`
	StartDate string   `yaml:"startDate" json:"startDate"`
	EndDate   string   `yaml:"endDate" json:"endDate"`
	Bullets   []string `yaml:"bullets" json:"bullets"`
}

// Description is the newline-delimited form stored in the experiences table.
func (e Experience) Description() string {
	return strings.Join(e.Bullets, "\n")
}

type Education struct {
	School    string `yaml:"school" json:"school"`
	Degree    string `yaml:"degree" json:"degree"`
	Field     string `yaml:"field" json:"field"`
	StartDate string `yaml:"startDate" json:"startDate"`
	EndDate   string `yaml:"endDate" json:"endDate"`
}

type Project struct {
	Slug        string   `yaml:"slug" json:"slug"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	ImageURL    string   `yaml:"imageUrl" json:"imageUrl"`
	Link        string   `yaml:"link" json:"link"`
	GithubLink  string   `yaml:"githubLink" json:"githubLink"`
	Tags        []string `yaml:"tags" json:"tags"`
}

type Skill struct {
	Name        string `yaml:"name" json:"name"`
	Category    string `yaml:"category" json:"category"`
	Proficiency int    `yaml:"proficiency" json:"proficiency"`
}

// CaseStudy.Title is only needed for case studies with no matching project row.
type CaseStudy struct {
	Title     string         `yaml:"title" json:"title"`
	Problem   string         `yaml:"problem" json:"problem"`
	Built     string         `yaml:"built" json:"built"`
	Decisions []string       `yaml:"decisions" json:"decisions"`
	Impact    string         `yaml:"impact" json:"impact"`
	Links     CaseStudyLinks `yaml:"links" json:"links"`
	Photo     string         `yaml:"photo" json:"photo"`
	Stack     []string       `yaml:"stack" json:"stack"`
}

type CaseStudyLinks struct {
	Demo      string `yaml:"demo" json:"demo"`
	Github    string `yaml:"github" json:"github"`
	CaseStudy string `yaml:"caseStudy" json:"caseStudy"`
}

var (
	ErrInvalidDocument = errors.New("invalid content document")

	slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Load parses the embedded document.
func Load() (Document, error) {
	return Parse(embedded)
}

// MustLoad is Load for package-level wiring where a broken build artifact is fatal.
func MustLoad() Document {
	doc, err := Load()
	if err != nil {
		panic(err)
	}
	return doc
}

func Parse(b []byte) (Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode content: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (d Document) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(d.Profile.Name) == "" {
		add("profile.name is empty")
	}
	if strings.TrimSpace(d.Profile.Title) == "" {
		add("profile.title is empty")
	}
	if strings.TrimSpace(d.Profile.Email) == "" {
		add("profile.email is empty")
	}

	expKeys := map[string]struct{}{}
	for i, e := range d.Experiences {
		if e.Company == "" || e.Role == "" || e.StartDate == "" {
			add("experiences[%d]: company, role and startDate are required", i)
			continue
		}
		k := e.Company + "\x00" + e.Role + "\x00" + e.StartDate
		if _, dup := expKeys[k]; dup {
			add("experiences[%d]: duplicate %s / %s / %s", i, e.Company, e.Role, e.StartDate)
		}
		expKeys[k] = struct{}{}
	}

	eduKeys := map[string]struct{}{}
	for i, e := range d.Education {
		if e.School == "" || e.Degree == "" || e.Field == "" {
			add("education[%d]: school, degree and field are required", i)
			continue
		}
		k := e.School + "\x00" + e.Degree + "\x00" + e.StartDate
		if _, dup := eduKeys[k]; dup {
			add("education[%d]: duplicate %s / %s", i, e.School, e.Degree)
		}
		eduKeys[k] = struct{}{}
	}

	slugs := map[string]struct{}{}
	for i, p := range d.Projects {
		if !slugRe.MatchString(p.Slug) {
			add("projects[%d]: malformed slug %q", i, p.Slug)
		}
		if p.Title == "" {
			add("projects[%d]: title is required", i)
		}
		if _, dup := slugs[p.Slug]; dup {
			add("projects[%d]: duplicate slug %q", i, p.Slug)
		}
		slugs[p.Slug] = struct{}{}
	}

	names := map[string]struct{}{}
	for i, s := range d.Skills {
		if s.Name == "" || s.Category == "" {
			add("skills[%d]: name and category are required", i)
		}
		if s.Proficiency < 0 || s.Proficiency > 100 {
			add("skills[%d]: proficiency %d outside 0-100", i, s.Proficiency)
		}
		if _, dup := names[s.Name]; dup {
			add("skills[%d]: duplicate name %q", i, s.Name)
		}
		names[s.Name] = struct{}{}
	}

	for key := range d.CaseStudies {
		if !slugRe.MatchString(key) {
			add("caseStudies: malformed key %q", key)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(problems, "; "))
	}
	return nil
}

// Checksum identifies a revision of the seed content. Map keys are encoded in
// sorted order, so equal documents always hash the same.
func (d Document) Checksum() string {
	b, err := json.Marshal(d)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// CaseStudyFor looks up case-study metadata by project slug.
func (d Document) CaseStudyFor(slug string) (CaseStudy, bool) {
	cs, ok := d.CaseStudies[slug]
	return cs, ok
}
