// Package showcase shapes stored portfolio rows into the display model the
// site renders: tiered skill groups, featured-first project cards, bullet
// lists and two-up experience rows.
package showcase

import (
	"sort"
	"strings"

	"portfolio-api/internal/content"
	"portfolio-api/internal/domain/portfolio"
)

const presentLabel = "Present"

// Bullets splits newline-delimited text into trimmed, non-blank lines.
func Bullets(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Rows chunks items into rows of size n; the last row may be shorter.
func Rows[T any](items []T, n int) [][]T {
	if n <= 0 {
		n = 1
	}
	rows := make([][]T, 0, (len(items)+n-1)/n)
	for start := 0; start < len(items); start += n {
		end := min(start+n, len(items))
		rows = append(rows, items[start:end])
	}
	return rows
}

// OrderProjects returns a copy of projects with case-study projects first.
// Within each group projects are ordered by ascending id.
func OrderProjects(projects []portfolio.Project, hasCaseStudy func(slug string) bool) []portfolio.Project {
	out := make([]portfolio.Project, len(projects))
	copy(out, projects)

	featured := func(p portfolio.Project) bool {
		return p.Slug != "" && hasCaseStudy(p.Slug)
	}
	sort.SliceStable(out, func(i, j int) bool {
		fi, fj := featured(out[i]), featured(out[j])
		if fi != fj {
			return fi
		}
		return out[i].ID < out[j].ID
	})
	return out
}

type Links struct {
	Demo      string `json:"demo,omitempty"`
	Github    string `json:"github,omitempty"`
	CaseStudy string `json:"caseStudy,omitempty"`
}

// ResolveLinks prefers case-study links and falls back to the project's own.
func ResolveLinks(p portfolio.Project, cs *content.CaseStudy) Links {
	var l Links
	if cs != nil {
		l = Links{Demo: cs.Links.Demo, Github: cs.Links.Github, CaseStudy: cs.Links.CaseStudy}
	}
	l.Demo = firstNonEmpty(l.Demo, deref(p.Link))
	l.Github = firstNonEmpty(l.Github, deref(p.GithubLink))
	l.CaseStudy = firstNonEmpty(l.CaseStudy, deref(p.GithubLink), deref(p.Link))
	return l
}

type ProjectCard struct {
	ID        int64    `json:"id,omitempty"`
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Badges    []string `json:"badges"`
	Links     Links    `json:"links"`
	Photo     string   `json:"photo,omitempty"`
	Featured  bool     `json:"featured"`
	Problem   string   `json:"problem,omitempty"`
	Decisions []string `json:"decisions"`
	Impact    []string `json:"impact"`
}

func projectCard(p portfolio.Project, cs *content.CaseStudy) ProjectCard {
	card := ProjectCard{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     p.Title,
		Summary:   p.Description,
		Badges:    nonNil(p.Tags),
		Links:     ResolveLinks(p, cs),
		Decisions: []string{},
		Impact:    []string{},
	}
	if cs == nil {
		return card
	}

	card.Featured = true
	card.Summary = firstNonEmpty(cs.Built, p.Description)
	if len(cs.Stack) > 0 {
		card.Badges = cs.Stack
	}
	card.Photo = cs.Photo
	card.Problem = cs.Problem
	card.Decisions = nonNil(cs.Decisions)
	card.Impact = Bullets(cs.Impact)
	return card
}

// ProjectCards orders projects and attaches their case studies. Case studies
// whose slug matches no project are appended as standalone cards.
func ProjectCards(projects []portfolio.Project, studies map[string]content.CaseStudy) []ProjectCard {
	lookup := func(slug string) *content.CaseStudy {
		if slug == "" {
			return nil
		}
		if cs, ok := studies[slug]; ok {
			return &cs
		}
		return nil
	}
	ordered := OrderProjects(projects, func(slug string) bool { return lookup(slug) != nil })

	cards := make([]ProjectCard, 0, len(ordered)+len(studies))
	seen := map[string]bool{}
	for _, p := range ordered {
		cards = append(cards, projectCard(p, lookup(p.Slug)))
		seen[p.Slug] = true
	}

	orphans := make([]string, 0)
	for slug := range studies {
		if !seen[slug] {
			orphans = append(orphans, slug)
		}
	}
	sort.Strings(orphans)
	for _, slug := range orphans {
		cs := studies[slug]
		p := portfolio.Project{Slug: slug, Title: firstNonEmpty(cs.Title, slug), Description: cs.Problem}
		cards = append(cards, projectCard(p, &cs))
	}
	return cards
}

type ExperienceCard struct {
	ID      int64    `json:"id"`
	Company string   `json:"company"`
	Role    string   `json:"role"`
	Period  string   `json:"period"`
	Bullets []string `json:"bullets"`
}

// PairExperiences renders experiences as two-up timeline rows.
func PairExperiences(experiences []portfolio.Experience) [][]ExperienceCard {
	cards := make([]ExperienceCard, 0, len(experiences))
	for _, e := range experiences {
		cards = append(cards, ExperienceCard{
			ID:      e.ID,
			Company: e.Company,
			Role:    e.Role,
			Period:  e.StartDate + " - " + firstNonEmpty(deref(e.EndDate), presentLabel),
			Bullets: Bullets(e.Description),
		})
	}
	return Rows(cards, 2)
}

type EducationCard struct {
	ID     int64  `json:"id"`
	School string `json:"school"`
	Degree string `json:"degree"`
	Field  string `json:"field"`
	Period string `json:"period"`
}

func EducationCards(education []portfolio.Education) []EducationCard {
	cards := make([]EducationCard, 0, len(education))
	for _, e := range education {
		cards = append(cards, EducationCard{
			ID:     e.ID,
			School: e.School,
			Degree: e.Degree,
			Field:  e.Field,
			Period: educationPeriod(deref(e.StartDate), deref(e.EndDate)),
		})
	}
	return cards
}

// educationPeriod shows only the year part of ISO-ish dates and collapses
// single-year entries.
func educationPeriod(start, end string) string {
	start, _, _ = strings.Cut(start, "-")
	end, _, _ = strings.Cut(end, "-")
	switch {
	case start == "":
		return end
	case end == "":
		return start + " - " + presentLabel
	case start == end:
		return start
	default:
		return start + " - " + end
	}
}

type ProfileView struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Bio         string   `json:"bio"`
	Email       string   `json:"email"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	LinkedinURL string   `json:"linkedinUrl,omitempty"`
	GithubURL   string   `json:"githubUrl,omitempty"`
	ResumeURL   string   `json:"resumeUrl,omitempty"`
	About       []string `json:"about"`
	LookingFor  string   `json:"lookingFor,omitempty"`
}

// MergeProfile overlays the stored profile onto the content defaults; stored
// values win when non-empty.
func MergeProfile(stored *portfolio.Profile, def content.Profile) ProfileView {
	v := ProfileView{
		Name:        def.Name,
		Title:       def.Title,
		Bio:         def.Bio,
		Email:       def.Email,
		ImageURL:    def.ImageURL,
		LinkedinURL: def.LinkedinURL,
		GithubURL:   def.GithubURL,
		ResumeURL:   def.ResumeURL,
		About:       nonNil(def.About),
		LookingFor:  def.LookingFor,
	}
	if stored == nil {
		return v
	}
	v.Name = firstNonEmpty(stored.Name, v.Name)
	v.Title = firstNonEmpty(stored.Title, v.Title)
	v.Bio = firstNonEmpty(stored.Bio, v.Bio)
	v.Email = firstNonEmpty(stored.Email, v.Email)
	v.ImageURL = firstNonEmpty(deref(stored.ImageURL), v.ImageURL)
	v.LinkedinURL = firstNonEmpty(deref(stored.LinkedinURL), v.LinkedinURL)
	v.GithubURL = firstNonEmpty(deref(stored.GithubURL), v.GithubURL)
	v.ResumeURL = firstNonEmpty(deref(stored.ResumeURL), v.ResumeURL)
	return v
}

// Input is everything read from storage for one render.
type Input struct {
	Profile     *portfolio.Profile
	Experiences []portfolio.Experience
	Education   []portfolio.Education
	Projects    []portfolio.Project
	Skills      []portfolio.Skill
}

type View struct {
	Profile     ProfileView        `json:"profile"`
	Experiences [][]ExperienceCard `json:"experiences"`
	Education   []EducationCard    `json:"education"`
	Projects    []ProjectCard      `json:"projects"`
	Skills      []SkillGroup       `json:"skills"`
}

// Build composes the full display model. An empty skills table falls back to
// the curated content list.
func Build(in Input, doc content.Document) View {
	skills := in.Skills
	if len(skills) == 0 {
		skills = SkillsFromContent(doc.Skills)
	}
	return View{
		Profile:     MergeProfile(in.Profile, doc.Profile),
		Experiences: PairExperiences(in.Experiences),
		Education:   EducationCards(in.Education),
		Projects:    ProjectCards(in.Projects, doc.CaseStudies),
		Skills:      GroupSkills(skills),
	}
}

func SkillsFromContent(skills []content.Skill) []portfolio.Skill {
	out := make([]portfolio.Skill, 0, len(skills))
	for _, s := range skills {
		p := s.Proficiency
		out = append(out, portfolio.Skill{Name: s.Name, Category: s.Category, Proficiency: &p})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
