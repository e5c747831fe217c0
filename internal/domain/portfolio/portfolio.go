package portfolio

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Portfolio is the root of the aggregate. The slug is the only stable
// addressing token for public access once assigned.
type Portfolio struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	Name              string    `json:"name"`
	Bio               string    `json:"bio"`
	ProfilePictureURL *string   `json:"profile_picture_url"`
	Location          *string   `json:"location"`
	Slug              string    `json:"slug"`
	IsPublic          bool      `json:"is_public"`
	CreatedAt         time.Time `json:"created_at"`
}

type Education struct {
	ID          uuid.UUID  `json:"id"`
	PortfolioID uuid.UUID  `json:"portfolio_id"`
	Institution string     `json:"institution"`
	Degree      string     `json:"degree"`
	Year        string     `json:"year"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	GPA         *string    `json:"gpa"`
}

type Experience struct {
	ID             uuid.UUID  `json:"id"`
	PortfolioID    uuid.UUID  `json:"portfolio_id"`
	Company        string     `json:"company"`
	Position       string     `json:"position"`
	Duration       string     `json:"duration"`
	Description    string     `json:"description"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	IsCurrent      bool       `json:"is_current"`
	CompanyLogoURL *string    `json:"company_logo_url"`
}

type Project struct {
	ID           uuid.UUID `json:"id"`
	PortfolioID  uuid.UUID `json:"portfolio_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	GithubLink   *string   `json:"github_link"`
	LiveLink     *string   `json:"live_link"`
	ImageURL     *string   `json:"image_url"`
	Technologies []string  `json:"technologies"`
	Featured     bool      `json:"featured"`
}

// DefaultSkillCategory is applied when a skill arrives as a bare name.
const DefaultSkillCategory = "general"

type Skill struct {
	ID               uuid.UUID `json:"id"`
	PortfolioID      uuid.UUID `json:"portfolio_id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	ProficiencyLevel *string   `json:"proficiency_level"`
}

type SocialPlatform string

const (
	PlatformGithub   SocialPlatform = "github"
	PlatformLinkedin SocialPlatform = "linkedin"
	PlatformTwitter  SocialPlatform = "twitter"
	PlatformWebsite  SocialPlatform = "website"
	PlatformOther    SocialPlatform = "other"
)

type SocialLink struct {
	ID          uuid.UUID      `json:"id"`
	PortfolioID uuid.UUID      `json:"portfolio_id"`
	Platform    SocialPlatform `json:"platform"`
	URL         string         `json:"url"`
	DisplayName *string        `json:"display_name"`
}

// ContactInfo is at most one row per portfolio, written with upsert semantics.
type ContactInfo struct {
	PortfolioID uuid.UUID `json:"portfolio_id"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	Website     *string   `json:"website"`
	Address     *string   `json:"address"`
}

// Aggregate is a portfolio row joined with all of its child rows. It is one
// logical unit for creation and display, not for transactional guarantees.
type Aggregate struct {
	Portfolio   Portfolio    `json:"portfolio"`
	Education   []Education  `json:"education"`
	Experience  []Experience `json:"experience"`
	Skills      []Skill      `json:"skills"`
	Projects    []Project    `json:"projects"`
	SocialLinks []SocialLink `json:"social_links"`
	ContactInfo *ContactInfo `json:"contact_info"`
}

var (
	ErrInvalidSlug = errors.New("slug only allows lowercase letters, numbers, and hyphens")
	ErrNameMissing = errors.New("portfolio name is required")
	slugRegex      = regexp.MustCompile(`^[a-z0-9-]+$`)
	slugStripRegex = regexp.MustCompile(`[^a-z0-9-]+`)
)

func (p *Portfolio) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameMissing
	}
	if !slugRegex.MatchString(p.Slug) {
		return ErrInvalidSlug
	}
	return nil
}

// Slugify reduces free text to a URL-safe slug body.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugStripRegex.ReplaceAllString(s, "")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "portfolio"
	}
	return s
}

// Step identifies one stage of the aggregate fan-out. A failed creation names
// the exact stage so recovery tooling can target a resume point.
type Step string

const (
	StepPortfolio   Step = "portfolio"
	StepEducation   Step = "education"
	StepExperience  Step = "experience"
	StepSkills      Step = "skills"
	StepProjects    Step = "projects"
	StepSocialLinks Step = "social_links"
	StepContactInfo Step = "contact_info"
)

// StepError wraps a failure from one fan-out stage. Earlier stages are NOT
// rolled back: a partially populated aggregate remains persisted.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("portfolio creation failed at step '%s': %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

type Repository interface {
	Create(ctx context.Context, p *Portfolio) error
	AddEducation(ctx context.Context, e *Education) error
	AddExperience(ctx context.Context, e *Experience) error
	AddProject(ctx context.Context, p *Project) error
	AddSkills(ctx context.Context, skills []Skill) error
	AddSocialLinks(ctx context.Context, links []SocialLink) error
	UpsertContactInfo(ctx context.Context, c *ContactInfo) error
	FindPublicBySlug(ctx context.Context, slug string) (*Aggregate, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*Aggregate, error)
	Update(ctx context.Context, p *Portfolio) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}
