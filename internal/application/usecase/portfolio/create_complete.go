package portfolio

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/devfolio/devfolio-api/internal/domain/portfolio"
	"github.com/devfolio/devfolio-api/pkg/apperror"
	"github.com/devfolio/devfolio-api/pkg/logger"
)

var tracer = otel.Tracer("portfolio_usecase")

// sanitize strips all markup from user-supplied rich text before it is
// persisted and later rendered on a public page.
var sanitize = bluemonday.StrictPolicy()

type CreateCompletePortfolioUseCase struct {
	repo   portfolio.Repository
	logger logger.Logger
}

func NewCreateCompletePortfolioUseCase(repo portfolio.Repository, log logger.Logger) *CreateCompletePortfolioUseCase {
	return &CreateCompletePortfolioUseCase{repo: repo, logger: log}
}

type EducationInput struct {
	Institution string
	Degree      string
	Year        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	GPA         *string
}

type ExperienceInput struct {
	Company        string
	Position       string
	Duration       string
	Description    string
	StartDate      *time.Time
	EndDate        *time.Time
	IsCurrent      bool
	CompanyLogoURL *string
}

type ProjectInput struct {
	Title        string
	Description  string
	GithubLink   *string
	LiveLink     *string
	ImageURL     *string
	Technologies []string
	Featured     bool
}

type CreateCompletePortfolioInput struct {
	OwnerID           uuid.UUID
	Name              string
	Bio               string
	ProfilePictureURL *string
	Location          *string
	Education         []EducationInput
	Experience        []ExperienceInput
	Skills            []string
	Projects          []ProjectInput
	SocialLinks       map[string]string
	ContactEmail      *string
}

type CreateCompletePortfolioOutput struct {
	Portfolio *portfolio.Portfolio
}

// Execute fans one submission out into the portfolio row and all child rows.
// The sequence is best-effort, not a transaction: a failed step aborts the
// remaining steps, earlier writes stay persisted, and the returned StepError
// names the step that failed. When the portfolio row itself was committed the
// output carries it even alongside an error, so the caller holds the slug.
func (uc *CreateCompletePortfolioUseCase) Execute(ctx context.Context, input CreateCompletePortfolioInput) (*CreateCompletePortfolioOutput, error) {
	ctx, span := tracer.Start(ctx, "CreateCompletePortfolio")
	defer span.End()

	if input.OwnerID == uuid.Nil {
		return nil, apperror.NewUnauthorized("user not authenticated", nil)
	}

	now := time.Now().UTC()
	p := &portfolio.Portfolio{
		ID:                uuid.New(),
		UserID:            input.OwnerID,
		Name:              strings.TrimSpace(input.Name),
		Bio:               sanitize.Sanitize(input.Bio),
		ProfilePictureURL: input.ProfilePictureURL,
		Location:          input.Location,
		Slug:              newSlug(input.Name),
		IsPublic:          true,
		CreatedAt:         now,
	}
	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("portfolio validation failed", err)
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		span.RecordError(err)
		return nil, &portfolio.StepError{Step: portfolio.StepPortfolio, Err: err}
	}
	span.SetAttributes(attribute.String("portfolio_id", p.ID.String()), attribute.String("slug", p.Slug))
	out := &CreateCompletePortfolioOutput{Portfolio: p}

	for _, edu := range input.Education {
		row := &portfolio.Education{
			ID:          uuid.New(),
			PortfolioID: p.ID,
			Institution: edu.Institution,
			Degree:      edu.Degree,
			Year:        edu.Year,
			Description: sanitize.Sanitize(edu.Description),
			StartDate:   edu.StartDate,
			EndDate:     edu.EndDate,
			GPA:         edu.GPA,
		}
		if err := uc.repo.AddEducation(ctx, row); err != nil {
			span.RecordError(err)
			return out, &portfolio.StepError{Step: portfolio.StepEducation, Err: err}
		}
	}

	for _, exp := range input.Experience {
		row := &portfolio.Experience{
			ID:             uuid.New(),
			PortfolioID:    p.ID,
			Company:        exp.Company,
			Position:       exp.Position,
			Duration:       exp.Duration,
			Description:    sanitize.Sanitize(exp.Description),
			StartDate:      exp.StartDate,
			EndDate:        exp.EndDate,
			IsCurrent:      exp.IsCurrent,
			CompanyLogoURL: exp.CompanyLogoURL,
		}
		if err := uc.repo.AddExperience(ctx, row); err != nil {
			span.RecordError(err)
			return out, &portfolio.StepError{Step: portfolio.StepExperience, Err: err}
		}
	}

	if len(input.Skills) > 0 {
		skills := make([]portfolio.Skill, len(input.Skills))
		for i, name := range input.Skills {
			skills[i] = portfolio.Skill{
				ID:          uuid.New(),
				PortfolioID: p.ID,
				Name:        name,
				Category:    portfolio.DefaultSkillCategory,
			}
		}
		if err := uc.repo.AddSkills(ctx, skills); err != nil {
			span.RecordError(err)
			return out, &portfolio.StepError{Step: portfolio.StepSkills, Err: err}
		}
	}

	for _, proj := range input.Projects {
		row := &portfolio.Project{
			ID:           uuid.New(),
			PortfolioID:  p.ID,
			Title:        proj.Title,
			Description:  sanitize.Sanitize(proj.Description),
			GithubLink:   proj.GithubLink,
			LiveLink:     proj.LiveLink,
			ImageURL:     proj.ImageURL,
			Technologies: proj.Technologies,
			Featured:     proj.Featured,
		}
		if err := uc.repo.AddProject(ctx, row); err != nil {
			span.RecordError(err)
			return out, &portfolio.StepError{Step: portfolio.StepProjects, Err: err}
		}
	}

	if links := buildSocialLinks(p.ID, input.SocialLinks); len(links) > 0 {
		if err := uc.repo.AddSocialLinks(ctx, links); err != nil {
			span.RecordError(err)
			return out, &portfolio.StepError{Step: portfolio.StepSocialLinks, Err: err}
		}
	}

	if input.ContactEmail != nil && strings.TrimSpace(*input.ContactEmail) != "" {
		contact := &portfolio.ContactInfo{
			PortfolioID: p.ID,
			Email:       input.ContactEmail,
		}
		if err := uc.repo.UpsertContactInfo(ctx, contact); err != nil {
			span.RecordError(err)
			return out, &portfolio.StepError{Step: portfolio.StepContactInfo, Err: err}
		}
	}

	return out, nil
}

// newSlug derives a URL-safe slug from the display name plus a short random
// suffix. Uniqueness is still backed by the database index; a collision
// surfaces as a conflict error rather than a silent overwrite.
func newSlug(name string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return portfolio.Slugify(name) + "-" + suffix
}

// buildSocialLinks drops entries with empty or whitespace-only URLs and maps
// the rest to (platform, url) pairs. Platforms outside the known set are
// stored as "other". Keys are sorted so the batch order is deterministic.
func buildSocialLinks(portfolioID uuid.UUID, raw map[string]string) []portfolio.SocialLink {
	platforms := make([]string, 0, len(raw))
	for platform := range raw {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)

	links := make([]portfolio.SocialLink, 0, len(raw))
	for _, platform := range platforms {
		url := strings.TrimSpace(raw[platform])
		if url == "" {
			continue
		}
		links = append(links, portfolio.SocialLink{
			ID:          uuid.New(),
			PortfolioID: portfolioID,
			Platform:    parsePlatform(platform),
			URL:         url,
		})
	}
	return links
}

func parsePlatform(s string) portfolio.SocialPlatform {
	switch portfolio.SocialPlatform(strings.ToLower(s)) {
	case portfolio.PlatformGithub:
		return portfolio.PlatformGithub
	case portfolio.PlatformLinkedin:
		return portfolio.PlatformLinkedin
	case portfolio.PlatformTwitter:
		return portfolio.PlatformTwitter
	case portfolio.PlatformWebsite:
		return portfolio.PlatformWebsite
	default:
		return portfolio.PlatformOther
	}
}
