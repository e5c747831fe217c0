package http

import (
	"time"

	"github.com/devfolio/devfolio-api/internal/domain/portfolio"
	portfolioUC "github.com/devfolio/devfolio-api/internal/application/usecase/portfolio"
)

// Portfolio DTOs

type EducationEntryRequest struct {
	Institution string     `json:"institution" binding:"required"`
	Degree      string     `json:"degree"`
	Year        string     `json:"year"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	GPA         *string    `json:"gpa"`
}

type ExperienceEntryRequest struct {
	Company        string     `json:"company" binding:"required"`
	Position       string     `json:"position"`
	Duration       string     `json:"duration"`
	Description    string     `json:"description"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	IsCurrent      bool       `json:"is_current"`
	CompanyLogoURL *string    `json:"company_logo_url"`
}

type ProjectEntryRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	GithubLink   *string  `json:"github_link"`
	LiveLink     *string  `json:"live_link"`
	ImageURL     *string  `json:"image_url"`
	Technologies []string `json:"technologies"`
	Featured     bool     `json:"featured"`
}

type CreatePortfolioRequest struct {
	Name              string                   `json:"name" binding:"required"`
	Bio               string                   `json:"bio"`
	ProfilePictureURL *string                  `json:"profile_picture_url"`
	Location          *string                  `json:"location"`
	Education         []EducationEntryRequest  `json:"education"`
	Experience        []ExperienceEntryRequest `json:"experience"`
	Skills            []string                 `json:"skills"`
	Projects          []ProjectEntryRequest    `json:"projects"`
	SocialLinks       map[string]string        `json:"social_links"`
	Email             *string                  `json:"email"`
}

func (req *CreatePortfolioRequest) ToInput() portfolioUC.CreateCompletePortfolioInput {
	input := portfolioUC.CreateCompletePortfolioInput{
		Name:              req.Name,
		Bio:               req.Bio,
		ProfilePictureURL: req.ProfilePictureURL,
		Location:          req.Location,
		Skills:            req.Skills,
		SocialLinks:       req.SocialLinks,
		ContactEmail:      req.Email,
	}
	input.Education = make([]portfolioUC.EducationInput, len(req.Education))
	for i, e := range req.Education {
		input.Education[i] = portfolioUC.EducationInput{
			Institution: e.Institution,
			Degree:      e.Degree,
			Year:        e.Year,
			Description: e.Description,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			GPA:         e.GPA,
		}
	}
	input.Experience = make([]portfolioUC.ExperienceInput, len(req.Experience))
	for i, e := range req.Experience {
		input.Experience[i] = portfolioUC.ExperienceInput{
			Company:        e.Company,
			Position:       e.Position,
			Duration:       e.Duration,
			Description:    e.Description,
			StartDate:      e.StartDate,
			EndDate:        e.EndDate,
			IsCurrent:      e.IsCurrent,
			CompanyLogoURL: e.CompanyLogoURL,
		}
	}
	input.Projects = make([]portfolioUC.ProjectInput, len(req.Projects))
	for i, p := range req.Projects {
		input.Projects[i] = portfolioUC.ProjectInput{
			Title:        p.Title,
			Description:  p.Description,
			GithubLink:   p.GithubLink,
			LiveLink:     p.LiveLink,
			ImageURL:     p.ImageURL,
			Technologies: p.Technologies,
			Featured:     p.Featured,
		}
	}
	return input
}

type UpdatePortfolioRequest struct {
	Name              string  `json:"name" binding:"required"`
	Bio               string  `json:"bio"`
	ProfilePictureURL *string `json:"profile_picture_url"`
	Location          *string `json:"location"`
	IsPublic          bool    `json:"is_public"`
}

type PortfolioDTO struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Bio               string    `json:"bio"`
	ProfilePictureURL *string   `json:"profile_picture_url,omitempty"`
	Location          *string   `json:"location,omitempty"`
	Slug              string    `json:"slug"`
	IsPublic          bool      `json:"is_public"`
	CreatedAt         time.Time `json:"created_at"`
}

func ToPortfolioDTO(p *portfolio.Portfolio) PortfolioDTO {
	return PortfolioDTO{
		ID:                p.ID.String(),
		Name:              p.Name,
		Bio:               p.Bio,
		ProfilePictureURL: p.ProfilePictureURL,
		Location:          p.Location,
		Slug:              p.Slug,
		IsPublic:          p.IsPublic,
		CreatedAt:         p.CreatedAt,
	}
}

type EducationDTO struct {
	ID          string     `json:"id"`
	Institution string     `json:"institution"`
	Degree      string     `json:"degree"`
	Year        string     `json:"year"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	GPA         *string    `json:"gpa,omitempty"`
}

type ExperienceDTO struct {
	ID             string     `json:"id"`
	Company        string     `json:"company"`
	Position       string     `json:"position"`
	Duration       string     `json:"duration"`
	Description    string     `json:"description"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	IsCurrent      bool       `json:"is_current"`
	CompanyLogoURL *string    `json:"company_logo_url,omitempty"`
}

type SkillDTO struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	ProficiencyLevel *string `json:"proficiency_level,omitempty"`
}

type ProjectDTO struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	GithubLink   *string  `json:"github_link,omitempty"`
	LiveLink     *string  `json:"live_link,omitempty"`
	ImageURL     *string  `json:"image_url,omitempty"`
	Technologies []string `json:"technologies"`
	Featured     bool     `json:"featured"`
}

type SocialLinkDTO struct {
	ID          string  `json:"id"`
	Platform    string  `json:"platform"`
	URL         string  `json:"url"`
	DisplayName *string `json:"display_name,omitempty"`
}

type ContactInfoDTO struct {
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Website *string `json:"website,omitempty"`
	Address *string `json:"address,omitempty"`
}

type AggregateDTO struct {
	Portfolio   PortfolioDTO    `json:"portfolio"`
	Education   []EducationDTO  `json:"education"`
	Experience  []ExperienceDTO `json:"experience"`
	Skills      []SkillDTO      `json:"skills"`
	Projects    []ProjectDTO    `json:"projects"`
	SocialLinks []SocialLinkDTO `json:"social_links"`
	ContactInfo *ContactInfoDTO `json:"contact_info,omitempty"`
}

func ToAggregateDTO(agg *portfolio.Aggregate) AggregateDTO {
	dto := AggregateDTO{
		Portfolio:   ToPortfolioDTO(&agg.Portfolio),
		Education:   make([]EducationDTO, len(agg.Education)),
		Experience:  make([]ExperienceDTO, len(agg.Experience)),
		Skills:      make([]SkillDTO, len(agg.Skills)),
		Projects:    make([]ProjectDTO, len(agg.Projects)),
		SocialLinks: make([]SocialLinkDTO, len(agg.SocialLinks)),
	}
	for i, e := range agg.Education {
		dto.Education[i] = EducationDTO{
			ID:          e.ID.String(),
			Institution: e.Institution,
			Degree:      e.Degree,
			Year:        e.Year,
			Description: e.Description,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			GPA:         e.GPA,
		}
	}
	for i, e := range agg.Experience {
		dto.Experience[i] = ExperienceDTO{
			ID:             e.ID.String(),
			Company:        e.Company,
			Position:       e.Position,
			Duration:       e.Duration,
			Description:    e.Description,
			StartDate:      e.StartDate,
			EndDate:        e.EndDate,
			IsCurrent:      e.IsCurrent,
			CompanyLogoURL: e.CompanyLogoURL,
		}
	}
	for i, s := range agg.Skills {
		dto.Skills[i] = SkillDTO{
			ID:               s.ID.String(),
			Name:             s.Name,
			Category:         s.Category,
			ProficiencyLevel: s.ProficiencyLevel,
		}
	}
	for i, p := range agg.Projects {
		dto.Projects[i] = ProjectDTO{
			ID:           p.ID.String(),
			Title:        p.Title,
			Description:  p.Description,
			GithubLink:   p.GithubLink,
			LiveLink:     p.LiveLink,
			ImageURL:     p.ImageURL,
			Technologies: p.Technologies,
			Featured:     p.Featured,
		}
	}
	for i, l := range agg.SocialLinks {
		dto.SocialLinks[i] = SocialLinkDTO{
			ID:          l.ID.String(),
			Platform:    string(l.Platform),
			URL:         l.URL,
			DisplayName: l.DisplayName,
		}
	}
	if agg.ContactInfo != nil {
		dto.ContactInfo = &ContactInfoDTO{
			Email:   agg.ContactInfo.Email,
			Phone:   agg.ContactInfo.Phone,
			Website: agg.ContactInfo.Website,
			Address: agg.ContactInfo.Address,
		}
	}
	return dto
}
