package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devfolio/devfolio-api/internal/domain/portfolio"
	"github.com/devfolio/devfolio-api/pkg/apperror"
	"github.com/devfolio/devfolio-api/pkg/logger"
)

type postgresPortfolioRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPortfolioRepo(db *pgxpool.Pool, logger logger.Logger) portfolio.Repository {
	return &postgresPortfolioRepo{db: db, logger: logger}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *postgresPortfolioRepo) Create(ctx context.Context, p *portfolio.Portfolio) error {
	query := `
		INSERT INTO portfolios (id, user_id, name, bio, profile_picture_url, location, slug, is_public, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.UserID, p.Name, p.Bio, p.ProfilePictureURL,
		p.Location, p.Slug, p.IsPublic, p.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewConflict("portfolio", "slug", p.Slug)
		}
		return apperror.NewInternal("failed to create portfolio", err)
	}
	return nil
}

func (r *postgresPortfolioRepo) AddEducation(ctx context.Context, e *portfolio.Education) error {
	query := `
		INSERT INTO education (id, portfolio_id, institution, degree, year, description, start_date, end_date, gpa)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		e.ID, e.PortfolioID, e.Institution, e.Degree, e.Year,
		e.Description, e.StartDate, e.EndDate, e.GPA,
	)
	if err != nil {
		return apperror.NewInternal("failed to add education entry", err)
	}
	return nil
}

func (r *postgresPortfolioRepo) AddExperience(ctx context.Context, e *portfolio.Experience) error {
	query := `
		INSERT INTO experience (id, portfolio_id, company, position, duration, description, start_date, end_date, is_current, company_logo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		e.ID, e.PortfolioID, e.Company, e.Position, e.Duration,
		e.Description, e.StartDate, e.EndDate, e.IsCurrent, e.CompanyLogoURL,
	)
	if err != nil {
		return apperror.NewInternal("failed to add experience entry", err)
	}
	return nil
}

func (r *postgresPortfolioRepo) AddProject(ctx context.Context, p *portfolio.Project) error {
	query := `
		INSERT INTO projects (id, portfolio_id, title, description, github_link, live_link, image_url, technologies, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.PortfolioID, p.Title, p.Description, p.GithubLink,
		p.LiveLink, p.ImageURL, p.Technologies, p.Featured,
	)
	if err != nil {
		return apperror.NewInternal("failed to add project entry", err)
	}
	return nil
}

// AddSkills inserts the whole batch in one statement, all-or-nothing.
func (r *postgresPortfolioRepo) AddSkills(ctx context.Context, skills []portfolio.Skill) error {
	if len(skills) == 0 {
		return nil
	}

	builder := psql.Insert("skills").
		Columns("id", "portfolio_id", "name", "category", "proficiency_level")
	for _, s := range skills {
		builder = builder.Values(s.ID, s.PortfolioID, s.Name, s.Category, s.ProficiencyLevel)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build skills insert", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return apperror.NewInternal("failed to add skills", err)
	}
	return nil
}

// AddSocialLinks inserts the whole batch in one statement, all-or-nothing.
func (r *postgresPortfolioRepo) AddSocialLinks(ctx context.Context, links []portfolio.SocialLink) error {
	if len(links) == 0 {
		return nil
	}

	builder := psql.Insert("social_links").
		Columns("id", "portfolio_id", "platform", "url", "display_name")
	for _, l := range links {
		builder = builder.Values(l.ID, l.PortfolioID, string(l.Platform), l.URL, l.DisplayName)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build social links insert", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return apperror.NewInternal("failed to add social links", err)
	}
	return nil
}

func (r *postgresPortfolioRepo) UpsertContactInfo(ctx context.Context, c *portfolio.ContactInfo) error {
	query := `
		INSERT INTO contact_info (portfolio_id, email, phone, website, address)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (portfolio_id) DO UPDATE SET
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			website = EXCLUDED.website,
			address = EXCLUDED.address
	`
	_, err := r.db.Exec(ctx, query, c.PortfolioID, c.Email, c.Phone, c.Website, c.Address)
	if err != nil {
		return apperror.NewInternal("failed to upsert contact info", err)
	}
	return nil
}

func scanPortfolio(row pgx.Row) (*portfolio.Portfolio, error) {
	p := &portfolio.Portfolio{}
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Bio,
		&p.ProfilePictureURL,
		&p.Location,
		&p.Slug,
		&p.IsPublic,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("portfolio", "")
		}
		return nil, apperror.NewInternal("failed to scan portfolio row", err)
	}
	return p, nil
}

func (r *postgresPortfolioRepo) FindPublicBySlug(ctx context.Context, slug string) (*portfolio.Aggregate, error) {
	query := `
		SELECT id, user_id, name, bio, profile_picture_url, location, slug, is_public, created_at
		FROM portfolios
		WHERE slug = $1 AND is_public = true
	`
	p, err := scanPortfolio(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("portfolio", slug)
		}
		return nil, err
	}

	return r.loadAggregate(ctx, p)
}

func (r *postgresPortfolioRepo) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*portfolio.Aggregate, error) {
	builder := psql.Select("id, user_id, name, bio, profile_picture_url, location, slug, is_public, created_at").
		From("portfolios").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list by owner query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query portfolios by owner", err)
	}

	roots := make([]*portfolio.Portfolio, 0)
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		roots = append(roots, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating portfolio rows", err)
	}

	aggregates := make([]*portfolio.Aggregate, 0, len(roots))
	for _, p := range roots {
		agg, err := r.loadAggregate(ctx, p)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, agg)
	}
	return aggregates, nil
}

// loadAggregate joins a portfolio row with all six child tables. Ordered
// children come back in insertion order via their seq column.
func (r *postgresPortfolioRepo) loadAggregate(ctx context.Context, p *portfolio.Portfolio) (*portfolio.Aggregate, error) {
	agg := &portfolio.Aggregate{
		Portfolio:   *p,
		Education:   []portfolio.Education{},
		Experience:  []portfolio.Experience{},
		Skills:      []portfolio.Skill{},
		Projects:    []portfolio.Project{},
		SocialLinks: []portfolio.SocialLink{},
	}

	eduRows, err := r.db.Query(ctx, `
		SELECT id, portfolio_id, institution, degree, year, description, start_date, end_date, gpa
		FROM education WHERE portfolio_id = $1 ORDER BY seq
	`, p.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query education entries", err)
	}
	for eduRows.Next() {
		var e portfolio.Education
		if err := eduRows.Scan(&e.ID, &e.PortfolioID, &e.Institution, &e.Degree, &e.Year,
			&e.Description, &e.StartDate, &e.EndDate, &e.GPA); err != nil {
			eduRows.Close()
			return nil, apperror.NewInternal("failed to scan education row", err)
		}
		agg.Education = append(agg.Education, e)
	}
	eduRows.Close()
	if err := eduRows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating education rows", err)
	}

	expRows, err := r.db.Query(ctx, `
		SELECT id, portfolio_id, company, position, duration, description, start_date, end_date, is_current, company_logo_url
		FROM experience WHERE portfolio_id = $1 ORDER BY seq
	`, p.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query experience entries", err)
	}
	for expRows.Next() {
		var e portfolio.Experience
		if err := expRows.Scan(&e.ID, &e.PortfolioID, &e.Company, &e.Position, &e.Duration,
			&e.Description, &e.StartDate, &e.EndDate, &e.IsCurrent, &e.CompanyLogoURL); err != nil {
			expRows.Close()
			return nil, apperror.NewInternal("failed to scan experience row", err)
		}
		agg.Experience = append(agg.Experience, e)
	}
	expRows.Close()
	if err := expRows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating experience rows", err)
	}

	skillRows, err := r.db.Query(ctx, `
		SELECT id, portfolio_id, name, category, proficiency_level
		FROM skills WHERE portfolio_id = $1 ORDER BY seq
	`, p.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query skills", err)
	}
	for skillRows.Next() {
		var s portfolio.Skill
		if err := skillRows.Scan(&s.ID, &s.PortfolioID, &s.Name, &s.Category, &s.ProficiencyLevel); err != nil {
			skillRows.Close()
			return nil, apperror.NewInternal("failed to scan skill row", err)
		}
		agg.Skills = append(agg.Skills, s)
	}
	skillRows.Close()
	if err := skillRows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating skill rows", err)
	}

	projRows, err := r.db.Query(ctx, `
		SELECT id, portfolio_id, title, description, github_link, live_link, image_url, technologies, featured
		FROM projects WHERE portfolio_id = $1 ORDER BY seq
	`, p.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query projects", err)
	}
	for projRows.Next() {
		var pr portfolio.Project
		if err := projRows.Scan(&pr.ID, &pr.PortfolioID, &pr.Title, &pr.Description, &pr.GithubLink,
			&pr.LiveLink, &pr.ImageURL, &pr.Technologies, &pr.Featured); err != nil {
			projRows.Close()
			return nil, apperror.NewInternal("failed to scan project row", err)
		}
		agg.Projects = append(agg.Projects, pr)
	}
	projRows.Close()
	if err := projRows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating project rows", err)
	}

	linkRows, err := r.db.Query(ctx, `
		SELECT id, portfolio_id, platform, url, display_name
		FROM social_links WHERE portfolio_id = $1 ORDER BY seq
	`, p.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query social links", err)
	}
	for linkRows.Next() {
		var l portfolio.SocialLink
		var platform string
		if err := linkRows.Scan(&l.ID, &l.PortfolioID, &platform, &l.URL, &l.DisplayName); err != nil {
			linkRows.Close()
			return nil, apperror.NewInternal("failed to scan social link row", err)
		}
		l.Platform = portfolio.SocialPlatform(platform)
		agg.SocialLinks = append(agg.SocialLinks, l)
	}
	linkRows.Close()
	if err := linkRows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating social link rows", err)
	}

	var c portfolio.ContactInfo
	err = r.db.QueryRow(ctx, `
		SELECT portfolio_id, email, phone, website, address
		FROM contact_info WHERE portfolio_id = $1
	`, p.ID).Scan(&c.PortfolioID, &c.Email, &c.Phone, &c.Website, &c.Address)
	if err == nil {
		agg.ContactInfo = &c
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewInternal("failed to query contact info", err)
	}

	return agg, nil
}

func (r *postgresPortfolioRepo) Update(ctx context.Context, p *portfolio.Portfolio) error {
	query := `
		UPDATE portfolios SET
			name = $3, bio = $4, profile_picture_url = $5, location = $6, is_public = $7
		WHERE id = $1 AND user_id = $2
	`
	cmdTag, err := r.db.Exec(ctx, query,
		p.ID, p.UserID, p.Name, p.Bio, p.ProfilePictureURL, p.Location, p.IsPublic,
	)
	if err != nil {
		return apperror.NewInternal("failed to update portfolio", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("portfolio", p.ID.String())
	}
	return nil
}

func (r *postgresPortfolioRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	query := `DELETE FROM portfolios WHERE id = $1 AND user_id = $2`
	cmdTag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return apperror.NewInternal("failed to delete portfolio", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("portfolio", id.String())
	}
	return nil
}
