package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

// SeedDemo fills an empty database with demo content so a fresh install
// has something to show. Does nothing once any category exists.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	st := New(db)

	existing, err := st.Categories.List(ctx)
	if err != nil {
		return fmt.Errorf("checking for demo data: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("demo data already present, skipping")
		return nil
	}

	cat := &model.Category{
		Name:        "General",
		Title:       "General",
		Description: "Notes that fit nowhere else.",
	}
	if err := st.Categories.Create(ctx, cat); err != nil {
		return fmt.Errorf("seeding category: %w", err)
	}

	post := &model.Post{
		Title:         "Hello, World",
		Description:   "A first post to confirm the install works.",
		Content:       "<p>If you can read this through the API, the server is up.</p>",
		ContentFormat: model.ContentFormatHTML,
		Keywords:      "hello, first post",
		CategoryID:    cat.ID,
		Status:        model.PostStatusPublished,
	}
	if err := st.Posts.Create(ctx, post); err != nil {
		return fmt.Errorf("seeding post: %w", err)
	}

	if err := st.Headings.Create(ctx, &model.Heading{
		PostID: post.ID,
		Title:  "Getting Started",
		Level:  2,
		Ord:    1,
	}); err != nil {
		return fmt.Errorf("seeding heading: %w", err)
	}

	profile := &model.Profile{
		Nombre:    "Jane",
		Apellido1: "Doe",
		Email:     "jane@example.com",
	}
	if err := st.Profiles.Create(ctx, profile); err != nil {
		return fmt.Errorf("seeding profile: %w", err)
	}

	skill := &model.Skill{Nombre: "Go", ProfileID: profile.ID}
	if err := st.Skills.Create(ctx, skill); err != nil {
		return fmt.Errorf("seeding skill: %w", err)
	}

	company, err := st.Companies.GetOrCreateByName(ctx, "Acme Corp")
	if err != nil {
		return fmt.Errorf("seeding company: %w", err)
	}

	if err := st.Projects.Create(ctx, &model.Project{
		Nombre:      "Demo Project",
		ProfileID:   profile.ID,
		Tipo:        model.ProjectTypeWeb,
		Descripcion: "A placeholder project entry.",
		Skills:      []model.Skill{*skill},
		Companies:   []model.Company{*company},
	}); err != nil {
		return fmt.Errorf("seeding project: %w", err)
	}

	if err := st.Experiences.Create(ctx, &model.Experience{
		ProfileID:   profile.ID,
		CompanyID:   company.ID,
		Puesto:      "Software Engineer",
		FechaInicio: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Descripcion: "Placeholder experience entry.",
		Skills:      []model.Skill{*skill},
	}); err != nil {
		return fmt.Errorf("seeding experience: %w", err)
	}

	if err := st.Educations.Create(ctx, &model.Education{
		ProfileID:   profile.ID,
		Institucion: "Example University",
		Titulo:      "BSc Computer Science",
		FechaInicio: time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC),
		FechaFin:    sql.NullTime{Time: time.Date(2019, 6, 30, 0, 0, 0, 0, time.UTC), Valid: true},
	}); err != nil {
		return fmt.Errorf("seeding education: %w", err)
	}

	slog.Info("seeded demo data", "category", cat.Slug, "post", post.Slug)
	return nil
}
