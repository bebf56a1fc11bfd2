package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/medprep/campus/internal/app/models"
	appRepos "github.com/medprep/campus/internal/app/repositories"
	"github.com/medprep/campus/internal/config"
	pkgAuth "github.com/medprep/campus/internal/pkg/auth"
)

// neetPGSubjects is the standard NEET-PG subject list seeded into every
// college so faculty assignment and the question bank work out of the box.
var neetPGSubjects = []string{
	"Anatomy",
	"Physiology",
	"Biochemistry",
	"Pharmacology",
	"Pathology",
	"Microbiology",
	"Forensic Medicine",
	"Community Medicine",
	"General Medicine",
	"General Surgery",
	"Obstetrics and Gynaecology",
	"Paediatrics",
	"Orthopaedics",
	"Ophthalmology",
	"ENT",
	"Dermatology",
	"Psychiatry",
	"Anaesthesia",
	"Radiodiagnosis",
	"Radiotherapy",
}

// CreateDefaultData seeds the platform owner account and the standard
// subject list for every existing college. Safe to run on every startup.
func CreateDefaultData(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	subjectRepo := appRepos.NewSubjectRepository(dbPool)
	analyticsRepo := appRepos.NewAnalyticsRepository(dbPool)

	var finalErr error

	if err := seedOwner(ctx, cfg, dbPool, userRepo, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error seeding platform owner account")
		finalErr = errors.Join(finalErr, err)
	}

	collegeIDs, err := analyticsRepo.CollegeIDs(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error listing colleges for subject seeding")
		return errors.Join(finalErr, err)
	}

	for _, collegeID := range collegeIDs {
		for _, name := range neetPGSubjects {
			if _, err := subjectRepo.GetOrCreate(ctx, collegeID, name); err != nil {
				lgr.Error().Err(err).Int64("collegeId", collegeID).Str("subject", name).Msg("Error seeding subject")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	return finalErr
}

// seedOwner creates the product_owner account from configuration when no
// account with that username exists yet.
func seedOwner(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, userRepo *appRepos.UserRepository, lgr zerolog.Logger) error {
	if cfg.Seed.OwnerUsername == "" || cfg.Seed.OwnerPassword == "" {
		lgr.Warn().Msg("Owner seed credentials not configured, skipping owner account creation")
		return nil
	}

	exists, err := userRepo.UsernameExists(ctx, cfg.Seed.OwnerUsername)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashed, err := pkgAuth.HashPassword(cfg.Seed.OwnerPassword)
	if err != nil {
		return err
	}

	owner := &appModels.User{
		Username:  cfg.Seed.OwnerUsername,
		Email:     cfg.Seed.OwnerEmail,
		Password:  hashed,
		FirstName: "Platform",
		LastName:  "Owner",
		RoleType:  appModels.RoleProductOwner,
		IsActive:  true,
	}
	if _, err := userRepo.CreateUser(ctx, dbPool, owner); err != nil {
		return err
	}

	lgr.Info().Str("username", owner.Username).Msg("Seeded platform owner account")
	return nil
}
