package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oksasatya/discount-catalog/config"
	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	"github.com/oksasatya/discount-catalog/internal/domain/repository"
	"github.com/oksasatya/discount-catalog/internal/infrastructure/restapi"
	"github.com/oksasatya/discount-catalog/pkg/helpers"
	"github.com/oksasatya/discount-catalog/pkg/validation"
)

type fixtureDiscount struct {
	Title       string `yaml:"title" validate:"required"`
	Description string `yaml:"description" validate:"required"`
	Code        string `yaml:"code" validate:"required"`
	PercentOff  int    `yaml:"percentOff" validate:"percent"`
	ValidUntil  string `yaml:"validUntil" validate:"required,date"`
	Category    string `yaml:"category" validate:"required"`
	ImageURL    string `yaml:"imageUrl" validate:"omitempty,url"`
}

type fixture struct {
	Discounts []fixtureDiscount `yaml:"discounts"`
}

// loadFixture decodes and validates a discounts fixture.
func loadFixture(r io.Reader) ([]entity.Discount, error) {
	var f fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	v := validation.New()
	out := make([]entity.Discount, 0, len(f.Discounts))
	for i, d := range f.Discounts {
		if err := v.Struct(d); err != nil {
			return nil, fmt.Errorf("discount #%d (%s): %s", i+1, d.Code, validation.Message(err))
		}
		out = append(out, entity.Discount{
			Title:       d.Title,
			Description: d.Description,
			Code:        d.Code,
			PercentOff:  d.PercentOff,
			ValidUntil:  d.ValidUntil,
			Category:    d.Category,
			ImageURL:    d.ImageURL,
		})
	}
	return out, nil
}

type seeder struct {
	Users     repository.UserRepository
	Discounts repository.DiscountRepository
	Logger    logrus.FieldLogger
	DryRun    bool
}

// Run logs in as an administrator and creates every fixture discount whose
// code is not in the catalog yet. It returns the number created.
func (s *seeder) Run(ctx context.Context, creds entity.Credentials, list []entity.Discount) (int, error) {
	info, err := s.Users.Login(ctx, creds)
	if err != nil {
		return 0, fmt.Errorf("login %s: %w", creds.Email, err)
	}
	if !info.IsAdmin {
		return 0, fmt.Errorf("%s is not an administrator", creds.Email)
	}

	existing, err := s.Discounts.List(ctx, info.Token)
	if err != nil {
		return 0, fmt.Errorf("list discounts: %w", err)
	}
	codes := make(map[string]struct{}, len(existing))
	for _, d := range existing {
		codes[strings.ToUpper(d.Code)] = struct{}{}
	}

	created := 0
	for _, d := range list {
		if _, ok := codes[strings.ToUpper(d.Code)]; ok {
			helpers.LogInfo(s.Logger, "skip existing discount", logrus.Fields{"code": d.Code})
			continue
		}
		if s.DryRun {
			helpers.LogInfo(s.Logger, "would create discount", logrus.Fields{"code": d.Code})
			continue
		}
		if _, err := s.Discounts.Create(ctx, info.Token, &d); err != nil {
			return created, fmt.Errorf("create %s: %w", d.Code, err)
		}
		codes[strings.ToUpper(d.Code)] = struct{}{}
		created++
		helpers.LogInfo(s.Logger, "created discount", logrus.Fields{"code": d.Code})
	}
	return created, nil
}

func newRootCmd(cfg *config.Config, logger *logrus.Logger) *cobra.Command {
	var (
		file     string
		apiURL   string
		email    string
		password string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create demo discounts through the catalog API",
		Long: `seed reads a YAML fixture of discounts and creates the ones whose code
is not in the catalog yet, logged in as an administrator.

Credentials default to SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				return fmt.Errorf("admin password is required (--password or SEED_ADMIN_PASSWORD)")
			}
			fh, err := os.Open(file)
			if err != nil {
				return err
			}
			defer func() { _ = fh.Close() }()

			list, err := loadFixture(fh)
			if err != nil {
				return err
			}

			client := restapi.NewClient(strings.TrimRight(apiURL, "/"), cfg.APITimeout, logger)
			s := &seeder{
				Users:     restapi.NewUserRepository(client),
				Discounts: restapi.NewDiscountRepository(client),
				Logger:    logger,
				DryRun:    dryRun,
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			n, err := s.Run(ctx, entity.Credentials{Email: email, Password: password}, list)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d of %d discounts\n", n, len(list))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "seed/discounts.yaml", "YAML fixture with discounts")
	cmd.Flags().StringVar(&apiURL, "api", cfg.APIBaseURL, "base URL of the catalog API")
	cmd.Flags().StringVar(&email, "email", cfg.SeedAdminEmail, "administrator email")
	cmd.Flags().StringVar(&password, "password", cfg.SeedAdminPassword, "administrator password")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only report what would be created")
	return cmd
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	if err := newRootCmd(cfg, logger).Execute(); err != nil {
		os.Exit(1)
	}
}
