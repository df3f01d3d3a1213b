package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openvol/shiftengine/internal/config"
	"github.com/openvol/shiftengine/pkg/core/model"
	"github.com/openvol/shiftengine/pkg/core/services"
	"github.com/openvol/shiftengine/pkg/postgres"
	"github.com/openvol/shiftengine/pkg/utils/logging"
)

// callTimeout bounds each store-backed command individually
const callTimeout = 30 * time.Second

// App holds the application dependencies, constructed once and shared by
// every command
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shiftengine",
		Short: "Shift engine CLI - list, enroll, and create recurring volunteer shifts",
		Long:  `A CLI consumer of the recurring-shift instantiation and capacity engine.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.database != nil {
					app.database.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(listShiftsCmd())
	rootCmd.AddCommand(enrollCmd())
	rootCmd.AddCommand(createShiftCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.logger.Info("Loading configuration")
	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.logger.Info("Connecting to database")
	ctx, cancel := context.WithTimeout(app.ctx, callTimeout)
	defer cancel()
	app.database, err = postgres.NewDB(ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.logger.Info("Database connected successfully")

	return nil
}

func listShiftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listShifts",
		Short: "List shift occurrences in the rolling window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scopeID, _ := cmd.Flags().GetString("scope")

			ctx, cancel := context.WithTimeout(app.ctx, callTimeout)
			defer cancel()

			result, err := services.ListOccurrences(ctx, app.database, app.cfg, app.logger, scopeID, time.Now())
			if err != nil {
				return err
			}

			if result.Degraded {
				fmt.Println("\nWARNING: enrollment data unavailable, availability may be wrong")
			}

			fmt.Printf("\nFound %d occurrences:\n\n", len(result.Occurrences))
			lastDate := ""
			for _, occ := range result.Occurrences {
				if occ.Date != lastDate {
					fmt.Printf("%s (%s)\n", occ.Date, occ.Template.Weekday.Key())
					lastDate = occ.Date
				}
				fmt.Printf("  %s %s-%s %-25s %d/%d %s [%s]\n",
					stateGlyph(occ.State),
					occ.Template.StartTime,
					occ.Template.EndTime,
					occ.Template.Site.Name,
					len(occ.Enrolled),
					occ.Template.MaxCapacity,
					occ.State,
					occ.Template.ID,
				)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("scope", "", "Organizational scope ID (empty lists all scopes)")

	return cmd
}

func enrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enroll <template_id> <volunteer_id> <date>",
		Short: "Enroll a volunteer for a shift date (date as YYYY-MM-DD)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(app.ctx, callTimeout)
			defer cancel()

			if err := services.Enroll(ctx, app.database, app.logger, args[0], args[1], args[2]); err != nil {
				return err
			}

			fmt.Printf("\nEnrolled %s for %s on %s\n\n", args[1], args[0], args[2])
			return nil
		},
	}
}

func createShiftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createShift <date> <start_time> <end_time> <max_capacity>",
		Short: "Create a recurring shift on an existing or new site",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxCapacity, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("max_capacity must be a number: %w", err)
			}

			req := services.CreateShiftRequest{
				Date:        args[0],
				StartTime:   args[1],
				EndTime:     args[2],
				MaxCapacity: maxCapacity,
			}
			req.SiteID, _ = cmd.Flags().GetString("site-id")
			req.CoordinatorID, _ = cmd.Flags().GetString("coordinator")
			req.Notes, _ = cmd.Flags().GetString("notes")
			scopeID, _ := cmd.Flags().GetString("scope")

			siteName, _ := cmd.Flags().GetString("site-name")
			if siteName != "" {
				address, _ := cmd.Flags().GetString("address")
				category, _ := cmd.Flags().GetString("category")
				req.NewSite = &services.NewSiteFields{
					Name:     siteName,
					Address:  address,
					Category: category,
				}
			}

			ctx, cancel := context.WithTimeout(app.ctx, callTimeout)
			defer cancel()

			tpl, err := services.CreateShift(ctx, app.database, app.logger, req, scopeID)
			if err != nil {
				return err
			}

			printTemplate(tpl)
			return nil
		},
	}

	cmd.Flags().String("site-id", "", "Existing site ID")
	cmd.Flags().String("site-name", "", "Name for a new site (creates the site first)")
	cmd.Flags().String("address", "", "Address for a new site")
	cmd.Flags().String("category", "", "Category tag for a new site")
	cmd.Flags().String("scope", "", "Organizational scope for a new site (empty makes it globally visible)")
	cmd.Flags().String("coordinator", "", "Coordinator ID to assign")
	cmd.Flags().String("notes", "", "Free-text notes")

	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(app.ctx, callTimeout)
			defer cancel()

			if err := app.database.RunMigrations(ctx); err != nil {
				return err
			}
			fmt.Println("\nMigrations applied.")
			return nil
		},
	}
}

func printTemplate(tpl *model.ShiftTemplate) {
	fmt.Printf("\nShift created successfully!\n\n")
	fmt.Printf("Template ID: %s\n", tpl.ID)
	fmt.Printf("Weekday:     %s\n", tpl.Weekday.Key())
	fmt.Printf("Time:        %s-%s\n", tpl.StartTime, tpl.EndTime)
	fmt.Printf("Capacity:    %d\n", tpl.MaxCapacity)
	fmt.Printf("Site:        %s (%s)\n\n", tpl.Site.Name, tpl.Site.ID)
}

func stateGlyph(state model.CapacityState) string {
	switch state {
	case model.StateFull:
		return "✗"
	case model.StateLimited:
		return "!"
	default:
		return "✓"
	}
}
