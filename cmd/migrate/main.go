package main

import (
	"errors"
	"log"
	"strconv"

	"github.com/asakaida/matchday/internal/infrastructure/config"
	"github.com/asakaida/matchday/internal/infrastructure/database"
	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
)

var (
	envFlag string
	cfg     *config.Config
	pg      *database.Postgres
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration tool for matchday",
	Long: `Database migration tool for matchday.
Manages the PostgreSQL events schema with golang-migrate and
the SQLite matches schema with goose. Migrations are embedded in the binary.`,
	PersistentPreRun: setupDatabase,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Long:  `Apply all pending migrations to the events database and the matches database.`,
	Run:   runUp,
}

var downCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Rollback migrations",
	Long:  `Rollback the specified number of events database migrations (default: 1).`,
	Args:  cobra.MaximumNArgs(1),
	Run:   runDown,
}

var gotoCmd = &cobra.Command{
	Use:   "goto <version>",
	Short: "Migrate to a specific version",
	Long:  `Migrate the events database to a specific version number.`,
	Args:  cobra.ExactArgs(1),
	Run:   runGoto,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show current migration versions",
	Long:  `Display the current migration version of both databases.`,
	Run:   runVersion,
}

var forceCmd = &cobra.Command{
	Use:   "force <version>",
	Short: "Force set migration version (use with caution)",
	Long:  `Force set the events database migration version without running migrations. Use with caution.`,
	Args:  cobra.ExactArgs(1),
	Run:   runForce,
}

func init() {
	// Add global --env flag to all commands
	rootCmd.PersistentFlags().StringVarP(&envFlag, "env", "e", "dev", "Environment to use (dev, test, prod)")

	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(gotoCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(forceCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Failed to execute command: %v", err)
	}
}

func setupDatabase(cmd *cobra.Command, args []string) {
	log.Printf("Using environment: %s", envFlag)

	// Initialize configuration from .env.{env} file
	if err := config.InitConfig(envFlag); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pg, err = database.NewPostgres(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Printf("Connected to database: %s@%s:%d/%s",
		cfg.Database.User,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Database)
}

func newMigrate() *migrate.Migrate {
	m, err := pg.NewMigrate()
	if err != nil {
		log.Fatalf("Failed to create migrate instance: %v", err)
	}
	return m
}

func parseVersion(arg string) int {
	version, err := strconv.Atoi(arg)
	if err != nil || version < 0 {
		log.Fatalf("Invalid version %q: must be a non-negative integer", arg)
	}
	return version
}

func runUp(cmd *cobra.Command, args []string) {
	m := newMigrate()
	defer m.Close()

	err := m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Println("Events database: no migrations to apply")
	case err != nil:
		log.Fatalf("Migration up failed: %v", err)
	default:
		log.Println("Events database: migration up completed successfully")
	}

	matchStore, err := database.NewSQLite(&cfg.MatchStore)
	if err != nil {
		log.Fatalf("Failed to open matches database: %v", err)
	}
	defer matchStore.Close()

	if err := matchStore.RunMigrations(); err != nil {
		log.Fatalf("Matches migration up failed: %v", err)
	}
	log.Printf("Matches database: migration up completed successfully (%s)", cfg.MatchStore.Path)
}

func runDown(cmd *cobra.Command, args []string) {
	steps := 1
	if len(args) > 0 {
		steps = parseVersion(args[0])
	}

	m := newMigrate()
	defer m.Close()

	err := m.Steps(-steps)
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Println("No migrations to rollback")
	case err != nil:
		log.Fatalf("Migration down failed: %v", err)
	default:
		log.Printf("Migration down completed successfully (rolled back %d migration(s))", steps)
	}
}

func runGoto(cmd *cobra.Command, args []string) {
	version := parseVersion(args[0])

	m := newMigrate()
	defer m.Close()

	err := m.Migrate(uint(version))
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Printf("Already at version %d", version)
	case err != nil:
		log.Fatalf("Migration goto failed: %v", err)
	default:
		log.Printf("Migration goto %d completed successfully", version)
	}
}

func runVersion(cmd *cobra.Command, args []string) {
	m := newMigrate()
	defer m.Close()

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Println("Events database: no migrations applied yet")
	case err != nil:
		log.Fatalf("Failed to get version: %v", err)
	case dirty:
		log.Printf("Events database: version %d (dirty - migration may have failed)", version)
	default:
		log.Printf("Events database: version %d", version)
	}

	matchStore, err := database.NewSQLite(&cfg.MatchStore)
	if err != nil {
		log.Fatalf("Failed to open matches database: %v", err)
	}
	defer matchStore.Close()

	matchesVersion, err := database.SQLiteMigrationVersion(matchStore.WriteDB)
	if err != nil {
		log.Fatalf("Failed to get matches version: %v", err)
	}
	log.Printf("Matches database: version %d", matchesVersion)
}

func runForce(cmd *cobra.Command, args []string) {
	version := parseVersion(args[0])

	m := newMigrate()
	defer m.Close()

	if err := m.Force(version); err != nil {
		log.Fatalf("Migration force failed: %v", err)
	}

	log.Printf("Migration forced to version %d", version)
}
