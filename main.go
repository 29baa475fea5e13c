package main

import (
	"Foodgram-Backend/cmd/config"
	migration "Foodgram-Backend/cmd/database/migrate"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/logging"
	"Foodgram-Backend/pkg/ingredient"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "foodgram",
	Short: "Foodgram recipe service",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.LoadConfigFile(configPath)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  serve,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE:  migrate,
}

var loadIngredientsCmd = &cobra.Command{
	Use:   "load-ingredients",
	Short: "Import ingredients from a JSON file",
	Long: `Reads a JSON array of {"name", "measurement_unit"} objects and inserts
the pairs that do not exist yet. Names and units are stored lower-cased.

Example:
  foodgram load-ingredients --file data/ingredients.json`,
	RunE: loadIngredients,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")
	loadIngredientsCmd.Flags().String("file", "data/ingredients.json", "ingredients JSON file")

	rootCmd.AddCommand(serveCmd, migrateCmd, loadIngredientsCmd)
}

func newLogger() *zap.Logger {
	logger, err := logging.New(utils.GetConfig("APP_ENV"))
	if err != nil {
		log.Fatalf("error building logger: %v", err)
	}
	return logger
}

func serve(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	db, err := config.ConnectDB()
	if err != nil {
		return err
	}

	app, err := config.NewApp(db, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		_ = app.Shutdown()
	}()

	addr := ":" + utils.GetConfig("APP_PORT")
	logger.Info("starting server", zap.String("addr", addr))
	return app.Listen(addr)
}

func migrate(cmd *cobra.Command, args []string) error {
	db, err := config.ConnectDB()
	if err != nil {
		return err
	}
	if err := migration.Migrate(db); err != nil {
		return err
	}
	newLogger().Info("database migration complete")
	return nil
}

func loadIngredients(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("file")
	if err != nil {
		return err
	}

	logger := newLogger()
	defer logger.Sync()

	db, err := config.ConnectDB()
	if err != nil {
		return err
	}

	svc := ingredient.NewIngredientService(ingredient.NewIngredientRepository(db), logger)
	created, err := svc.LoadFromFile(cmd.Context(), path)
	if err != nil {
		return err
	}
	cmd.Printf("loaded %d new ingredients from %s\n", created, path)
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
