package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/blendsoftware/posadmin/console"
	"github.com/blendsoftware/posadmin/sdk"
)

var (
	configPath string
	devMode    bool
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start the administration console",
	Long: `Start the interactive terminal console.

The console will:
  - Load configuration from the specified file, .env, and environment
  - Connect to the backend with the configured token and company scope
  - Manage users and role assignments
  - Manage suppliers when a company scope is configured

The console owns the terminal, so structured logs go to the configured
log file rather than stdout.`,
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)

	consoleCmd.Flags().StringVarP(&configPath, "config", "c", console.DefaultConfigPath,
		"Path to console configuration file")
	consoleCmd.Flags().BoolVar(&devMode, "dev", false,
		"Enable development mode (verbose logging)")
}

func runConsole(cmd *cobra.Command, args []string) error {
	cfg, err := console.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := initLogger(cfg.LogFile, devMode)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("posadmin console starting",
		zap.String("version", Version),
		zap.String("commit", Commit),
		zap.String("config", configPath),
		zap.Int64("company_id", cfg.CompanyID))

	client, err := sdk.NewClient(sdk.ClientConfig{
		BaseURL:   cfg.APIBaseURL,
		CompanyID: cfg.CompanyID,
		Token:     cfg.Token,
	})
	if err != nil {
		logger.Error("Failed to create API client", zap.Error(err))
		return fmt.Errorf("failed to create API client: %w", err)
	}

	model := console.NewModel(cfg, client, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		logger.Error("Console error", zap.Error(err))
		return err
	}

	logger.Info("Console stopped")
	return nil
}

// initLogger builds a file-backed logger. The TUI owns stdout, so even
// development mode writes to the log file, just at debug level with a
// console encoder.
func initLogger(logFile string, devMode bool) (*zap.Logger, error) {
	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	})

	var encoder zapcore.Encoder
	level := zap.InfoLevel

	if devMode {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
		level = zap.DebugLevel
	} else {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, sink, level)
	return zap.New(core), nil
}
