package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/cytsaiap-xyz/opencode-evals/internal/adapter"
	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "evalcheck"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName      = "output"
	noSaveFlagName      = "no-save"
	excludeFlagName     = "exclude"
	runParallelFlagName = "parallel"
	baselineFlagName    = "baseline"
	verboseFlagName     = "verbose"
	logFileFlagName     = "log-file"

	runParallelConfigKey    = "run.parallel"
	commandTimeoutConfigKey = "run.command_timeout"
	excludeConfigKey        = "paths.exclude"
	scenarioFileConfigKey   = "scenario.file"
	discoveryExtensionsKey  = "discovery.extensions"
	discoveryIgnoreDirsKey  = "discovery.ignore_dirs"
	discoveryIgnoreFilesKey = "discovery.ignore_files"

	defaultCommandTimeout = adapter.DefaultCommandTimeout

	defaultReportsDir  = ".evalcheck-reports"
	defaultNoSave      = false
	defaultRunParallel = 4

	envPrefix = "EVALCHECK"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".evalcheck.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var (
	globalLogger *slog.Logger
	configErr    error
)

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(noSaveFlagName, defaultNoSave)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(commandTimeoutConfigKey, int64(defaultCommandTimeout.Seconds()))
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(scenarioFileConfigKey, adapter.DefaultScenarioFile)
	viper.SetDefault(discoveryExtensionsKey, m.DefaultExtensions)
	viper.SetDefault(discoveryIgnoreDirsKey, m.DefaultIgnoredDirs)
	viper.SetDefault(discoveryIgnoreFilesKey, m.DefaultIgnoredFiles)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	configErr = readConfig()
}

// readConfig loads evalcheck.yaml. A missing file is fine; anything else
// is kept for the root command to report.
func readConfig() error {
	err := viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("read config %s: %w", viper.ConfigFileUsed(), err)
}

// commandTimeout reads run.command_timeout, given in seconds.
func commandTimeout() time.Duration {
	seconds := viper.GetInt64(commandTimeoutConfigKey)
	if seconds <= 0 {
		return defaultCommandTimeout
	}

	return time.Duration(seconds) * time.Second
}

// discoverySpec collects the operator-level discovery overrides.
func discoverySpec() m.DiscoverySpec {
	return m.DiscoverySpec{
		Extensions:  viper.GetStringSlice(discoveryExtensionsKey),
		IgnoreDirs:  viper.GetStringSlice(discoveryIgnoreDirsKey),
		IgnoreFiles: viper.GetStringSlice(discoveryIgnoreFilesKey),
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
