package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/libris/internal/config"
	"github.com/rshade/libris/internal/logging"
)

// debugLogFile is the log file used by --debug in interactive mode.
const debugLogFile = "libris.log"

// setupLogging configures logging from the loaded config and CLI flags, and
// stores the logger and a trace ID in the command context.
func setupLogging(cmd *cobra.Command) logging.LogPathResult {
	cfg := config.GetGlobalConfig()
	loggingCfg := cfg.Logging

	debug, _ := cmd.Flags().GetBool("debug")
	interactive := isInteractive(cmd)

	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		if !interactive {
			loggingCfg.File = ""
		}
	}

	logCfg := loggingCfg.ToLoggingConfig()
	if interactive && logCfg.Output == logging.OutputStderr {
		// Anything written to the terminal would corrupt the TUI.
		if debug {
			if dir, err := config.GetConfigDir(); err == nil {
				logCfg.Output = logging.OutputFile
				logCfg.File = filepath.Join(dir, debugLogFile)
			}
		}
		if logCfg.Output == logging.OutputStderr {
			logCfg.Output = logging.OutputDiscard
		}
	}

	if logCfg.Output == logging.OutputFile {
		probe := *cfg
		probe.Logging.File = logCfg.File
		if err := config.EnsureLogDir(&probe); err != nil {
			cmd.PrintErrf("Warning: could not create log directory: %v\n", err)
		}
	}

	result := logging.NewLoggerWithPath(logCfg)
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile && !interactive {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Str(logging.TraceIDField, traceID).Msg("command started")

	return result
}

// cleanupLogging closes the log file handle.
func cleanupLogging(_ *cobra.Command, logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
