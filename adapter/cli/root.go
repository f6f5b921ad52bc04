package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
	"github.com/felixgeelhaar/recruita/pkg/observability"
)

var (
	verbose bool
	logger  *slog.Logger
)

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "recruita",
	Short: "Recruita - interview scheduling and resource booking",
	Long: `Recruita schedules interviews for job applications, books the rooms
and equipment they need without double-booking, and collects
interviewer feedback.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		info := commandContext{
			correlationID: uuid.New(),
			startedAt:     time.Now(),
		}
		ctx := context.WithValue(cmd.Context(), commandContextKey{}, info)
		ctx = observability.WithCorrelationID(ctx, info.correlationID.String())
		if app != nil && app.ActorID != uuid.Nil {
			ctx = observability.WithActorID(ctx, app.ActorID.String())
		}
		cmd.SetContext(ctx)
		logger.Debug("command start",
			"command", cmd.CommandPath(),
			"correlation_id", info.correlationID.String(),
		)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		if app != nil && app.DrainEvents != nil {
			if err := app.DrainEvents(cmd.Context()); err != nil {
				logger.Warn("events left in the outbox", "error", err)
			}
		}
		info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		logger.Debug("command end",
			"command", cmd.CommandPath(),
			"correlation_id", info.correlationID.String(),
			"duration_ms", time.Since(info.startedAt).Milliseconds(),
		)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitCode(err))
	}
}

// ExitCode maps an error's kind to a process exit status.
func ExitCode(err error) int {
	kind, ok := sharedDomain.KindOf(err)
	if !ok {
		return 1
	}
	switch kind {
	case sharedDomain.KindValidation:
		return 2
	case sharedDomain.KindNotFound:
		return 3
	case sharedDomain.KindResourceConflict:
		return 4
	case sharedDomain.KindInvalidTransition:
		return 5
	default:
		return 1
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// Verbose reports whether --verbose was given.
func Verbose() bool {
	return verbose
}
