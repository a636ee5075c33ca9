package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/feedback-engine/internal/engine"
	"github.com/rcliao/feedback-engine/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate every trigger for a user",
		Long:  "Run all category evaluators over the user's recent history and persist the messages the display policy admits.",
		Run:   runEvaluate,
	}

	cmd.Flags().StringP("user", "u", "", "User ID (required)")
	cmd.Flags().StringP("context", "c", "manual", "Evaluation context: manual, scheduled, data_entry, end_of_day")

	cmd.MarkFlagRequired("user")

	RootCmd.AddCommand(cmd)
}

func runEvaluate(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")
	ctxFlag, _ := cmd.Flags().GetString("context")

	evalCtx, err := engine.ParseEvalContext(ctxFlag)
	if err != nil {
		exitErr("evaluate", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	logger := newLogger()
	defer logger.Sync()

	res, err := evaluate(cmd.Context(), s, logger, user, evalCtx)
	if err != nil {
		exitErr("evaluate", err)
	}
	printJSON(res)
}

// evaluate runs one engine pass bounded by the configured timeout.
func evaluate(ctx context.Context, s *store.SQLiteStore, logger *zap.Logger, user string, evalCtx engine.EvalContext) (*engine.Result, error) {
	if timeout := loadConfig().EvalTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return newEngine(s, logger).EvaluateAllTriggers(ctx, user, evalCtx)
}
