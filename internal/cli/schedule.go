package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/feedback-engine/internal/engine"
	"github.com/rcliao/feedback-engine/internal/scheduler"
)

func init() {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Evaluate every user on a cron schedule",
		Long:  "Run the engine for every user with health data on $FEEDBACK_SCHEDULE (default 21:00 daily). With --once, run a single pass and exit.",
		Run:   runSchedule,
	}

	cmd.Flags().Bool("once", false, "Run one pass now and exit")
	cmd.Flags().StringP("context", "c", "end_of_day", "Evaluation context recorded on messages: scheduled or end_of_day")
	cmd.Flags().Int("concurrency", scheduler.DefaultConcurrency, "Users evaluated at once")

	RootCmd.AddCommand(cmd)
}

func runSchedule(cmd *cobra.Command, args []string) {
	once, _ := cmd.Flags().GetBool("once")
	ctxFlag, _ := cmd.Flags().GetString("context")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	evalCtx, err := engine.ParseEvalContext(ctxFlag)
	if err != nil {
		exitErr("schedule", err)
	}

	c := loadConfig()
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	logger := newLogger()
	defer logger.Sync()

	sched, err := scheduler.New(c.Schedule, newEngine(s, logger), s, logger,
		scheduler.WithEvalContext(evalCtx),
		scheduler.WithTimeout(c.EvalTimeout),
		scheduler.WithConcurrency(concurrency),
		scheduler.WithLocation(c.Location))
	if err != nil {
		exitErr("schedule", err)
	}

	if once {
		sum, err := sched.RunOnce(cmd.Context(), evalCtx)
		if err != nil {
			exitErr("run", err)
		}
		printJSON(sum)
		return
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched.Start()
	<-ctx.Done()
	logger.Info("shutting down", zap.String("reason", ctx.Err().Error()))
	<-sched.Stop().Done()
}
