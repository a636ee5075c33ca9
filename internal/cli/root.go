// Package cli implements the feedback-engine CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/feedback-engine/internal/config"
	"github.com/rcliao/feedback-engine/internal/engine"
	"github.com/rcliao/feedback-engine/internal/store"
)

var (
	dbPath     string
	tzFlag     string
	configFlag string
	formatFlag string

	cfg *config.Config
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "feedback-engine",
	Short: "Personalized health feedback from daily check-ins",
	Long:  "Record daily health check-ins and turn recent history into prioritized, rate-limited feedback messages. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $FEEDBACK_DB or ~/.feedback-engine/feedback.db)")
	RootCmd.PersistentFlags().StringVar(&tzFlag, "tz", "", "IANA time zone for calendar days (default: $FEEDBACK_TZ or local)")
	RootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "YAML file of engine tunables (default: $FEEDBACK_CONFIG)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func loadConfig() *config.Config {
	if cfg != nil {
		return cfg
	}
	c, err := config.Load(config.Overrides{DBPath: dbPath, TZ: tzFlag, ConfigFile: configFlag})
	if err != nil {
		exitErr("config", err)
	}
	cfg = c
	return cfg
}

func getDBPath() string {
	return loadConfig().DBPath
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func newLogger() *zap.Logger {
	l, err := loadConfig().Logger()
	if err != nil {
		exitErr("logger", err)
	}
	return l
}

func newEngine(s *store.SQLiteStore, logger *zap.Logger) *engine.Engine {
	c := loadConfig()
	e, err := engine.New(s, s, c.Engine,
		engine.WithLogger(logger),
		engine.WithLocation(c.Location))
	if err != nil {
		exitErr("engine", err)
	}
	return e
}

func timeNow() time.Time {
	return time.Now().In(loadConfig().Location)
}

// today is the current calendar day in the configured zone.
func today() time.Time {
	now := timeNow()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// parseDay reads YYYY-MM-DD in the configured zone; empty means today.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return today(), nil
	}
	return time.ParseInLocation("2006-01-02", s, loadConfig().Location)
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
