package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/feedback-engine/internal/engine"
	"github.com/rcliao/feedback-engine/internal/model"
	"github.com/rcliao/feedback-engine/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "checkup",
		Short: "Record today's health check-up",
		Long:  "Update the day's entry with any of sleep, water, stress and weight. Only the flags given are changed.",
		Run:   runCheckup,
	}

	cmd.Flags().StringP("user", "u", "", "User ID (required)")
	cmd.Flags().String("date", "", "Day to update as YYYY-MM-DD (default: today)")
	cmd.Flags().Float64("sleep-hours", 0, "Hours slept")
	cmd.Flags().String("sleep-quality", "", "Sleep quality: poor, fair, good, excellent")
	cmd.Flags().String("bedtime", "", "Bedtime as HH:MM (after noon counts as the previous evening)")
	cmd.Flags().String("wake-time", "", "Wake time as HH:MM")
	cmd.Flags().Float64("water", 0, "Water consumed in ml")
	cmd.Flags().Float64("water-goal", 0, "Daily water goal in ml")
	cmd.Flags().Int("stress", 0, "Stress level 1-10")
	cmd.Flags().String("stress-source", "", "Stress source: work, personal, health, financial, other")
	cmd.Flags().String("stress-time", "", "When stress peaked: morning, afternoon, evening")
	cmd.Flags().String("stress-notes", "", "Free-form stress notes")
	cmd.Flags().Float64("weight", 0, "Weight in kg")
	cmd.Flags().Bool("evaluate", false, "Run a data_entry evaluation after saving")

	cmd.MarkFlagRequired("user")

	RootCmd.AddCommand(cmd)
}

func runCheckup(cmd *cobra.Command, args []string) {
	flags := cmd.Flags()
	user, _ := flags.GetString("user")
	dateStr, _ := flags.GetString("date")
	runEval, _ := flags.GetBool("evaluate")

	day, err := parseDay(dateStr)
	if err != nil {
		exitErr("parse date", err)
	}

	var u store.EntryUpdate
	if flags.Changed("sleep-hours") {
		v, _ := flags.GetFloat64("sleep-hours")
		u.SleepHours = &v
	}
	if q, _ := flags.GetString("sleep-quality"); q != "" {
		u.SleepQuality = model.SleepQuality(q)
	}
	if bt, _ := flags.GetString("bedtime"); bt != "" {
		t, err := clockOn(day, bt, true)
		if err != nil {
			exitErr("parse bedtime", err)
		}
		u.Bedtime = &t
	}
	if wt, _ := flags.GetString("wake-time"); wt != "" {
		t, err := clockOn(day, wt, false)
		if err != nil {
			exitErr("parse wake time", err)
		}
		u.WakeTime = &t
	}
	if flags.Changed("water") {
		v, _ := flags.GetFloat64("water")
		u.WaterAmount = &v
	}
	if flags.Changed("water-goal") {
		v, _ := flags.GetFloat64("water-goal")
		u.WaterGoal = &v
	}
	if flags.Changed("stress") {
		v, _ := flags.GetInt("stress")
		u.StressLevel = &v
	}
	u.StressSource, _ = flags.GetString("stress-source")
	u.StressTimeOfDay, _ = flags.GetString("stress-time")
	u.StressNotes, _ = flags.GetString("stress-notes")
	if flags.Changed("weight") {
		v, _ := flags.GetFloat64("weight")
		u.Weight = &v
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entry, err := s.UpdateEntry(cmd.Context(), user, day, u)
	if err != nil {
		exitErr("checkup", err)
	}

	out := map[string]any{"entry": entry}
	if runEval {
		logger := newLogger()
		defer logger.Sync()
		res, err := evaluate(cmd.Context(), s, logger, user, engine.ContextDataEntry)
		if err != nil {
			exitErr("evaluate", err)
		}
		out["feedback"] = res
	}
	printJSON(out)
}

// clockOn places an HH:MM time on day. With evening set, times from noon
// onward land on the previous day.
func clockOn(day time.Time, hhmm string, evening bool) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected HH:MM, got %q", hhmm)
	}
	d := day
	if evening && t.Hour() >= 12 {
		d = day.AddDate(0, 0, -1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, d.Location()), nil
}
