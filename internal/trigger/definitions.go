package trigger

import "github.com/rcliao/feedback-engine/internal/model"

// Trigger ids. These are persisted on every message and must never change.
const (
	SleepChronicDeprivation = "sleep_chronic_deprivation"
	SleepExcellentStreak    = "sleep_excellent_streak"
	SleepIrregularPattern   = "sleep_irregular_pattern"
	SleepOversleeping       = "sleep_oversleeping"
	SleepImprovingTrend     = "sleep_improving_trend"
	SleepWeekendCatchUp     = "sleep_weekend_catch_up"
	SleepLowQuality         = "sleep_low_quality"
	SleepQualityImprovement = "sleep_quality_improvement"

	HydrationConsistentDehydration = "hydration_consistent_dehydration"
	HydrationChampion              = "hydration_champion"
	HydrationAfternoonDip          = "hydration_afternoon_dip"
	HydrationPreBedtime            = "hydration_pre_bedtime"
	HydrationComeback              = "hydration_comeback"
	HydrationWeekendDrop           = "hydration_weekend_drop"
	HydrationWeatherAlert          = "hydration_weather_alert"

	StressEscalating    = "stress_escalating"
	StressChronicHigh   = "stress_chronic_high"
	StressFreeWeek      = "stress_free_week"
	StressMondaySpike   = "stress_monday_spike"
	StressImprovement   = "stress_improvement"
	StressSourcePattern = "stress_source_pattern"
	StressEvening       = "stress_evening_pattern"

	WeightHealthyLoss        = "weight_healthy_loss"
	WeightRapidLoss          = "weight_rapid_loss"
	WeightRapidGain          = "weight_rapid_gain"
	WeightGoalAchieved       = "weight_goal_achieved"
	WeightPlateau            = "weight_plateau"
	WeightWeekendFluctuation = "weight_weekend_fluctuation"
	WeightConsistentTracking = "weight_consistent_tracking"

	CorrelationSleepStress     = "correlation_sleep_stress"
	CorrelationHydrationStress = "correlation_hydration_stress"
	CorrelationGoodCombo       = "correlation_good_combo"
	CorrelationWeekendRecovery = "correlation_weekend_recovery"
	CorrelationHydrationSleep  = "correlation_hydration_sleep"
	CorrelationWeightSleep     = "correlation_weight_sleep"

	BehavioralMorningMissed          = "behavioral_morning_missed"
	BehavioralStreakRisk             = "behavioral_streak_risk"
	BehavioralMilestone              = "behavioral_milestone"
	BehavioralEveningWindDown        = "behavioral_evening_wind_down"
	BehavioralWeekendForgot          = "behavioral_weekend_forgot"
	BehavioralMonthlyReview          = "behavioral_monthly_review"
	BehavioralImprovementOpportunity = "behavioral_improvement_opportunity"

	AchievementPerfectDay     = "achievement_perfect_day"
	AchievementPerfectWeek    = "achievement_perfect_week"
	AchievementEarlyBird      = "achievement_early_bird"
	AchievementHydrationHero  = "achievement_hydration_hero"
	AchievementStressWarrior  = "achievement_stress_warrior"
	AchievementComeback       = "achievement_comeback"
	AchievementDataEnthusiast = "achievement_data_enthusiast"

	WarningMultipleRedFlags = "warning_multiple_red_flags"
	WarningDecliningMetrics = "warning_declining_metrics"
	WarningMissedLogging    = "warning_missed_logging"

	ContextualHoliday = "contextual_holiday"
	ContextualNewYear = "contextual_new_year"
	ContextualDST     = "contextual_dst"
	ContextualRainy   = "contextual_rainy"
)

func navigate(label, screen string) *model.Action {
	return &model.Action{Type: model.ActionNavigate, Label: label, Screen: screen}
}

func logAction(label, screen string) *model.Action {
	return &model.Action{Type: model.ActionLog, Label: label, Screen: screen}
}

func share(label, screen string) *model.Action {
	return &model.Action{Type: model.ActionShare, Label: label, Screen: screen}
}

// catalog is ordered by category then by declaration order within it.
var catalog = []Definition{
	// sleep
	{
		ID:            SleepChronicDeprivation,
		Category:      model.CategorySleep,
		Key:           "chronic_deprivation",
		Priority:      10,
		Title:         "Sleep Alert",
		Template:      "You've slept less than 6 hours on {count}+ days this week. Chronic sleep deprivation affects your health, mood, and productivity. Let's work on improving your sleep schedule.",
		Action:        navigate("Sleep Tips", "SleepTips"),
		CooldownHours: 48,
	},
	{
		ID:            SleepExcellentStreak,
		Category:      model.CategorySleep,
		Key:           "excellent_streak",
		Priority:      6,
		Title:         "Perfect Sleep Week! 🌟",
		Template:      "Perfect sleep week! You've maintained 7-9 hours for 7 days straight. Your body thanks you!",
		Action:        navigate("View Sleep Stats", "SleepStats"),
		CooldownHours: 168,
	},
	{
		ID:            SleepIrregularPattern,
		Category:      model.CategorySleep,
		Key:           "irregular_pattern",
		Priority:      7,
		Title:         "Irregular Sleep Pattern",
		Template:      "Your sleep schedule has been inconsistent this week (±{stdDev} hours variance). Try going to bed at the same time each night to establish a healthy rhythm.",
		Action:        navigate("Set Sleep Schedule", "SleepSchedule"),
		CooldownHours: 72,
	},
	{
		ID:            SleepOversleeping,
		Category:      model.CategorySleep,
		Key:           "oversleeping_pattern",
		Priority:      8,
		Title:         "Oversleeping Pattern",
		Template:      "You've slept over 10 hours for {count} days in a row. While rest is important, excessive sleep can indicate underlying issues. Consider checking in with how you're feeling.",
		Action:        logAction("Log Mood", "MoodCheckin"),
		CooldownHours: 72,
	},
	{
		ID:            SleepImprovingTrend,
		Category:      model.CategorySleep,
		Key:           "improving_trend",
		Priority:      5,
		Title:         "Sleep Improvement! 📈",
		Template:      "Great progress! You're sleeping an average of {change}+ hours more this week compared to last week. Keep it up!",
		CooldownHours: 168,
	},
	{
		ID:            SleepWeekendCatchUp,
		Category:      model.CategorySleep,
		Key:           "weekend_catch_up",
		Priority:      7,
		Title:         "Weekend Sleep Catch-up",
		Template:      "You're catching up on sleep this weekend ({extraHours} hours more than weekday average). While helpful, try to maintain consistent sleep hours throughout the week for better overall health.",
		Action:        navigate("Optimize Schedule", "SleepSchedule"),
		CooldownHours: 168,
	},
	{
		ID:            SleepLowQuality,
		Category:      model.CategorySleep,
		Key:           "low_quality_despite_duration",
		Priority:      8,
		Title:         "Low Sleep Quality",
		Template:      "You're getting enough sleep hours, but your sleep quality has been low for {count} days. Consider factors like room temperature, noise, screen time before bed, or caffeine intake.",
		Action:        navigate("Sleep Environment Tips", "SleepTips"),
		CooldownHours: 72,
	},
	{
		ID:            SleepQualityImprovement,
		Category:      model.CategorySleep,
		Key:           "quality_improvement",
		Priority:      5,
		Title:         "Sleep Quality Improved! ✨",
		Template:      "Your sleep quality has improved significantly this week! Whatever you're doing is working.",
		CooldownHours: 168,
	},

	// hydration
	{
		ID:            HydrationConsistentDehydration,
		Category:      model.CategoryHydration,
		Key:           "consistent_dehydration",
		Priority:      9,
		Title:         "Hydration Alert",
		Template:      "You've been under 60% of your water goal for most of this week ({count}/5 days). Dehydration affects energy, focus, and skin health. Let's turn this around!",
		Action:        navigate("Set Reminders", "WaterReminders"),
		CooldownHours: 48,
	},
	{
		ID:            HydrationChampion,
		Category:      model.CategoryHydration,
		Key:           "champion",
		Priority:      5,
		Title:         "Hydration Champion! 💧",
		Template:      "Hydration Champion! You've met your water goal {count}+ days this month. Outstanding consistency!",
		Action:        share("Share Achievement", "ShareAchievement"),
		CooldownHours: 720,
	},
	{
		ID:            HydrationAfternoonDip,
		Category:      model.CategoryHydration,
		Key:           "afternoon_dip",
		Priority:      7,
		Title:         "Afternoon Hydration Check",
		Template:      "It's afternoon and you're at {percentage}% of your water goal. Afternoon dehydration can cause energy crashes. Time for a water break!",
		Action:        logAction("Log Water Now", "WaterLog"),
		CooldownHours: 24,
	},
	{
		ID:            HydrationPreBedtime,
		Category:      model.CategoryHydration,
		Key:           "pre_bedtime_overhydration",
		Priority:      6,
		Title:         "Late Night Hydration",
		Template:      "You've had a lot of water ({amount}ml) in the last hour before bed. This might disrupt your sleep. Try to front-load hydration earlier in the day.",
		CooldownHours: 24,
	},
	{
		ID:            HydrationComeback,
		Category:      model.CategoryHydration,
		Key:           "comeback",
		Priority:      5,
		Title:         "Hydration Comeback! 💪",
		Template:      "What a comeback! You went from {yesterdayPercent}% yesterday to hitting your goal today. Way to bounce back!",
		CooldownHours: 48,
	},
	{
		ID:            HydrationWeekendDrop,
		Category:      model.CategoryHydration,
		Key:           "weekend_drop",
		Priority:      7,
		Title:         "Weekend Hydration Drop",
		Template:      "Your water intake drops on weekends ({weekendPercent}% of weekday average). Different routines can disrupt healthy habits. Set weekend-specific reminders to stay on track.",
		Action:        navigate("Weekend Reminders", "WaterReminders"),
		CooldownHours: 168,
	},
	{
		ID:            HydrationWeatherAlert,
		Category:      model.CategoryHydration,
		Key:           "weather_based",
		Priority:      8,
		Title:         "Hot Weather Alert",
		Template:      "It's hot outside and you're behind on hydration ({percentage}% of goal). Your body needs extra water in hot weather to stay healthy and energized.",
		Action:        navigate("Increase Goal", "WaterGoal"),
		CooldownHours: 24,
	},

	// stress
	{
		ID:            StressEscalating,
		Category:      model.CategoryStress,
		Key:           "escalating",
		Priority:      10,
		Title:         "Rising Stress Levels",
		Template:      "Your stress levels have been climbing for {count} days straight. This pattern needs attention. Consider stress-relief activities or talking to someone.",
		Action:        navigate("Stress Relief Exercises", "StressRelief"),
		CooldownHours: 72,
	},
	{
		ID:            StressChronicHigh,
		Category:      model.CategoryStress,
		Key:           "chronic_high",
		Priority:      10,
		Title:         "High Stress Alert",
		Template:      "You've reported high stress (7+) for {count} out of 7 days. Chronic stress affects your health. Please consider reaching out to a healthcare professional or counselor.",
		Action:        navigate("Mental Health Resources", "MentalHealthResources"),
		CooldownHours: 168,
	},
	{
		ID:            StressFreeWeek,
		Category:      model.CategoryStress,
		Key:           "stress_free_week",
		Priority:      4,
		Title:         "Peaceful Week! 🧘",
		Template:      "Peaceful week! Your average stress level has been {average}. Enjoy this calm period and note what's contributing to it.",
		Action:        navigate("Journal About It", "Journal"),
		CooldownHours: 168,
	},
	{
		ID:            StressMondaySpike,
		Category:      model.CategoryStress,
		Key:           "monday_spike",
		Priority:      7,
		Title:         "Monday Stress Spike",
		Template:      "Monday stress spike detected (+{increase} points from weekend). The transition back to work can be tough. Try planning something enjoyable for Monday evenings to balance it out.",
		Action:        navigate("Self-Care Ideas", "SelfCare"),
		CooldownHours: 168,
	},
	{
		ID:            StressImprovement,
		Category:      model.CategoryStress,
		Key:           "improvement",
		Priority:      5,
		Title:         "Stress Levels Improved! 📉",
		Template:      "Fantastic progress! Your stress levels have dropped from {previous} to {current} this week. You're managing stress better—keep using what's working!",
		CooldownHours: 168,
	},
	{
		ID:            StressSourcePattern,
		Category:      model.CategoryStress,
		Key:           "source_pattern",
		Priority:      8,
		Title:         "Recurring Stress Source",
		Template:      "{source} has been your primary stress source for most of the past 10 days. Consider work-life balance strategies or discussing workload with your manager.",
		Action:        navigate("Work-Life Balance Tips", "WorkLifeBalance"),
		CooldownHours: 168,
	},
	{
		ID:            StressEvening,
		Category:      model.CategoryStress,
		Key:           "evening_pattern",
		Priority:      7,
		Title:         "Evening Stress Pattern",
		Template:      "Your stress levels are consistently high in the evenings ({count}/7 days). Try incorporating a wind-down routine: meditation, light reading, or a relaxing hobby.",
		Action:        navigate("Evening Routine Ideas", "EveningRoutine"),
		CooldownHours: 168,
	},

	// weight
	{
		ID:            WeightHealthyLoss,
		Category:      model.CategoryWeight,
		Key:           "healthy_loss",
		Priority:      5,
		Title:         "Healthy Progress! ⚖️",
		Template:      "Healthy weight loss progress! You've lost {amount} at a sustainable pace this month. Keep up the balanced approach!",
		Action:        navigate("View Progress", "WeightProgress"),
		CooldownHours: 720,
	},
	{
		ID:            WeightRapidLoss,
		Category:      model.CategoryWeight,
		Key:           "rapid_loss",
		Priority:      9,
		Title:         "Rapid Weight Loss Warning",
		Template:      "You're losing weight very quickly (>{rate} lbs/week for 2+ weeks). Rapid weight loss can be unhealthy. Consider consulting a healthcare provider or nutritionist.",
		Action:        navigate("Health Resources", "HealthResources"),
		CooldownHours: 168,
	},
	{
		ID:            WeightRapidGain,
		Category:      model.CategoryWeight,
		Key:           "rapid_gain",
		Priority:      9,
		Title:         "Rapid Weight Gain",
		Template:      "Your weight has increased by {amount} lbs this week. Sudden weight gain can indicate water retention or other health issues. Consider checking in with a doctor if this continues.",
		Action:        navigate("Learn More", "WeightInfo"),
		CooldownHours: 168,
	},
	{
		ID:            WeightGoalAchieved,
		Category:      model.CategoryWeight,
		Key:           "goal_achieved",
		Priority:      6,
		Title:         "Goal Weight Reached! 🎉",
		Template:      "Congratulations! You've reached your target weight! Now focus on maintaining your healthy habits.",
		Action:        navigate("Set Maintenance Plan", "WeightMaintenance"),
		CooldownHours: 720,
	},
	{
		ID:            WeightPlateau,
		Category:      model.CategoryWeight,
		Key:           "plateau",
		Priority:      6,
		Title:         "Weight Plateau",
		Template:      "Your weight has plateaued for 3 weeks. Plateaus are normal! Consider adjusting your routine, varying exercises, or reviewing your nutrition.",
		Action:        navigate("Plateau Breakers", "PlateauTips"),
		CooldownHours: 504,
	},
	{
		ID:            WeightWeekendFluctuation,
		Category:      model.CategoryWeight,
		Key:           "weekend_fluctuation",
		Priority:      7,
		Title:         "Weekend Weight Pattern",
		Template:      "Pattern detected: Your weight tends to increase on weekends (avg +{amount} lbs). This is common! Focus on mindful eating and staying active during weekends.",
		Action:        navigate("Weekend Tips", "WeekendTips"),
		CooldownHours: 672,
	},
	{
		ID:            WeightConsistentTracking,
		Category:      model.CategoryWeight,
		Key:           "consistent_tracking",
		Priority:      4,
		Title:         "Tracking Star! ⭐",
		Template:      "Excellent tracking! You've logged your weight {count}+ days this month. Consistent tracking is key to reaching your goals.",
		CooldownHours: 720,
	},

	// correlation
	{
		ID:            CorrelationSleepStress,
		Category:      model.CategoryCorrelation,
		Key:           "poor_sleep_high_stress",
		Priority:      9,
		Title:         "Sleep-Stress Connection",
		Template:      "Pattern identified: Poor sleep correlates with high stress in your data ({count}/5 days). Prioritizing sleep might help reduce your stress levels.",
		Action:        navigate("Sleep-Stress Connection", "SleepStressInfo"),
		CooldownHours: 168,
	},
	{
		ID:            CorrelationHydrationStress,
		Category:      model.CategoryCorrelation,
		Key:           "dehydration_stress_link",
		Priority:      7,
		Title:         "Hydration-Stress Link",
		Template:      "Interesting pattern: You tend to be dehydrated on high-stress days. Dehydration can amplify stress symptoms. Stay hydrated even when busy!",
		Action:        navigate("Hydration Benefits", "HydrationInfo"),
		CooldownHours: 168,
	},
	{
		ID:            CorrelationGoodCombo,
		Category:      model.CategoryCorrelation,
		Key:           "good_sleep_low_stress",
		Priority:      5,
		Title:         "Winning Combination! 🏆",
		Template:      "Positive correlation: Your good sleep is matching with low stress levels for {count}+ days. You've found a winning combination!",
		CooldownHours: 168,
	},
	{
		ID:            CorrelationWeekendRecovery,
		Category:      model.CategoryCorrelation,
		Key:           "weekend_recovery_pattern",
		Priority:      7,
		Title:         "Weekend Recovery Pattern",
		Template:      "Pattern: You're recovering on weekends with extra sleep and lower stress, but weekdays are tough (avg stress: {weekdayStress}). Consider ways to reduce weekday stress before it accumulates.",
		Action:        navigate("Weekday Wellness", "WeekdayWellness"),
		CooldownHours: 168,
	},
	{
		ID:            CorrelationHydrationSleep,
		Category:      model.CategoryCorrelation,
		Key:           "hydration_sleep_quality",
		Priority:      6,
		Title:         "Hydration Helps Sleep! 💤",
		Template:      "Insight: Your sleep quality tends to be better on days you meet your water goal ({count}/10 days). Keep up the hydration for better rest!",
		CooldownHours: 336,
	},
	{
		ID:            CorrelationWeightSleep,
		Category:      model.CategoryCorrelation,
		Key:           "weight_sleep_correlation",
		Priority:      6,
		Title:         "Sleep Affects Weight",
		Template:      "Data insight: Your weight management improves when you sleep well. Sleep affects metabolism and hunger hormones—keep prioritizing rest!",
		Action:        navigate("Sleep & Weight Info", "SleepWeightInfo"),
		CooldownHours: 720,
	},

	// behavioral
	{
		ID:            BehavioralMorningMissed,
		Category:      model.CategoryBehavioral,
		Key:           "morning_missed_logging",
		Priority:      5,
		Title:         "Good Afternoon! 👋",
		Template:      "Good afternoon! You haven't logged your health data today. Quick check-in?",
		Action:        logAction("Log Now", "HealthCheckup"),
		CooldownHours: 24,
	},
	{
		ID:            BehavioralStreakRisk,
		Category:      model.CategoryBehavioral,
		Key:           "streak_risk",
		Priority:      8,
		Title:         "Streak at Risk! 🔥",
		Template:      "Don't break your {count}-day streak! Log your health data before bed to keep it going.",
		Action:        logAction("Quick Log", "HealthCheckup"),
		CooldownHours: 24,
	},
	{
		ID:            BehavioralMilestone,
		Category:      model.CategoryBehavioral,
		Key:           "milestone_streak",
		Priority:      6,
		Title:         "Milestone Achieved! 🎊",
		Template:      "Amazing! {count}-day logging streak! Your consistency is building lasting healthy habits.",
		Action:        share("Share Achievement", "ShareAchievement"),
		CooldownHours: 168,
	},
	{
		ID:            BehavioralEveningWindDown,
		Category:      model.CategoryBehavioral,
		Key:           "evening_wind_down",
		Priority:      7,
		Title:         "Wind-Down Time 🌙",
		Template:      "You had a stressful day (stress level: {level}). It's wind-down time! Try a relaxing activity before bed to help you sleep better.",
		Action:        navigate("Relaxation Exercises", "RelaxationExercises"),
		CooldownHours: 24,
	},
	{
		ID:            BehavioralWeekendForgot,
		Category:      model.CategoryBehavioral,
		Key:           "forgot_weekend_logging",
		Priority:      6,
		Title:         "Weekend Check-in! 📅",
		Template:      "Weekend wellness check! Don't forget to track your health even on days off. Consistency is key!",
		Action:        logAction("Log Weekend Data", "HealthCheckup"),
		CooldownHours: 48,
	},
	{
		ID:            BehavioralMonthlyReview,
		Category:      model.CategoryBehavioral,
		Key:           "monthly_review",
		Priority:      5,
		Title:         "Month-End Review 📊",
		Template:      "Month ending! Take a moment to review your progress and set intentions for next month.",
		Action:        navigate("Monthly Review", "MonthlyReview"),
		CooldownHours: 720,
	},
	{
		ID:            BehavioralImprovementOpportunity,
		Category:      model.CategoryBehavioral,
		Key:           "improvement_opportunity",
		Priority:      6,
		Title:         "Room for Improvement",
		Template:      "You're great at tracking ({trackingDays}+ days), but goal completion has been {completionRate}%. Let's adjust your goals to be more realistic and achievable.",
		Action:        navigate("Adjust Goals", "GoalSettings"),
		CooldownHours: 720,
	},

	// achievement
	{
		ID:            AchievementPerfectDay,
		Category:      model.CategoryAchievement,
		Key:           "perfect_day",
		Priority:      5,
		Title:         "PERFECT DAY! 🌟",
		Template:      "PERFECT DAY! You hit all your health targets today. This is what we're working toward!",
		Action:        share("Celebrate", "Celebration"),
		CooldownHours: 24,
	},
	{
		ID:            AchievementPerfectWeek,
		Category:      model.CategoryAchievement,
		Key:           "perfect_week",
		Priority:      6,
		Title:         "PERFECT WEEK! 🏆",
		Template:      "PERFECT WEEK UNLOCKED! You've maintained excellent health habits for 7 days straight. You're unstoppable!",
		Action:        share("Claim Badge", "Badges"),
		CooldownHours: 168,
	},
	{
		ID:            AchievementEarlyBird,
		Category:      model.CategoryAchievement,
		Key:           "early_bird",
		Priority:      4,
		Title:         "Early Bird Badge! 🐦",
		Template:      "Early Bird Badge Earned! You've woken up between 5-7 AM for {count} out of 10 days.",
		Action:        navigate("View Badges", "Badges"),
		CooldownHours: 240,
	},
	{
		ID:            AchievementHydrationHero,
		Category:      model.CategoryAchievement,
		Key:           "hydration_hero",
		Priority:      5,
		Title:         "HYDRATION HERO! 💧",
		Template:      "HYDRATION HERO! You've met your water goal {count}+ times in the past 90 days. Elite level consistency!",
		Action:        share("Claim Badge", "Badges"),
		CooldownHours: 2160,
	},
	{
		ID:            AchievementStressWarrior,
		Category:      model.CategoryAchievement,
		Key:           "stress_warrior",
		Priority:      5,
		Title:         "Stress Warrior! 🧘",
		Template:      "Stress Warrior Achievement! Your average stress level has been under 3.5 for the entire month. Exceptional mental wellness!",
		Action:        share("Claim Badge", "Badges"),
		CooldownHours: 720,
	},
	{
		ID:            AchievementComeback,
		Category:      model.CategoryAchievement,
		Key:           "comeback_champion",
		Priority:      6,
		Title:         "COMEBACK CHAMPION! 💪",
		Template:      "COMEBACK CHAMPION! You turned things around dramatically this week (health score: {previousScore}→{currentScore}). This shows real resilience and commitment!",
		Action:        share("Claim Badge", "Badges"),
		CooldownHours: 168,
	},
	{
		ID:            AchievementDataEnthusiast,
		Category:      model.CategoryAchievement,
		Key:           "data_enthusiast",
		Priority:      4,
		Title:         "Data Enthusiast! 📊",
		Template:      "Data Enthusiast Badge! You've logged complete health data {count}+ days this month. Your detailed tracking enables better insights!",
		Action:        navigate("Advanced Analytics", "AdvancedAnalytics"),
		CooldownHours: 720,
	},

	// warning
	{
		ID:            WarningMultipleRedFlags,
		Category:      model.CategoryWarning,
		Key:           "multiple_red_flags",
		Priority:      10,
		Title:         "⚠️ Health Alert",
		Template:      "Health Alert: Multiple concerning patterns detected this week (poor sleep, high stress, low hydration). Your wellbeing needs attention. Please consider reaching out to a healthcare professional.",
		Action:        navigate("Health Resources", "HealthResources"),
		CooldownHours: 168,
	},
	{
		ID:            WarningDecliningMetrics,
		Category:      model.CategoryWarning,
		Key:           "declining_all_metrics",
		Priority:      9,
		Title:         "All Metrics Declining",
		Template:      "All metrics are declining this week compared to last week (sleep ↓{sleepChange}, stress ↑{stressChange}, hydration ↓{hydrationChange}). Something's affecting your overall wellness. Time to check in with yourself or someone you trust.",
		Action:        navigate("Self-Care Plan", "SelfCarePlan"),
		CooldownHours: 168,
	},
	{
		ID:            WarningMissedLogging,
		Category:      model.CategoryWarning,
		Key:           "missed_logging_concern",
		Priority:      7,
		Title:         "We Miss You! 💙",
		Template:      "We haven't seen you in {days} days. After such a great {streakCount}+ day streak, we hope everything's okay. Your health journey matters—come back when you're ready.",
		Action:        logAction("Quick Check-In", "HealthCheckup"),
		CooldownHours: 168,
	},

	// contextual
	{
		ID:            ContextualHoliday,
		Category:      model.CategoryContextual,
		Key:           "holiday_season",
		Priority:      5,
		Title:         "Holiday Season Tip 🎄",
		Template:      "Holiday season tip: It's easy to let health habits slip during celebrations. Small consistent actions can help you stay balanced!",
		Action:        navigate("Holiday Wellness Tips", "HolidayTips"),
		CooldownHours: 168,
	},
	{
		ID:            ContextualNewYear,
		Category:      model.CategoryContextual,
		Key:           "new_year_momentum",
		Priority:      5,
		Title:         "Strong New Year Start! 🎉",
		Template:      "Strong New Year start! You've been consistent for {count}+ days. You're building sustainable habits, not just resolutions!",
		CooldownHours: 336,
	},
	{
		ID:            ContextualDST,
		Category:      model.CategoryContextual,
		Key:           "daylight_savings",
		Priority:      7,
		Title:         "Daylight Saving Adjustment",
		Template:      "Daylight Saving Time can disrupt sleep. Your sleep quality has dipped. Give yourself a few days to adjust and prioritize rest.",
		Action:        navigate("DST Sleep Tips", "DSTTips"),
		CooldownHours: 168,
	},
	{
		ID:            ContextualRainy,
		Category:      model.CategoryContextual,
		Key:           "rainy_day",
		Priority:      6,
		Title:         "Rainy Day Blues",
		Template:      "Extended rainy weather can affect mood and stress. Try indoor activities, bright lighting, or connecting with friends to boost your spirits.",
		Action:        navigate("Indoor Wellness Ideas", "IndoorWellness"),
		CooldownHours: 72,
	},
}
