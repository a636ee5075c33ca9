package trigger

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/feedback-engine/internal/model"
)

func TestCatalogValid(t *testing.T) {
	require.NoError(t, Validate())
}

func TestCatalogSummaryGolden(t *testing.T) {
	var b strings.Builder
	for _, d := range All() {
		fmt.Fprintf(&b, "%-12s %-36s p=%-2d cd=%-4d %s\n",
			d.Category, d.ID, d.Priority, d.CooldownHours, strings.Join(d.Placeholders(), ","))
	}
	counts := Counts()
	for _, c := range model.Categories {
		fmt.Fprintf(&b, "%s=%d\n", c, counts[c])
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "catalog_summary", []byte(b.String()))
}

func TestCounts(t *testing.T) {
	counts := Counts()
	assert.Equal(t, map[model.Category]int{
		model.CategorySleep:       8,
		model.CategoryHydration:   7,
		model.CategoryStress:      7,
		model.CategoryWeight:      7,
		model.CategoryCorrelation: 6,
		model.CategoryBehavioral:  7,
		model.CategoryAchievement: 7,
		model.CategoryWarning:     3,
		model.CategoryContextual:  4,
	}, counts)
	assert.Len(t, All(), 56)
}

func TestLookups(t *testing.T) {
	d, ok := ByID(SleepChronicDeprivation)
	require.True(t, ok)
	assert.Equal(t, model.CategorySleep, d.Category)
	assert.Equal(t, 10, d.Priority)
	assert.Equal(t, 48, d.CooldownHours)
	assert.Equal(t, []string{"count"}, d.Placeholders())
	assert.True(t, d.Urgent())

	byKey, ok := Get(model.CategoryHydration, "champion")
	require.True(t, ok)
	assert.Equal(t, HydrationChampion, byKey.ID)
	assert.Equal(t, model.ActionShare, byKey.Action.Type)

	_, ok = ByID("nope")
	assert.False(t, ok)
	_, ok = Get(model.CategorySleep, "nope")
	assert.False(t, ok)

	assert.Panics(t, func() { MustByID("nope") })
}

func TestListByCategoryKeepsOrder(t *testing.T) {
	ws := ListByCategory(model.CategoryWarning)
	require.Len(t, ws, 3)
	assert.Equal(t, WarningMultipleRedFlags, ws[0].ID)
	assert.Equal(t, WarningDecliningMetrics, ws[1].ID)
	assert.Equal(t, WarningMissedLogging, ws[2].ID)
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0].Priority = 1
	d := MustByID(a[0].ID)
	assert.NotEqual(t, 1, d.Priority)
}

func TestValidateRejectsBadRows(t *testing.T) {
	base := Definition{
		ID: "x", Category: model.CategorySleep, Key: "x", Priority: 5,
		Title: "t", Template: "hello {name}", CooldownHours: 24,
	}

	tests := []struct {
		name string
		mod  func(d *Definition)
		want string
	}{
		{"priority low", func(d *Definition) { d.Priority = 0 }, "priority"},
		{"priority high", func(d *Definition) { d.Priority = 11 }, "priority"},
		{"cooldown zero", func(d *Definition) { d.CooldownHours = 0 }, "cooldown"},
		{"cooldown too long", func(d *Definition) { d.CooldownHours = 5000 }, "cooldown"},
		{"unterminated", func(d *Definition) { d.Template = "hi {name" }, "unterminated"},
		{"unmatched", func(d *Definition) { d.Template = "hi name}" }, "unmatched"},
		{"category", func(d *Definition) { d.Category = "social" }, "unknown category"},
		{"empty id", func(d *Definition) { d.ID = "" }, "empty id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base
			tt.mod(&d)
			err := validate([]Definition{d})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("duplicate id", func(t *testing.T) {
		other := base
		other.Key = "y"
		err := validate([]Definition{base, other})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate id")
	})

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validate([]Definition{base}))
	})
}
