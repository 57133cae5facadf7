package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/linkveil/cloakgate/pkg/app/engine"
	"github.com/linkveil/cloakgate/pkg/domain/route"
)

func allDays() []string {
	return []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}
}

func TestActiveRule_WindowBounds(t *testing.T) {
	rules := []route.ScheduleRule{
		{Days: allDays(), Start: "09:00", End: "17:00", Action: route.ActionForceFake},
	}
	loc := time.UTC

	cases := []struct {
		name    string
		hour    int
		minute  int
		matches bool
	}{
		{"before start", 8, 59, false},
		{"at start inclusive", 9, 0, true},
		{"inside", 12, 30, true},
		{"just before end", 16, 59, true},
		{"at end exclusive", 17, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			now := time.Date(2026, 3, 4, tc.hour, tc.minute, 0, 0, loc)
			rule := engine.ActiveRule(rules, now, loc, false)
			if tc.matches {
				assert.NotNil(t, rule)
			} else {
				assert.Nil(t, rule)
			}
		})
	}
}

func TestActiveRule_MidnightWrap(t *testing.T) {
	rules := []route.ScheduleRule{
		{Days: allDays(), Start: "22:00", End: "02:00", Action: route.ActionForceFake},
	}
	loc := time.UTC

	assert.NotNil(t, engine.ActiveRule(rules, time.Date(2026, 3, 4, 23, 0, 0, 0, loc), loc, false))
	assert.NotNil(t, engine.ActiveRule(rules, time.Date(2026, 3, 4, 1, 30, 0, 0, loc), loc, false))
	assert.Nil(t, engine.ActiveRule(rules, time.Date(2026, 3, 4, 2, 0, 0, 0, loc), loc, false))
	assert.Nil(t, engine.ActiveRule(rules, time.Date(2026, 3, 4, 12, 0, 0, 0, loc), loc, false))
}

func TestActiveRule_StartEqualsEndNeverMatches(t *testing.T) {
	rules := []route.ScheduleRule{
		{Days: allDays(), Start: "09:00", End: "09:00", Action: route.ActionForceFake},
	}
	loc := time.UTC

	assert.Nil(t, engine.ActiveRule(rules, time.Date(2026, 3, 4, 9, 0, 0, 0, loc), loc, false))
	assert.Nil(t, engine.ActiveRule(rules, time.Date(2026, 3, 4, 15, 0, 0, 0, loc), loc, false))
}

func TestActiveRule_DayFilter(t *testing.T) {
	rules := []route.ScheduleRule{
		{Days: []string{"sat", "sun"}, Start: "00:00", End: "23:59", Action: route.ActionForceFake},
	}
	loc := time.UTC

	// 2026-03-07 is a Saturday, 2026-03-04 a Wednesday.
	assert.NotNil(t, engine.ActiveRule(rules, time.Date(2026, 3, 7, 12, 0, 0, 0, loc), loc, false))
	assert.Nil(t, engine.ActiveRule(rules, time.Date(2026, 3, 4, 12, 0, 0, 0, loc), loc, false))
}

func TestActiveRule_FirstListedWins(t *testing.T) {
	rules := []route.ScheduleRule{
		{Days: allDays(), Start: "09:00", End: "17:00", Action: route.ActionForceFake},
		{Days: allDays(), Start: "09:00", End: "17:00", Action: route.ActionForceReal},
	}
	loc := time.UTC

	rule := engine.ActiveRule(rules, time.Date(2026, 3, 4, 12, 0, 0, 0, loc), loc, false)
	assert.NotNil(t, rule)
	assert.Equal(t, route.ActionForceFake, rule.Action)
}

func TestActiveRule_PriorityTierFilter(t *testing.T) {
	rules := []route.ScheduleRule{
		{Days: allDays(), Start: "09:00", End: "17:00", Action: route.ActionForceFake},
		{Days: allDays(), Start: "09:00", End: "17:00", Action: route.ActionForceReal, HighPriority: true},
	}
	loc := time.UTC
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, loc)

	high := engine.ActiveRule(rules, now, loc, true)
	assert.NotNil(t, high)
	assert.Equal(t, route.ActionForceReal, high.Action)

	normal := engine.ActiveRule(rules, now, loc, false)
	assert.NotNil(t, normal)
	assert.Equal(t, route.ActionForceFake, normal.Action)
}

func TestActiveRule_TimezoneConversion(t *testing.T) {
	rules := []route.ScheduleRule{
		{Days: allDays(), Start: "09:00", End: "17:00", Action: route.ActionForceFake},
	}
	loc, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	// 14:00 UTC is 09:00 in New York (EST, March 4th).
	now := time.Date(2026, 3, 4, 14, 0, 0, 0, time.UTC)
	assert.NotNil(t, engine.ActiveRule(rules, now, loc, false))

	// 13:00 UTC is 08:00 in New York.
	assert.Nil(t, engine.ActiveRule(rules, now.Add(-time.Hour), loc, false))
}
