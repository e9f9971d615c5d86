package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRule(t *testing.T) {
	rules := []*OpeningHoursRule{
		{DayOfWeek: 1, IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
		{DayOfWeek: 5, IsOpen: true, OpenTime: "17:00", CloseTime: "23:00"},
		{DayOfWeek: 0, IsOpen: false},
	}

	// 2024-06-07 - пятница
	friday := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)
	rule := ResolveRule(rules, friday)
	require.NotNil(t, rule)
	assert.Equal(t, 5, rule.DayOfWeek)
	assert.True(t, rule.IsOpen)

	// 2024-06-09 - воскресенье, правило есть, но день закрыт
	sunday := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	rule = ResolveRule(rules, sunday)
	require.NotNil(t, rule)
	assert.False(t, rule.IsOpen)

	// 2024-06-08 - суббота, правила нет
	saturday := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, ResolveRule(rules, saturday))
}

func TestOpeningHoursRule_ContainsTime(t *testing.T) {
	rule := &OpeningHoursRule{DayOfWeek: 5, IsOpen: true, OpenTime: "17:00", CloseTime: "23:00"}

	// Интервал [open, close): открытие включается, закрытие - нет
	assert.True(t, rule.ContainsTime("17:00"))
	assert.True(t, rule.ContainsTime("22:59"))
	assert.False(t, rule.ContainsTime("23:00"))
	assert.False(t, rule.ContainsTime("16:59"))

	closed := &OpeningHoursRule{DayOfWeek: 0, IsOpen: false}
	assert.False(t, closed.ContainsTime("12:00"))
}

func TestOpeningHoursRule_Validate(t *testing.T) {
	valid := &OpeningHoursRule{DayOfWeek: 1, IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"}
	assert.NoError(t, valid.Validate())

	// Закрытый день не требует времени
	closed := &OpeningHoursRule{DayOfWeek: 0, IsOpen: false}
	assert.NoError(t, closed.Validate())

	inverted := &OpeningHoursRule{DayOfWeek: 1, IsOpen: true, OpenTime: "18:00", CloseTime: "09:00"}
	assert.Error(t, inverted.Validate())

	badDay := &OpeningHoursRule{DayOfWeek: 7, IsOpen: false}
	assert.Error(t, badDay.Validate())

	badFormat := &OpeningHoursRule{DayOfWeek: 1, IsOpen: true, OpenTime: "9:00", CloseTime: "18:00"}
	assert.Error(t, badFormat.Validate())
}
