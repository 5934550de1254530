package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adr1ang1lbert/birth-vaccine-system/internal/model"
)

func TestCompose_TwoDaysBefore(t *testing.T) {
	msg := Compose("Amina Yusuf", "BCG", "2026-09-03", model.KindTwoDaysBefore)

	assert.Equal(t, "Vaccination Reminder for Amina Yusuf", msg.Subject)
	assert.Contains(t, msg.Text, "EN: Reminder: Amina Yusuf needs BCG in 2 days (2026-09-03).")
	assert.Contains(t, msg.Text, "SW: Kumbusho: Amina Yusuf atapokea BCG ndani ya siku 2 (2026-09-03).")
	assert.Contains(t, msg.HTML, "<h3>English</h3>")
	assert.Contains(t, msg.HTML, "<h3>Kiswahili</h3>")
	assert.Contains(t, msg.HTML, "is due for <strong>BCG</strong> in 2 days")
}

func TestCompose_DueToday(t *testing.T) {
	msg := Compose("Amina Yusuf", "Polio", "2026-09-01", model.KindDueToday)

	assert.Contains(t, msg.Text, "needs Polio TODAY (2026-09-01).")
	assert.Contains(t, msg.Text, "anahitaji Polio LEO (2026-09-01).")
	assert.Contains(t, msg.HTML, "is scheduled for <strong>Polio</strong> TODAY")
	assert.Contains(t, msg.HTML, "LEO")
}

func TestCompose_VariesOnlyByKind(t *testing.T) {
	twoDays := Compose("A", "BCG", "2026-09-03", model.KindTwoDaysBefore)
	today := Compose("A", "BCG", "2026-09-03", model.KindDueToday)

	assert.NotEqual(t, twoDays.Text, today.Text)
	assert.NotEqual(t, twoDays.HTML, today.HTML)
	assert.Equal(t, twoDays.Subject, today.Subject)
}

func TestCompose_Deterministic(t *testing.T) {
	first := Compose("Amina", "BCG", "2026-09-03", model.KindTwoDaysBefore)
	second := Compose("Amina", "BCG", "2026-09-03", model.KindTwoDaysBefore)

	assert.Equal(t, first, second)
}

func TestCompose_EscapesHTMLFields(t *testing.T) {
	msg := Compose("<script>alert(1)</script>", "BCG & Polio", "2026-09-01", model.KindDueToday)

	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
	assert.Contains(t, msg.HTML, "BCG &amp; Polio")
	// The plain-text variant stays literal.
	assert.Contains(t, msg.Text, "BCG & Polio")
}
