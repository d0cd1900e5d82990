package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate_EmbeddedCatalogue(t *testing.T) {
	require.NoError(t, Load())

	assert.Equal(t, "Weekly Report Approved by Guide", Translate("en", "guide.approved.title"))
	assert.Equal(t, "Marks Updated", Translate("fr", "admin.marks.title"))
	assert.Equal(t, "missing.key", Translate("en", "missing.key"))
}

func TestFormat_FillsPlaceholders(t *testing.T) {
	msg := Format(DefaultLocale, "admin.marks.message", Vars{"marks": 7, "project": "Project X", "week": 3})
	assert.Equal(t, `You received 7/10 for your weekly report on "Project X" (Week 3).`, msg)

	msg = Format(DefaultLocale, "report_submitted.message", Vars{"student": "Asha", "week": 3})
	assert.Equal(t, "Asha has submitted a new weekly report (Week 3).", msg)
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"loc/xx/notifications.yaml": {Data: []byte("NOTIFICATIONS: [unclosed")},
	}
	err := loadFrom(fsys, "loc")
	assert.Error(t, err)
}
