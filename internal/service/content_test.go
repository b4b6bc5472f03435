package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dreamtask/dreamtask/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weeklyReviewTemplate = `---
name: Weekly review
category: review
variables: [goal, wins]
default: true
---
# Review of {goal}

This week: **{wins}**
`

func TestContentService_ContentOverlay(t *testing.T) {
	env := newTestEnv(t)

	content, err := env.content.Content()
	require.NoError(t, err)
	assert.Equal(t, "Dream-to-Task Agent", content["appName"])

	values := map[string]string{"tagline": "Dream big", "footer": "Made with care"}
	require.NoError(t, env.content.Update(values))
	require.NoError(t, env.content.Update(values))

	content, err = env.content.Content()
	require.NoError(t, err)
	assert.Equal(t, "Dream big", content["tagline"])
	assert.Equal(t, "Made with care", content["footer"])
	assert.Equal(t, "Dream-to-Task Agent", content["appName"])

	var n int
	require.NoError(t, env.db.Get(&n, `SELECT COUNT(*) FROM app_content`))
	assert.Equal(t, 2, n)

	err = env.content.Update(map[string]string{})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Content object is required", err.Error())
}

func TestContentService_SeedAndRenderTemplates(t *testing.T) {
	env := newTestEnv(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "weekly-review.md"), []byte(weeklyReviewTemplate), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.md"), []byte("# no front matter"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	seeded, err := env.content.SeedTemplates(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, seeded)

	// seeding again finds the template by name
	seeded, err = env.content.SeedTemplates(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, seeded)

	templates, err := env.content.Templates("review")
	require.NoError(t, err)
	require.Len(t, templates, 1)
	tmpl := templates[0]
	assert.Equal(t, "Weekly review", tmpl.Name)
	assert.Equal(t, []string{"goal", "wins"}, []string(tmpl.Variables))
	assert.True(t, tmpl.IsDefault)

	rendered, err := env.content.Render(tmpl.ID, map[string]string{"goal": "Marathon", "wins": "20km run"})
	require.NoError(t, err)
	assert.Contains(t, rendered.Content, "# Review of Marathon")
	assert.Contains(t, rendered.HTML, "<strong>20km run</strong>")
	assert.Contains(t, rendered.HTML, "<h1")

	templates, err = env.content.Templates("")
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, 1, templates[0].UsageCount)

	_, err = env.content.Render("missing", nil)
	assert.ErrorIs(t, err, repository.ErrTemplateNotFound)
}

func TestContentService_SeedMissingDirectory(t *testing.T) {
	env := newTestEnv(t)

	seeded, err := env.content.SeedTemplates(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Equal(t, 0, seeded)
}
