// internal/scrims/rollover_test.go
package scrims

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MHBDPro/rage-backend/internal/models"
)

func templateInput(suffix string, startMinute int) TemplateInput {
	return TemplateInput{
		Name:        "daily " + suffix,
		Title:       "Günlük Scrim " + suffix,
		SlugSuffix:  suffix,
		StartMinute: startMinute,
		Mode:        models.ModeSingle,
		MapName:     "Erangel",
		MaxSlots:    16,
		Type:        models.TypeDaily,
		Enabled:     true,
	}
}

func TestRolloverMaterializesTemplates(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil)

	for _, tc := range []struct {
		suffix string
		minute int
	}{
		{"aksam", 20 * 60},
		{"gece", 22*60 + 30},
	} {
		_, res, err := svc.CreateTemplate(context.Background(), templateInput(tc.suffix, tc.minute))
		require.NoError(t, err)
		require.True(t, res.OK)
	}

	res, err := svc.Rollover(context.Background())
	require.NoError(t, err)
	assert.True(t, res.OK)

	// testNow is 2025-06-15 in the reference timezone.
	sess, err := store.GetSessionBySlug(context.Background(), "daily-2025-06-15-aksam")
	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, sess.Status)
	assert.Equal(t, models.TypeDaily, sess.Type)

	wantStart := time.Date(2025, 6, 15, 20, 0, 0, 0, RefZone)
	assert.True(t, sess.StartTime.Equal(wantStart), "got start %v", sess.StartTime)

	late, err := store.GetSessionBySlug(context.Background(), "daily-2025-06-15-gece")
	require.NoError(t, err)
	wantLate := time.Date(2025, 6, 15, 22, 30, 0, 0, RefZone)
	assert.True(t, late.StartTime.Equal(wantLate))
}

func TestRolloverIsIdempotent(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil)

	_, res, err := svc.CreateTemplate(context.Background(), templateInput("aksam", 20*60))
	require.NoError(t, err)
	require.True(t, res.OK)

	for i := 0; i < 3; i++ {
		res, err := svc.Rollover(context.Background())
		require.NoError(t, err)
		require.True(t, res.OK)
	}

	sessions, err := store.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestRolloverSkipsDisabledTemplates(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil)

	in := templateInput("kapali", 18*60)
	in.Enabled = false
	_, res, err := svc.CreateTemplate(context.Background(), in)
	require.NoError(t, err)
	require.True(t, res.OK)

	res, err = svc.Rollover(context.Background())
	require.NoError(t, err)
	require.True(t, res.OK)

	sessions, err := store.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRolloverCompletesStaleSessions(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil)

	stale := seedSession(t, store, func(s *models.Session) {
		s.Slug = "yesterday"
		s.StartTime = testNow.Add(-24 * time.Hour)
		s.Status = models.StatusActive
	})
	today := seedSession(t, store, func(s *models.Session) {
		s.Slug = "today"
		s.StartTime = testNow.Add(-time.Hour)
		s.Status = models.StatusActive
	})

	res, err := svc.Rollover(context.Background())
	require.NoError(t, err)
	require.True(t, res.OK)

	got, err := store.GetSession(context.Background(), stale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)

	// A session that started today (after the reference-timezone midnight)
	// is left alone.
	got, err = store.GetSession(context.Background(), today.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, got.Status)
}

func TestTemplateValidation(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil)

	cases := []struct {
		name   string
		mutate func(*TemplateInput)
	}{
		{"missing name", func(in *TemplateInput) { in.Name = "" }},
		{"missing suffix", func(in *TemplateInput) { in.SlugSuffix = "" }},
		{"negative start", func(in *TemplateInput) { in.StartMinute = -1 }},
		{"start past midnight", func(in *TemplateInput) { in.StartMinute = 24 * 60 }},
		{"bad slot count", func(in *TemplateInput) { in.MaxSlots = 5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := templateInput("aksam", 20*60)
			tc.mutate(&in)
			_, res, err := svc.CreateTemplate(context.Background(), in)
			require.NoError(t, err)
			assert.Equal(t, ReasonValidation, res.Reason)
		})
	}
}

func TestTemplateUpdateAndDelete(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, nil)

	tpl, res, err := svc.CreateTemplate(context.Background(), templateInput("aksam", 20*60))
	require.NoError(t, err)
	require.True(t, res.OK)

	in := templateInput("aksam", 21*60)
	res, err = svc.UpdateTemplate(context.Background(), tpl.ID, in)
	require.NoError(t, err)
	assert.True(t, res.OK)

	templates, err := svc.ListTemplates(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, 21*60, templates[0].StartMinute)

	res, err = svc.DeleteTemplate(context.Background(), tpl.ID)
	require.NoError(t, err)
	assert.True(t, res.OK)

	res, err = svc.DeleteTemplate(context.Background(), tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, ReasonNotFound, res.Reason)
}
