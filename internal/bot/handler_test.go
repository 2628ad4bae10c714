package bot

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkcategorizer/internal/categorizer"
	"linkcategorizer/internal/domain"
	"linkcategorizer/internal/storage"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newTestHandler builds a Handler without a Telegram client, backed by a
// Badger repository in a temporary directory.
func newTestHandler(t *testing.T) (*Handler, storage.Repository) {
	t.Helper()

	repo, err := storage.NewBadgerRepository(t.TempDir(), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repo.Close()) })

	c, err := categorizer.New()
	require.NoError(t, err)

	return &Handler{repo: repo, categorizer: c, log: testLogger()}, repo
}

func TestHandler_SaveLinks(t *testing.T) {
	h, repo := newTestHandler(t)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	links := []domain.Link{
		{URL: "https://teamtailor.com/jobs/1"},
		{URL: "https://acme.com/page?utm_source=x"},
		{URL: "https://acme.com/about", Text: "About us"},
	}
	reply := h.saveLinks(ctx, 42, links, now, h.log)

	assert.Equal(t, "Categorized 2 links:\njobs: https://teamtailor.com/jobs/1\nabout: https://acme.com/about", reply)

	saved, err := repo.GetLinksByUser(ctx, 42)
	require.NoError(t, err)
	require.Len(t, saved, 2, "Ignored links should not be saved")

	byURL := make(map[string]domain.SavedLink)
	for _, l := range saved {
		byURL[l.URL] = l
	}
	assert.Equal(t, "jobs", byURL["https://teamtailor.com/jobs/1"].Category)
	assert.Equal(t, "about", byURL["https://acme.com/about"].Category)
	assert.Equal(t, "About us", byURL["https://acme.com/about"].Text)
	assert.Equal(t, int64(42), byURL["https://acme.com/about"].UserID)
	assert.True(t, now.Equal(byURL["https://acme.com/about"].Timestamp))

	other, err := repo.GetLinksByUser(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestHandler_SaveLinksAllIgnored(t *testing.T) {
	h, repo := newTestHandler(t)
	ctx := context.Background()

	reply := h.saveLinks(ctx, 42, []domain.Link{{URL: "javascript:void(0)"}, {URL: "#top"}}, time.Now(), h.log)
	assert.Equal(t, allIgnoredMessage, reply)

	saved, err := repo.GetLinksByUser(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

// failingRepo fails to save one URL and delegates everything else.
type failingRepo struct {
	storage.Repository
	failURL string
}

func (r failingRepo) SaveLink(ctx context.Context, link domain.SavedLink) error {
	if link.URL == r.failURL {
		return errors.New("disk full")
	}
	return r.Repository.SaveLink(ctx, link)
}

func TestHandler_SaveLinksKeepsGoingAfterFailure(t *testing.T) {
	h, repo := newTestHandler(t)
	h.repo = failingRepo{Repository: repo, failURL: "mailto:a@b.com"}
	ctx := context.Background()

	reply := h.saveLinks(ctx, 1, []domain.Link{{URL: "mailto:a@b.com"}, {URL: "https://acme.com/"}}, time.Now(), h.log)
	assert.Contains(t, reply, "email: mailto:a@b.com")
	assert.Contains(t, reply, "home: https://acme.com/")

	saved, err := repo.GetLinksByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "https://acme.com/", saved[0].URL)
}

func TestHandler_ForgetLink(t *testing.T) {
	h, repo := newTestHandler(t)
	ctx := context.Background()

	h.saveLinks(ctx, 42, []domain.Link{
		{URL: "https://acme.com/about"},
		{URL: "https://acme.com/contact"},
	}, time.Now(), h.log)

	reply := h.forgetLink(ctx, 42, "https://acme.com/about", h.log)
	assert.Equal(t, "Forgot https://acme.com/about.", reply)

	saved, err := repo.GetLinksByUser(ctx, 42)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "https://acme.com/contact", saved[0].URL)

	reply = h.forgetLink(ctx, 42, "https://acme.com/about", h.log)
	assert.Equal(t, "https://acme.com/about isn't in your list.", reply)

	// Another user's links are untouched.
	reply = h.forgetLink(ctx, 7, "https://acme.com/contact", h.log)
	assert.Equal(t, "https://acme.com/contact isn't in your list.", reply)
	saved, err = repo.GetLinksByUser(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, saved, 1)

	assert.Equal(t, forgetUsageMessage, h.forgetLink(ctx, 42, "", h.log))
}

func TestForgetArgument(t *testing.T) {
	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{"/forget https://acme.com/about", "https://acme.com/about", true},
		{"/forget   https://acme.com/about  ", "https://acme.com/about", true},
		{"/forget@LinkBot https://acme.com/about", "https://acme.com/about", true},
		{"/forget", "", true},
		{"/forget@LinkBot", "", true},
		{"/forgetful https://acme.com", "", false},
		{"/mylist", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := forgetArgument(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
