package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfpost/linkcheck/internal/domain"
	domainerrors "github.com/shelfpost/linkcheck/internal/errors"
)

const draft = "I reread Enders Game last week.\n\n" +
	"The Lion the Witch and the Wardrobe still holds up.\n\n" +
	"Nothing to see here."

var draftLinks = []domain.AffiliateLink{
	{Title: "Ender's Game", URL: "https://example.com/ender"},
	{Title: "The Lion, the Witch and the Wardrobe", URL: "https://example.com/lion"},
	{Title: "Dune", URL: "https://example.com/dune"},
}

func newLinkHealthService(t *testing.T, maxPerTitle int) (*LinkHealthService, *SubmissionService) {
	t.Helper()
	logger, _ := captureLogger()
	subs := NewSubmissionService(setupTestStore(t), logger)
	return NewLinkHealthService(subs, maxPerTitle, logger), subs
}

func TestLinkHealthService_Check(t *testing.T) {
	logger, buf := captureLogger()
	svc := NewLinkHealthService(nil, 2, logger)

	report, err := svc.Check(ctx(), DraftRequest{Content: draft, Links: draftLinks})
	require.NoError(t, err)

	_, err = uuid.Parse(report.ReportID)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Paragraphs)
	require.Len(t, report.Results, 3)
	assert.Equal(t, 1, report.Results[0].Count)
	assert.Equal(t, 1, report.Results[1].Count)
	assert.Equal(t, 0, report.Results[2].Count)

	logs := buf.String()
	assert.Contains(t, logs, `"msg":"link health checked"`)
	assert.Contains(t, logs, `"matched":2`)
	assert.Contains(t, logs, report.ReportID)
}

func TestLinkHealthService_CheckHTML(t *testing.T) {
	logger, _ := captureLogger()
	svc := NewLinkHealthService(nil, 2, logger)

	html := "<p>I reread <em>Enders Game</em> last week.</p><p>Then Dune.</p>"
	report, err := svc.Check(ctx(), DraftRequest{Content: html, Links: draftLinks})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Paragraphs)
	assert.Equal(t, 1, report.Results[0].Count)
	assert.Equal(t, 1, report.Results[2].Count)
}

func TestLinkHealthService_CheckLogsCollisions(t *testing.T) {
	logger, buf := captureLogger()
	svc := NewLinkHealthService(nil, 2, logger)

	links := []domain.AffiliateLink{
		{Title: "Ender's Game", URL: "https://example.com/a"},
		{Title: "Enders Game", URL: "https://example.com/b"},
	}
	report, err := svc.Check(ctx(), DraftRequest{Content: "Enders Game", Links: links})
	require.NoError(t, err)

	require.NotEmpty(t, report.Collisions)
	assert.Contains(t, buf.String(), `"msg":"variation collision"`)
	assert.Contains(t, buf.String(), `"kept_url":"https://example.com/b"`)
	assert.Contains(t, buf.String(), `"overwritten_url":"https://example.com/a"`)
}

func TestLinkHealthService_CheckEmpty(t *testing.T) {
	logger, _ := captureLogger()
	svc := NewLinkHealthService(nil, 2, logger)

	report, err := svc.Check(ctx(), DraftRequest{Content: "", Links: draftLinks})
	require.NoError(t, err)
	assert.NotNil(t, report.Results)
	assert.Empty(t, report.Results)
}

func TestLinkHealthService_CheckInvalidLink(t *testing.T) {
	logger, _ := captureLogger()
	svc := NewLinkHealthService(nil, 2, logger)

	_, err := svc.Check(ctx(), DraftRequest{
		Content: draft,
		Links:   []domain.AffiliateLink{{Title: "", URL: "https://example.com"}},
	})
	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
}

func TestLinkHealthService_Render(t *testing.T) {
	logger, _ := captureLogger()
	svc := NewLinkHealthService(nil, 1, logger)

	text := "Ender's Game is great.\n\nI love Ender's Game."
	result, err := svc.Render(ctx(), DraftRequest{Content: text, Links: draftLinks[:1]})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(result.HTML, `href="https://example.com/ender"`))
	require.Len(t, result.Placements, 1)
	assert.Equal(t, 1, result.Placements[0].Count)
}

func TestLinkHealthService_Submission(t *testing.T) {
	svc, subs := newLinkHealthService(t, 2)

	sub, err := subs.Create(ctx(), SubmissionRequest{Title: "Picks", Content: draft, Links: draftLinks})
	require.NoError(t, err)

	report, err := svc.CheckSubmission(ctx(), sub.ID)
	require.NoError(t, err)
	assert.Len(t, report.Results, 3)

	rendered, err := svc.RenderSubmission(ctx(), sub.ID)
	require.NoError(t, err)
	assert.Contains(t, rendered.HTML, `href="https://example.com/ender"`)

	_, err = svc.CheckSubmission(ctx(), "sub-missing")
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	_, err = svc.RenderSubmission(ctx(), "sub-missing")
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
