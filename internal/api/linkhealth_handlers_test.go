package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLinks = []map[string]any{
	{"title": "Ender's Game", "url": "https://example.com/ender"},
	{"title": "The Lion, the Witch and the Wardrobe", "url": "https://example.com/lion"},
	{"title": "Dune", "url": "https://example.com/dune"},
}

const testDraft = "I reread Enders Game last week.\n\n" +
	"The Lion the Witch and the Wardrobe still holds up.\n\n" +
	"Nothing to see here."

func TestCheckLinkHealth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/link-health", map[string]any{
		"content": testDraft,
		"links":   testLinks,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	body := decode[LinkHealthResponse](t, resp)
	assert.NotEmpty(t, body.ReportID)
	assert.Equal(t, 3, body.Paragraphs)
	require.Len(t, body.Results, 3)

	assert.Equal(t, "Ender's Game", body.Results[0].Title)
	assert.Equal(t, 1, body.Results[0].Count)
	assert.True(t, body.Results[0].Healthy)
	assert.Contains(t, body.Results[0].Variations, "Enders Game")

	assert.Equal(t, 1, body.Results[1].Count)
	assert.Equal(t, 0, body.Results[2].Count)
	assert.False(t, body.Results[2].Healthy)
	assert.Empty(t, body.Collisions)
}

func TestCheckLinkHealth_EmptyContent(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/link-health", map[string]any{
		"content": "",
		"links":   testLinks,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	body := decode[LinkHealthResponse](t, resp)
	assert.NotNil(t, body.Results)
	assert.Empty(t, body.Results)
}

func TestCheckLinkHealth_Collisions(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/link-health", map[string]any{
		"content": "Enders Game",
		"links": []map[string]any{
			{"title": "Ender's Game", "url": "https://example.com/a"},
			{"title": "Enders Game", "url": "https://example.com/b"},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	body := decode[LinkHealthResponse](t, resp)
	require.NotEmpty(t, body.Collisions)
	assert.Equal(t, "https://example.com/a", body.Collisions[0].PreviousURL)
	assert.Equal(t, "https://example.com/b", body.Collisions[0].URL)
}

func TestCheckLinkHealth_InvalidURL(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/link-health", map[string]any{
		"content": testDraft,
		"links":   []map[string]any{{"title": "Dune", "url": "not a url"}},
	})
	require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	body := decode[APIError](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	details, ok := body.Details.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "links[0].url")
}

func TestCheckLinkHealth_MissingBodyField(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/link-health", map[string]any{"content": testDraft})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Equal(t, "VALIDATION", decode[APIError](t, resp).Code)
}

func TestRenderDraft(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/render", map[string]any{
		"content": "Ender's Game one.\n\nEnder's Game two.\n\nEnder's Game three.",
		"links":   testLinks[:1],
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	body := decode[RenderResponse](t, resp)
	assert.Equal(t, 2, strings.Count(body.HTML, `href="https://example.com/ender"`))
	require.Len(t, body.Placements, 1)
	assert.Equal(t, 2, body.Placements[0].Count)
	assert.Contains(t, body.HTML, "nofollow")
}

func TestRenderDraft_StripsScripts(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/render", map[string]any{
		"content": "<p>Dune rules.</p><script>alert(1)</script>",
		"links":   testLinks[2:],
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	body := decode[RenderResponse](t, resp)
	assert.NotContains(t, body.HTML, "<script")
	assert.Contains(t, body.HTML, `href="https://example.com/dune"`)
}
