package strategy

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/playerfacts/internal/fetch"
	"github.com/pitchside/playerfacts/internal/model"
)

// fakeClient serves canned page texts and links by URL. URLs without an
// entry fail like a 404 would.
type fakeClient struct {
	pages    map[string]string
	links    map[string][]fetch.Link
	rendered []string
}

func (c *fakeClient) Render(_ context.Context, url string) (string, error) {
	c.rendered = append(c.rendered, url)
	text, ok := c.pages[url]
	if !ok {
		return "", eris.Errorf("fetch %s: status 404", url)
	}
	return text, nil
}

func (c *fakeClient) FindLinks(_ context.Context, pageURL, _ string) ([]fetch.Link, error) {
	links, ok := c.links[pageURL]
	if !ok {
		return nil, eris.Errorf("fetch %s: status 404", pageURL)
	}
	return links, nil
}

func chicagoDomain(club string) string {
	if club == "Chicago Fire" {
		return "chicagofirefc.com"
	}
	return ""
}

var cupps = model.Player{
	Club: "Chicago Fire", Season: "2025",
	FirstName: "Christopher", LastName: "Cupps",
}

func TestClubAnnouncementTriesURLTemplates(t *testing.T) {
	client := &fakeClient{pages: map[string]string{
		"https://www.chicagofirefc.com/news/christopher-cupps-signs": "Cupps attended Lake Park High School in Roselle, IL.",
	}}
	s := NewClubAnnouncement(client, chicagoDomain)

	docs, err := s.Fetch(context.Background(), cupps)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "https://www.chicagofirefc.com/news/christopher-cupps-signs", docs[0].URL)

	assert.Contains(t, client.rendered, "https://www.chicagofirefc.com/news/chicagofire-signs-christopher-cupps")
	assert.Contains(t, client.rendered, "https://www.chicagofirefc.com/news/christopher-cupps-homegrown")
}

func TestClubAnnouncementUnknownDomainSkips(t *testing.T) {
	client := &fakeClient{}
	s := NewClubAnnouncement(client, func(string) string { return "" })

	docs, err := s.Fetch(context.Background(), cupps)
	require.NoError(t, err)
	assert.Nil(t, docs)
	assert.Empty(t, client.rendered)
}

func TestClubBioCrawlsSigningLinksOnly(t *testing.T) {
	bioURL := "https://www.chicagofirefc.com/players/christopher-cupps/"
	client := &fakeClient{
		pages: map[string]string{
			bioURL: "Defender. Chicago Fire FC.",
			"https://www.chicagofirefc.com/news/cupps-signs": "The club signs homegrown defender Christopher Cupps of Lake Park High School.",
		},
		links: map[string][]fetch.Link{
			bioURL: {
				{Href: "/news/stadium-update", Text: "Stadium update"},
				{Href: "/news/cupps-signs", Text: "Fire signs homegrown defender"},
			},
		},
	}
	s := NewClubBio(client, chicagoDomain)

	docs, err := s.Fetch(context.Background(), cupps)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, bioURL, docs[0].URL)
	assert.Equal(t, "https://www.chicagofirefc.com/news/cupps-signs", docs[1].URL)
	assert.NotContains(t, client.rendered, "https://www.chicagofirefc.com/news/stadium-update")
}

func TestNCSAReadsSchoolFromProfileSlug(t *testing.T) {
	client := &fakeClient{
		links: map[string][]fetch.Link{
			"https://www.ncsasports.org/search?q=Christopher+Cupps": {
				{Href: "/mens-soccer-recruiting/illinois/roselle/lake-park-high-school/christopher-cupps", Text: "Christopher Cupps"},
			},
		},
	}
	s := NewNCSA(client)

	docs, err := s.Fetch(context.Background(), cupps)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "High School: Lake Park High School\n", docs[0].Text)
	// Slug hit means the profile page itself is never fetched.
	assert.Empty(t, client.rendered)
}

func TestWebSearchUnwrapsAndRanksResults(t *testing.T) {
	searchURL := "https://html.duckduckgo.com/html/?q=Christopher+Cupps+Chicago+Fire+%22high+school%22"
	client := &fakeClient{
		pages: map[string]string{
			"https://www.dailyherald.com/sports/cupps": "Local coverage.",
			"https://www.chicagofirefc.com/news/cupps": "Club announcement.",
		},
		links: map[string][]fetch.Link{
			searchURL: {
				{Href: "//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.dailyherald.com%2Fsports%2Fcupps&rut=abc"},
				{Href: "//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.chicagofirefc.com%2Fnews%2Fcupps"},
			},
		},
	}
	s := NewWebSearch(client, chicagoDomain)

	docs, err := s.Fetch(context.Background(), cupps)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "https://www.chicagofirefc.com/news/cupps", docs[0].URL)
	assert.Equal(t, "https://www.dailyherald.com/sports/cupps", docs[1].URL)
}

func TestWikipediaSearchCapsResults(t *testing.T) {
	searchURL := "https://en.wikipedia.org/w/index.php?search=" +
		url.QueryEscape("Christopher Cupps soccer Chicago Fire")

	var links []fetch.Link
	pages := map[string]string{}
	for i := 0; i < 8; i++ {
		href := fmt.Sprintf("/wiki/Christopher_Cupps_%d", i)
		links = append(links, fetch.Link{Href: href})
		pages["https://en.wikipedia.org"+href] = "An American painter known for landscapes."
	}
	client := &fakeClient{pages: pages, links: map[string][]fetch.Link{searchURL: links}}
	s := NewWikipedia(client)

	docs, err := s.search(context.Background(), cupps)
	require.NoError(t, err)
	assert.Nil(t, docs)
	assert.Len(t, client.rendered, maxEncyclopediaResults)
}

func TestGrokipediaCapsResults(t *testing.T) {
	searchURL := "https://grokipedia.com/search?q=Christopher+Cupps"

	var links []fetch.Link
	pages := map[string]string{}
	for i := 0; i < 8; i++ {
		href := fmt.Sprintf("/page/Christopher_Cupps_%d", i)
		links = append(links, fetch.Link{Href: href})
		pages["https://grokipedia.com"+href] = "An American painter known for landscapes."
	}
	client := &fakeClient{pages: pages, links: map[string][]fetch.Link{searchURL: links}}
	s := NewGrokipedia(client)

	docs, err := s.Fetch(context.Background(), cupps)
	require.NoError(t, err)
	assert.Nil(t, docs)
	assert.Len(t, client.rendered, maxEncyclopediaResults)
}

func TestUnwrapRedirect(t *testing.T) {
	assert.Equal(t, "https://example.com/a b",
		unwrapRedirect("//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fa%20b&rut=x"))
	assert.Equal(t, "", unwrapRedirect("/news/cupps-signs"))
	assert.Equal(t, "", unwrapRedirect("//duckduckgo.com/l/?uddg=javascript%3Aalert(1)"))
}

func TestClubPathSlug(t *testing.T) {
	assert.Equal(t, "chicagofire", clubPathSlug("chicagofirefc.com"))
	assert.Equal(t, "austin", clubPathSlug("austinfc.com"))
	assert.Equal(t, "sounders", clubPathSlug("soundersfc.com"))
}

func TestDeslug(t *testing.T) {
	assert.Equal(t, "Lake Park High School", deslug("lake-park-high-school"))
	assert.Equal(t, "St Ignatius Academy", deslug("st-ignatius-academy"))
}

func TestAbsURL(t *testing.T) {
	assert.Equal(t, "https://www.x.com/news/a", absURL("https://www.x.com", "/news/a"))
	assert.Equal(t, "https://other.com/b", absURL("https://www.x.com", "https://other.com/b"))
}

func TestLooksLikeSoccerPlayer(t *testing.T) {
	assert.True(t, looksLikeSoccerPlayer("Christopher Cupps is an American soccer player who plays as a defender."))
	assert.False(t, looksLikeSoccerPlayer("Christopher Cupps is an American painter known for landscapes."))
}
