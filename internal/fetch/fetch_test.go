package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/playerfacts/internal/resilience"
)

func TestStripHTML(t *testing.T) {
	html := `<html><head><title>Bio</title><script>var x = 1;</script></head>
<body><nav><a href="/">Home</a></nav>
<p>He attended Lake Park High School in Roselle, IL.</p>
<footer>&copy; Club</footer></body></html>`

	text := StripHTML(html)
	assert.Contains(t, text, "attended Lake Park High School in Roselle, IL")
	assert.NotContains(t, text, "var x")
	assert.NotContains(t, text, "Home")
	assert.NotContains(t, text, "<p>")
}

func TestStripHTMLEntities(t *testing.T) {
	assert.Equal(t, `St. Mary's "Prep" & Academy`, StripHTML(`St. Mary&#39;s &quot;Prep&quot; &amp; Academy`))
}

func TestRenderOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>He attended Warren Township High School.</p><p>" +
			loremBody + "</p></body></html>"))
	}))
	defer srv.Close()

	r := NewHTTPRenderer(Options{DefaultRate: 100})
	text, err := r.Render(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "attended Warren Township High School")
}

func TestRenderNon200IsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	r := NewHTTPRenderer(Options{DefaultRate: 100})
	_, err := r.Render(context.Background(), srv.URL)
	require.Error(t, err)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusNotFound, fe.Status)
}

func TestRenderBlockedIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>Checking your browser before accessing the site.</body></html>"))
	}))
	defer srv.Close()

	r := NewHTTPRenderer(Options{DefaultRate: 100})
	_, err := r.Render(context.Background(), srv.URL)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
}

func TestRenderRetriesThrottle(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("<html><body><p>He attended Warren Township High School.</p><p>" +
			loremBody + "</p></body></html>"))
	}))
	defer srv.Close()

	r := NewHTTPRenderer(Options{
		DefaultRate: 100,
		Retry: resilience.RetryConfig{
			MaxAttempts:    3,
			InitialBackoff: time.Millisecond,
			JitterFraction: 0,
			OnRetry:        func(int, error) {},
		},
	})
	text, err := r.Render(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "attended Warren Township High School")
	assert.EqualValues(t, 3, atomic.LoadInt32(&hits))
}

func TestRenderThrottleErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	r := NewHTTPRenderer(Options{
		DefaultRate: 100,
		Retry:       resilience.RetryConfig{MaxAttempts: 1},
	})
	_, err := r.Render(context.Background(), srv.URL)
	require.Error(t, err)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusServiceUnavailable, fe.Status)
	assert.True(t, resilience.IsTransient(err))
}

func TestRenderDoesNotRetryNotFound(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	r := NewHTTPRenderer(Options{DefaultRate: 100})
	_, err := r.Render(context.Background(), srv.URL)
	require.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestFindLinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>` + loremBody + `
<a href="/news/cupps-signs">Fire signs <b>homegrown</b> defender</a>
<a href="/players/christopher-cupps/">Profile</a>
<a href="/news/stadium-update">Stadium update</a>
</body></html>`))
	}))
	defer srv.Close()

	r := NewHTTPRenderer(Options{DefaultRate: 100})
	links, err := r.FindLinks(context.Background(), srv.URL, "/news/")
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "/news/cupps-signs", links[0].Href)
	assert.Equal(t, "Fire signs homegrown defender", links[0].Text)
}

func TestDetectBlockCaptcha(t *testing.T) {
	resp := &http.Response{StatusCode: 200, Header: http.Header{}}
	blocked, kind := DetectBlock(resp, []byte("please solve this reCAPTCHA to continue"))
	assert.True(t, blocked)
	assert.Equal(t, BlockCaptcha, kind)
}

// loremBody pads test pages past the small-body JS-shell heuristic.
var loremBody = func() string {
	s := "Lorem ipsum dolor sit amet, consectetur adipiscing elit. "
	for len(s) < 2100 {
		s += s
	}
	return s
}()
