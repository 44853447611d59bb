package web_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gomemo/internal/factory"
	"github.com/mcoot/gomemo/internal/testutil"
	"github.com/mcoot/gomemo/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	router := web.NewRouter(web.RouterConfig{
		Logger:    testutil.NopLogger(),
		Records:   app.RecordService,
		History:   app.HistoryService,
		Manager:   app.SessionManager,
		StaticDir: "", // No static files in tests
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// do sends a request, carrying cookies like a browser would
func (ts *webTestServer) do(req *http.Request) *httptest.ResponseRecorder {
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	ts.cookies.extract(rr)
	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(http.MethodPost, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return ts.do(req)
}

// upload posts the import form with an SGF file attached
func (ts *webTestServer) upload(filename, content, name string) *httptest.ResponseRecorder {
	ts.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(ts.t, mw.WriteField("name", name))
	fw, err := mw.CreateFormFile("sgf_file", filename)
	require.NoError(ts.t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(ts.t, err)
	require.NoError(ts.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/records", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return ts.do(req)
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect")
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// importSample pastes the sample game and returns its record ID
func (ts *webTestServer) importSample() string {
	ts.t.Helper()
	rr := ts.post("/records", url.Values{"sgf": {factory.SampleGame}})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code)

	list, err := ts.app.RecordService.List(ts.t.Context())
	require.NoError(ts.t, err)
	require.NotEmpty(ts.t, list)
	return string(list[0].ID)
}

// openSession starts a session over recordID and returns the page path
func (ts *webTestServer) openSession(recordID string) string {
	ts.t.Helper()
	rr := ts.post("/records/"+recordID+"/sessions", nil)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code)
	location := rr.Header().Get("Location")
	require.True(ts.t, strings.HasPrefix(location, "/sessions/"), "Expected redirect to session page, got %q", location)
	return location
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}

func TestHomePage_Empty(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#no-records")
	assertContainsElement(t, doc, "form#import-form[enctype='multipart/form-data']")
	assertContainsElement(t, doc, "input[type='file'][name='sgf_file']")
}

func TestImport_PastedSGF(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/records", url.Values{"sgf": {factory.SampleGame}, "name": {"Pasted"}})
	rr = ts.followRedirect(rr)
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-success", "Imported Pasted")
	assertContainsText(t, doc, "#records .name", "Pasted")
	assertContainsText(t, doc, "#records", "Alice vs Bob")
	assertContainsText(t, doc, "#records", "9x9")
	assertNotContainsElement(t, doc, "#no-records")
}

func TestImport_FileUpload(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.upload("handicap.sgf", factory.HandicapGame, "")
	rr = ts.followRedirect(rr)

	doc := parseHTML(rr.Body)
	// Named after the file when no name is given
	assertContainsText(t, doc, "#records .name", "handicap")
	assertContainsText(t, doc, "#records", "Carol vs Dan")
}

func TestImport_InvalidSGF(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/records", url.Values{"sgf": {"(;SZ[9];B[zz])"}})
	rr = ts.followRedirect(rr)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "Could not import")
	assertContainsElement(t, doc, "#no-records")
}

func TestImport_Empty(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/records", url.Values{"sgf": {"  "}})
	rr = ts.followRedirect(rr)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "choose an SGF file")
}

func TestFlashShownOnce(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/records", url.Values{"sgf": {factory.SampleGame}})
	rr = ts.followRedirect(rr)
	assertContainsElement(t, parseHTML(rr.Body), ".flash")

	rr = ts.get("/")
	assertNotContainsElement(t, parseHTML(rr.Body), ".flash")
}

func TestDeleteRecord(t *testing.T) {
	ts := newWebTestServer(t)
	id := ts.importSample()

	rr := ts.post("/records/"+id+"/delete", nil)
	rr = ts.followRedirect(rr)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-success", "Record deleted")
	assertContainsElement(t, doc, "#no-records")
}

func TestOpenSession_UnknownRecord(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/records/missing/sessions", nil)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	assertContainsText(t, parseHTML(rr.Body), ".flash-error", "Record not found")
}

func TestUnknownSessionRedirectsHome(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/sessions/nope")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}
