package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sitelens/sitelens-mcp-server/internal/client"
	"github.com/sitelens/sitelens-mcp-server/internal/config"
	"github.com/sitelens/sitelens-mcp-server/internal/schema"
)

// capture records the single request a tool makes and serves a canned body.
type capture struct {
	req  *http.Request
	body string
}

func newCapture(body string) (*capture, *httptest.Server) {
	c := &capture{body: body}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.req = r
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(c.body))
	}))
	return c, srv
}

func testClient(baseURL string) *client.Client {
	return client.New(config.Config{APIKey: "test-key", BaseURL: baseURL}, nil)
}

func TestPageContext_EscapesPathSegment(t *testing.T) {
	rec, srv := newCapture(`{"page":{"path":"/products/shoes"}}`)
	defer srv.Close()

	tool := PageContext(testClient(srv.URL))
	res, err := tool.Invoke(context.Background(), json.RawMessage(`{"pagePath":"/products/shoes"}`))
	require.NoError(t, err)
	require.False(t, res.IsError)

	// The page path travels as one escaped segment, not a nested route.
	require.Equal(t, "/api/mcp/pages/%2Fproducts%2Fshoes", rec.req.URL.EscapedPath())
	require.Equal(t, "day", rec.req.URL.Query().Get("periodType"))
}

func TestPageContext_RequiresPagePath(t *testing.T) {
	tool := PageContext(testClient("http://unused"))
	_, err := tool.Invoke(context.Background(), json.RawMessage(`{}`))
	require.Error(t, err)
	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "get_page_context", verr.Tool)
}

func TestPageContext_RejectsUnknownPeriodType(t *testing.T) {
	tool := PageContext(testClient("http://unused"))
	_, err := tool.Invoke(context.Background(), json.RawMessage(`{"pagePath":"/","periodType":"month"}`))
	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestListPages_DefaultLimitSerialized(t *testing.T) {
	rec, srv := newCapture(`{"pages":[],"total":0}`)
	defer srv.Close()

	tool := ListPages(testClient(srv.URL))
	_, err := tool.Invoke(context.Background(), nil)
	require.NoError(t, err)

	require.Equal(t, "/api/mcp/pages", rec.req.URL.Path)
	require.Equal(t, "20", rec.req.URL.Query().Get("limit"))
	require.False(t, rec.req.URL.Query().Has("search"))
}

func TestElementContext_RequiresLabelOrId(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not reach the network")
	}))
	defer srv.Close()

	tool := ElementContext(testClient(srv.URL))
	_, err := tool.Invoke(context.Background(), json.RawMessage(`{"pagePath":"/pricing"}`))
	require.EqualError(t, err, "either elementLabel or elementId is required")
}

func TestElementContext_LabelAlone(t *testing.T) {
	rec, srv := newCapture(`{"elements":[],"totalMatched":0}`)
	defer srv.Close()

	tool := ElementContext(testClient(srv.URL))
	_, err := tool.Invoke(context.Background(), json.RawMessage(`{"elementLabel":"Sign up"}`))
	require.NoError(t, err)
	require.Equal(t, "Sign up", rec.req.URL.Query().Get("elementLabel"))
	require.False(t, rec.req.URL.Query().Has("elementId"))
}

func TestAppContext_QuerySerialization(t *testing.T) {
	rec, srv := newCapture(`{"stats":{}}`)
	defer srv.Close()

	tool := AppContext(testClient(srv.URL))
	_, err := tool.Invoke(context.Background(), json.RawMessage(`{"periodType":"week"}`))
	require.NoError(t, err)

	q := rec.req.URL.Query()
	require.Equal(t, "/api/mcp/app-context", rec.req.URL.Path)
	require.Equal(t, "week", q.Get("periodType"))
	require.Equal(t, "7", q.Get("limit"))
}

func TestVisitors_FilterEnums(t *testing.T) {
	rec, srv := newCapture(`{"visitors":[],"total":0}`)
	defer srv.Close()

	tool := Visitors(testClient(srv.URL))
	_, err := tool.Invoke(context.Background(), json.RawMessage(`{"engagementTrend":"increasing","overallSentiment":"negative","offset":40}`))
	require.NoError(t, err)

	q := rec.req.URL.Query()
	require.Equal(t, "increasing", q.Get("engagementTrend"))
	require.Equal(t, "negative", q.Get("overallSentiment"))
	require.Equal(t, "40", q.Get("offset"))

	_, err = tool.Invoke(context.Background(), json.RawMessage(`{"engagementTrend":"skyrocketing"}`))
	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestVisitorDetail_PathAndRequiredId(t *testing.T) {
	rec, srv := newCapture(`{"visitor":{"id":"v-1"}}`)
	defer srv.Close()

	tool := VisitorDetail(testClient(srv.URL))
	_, err := tool.Invoke(context.Background(), json.RawMessage(`{"visitorId":"v-1"}`))
	require.NoError(t, err)
	require.Equal(t, "/api/mcp/visitors/v-1", rec.req.URL.Path)

	_, err = tool.Invoke(context.Background(), nil)
	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestSessions_NumericFiltersOmittedWhenZero(t *testing.T) {
	rec, srv := newCapture(`{"sessions":[],"total":0}`)
	defer srv.Close()

	tool := Sessions(testClient(srv.URL))
	_, err := tool.Invoke(context.Background(), json.RawMessage(`{"minDuration":60,"pagePath":"/checkout"}`))
	require.NoError(t, err)

	q := rec.req.URL.Query()
	require.Equal(t, "60", q.Get("minDuration"))
	require.Equal(t, "/checkout", q.Get("pagePath"))
	require.False(t, q.Has("maxDuration"))
	require.False(t, q.Has("minEventsCount"))
}

func TestSessionDetail_NumericIdInPath(t *testing.T) {
	rec, srv := newCapture(`{"session":{"id":42},"events":[]}`)
	defer srv.Close()

	tool := SessionDetail(testClient(srv.URL))
	_, err := tool.Invoke(context.Background(), json.RawMessage(`{"sessionId":42}`))
	require.NoError(t, err)
	require.Equal(t, "/api/mcp/sessions/42", rec.req.URL.Path)
}

func TestSessionDetail_RejectsStringId(t *testing.T) {
	tool := SessionDetail(testClient("http://unused"))
	_, err := tool.Invoke(context.Background(), json.RawMessage(`{"sessionId":"42"}`))
	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestUserFlows_Defaults(t *testing.T) {
	rec, srv := newCapture(`{"flows":[],"totalFlowsDetected":0}`)
	defer srv.Close()

	tool := UserFlows(testClient(srv.URL))
	_, err := tool.Invoke(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "/api/mcp/flows", rec.req.URL.Path)
	require.Equal(t, "10", rec.req.URL.Query().Get("limit"))
}

func TestInvoke_SurfacesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "page not found", http.StatusNotFound)
	}))
	defer srv.Close()

	tool := ListPages(testClient(srv.URL))
	_, err := tool.Invoke(context.Background(), nil)
	require.Error(t, err)
	var herr *client.HTTPError
	require.ErrorAs(t, err, &herr)
	require.Equal(t, http.StatusNotFound, herr.Status)
}
