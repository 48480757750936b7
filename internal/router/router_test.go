package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"transactions-api/internal/config"
	"transactions-api/internal/ledger"
	"transactions-api/internal/session"
	"transactions-api/internal/storage/memory"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newTestServer() *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
	}
	ldg := ledger.New(memory.New(), nil)
	sess := session.NewProvider(config.SessionConfig{})
	return SetupRouter(cfg, ldg, sess)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, cookie string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "sessionId", Value: cookie})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "sessionId" {
			return c
		}
	}
	return nil
}

func TestCreate_IssuesCookieWhenAbsent(t *testing.T) {
	r := newTestServer()

	w := doJSON(t, r, http.MethodPost, "/transactions",
		`{"title":"Salary","amount":5000,"type":"credit"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}

	c := sessionCookie(t, w)
	if c == nil {
		t.Fatal("no sessionId cookie set on first write")
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		t.Errorf("cookie value %q is not a valid UUID: %v", c.Value, err)
	}
	if c.Path != "/" {
		t.Errorf("cookie path = %q, want /", c.Path)
	}
	if c.MaxAge != 30*24*60*60 {
		t.Errorf("cookie max-age = %d, want 30 days", c.MaxAge)
	}

	var rows []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("response is not a JSON array: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("response has %d rows, want 1", len(rows))
	}
	if rows[0]["title"] != "Salary" {
		t.Errorf("title = %v, want Salary", rows[0]["title"])
	}
	if rows[0]["amount"] != "5000" {
		t.Errorf("amount = %v, want 5000", rows[0]["amount"])
	}
}

func TestCreate_KeepsPresentedCookie(t *testing.T) {
	r := newTestServer()

	w := doJSON(t, r, http.MethodPost, "/transactions",
		`{"title":"Rent","amount":1200,"type":"debit"}`, "S1")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if c := sessionCookie(t, w); c != nil {
		t.Errorf("cookie reissued for a caller that already presented one: %v", c)
	}

	var rows []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rows[0]["session_id"] != "S1" {
		t.Errorf("session_id = %v, want S1", rows[0]["session_id"])
	}
	if rows[0]["amount"] != "-1200" {
		t.Errorf("debit amount = %v, want -1200", rows[0]["amount"])
	}
}

func TestCreate_RejectsBadBody(t *testing.T) {
	r := newTestServer()

	cases := []string{
		`{"amount":10,"type":"credit"}`,              // missing title
		`{"title":"x","type":"credit"}`,              // missing amount
		`{"title":"x","amount":10,"type":"transfer"}`, // bad type
		`not json`,
	}
	for _, body := range cases {
		w := doJSON(t, r, http.MethodPost, "/transactions", body, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
}

func TestList_RequiresSession(t *testing.T) {
	r := newTestServer()

	w := doJSON(t, r, http.MethodGet, "/transactions", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["error"] != "Unauthorized" {
		t.Errorf("error = %q, want Unauthorized", body["error"])
	}
}

func TestList_ScopedToSession(t *testing.T) {
	r := newTestServer()

	doJSON(t, r, http.MethodPost, "/transactions", `{"title":"Salary","amount":5000,"type":"credit"}`, "S1")
	doJSON(t, r, http.MethodPost, "/transactions", `{"title":"Gift","amount":200,"type":"credit"}`, "S2")

	w := doJSON(t, r, http.MethodGet, "/transactions", "", "S2")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Transactions []map[string]any `json:"transactions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Transactions) != 1 {
		t.Fatalf("S2 sees %d transactions, want 1", len(body.Transactions))
	}
	if body.Transactions[0]["title"] != "Gift" {
		t.Errorf("title = %v, want Gift", body.Transactions[0]["title"])
	}
}

func TestSummary(t *testing.T) {
	r := newTestServer()

	doJSON(t, r, http.MethodPost, "/transactions", `{"title":"Salary","amount":5000,"type":"credit"}`, "S1")
	doJSON(t, r, http.MethodPost, "/transactions", `{"title":"Rent","amount":1200,"type":"debit"}`, "S1")

	w := doJSON(t, r, http.MethodGet, "/transactions/summary", "", "S1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Summary struct {
			Amount string `json:"amount"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Summary.Amount != "3800" {
		t.Errorf("summary amount = %q, want 3800", body.Summary.Amount)
	}
}

func TestSummary_RequiresSession(t *testing.T) {
	r := newTestServer()

	w := doJSON(t, r, http.MethodGet, "/transactions/summary", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestGet_ByID(t *testing.T) {
	r := newTestServer()

	w := doJSON(t, r, http.MethodPost, "/transactions", `{"title":"Salary","amount":5000,"type":"credit"}`, "S1")
	var rows []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	id := rows[0]["id"].(string)

	// no cookie needed: fetch-by-id is public to anyone holding the UUID
	w = doJSON(t, r, http.MethodGet, "/transactions/"+id, "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Transaction map[string]any `json:"transaction"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Transaction["id"] != id {
		t.Errorf("id = %v, want %v", body.Transaction["id"], id)
	}
}

func TestGet_MissingIsNull(t *testing.T) {
	r := newTestServer()

	w := doJSON(t, r, http.MethodGet, "/transactions/"+uuid.NewString(), "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if string(body["transaction"]) != "null" {
		t.Errorf("transaction = %s, want null", body["transaction"])
	}
}

func TestGet_RejectsMalformedID(t *testing.T) {
	r := newTestServer()

	w := doJSON(t, r, http.MethodGet, "/transactions/not-a-uuid", "", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestExportCSV(t *testing.T) {
	r := newTestServer()

	doJSON(t, r, http.MethodPost, "/transactions", `{"title":"Salary","amount":5000,"type":"credit"}`, "S1")

	w := doJSON(t, r, http.MethodGet, "/transactions/export/csv", "", "S1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q, want text/csv", ct)
	}
	if !strings.Contains(w.Body.String(), "Salary") {
		t.Error("CSV body does not contain the exported row")
	}
}

func TestExportXLSX(t *testing.T) {
	r := newTestServer()

	doJSON(t, r, http.MethodPost, "/transactions", `{"title":"Salary","amount":5000,"type":"credit"}`, "S1")

	w := doJSON(t, r, http.MethodGet, "/transactions/export/xlsx", "", "S1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content type = %q, want an xlsx type", ct)
	}
	// xlsx files are zip archives
	if !strings.HasPrefix(w.Body.String(), "PK") {
		t.Error("body does not look like a zip archive")
	}
}

func TestExportCSV_RequiresSession(t *testing.T) {
	r := newTestServer()

	w := doJSON(t, r, http.MethodGet, "/transactions/export/csv", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestHealth(t *testing.T) {
	r := newTestServer()

	w := doJSON(t, r, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
