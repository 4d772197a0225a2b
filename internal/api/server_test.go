package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/divvyup/divvyup/internal/auth"
	"github.com/divvyup/divvyup/internal/currency"
	"github.com/divvyup/divvyup/internal/service"
	"github.com/divvyup/divvyup/internal/storage/sqlite"
)

// setupTestAPI boots the full stack against a throwaway database and a
// stubbed exchange-rate endpoint.
func setupTestAPI(t *testing.T) (*httptest.Server, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "divvyup-api-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.SeedCategories(context.Background()); err != nil {
		t.Fatalf("failed to seed categories: %v", err)
	}

	rateServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates": {"EUR": 0.9, "GBP": 0.8, "USD": 1.0}}`))
	}))

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)
	fx := currency.New(store, rateServer.URL+"/")

	server := New(
		store,
		authenticator,
		jwtManager,
		fx,
		service.NewExpenseService(store),
		service.NewBalanceService(store),
		service.NewAnalyticsService(store, fx),
		service.NewSettlementService(store),
	)
	apiServer := httptest.NewServer(server.Router())

	cleanup := func() {
		apiServer.Close()
		rateServer.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}
	return apiServer, cleanup
}

// doJSON performs a request and decodes the JSON response body.
func doJSON(t *testing.T, method, url, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.StatusCode, decoded
}

func registerUser(t *testing.T, baseURL, email, firstName string) (string, string) {
	t.Helper()
	status, body := doJSON(t, http.MethodPost, baseURL+"/api/auth/register", "", map[string]string{
		"email":     email,
		"password":  "a secure password",
		"firstName": firstName,
		"lastName":  "Tester",
	})
	if status != http.StatusCreated {
		t.Fatalf("register returned %d: %v", status, body)
	}
	token, _ := body["token"].(string)
	user, _ := body["user"].(map[string]any)
	id, _ := user["id"].(string)
	if token == "" || id == "" {
		t.Fatalf("register response missing token or user id: %v", body)
	}
	return token, id
}

func TestAPI_RegisterAndLogin(t *testing.T) {
	server, cleanup := setupTestAPI(t)
	defer cleanup()

	token, _ := registerUser(t, server.URL, "alice@example.com", "Alice")

	status, body := doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "a secure password",
	})
	if status != http.StatusOK {
		t.Fatalf("login returned %d: %v", status, body)
	}

	status, body = doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong password",
	})
	if status != http.StatusUnauthorized {
		t.Errorf("bad login returned %d, want 401", status)
	}

	status, body = doJSON(t, http.MethodGet, server.URL+"/api/auth/user", token, nil)
	if status != http.StatusOK {
		t.Fatalf("current user returned %d: %v", status, body)
	}
	if body["email"] != "alice@example.com" {
		t.Errorf("current user email = %v, want alice@example.com", body["email"])
	}
}

func TestAPI_RequiresAuth(t *testing.T) {
	server, cleanup := setupTestAPI(t)
	defer cleanup()

	status, _ := doJSON(t, http.MethodGet, server.URL+"/api/balances", "", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("unauthenticated balances returned %d, want 401", status)
	}

	status, _ = doJSON(t, http.MethodGet, server.URL+"/api/balances", "garbage-token", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("bad token balances returned %d, want 401", status)
	}
}

func TestAPI_ExpenseAndBalanceFlow(t *testing.T) {
	server, cleanup := setupTestAPI(t)
	defer cleanup()

	aliceToken, aliceID := registerUser(t, server.URL, "alice@example.com", "Alice")
	bobToken, bobID := registerUser(t, server.URL, "bob@example.com", "Bob")

	status, body := doJSON(t, http.MethodPost, server.URL+"/api/expenses", aliceToken, map[string]any{
		"description": "Dinner",
		"amount":      60,
		"currency":    "USD",
		"splitType":   "equal",
		"splits": []map[string]any{
			{"userId": aliceID},
			{"userId": bobID},
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("create expense returned %d: %v", status, body)
	}
	splits, _ := body["splits"].([]any)
	if len(splits) != 2 {
		t.Fatalf("expense has %d splits, want 2", len(splits))
	}

	// Bob owes Alice 30.
	status, body = doJSON(t, http.MethodGet, server.URL+"/api/balances", bobToken, nil)
	if status != http.StatusOK {
		t.Fatalf("balances returned %d: %v", status, body)
	}
	if body["totalOwing"] != 30.0 {
		t.Errorf("totalOwing = %v, want 30", body["totalOwing"])
	}
	if body["netBalance"] != -30.0 {
		t.Errorf("netBalance = %v, want -30", body["netBalance"])
	}

	// Bob settles up; balances return to zero.
	status, body = doJSON(t, http.MethodPost, server.URL+"/api/settlements", bobToken, map[string]any{
		"toUserId": aliceID,
		"amount":   30,
	})
	if status != http.StatusCreated {
		t.Fatalf("create settlement returned %d: %v", status, body)
	}

	status, body = doJSON(t, http.MethodGet, server.URL+"/api/balances", aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("balances returned %d: %v", status, body)
	}
	if body["totalOwed"] != 0.0 {
		t.Errorf("totalOwed = %v, want 0 after settlement", body["totalOwed"])
	}

	status, body = doJSON(t, http.MethodGet, server.URL+"/api/expenses", bobToken, nil)
	if status != http.StatusOK {
		t.Fatalf("list expenses returned %d: %v", status, body)
	}
	expenses, _ := body["expenses"].([]any)
	if len(expenses) != 1 {
		t.Errorf("got %d expenses, want 1", len(expenses))
	}
}

func TestAPI_ExpenseValidation(t *testing.T) {
	server, cleanup := setupTestAPI(t)
	defer cleanup()

	token, id := registerUser(t, server.URL, "alice@example.com", "Alice")

	status, _ := doJSON(t, http.MethodPost, server.URL+"/api/expenses", token, map[string]any{
		"description": "No participants",
		"amount":      10,
	})
	if status != http.StatusBadRequest {
		t.Errorf("expense without splits returned %d, want 400", status)
	}

	status, _ = doJSON(t, http.MethodPost, server.URL+"/api/expenses", token, map[string]any{
		"description": "Negative",
		"amount":      -5,
		"splits":      []map[string]any{{"userId": id}},
	})
	if status != http.StatusBadRequest {
		t.Errorf("negative expense returned %d, want 400", status)
	}
}

func TestAPI_AnalyticsAndDashboard(t *testing.T) {
	server, cleanup := setupTestAPI(t)
	defer cleanup()

	aliceToken, aliceID := registerUser(t, server.URL, "alice@example.com", "Alice")
	_, bobID := registerUser(t, server.URL, "bob@example.com", "Bob")

	status, body := doJSON(t, http.MethodPost, server.URL+"/api/expenses", aliceToken, map[string]any{
		"description": "Groceries",
		"amount":      40,
		"splitType":   "equal",
		"splits": []map[string]any{
			{"userId": aliceID},
			{"userId": bobID},
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("create expense returned %d: %v", status, body)
	}

	status, body = doJSON(t, http.MethodGet, server.URL+"/api/analytics?period=30", aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("analytics returned %d: %v", status, body)
	}
	overview, _ := body["overview"].(map[string]any)
	if overview["totalSpent"] != 20.0 {
		t.Errorf("totalSpent = %v, want 20 (alice's share)", overview["totalSpent"])
	}
	trend, _ := body["spendingTrend"].([]any)
	if len(trend) != 7 {
		t.Errorf("trend has %d points, want 7", len(trend))
	}

	status, _ = doJSON(t, http.MethodGet, server.URL+"/api/analytics?period=abc", aliceToken, nil)
	if status != http.StatusBadRequest {
		t.Errorf("bad period returned %d, want 400", status)
	}

	status, _ = doJSON(t, http.MethodGet, server.URL+"/api/analytics?currency=ZZZ", aliceToken, nil)
	if status != http.StatusBadRequest {
		t.Errorf("unsupported currency returned %d, want 400", status)
	}

	status, body = doJSON(t, http.MethodGet, server.URL+"/api/dashboard", aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("dashboard returned %d: %v", status, body)
	}
	for _, key := range []string{"balances", "overview", "insights", "recentExpenses"} {
		if _, ok := body[key]; !ok {
			t.Errorf("dashboard missing %q", key)
		}
	}
}

func TestAPI_CategoriesAndCurrencies(t *testing.T) {
	server, cleanup := setupTestAPI(t)
	defer cleanup()

	status, body := doJSON(t, http.MethodGet, server.URL+"/api/categories", "", nil)
	if status != http.StatusOK {
		t.Fatalf("categories returned %d: %v", status, body)
	}
	categories, _ := body["categories"].([]any)
	if len(categories) != 7 {
		t.Errorf("got %d categories, want 7 seeded", len(categories))
	}

	token, _ := registerUser(t, server.URL, "alice@example.com", "Alice")

	status, body = doJSON(t, http.MethodGet, server.URL+"/api/currencies", token, nil)
	if status != http.StatusOK {
		t.Fatalf("currencies returned %d: %v", status, body)
	}

	status, body = doJSON(t, http.MethodGet, server.URL+"/api/exchange-rate?from=USD&to=EUR", token, nil)
	if status != http.StatusOK {
		t.Fatalf("exchange rate returned %d: %v", status, body)
	}
	if body["rate"] != 0.9 {
		t.Errorf("rate = %v, want 0.9", body["rate"])
	}

	status, _ = doJSON(t, http.MethodGet, server.URL+"/api/exchange-rate?from=USD", token, nil)
	if status != http.StatusBadRequest {
		t.Errorf("missing to currency returned %d, want 400", status)
	}
}
