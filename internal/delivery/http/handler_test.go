package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/creditwise/backend/config"
	"github.com/creditwise/backend/internal/auth"
	"github.com/creditwise/backend/internal/domain"
	"github.com/creditwise/backend/internal/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type scriptedAdvisor struct {
	reply string
}

func (a *scriptedAdvisor) Advise(ctx context.Context, history []domain.ChatTurn, system, message string) (string, error) {
	return a.reply, nil
}

// memRepo is a map-backed CardRepository for handler tests.
type memRepo struct {
	cards map[string]domain.Card
}

func newMemRepo(cards ...domain.Card) *memRepo {
	r := &memRepo{cards: make(map[string]domain.Card)}
	for _, c := range cards {
		r.cards[c.ID] = c
	}
	return r
}

func (r *memRepo) List(ctx context.Context) ([]domain.Card, error) {
	var out []domain.Card
	for _, c := range r.cards {
		out = append(out, c)
	}
	return out, nil
}

func (r *memRepo) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	c, ok := r.cards[id]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	return &c, nil
}

func (r *memRepo) Search(ctx context.Context, filter domain.CardFilter) ([]domain.Card, error) {
	return r.List(ctx)
}

func (r *memRepo) Create(ctx context.Context, card domain.Card) (*domain.Card, error) {
	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	r.cards[card.ID] = card
	return &card, nil
}

func (r *memRepo) Update(ctx context.Context, id string, card domain.Card) (*domain.Card, error) {
	if _, ok := r.cards[id]; !ok {
		return nil, domain.ErrCardNotFound
	}
	card.ID = id
	r.cards[id] = card
	return &card, nil
}

func (r *memRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.cards[id]; !ok {
		return domain.ErrCardNotFound
	}
	delete(r.cards, id)
	return nil
}

func (r *memRepo) DeleteAll(ctx context.Context) error {
	r.cards = make(map[string]domain.Card)
	return nil
}

func testRouter(repo domain.CardRepository) *gin.Engine {
	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	cfg.Server.AllowedOrigins = []string{"http://localhost:5173"}

	fallback := []domain.Card{
		{ID: "fb1", Name: "Fallback Cashback", Issuer: "Fallback Bank", RewardType: "Cashback", RewardRate: 5, MinIncome: 20000, Tier: domain.TierEntryLevel},
	}
	catalog := usecase.NewCatalogService(repo, nil, fallback, time.Minute)
	scorer := usecase.NewScorer(false)
	conversation := usecase.NewConversation(&scriptedAdvisor{reply: "Nice to meet you!"}, catalog, usecase.NewExtractor(false), scorer, false)
	tokens := auth.NewTokenService("test-secret", time.Hour)
	handler := NewHandler(conversation, catalog, scorer, tokens, "admin", "secret")

	return SetupRouter(cfg, handler, tokens)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router := testRouter(nil)
	w := doJSON(t, router, "GET", "/health", nil, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status = %q, want healthy", resp["status"])
	}
}

func TestChatSessionFlow(t *testing.T) {
	router := testRouter(nil)

	w := doJSON(t, router, "POST", "/api/v1/chat/sessions", nil, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", w.Code)
	}
	var created struct {
		SessionID string           `json:"sessionId"`
		Messages  []domain.Message `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if created.SessionID == "" || len(created.Messages) != 1 {
		t.Fatalf("unexpected create payload: %s", w.Body.String())
	}

	w = doJSON(t, router, "POST", "/api/v1/chat/sessions/"+created.SessionID+"/messages",
		map[string]string{"message": "Hi, I'm Rahul"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("message status = %d, want 200: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, "GET", "/api/v1/chat/sessions/"+created.SessionID, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", w.Code)
	}
	var fetched struct {
		Profile  domain.Profile   `json:"profile"`
		Messages []domain.Message `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if fetched.Profile.Name != "Rahul" {
		t.Errorf("profile name = %q, want Rahul", fetched.Profile.Name)
	}
	if len(fetched.Messages) != 3 {
		t.Errorf("transcript length = %d, want 3", len(fetched.Messages))
	}

	w = doJSON(t, router, "DELETE", "/api/v1/chat/sessions/"+created.SessionID, nil, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", w.Code)
	}
	w = doJSON(t, router, "GET", "/api/v1/chat/sessions/"+created.SessionID, nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
}

func TestPostMessageValidation(t *testing.T) {
	router := testRouter(nil)

	w := doJSON(t, router, "POST", "/api/v1/chat/sessions", nil, nil)
	var created struct {
		SessionID string `json:"sessionId"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(t, router, "POST", "/api/v1/chat/sessions/"+created.SessionID+"/messages",
		map[string]string{"message": "   "}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank message status = %d, want 400", w.Code)
	}

	w = doJSON(t, router, "POST", "/api/v1/chat/sessions/unknown/messages",
		map[string]string{"message": "hello"}, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown session status = %d, want 404", w.Code)
	}
}

func TestQuestionnaireEndpoint(t *testing.T) {
	router := testRouter(nil)

	body := map[string]interface{}{
		"income":           80000,
		"card_preferences": []string{"cashback"},
	}
	w := doJSON(t, router, "POST", "/api/v1/recommendations/questionnaire", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Recommendations []domain.Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(resp.Recommendations) == 0 {
		t.Fatal("expected recommendations from the fallback pool")
	}
}

func TestListCardsFallsBack(t *testing.T) {
	router := testRouter(nil)

	w := doJSON(t, router, "GET", "/api/v1/cards", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Cards []domain.Card `json:"cards"`
		Total int           `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Total != 1 || resp.Cards[0].Name != "Fallback Cashback" {
		t.Errorf("unexpected cards payload: %s", w.Body.String())
	}
}

func TestAdminAuth(t *testing.T) {
	repo := newMemRepo()
	router := testRouter(repo)

	t.Run("wrong credentials rejected", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/admin/login",
			map[string]string{"username": "admin", "password": "wrong"}, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("create without token rejected", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/admin/cards",
			domain.CardRecord{Name: "X", Issuer: "Y"}, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("full login and create flow", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/admin/login",
			map[string]string{"username": "admin", "password": "secret"}, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("login status = %d, want 200: %s", w.Code, w.Body.String())
		}
		var login struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil || login.Token == "" {
			t.Fatalf("no token in login response: %s", w.Body.String())
		}

		headers := map[string]string{"Authorization": "Bearer " + login.Token}
		record := domain.CardRecord{
			Name: "Admin Card", Issuer: "Admin Bank", Network: "Visa",
			BaseRewardRate: 2.5, CardCategory: domain.TierMidLevel, MinIncome: 40000,
		}
		w = doJSON(t, router, "POST", "/api/v1/admin/cards", record, headers)
		if w.Code != http.StatusCreated {
			t.Fatalf("create status = %d, want 201: %s", w.Code, w.Body.String())
		}

		var created domain.Card
		if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if created.ID == "" || created.RewardRate != 2.5 {
			t.Errorf("unexpected created card: %+v", created)
		}

		w = doJSON(t, router, "DELETE", "/api/v1/admin/cards/"+created.ID, nil, headers)
		if w.Code != http.StatusNoContent {
			t.Errorf("delete status = %d, want 204", w.Code)
		}
	})

	t.Run("validation rejects a nameless card", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/admin/login",
			map[string]string{"username": "admin", "password": "secret"}, nil)
		var login struct {
			Token string `json:"token"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &login)
		headers := map[string]string{"Authorization": "Bearer " + login.Token}

		w = doJSON(t, router, "POST", "/api/v1/admin/cards",
			domain.CardRecord{Issuer: "Bank"}, headers)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}
