package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/creditwise/backend/internal/domain"
)

// Session states
type SessionState string

const (
	StateGreeting   SessionState = "greeting"
	StateCollecting SessionState = "collecting"
	StateReady      SessionState = "ready"
	StateAnalyzing  SessionState = "analyzing"
	StatePresenting SessionState = "presenting"
)

// Completion phrases the advisor is instructed to emit once the profile is
// complete. Their presence in a reply is one of the analysis triggers.
var completionPhrases = []string{
	"perfect! i have everything i need",
	"analyze the best credit cards for your profile",
}

var affirmations = []string{"yes", "sure", "proceed", "ok", "okay", "go ahead", "yes please"}

var redirectPhrases = []string{
	"see more details",
	"full recommendations",
	"recommendations page",
	"more details",
}

const greetingText = "Hi! I'm your credit card advisor. I'll help you find the perfect card for your needs. To get started, could you tell me your name?"

// Session holds one conversation's accumulated state. Access is serialized
// through the session mutex; a busy flag rejects concurrent messages on the
// same session instead of queueing them.
type Session struct {
	ID         string
	State      SessionState
	Profile    domain.Profile
	Transcript []domain.Message
	history    []domain.ChatTurn
	busy       bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	mu sync.Mutex
}

// Conversation orchestrates the chat flow: extraction, gating, the advisor
// call, and the analysis hand-off to the scorer.
type Conversation struct {
	advisor domain.Advisor
	catalog *CatalogService
	extract *Extractor
	scorer  *Scorer
	debug   bool

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewConversation creates the orchestrator.
func NewConversation(advisor domain.Advisor, catalog *CatalogService, extractor *Extractor, scorer *Scorer, debug bool) *Conversation {
	return &Conversation{
		advisor:  advisor,
		catalog:  catalog,
		extract:  extractor,
		scorer:   scorer,
		debug:    debug,
		sessions: make(map[string]*Session),
	}
}

// StartSession creates a session seeded with the greeting message.
func (c *Conversation) StartSession() *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.New().String(),
		State:     StateGreeting,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Transcript = append(s.Transcript, domain.Message{
		ID:        uuid.New().String(),
		Role:      domain.RoleAI,
		Content:   greetingText,
		Timestamp: now,
	})
	s.history = append(s.history, domain.ChatTurn{Role: domain.RoleAI, Text: greetingText})

	c.mu.Lock()
	c.sessions[s.ID] = s
	c.mu.Unlock()
	return s
}

// Session fetches a session by id.
func (c *Conversation) Session(id string) (*Session, error) {
	c.mu.RLock()
	s, ok := c.sessions[id]
	c.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// EndSession discards a session.
func (c *Conversation) EndSession(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(c.sessions, id)
	return nil
}

// HandleMessage processes one user turn and returns the AI messages it
// produced. A session already mid-turn returns ErrSessionBusy.
func (c *Conversation) HandleMessage(ctx context.Context, sessionID, text string) ([]domain.Message, error) {
	s, err := c.Session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, domain.ErrSessionBusy
	}
	s.busy = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	// The busy flag excludes concurrent turns, so from here on the session
	// mutex only guards the short state and profile mutations against
	// readers such as GetSession; the append helpers take the same lock.
	s.appendUser(text)
	s.mu.Lock()
	if s.State == StateGreeting {
		s.State = StateCollecting
	}
	state := s.State
	s.mu.Unlock()

	lower := strings.ToLower(strings.TrimSpace(text))

	// Navigation intent: point at the details view, no advisor round trip
	if state == StatePresenting && wantsDetails(lower) {
		msg := s.appendAI("You can view the complete analysis with detailed comparisons on the recommendations page. Head over there to see reward simulations and apply links for each card!", nil)
		return []domain.Message{msg}, nil
	}

	// Extraction runs on every user message, including the ones a quick
	// intent answers, so a phrasing like "best cashback cards" still lands
	// its benefit preference in the profile.
	s.mu.Lock()
	patch := c.extract.Extract(text, s.Profile)
	s.Profile.Merge(patch)
	if ConversationComplete(s.Profile) && s.State == StateCollecting {
		s.State = StateReady
	}
	profile := s.Profile
	s.mu.Unlock()

	// Quick catalog intents answered straight from the pool
	if msgs, ok := c.quickIntent(ctx, s, lower); ok {
		return msgs, nil
	}

	pool := c.catalog.Pool(ctx)
	system := c.buildSystemContext(profile, pool)

	reply, advErr := c.advisor.Advise(ctx, s.history, system, text)
	if advErr != nil {
		log.Printf("[CHAT] advisor call failed for session %s: %v", s.ID, advErr)
		msg := s.appendAI("I'm sorry, I'm having a little trouble right now. Could you please repeat that?", nil)
		return []domain.Message{msg}, nil
	}

	complete := ConversationComplete(profile)
	if shouldAnalyze(reply, lower, patch, complete) {
		return c.runAnalysis(s, profile, pool), nil
	}

	msg := s.appendAI(reply, nil)
	out := []domain.Message{msg}

	// If the advisor named catalog cards in free text, surface them as
	// widgets, but only once the profile is complete. Before that, card
	// names in a reply are conversation, not recommendations.
	if complete {
		out = append(out, c.widgetsForMentions(s, reply, pool)...)
	}
	return out, nil
}

// shouldAnalyze is the triple gate in front of the analysis pipeline. Every
// branch requires the completeness check so a chatty reply or an eager "yes"
// can never trigger scoring on a half-built profile.
func shouldAnalyze(reply, userText string, patch domain.Profile, complete bool) bool {
	if !complete {
		return false
	}
	replyLower := strings.ToLower(reply)
	for _, phrase := range completionPhrases {
		if strings.Contains(replyLower, phrase) {
			return true
		}
	}
	for _, a := range affirmations {
		if userText == a {
			return true
		}
	}
	// A single message that filled most of the profile skips the
	// confirmation round trip
	return patch.FieldCount() >= 4
}

func (c *Conversation) runAnalysis(s *Session, profile domain.Profile, pool []domain.Card) []domain.Message {
	s.setState(StateAnalyzing)

	name := profile.Name
	if name == "" {
		name = "there"
	}
	intro := s.appendAI(fmt.Sprintf("Perfect! I have all the information I need, %s. Let me analyze the best credit cards for your profile... 🔍", name), nil)
	out := []domain.Message{intro}

	recs, err := c.scorer.Recommend(profile, pool)
	if err != nil {
		s.setState(StateCollecting)
		msg := s.appendAI(fmt.Sprintf("I couldn't find any cards matching an income of ₹%d per month. Most cards need a higher minimum income. Would you like to explore entry-level options anyway?", profile.Income), nil)
		return append(out, msg)
	}

	medals := []string{"🥇", "🥈", "🥉"}
	out = append(out, s.appendAI(fmt.Sprintf("Based on your profile, here are my top %d credit card recommendations:", len(recs)), nil))
	for i, rec := range recs {
		medal := ""
		if i < len(medals) {
			medal = medals[i] + " "
		}
		widget := &domain.CardWidget{
			Card:       rec.Card,
			MatchScore: rec.Score,
			Reasons:    rec.Reasons,
		}
		out = append(out, s.appendAI(fmt.Sprintf("%s%s by %s", medal, rec.Card.Name, rec.Card.Issuer), widget))
	}
	out = append(out, s.appendAI("These cards match your income, spending habits and benefit preferences. Ask me about any of them, or say \"see more details\" for the full comparison!", nil))

	s.setState(StatePresenting)
	return out
}

// quickIntent answers common catalog questions without the advisor.
func (c *Conversation) quickIntent(ctx context.Context, s *Session, lower string) ([]domain.Message, bool) {
	var match func(domain.Card) bool
	var header string

	switch {
	case strings.Contains(lower, "hdfc") && (strings.Contains(lower, "cards") || strings.Contains(lower, "list")):
		header = "Here are the HDFC cards I know about:"
		match = func(card domain.Card) bool {
			return strings.Contains(strings.ToLower(card.Issuer), "hdfc")
		}
	case strings.Contains(lower, "cashback") && (strings.Contains(lower, "best") || strings.Contains(lower, "cards")):
		header = "These cards are strongest on cashback:"
		match = func(card domain.Card) bool {
			t := strings.ToLower(card.RewardType)
			return strings.Contains(t, "cashback") || strings.Contains(t, "cash")
		}
	case strings.Contains(lower, "travel") && strings.Contains(lower, "cards"):
		header = "For travel, take a look at these:"
		match = func(card domain.Card) bool {
			return strings.Contains(strings.ToLower(card.RewardType), "miles") || bestForContains(card, "travel")
		}
	default:
		return nil, false
	}

	pool := c.catalog.Pool(ctx)
	var hits []domain.Card
	for _, card := range pool {
		if match(card) {
			hits = append(hits, card)
		}
	}
	if len(hits) == 0 {
		return nil, false
	}
	if len(hits) > 3 {
		hits = hits[:3]
	}

	out := []domain.Message{s.appendAI(header, nil)}
	for i, card := range hits {
		widget := &domain.CardWidget{
			Card:       card,
			MatchScore: 95 - 5*i,
			Reasons:    []string{fmt.Sprintf("%s%% %s", formatRate(card.RewardRate), card.RewardType)},
		}
		out = append(out, s.appendAI(fmt.Sprintf("%s by %s", card.Name, card.Issuer), widget))
	}
	return out, true
}

// widgetsForMentions scans a free-text reply for catalog card names and
// attaches widgets for the ones it finds, in pool order.
func (c *Conversation) widgetsForMentions(s *Session, reply string, pool []domain.Card) []domain.Message {
	replyLower := strings.ToLower(reply)
	var out []domain.Message
	for _, card := range pool {
		if len(out) >= 3 {
			break
		}
		if !strings.Contains(replyLower, strings.ToLower(card.Name)) {
			continue
		}
		widget := &domain.CardWidget{
			Card:       card,
			MatchScore: 95 - 5*len(out),
			Reasons:    []string{fmt.Sprintf("%s%% %s", formatRate(card.RewardRate), card.RewardType)},
		}
		out = append(out, s.appendAI(fmt.Sprintf("%s by %s", card.Name, card.Issuer), widget))
	}
	return out
}

// buildSystemContext assembles the advisor's system prompt: the profile so
// far, the serialized catalog, and the behavioral contract including the
// exact completion phrase the trigger check looks for.
func (c *Conversation) buildSystemContext(profile domain.Profile, pool []domain.Card) string {
	var b strings.Builder

	b.WriteString("You are a friendly credit card advisor for the Indian market. ")
	b.WriteString("Collect the user's name, monthly income, age, credit score and preferred benefit type, one question at a time. ")
	b.WriteString("Keep replies short and conversational. Never invent cards that are not in the catalog below.\n\n")

	profileJSON, err := json.Marshal(profile)
	if err == nil {
		b.WriteString("KNOWN PROFILE: ")
		b.Write(profileJSON)
		b.WriteString("\n\n")
	}

	b.WriteString("CARD CATALOG:\n")
	for _, card := range pool {
		fmt.Fprintf(&b, "- %s (%s): min income ₹%d/month, annual fee ₹%d, %s%% %s, tier %s\n",
			card.Name, card.Issuer, card.MinIncome, card.AnnualFee,
			formatRate(card.RewardRate), card.RewardType, card.Tier)
	}
	b.WriteString("\n")

	if ConversationComplete(profile) {
		b.WriteString("The profile is complete. Say exactly: \"Perfect! I have everything I need. Let me analyze the best credit cards for your profile.\"\n")
	} else {
		b.WriteString("The profile is not complete yet. Ask for the next missing field. Do not recommend specific cards yet.\n")
	}

	if c.debug {
		log.Printf("[CHAT] system context: %d chars, %d cards", b.Len(), len(pool))
	}
	return b.String()
}

func wantsDetails(lower string) bool {
	if lower == "details" {
		return true
	}
	for _, p := range redirectPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Snapshot returns the session state and profile under the lock, for
// readers that run concurrently with an in-flight turn.
func (s *Session) Snapshot() (SessionState, domain.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.State, s.Profile
}

func (s *Session) setState(st SessionState) {
	s.mu.Lock()
	s.State = st
	s.mu.Unlock()
}

// Messages returns a snapshot of the transcript.
func (s *Session) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.Transcript))
	copy(out, s.Transcript)
	return out
}

func (s *Session) appendUser(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.Transcript = append(s.Transcript, domain.Message{
		ID:        uuid.New().String(),
		Role:      domain.RoleUser,
		Content:   text,
		Timestamp: now,
	})
	s.history = append(s.history, domain.ChatTurn{Role: domain.RoleUser, Text: text})
	s.UpdatedAt = now
}

func (s *Session) appendAI(text string, widget *domain.CardWidget) domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	msg := domain.Message{
		ID:        uuid.New().String(),
		Role:      domain.RoleAI,
		Content:   text,
		Widget:    widget,
		Timestamp: now,
	}
	s.Transcript = append(s.Transcript, msg)
	s.history = append(s.history, domain.ChatTurn{Role: domain.RoleAI, Text: text})
	s.UpdatedAt = now
	return msg
}
