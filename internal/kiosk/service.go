package kiosk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"kiosk/internal/cart"
	"kiosk/internal/menu"
	"kiosk/internal/render"
	"kiosk/internal/snapshot"

	"go.uber.org/zap"
)

var ErrInvalidSession = errors.New("invalid session")

// Selection is what every cart operation hands back: the re-rendered
// selection area plus the data it was rendered from.
type Selection struct {
	SessionID string                    `json:"session_id"`
	Items     []render.SelectedItemView `json:"items"`
	Total     int64                     `json:"total"`
	TotalText string                    `json:"total_text"`
	Cart      json.RawMessage           `json:"cart"`
	HTML      string                    `json:"html"`
	// Ignored is set when the operation was a no-op, e.g. a quantity
	// change for an item that is no longer selected.
	Ignored bool `json:"ignored,omitempty"`
}

type SessionSummary struct {
	ID       string    `json:"id"`
	Items    int       `json:"items"`
	Total    int64     `json:"total"`
	LastSeen time.Time `json:"last_seen"`
}

// SelectRequest carries the arguments of a menu click.
// Name and Price fall back to the catalog entry when left empty.
type SelectRequest struct {
	ItemID string
	Name   string
	Price  *int64
}

// session is one kiosk page lifetime. mu serializes operations on its cart.
type session struct {
	mu       sync.Mutex
	cart     *cart.Cart
	lastSeen time.Time
}

type Service struct {
	mu       sync.Mutex
	sessions map[string]*session

	catalog  *menu.Catalog
	store    snapshot.Store
	renderer *render.Renderer
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(
	catalog *menu.Catalog,
	store snapshot.Store,
	renderer *render.Renderer,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sessions: make(map[string]*session),
		catalog:  catalog,
		store:    store,
		renderer: renderer,
		logger:   logger,
		now:      time.Now,
	}
}

// --------------------------------------------------
// Sessions
// --------------------------------------------------

// withSession runs fn with the session's cart locked, creating the session on first use.
func (s *Service) withSession(sessionID string, fn func(*cart.Cart) error) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrInvalidSession
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{cart: cart.New()}
		s.sessions[sessionID] = sess
		s.logger.Debug("session started", zap.String("session", sessionID))
	}
	sess.lastSeen = s.now()
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.cart)
}

// existingSession runs fn against the session's cart without creating the
// session. Unknown sessions see an empty cart that is thrown away, so fn
// must not add to it.
func (s *Service) existingSession(sessionID string, fn func(*cart.Cart) error) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrInvalidSession
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		sess.lastSeen = s.now()
	}
	s.mu.Unlock()

	if !ok {
		return fn(cart.New())
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.cart)
}

// Sessions lists live sessions, most recently used first.
func (s *Service) Sessions() []SessionSummary {
	s.mu.Lock()
	live := make(map[string]*session, len(s.sessions))
	summaries := make([]SessionSummary, 0, len(s.sessions))
	for id, sess := range s.sessions {
		live[id] = sess
		summaries = append(summaries, SessionSummary{ID: id, LastSeen: sess.lastSeen})
	}
	s.mu.Unlock()

	for i := range summaries {
		sess := live[summaries[i].ID]
		sess.mu.Lock()
		summaries[i].Items = sess.cart.Len()
		summaries[i].Total = sess.cart.Total()
		sess.mu.Unlock()
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].LastSeen.Equal(summaries[j].LastSeen) {
			return summaries[i].ID < summaries[j].ID
		}
		return summaries[i].LastSeen.After(summaries[j].LastSeen)
	})
	return summaries
}

// Reset ends a session; its cart is discarded. Saved snapshots are kept.
func (s *Service) Reset(ctx context.Context, sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	s.logger.Debug("session reset", zap.String("session", sessionID))
}

// Expire drops sessions idle for longer than idle and returns how many went.
func (s *Service) Expire(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			expired++
		}
	}
	return expired
}

// RunJanitor expires idle sessions every interval until ctx is done.
func (s *Service) RunJanitor(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Expire(idle); n > 0 {
				s.logger.Info("expired idle sessions", zap.Int("count", n))
			}
		}
	}
}

// --------------------------------------------------
// Cart operations
// --------------------------------------------------

func (s *Service) SelectItem(ctx context.Context, sessionID string, req SelectRequest) (*Selection, error) {
	if err := menu.ValidateItemID(req.ItemID); err != nil {
		return nil, fmt.Errorf("%w: %v", cart.ErrInvalidItem, err)
	}

	name, price := req.Name, req.Price
	if item, ok := s.catalog.Lookup(req.ItemID); ok {
		if name == "" {
			name = item.Name
		}
		if price == nil {
			price = &item.Price
		}
	}
	if price == nil {
		return nil, fmt.Errorf("%w: price required for %q", cart.ErrInvalidItem, req.ItemID)
	}

	var sel *Selection
	err := s.withSession(sessionID, func(c *cart.Cart) error {
		if err := c.SelectItem(req.ItemID, name, *price); err != nil {
			return err
		}
		var err error
		sel, err = s.project(sessionID, c)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("item selected",
		zap.String("session", sessionID),
		zap.String("item", req.ItemID),
	)
	return sel, nil
}

// UpdateQuantity changes the quantity of a selected item. A change for an
// item that is not selected leaves the cart untouched and is reported
// through Selection.Ignored.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, itemID string, delta int) (*Selection, error) {
	var sel *Selection
	err := s.existingSession(sessionID, func(c *cart.Cart) error {
		ignored := false
		if err := c.UpdateQuantity(itemID, delta); err != nil {
			if !errors.Is(err, cart.ErrItemNotSelected) {
				return err
			}
			s.logger.Info("quantity change ignored",
				zap.String("session", sessionID),
				zap.String("item", itemID),
				zap.Int("delta", delta),
			)
			ignored = true
		}

		var err error
		sel, err = s.project(sessionID, c)
		if sel != nil {
			sel.Ignored = ignored
		}
		return err
	})
	return sel, err
}

func (s *Service) Selection(ctx context.Context, sessionID string) (*Selection, error) {
	var sel *Selection
	err := s.existingSession(sessionID, func(c *cart.Cart) error {
		var err error
		sel, err = s.project(sessionID, c)
		return err
	})
	return sel, err
}

// RenderPage writes the whole kiosk page for the session.
func (s *Service) RenderPage(ctx context.Context, sessionID string, w io.Writer, notice string) error {
	return s.existingSession(sessionID, func(c *cart.Cart) error {
		return s.renderer.RenderPage(w, s.catalog.Items(), c, notice)
	})
}

// --------------------------------------------------
// Snapshots
// --------------------------------------------------

// SaveSelection writes the cart as JSON under snapshot.SelectionKey,
// overwriting the previous snapshot of this session.
func (s *Service) SaveSelection(ctx context.Context, sessionID string) (*Selection, error) {
	var sel *Selection
	err := s.withSession(sessionID, func(c *cart.Cart) error {
		var err error
		sel, err = s.project(sessionID, c)
		if err != nil {
			return err
		}
		if err := s.store.Put(ctx, sessionID, snapshot.SelectionKey, sel.Cart); err != nil {
			return fmt.Errorf("save selection: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("selection saved",
		zap.String("session", sessionID),
		zap.Int("items", len(sel.Items)),
	)
	return sel, nil
}

// LoadSelection replaces the cart with the last saved snapshot.
// Without a snapshot the cart is left as it is and restored is false.
func (s *Service) LoadSelection(ctx context.Context, sessionID string) (sel *Selection, restored bool, err error) {
	err = s.withSession(sessionID, func(c *cart.Cart) error {
		data, err := s.store.Get(ctx, sessionID, snapshot.SelectionKey)
		switch {
		case errors.Is(err, snapshot.ErrNotFound):
		case err != nil:
			return fmt.Errorf("load selection: %w", err)
		default:
			if err := json.Unmarshal(data, c); err != nil {
				return fmt.Errorf("decode selection: %w", err)
			}
			restored = true
		}

		sel, err = s.project(sessionID, c)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return sel, restored, nil
}

// SavedSelection returns the raw snapshot last saved by a session.
func (s *Service) SavedSelection(ctx context.Context, sessionID string) ([]byte, error) {
	return s.store.Get(ctx, sessionID, snapshot.SelectionKey)
}

// --------------------------------------------------
// Projection
// --------------------------------------------------

func (s *Service) project(sessionID string, c *cart.Cart) (*Selection, error) {
	html, err := s.renderer.RenderSelectedItems(c)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode selection: %w", err)
	}

	total := c.Total()
	return &Selection{
		SessionID: sessionID,
		Items:     render.BuildSelection(c),
		Total:     total,
		TotalText: render.FormatWon(total),
		Cart:      data,
		HTML:      html,
	}, nil
}
