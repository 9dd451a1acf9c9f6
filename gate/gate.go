// Package gate keeps the per-visitor "authorized" flag and display name that
// the tracking pages check on entry. It is an access flag, not authentication.
package gate

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"technician-tracker/models"
)

const (
	CookieName       = "visitor_id"
	MinInitialsLen   = 2
	DefaultEntryPath = "/enter"
)

var (
	ErrInitialsTooShort = errors.New("initials must be at least 2 characters")
	ErrVisitorNotFound  = errors.New("visitor not found")
)

// Store persists visitors between requests.
type Store interface {
	Load(ctx context.Context, id string) (*models.Visitor, error)
	Save(ctx context.Context, v *models.Visitor) error
}

type Gate struct {
	store     Store
	entryPath string
}

func New(store Store, entryPath string) *Gate {
	if entryPath == "" {
		entryPath = DefaultEntryPath
	}
	return &Gate{store: store, entryPath: entryPath}
}

func (g *Gate) EntryPath() string {
	return g.entryPath
}

// Enter marks the visitor as authorized under the given initials. An empty
// visitorID gets a fresh one.
func (g *Gate) Enter(ctx context.Context, visitorID, initials string) (*models.Visitor, error) {
	initials = strings.TrimSpace(initials)
	if len([]rune(initials)) < MinInitialsLen {
		return nil, ErrInitialsTooShort
	}
	if visitorID == "" {
		visitorID = uuid.NewString()
	}
	v := &models.Visitor{
		ID:         visitorID,
		Name:       initials,
		Authorized: true,
		EnteredAt:  time.Now(),
	}
	if err := g.store.Save(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Authorized reports whether visitorID has entered. Store errors count as
// not authorized.
func (g *Gate) Authorized(ctx context.Context, visitorID string) bool {
	_, ok := g.visitor(ctx, visitorID)
	return ok
}

func (g *Gate) visitor(ctx context.Context, visitorID string) (*models.Visitor, bool) {
	if visitorID == "" {
		return nil, false
	}
	v, err := g.store.Load(ctx, visitorID)
	if err != nil {
		if !errors.Is(err, ErrVisitorNotFound) {
			log.Printf("Visitor lookup failed for %s: %v", visitorID, err)
		}
		return nil, false
	}
	return v, v.Authorized
}

// Require redirects visitors that have not entered to the entry page.
func (g *Gate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(CookieName)
		if err != nil {
			http.Redirect(w, r, g.entryPath, http.StatusSeeOther)
			return
		}
		v, ok := g.visitor(r.Context(), c.Value)
		if !ok {
			http.Redirect(w, r, g.entryPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithVisitor(r.Context(), v)))
	})
}

type visitorKey struct{}

func WithVisitor(ctx context.Context, v *models.Visitor) context.Context {
	return context.WithValue(ctx, visitorKey{}, v)
}

// VisitorFrom returns the visitor Require attached to the request context.
func VisitorFrom(ctx context.Context) (*models.Visitor, bool) {
	v, ok := ctx.Value(visitorKey{}).(*models.Visitor)
	return v, ok
}
