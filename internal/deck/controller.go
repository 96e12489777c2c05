package deck

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const tracerName = "flashdeck/deck"

// Storage loads and saves the whole deck table.
// Load returns an empty, non-nil Table when nothing has been saved yet.
type Storage interface {
	Load(ctx context.Context) (Table, error)
	Save(ctx context.Context, t Table) error
}

// EventKind distinguishes success and error feedback.
type EventKind int

const (
	EventSuccess EventKind = iota
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventSuccess:
		return "success"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is published after every AddCard and SaveDeck call.
// Count is the session length after the operation.
type Event struct {
	Kind    EventKind
	Message string
	Count   int
}

// Listener receives controller events. It runs synchronously on the caller's goroutine.
type Listener func(Event)

// SaveResult describes a successful save.
type SaveResult struct {
	Name  string
	Cards int
}

// Controller owns the in-progress deck and mediates mutations of it.
// It is not safe for concurrent use; the UI drives it from one goroutine.
type Controller struct {
	store    Storage
	session  []Card
	listener Listener
	logger   *slog.Logger
	tracer   oteltrace.Tracer
}

// Option configures a Controller.
type Option func(*Controller)

// WithListener sets the event listener.
func WithListener(l Listener) Option {
	return func(c *Controller) { c.listener = l }
}

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithTracer overrides the tracer (defaults to the global provider).
func WithTracer(t oteltrace.Tracer) Option {
	return func(c *Controller) { c.tracer = t }
}

// NewController creates a controller with an empty session backed by store.
func NewController(store Storage, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetListener replaces the event listener. A nil listener disables events.
func (c *Controller) SetListener(l Listener) {
	c.listener = l
}

// Len returns the number of cards in the session.
func (c *Controller) Len() int {
	return len(c.session)
}

// Cards returns a copy of the session in authoring order.
func (c *Controller) Cards() []Card {
	return slices.Clone(c.session)
}

// Reset clears the session.
func (c *Controller) Reset() {
	c.session = nil
}

// AddCard appends a trimmed card to the session and returns it.
// Either side being empty after trimming yields a *ValidationError and no mutation.
func (c *Controller) AddCard(ctx context.Context, question, answer string) (Card, error) {
	_, span := c.tracer.Start(ctx, "deck.add_card")
	defer span.End()

	card, err := NewCard(question, answer)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.emit(EventError, "Please fill in both question and answer.")
		return Card{}, err
	}
	c.session = append(c.session, card)
	span.SetAttributes(attribute.Int("flashdeck.deck.cards", len(c.session)))
	c.emit(EventSuccess, "Card added successfully!")
	return card, nil
}

// SaveDeck writes the session into the stored table under name, replacing any
// deck already saved there, and then clears the session.
//
// Validation happens in order: name first, then a non-empty session.
// Storage failures return a *PersistenceError and leave the session untouched.
// There is no cross-process locking; concurrent writers race and the last one wins.
func (c *Controller) SaveDeck(ctx context.Context, name string) (SaveResult, error) {
	ctx, span := c.tracer.Start(ctx, "deck.save")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		err := &ValidationError{Field: FieldDeckName, Err: ErrDeckNameRequired}
		span.SetStatus(codes.Error, err.Error())
		c.emit(EventError, "Please enter a name for the deck.")
		return SaveResult{}, err
	}
	span.SetAttributes(attribute.String("flashdeck.deck.name", name))
	if len(c.session) == 0 {
		err := &ValidationError{Field: FieldQuestion, Err: ErrEmptyDeck}
		span.SetStatus(codes.Error, err.Error())
		c.emit(EventError, "Cannot save an empty deck. Add some cards first.")
		return SaveResult{}, err
	}

	table, err := c.store.Load(ctx)
	if err != nil {
		return SaveResult{}, c.persistenceFailure(span, "load decks", name, err)
	}
	if table == nil {
		table = Table{}
	}
	table[name] = slices.Clone(c.session)
	if err := c.store.Save(ctx, table); err != nil {
		return SaveResult{}, c.persistenceFailure(span, "save decks", name, err)
	}

	res := SaveResult{Name: name, Cards: len(c.session)}
	c.session = nil
	span.SetAttributes(attribute.Int("flashdeck.deck.cards", res.Cards))
	c.logger.Info("deck saved", "deck", res.Name, "cards", res.Cards)
	c.emit(EventSuccess, fmt.Sprintf("Deck %q saved successfully! (%d cards)", res.Name, res.Cards))
	return res, nil
}

// Decks lists saved decks sorted by name.
func (c *Controller) Decks(ctx context.Context) ([]DeckSummary, error) {
	ctx, span := c.tracer.Start(ctx, "deck.list")
	defer span.End()

	table, err := c.store.Load(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, &PersistenceError{Op: "load decks", Err: err}
	}
	out := make([]DeckSummary, 0, len(table))
	for name, cards := range table {
		out = append(out, DeckSummary{Name: name, Cards: len(cards)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Deck returns the saved cards for name. ok is false if no such deck exists.
func (c *Controller) Deck(ctx context.Context, name string) (cards []Card, ok bool, err error) {
	ctx, span := c.tracer.Start(ctx, "deck.get")
	defer span.End()

	table, err := c.store.Load(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, false, &PersistenceError{Op: "load decks", Err: err}
	}
	cards, ok = table[strings.TrimSpace(name)]
	return cards, ok, nil
}

func (c *Controller) persistenceFailure(span oteltrace.Span, op, name string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, op)
	c.logger.Error("error saving deck to storage", "op", op, "deck", name, "error", err)
	c.emit(EventError, "An error occurred while saving the deck.")
	return &PersistenceError{Op: op, Err: err}
}

func (c *Controller) emit(kind EventKind, msg string) {
	if c.listener == nil {
		return
	}
	c.listener(Event{Kind: kind, Message: msg, Count: len(c.session)})
}
