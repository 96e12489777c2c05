package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"flashdeck/internal/deck"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// DefaultKey is the key the deck table is stored under.
const DefaultKey = "flashCardDecks"

// TableStore persists a deck.Table as one JSON value in a KV.
type TableStore struct {
	kv     KV
	key    string
	tracer oteltrace.Tracer
}

var _ deck.Storage = (*TableStore)(nil)

// NewTableStore stores the table under key, or DefaultKey if key is empty.
func NewTableStore(kv KV, key string) *TableStore {
	if key == "" {
		key = DefaultKey
	}
	return &TableStore{
		kv:     kv,
		key:    key,
		tracer: otel.Tracer("flashdeck/storage"),
	}
}

// Key returns the storage key.
func (s *TableStore) Key() string {
	return s.key
}

// Load reads and decodes the table. A missing key yields an empty table;
// a value that does not decode is an error.
func (s *TableStore) Load(ctx context.Context) (deck.Table, error) {
	ctx, span := s.tracer.Start(ctx, "storage.load",
		oteltrace.WithAttributes(attribute.String("flashdeck.storage.key", s.key)))
	defer span.End()

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "get")
		return nil, err
	}
	if !ok {
		return deck.Table{}, nil
	}
	table, err := DecodeTable([]byte(raw))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode")
		return nil, err
	}
	span.SetAttributes(attribute.Int("flashdeck.storage.decks", len(table)))
	return table, nil
}

// Save encodes t and replaces the stored value.
func (s *TableStore) Save(ctx context.Context, t deck.Table) error {
	ctx, span := s.tracer.Start(ctx, "storage.save",
		oteltrace.WithAttributes(
			attribute.String("flashdeck.storage.key", s.key),
			attribute.Int("flashdeck.storage.decks", len(t)),
		))
	defer span.End()

	b, err := EncodeTable(t)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode")
		return err
	}
	if err := s.kv.Set(ctx, s.key, string(b)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "set")
		return err
	}
	return nil
}

// DecodeTable parses a stored deck table. JSON null decodes to an empty table.
// Every card must carry a question and answer that are non-empty after trimming.
func DecodeTable(data []byte) (deck.Table, error) {
	var table deck.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode deck table: %w", err)
	}
	if table == nil {
		return deck.Table{}, nil
	}
	for name, cards := range table {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("decode deck table: empty deck name")
		}
		for i, c := range cards {
			if strings.TrimSpace(c.Question) == "" || strings.TrimSpace(c.Answer) == "" {
				return nil, fmt.Errorf("decode deck table: deck %q card %d: missing question or answer", name, i)
			}
		}
	}
	return table, nil
}

// EncodeTable serializes t. A nil table encodes as {}.
func EncodeTable(t deck.Table) ([]byte, error) {
	if t == nil {
		t = deck.Table{}
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encode deck table: %w", err)
	}
	return b, nil
}
