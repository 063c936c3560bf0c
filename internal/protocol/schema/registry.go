package schema

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/danmuck/tlvcodec/internal/protocol/tlv"
	"github.com/rs/zerolog/log"
)

// Registry indexes one direction's schemas by name and, separately, by id.
// Both maps point at the same schema.
type Registry[F any] struct {
	byName map[string]*Schema[F]
	byID   map[uint32]*Schema[F]
}

func NewRegistry[F any]() *Registry[F] {
	return &Registry[F]{
		byName: make(map[string]*Schema[F]),
		byID:   make(map[uint32]*Schema[F]),
	}
}

// Register inserts s under its name and its id. A name or id already
// present is a ConfigError and leaves the registry unchanged.
func (r *Registry[F]) Register(s *Schema[F]) error {
	if _, ok := r.byName[s.Name]; ok {
		return &ConfigError{Packet: s.Name, Err: fmt.Errorf("%w: name", ErrDuplicate)}
	}
	if prev, ok := r.byID[s.ID]; ok {
		return &ConfigError{Packet: s.Name, Err: fmt.Errorf("%w: id %d already used by %q", ErrDuplicate, s.ID, prev.Name)}
	}
	r.byName[s.Name] = s
	r.byID[s.ID] = s
	log.Debug().Str("packet", s.Name).Uint32("id", s.ID).Int("fields", len(s.Fields)).Msg("schema: registered")
	return nil
}

func (r *Registry[F]) ByName(name string) (*Schema[F], bool) {
	s, ok := r.byName[name]
	return s, ok
}

func (r *Registry[F]) ByID(id uint32) (*Schema[F], bool) {
	s, ok := r.byID[id]
	return s, ok
}

// Lookup accepts a packet name or the canonical decimal form of an id
// ("7", not "007" or "+7"). A name match wins over an id match.
func (r *Registry[F]) Lookup(key string) (*Schema[F], bool) {
	if s, ok := r.byName[key]; ok {
		return s, true
	}
	id, err := strconv.ParseUint(key, 10, 32)
	if err != nil || strconv.FormatUint(id, 10) != key {
		return nil, false
	}
	return r.ByID(uint32(id))
}

func (r *Registry[F]) Len() int {
	return len(r.byID)
}

// List returns the schemas ordered by id.
func (r *Registry[F]) List() []*Schema[F] {
	out := make([]*Schema[F], 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// NewReadRegistry binds and registers packets against the read table.
func NewReadRegistry(t *tlv.ReadTable, packets []Packet) (*Registry[ReadField], error) {
	reg := NewRegistry[ReadField]()
	for _, p := range packets {
		s, err := BindRead(t, p)
		if err != nil {
			log.Error().Err(err).Msg("schema: read bind failed")
			return nil, err
		}
		if err := reg.Register(s); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// NewWriteRegistry binds and registers packets against the write table.
func NewWriteRegistry(t *tlv.WriteTable, packets []Packet) (*Registry[WriteField], error) {
	reg := NewRegistry[WriteField]()
	for _, p := range packets {
		s, err := BindWrite(t, p)
		if err != nil {
			log.Error().Err(err).Msg("schema: write bind failed")
			return nil, err
		}
		if err := reg.Register(s); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
