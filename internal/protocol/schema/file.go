package schema

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/tlvcodec/internal/protocol/tlv"
)

// File holds the packet declarations of a schema file.
type File struct {
	Read  []Packet
	Write []Packet
}

type fileDoc struct {
	Read  []filePacket `toml:"read"`
	Write []filePacket `toml:"write"`
}

type filePacket struct {
	Name   string      `toml:"name"`
	ID     *int64      `toml:"id"`
	Fields []fileField `toml:"fields"`
}

type fileField struct {
	Name string    `toml:"name"`
	Type string    `toml:"type"`
	Args []fileArg `toml:"args"`
}

type fileArg struct {
	Type  *string `toml:"type"`
	Value any     `toml:"value"`
}

// LoadFile reads a TOML schema file.
func LoadFile(path string) (File, error) {
	var doc fileDoc
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return File{}, fmt.Errorf("load schema file (%s): %w", path, err)
	}
	return convertFile(doc, meta)
}

// ReadFile parses a TOML schema document from r.
func ReadFile(r io.Reader) (File, error) {
	var doc fileDoc
	meta, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return File{}, fmt.Errorf("parse schema file: %w", err)
	}
	return convertFile(doc, meta)
}

func convertFile(doc fileDoc, meta toml.MetaData) (File, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return File{}, fmt.Errorf("schema file: unknown keys: %s", strings.Join(keys, ", "))
	}
	read, err := convertPackets("read", doc.Read)
	if err != nil {
		return File{}, err
	}
	write, err := convertPackets("write", doc.Write)
	if err != nil {
		return File{}, err
	}
	return File{Read: read, Write: write}, nil
}

func convertPackets(section string, in []filePacket) ([]Packet, error) {
	out := make([]Packet, 0, len(in))
	for i, fp := range in {
		name := strings.TrimSpace(fp.Name)
		if name == "" {
			return nil, fmt.Errorf("schema file: %s[%d]: %w", section, i, ErrMissingName)
		}
		if fp.ID == nil {
			return nil, &ConfigError{Packet: name, Err: fmt.Errorf("%s[%d] missing id", section, i)}
		}
		if *fp.ID < 0 || *fp.ID > math.MaxUint32 {
			return nil, &ConfigError{Packet: name, Err: fmt.Errorf("id %d out of uint32 range", *fp.ID)}
		}
		p := Packet{Name: name, ID: uint32(*fp.ID), Fields: make([]Field, 0, len(fp.Fields))}
		for _, ff := range fp.Fields {
			f := Field{Name: strings.TrimSpace(ff.Name), Type: tlv.Type(strings.TrimSpace(ff.Type))}
			for j, fa := range ff.Args {
				switch {
				case fa.Type != nil && fa.Value != nil:
					return nil, &ConfigError{Packet: name, Field: f.Name, Err: fmt.Errorf("%w: arg[%d] sets both type and value", ErrBadArgs, j)}
				case fa.Type != nil:
					f.Args = append(f.Args, Ref(tlv.Type(strings.TrimSpace(*fa.Type))))
				case fa.Value != nil:
					f.Args = append(f.Args, Lit(fa.Value))
				default:
					return nil, &ConfigError{Packet: name, Field: f.Name, Err: fmt.Errorf("%w: arg[%d] sets neither type nor value", ErrBadArgs, j)}
				}
			}
			p.Fields = append(p.Fields, f)
		}
		out = append(out, p)
	}
	return out, nil
}
