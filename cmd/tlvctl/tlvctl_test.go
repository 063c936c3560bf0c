package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/tlvcodec/internal/config"
	"github.com/danmuck/tlvcodec/internal/protocol"
	"github.com/danmuck/tlvcodec/internal/protocol/schema"
	"github.com/danmuck/tlvcodec/internal/protocol/session"
	"github.com/danmuck/tlvcodec/internal/protocol/tlv"
	"github.com/danmuck/tlvcodec/internal/testutil/testlog"
)

func writeSchema(t *testing.T) string {
	t.Helper()
	body, err := config.Template("schema")
	if err != nil {
		t.Fatalf("schema template: %v", err)
	}
	path := filepath.Join(t.TempDir(), "schema.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	return path
}

func run(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseValueByType(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		typ  tlv.Type
		raw  string
		want any
	}{
		{tlv.TypeBool, "true", true},
		{tlv.TypeByte, "0xff", uint8(255)},
		{tlv.TypeShort, "-2", int16(-2)},
		{tlv.TypeUShort, "65535", uint16(65535)},
		{tlv.TypeInt, "-70000", int32(-70000)},
		{tlv.TypeUInt, "4000000000", uint32(4000000000)},
		{tlv.TypeVarint, "300", uint32(300)},
		{tlv.TypeFloat, "1.5", float32(1.5)},
		{tlv.TypeDouble, "-0.25", -0.25},
		{tlv.TypeIString, "hi, there", "hi, there"},
	}
	for _, tc := range cases {
		got, err := parseValue(tc.typ, tc.raw)
		if err != nil || got != tc.want {
			t.Fatalf("parseValue(%s, %q)=%#v,%v want %#v", tc.typ, tc.raw, got, err, tc.want)
		}
	}
	if _, err := parseValue(tlv.TypeByte, "256"); err == nil {
		t.Fatalf("expected byte range error")
	}
	if _, err := parseValue("matrix", "1"); err == nil {
		t.Fatalf("expected unknown type error")
	}
}

func TestParseFieldArrays(t *testing.T) {
	testlog.Start(t)
	f := schema.Field{Name: "scores", Type: tlv.TypeArray, Args: []schema.Arg{schema.Ref(tlv.TypeUShort), schema.Ref(tlv.TypeUInt)}}
	got, err := parseField(f, "10, 20,30")
	if err != nil {
		t.Fatalf("parse array: %v", err)
	}
	items := got.([]any)
	if len(items) != 3 || items[0] != uint32(10) || items[2] != uint32(30) {
		t.Fatalf("unexpected items: %#v", items)
	}
	empty, err := parseField(f, "")
	if err != nil || len(empty.([]any)) != 0 {
		t.Fatalf("expected empty array, got %#v %v", empty, err)
	}
	if _, err := parseField(f, "1,x"); err == nil {
		t.Fatalf("expected element error")
	}
}

func TestEncodeThenDecode(t *testing.T) {
	testlog.Start(t)
	path := writeSchema(t)

	out, err := run(t, nil, "--schema", path, "encode", "Scores", "ada", "10,20,30", "--hex")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	raw, err := hex.DecodeString(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("decode hex: %v", err)
	}
	// id=2, body = u32 len + "ada" + u16 count + 3*u32
	if raw[0] != 2 || raw[4] != 4+3+2+12 {
		t.Fatalf("unexpected header: %v", raw[:8])
	}

	out, err = run(t, raw, "--schema", path, "decode", "--as-writer")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var line packetLine
	if err := json.Unmarshal([]byte(out), &line); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if line.ID != 2 || line.Name != "Scores" || line.Fields["player"] != "ada" {
		t.Fatalf("unexpected packet: %+v", line)
	}
	scores := line.Fields["scores"].([]any)
	if len(scores) != 3 || scores[1] != float64(20) {
		t.Fatalf("unexpected scores: %#v", scores)
	}

	out, err = run(t, raw, "inspect")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if strings.TrimSpace(out) != "frame=0 offset=0 id=2 length=21" {
		t.Fatalf("unexpected inspect output %q", out)
	}
}

func TestEncodeErrors(t *testing.T) {
	testlog.Start(t)
	path := writeSchema(t)
	if _, err := run(t, nil, "--schema", path, "encode", "Missing"); err == nil {
		t.Fatalf("expected unknown packet error")
	}
	if _, err := run(t, nil, "--schema", path, "encode", "Hello", "1"); err == nil {
		t.Fatalf("expected value count error")
	}
	if _, err := run(t, nil, "encode", "Hello", "1", "x"); err == nil {
		t.Fatalf("expected missing schema error")
	}
}

func TestDecodeTruncatedStreamFails(t *testing.T) {
	testlog.Start(t)
	path := writeSchema(t)
	if _, err := run(t, []byte{1, 0, 0, 0, 9, 0}, "--schema", path, "decode"); err == nil {
		t.Fatalf("expected truncated stream error")
	}
}

func TestDecodeCorruptFrameFails(t *testing.T) {
	testlog.Start(t)
	path := writeSchema(t)
	// Hello: version=1, then an istring claiming 100 bytes inside an 8-byte body.
	stream := []byte{1, 0, 0, 0, 8, 0, 0, 0, 1, 0, 0, 0, 100, 0, 0, 0}
	_, err := run(t, stream, "--schema", path, "decode")
	if !errors.Is(err, session.ErrDecode) || !errors.Is(err, protocol.ErrMalformedField) {
		t.Fatalf("expected fatal decode error, got %v", err)
	}
}

func TestSchemasListsPackets(t *testing.T) {
	testlog.Start(t)
	out, err := run(t, nil, "--schema", writeSchema(t), "schemas")
	if err != nil {
		t.Fatalf("schemas: %v", err)
	}
	if !strings.Contains(out, "scores:array(ushort,uint)") || !strings.Contains(out, "write:") {
		t.Fatalf("unexpected listing:\n%s", out)
	}
}

func TestTemplateCommandSkipsConfigLoad(t *testing.T) {
	testlog.Start(t)
	out, err := run(t, nil, "--config", "/does/not/exist.toml", "template", "config")
	if err != nil {
		t.Fatalf("template: %v", err)
	}
	if !strings.Contains(out, "max_body_bytes") {
		t.Fatalf("unexpected template output %q", out)
	}
}
