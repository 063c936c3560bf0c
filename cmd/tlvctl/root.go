package main

import (
	"fmt"
	"io"
	"os"

	"github.com/danmuck/tlvcodec/internal/config"
	"github.com/danmuck/tlvcodec/internal/logging"
	"github.com/danmuck/tlvcodec/internal/protocol"
	"github.com/danmuck/tlvcodec/internal/protocol/schema"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app holds state shared by subcommands, filled in PersistentPreRunE.
type app struct {
	cfgPath    string
	schemaPath string

	cfg config.CodecConfig
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.DefaultCodecConfig()}
	root := &cobra.Command{
		Use:   "tlvctl",
		Short: "Encode, decode and inspect schema-driven TLV frames",
		Long: `tlvctl drives the packet codec from the command line. Packets are
declared in a TOML schema file; frames are read from files or stdin and
written to stdout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "runtime config file (TOML)")
	root.PersistentFlags().StringVar(&a.schemaPath, "schema", "", "schema file (overrides the config schema key)")

	root.AddCommand(
		newSchemasCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
		newInspectCmd(a),
		newTemplateCmd(),
	)
	return root
}

func (a *app) load() error {
	if a.cfgPath != "" {
		cfg, err := config.LoadCodecConfig(a.cfgPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.schemaPath != "" {
		a.cfg.Schema = a.schemaPath
	}
	if lvl, ok := logging.ParseLevel(a.cfg.LogLevel); ok {
		zerolog.SetGlobalLevel(lvl)
	}
	return nil
}

func (a *app) schemaFile() (schema.File, error) {
	if a.cfg.Schema == "" {
		return schema.File{}, fmt.Errorf("no schema file: pass --schema or set schema in the config")
	}
	return schema.LoadFile(a.cfg.Schema)
}

// handler builds a codec handler from the schema file. With asWriter the
// write packets are also used for decoding.
func (a *app) handler(asWriter bool, obs protocol.Observer) (*protocol.Handler, schema.File, error) {
	f, err := a.schemaFile()
	if err != nil {
		return nil, schema.File{}, err
	}
	reads := f.Read
	if asWriter {
		reads = f.Write
	}
	h, err := protocol.NewHandler(protocol.Options{
		ReadPackets:  reads,
		WritePackets: f.Write,
		Limits:       a.cfg.Limits(),
		Observer:     obs,
	})
	if err != nil {
		return nil, schema.File{}, err
	}
	return h, f, nil
}

// openInput returns stdin when path is empty or "-".
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}
