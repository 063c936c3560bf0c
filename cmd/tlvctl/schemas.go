package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/tlvcodec/internal/protocol/schema"
	"github.com/spf13/cobra"
)

func newSchemasCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List read and write packets with their ids and field types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, _, err := a.handler(false, nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "read:")
			for _, s := range h.ReadSchemas() {
				printPacket(out, s.Packet)
			}
			fmt.Fprintln(out, "write:")
			for _, s := range h.WriteSchemas() {
				printPacket(out, s.Packet)
			}
			return nil
		},
	}
}

func printPacket(out io.Writer, p schema.Packet) {
	fields := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		fields = append(fields, f.Name+":"+describeField(f))
	}
	fmt.Fprintf(out, "  %5d  %-20s %s\n", p.ID, p.Name, strings.Join(fields, " "))
}

func describeField(f schema.Field) string {
	if len(f.Args) == 0 {
		return string(f.Type)
	}
	args := make([]string, 0, len(f.Args))
	for _, arg := range f.Args {
		if arg.Kind == schema.ArgRef {
			args = append(args, string(arg.Type))
			continue
		}
		args = append(args, fmt.Sprintf("%v", arg.Value))
	}
	return fmt.Sprintf("%s(%s)", f.Type, strings.Join(args, ","))
}
