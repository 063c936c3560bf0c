package main

import (
	"encoding/hex"
	"fmt"

	"github.com/danmuck/tlvcodec/internal/protocol"
	"github.com/spf13/cobra"
)

func newEncodeCmd(a *app) *cobra.Command {
	var asHex bool
	cmd := &cobra.Command{
		Use:   "encode <name|id> [value...]",
		Short: "Encode one write packet and print the frame",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, _, err := a.handler(false, nil)
			if err != nil {
				return err
			}
			s, ok := h.LookupWrite(args[0])
			if !ok {
				return &protocol.UsageError{Packet: args[0], Err: protocol.ErrUnknownPacket}
			}
			values, err := parseFields(s.Packet, args[1:])
			if err != nil {
				return err
			}
			frameBytes, err := h.EncodeID(s.ID, values...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asHex {
				_, err = fmt.Fprintln(out, hex.EncodeToString(frameBytes))
				return err
			}
			_, err = out.Write(frameBytes)
			return err
		},
	}
	cmd.Flags().BoolVar(&asHex, "hex", false, "print the frame as hex instead of raw bytes")
	return cmd
}
