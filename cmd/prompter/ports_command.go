package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"prompter/internal/midiin"
)

func newPortsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "ports",
		Short:       "List MIDI input ports",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := midiin.NewClient(nil)
			if err != nil {
				return err
			}
			defer client.Close()

			ports, err := client.Ports()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(ports) == 0 {
				fmt.Fprintln(out, "No MIDI input ports found")
				return nil
			}
			fmt.Fprintln(out, renderPortsTable(ports))
			return nil
		},
	}
}

func renderPortsTable(ports []midiin.Port) string {
	rows := make([][]string, 0, len(ports))
	for _, p := range ports {
		rows = append(rows, []string{strconv.Itoa(p.Number), p.Name})
	}
	return renderTable([]string{"#", "Port"}, rows, []columnAlignment{alignRight, alignLeft})
}
