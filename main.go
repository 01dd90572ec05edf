package main

import (
	"fmt"
	"os"

	"avasile/fintrack/cmd/alert"
	"avasile/fintrack/cmd/budget"
	"avasile/fintrack/cmd/export"
	"avasile/fintrack/cmd/importcmd"
	"avasile/fintrack/cmd/root"
	"avasile/fintrack/cmd/rule"
	"avasile/fintrack/cmd/tx"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(importcmd.Cmd)
	root.Cmd.AddCommand(tx.Cmd)
	root.Cmd.AddCommand(rule.Cmd)
	root.Cmd.AddCommand(budget.Cmd)
	root.Cmd.AddCommand(alert.Cmd)
	root.Cmd.AddCommand(export.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
