package main

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/propdesk/propdesk/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "console",
		Short: "PropDesk property-management console",
		Long:  "Terminal console for the PropDesk property-management API: role-gated dashboards, CRUD screens, and the assistant, driven from the command line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			displayAppname(config.New().GetAppName())
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newOpenCmd(),
		newDashboardCmd(),
		newPropertiesCmd(),
		newUnitsCmd(),
		newTenantsCmd(),
		newLeasesCmd(),
		newChequesCmd(),
		newMaintenanceCmd(),
		newMyCmd(),
		newChatCmd(),
		newStubCmd(),
	)
	return root
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
