package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/propdesk/propdesk/api"
)

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func table(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
}

func newPropertiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Manage properties",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/properties"); err != nil {
				return err
			}
			properties, err := a.client.Properties().List(cmd.Context())
			if err != nil {
				return err
			}
			w := table(cmd)
			fmt.Fprintln(w, "ID\tNAME\tCITY\tTYPE\tUNITS\tVACANT")
			for _, p := range properties {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\n", p.ID, p.Name, p.City, p.PropertyType, p.TotalUnits, p.VacantUnits)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/properties"); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := a.client.Properties().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s, %s\nType: %s  Units: %d (%d vacant)\n",
				p.Name, p.Address, p.City, p.PropertyType, p.TotalUnits, p.VacantUnits)
			return nil
		},
	})

	var name, address, city, propertyType string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a property",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/properties"); err != nil {
				return err
			}
			created, err := a.client.Properties().Create(cmd.Context(), api.Property{
				Name:         name,
				Address:      address,
				City:         city,
				PropertyType: propertyType,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created property %d: %s\n", created.ID, created.Name)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "property name")
	add.Flags().StringVar(&address, "address", "", "street address")
	add.Flags().StringVar(&city, "city", "Dubai", "city")
	add.Flags().StringVar(&propertyType, "type", api.PropertyTypeResidential, "RESIDENTIAL, COMMERCIAL or MIXED")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("address")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/properties"); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.Properties().Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted property %d\n", id)
			return nil
		},
	})

	return cmd
}

func newUnitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units",
		Short: "Manage units",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List units",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/units"); err != nil {
				return err
			}
			units, err := a.client.Units().List(cmd.Context())
			if err != nil {
				return err
			}
			w := table(cmd)
			fmt.Fprintln(w, "ID\tUNIT\tTYPE\tSTATUS\tRENT/YEAR\tPROPERTY")
			for _, u := range units {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.UnitNumber, u.UnitType, u.Status, u.YearlyRent, u.PropertyName)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/units"); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			u, err := a.client.Units().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unit %s (%s), %d bed / %d bath, %d sqft\nStatus: %s  Rent: %s/year\n",
				u.UnitNumber, u.UnitType, u.Bedrooms, u.Bathrooms, u.SquareFeet, u.Status, u.YearlyRent)
			return nil
		},
	})

	var property int
	var unitNumber, unitType, yearlyRent string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a unit",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/units"); err != nil {
				return err
			}
			created, err := a.client.Units().Create(cmd.Context(), api.Unit{
				Property:   property,
				UnitNumber: unitNumber,
				UnitType:   unitType,
				YearlyRent: yearlyRent,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created unit %d: %s\n", created.ID, created.UnitNumber)
			return nil
		},
	}
	add.Flags().IntVar(&property, "property", 0, "property id")
	add.Flags().StringVar(&unitNumber, "number", "", "unit number")
	add.Flags().StringVar(&unitType, "type", "APARTMENT", "unit type")
	add.Flags().StringVar(&yearlyRent, "rent", "", "yearly rent")
	_ = add.MarkFlagRequired("property")
	_ = add.MarkFlagRequired("number")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/units"); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.Units().Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted unit %d\n", id)
			return nil
		},
	})

	return cmd
}

func newTenantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenants",
		Short: "Manage tenants",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tenants",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/tenants"); err != nil {
				return err
			}
			tenants, err := a.client.Tenants().List(cmd.Context())
			if err != nil {
				return err
			}
			w := table(cmd)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
			for _, t := range tenants {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, t.Name, t.Email, t.Phone)
			}
			return w.Flush()
		},
	})

	var name, phone, email string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/tenants"); err != nil {
				return err
			}
			created, err := a.client.Tenants().Create(cmd.Context(), api.Tenant{Name: name, Phone: phone, Email: email})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created tenant %d: %s\n", created.ID, created.Name)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "full name")
	add.Flags().StringVar(&phone, "phone", "", "phone number")
	add.Flags().StringVar(&email, "email", "", "email address")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("email")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/tenants"); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := a.client.Tenants().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:  %s\nEmail: %s\nPhone: %s\n", t.Name, t.Email, t.Phone)
			if t.ActiveLease != nil {
				fmt.Fprintf(out, "Lease: unit %d, %s to %s, rent %s\n",
					t.ActiveLease.Unit, t.ActiveLease.StartDate, t.ActiveLease.EndDate, t.ActiveLease.RentAmount)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/tenants"); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.Tenants().Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted tenant %d\n", id)
			return nil
		},
	})

	return cmd
}

func newLeasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leases",
		Short: "Manage leases",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List leases",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/tenants"); err != nil {
				return err
			}
			leases, err := a.client.Leases().List(cmd.Context())
			if err != nil {
				return err
			}
			w := table(cmd)
			fmt.Fprintln(w, "ID\tTENANT\tUNIT\tSTART\tEND\tRENT\tACTIVE")
			for _, l := range leases {
				fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%s\t%t\n", l.ID, l.Tenant, l.Unit, l.StartDate, l.EndDate, l.RentAmount, l.IsActive)
			}
			return w.Flush()
		},
	})

	var tenant, unit int
	var startDate, endDate, rentAmount, frequency string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a lease",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/tenants"); err != nil {
				return err
			}
			created, err := a.client.Leases().Create(cmd.Context(), api.Lease{
				Tenant:           tenant,
				Unit:             unit,
				StartDate:        startDate,
				EndDate:          endDate,
				RentAmount:       rentAmount,
				PaymentFrequency: frequency,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created lease %d\n", created.ID)
			return nil
		},
	}
	add.Flags().IntVar(&tenant, "tenant", 0, "tenant id")
	add.Flags().IntVar(&unit, "unit", 0, "unit id")
	add.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD)")
	add.Flags().StringVar(&endDate, "end", "", "end date (YYYY-MM-DD)")
	add.Flags().StringVar(&rentAmount, "rent", "", "rent amount")
	add.Flags().StringVar(&frequency, "frequency", api.PaymentFrequencyFourCheques, "payment frequency (1_CHEQUE, 4_CHEQUES, 12_CHEQUES)")
	_ = add.MarkFlagRequired("tenant")
	_ = add.MarkFlagRequired("unit")
	_ = add.MarkFlagRequired("start")
	_ = add.MarkFlagRequired("end")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a lease",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/tenants"); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.Leases().Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted lease %d\n", id)
			return nil
		},
	})

	return cmd
}

func newChequesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cheques",
		Short: "Manage cheques and payments",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cheques",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/finance"); err != nil {
				return err
			}
			cheques, err := a.client.Cheques().List(cmd.Context())
			if err != nil {
				return err
			}
			w := table(cmd)
			fmt.Fprintln(w, "ID\tTENANT\tNUMBER\tDATE\tAMOUNT\tSTATUS")
			for _, ch := range cheques {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", ch.ID, ch.TenantName, ch.ChequeNumber, ch.ChequeDate, ch.Amount, ch.Status)
			}
			return w.Flush()
		},
	})

	var tenant, lease int
	var amount, number, date, bank string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a cheque",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/finance"); err != nil {
				return err
			}
			created, err := a.client.Cheques().Create(cmd.Context(), api.Cheque{
				Tenant:       tenant,
				Lease:        lease,
				Amount:       amount,
				ChequeNumber: number,
				ChequeDate:   date,
				BankName:     bank,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered cheque %d (%s)\n", created.ID, created.ChequeNumber)
			return nil
		},
	}
	add.Flags().IntVar(&tenant, "tenant", 0, "tenant id")
	add.Flags().IntVar(&lease, "lease", 0, "lease id")
	add.Flags().StringVar(&amount, "amount", "", "cheque amount")
	add.Flags().StringVar(&number, "number", "", "cheque number")
	add.Flags().StringVar(&date, "date", "", "cheque date (YYYY-MM-DD)")
	add.Flags().StringVar(&bank, "bank", "", "bank name")
	_ = add.MarkFlagRequired("tenant")
	_ = add.MarkFlagRequired("amount")
	_ = add.MarkFlagRequired("number")
	_ = add.MarkFlagRequired("date")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Advance a cheque (PENDING, DEPOSITED, CLEARED, BOUNCED)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/finance"); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			updated, err := a.client.Cheques().SetStatus(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cheque %d is now %s\n", updated.ID, updated.Status)
			return nil
		},
	})

	return cmd
}

func newMaintenanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maintenance",
		Short: "Manage maintenance tickets",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List maintenance tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/maintenance"); err != nil {
				return err
			}
			tickets, err := a.client.Maintenance().List(cmd.Context())
			if err != nil {
				return err
			}
			w := table(cmd)
			fmt.Fprintln(w, "ID\tTITLE\tUNIT\tPRIORITY\tSTATUS")
			for _, ticket := range tickets {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", ticket.ID, ticket.Title, ticket.UnitNumber, ticket.Priority, ticket.Status)
			}
			return w.Flush()
		},
	})

	var unit int
	var title, description, priority string
	add := &cobra.Command{
		Use:   "add",
		Short: "Open a maintenance ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/maintenance"); err != nil {
				return err
			}
			created, err := a.client.Maintenance().Create(cmd.Context(), api.MaintenanceTicket{
				Unit:        unit,
				Title:       title,
				Description: description,
				Priority:    priority,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened ticket %d: %s\n", created.ID, created.Title)
			return nil
		},
	}
	add.Flags().IntVar(&unit, "unit", 0, "unit id")
	add.Flags().StringVar(&title, "title", "", "short summary")
	add.Flags().StringVar(&description, "description", "", "details")
	add.Flags().StringVar(&priority, "priority", api.PriorityMedium, "LOW, MEDIUM, HIGH or EMERGENCY")
	_ = add.MarkFlagRequired("unit")
	_ = add.MarkFlagRequired("title")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Move a ticket (OPEN, IN_PROGRESS, RESOLVED, CLOSED)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/maintenance"); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			updated, err := a.client.Maintenance().SetStatus(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ticket %d is now %s\n", updated.ID, updated.Status)
			return nil
		},
	})

	return cmd
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the admin dashboard analytics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/dashboard"); err != nil {
				return err
			}
			stats, err := a.client.DashboardStats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Properties:  %d\n", stats.TotalProperties)
			fmt.Fprintf(out, "Units:       %d (%d occupied, %d vacant, %.1f%% occupancy)\n",
				stats.TotalUnits, stats.OccupiedUnits, stats.VacantUnits, stats.OccupancyRate)
			fmt.Fprintf(out, "Tenants:     %d\n", stats.ActiveTenants)
			fmt.Fprintf(out, "Revenue:     %.2f cleared, %.2f pending (%d cheques)\n",
				stats.TotalRevenue, stats.TotalPendingAmount, stats.PendingCheques)
			if stats.BouncedCheques > 0 {
				fmt.Fprintf(out, "Bounced:     %d cheques totalling %.2f\n", stats.BouncedCheques, stats.BouncedAmount)
			}
			return nil
		},
	}
}

func newMyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "my",
		Short: "Tenant self-service screens",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "profile",
		Short: "Show the tenant profile linked to this account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.guard("/tenant/profile"); err != nil {
				return err
			}
			profile, err := a.client.Tenants().Profile(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:  %s\nEmail: %s\nPhone: %s\n", profile.Name, profile.Email, profile.Phone)
			if profile.ActiveLease != nil {
				fmt.Fprintf(out, "Lease: unit %d, %s to %s, rent %s\n",
					profile.ActiveLease.Unit, profile.ActiveLease.StartDate, profile.ActiveLease.EndDate, profile.ActiveLease.RentAmount)
			}
			return nil
		},
	})

	return cmd
}

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>",
		Short: "Ask the assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			query := ""
			for i, arg := range args {
				if i > 0 {
					query += " "
				}
				query += arg
			}
			reply, err := a.client.Chat(cmd.Context(), query)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}
