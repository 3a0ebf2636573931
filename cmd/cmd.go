// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func kindFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kind",
		Aliases: []string{"k"},
		Usage:   "Item kind: vacancy or candidate (defaults to board.default_kind)",
	}
}

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
	}
}

func pageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "page",
			Usage: "Page number",
			Value: 1,
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Page size",
		},
	}
}

func flags(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Create the config file if missing, then run migrations and load seed data",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   defaultConfigPath,
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

func boardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "board",
		Usage: "Open the interactive pipeline board",
		Flags: []cli.Flag{
			kindFlag(),
			&cli.StringFlag{
				Name:  "company",
				Usage: "Only show vacancies of this company ID",
			},
			&cli.StringFlag{
				Name:  "vacancy",
				Usage: "Only show candidates of this vacancy ID",
			},
		},
		Action: r.Board,
	}
}

func itemsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "items",
		Usage: "List, inspect, move, export and import board items",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List items grouped by stage",
				Flags: flags([]cli.Flag{
					kindFlag(),
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Text search"},
					&cli.StringFlag{Name: "company", Usage: "Company ID (vacancies)"},
					&cli.StringFlag{Name: "vacancy", Usage: "Vacancy ID (candidates)"},
					&cli.StringFlag{Name: "status", Usage: "active, inactive or archived"},
					&cli.StringFlag{Name: "stage", Usage: "Only items in this stage"},
					&cli.StringSliceFlag{Name: "skill", Usage: "Match any of these skills"},
					&cli.StringSliceFlag{Name: "language", Usage: "Match any of these languages (candidates)"},
				}, pageFlags(), jsonFlags()),
				Action: r.ItemsList,
			},
			{
				Name:  "show",
				Usage: "Show an item's full record and stage history",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  flags([]cli.Flag{kindFlag()}, jsonFlags()),
				Action: r.ItemsShow,
			},
			{
				Name:      "move",
				Usage:     "Move one or more items to a stage",
				ArgsUsage: "<id>...",
				Flags: []cli.Flag{
					kindFlag(),
					&cli.StringFlag{
						Name:     "to",
						Usage:    "Destination stage",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent moves",
						Value: 3,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Moves per second",
						Value: 5,
					},
				},
				Action: r.ItemsMove,
			},
			{
				Name:  "export",
				Usage: "Export the board to csv, md, txt, json or yaml",
				Flags: []cli.Flag{
					kindFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (defaults to {kind}_board.{format})",
					},
					&cli.BoolFlag{
						Name:  "stdout",
						Usage: "Write to standard output instead of a file",
					},
				},
				Action: r.ItemsExport,
			},
			{
				Name:  "import",
				Usage: "Import items from a YAML fixture or YAML board export",
				Description: "Every item is checked before anything is written, so invalid input imports nothing.\n" +
					"A storage error stops the import and keeps the items created before it.",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags:  []cli.Flag{kindFlag()},
				Action: r.ItemsImport,
			},
			{
				Name:  "update",
				Usage: "Edit an item's fields (stage changes go through move)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: flags([]cli.Flag{
					kindFlag(),
					&cli.StringFlag{Name: "title", Usage: "Vacancy title or candidate full name"},
					&cli.StringFlag{Name: "subtitle", Usage: "Vacancy company name or candidate position"},
					&cli.StringSliceFlag{Name: "skill", Usage: "Replace skills with these"},
					&cli.Int64Flag{Name: "salary", Usage: "Vacancy salary amount"},
					&cli.StringFlag{Name: "currency", Usage: "Vacancy salary currency", Value: "USD"},
					&cli.StringFlag{Name: "status", Usage: "active, inactive or archived"},
				}, jsonFlags()),
				Action: r.ItemsUpdate,
			},
			{
				Name:  "delete",
				Usage: "Delete an item",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{kindFlag()},
				Action: r.ItemsDelete,
			},
		},
	}
}

func stagesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stages",
		Usage: "Pipeline stage operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List the stages of a board in column order",
				Flags:  flags([]cli.Flag{kindFlag()}, jsonFlags()),
				Action: r.StagesList,
			},
		},
	}
}

func auditCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "audit",
		Usage: "Audit trail operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List audit entries, newest first",
				Flags: flags([]cli.Flag{
					&cli.StringFlag{Name: "user", Usage: "Acting user ID"},
					&cli.StringFlag{Name: "entity", Usage: "Entity type: company, vacancy or candidate"},
					&cli.StringFlag{Name: "entity-id", Usage: "Entity ID"},
					&cli.StringFlag{Name: "action", Usage: "created, updated, deleted or moved"},
					&cli.StringFlag{Name: "since", Usage: "Earliest date (YYYY-MM-DD)"},
					&cli.StringFlag{Name: "until", Usage: "Latest date, inclusive (YYYY-MM-DD)"},
				}, pageFlags(), jsonFlags()),
				Action: r.AuditList,
			},
		},
	}
}

func notificationsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "notifications",
		Aliases: []string{"notif"},
		Usage:   "Notification operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List notifications for the configured user",
				Flags: flags([]cli.Flag{
					&cli.BoolFlag{Name: "unread", Usage: "Only unread notifications"},
				}, jsonFlags()),
				Action: r.NotificationsList,
			},
			{
				Name:  "read",
				Usage: "Mark a notification (or all of them) as read",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "all", Usage: "Mark every notification as read"},
				},
				Action: r.NotificationsRead,
			},
			{
				Name:  "unread",
				Usage: "Mark a notification as unread",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.NotificationsUnread,
			},
			{
				Name:  "dismiss",
				Usage: "Remove a notification",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.NotificationsDismiss,
			},
		},
	}
}

func companiesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "companies",
		Usage: "Company operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List companies with vacancy counts",
				Flags: flags([]cli.Flag{
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Text search"},
				}, jsonFlags()),
				Action: r.CompaniesList,
			},
			{
				Name:  "show",
				Usage: "Show a company and its vacancies",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  jsonFlags(),
				Action: r.CompaniesShow,
			},
			{
				Name:  "create",
				Usage: "Create a company",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags:  companyFlags(),
				Action: r.CompaniesCreate,
			},
			{
				Name:  "update",
				Usage: "Edit a company",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  append(companyFlags(), &cli.StringFlag{Name: "name", Usage: "Display name"}),
				Action: r.CompaniesUpdate,
			},
			{
				Name:  "delete",
				Usage: "Delete a company",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.CompaniesDelete,
			},
		},
	}
}

func companyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "legal-name", Usage: "Registered legal name"},
		&cli.StringFlag{Name: "industry", Usage: "Industry"},
		&cli.StringFlag{Name: "description", Usage: "Short description"},
	}
}
