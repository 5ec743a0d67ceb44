// Command app is the databridge operator CLI: it initializes the store,
// seeds defaults and inspects or repairs configuration directly on the
// database file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	sqliteadapter "github.com/databridge-io/databridge/internal/adapters/db/sqlite"
	"github.com/databridge-io/databridge/internal/application"
	"github.com/databridge-io/databridge/internal/domain"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "databridge",
		Usage: "Industrial data gateway configuration store",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db-path", Value: "databridge.db", Usage: "SQLite database path"},
		},
		Commands: []*cli.Command{
			initCommand(log),
			engineCommand(log),
			usersCommand(log),
			scanModesCommand(log),
			cacheCommand(log),
			historyCommand(log),
			logsCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		log.Fatal(err)
	}
}

type store struct {
	scanModes       *sqliteadapter.ScanModeRepository
	proxies         *sqliteadapter.ProxyRepository
	ipFilters       *sqliteadapter.IPFilterRepository
	externalSources *sqliteadapter.ExternalSourceRepository
	souths          *sqliteadapter.SouthConnectorRepository
	norths          *sqliteadapter.NorthConnectorRepository
	items           *sqliteadapter.SouthItemRepository
	engine          *sqliteadapter.EngineSettingsRepository
	users           *sqliteadapter.UserRepository
	caches          *sqliteadapter.SouthCacheRepository
	histories       *sqliteadapter.HistoryQueryRepository
	logs            *sqliteadapter.LogRepository
}

func openStore(ctx context.Context, path string) (*store, error) {
	db, err := sqliteadapter.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := sqliteadapter.RunMigrations(ctx, db); err != nil {
		return nil, err
	}
	return &store{
		scanModes:       sqliteadapter.NewScanModeRepository(db),
		proxies:         sqliteadapter.NewProxyRepository(db),
		ipFilters:       sqliteadapter.NewIPFilterRepository(db),
		externalSources: sqliteadapter.NewExternalSourceRepository(db),
		souths:          sqliteadapter.NewSouthConnectorRepository(db),
		norths:          sqliteadapter.NewNorthConnectorRepository(db),
		items:           sqliteadapter.NewSouthItemRepository(db),
		engine:          sqliteadapter.NewEngineSettingsRepository(db),
		users:           sqliteadapter.NewUserRepository(db),
		caches:          sqliteadapter.NewSouthCacheRepository(db),
		histories:       sqliteadapter.NewHistoryQueryRepository(db),
		logs:            sqliteadapter.NewLogRepository(db),
	}, nil
}

func gatewayService(s *store) *application.GatewayService {
	return application.NewGatewayService(s.scanModes, s.proxies, s.ipFilters, s.externalSources, s.souths, s.norths, s.items)
}

func initCommand(log *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create or migrate the database and seed defaults",
		Action: func(ctx context.Context, c *cli.Command) error {
			s, err := openStore(ctx, c.String("db-path"))
			if err != nil {
				return err
			}
			settings := application.NewSettingsService(s.engine, s.users, application.BcryptHasher{}, log)
			if err := settings.BootstrapDefaults(ctx); err != nil {
				return err
			}
			log.WithField("path", c.String("db-path")).Info("store initialized")
			return nil
		},
	}
}

func engineCommand(log *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "engine",
		Usage: "Inspect or change engine settings",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the engine settings",
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := openStore(ctx, c.String("db-path"))
					if err != nil {
						return err
					}
					settings, err := s.engine.Get(ctx)
					if err != nil {
						return err
					}
					return printJSON(settings)
				},
			},
			{
				Name:  "set-port",
				Usage: "Change the engine port",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "port", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := openStore(ctx, c.String("db-path"))
					if err != nil {
						return err
					}
					settings, err := s.engine.Get(ctx)
					if err != nil {
						return err
					}
					svc := application.NewSettingsService(s.engine, s.users, application.BcryptHasher{}, log)
					command := domain.EngineSettingsCommand{
						Name:          settings.Name,
						Port:          int(c.Int("port")),
						LogParameters: settings.LogParameters,
						HealthSignal:  settings.HealthSignal,
					}
					if err := svc.UpdateEngineSettings(ctx, command); err != nil {
						return err
					}
					log.WithField("port", c.Int("port")).Info("engine port updated")
					return nil
				},
			},
		},
	}
}

func usersCommand(log *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Manage gateway users",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List users, optionally filtered by login",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "login", Usage: "login substring filter"},
					&cli.IntFlag{Name: "page", Value: 0},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := openStore(ctx, c.String("db-path"))
					if err != nil {
						return err
					}
					svc := application.NewUserService(s.users, application.BcryptHasher{})
					page, err := svc.Search(ctx, c.String("login"), int(c.Int("page")))
					if err != nil {
						return err
					}
					for _, u := range page.Content {
						fmt.Printf("%s\t%s\t%s %s\n", u.ID, u.Login, u.FirstName, u.LastName)
					}
					fmt.Printf("page %d/%d, %d total\n", page.Number+1, page.TotalPages, page.TotalElements)
					return nil
				},
			},
			{
				Name:  "add",
				Usage: "Create a user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "login", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "first-name"},
					&cli.StringFlag{Name: "last-name"},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "language", Value: "en"},
					&cli.StringFlag{Name: "timezone", Value: "Etc/UTC"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := openStore(ctx, c.String("db-path"))
					if err != nil {
						return err
					}
					svc := application.NewUserService(s.users, application.BcryptHasher{})
					u, err := svc.Create(ctx, domain.UserCommand{
						Login:     c.String("login"),
						Password:  c.String("password"),
						FirstName: c.String("first-name"),
						LastName:  c.String("last-name"),
						Email:     c.String("email"),
						Language:  c.String("language"),
						Timezone:  c.String("timezone"),
					})
					if err != nil {
						return err
					}
					log.WithFields(logrus.Fields{"id": u.ID, "login": u.Login}).Info("user created")
					return nil
				},
			},
			{
				Name:  "reset-password",
				Usage: "Set a new password for a user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "login", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := openStore(ctx, c.String("db-path"))
					if err != nil {
						return err
					}
					u, err := s.users.GetByLogin(ctx, c.String("login"))
					if err != nil {
						return err
					}
					hasher := application.BcryptHasher{}
					hash, err := hasher.Hash(c.String("password"))
					if err != nil {
						return err
					}
					if err := s.users.UpdatePassword(ctx, u.ID, hash); err != nil {
						return err
					}
					log.WithField("login", u.Login).Info("password updated")
					return nil
				},
			},
		},
	}
}

func scanModesCommand(log *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "scan-modes",
		Usage: "Manage polling schedules",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List scan modes",
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := openStore(ctx, c.String("db-path"))
					if err != nil {
						return err
					}
					modes, err := s.scanModes.GetAll(ctx)
					if err != nil {
						return err
					}
					for _, m := range modes {
						fmt.Printf("%s\t%s\t%s\n", m.ID, m.Name, m.Cron)
					}
					return nil
				},
			},
			{
				Name:  "add",
				Usage: "Create a scan mode",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "cron", Required: true, Usage: "six-field cron expression"},
					&cli.StringFlag{Name: "description"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := openStore(ctx, c.String("db-path"))
					if err != nil {
						return err
					}
					svc := gatewayService(s)
					m, err := svc.CreateScanMode(ctx, domain.ScanModeCommand{
						Name:        c.String("name"),
						Description: c.String("description"),
						Cron:        c.String("cron"),
					})
					if err != nil {
						return err
					}
					log.WithFields(logrus.Fields{"id": m.ID, "name": m.Name}).Info("scan mode created")
					return nil
				},
			},
			{
				Name:  "rm",
				Usage: "Delete a scan mode",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := openStore(ctx, c.String("db-path"))
					if err != nil {
						return err
					}
					return s.scanModes.Delete(ctx, c.String("id"))
				},
			},
		},
	}
}

func cacheCommand(log *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or reset interval-resumption cursors",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the cursor for a scan mode",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "scan-mode-id", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := openStore(ctx, c.String("db-path"))
					if err != nil {
						return err
					}
					entry, err := s.caches.GetByScanMode(ctx, c.String("scan-mode-id"))
					if err != nil {
						return err
					}
					return printJSON(entry)
				},
			},
			{
				Name:  "reset",
				Usage: "Drop one cursor, or all of them",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "scan-mode-id", Usage: "cursor to drop; omit to drop all"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := openStore(ctx, c.String("db-path"))
					if err != nil {
						return err
					}
					if id := c.String("scan-mode-id"); id != "" {
						if err := s.caches.Delete(ctx, id); err != nil {
							return err
						}
						log.WithField("scanMode", id).Info("cursor dropped")
						return nil
					}
					if err := s.caches.Reset(ctx); err != nil {
						return err
					}
					log.Info("all cursors dropped")
					return nil
				},
			},
		},
	}
}

func historyCommand(log *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Inspect history queries",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List history queries",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "name substring filter"},
					&cli.IntFlag{Name: "page", Value: 0},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := openStore(ctx, c.String("db-path"))
					if err != nil {
						return err
					}
					svc := application.NewHistoryService(s.histories, s.caches, s.scanModes, log)
					page, err := svc.Search(ctx, c.String("name"), int(c.Int("page")))
					if err != nil {
						return err
					}
					for _, h := range page.Content {
						fmt.Printf("%s\t%s\t%s -> %s\n", h.ID, h.Name, h.StartTime, h.EndTime)
					}
					fmt.Printf("page %d/%d, %d total\n", page.Number+1, page.TotalPages, page.TotalElements)
					return nil
				},
			},
			{
				Name:  "reset",
				Usage: "Drop the cursor of a history query",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := openStore(ctx, c.String("db-path"))
					if err != nil {
						return err
					}
					svc := application.NewHistoryService(s.histories, s.caches, s.scanModes, log)
					if err := svc.Reset(ctx, c.String("id")); err != nil {
						return err
					}
					log.WithField("id", c.String("id")).Info("history query cursor dropped")
					return nil
				},
			},
		},
	}
}

func logsCommand() *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "Search stored log entries",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "start", Usage: "ISO instant lower bound"},
			&cli.StringFlag{Name: "end", Usage: "ISO instant upper bound"},
			&cli.StringSliceFlag{Name: "level", Usage: "level filter, repeatable"},
			&cli.StringFlag{Name: "scope"},
			&cli.StringFlag{Name: "contains", Usage: "message substring filter"},
			&cli.IntFlag{Name: "page", Value: 0},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			s, err := openStore(ctx, c.String("db-path"))
			if err != nil {
				return err
			}
			page, err := s.logs.Search(ctx, domain.LogSearchParams{
				Start:          c.String("start"),
				End:            c.String("end"),
				Levels:         c.StringSlice("level"),
				Scope:          c.String("scope"),
				MessageContent: c.String("contains"),
				Page:           int(c.Int("page")),
			})
			if err != nil {
				return err
			}
			for _, e := range page.Content {
				fmt.Printf("%s\t%s\t%s\t%s\n", e.Timestamp, e.Level, e.Scope, e.Message)
			}
			fmt.Printf("page %d/%d, %d total\n", page.Number+1, page.TotalPages, page.TotalElements)
			return nil
		},
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
