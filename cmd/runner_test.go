package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/recruitflow/internal/kanban"
	"github.com/desertthunder/recruitflow/internal/services"
	"github.com/desertthunder/recruitflow/internal/shared"
	tu "github.com/desertthunder/recruitflow/internal/testing"
)

// setupRunner wires a runner to a seeded in-memory pipeline and captures its output.
func setupRunner(t *testing.T) (*Runner, *services.PipelineService, *bytes.Buffer) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	logger := log.New(io.Discard)
	svc := services.NewPipelineService(db, services.PipelineOpts{
		User:   shared.UserConfig{ID: "1", Name: "John Doe"},
		Logger: logger,
	})

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config:  shared.DefaultConfig(),
		Service: svc,
		Logger:  logger,
		Output:  output,
	})
	return runner, svc, output
}

// run executes the app with args as if typed after the binary name.
func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	return newApp(r).Run(context.Background(), append([]string{"recruitflow"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			svc := &services.PipelineService{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "custom.toml",
				Service:    svc,
				Logger:     logger,
				Output:     output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.configPath != "custom.toml" {
				t.Error("expected config path to be set")
			}
			if runner.service != svc {
				t.Error("expected service to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config")
			}
			if runner.logger == nil {
				t.Error("expected default logger")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to stdout")
			}
			if runner.service != nil {
				t.Error("expected service to be opened lazily")
			}
			if err := runner.Close(); err != nil {
				t.Errorf("closing an unopened runner should not fail: %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: io.Discard})

		var names []string
		for _, c := range runner.register() {
			names = append(names, c.Name)
		}

		want := []string{"setup", "board", "items", "stages", "audit", "notifications", "companies"}
		if strings.Join(names, ",") != strings.Join(want, ",") {
			t.Errorf("expected commands %v, got %v", want, names)
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("compact", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"stage": "Offer"}, false); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.String() != "{\"stage\":\"Offer\"}\n" {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("pretty", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON([]string{"a"}, true); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.String() != "[\n  \"a\"\n]\n" {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("unmarshalable value", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: io.Discard})
			if err := runner.writeJSON(make(chan int), false); err == nil {
				t.Error("expected marshal error")
			}
		})

		t.Run("write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
			err := runner.writeJSON("x", false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("formats output", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("%d items in %s\n", 3, "Offer"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.String() != "3 items in Offer\n" {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("writePlainln surrounds with newlines", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			runner.writePlainln("Offer (%d)", 2)
			if output.String() != "\nOffer (2)\n" {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("fails after write limit", func(t *testing.T) {
			output := &bytes.Buffer{}
			w := tu.NewLimitedWriter(1, 0, output)
			runner := NewRunner(RunnerOpts{Output: &w})

			if err := runner.writePlain("first\n"); err != nil {
				t.Fatalf("first write should succeed: %v", err)
			}
			if err := runner.writePlain("second\n"); err == nil {
				t.Error("expected second write to fail")
			}
			if output.String() != "first\n" {
				t.Errorf("unexpected output %q", output.String())
			}
		})
	})
}

func TestStagesCommand(t *testing.T) {
	t.Run("list uses the configured default kind", func(t *testing.T) {
		runner, _, output := setupRunner(t)

		if err := run(t, runner, "stages", "list"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Candidate stages:") || !strings.Contains(output.String(), "3. Test Assignment") {
			t.Errorf("unexpected output:\n%s", output.String())
		}
	})

	t.Run("list as json", func(t *testing.T) {
		runner, _, output := setupRunner(t)

		if err := run(t, runner, "stages", "list", "--kind", "vacancies", "--json"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `["Initial Review","Screening","Interview","Offer","Hired","Rejected"]`
		if strings.TrimSpace(output.String()) != want {
			t.Errorf("expected %s, got %s", want, output.String())
		}
	})

	t.Run("invalid kind", func(t *testing.T) {
		runner, _, _ := setupRunner(t)

		err := run(t, runner, "stages", "list", "--kind", "company")
		if !errors.Is(err, shared.ErrInvalidKind) {
			t.Errorf("expected ErrInvalidKind, got %v", err)
		}
	})
}

func TestItemsCommand(t *testing.T) {
	t.Run("list groups by stage", func(t *testing.T) {
		runner, _, output := setupRunner(t)

		if err := run(t, runner, "items", "list", "--kind", "vacancy"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(output.String(), "Found 5 vacancies:") {
			t.Errorf("unexpected output:\n%s", output.String())
		}
	})

	t.Run("list with filters", func(t *testing.T) {
		runner, _, output := setupRunner(t)

		if err := run(t, runner, "items", "list", "--stage", "Interview"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(output.String(), "Found 6 candidates:") {
			t.Errorf("unexpected output:\n%s", output.String())
		}
		if !strings.Contains(output.String(), "[1] Иван Петров - Frontend Developer") {
			t.Errorf("expected candidate line, got:\n%s", output.String())
		}
	})

	t.Run("show prints history", func(t *testing.T) {
		runner, _, output := setupRunner(t)

		if err := run(t, runner, "items", "show", "1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := output.String()
		if !strings.Contains(out, "Candidate 1: Иван Петров") {
			t.Errorf("expected header, got:\n%s", out)
		}
		if !strings.Contains(out, "Screening → Interview by John Doe") {
			t.Errorf("expected stage history, got:\n%s", out)
		}
	})

	t.Run("show unknown item", func(t *testing.T) {
		runner, _, _ := setupRunner(t)

		if err := run(t, runner, "items", "show", "404"); !errors.Is(err, shared.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("show requires an id", func(t *testing.T) {
		runner, _, _ := setupRunner(t)

		if err := run(t, runner, "items", "show"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("move", func(t *testing.T) {
		runner, svc, output := setupRunner(t)

		if err := run(t, runner, "items", "move", "--to", "Hired", "1", "3"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "All candidates are in Hired") {
			t.Errorf("unexpected output:\n%s", output.String())
		}

		hired, err := svc.ListItems(context.Background(), kanban.KindCandidate, kanban.Filter{Stage: "Hired"})
		if err != nil {
			t.Fatalf("failed to list candidates: %v", err)
		}
		ids := map[string]bool{}
		for _, item := range hired {
			ids[item.ID] = true
		}
		if !ids["1"] || !ids["3"] {
			t.Errorf("expected candidates 1 and 3 to be hired, got %v", ids)
		}
	})

	t.Run("move reports failures", func(t *testing.T) {
		runner, _, output := setupRunner(t)

		if err := run(t, runner, "items", "move", "--to", "Offer", "1", "404"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "1 of 2 moves failed") {
			t.Errorf("unexpected output:\n%s", output.String())
		}
	})

	t.Run("move to unknown stage", func(t *testing.T) {
		runner, _, _ := setupRunner(t)

		err := run(t, runner, "items", "move", "--to", "Archived", "1")
		if !errors.Is(err, shared.ErrStageUnknown) {
			t.Errorf("expected ErrStageUnknown, got %v", err)
		}
	})

	t.Run("move without ids", func(t *testing.T) {
		runner, _, _ := setupRunner(t)

		err := run(t, runner, "items", "move", "--to", "Offer")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("export to stdout", func(t *testing.T) {
		runner, _, output := setupRunner(t)

		if err := run(t, runner, "items", "export", "--format", "md", "--stdout"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(output.String(), "# Candidate pipeline") {
			t.Errorf("unexpected output:\n%s", output.String())
		}
	})

	t.Run("export to file", func(t *testing.T) {
		runner, _, output := setupRunner(t)
		path := filepath.Join(t.TempDir(), "board.csv")

		if err := run(t, runner, "items", "export", "--kind", "vacancy", "--output", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tu.AssertFileExists(t, path)
		if !strings.HasPrefix(tu.MustReadFile(t, path), "Stage,ID,Title") {
			t.Error("expected csv header")
		}
		if !strings.Contains(output.String(), "Exported 5 vacancies") {
			t.Errorf("unexpected output:\n%s", output.String())
		}
	})

	t.Run("export invalid format", func(t *testing.T) {
		runner, _, _ := setupRunner(t)

		err := run(t, runner, "items", "export", "--format", "xlsx", "--stdout")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("import", func(t *testing.T) {
		runner, svc, output := setupRunner(t)
		path := filepath.Join(t.TempDir(), "candidates.yaml")
		fixture := `kind: candidate
items:
  - title: Ada Lovelace
    subtitle: Backend Developer
    tags: [Go, SQL]
  - title: Grace Hopper
    subtitle: Compiler Engineer
    stage: Offer
`
		if err := os.WriteFile(path, []byte(fixture), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		if err := run(t, runner, "items", "import", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Imported 2 candidates") {
			t.Errorf("unexpected output:\n%s", output.String())
		}

		items, err := svc.ListItems(context.Background(), kanban.KindCandidate, kanban.Filter{})
		if err != nil {
			t.Fatalf("failed to list candidates: %v", err)
		}
		if len(items) != 22 {
			t.Errorf("expected 22 candidates after import, got %d", len(items))
		}
	})

	t.Run("import missing file", func(t *testing.T) {
		runner, _, _ := setupRunner(t)

		if err := run(t, runner, "items", "import", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("update vacancy fields", func(t *testing.T) {
		runner, svc, output := setupRunner(t)

		err := run(t, runner, "items", "update", "--kind", "vacancy", "--title", "Lead Frontend Developer", "--salary", "9000", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := output.String()
		if !strings.Contains(out, "✓ Updated vacancy 1") || !strings.Contains(out, "Lead Frontend Developer") {
			t.Errorf("unexpected output:\n%s", out)
		}

		detail, err := svc.GetItemDetail(context.Background(), kanban.KindVacancy, "1")
		if err != nil {
			t.Fatalf("failed to get item: %v", err)
		}
		if detail.Item.Title != "Lead Frontend Developer" || detail.Item.Stage != "Interview" {
			t.Errorf("unexpected item %+v", detail.Item)
		}
		if detail.Item.Salary == nil || detail.Item.Salary.Amount != 9000 || detail.Item.Salary.Currency != "USD" {
			t.Errorf("unexpected salary %+v", detail.Item.Salary)
		}
	})

	t.Run("update without changes", func(t *testing.T) {
		runner, _, _ := setupRunner(t)

		if err := run(t, runner, "items", "update", "1"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		runner, svc, output := setupRunner(t)

		if err := run(t, runner, "items", "delete", "3"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "✓ Deleted candidate 3") {
			t.Errorf("unexpected output:\n%s", output.String())
		}

		items, err := svc.ListItems(context.Background(), kanban.KindCandidate, kanban.Filter{})
		if err != nil {
			t.Fatalf("failed to list items: %v", err)
		}
		if len(items) != 19 {
			t.Errorf("expected 19 candidates, got %d", len(items))
		}
	})

	t.Run("delete unknown item", func(t *testing.T) {
		runner, _, _ := setupRunner(t)

		if err := run(t, runner, "items", "delete", "404"); !errors.Is(err, shared.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
	})
}

func TestAuditCommand(t *testing.T) {
	t.Run("list with filters", func(t *testing.T) {
		runner, _, output := setupRunner(t)

		if err := run(t, runner, "audit", "list", "--entity", "candidate"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := output.String()
		if !strings.Contains(out, "1 of 1 entries") || !strings.Contains(out, "(Screening → Interview)") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("until includes the whole day", func(t *testing.T) {
		runner, _, output := setupRunner(t)

		if err := run(t, runner, "audit", "list", "--since", "2023-04-16", "--until", "2023-04-16", "--json"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), `"total":1`) {
			t.Errorf("expected one entry, got %s", output.String())
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		runner, _, _ := setupRunner(t)

		err := run(t, runner, "audit", "list", "--since", "16/04/2023")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("invalid entity", func(t *testing.T) {
		runner, _, _ := setupRunner(t)

		err := run(t, runner, "audit", "list", "--entity", "stage")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestNotificationsCommand(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		runner, _, output := setupRunner(t)

		if err := run(t, runner, "notifications", "list"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(output.String(), "3 notifications, 2 unread") {
			t.Errorf("unexpected output:\n%s", output.String())
		}
	})

	t.Run("read one", func(t *testing.T) {
		runner, svc, _ := setupRunner(t)

		if err := run(t, runner, "notif", "read", "1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		unread, err := svc.ListNotifications(context.Background(), true)
		if err != nil {
			t.Fatalf("failed to list notifications: %v", err)
		}
		if len(unread) != 1 {
			t.Errorf("expected 1 unread notification, got %d", len(unread))
		}
	})

	t.Run("read all", func(t *testing.T) {
		runner, _, output := setupRunner(t)

		if err := run(t, runner, "notifications", "read", "--all"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Marked 2 notifications as read") {
			t.Errorf("unexpected output:\n%s", output.String())
		}
	})

	t.Run("read requires id or all", func(t *testing.T) {
		runner, _, _ := setupRunner(t)

		if err := run(t, runner, "notifications", "read"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("read rejects id with all", func(t *testing.T) {
		runner, _, _ := setupRunner(t)

		if err := run(t, runner, "notifications", "read", "--all", "1"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("unread and dismiss", func(t *testing.T) {
		runner, svc, output := setupRunner(t)

		if err := run(t, runner, "notifications", "unread", "2"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := run(t, runner, "notifications", "dismiss", "1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := output.String()
		if !strings.Contains(out, "Notification 2 marked as unread") || !strings.Contains(out, "Notification 1 dismissed") {
			t.Errorf("unexpected output:\n%s", out)
		}

		all, err := svc.ListNotifications(context.Background(), false)
		if err != nil {
			t.Fatalf("failed to list notifications: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("expected 2 notifications, got %d", len(all))
		}
		for _, n := range all {
			if n.IsRead {
				t.Errorf("expected notification %s to be unread", n.ID)
			}
		}
	})

	t.Run("dismiss requires an id", func(t *testing.T) {
		runner, _, _ := setupRunner(t)

		if err := run(t, runner, "notifications", "dismiss"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestCompaniesCommand(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		runner, _, output := setupRunner(t)

		if err := run(t, runner, "companies", "list", "--search", "tech"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := output.String()
		if !strings.HasPrefix(out, "Found 1 companies:") || !strings.Contains(out, "Tech Solutions") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("show lists vacancies", func(t *testing.T) {
		runner, _, output := setupRunner(t)

		if err := run(t, runner, "companies", "show", "2"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := output.String()
		if !strings.Contains(out, "Company 2: Tech Solutions") {
			t.Errorf("expected header, got:\n%s", out)
		}
		if !strings.Contains(out, "Vacancies (1)") || !strings.Contains(out, "[4] DevOps Engineer (Initial Review, active)") {
			t.Errorf("expected vacancies, got:\n%s", out)
		}
	})

	t.Run("show unknown company", func(t *testing.T) {
		runner, _, _ := setupRunner(t)

		if err := run(t, runner, "companies", "show", "404"); !errors.Is(err, shared.ErrCompanyNotFound) {
			t.Errorf("expected ErrCompanyNotFound, got %v", err)
		}
	})

	t.Run("create update delete", func(t *testing.T) {
		runner, svc, output := setupRunner(t)
		ctx := context.Background()

		if err := run(t, runner, "companies", "create", "--industry", "Retail", "Acme"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "✓ Created company Acme (ID: 4)") {
			t.Errorf("unexpected output:\n%s", output.String())
		}

		if err := run(t, runner, "companies", "update", "--legal-name", "Acme Corp", "4"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		detail, err := svc.GetCompany(ctx, "4")
		if err != nil {
			t.Fatalf("failed to get company: %v", err)
		}
		if detail.Company.LegalName != "Acme Corp" || detail.Company.Industry != "Retail" {
			t.Errorf("unexpected company %+v", detail.Company)
		}

		if err := run(t, runner, "companies", "delete", "4"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.GetCompany(ctx, "4"); !errors.Is(err, shared.ErrCompanyNotFound) {
			t.Errorf("expected ErrCompanyNotFound after delete, got %v", err)
		}

		page, err := svc.ListAudit(ctx, services.AuditFilter{EntityType: "company", EntityID: "4"})
		if err != nil {
			t.Fatalf("failed to list audit: %v", err)
		}
		if page.Total != 3 {
			t.Errorf("expected created, updated and deleted entries, got %d", page.Total)
		}
	})

	t.Run("create requires a name", func(t *testing.T) {
		runner, _, _ := setupRunner(t)

		if err := run(t, runner, "companies", "create"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestSetupDatabase(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	dbPath := filepath.Join(dir, "recruitflow.db")

	if err := os.WriteFile(configPath, []byte("[database]\npath = \""+dbPath+"\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{Logger: log.New(io.Discard), Output: output})
	t.Cleanup(func() { runner.Close() })

	if err := run(t, runner, "setup", "database", "--config", configPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tu.AssertFileExists(t, dbPath)
	out := output.String()
	if !strings.Contains(out, "Database ready: "+dbPath) || !strings.Contains(out, "Candidate stages: 6") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
