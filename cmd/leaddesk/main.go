package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ogurasousui/leaddesk/internal/adapters/repository/memory"
	"github.com/ogurasousui/leaddesk/internal/adapters/repository/postgres"
	"github.com/ogurasousui/leaddesk/internal/adapters/repository/writethrough"
	"github.com/ogurasousui/leaddesk/internal/core/authoring"
	"github.com/ogurasousui/leaddesk/internal/core/directory"
	"github.com/ogurasousui/leaddesk/internal/core/lead"
	"github.com/ogurasousui/leaddesk/internal/platform/config"
	pg "github.com/ogurasousui/leaddesk/internal/platform/db/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database pool: %v", err)
	}
	defer dbPool.Close()

	tx := pg.NewTransactionManager(dbPool)
	dirRepo := postgres.NewDirectoryRepository(dbPool)

	cache := memory.NewDirectoryStore(nil)
	if err := hydrateDirectory(ctx, tx, dirRepo, cache); err != nil {
		log.Fatalf("failed to load directory: %v", err)
	}

	store := writethrough.NewDirectoryStore(cache, dirRepo, tx, nil)
	leads := &txLeadRepository{repo: postgres.NewLeadRepository(dbPool), tx: tx}
	session := authoring.NewSession(store, leads, nil, cfg.Authoring.DefaultCurrency)

	if err := runConsole(ctx, session, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("console stopped with error: %v", err)
	}
}

func hydrateDirectory(ctx context.Context, tx *pg.TransactionManager, repo *postgres.DirectoryRepository, cache *memory.DirectoryStore) error {
	var companies []*directory.Company
	err := tx.WithinReadOnly(ctx, func(ctx context.Context) error {
		loaded, err := repo.LoadAll(ctx)
		if err != nil {
			return err
		}
		companies = loaded
		return nil
	})
	if err != nil {
		return err
	}

	for _, c := range companies {
		cache.Put(c)
	}
	return nil
}

// txLeadRepository はリードの読み書きをトランザクション内で実行します。
type txLeadRepository struct {
	repo *postgres.LeadRepository
	tx   *pg.TransactionManager
}

func (r *txLeadRepository) FindByID(ctx context.Context, id string) (*lead.Lead, error) {
	var found *lead.Lead
	err := r.tx.WithinReadOnly(ctx, func(ctx context.Context) error {
		l, err := r.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		found = l
		return nil
	})
	return found, err
}

func (r *txLeadRepository) Create(ctx context.Context, l *lead.Lead) (*lead.Lead, error) {
	var created *lead.Lead
	err := r.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		saved, err := r.repo.Create(ctx, l)
		if err != nil {
			return err
		}
		created = saved
		return nil
	})
	return created, err
}

func (r *txLeadRepository) Update(ctx context.Context, id string, l *lead.Lead) (*lead.Lead, error) {
	var updated *lead.Lead
	err := r.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		saved, err := r.repo.Update(ctx, id, l)
		if err != nil {
			return err
		}
		updated = saved
		return nil
	})
	return updated, err
}

func runConsole(ctx context.Context, session *authoring.Session, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "leaddesk console. type 'help' for commands.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch cmd {
		case "quit", "exit":
			return nil
		case "help":
			printHelp(out)
		case "companies":
			options, err := session.OnCompanySearch(ctx, rest)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			for _, opt := range options {
				fmt.Fprintf(out, "  %s  %s\n", opt.ID, opt.Label)
			}
		case "select":
			options, err := session.OnCompanySelected(ctx, rest)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "selected. %d persons available\n", len(options))
		case "search":
			result, err := session.OnSearchQuery(ctx, rest)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			options, ok := session.ApplySearch(result)
			if !ok {
				continue
			}
			for _, opt := range options {
				fmt.Fprintf(out, "  %s  %s\n", opt.ID, opt.Label)
			}
		case "attach":
			if err := session.OnAttach(ctx, rest); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "detach":
			session.OnDetach(rest)
		case "set":
			field, value, _ := strings.Cut(rest, " ")
			if err := session.OnFieldChange(lead.Field(field), strings.TrimSpace(value)); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "newcompany":
			name, location, _ := strings.Cut(rest, ";")
			company, err := session.OnCreateCompany(ctx, directory.CreateCompanyInput{
				Name:     name,
				Location: strings.TrimSpace(location),
			})
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "created company %s\n", company.ID)
		case "newperson":
			name, designation, _ := strings.Cut(rest, ";")
			person, err := session.OnCreatePerson(ctx, session.Draft().CompanyID, directory.CreatePersonInput{
				Name:        name,
				Designation: strings.TrimSpace(designation),
			})
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "created person %s\n", person.ID)
		case "show":
			printDraft(out, session)
		case "edit":
			if _, err := session.OnLoadForEdit(ctx, rest); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintln(out, "lead loaded for editing")
		case "cancel":
			session.OnCancel()
		case "submit":
			saved, err := session.OnSubmit(ctx)
			if err != nil {
				var ve *lead.ValidationError
				if errors.As(err, &ve) {
					for field, msg := range session.Draft().FieldErrors() {
						fmt.Fprintf(out, "  %s: %s\n", field, msg)
					}
					continue
				}
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "saved lead %s\n", saved.ID)
		default:
			fmt.Fprintf(out, "unknown command %q\n", cmd)
		}
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, `commands:
  companies [query]          list companies
  select <companyID>         choose the lead's company
  search <text>              search available persons
  attach <personID>          attach a person to the lead
  detach <personID>          detach a person
  set <field> <value>        set a scalar field (jobTitle, jobPostUrl, source, ...)
  newcompany <name>[;loc]    create a company and select it
  newperson <name>[;title]   create a person under the current company
  show                       print the current draft
  edit <leadID>              load a saved lead for editing
  submit                     validate and save
  cancel                     discard the draft
  quit                       exit`)
}

func printDraft(out io.Writer, session *authoring.Session) {
	d := session.Draft()
	fmt.Fprintf(out, "company:   %s\n", d.CompanyID)
	for i, ref := range d.Attached {
		role := "additional"
		if i == 0 {
			role = "primary"
		}
		fmt.Fprintf(out, "person:    %s (%s, %s)\n", ref.Name, ref.Designation, role)
	}
	fmt.Fprintf(out, "job title: %s\n", d.JobTitle)
	fmt.Fprintf(out, "job url:   %s\n", d.JobPostURL)
	fmt.Fprintf(out, "source:    %s %s\n", d.Source, d.CustomSource)
	fmt.Fprintf(out, "nature:    %s / %s\n", d.JobNature, d.WorkplaceModel)
	fmt.Fprintf(out, "salary:    %s %s %s\n", d.SalaryType, d.SalaryCurrency, d.SalaryAmount)
	for field, msg := range d.FieldErrors() {
		fmt.Fprintf(out, "error:     %s: %s\n", field, msg)
	}
}
