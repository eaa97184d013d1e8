package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/simp-lee/schoolkit/internal/app"
	"github.com/simp-lee/schoolkit/internal/config"
	"github.com/simp-lee/schoolkit/internal/domain"
	"github.com/simp-lee/schoolkit/internal/pkg"
	"github.com/simp-lee/schoolkit/internal/store"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal("failed to create app: ", err)
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, a, flag.Args(), os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(a)
		os.Exit(2)
	}

	switch args[0] {
	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: schoolctl login <email> <password>")
		}
		if _, err := a.Auth.Login(ctx, args[1], args[2]); err != nil {
			return err
		}
		fmt.Fprintln(out, "logged in as", args[1])
		return nil

	case "logout":
		if err := a.Auth.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "logged out")
		return nil

	case "whoami":
		sess, err := a.Sessions.Current(ctx)
		if err != nil {
			if domain.IsNotFound(err) {
				fmt.Fprintln(out, "not logged in")
				return nil
			}
			return err
		}
		fmt.Fprintln(out, sess.Email)
		return nil

	case "list", "search", "get", "toggle", "delete":
		// fall through to resource dispatch below
	default:
		usage(a)
		return fmt.Errorf("unknown command %q", args[0])
	}

	if len(args) < 2 {
		return fmt.Errorf("usage: schoolctl %s <resource> ...", args[0])
	}
	entry, ok := resources(a)[args[1]]
	if !ok {
		return fmt.Errorf("unknown resource %q", args[1])
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		search := fs.String("search", "", "search term")
		page := fs.Int("page", 1, "page number")
		limit := fs.Int("limit", a.DefaultLimit(), "page size")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		q := domain.Query{
			Search: *search,
			Page:   pkg.ClampPage(*page),
			Limit:  pkg.ClampLimit(*limit),
		}
		return entry.list(ctx, q, out)
	case "search":
		fs := flag.NewFlagSet("search", flag.ExitOnError)
		limit := fs.Int("limit", a.DefaultLimit(), "page size")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		fmt.Fprintln(out, "type a search term per line, ctrl-d to quit")
		return searchLoop(ctx, entry, *limit, a.Debounce(), os.Stdin, out)
	case "get":
		if len(args) != 3 {
			return fmt.Errorf("usage: schoolctl get <resource> <id>")
		}
		return entry.get(ctx, args[2], out)
	case "toggle":
		if len(args) != 3 {
			return fmt.Errorf("usage: schoolctl toggle <resource> <id>")
		}
		return entry.toggle(ctx, args[2], out)
	case "delete":
		if len(args) != 3 {
			return fmt.Errorf("usage: schoolctl delete <resource> <id>")
		}
		return entry.del(ctx, args[2], out)
	}
	return nil
}

// searchLoop re-lists the resource for each settled search term. Terms
// typed in quick succession collapse into a single request.
func searchLoop(ctx context.Context, cmd resourceCmd, limit int, wait time.Duration, in io.Reader, out io.Writer) error {
	deb := pkg.NewDebouncer(wait, func(term string) {
		q := domain.Query{Search: term, Page: 1, Limit: pkg.ClampLimit(limit)}
		if err := cmd.list(ctx, q, out); err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	})
	defer deb.Stop()

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		deb.Update(strings.TrimSpace(sc.Text()))
	}
	deb.Flush()
	return sc.Err()
}

// resourceCmd is the uniform view of one entity for command dispatch.
type resourceCmd struct {
	list   func(ctx context.Context, q domain.Query, out io.Writer) error
	get    func(ctx context.Context, id string, out io.Writer) error
	toggle func(ctx context.Context, id string, out io.Writer) error
	del    func(ctx context.Context, id string, out io.Writer) error
}

func resources(a *app.App) map[string]resourceCmd {
	return map[string]resourceCmd{
		"classes":  entry(a.Classes.Store(), func(c domain.Class) string { return c.Name }),
		"subjects": entry(a.Subjects.Store(), func(s domain.Subject) string { return s.Name }),
		"groups":   entry(a.Groups.Store(), func(g domain.Group) string { return g.Name }),
		"batches":  entry(a.Batches.Store(), func(b domain.Batch) string { return b.Name }),
		"admissions": entry(a.Admissions.Store(), func(ad domain.Admission) string {
			return ad.StudentName + " (" + ad.Status + ")"
		}),
		"attendance": entry(a.Attendance.Store(), func(at domain.Attendance) string {
			return at.StudentID + " " + at.Status
		}),
		"teachers":        entry(a.Teachers.Store(), func(t domain.Teacher) string { return t.Name }),
		"exams":           entry(a.Exams.Store(), func(e domain.Exam) string { return e.Name }),
		"exam-categories": entry(a.ExamCategories.Store(), func(ec domain.ExamCategory) string { return ec.Name }),
	}
}

// entry adapts one typed list store to the command surface.
func entry[T domain.Record](s *store.ListStore[T], label func(T) string) resourceCmd {
	return resourceCmd{
		list: func(ctx context.Context, q domain.Query, out io.Writer) error {
			if err := s.FetchList(ctx, q); err != nil {
				return err
			}
			st := s.State()

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME")
			for _, item := range st.Items {
				fmt.Fprintf(w, "%s\t%s\n", item.RecordID(), label(item))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "page %d of %d, %d total\n", st.Page, st.TotalPages, st.Total)
			if window := pkg.PageWindow(st.Page, st.TotalPages); len(window) > 0 {
				fmt.Fprintln(out, "pages:", renderWindow(window, st.Page))
			}
			return nil
		},
		get: func(ctx context.Context, id string, out io.Writer) error {
			if err := s.FetchOne(ctx, id); err != nil {
				return err
			}
			st := s.State()
			b, err := json.MarshalIndent(st.Current, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		},
		toggle: func(ctx context.Context, id string, out io.Writer) error {
			if err := s.ToggleStatus(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(out, "toggled", id)
			return nil
		},
		del: func(ctx context.Context, id string, out io.Writer) error {
			if err := s.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(out, "deleted", id)
			return nil
		},
	}
}

// renderWindow formats the page navigation window, bracketing the
// current page.
func renderWindow(window []int, current int) string {
	parts := make([]string, len(window))
	for i, p := range window {
		if p == current {
			parts[i] = "[" + strconv.Itoa(p) + "]"
		} else {
			parts[i] = strconv.Itoa(p)
		}
	}
	return strings.Join(parts, " ")
}

func usage(a *app.App) {
	names := make([]string, 0, len(resources(a)))
	for name := range resources(a) {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(os.Stderr, `usage:
  schoolctl [-config path] login <email> <password>
  schoolctl [-config path] logout
  schoolctl [-config path] whoami
  schoolctl [-config path] list <resource> [-search term] [-page n] [-limit n]
  schoolctl [-config path] search <resource> [-limit n]
  schoolctl [-config path] get <resource> <id>
  schoolctl [-config path] toggle <resource> <id>
  schoolctl [-config path] delete <resource> <id>

resources: ` + strings.Join(names, ", "))
}
