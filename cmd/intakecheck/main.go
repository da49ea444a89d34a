// Command intakecheck reconciles applicant JSON exports offline and reports which
// sections would fail to save. It can also mint a development access token.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/jwt"
	applicantService "github.com/cmlabs-hris/applicant-intake-go/internal/service/applicant"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("intakecheck", flag.ContinueOnError)
	flags.SetOutput(stderr)
	section := flags.String("section", "", "check a single section (personal, education, work, skills, position, documents)")
	showRecord := flags.Bool("record", false, "print the reconciled record as JSON")
	token := flags.Bool("token", false, "print a development access token instead of checking files")
	userID := flags.String("user", "dev-user", "user_id claim for -token")
	role := flags.String("role", applicant.RoleApplicant, "role claim for -token")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *token {
		return printToken(stdout, stderr, *userID, *role)
	}

	if flags.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: intakecheck [-section name] [-record] file.json...")
		return 2
	}

	failed := false
	for _, path := range flags.Args() {
		raw, err := readRaw(path)
		if err != nil {
			color.New(color.FgRed).Fprintf(stderr, "%s: %v\n", path, err)
			return 1
		}
		ok, err := report(stdout, path, raw, applicant.Section(*section), *showRecord)
		if err != nil {
			color.New(color.FgRed).Fprintf(stderr, "%s: %v\n", path, err)
			return 2
		}
		failed = failed || !ok
	}

	if failed {
		return 1
	}
	return 0
}

func readRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return raw, nil
}

// report prints one table row per failing field and returns whether the checked
// sections are all valid. Attachments come only from the file itself.
func report(w io.Writer, name string, raw map[string]any, section applicant.Section, showRecord bool) (bool, error) {
	rec := applicantService.NewReconciler().Reconcile(raw)

	sections := applicant.Sections()
	if section != "" {
		if !section.IsValid() {
			return false, applicant.ErrInvalidSection
		}
		sections = []applicant.Section{section}
	}

	color.New(color.FgCyan).Fprintf(w, "\n=== %s ===\n", name)

	if showRecord {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(applicantService.ToRaw(rec)); err != nil {
			return false, err
		}
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Section", "Field", "Message"})

	valid := true
	summary := make([][]string, 0, len(sections))
	for _, s := range sections {
		errs := applicantService.ValidateSection(rec, s, nil)
		status := "ok"
		if len(errs) > 0 {
			valid = false
			status = strconv.Itoa(len(errs)) + " error(s)"
		}
		summary = append(summary, []string{string(s), status})
		for _, e := range errs {
			table.Append([]string{string(s), e.Field, e.Message})
		}
	}

	sectionTable := tablewriter.NewWriter(w)
	sectionTable.SetHeader([]string{"Section", "Status"})
	sectionTable.AppendBulk(summary)
	sectionTable.Render()

	if valid {
		color.New(color.FgGreen).Fprintln(w, "All checked sections are valid")
		return true, nil
	}

	color.New(color.FgYellow).Fprintln(w, "Failing fields")
	table.Render()

	if missing := applicantService.MissingDocuments(rec, nil); len(missing) > 0 {
		color.New(color.FgYellow).Fprintf(w, "Missing documents: %v\n", missing)
	}
	return false, nil
}

func printToken(stdout, stderr io.Writer, userID, role string) int {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		color.New(color.FgRed).Fprintln(stderr, "JWT_SECRET_KEY is required for -token")
		return 2
	}

	svc := jwt.NewJWTService(secret, "24h")
	token, _, err := svc.GenerateAccessToken(userID, userID+"@localhost", role)
	if err != nil {
		color.New(color.FgRed).Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintln(stdout, token)
	return 0
}
