// Command admissionctl runs operator tasks directly against the admission database.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	appAuth "github.com/yigit/examadmission/internal/app/auth"
	"github.com/yigit/examadmission/internal/app/services"
	"github.com/yigit/examadmission/internal/bootstrap"
)

const usage = `usage: admissionctl <command> [flags]

commands:
  assign-seats   seat every confirmed application without a seat
  verdict        show scores and the admission verdict of an application
`

type commonFlags struct {
	configPath string
	envFile    string
	username   string
	password   string
}

func (c *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&c.configPath, "config", "c", filepath.Join("configs", "config.yaml"), "path to the YAML configuration file")
	fs.StringVar(&c.envFile, "env-file", ".env", "optional .env file")
	fs.StringVarP(&c.username, "username", "u", "", "operator username")
	fs.StringVarP(&c.password, "password", "p", "", "operator password (defaults to $ADMISSIONCTL_PASSWORD)")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "assign-seats":
		err = assignSeats(args[1:], stdout)
	case "verdict":
		err = verdict(args[1:], stdout)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		color.New(color.FgRed).Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// session is an operator login held for the duration of one command
type session struct {
	services *services.Services
	identity *appAuth.Identity
	close    func()
}

func login(ctx context.Context, flags commonFlags) (*session, error) {
	if flags.username == "" {
		return nil, errors.New("--username is required")
	}
	password := flags.password
	if password == "" {
		password = os.Getenv("ADMISSIONCTL_PASSWORD")
	}

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(flags.configPath, flags.envFile)
	if err != nil {
		return nil, err
	}
	storage, err := bootstrap.SetupStorage(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}
	deps, err := bootstrap.BuildDependencies(ctx, cfg, storage, lgr)
	if err != nil {
		storage.Close()
		return nil, err
	}

	result, err := deps.Services.Auth.Login(ctx, flags.username, password)
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("login failed: %w", err)
	}
	header := "Bearer " + result.Token

	identity, err := appAuth.NewIdentityResolver(deps.Sessions, storage.Repos.Users).Resolve(ctx, header)
	if err != nil {
		storage.Close()
		return nil, err
	}

	return &session{
		services: deps.Services,
		identity: identity,
		close: func() {
			_ = deps.Services.Auth.Logout(context.Background(), header)
			storage.Close()
		},
	}, nil
}

func assignSeats(args []string, stdout io.Writer) error {
	var (
		common commonFlags
		examID int64
		req    services.SeatRequest
		dryRun bool
	)
	fs := pflag.NewFlagSet("assign-seats", pflag.ContinueOnError)
	common.register(fs)
	fs.Int64Var(&examID, "exam", 0, "only seat applications for this exam")
	fs.IntVar(&req.SeatsPerRoom, "seats-per-room", 0, "seats per room (configured default when 0)")
	fs.StringVar(&req.RoomPrefix, "prefix", "", "room label prefix")
	fs.IntVar(&req.StartRoom, "start-room", 0, "first room number")
	fs.StringVar(&req.ExamDate, "date", "", "exam date, YYYY-MM-DD")
	fs.StringVar(&req.ExamTime, "time", "", "exam time slot, e.g. 09:00-11:00")
	fs.StringVar(&req.Address, "address", "", "exam site address")
	fs.BoolVar(&dryRun, "dry-run", false, "show the plan without storing it")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if examID > 0 {
		req.ExamID = &examID
	}

	ctx := context.Background()
	s, err := login(ctx, common)
	if err != nil {
		return err
	}
	defer s.close()

	if dryRun {
		planned, err := s.services.Seats.Preview(ctx, s.identity, req)
		if err != nil {
			return err
		}
		renderAssignments(stdout, "Planned seats (dry run)", planned)
		return nil
	}

	result, err := s.services.Seats.AssignSeats(ctx, s.identity, req)
	if result != nil {
		renderAssignments(stdout, "Assigned seats", result.Assignments)
	}
	return err
}

func verdict(args []string, stdout io.Writer) error {
	var (
		common        commonFlags
		applicationID int64
	)
	fs := pflag.NewFlagSet("verdict", pflag.ContinueOnError)
	common.register(fs)
	fs.Int64Var(&applicationID, "application", 0, "application ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if applicationID <= 0 {
		return errors.New("--application is required")
	}

	ctx := context.Background()
	s, err := login(ctx, common)
	if err != nil {
		return err
	}
	defer s.close()

	result, err := s.services.Admission.ForApplication(ctx, s.identity, applicationID)
	if err != nil {
		return err
	}
	renderResult(stdout, result)
	return nil
}
