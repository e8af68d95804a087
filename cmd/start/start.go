package start

import (
	"context"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/matchd-cloud/matchd/api"
	cachesvc "github.com/matchd-cloud/matchd/api/rest/service/cache"
	jobsvc "github.com/matchd-cloud/matchd/api/rest/service/job"
	"github.com/matchd-cloud/matchd/internal/cache"
	"github.com/matchd-cloud/matchd/internal/event"
	"github.com/matchd-cloud/matchd/internal/executor"
	"github.com/matchd-cloud/matchd/internal/match"
	"github.com/matchd-cloud/matchd/internal/registry"
	"github.com/matchd-cloud/matchd/internal/scheduler"
	"github.com/matchd-cloud/matchd/internal/worker"
	"github.com/matchd-cloud/matchd/pkg/env"
	"github.com/matchd-cloud/matchd/pkg/log"
	"github.com/spf13/cobra"
)

const (
	usage   = "start"
	short   = "Start a matchd batch processing instance"
	long    = "This command starts a matchd batch processing instance"
	example = "matchd start"
)

var (
	// Cmd is the start command.
	Cmd = &cobra.Command{
		Use:        usage,
		Short:      short,
		Long:       long,
		Aliases:    []string{"s"},
		SuggestFor: []string{"launch", "boot", "up", "run", "begin"},
		Example:    example,
		RunE:       start,
	}
)

var cancel context.CancelFunc

func start(cmd *cobra.Command, args []string) error {
	signalChan := make(chan os.Signal, 1)

	go func() {
		for s := range signalChan {
			switch s {
			case syscall.SIGUSR1:
				log.Info("dumping stack traces due to SIGUSR1 signal")
				if profile := pprof.Lookup("goroutine"); profile != nil {
					if err := profile.WriteTo(os.Stdout, 1); err != nil {
						log.Error("write goroutine profile", "error", err)
					}
				}
			case syscall.SIGINT:
				log.Info("gracefully shutting down due to SIGINT signal")
				shutdown()
				os.Exit(0)
			}
		}
	}()

	signal.Notify(signalChan, syscall.SIGUSR1, syscall.SIGINT)

	ctx, cancelFunc := context.WithCancel(context.Background())
	cancel = cancelFunc

	vars := env.Variables()

	var (
		bus  = event.New()
		reg  = registry.New()
		c    = cache.New()
		pool = worker.NewPool(vars.WorkerPoolSize)
	)

	reg.SetBus(bus)

	computer := match.NewCommandComputer(vars.ComputeCommand, vars.ComputeTimeout)
	exec := executor.New(reg, c, computer)
	sched := scheduler.New(ctx, reg, pool, exec)

	defer shutdown()

	log.Info("spinning up api", "port", vars.Port, "pool_size", vars.WorkerPoolSize)

	return api.Start(api.Dependencies{
		Jobs:  jobsvc.New(sched, reg),
		Cache: cachesvc.New(c, reg),
		Bus:   bus,
	})
}

func shutdown() {
	if cancel != nil {
		cancel()
	}
	if err := api.Shutdown(); err != nil {
		log.Error("api shutdown failure", "error", err)
	}
}
