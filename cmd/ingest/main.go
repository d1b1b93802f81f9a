package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/EmpoweredVote/civic-data-backend/internal/census"
	"github.com/EmpoweredVote/civic-data-backend/internal/config"
	"github.com/EmpoweredVote/civic-data-backend/internal/crime"
	"github.com/EmpoweredVote/civic-data-backend/internal/db"
	"github.com/EmpoweredVote/civic-data-backend/internal/health"
	"github.com/EmpoweredVote/civic-data-backend/internal/ingest"
	"github.com/EmpoweredVote/civic-data-backend/internal/legislation"
	"github.com/EmpoweredVote/civic-data-backend/internal/legislators"
	"github.com/EmpoweredVote/civic-data-backend/internal/metrics"
	"github.com/EmpoweredVote/civic-data-backend/internal/schema"
	"github.com/EmpoweredVote/civic-data-backend/internal/spending"
	"github.com/EmpoweredVote/civic-data-backend/internal/states"
)

func main() {
	var (
		jobs       = flag.String("job", "", "comma-separated jobs to run, or \"all\"")
		configPath = flag.String("config", "ingest.yaml", "path to ingest config (optional)")
		list       = flag.Bool("list", false, "list jobs and exit")
	)
	flag.Parse()

	config.LoadDotEnv()

	icfg, err := config.LoadIngest(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	client := ingest.NewClient(icfg.RequestsPerSecond)
	if *list {
		runner := ingest.NewRunner(client, nil, nil)
		register(runner, icfg)
		fmt.Println(strings.Join(runner.Jobs(), "\n"))
		return
	}
	if *jobs == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadDB()
	if err != nil {
		log.Fatal(err)
	}
	pool, err := db.Open(db.PoolConfig{
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		VerboseSQL:      cfg.LogSQL,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := schema.Migrate(pool); err != nil {
		log.Fatal(err)
	}

	runner := ingest.NewRunner(client, pool, metrics.New())
	register(runner, icfg)

	names := strings.Split(*jobs, ",")
	if *jobs == "all" {
		names = runner.Jobs()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runner.Run(ctx, names...); err != nil {
		log.Printf("ingest failed: %v", err)
		pool.Close()
		os.Exit(1)
	}
}

func register(r *ingest.Runner, cfg config.IngestConfig) {
	r.Register("legislators", legislators.RosterJob(cfg.Legislators))
	r.Register("nominate", legislators.NominateJob(cfg.Legislators))
	r.Register("crime", crime.Job(cfg.Crime))
	r.Register("census", census.Job(cfg.Census))
	r.Register("health", health.Job(cfg.Health, states.Codes()))
	r.Register("spending", spending.SpendingJob(cfg.Spending))
	r.Register("debt", spending.DebtJob(cfg.Debt))
	r.Register("economic", spending.EconomicJob(cfg.Economic))
	r.Register("legislation", legislation.Job(cfg.Legislation))
}
