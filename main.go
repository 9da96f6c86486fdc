package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harrisonrobin/canvastasks/pkg/auth"
	"github.com/harrisonrobin/canvastasks/pkg/canvas"
	"github.com/harrisonrobin/canvastasks/pkg/config"
	"github.com/harrisonrobin/canvastasks/pkg/google"
	"github.com/harrisonrobin/canvastasks/pkg/schedule"
	tasksync "github.com/harrisonrobin/canvastasks/pkg/sync"
)

func main() {
	// 1. Parse Flags
	taskList := flag.String("tasklist", "", "Google Tasks list to sync into (overrides config)")
	setTaskList := flag.String("set-tasklist", "", "Set the default Google Tasks list name")
	doAuth := flag.Bool("auth", false, "Authenticate with Google Tasks")
	windowDays := flag.Int("window", 0, "Recency window in days (overrides config)")
	strategyName := flag.String("strategy", "", "Sync strategy: recreate or update (overrides config)")
	dryRun := flag.Bool("dry-run", false, "Print the reminder plan without touching Google Tasks")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	// 2. Handle Set Task List
	if *setTaskList != "" {
		cfg, err := config.Load()
		if err != nil {
			logger.Fatal("error loading config", "err", err)
		}
		cfg.TaskList = *setTaskList
		if err := config.Save(cfg); err != nil {
			logger.Fatal("error saving config", "err", err)
		}
		fmt.Printf("Default task list set to: %s\n", *setTaskList)
		return
	}

	// 3. Resolve Configuration (Priority: Flag > Config > Default)
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("error loading config", "err", err)
	}
	selectedList := cfg.TaskList
	if *taskList != "" {
		selectedList = *taskList
	}
	window := time.Duration(cfg.RecencyDays) * 24 * time.Hour
	if *windowDays > 0 {
		window = time.Duration(*windowDays) * 24 * time.Hour
	}
	if *strategyName != "" {
		cfg.Strategy = *strategyName
	}
	strategy, err := tasksync.ParseStrategy(cfg.Strategy)
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	ctx := context.Background()

	// 4. Handle Authentication
	if *doAuth {
		xdgConfigBase, err := auth.GetXdgHome()
		if err != nil {
			logger.Fatal("could not find path to configuration file", "err", err)
		}

		tokenFile := filepath.Join(xdgConfigBase, auth.TokenFile)
		if _, err := os.Stat(tokenFile); err == nil {
			logger.Info("removing existing token file", "path", tokenFile)
			if err := os.Remove(tokenFile); err != nil {
				logger.Fatal("could not delete token file, please delete it manually", "path", tokenFile, "err", err)
			}
		}

		if _, err := auth.GetTasksService(ctx); err != nil {
			logger.Fatal("authentication failed", "err", err)
		}
		logger.Info("authentication successful", "token", tokenFile)
		return
	}

	// 5. Fetch Assignments from Canvas
	creds, err := config.LoadCanvas()
	if err != nil {
		logger.Fatal("canvas credentials", "err", err)
	}

	client := canvas.NewClient(creds.BaseURL, creds.Token)
	groups, err := client.FetchAssignments()
	if err != nil {
		logger.Fatal("error fetching assignments", "err", err)
	}

	// 6. Normalize, Filter, Schedule
	normalizer, err := schedule.NewNormalizer(cfg.Timezone)
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	filter := schedule.NewFilter(normalizer, window)
	current := filter.Apply(normalizer.LocalizeGroups(groups), time.Now().In(normalizer.Location()))
	if len(current) == 0 {
		fmt.Println("No current assignments found")
		return
	}

	fmt.Println("Fetched assignments:")
	for _, a := range schedule.SortByDue(current) {
		dueStr := "No due date"
		if a.DueAt != nil {
			dueStr = a.DueAt.Format("2006-01-02 15:04 MST")
		}
		fmt.Printf("%s — %s | Due: %s\n", a.CourseName, a.Name, dueStr)
	}

	plan := schedule.BuildPlan(current, normalizer)

	if *dryRun {
		fmt.Println("\nReminder plan (dry run):")
		for _, e := range plan.Entries {
			fmt.Printf("%s | Due: %s\n", e.Title, e.Due.Format("2006-01-02 15:04 MST"))
		}
		return
	}

	// 7. Sync to Google Tasks
	gclient, err := google.NewClient(ctx, selectedList)
	if err != nil {
		logger.Fatal("error creating Google Tasks client", "err", err)
	}

	engine := tasksync.NewEngine(gclient, strategy, logger)
	summary, err := engine.Apply(plan)
	if err != nil {
		logger.Fatal("error exporting tasks", "err", err)
	}

	// 8. Report
	fmt.Println("\nGoogle Tasks export summary:")
	printBucket("Created tasks", summary.Created)
	printBucket("Updated tasks", summary.Updated)
	printBucket("No due date reminders created", summary.NoDueCreated)
	if summary.FailedDeletes > 0 {
		fmt.Printf("Stale tasks not deleted: %d\n", summary.FailedDeletes)
	}
	fmt.Println("\nTasks successfully exported to Google Tasks.")
}

func printBucket(label string, titles []string) {
	if len(titles) == 0 {
		return
	}
	fmt.Printf("%s (%d):\n", label, len(titles))
	for _, t := range titles {
		fmt.Printf("  - %s\n", t)
	}
}
