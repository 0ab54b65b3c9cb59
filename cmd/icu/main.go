package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paladini/intervals-icu-go/intervals"
)

var rootCmd = &cobra.Command{
	Use:   "icu",
	Short: "intervals.icu command-line client",
	Long: `icu talks to the intervals.icu API with a personal API key.

Set ICU_API_KEY (and optionally ICU_ATHLETE) in the environment, or pass
--api-key / --athlete. List commands print tables by default; use --json
for raw output.`,
	SilenceUsage: true,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("ICU")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("api-key", "", "intervals.icu API key")
	rootCmd.PersistentFlags().String("athlete", "", "athlete id (default: the key's own athlete)")
	rootCmd.PersistentFlags().String("base-url", "", "API base URL override")
	rootCmd.PersistentFlags().Duration("timeout", 0, "request timeout (default 10s)")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("api-key", rootCmd.PersistentFlags().Lookup("api-key"))
	_ = viper.BindPFlag("athlete", rootCmd.PersistentFlags().Lookup("athlete"))
	_ = viper.BindPFlag("base-url", rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func newClient() (*intervals.Client, error) {
	key := viper.GetString("api-key")
	if key == "" {
		return nil, fmt.Errorf("API key required: set ICU_API_KEY or pass --api-key")
	}

	var opts []intervals.Option
	if athlete := viper.GetString("athlete"); athlete != "" {
		opts = append(opts, intervals.WithAthlete(athlete))
	}
	if base := viper.GetString("base-url"); base != "" {
		opts = append(opts, intervals.WithBaseURL(base))
	}
	if timeout := viper.GetDuration("timeout"); timeout > 0 {
		opts = append(opts, intervals.WithTimeout(timeout))
	}

	return intervals.NewClient(key, opts...), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(header)
	return t
}

func registerCommands() {
	rootCmd.AddCommand(athleteCmd())
	rootCmd.AddCommand(eventsCmd())
	rootCmd.AddCommand(wellnessCmd())
	rootCmd.AddCommand(workoutsCmd())
	rootCmd.AddCommand(activitiesCmd())
}

func athleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "athlete",
		Short: "Show the athlete profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			athlete, err := client.Athlete.Get(context.Background())
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(athlete)
			}
			t := newTable(table.Row{"ID", "Name", "Email", "Timezone", "Weight"})
			t.AppendRow(table.Row{athlete.ID, athlete.Name, athlete.Email, athlete.Timezone, athlete.Weight})
			t.Render()
			return nil
		},
	}
}

func listFlags(cmd *cobra.Command) {
	cmd.Flags().String("oldest", "", "oldest local date, inclusive (2024-01-01)")
	cmd.Flags().String("newest", "", "newest local date, inclusive")
	cmd.Flags().Int("limit", 0, "maximum entries to return")
	cmd.Flags().Int("offset", 0, "entries to skip")
}

func listOptions(cmd *cobra.Command) *intervals.ListOptions {
	oldest, _ := cmd.Flags().GetString("oldest")
	newest, _ := cmd.Flags().GetString("newest")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")
	return &intervals.ListOptions{Oldest: oldest, Newest: newest, Limit: limit, Offset: offset}
}

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Manage calendar events",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List calendar events",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			events, err := client.Events.List(context.Background(), listOptions(cmd))
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(events)
			}
			t := newTable(table.Row{"ID", "Date", "Category", "Name"})
			for _, e := range events {
				t.AppendRow(table.Row{e.ID, e.StartDateLocal, e.Category, e.Name})
			}
			t.Render()
			return nil
		},
	}
	listFlags(list)

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a calendar event",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			date, _ := cmd.Flags().GetString("date")
			name, _ := cmd.Flags().GetString("name")
			category, _ := cmd.Flags().GetString("category")
			description, _ := cmd.Flags().GetString("description")

			event, err := client.Events.Create(context.Background(), &intervals.Event{
				StartDateLocal: date,
				Name:           name,
				Category:       category,
				Description:    description,
			})
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(event)
			}
			fmt.Println("created event", event.ID)
			return nil
		},
	}
	create.Flags().String("date", "", "local start date (2024-01-20)")
	create.Flags().String("name", "", "event name")
	create.Flags().String("category", intervals.EventCategoryWorkout, "event category")
	create.Flags().String("description", "", "event description")
	_ = create.MarkFlagRequired("date")

	del := &cobra.Command{
		Use:   "delete <event-id>",
		Short: "Delete a calendar event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("event id must be numeric: %q", args[0])
			}
			if err := client.Events.Delete(context.Background(), id); err != nil {
				return err
			}
			fmt.Println("deleted event", id)
			return nil
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func wellnessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wellness",
		Short: "Manage daily wellness entries",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List wellness entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			entries, err := client.Wellness.List(context.Background(), listOptions(cmd))
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(entries)
			}
			t := newTable(table.Row{"Date", "Weight", "Resting HR", "HRV", "Sleep"})
			for _, e := range entries {
				sleep := (time.Duration(e.SleepSecs) * time.Second).String()
				t.AppendRow(table.Row{e.ID, e.Weight, e.RestingHR, e.HRV, sleep})
			}
			t.Render()
			return nil
		},
	}
	listFlags(list)

	set := &cobra.Command{
		Use:   "set <date>",
		Short: "Record wellness values for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			weight, _ := cmd.Flags().GetFloat64("weight")
			restingHR, _ := cmd.Flags().GetInt("resting-hr")
			sleepSecs, _ := cmd.Flags().GetInt("sleep-secs")

			entry, err := client.Wellness.Update(context.Background(), args[0], &intervals.Wellness{
				ID:        args[0],
				Weight:    weight,
				RestingHR: restingHR,
				SleepSecs: sleepSecs,
			})
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(entry)
			}
			fmt.Println("updated wellness for", entry.ID)
			return nil
		},
	}
	set.Flags().Float64("weight", 0, "weight in kg")
	set.Flags().Int("resting-hr", 0, "resting heart rate")
	set.Flags().Int("sleep-secs", 0, "sleep duration in seconds")

	cmd.AddCommand(list, set)
	return cmd
}

func workoutsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workouts",
		Short: "Manage the workout library",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List library workouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			workouts, err := client.Workouts.List(context.Background(), listOptions(cmd))
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(workouts)
			}
			t := newTable(table.Row{"ID", "Name", "Sport", "Duration", "Load"})
			for _, w := range workouts {
				dur := (time.Duration(w.MovingTime) * time.Second).String()
				t.AppendRow(table.Row{w.ID, w.Name, w.Type, dur, w.TrainingLoad})
			}
			t.Render()
			return nil
		},
	}
	listFlags(list)

	cmd.AddCommand(list)
	return cmd
}

func activitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Browse recorded activities",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			activities, err := client.Activities.List(context.Background(), listOptions(cmd))
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(activities)
			}
			t := newTable(table.Row{"ID", "Date", "Sport", "Name", "Time", "Distance"})
			for _, a := range activities {
				dur := (time.Duration(a.MovingTime) * time.Second).String()
				t.AppendRow(table.Row{a.ID, a.StartDateLocal, a.Type, a.Name, dur, a.Distance})
			}
			t.Render()
			return nil
		},
	}
	listFlags(list)

	get := &cobra.Command{
		Use:   "get <activity-id>",
		Short: "Show one activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			activity, err := client.Activities.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			return printJSON(activity)
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}
