package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/VyankateshD206/aiobs/pkg/model"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <artifact>",
	Short: "Summarize an export artifact",
	Long:  `Print a human-readable summary of an export artifact: sessions, events per provider, error counts, and durations.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	artifact, err := readArtifact(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Artifact: %s\n", args[0])
	fmt.Fprintf(out, "Version: %d\n", artifact.Version)
	fmt.Fprintf(out, "Generated: %s\n", formatStamp(artifact.GeneratedAt))
	fmt.Fprintf(out, "Sessions: %d\n", len(artifact.Sessions))
	fmt.Fprintf(out, "Events: %d\n\n", len(artifact.Events))

	eventsBySession := make(map[string][]model.ObservedEvent)
	for _, ev := range artifact.Events {
		eventsBySession[ev.SessionID] = append(eventsBySession[ev.SessionID], ev)
	}

	for _, session := range artifact.Sessions {
		state := "open"
		if !session.Open() {
			state = "ended"
		}
		events := eventsBySession[session.ID]
		fmt.Fprintf(out, "Session %q (%s, %s)\n", session.Name, shortID(session.ID), state)
		fmt.Fprintf(out, "  events: %d\n", len(events))
		summarizeEvents(out, events)
		fmt.Fprintln(out)
	}

	orphans := 0
	for id := range eventsBySession {
		if !sessionExists(artifact.Sessions, id) {
			orphans += len(eventsBySession[id])
		}
	}
	if orphans > 0 {
		fmt.Fprintf(out, "Events with unknown session: %d\n", orphans)
	}

	return nil
}

func summarizeEvents(out interface{ Write([]byte) (int, error) }, events []model.ObservedEvent) {
	if len(events) == 0 {
		return
	}

	type stats struct {
		calls   int
		errors  int
		totalMS float64
	}
	byProvider := make(map[string]*stats)
	for _, ev := range events {
		key := ev.Provider + " " + ev.API
		s := byProvider[key]
		if s == nil {
			s = &stats{}
			byProvider[key] = s
		}
		s.calls++
		s.totalMS += ev.DurationMS
		if ev.Failed() {
			s.errors++
		}
	}

	keys := make([]string, 0, len(byProvider))
	for key := range byProvider {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		s := byProvider[key]
		fmt.Fprintf(out, "  %-40s calls=%d errors=%d avg=%.1fms\n",
			key, s.calls, s.errors, s.totalMS/float64(s.calls))
	}
}

func readArtifact(path string) (*model.Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	var artifact model.Export
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact: %w", err)
	}
	return &artifact, nil
}

func sessionExists(sessions []model.Session, id string) bool {
	for _, s := range sessions {
		if s.ID == id {
			return true
		}
	}
	return false
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatStamp(unixSeconds float64) string {
	sec := int64(unixSeconds)
	nsec := int64((unixSeconds - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC().Format(time.RFC3339)
}
