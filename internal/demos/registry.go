package demos

import (
	"sort"
	"strings"

	apperrors "github.com/abrunet/asynclab/internal/errors"
	"github.com/abrunet/asynclab/internal/sequencer"
)

// Registry builds the full ordered unit catalog. The order is
// pedagogical: each unit assumes the reader has seen the previous one.
func Registry(p Params) []sequencer.Unit {
	p = p.withDefaults()

	return []sequencer.Unit{
		{
			Ordinal:     1,
			Name:        "sequential-hello",
			Title:       "Blocking hello",
			Explanation: "Two sleeps run back to back; total time is their sum.",
			Action:      sequentialHello(p),
		},
		{
			Ordinal:     2,
			Name:        "goroutine-hello",
			Title:       "Hello from a goroutine",
			Explanation: "The greeting sleeps in a goroutine while main keeps working.",
			Action:      goroutineHello(p),
		},
		{
			Ordinal:     3,
			Name:        "concurrent-hello",
			Title:       "Greetings in a group",
			Explanation: "Both greetings run at once; total time is the longest sleep.",
			Action:      concurrentHello(p),
		},
		{
			Ordinal:     4,
			Name:        "fetch-sequential",
			Title:       "Fetching URLs one by one",
			Explanation: "Each download waits for the previous one to finish.",
			Action:      fetchSequential(p),
		},
		{
			Ordinal:     5,
			Name:        "fetch-concurrent",
			Title:       "Fetching URLs together",
			Explanation: "All downloads run at once; results keep the input order.",
			Action:      fetchConcurrent(p),
		},
		{
			Ordinal:     6,
			Name:        "read-files-sequential",
			Title:       "Reading files one by one",
			Explanation: "Each file read blocks until the previous one completes.",
			Action:      readFilesSequential(p),
		},
		{
			Ordinal:     7,
			Name:        "read-files-concurrent",
			Title:       "Reading files together",
			Explanation: "One goroutine per file; the group waits for them all.",
			Action:      readFilesConcurrent(p),
		},
		{
			Ordinal:     8,
			Name:        "hybrid-offload",
			Title:       "Offloading blocking work",
			Explanation: "A blocking computation runs aside while light tasks proceed.",
			Action:      hybridOffload(p),
		},
		{
			Ordinal:     9,
			Name:        "future-resolution",
			Title:       "Futures, fulfilled and rejected",
			Explanation: "A coroutine awaits a future resolved by a producer, twice.",
			Action:      futureResolution(p),
		},
	}
}

// Filter restricts units to the names in the comma-separated list only,
// preserving catalog order. An empty list keeps everything. An unknown
// name is a configuration error listing the valid choices.
func Filter(units []sequencer.Unit, only string) ([]sequencer.Unit, error) {
	only = strings.TrimSpace(only)
	if only == "" {
		return units, nil
	}

	wanted := make(map[string]bool)
	for _, name := range strings.Split(only, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			wanted[name] = true
		}
	}

	var selected []sequencer.Unit
	for _, u := range units {
		if wanted[u.Name] {
			selected = append(selected, u)
			delete(wanted, u.Name)
		}
	}

	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for name := range wanted {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		valid := make([]string, 0, len(units))
		for _, u := range units {
			valid = append(valid, u.Name)
		}
		return nil, apperrors.NewConfigError("unknown unit(s) %s; valid names: %s",
			strings.Join(unknown, ", "), strings.Join(valid, ", "))
	}
	return selected, nil
}
