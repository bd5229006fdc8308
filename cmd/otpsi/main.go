// Command otpsi runs a threshold multi-party private set intersection
// locally, in-process, reading party sets and the shared configuration
// from a YAML file and printing recovered intersection witnesses to
// stdout. It is a demonstration driver, not a network service: parties
// exchange OKVS storages and placement tables through an in-memory
// transport.Exchange, exactly as spec.md's "external collaborator"
// boundary allows.
package main

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/8888flbu/OTPSI/aggregator"
	"github.com/8888flbu/OTPSI/config"
	"github.com/8888flbu/OTPSI/gf128"
	"github.com/8888flbu/OTPSI/party"
	"github.com/8888flbu/OTPSI/placement"
	"github.com/8888flbu/OTPSI/transport"
)

// runFile is the on-disk input format: the shared configuration plus each
// party's set, given as pairs of 64-bit words decoded into gf128.Elem.
type runFile struct {
	Config config.Params `yaml:"config"`
	Sets   [][][2]uint64 `yaml:"sets"`
}

func main() {
	logger := log.New(os.Stderr, "", 0)

	if len(os.Args) != 2 {
		logger.Fatalf("usage: %s <run.yaml>", os.Args[0])
	}

	witnesses, err := run(os.Args[1], logger)
	if err != nil {
		logger.Fatalf("otpsi: %v", err)
	}

	fmt.Printf("=== intersection witnesses (threshold scan) ===\n")
	for i, w := range witnesses {
		fmt.Printf("%d: %s (parties: %v)\n", i, w.Value, w.Parties)
	}
	fmt.Printf("total: %d\n", len(witnesses))
}

func run(path string, logger *log.Logger) ([]aggregator.Witness, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var rf runFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	rf.Config.N = len(rf.Sets)
	if err := rf.Config.Validate(); err != nil {
		return nil, err
	}

	exchange := transport.NewInMemory()
	registry := party.NewRegistry()

	maxSet := 0
	pipelines := make([]*party.Pipeline, len(rf.Sets))
	for i, words := range rf.Sets {
		set := make([]gf128.Elem, len(words))
		for j, w := range words {
			set[j] = gf128.Elem{Hi: w[0], Lo: w[1]}
		}
		if len(set) > maxSet {
			maxSet = len(set)
		}
		pipelines[i] = &party.Pipeline{
			ID:       i + 1,
			Params:   rf.Config,
			Set:      set,
			Exchange: exchange,
			Registry: registry,
			Logger:   logger,
		}
	}

	b := placement.NumBuckets(maxSet, rf.Config.EpsilonHash)
	return party.RunProtocol(pipelines, b, rf.Config.K)
}
