package search_test

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"turmites/internal/core"
	_ "turmites/internal/grids/hex"
	"turmites/internal/grids/square"
	_ "turmites/internal/grids/tri"
	"turmites/internal/rules"
	"turmites/internal/search"
	"turmites/internal/sim"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bigIntComparer = cmp.Comparer(func(a, b *big.Int) bool { return a.Cmp(b) == 0 })

func exampleConfig() search.Config {
	cfg := search.DefaultConfig()
	cfg.States = 2
	cfg.Colors = 2
	cfg.Radius = 5
	cfg.MaxSteps = 1000
	cfg.PrintEvery = 1000
	cfg.Images = false
	return cfg
}

func runSearch(t *testing.T, cfg search.Config) (search.Summary, string, string) {
	t.Helper()
	topo, err := cfg.NewTopology()
	require.NoError(t, err)
	var results, progress bytes.Buffer
	s, err := search.New(cfg, topo, &results, &progress, nil)
	require.NoError(t, err)
	sum, err := s.Run(context.Background())
	require.NoError(t, err)
	return sum, results.String(), progress.String()
}

var recordLine = regexp.MustCompile(`^(\d+) \(popn\. (\d+)\): \{.*\}$`)

func TestExampleScenario(t *testing.T) {
	cfg := exampleConfig()
	sum, results, progress := runSearch(t, cfg)

	assert.True(t, sum.Completed)
	assert.Equal(t, big.NewInt(8000), sum.Total)
	assert.Equal(t, uint64(8000), sum.Tried)
	assert.Positive(t, sum.Tested)
	assert.Less(t, sum.Tested, sum.Tried)
	assert.GreaterOrEqual(t, sum.BestSteps, 2, "{1,E,1} then {1,halt,0} halts after two steps")
	assert.GreaterOrEqual(t, sum.BestPopulation, 2)
	require.NotEmpty(t, sum.Records)

	lines := strings.Split(strings.TrimSuffix(results, "\n"), "\n")
	assert.Equal(t, "Total number of machines: 8000", lines[0])
	assert.Equal(t, "Run completed. If better machines exist then they take more than 1000 steps or move more than 5 squares from the starting position.", lines[len(lines)-1])

	topo, err := cfg.NewTopology()
	require.NoError(t, err)
	replay, err := sim.New(topo, cfg.States, cfg.Colors, cfg.Radius, cfg.MaxSteps)
	require.NoError(t, err)
	records := 0
	for _, line := range lines[1 : len(lines)-1] {
		if line == "New steps record:" || line == "New high score:" {
			continue
		}
		m := recordLine.FindStringSubmatch(line)
		require.NotNil(t, m, "unexpected line %q", line)
		r, err := rules.Parse(line, topo)
		require.NoError(t, err)
		require.NoError(t, replay.Load(r))
		out := replay.Run(r)
		assert.True(t, out.Halted)
		assert.Equal(t, m[1], strconv.Itoa(out.Steps))
		assert.Equal(t, m[2], strconv.Itoa(out.Population))
		records++
	}
	assert.Equal(t, len(sum.Records), records)

	prev := sum.Records[0]
	for _, rec := range sum.Records[1:] {
		assert.True(t, rec.Steps > prev.Steps || rec.Population > prev.Population)
		prev = rec
	}

	progressLines := strings.Split(strings.TrimSuffix(progress, "\n"), "\n")
	require.Len(t, progressLines, 8)
	assert.True(t, strings.HasPrefix(progressLines[0], "Tried: 1000 (12.5%) Tested: "), progressLines[0])
	assert.True(t, strings.HasPrefix(progressLines[7], "Tried: 8000 (100%) Tested: "), progressLines[7])
}

func TestSearchIsReproducible(t *testing.T) {
	first, results1, _ := runSearch(t, exampleConfig())
	second, results2, _ := runSearch(t, exampleConfig())
	if diff := cmp.Diff(first, second, bigIntComparer); diff != "" {
		t.Fatalf("summaries differ (-first +second):\n%s", diff)
	}
	assert.Equal(t, results1, results2)
}

func TestHexAndTriSearches(t *testing.T) {
	for _, name := range []string{"hex", "tri"} {
		t.Run(name, func(t *testing.T) {
			cfg := exampleConfig()
			cfg.Topology = name
			cfg.Relative = true
			cfg.Radius = 6
			cfg.MaxSteps = 300
			sum, results, _ := runSearch(t, cfg)
			assert.True(t, sum.Completed)
			assert.Equal(t, sum.Total.Uint64(), sum.Tried)
			assert.GreaterOrEqual(t, sum.BestSteps, 2)
			assert.Contains(t, results, "New steps record:\n")
		})
	}
}

func TestSearchStopsOnCancel(t *testing.T) {
	cfg := exampleConfig()
	cfg.PrintEvery = 10
	topo, err := cfg.NewTopology()
	require.NoError(t, err)
	var results bytes.Buffer
	s, err := search.New(cfg, topo, &results, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sum, err := s.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, sum.Completed)
	assert.Equal(t, uint64(10), sum.Tried)
	assert.NotContains(t, results.String(), "Run completed.")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSearchReportsWriteFailure(t *testing.T) {
	cfg := exampleConfig()
	topo, err := cfg.NewTopology()
	require.NoError(t, err)
	s, err := search.New(cfg, topo, failingWriter{}, nil, nil)
	require.NoError(t, err)
	_, err = s.Run(context.Background())
	require.ErrorContains(t, err, "disk full")
}

func TestSearchSetupErrors(t *testing.T) {
	cfg := exampleConfig()
	cfg.Dim = 3
	cfg.Relative = true
	_, err := cfg.NewTopology()
	require.ErrorIs(t, err, core.ErrRelativeUnsupported)

	cfg = exampleConfig()
	cfg.Topology = "tri"
	_, err = cfg.NewTopology()
	require.ErrorIs(t, err, core.ErrAbsoluteUnsupported)

	cfg = exampleConfig()
	cfg.Topology = "penrose"
	_, err = cfg.NewTopology()
	require.ErrorIs(t, err, core.ErrUnknownTopology)

	cfg = exampleConfig()
	cfg.Dim = 4
	cfg.Radius = 1000
	topo, err := square.New(4, false)
	require.NoError(t, err)
	_, err = search.New(cfg, topo, &bytes.Buffer{}, nil, nil)
	require.ErrorIs(t, err, core.ErrGridTooLarge)
}

func TestPruningKeepsRecordHolders(t *testing.T) {
	variant := func(topology string, relative bool, states int) search.Config {
		cfg := exampleConfig()
		cfg.Topology = topology
		cfg.Relative = relative
		cfg.States = states
		if topology != "square" {
			cfg.MaxSteps = 300
		}
		return cfg
	}
	cases := map[string]search.Config{
		"square absolute 2x2": variant("square", false, 2),
		"square absolute 3x2": variant("square", false, 3),
		"square relative 2x2": variant("square", true, 2),
		"tri relative 2x2":    variant("tri", true, 2),
		"hex absolute 2x2":    variant("hex", false, 2),
		"hex relative 2x2":    variant("hex", true, 2),
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			topo, err := cfg.NewTopology()
			require.NoError(t, err)
			res, err := search.ComparePruning(context.Background(), cfg, topo)
			require.NoError(t, err)
			assert.Equal(t, -1, res.Pruned.Total.Cmp(res.Unpruned.Total))
			assert.Positive(t, res.Pruned.BestSteps)
			require.True(t, res.Agree(), "pruned %d/%d, unpruned %d/%d",
				res.Pruned.BestSteps, res.Pruned.BestPopulation,
				res.Unpruned.BestSteps, res.Unpruned.BestPopulation)
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "33.3333", search.Percent(1, big.NewInt(3)))
	assert.Equal(t, "100", search.Percent(8000, big.NewInt(8000)))
	assert.Equal(t, "0", search.Percent(5, new(big.Int)))

	huge, ok := new(big.Int).SetString("100000000000000000000000", 10)
	require.True(t, ok)
	assert.Equal(t, "1e-17", search.Percent(10000, huge))
}
