package candidate

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type SetTestSuite struct {
	suite.Suite
}

func TestSetSuite(t *testing.T) {
	suite.Run(t, new(SetTestSuite))
}

func (suite *SetTestSuite) TestNewSetIsEmpty() {
	set := NewSet()

	snapshot := set.Snapshot()
	suite.Equal(uint64(0), snapshot.Generation)
	suite.True(snapshot.IsEmpty())
	suite.Empty(snapshot.Symbols())
}

func (suite *SetTestSuite) TestPublishReplacesWholeSet() {
	set := NewSet()
	published := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	set.now = func() time.Time { return published }

	first := set.Publish([]string{"ETHUSDT", "BTCUSDT", "ETHUSDT"})
	suite.Equal(uint64(1), first.Generation)
	suite.Equal(published, first.UpdatedAt)
	suite.Equal([]string{"BTCUSDT", "ETHUSDT"}, first.Symbols())

	second := set.Publish([]string{"SOLUSDT"})
	suite.Equal(uint64(2), second.Generation)
	suite.Equal([]string{"SOLUSDT"}, set.Snapshot().Symbols())
	suite.False(set.Snapshot().Contains("BTCUSDT"))

	// earlier snapshots are unaffected
	suite.True(first.Contains("BTCUSDT"))
	suite.Equal(2, first.Len())
}

func (suite *SetTestSuite) TestPublishEmptySet() {
	set := NewSet()
	set.Publish([]string{"BTCUSDT"})

	snapshot := set.Publish(nil)
	suite.True(snapshot.IsEmpty())
	suite.Equal(uint64(2), snapshot.Generation)
}

func (suite *SetTestSuite) TestSymbolsReturnsCopy() {
	set := NewSet()
	snapshot := set.Publish([]string{"BTCUSDT"})

	symbols := snapshot.Symbols()
	symbols[0] = "MUTATED"

	suite.Equal([]string{"BTCUSDT"}, set.Snapshot().Symbols())
}

// Each generation publishes symbols tagged with the generation, so a reader mixing two
// publishes would see different tags or a wrong size.
func (suite *SetTestSuite) TestReadersNeverSeePartialSet() {
	const (
		size        = 50
		generations = 200
		readers     = 8
	)

	set := NewSet()

	var wg sync.WaitGroup

	done := make(chan struct{})
	failures := make(chan string, readers)

	for range readers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
				}

				snapshot := set.Snapshot()
				if snapshot.IsEmpty() {
					continue
				}

				if snapshot.Len() != size {
					failures <- fmt.Sprintf("generation %d has %d symbols", snapshot.Generation, snapshot.Len())

					return
				}

				tag := fmt.Sprintf("G%d", snapshot.Generation)
				for _, symbol := range snapshot.Symbols() {
					if !strings.HasSuffix(symbol, tag) {
						failures <- fmt.Sprintf("symbol %s in generation %d", symbol, snapshot.Generation)

						return
					}
				}
			}
		}()
	}

	for generation := 1; generation <= generations; generation++ {
		symbols := make([]string, 0, size)
		for i := range size {
			symbols = append(symbols, fmt.Sprintf("S%03dG%d", i, generation))
		}

		set.Publish(symbols)
	}

	close(done)
	wg.Wait()
	close(failures)

	for failure := range failures {
		suite.Fail(failure)
	}

	suite.Equal(uint64(generations), set.Snapshot().Generation)
}
