package geo

import (
	"delivery-driver-service/internal/domain"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyedStop struct {
	stop
	version int
}

func (k keyedStop) CacheKey() string { return k.name + "#" + strconv.Itoa(k.version) }

func TestSortCacheReusesOrderForSameInputs(t *testing.T) {
	cache := NewSortCache[stop](nil, 4)
	origin := domain.Coordinates{}
	items := []stop{onEquator("b", 200), onEquator("a", 100)}

	first := cache.Sort(items, &origin)
	second := cache.Sort(items, &origin)

	assert.Equal(t, []string{"a", "b"}, names(first))
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, cache.Misses())
	assert.EqualValues(t, 1, cache.Hits())
	assert.Equal(t, 1, cache.Len())
}

func TestSortCacheInvalidatesOnReferenceChange(t *testing.T) {
	cache := NewSortCache[stop](nil, 4)
	items := []stop{onEquator("a", 100), onEquator("b", 2000)}

	west := domain.Coordinates{Lat: 0, Lon: 0}
	east := domain.Coordinates{Lat: 0, Lon: 1}

	assert.Equal(t, []string{"a", "b"}, names(cache.Sort(items, &west)))
	assert.Equal(t, []string{"b", "a"}, names(cache.Sort(items, &east)))
	assert.EqualValues(t, 2, cache.Misses())
	assert.EqualValues(t, 0, cache.Hits())
}

func TestSortCacheInvalidatesOnItemsChange(t *testing.T) {
	cache := NewSortCache[stop](nil, 4)
	origin := domain.Coordinates{}

	items := []stop{onEquator("a", 100), onEquator("b", 200)}
	cache.Sort(items, &origin)

	moved := []stop{onEquator("a", 300), onEquator("b", 200)}
	assert.Equal(t, []string{"b", "a"}, names(cache.Sort(moved, &origin)))
	assert.EqualValues(t, 2, cache.Misses())
}

func TestSortCacheAppliesOrderToCurrentItems(t *testing.T) {
	cache := NewSortCache[keyedStop](nil, 4)
	origin := domain.Coordinates{}

	items := []keyedStop{
		{stop: onEquator("b", 200), version: 1},
		{stop: onEquator("a", 100), version: 1},
	}
	cache.Sort(items, &origin)

	bumped := []keyedStop{items[0], items[1]}
	bumped[1].version = 2
	got := cache.Sort(bumped, &origin)

	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].version)
	assert.EqualValues(t, 2, cache.Misses())

	again := cache.Sort(bumped, &origin)
	assert.Equal(t, got, again)
	assert.EqualValues(t, 1, cache.Hits())
}

func TestSortCacheEvictsOldest(t *testing.T) {
	cache := NewSortCache[stop](nil, 2)
	items := []stop{onEquator("a", 100), onEquator("b", 200)}

	for _, lon := range []float64{0, 1, 2} {
		ref := domain.Coordinates{Lat: 0, Lon: lon}
		cache.Sort(items, &ref)
	}
	assert.Equal(t, 2, cache.Len())

	first := domain.Coordinates{Lat: 0, Lon: 0}
	cache.Sort(items, &first)
	assert.EqualValues(t, 4, cache.Misses())
}

func TestSortCachePassthroughSkipsCache(t *testing.T) {
	cache := NewSortCache[stop](nil, 2)
	items := []stop{onEquator("b", 200), onEquator("a", 100)}

	assert.Equal(t, items, cache.Sort(items, nil))
	assert.Equal(t, 0, cache.Len())
	assert.EqualValues(t, 0, cache.Misses())
}

func TestSortCacheConcurrentUse(t *testing.T) {
	cache := NewSortCache[stop](Default(), 8)
	items := []stop{onEquator("c", 300), onEquator("a", 100), onEquator("b", 200)}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ref := domain.Coordinates{Lat: 0, Lon: -float64(i % 4)}
			got := cache.Sort(items, &ref)
			assert.Equal(t, []string{"a", "b", "c"}, names(got))
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.Len(), 4)
	assert.EqualValues(t, 16, cache.Hits()+cache.Misses())
}
