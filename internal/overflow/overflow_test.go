package overflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akyairhashvil/notifit/internal/measure"
	"github.com/akyairhashvil/notifit/internal/measure/measuretest"
	"github.com/akyairhashvil/notifit/internal/models"
	"github.com/akyairhashvil/notifit/internal/testutil"
)

var (
	fontA = models.Font{ID: "A", DisplayName: "Font A"}
	fontB = models.Font{ID: "B", DisplayName: "Font B"}
)

// At 24px with the default advance 32 characters fit in 390px and 22 in
// 270px; font B fits 27 in 390px.
func newSurface() *measuretest.Surface {
	s := measuretest.NewSurface()
	s.Advance["B"] = 0.6
	return s
}

func TestDescriptionOverflowsInOneFont(t *testing.T) {
	s := newSurface()
	e := New(s, measure.Ready())
	n := testutil.NewNotification().
		WithLevel(models.LevelInformation).
		WithDescription(measuretest.Words("word", 24)).
		Build()

	ms, err := e.Measure(context.Background(), n, []models.Font{fontA, fontB})
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, 4, ms[0].Total())
	assert.False(t, ms[0].Overflows())
	assert.Equal(t, 5, ms[1].Total())
	assert.Equal(t, 4, ms[1].MaxLines)
	assert.True(t, ms[1].Overflows())

	over, err := e.CheckLineOverflow(context.Background(), n, []models.Font{fontA, fontB})
	require.NoError(t, err)
	assert.True(t, over)

	worst, ok := Worst(ms)
	require.True(t, ok)
	assert.Equal(t, fontB, worst.Font)

	over, err = e.CheckLineOverflow(context.Background(), n, []models.Font{fontA})
	require.NoError(t, err)
	assert.False(t, over, "fits when only font A is in the catalog")
}

func TestImageToggleFlipsOverflow(t *testing.T) {
	s := newSurface()
	e := New(s, nil)
	n := testutil.NewNotification().
		WithDescription(measuretest.Words("word", 24)).
		Build()
	fonts := []models.Font{fontA}

	over, err := e.CheckLineOverflow(context.Background(), n, fonts)
	require.NoError(t, err)
	assert.False(t, over)

	n.IncludeImage = true
	over, err = e.CheckLineOverflow(context.Background(), n, fonts)
	require.NoError(t, err)
	assert.True(t, over)
	assert.Equal(t, []float64{390, 270}, s.Widths())
}

func TestImageNeverDecreasesLineCount(t *testing.T) {
	e := New(newSurface(), nil)
	texts := []string{
		"Short",
		measuretest.Words("tyre", 9),
		measuretest.Words("pressure", 13),
		"a\nb\nc",
		"supercalifragilisticexpialidocious and more",
	}
	for _, lv := range []models.Level{models.LevelInformation, models.LevelWarning, models.LevelUrgent, models.LevelCritical} {
		for _, text := range texts {
			n := testutil.NewNotification().WithLevel(lv).WithTitle("Title").WithDescription(text).Build()
			without, err := e.Measure(context.Background(), n, []models.Font{fontA, fontB})
			require.NoError(t, err)
			n.IncludeImage = true
			with, err := e.Measure(context.Background(), n, []models.Font{fontA, fontB})
			require.NoError(t, err)
			for i := range with {
				assert.GreaterOrEqual(t, with[i].Total(), without[i].Total(), "%s %q", lv, text)
				assert.LessOrEqual(t, with[i].Width, without[i].Width)
			}
		}
	}
}

func TestTitleAndDescriptionShareTheBudget(t *testing.T) {
	e := New(newSurface(), nil)
	n := testutil.NewNotification().
		WithLevel(models.LevelWarning).
		WithTitle("Battery Low").
		WithDescription(measuretest.Words("word", 18)).
		Build()

	ms, err := e.Measure(context.Background(), n, []models.Font{fontA})
	require.NoError(t, err)
	assert.Equal(t, 1, ms[0].TitleLines)
	assert.Equal(t, 3, ms[0].DescriptionLines)
	assert.False(t, ms[0].Overflows())

	n.Description = measuretest.Words("word", 19)
	ms, err = e.Measure(context.Background(), n, []models.Font{fontA})
	require.NoError(t, err)
	assert.Equal(t, 5, ms[0].Total())
	assert.True(t, ms[0].Overflows())
}

func TestLiteralLineBreakMarkersAreExpanded(t *testing.T) {
	s := newSurface()
	e := New(s, nil)
	n := testutil.NewNotification().
		WithLevel(models.LevelWarning).
		WithTitle(`Line one\nLine two`).
		Build()

	ms, err := e.Measure(context.Background(), n, []models.Font{fontA})
	require.NoError(t, err)
	assert.Equal(t, 2, ms[0].TitleLines)
	assert.Equal(t, []string{"Line one\nLine two"}, s.Inserted())
}

func TestCriticalIgnoresTitleAndImage(t *testing.T) {
	s := newSurface()
	e := New(s, nil)
	// 30px bold at 0.5 advance: 30 characters per 462px line.
	n := testutil.NewNotification().
		WithLevel(models.LevelCritical).
		WithTitle("Ignored").
		WithImage(true).
		WithDescription(measuretest.Words("word", 24)).
		Build()

	ms, err := e.Measure(context.Background(), n, []models.Font{fontA})
	require.NoError(t, err)
	assert.Equal(t, 0, ms[0].TitleLines)
	assert.Equal(t, 4, ms[0].DescriptionLines)
	assert.False(t, ms[0].Overflows())
	assert.Equal(t, []float64{462}, s.Widths())
	assert.Equal(t, []string{measuretest.Words("word", 24)}, s.Inserted())

	n.Description = measuretest.Words("word", 25)
	over, err := e.CheckLineOverflow(context.Background(), n, []models.Font{fontA})
	require.NoError(t, err)
	assert.True(t, over)
}

func TestCriticalAutoLineHeightUsesComputedValue(t *testing.T) {
	s := newSurface()
	s.NaturalRatio = 1.45
	s.ReportComputed = true
	e := New(s, nil)
	n := testutil.NewNotification().
		WithLevel(models.LevelCritical).
		WithDescription(measuretest.Words("word", 24)).
		Build()

	ms, err := e.Measure(context.Background(), n, []models.Font{fontA})
	require.NoError(t, err)
	assert.Equal(t, 4, ms[0].DescriptionLines)
}

func TestCriticalAutoLineHeightFallsBackToRatio(t *testing.T) {
	s := newSurface()
	s.NaturalRatio = 1.45
	s.ReportComputed = false
	e := New(s, nil)
	n := testutil.NewNotification().
		WithLevel(models.LevelCritical).
		WithDescription(measuretest.Words("word", 24)).
		Build()

	// 4 lines of 43.5px measured against a 36px estimate round to 5.
	ms, err := e.Measure(context.Background(), n, []models.Font{fontA})
	require.NoError(t, err)
	assert.Equal(t, 5, ms[0].DescriptionLines)
	assert.True(t, ms[0].Overflows())
}

func TestEmptyTextOpensNoContainer(t *testing.T) {
	s := newSurface()
	e := New(s, nil)
	n := testutil.NewNotification().WithLevel(models.LevelCritical).WithTitle("Hidden").Build()

	ms, err := e.Measure(context.Background(), n, []models.Font{fontA, fontB})
	require.NoError(t, err)
	assert.Len(t, ms, 2)
	assert.False(t, AnyOverflow(ms))
	opened, _ := s.Stats()
	assert.Equal(t, 0, opened)
}

func TestUnknownLevelUsesInformationLayout(t *testing.T) {
	s := newSurface()
	e := New(s, nil)
	n := testutil.NewNotification().WithLevel(models.Level("bogus")).WithTitle("T").Build()
	ms, err := e.Measure(context.Background(), n, []models.Font{fontA})
	require.NoError(t, err)
	assert.Equal(t, 390, ms[0].Width)
	assert.Equal(t, 1, ms[0].TitleLines)
}

func TestConcurrentChecksUseIsolatedContainers(t *testing.T) {
	s := newSurface()
	gate := measuretest.NewGate()
	s.Clock = gate
	e := New(s, nil)

	const checks = 8
	var wg sync.WaitGroup
	results := make([]bool, checks)
	errs := make([]error, checks)
	for i := 0; i < checks; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			words := 20 + i
			n := testutil.NewNotification().WithDescription(measuretest.Words("word", words)).Build()
			results[i], errs[i] = e.CheckLineOverflow(context.Background(), n, []models.Font{fontA, fontB})
		}(i)
	}
	time.Sleep(10 * time.Millisecond)
	gate.Open()
	wg.Wait()

	for i := 0; i < checks; i++ {
		require.NoError(t, errs[i])
		// font B fits 5 words per line, so 21 words or more need 5 lines
		assert.Equal(t, 20+i > 20, results[i], "check %d", i)
	}
	opened, closed := s.Stats()
	assert.Equal(t, checks*2, opened)
	assert.Equal(t, opened, closed)
}

func TestReadinessIsAwaitedBeforeMeasuring(t *testing.T) {
	s := newSurface()
	signal := measure.NewSignal()
	e := New(s, signal)
	n := testutil.NewNotification().WithDescription("Hello").Build()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := e.CheckLineOverflow(ctx, n, []models.Font{fontA})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	opened, _ := s.Stats()
	assert.Equal(t, 0, opened)

	signal.Fire()
	over, err := e.CheckLineOverflow(context.Background(), n, []models.Font{fontA})
	require.NoError(t, err)
	assert.False(t, over)
}

func TestReadinessErrorStopsMeasurement(t *testing.T) {
	ctrl := gomock.NewController(t)
	surface := measuretest.NewMockSurface(ctrl)
	ready := measuretest.NewMockReadiness(ctrl)
	boom := errors.New("font system down")
	ready.EXPECT().Wait(gomock.Any()).Return(boom)

	e := New(surface, ready)
	_, err := e.Measure(context.Background(), testutil.NewNotification().WithDescription("x").Build(), []models.Font{fontA})
	require.ErrorIs(t, err, boom)
}

func TestContainerIsClosedWhenLayoutFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	surface := measuretest.NewMockSurface(ctrl)
	container := measuretest.NewMockContainer(ctrl)
	block := measuretest.NewMockBlock(ctrl)
	boom := errors.New("no layout")

	surface.EXPECT().NewContainer(fontA, 390.0).Return(container, nil)
	container.EXPECT().Insert("Hello", gomock.Any()).Return(block)
	container.EXPECT().Layout(gomock.Any()).Return(boom)
	container.EXPECT().Close().Return(nil)

	e := New(surface, measure.Ready())
	_, err := e.Measure(context.Background(), testutil.NewNotification().WithDescription("Hello").Build(), []models.Font{fontA})
	require.ErrorIs(t, err, boom)
}

func TestSurfaceErrorIsWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	surface := measuretest.NewMockSurface(ctrl)
	boom := errors.New("no surface")
	surface.EXPECT().NewContainer(fontA, 270.0).Return(nil, boom)

	e := New(surface, measure.Ready())
	n := testutil.NewNotification().WithDescription("Hello").WithImage(true).Build()
	_, err := e.CheckLineOverflow(context.Background(), n, []models.Font{fontA})
	require.ErrorIs(t, err, boom)
}

func TestCacheReusesMeasurements(t *testing.T) {
	s := newSurface()
	cache := NewCache(0)
	e := New(s, nil, WithCache(cache))
	n := testutil.NewNotification().WithDescription(measuretest.Words("word", 24)).Build()

	first, err := e.Measure(context.Background(), n, []models.Font{fontA, fontB})
	require.NoError(t, err)
	second, err := e.Measure(context.Background(), n, []models.Font{fontA, fontB})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	opened, _ := s.Stats()
	assert.Equal(t, 2, opened)
	hits, misses := cache.Stats()
	assert.Equal(t, 2, hits)
	assert.Equal(t, 2, misses)

	n.IncludeImage = true
	_, err = e.Measure(context.Background(), n, []models.Font{fontA})
	require.NoError(t, err)
	opened, _ = s.Stats()
	assert.Equal(t, 3, opened, "image toggle is part of the key")
}

func TestCacheDropsEntriesAtLimit(t *testing.T) {
	c := NewCache(2)
	n := models.NewNotification("x")
	for i, id := range []string{"a", "b", "c"} {
		c.put(newCacheKey(id, n), Measurement{TitleLines: i})
	}
	assert.Equal(t, 1, c.Len())
}
