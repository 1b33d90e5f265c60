package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkBirthBoom       BookmarkType = "birth_boom"
	BookmarkPopulationCrash BookmarkType = "population_crash"
	BookmarkRecovery        BookmarkType = "population_recovery"
	BookmarkExtinction      BookmarkType = "extinction"
	BookmarkDrought         BookmarkType = "drought"
	BookmarkStableEcosystem BookmarkType = "stable_ecosystem"
)

// Detection thresholds.
const (
	boomFactor        = 2.0 // births vs rolling average
	boomMinBirths     = 5
	crashDrop         = 0.30 // fraction below recent peak
	crashMinLoss      = 5
	recoveryFactor    = 3 // multiple of the recent low
	recoveryMinPlants = 6
	droughtSoilWater  = 0.2 // matches the dry-soil glyph band
	stableWindows     = 5
	stableCV2         = 0.04 // CV^2 < 0.04 means CV < 0.2
	stableMinPlants   = 10
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int          `csv:"tick"`
	Day         int          `csv:"day"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"day", b.Day,
		"description", b.Description,
	)
}

// BookmarkDetector watches closed stats windows for notable turns in the
// plant population and soil moisture.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentPeak  int // highest plant count since the last crash
	recentLow   int // lowest plant count since the last recovery (-1 = unset)
	stableCount int // consecutive low-variance windows
	extinct     bool
	inDrought   bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < stableWindows {
		historySize = stableWindows
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
		recentLow:   -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark
	add := func(b *Bookmark) {
		if b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	if bd.historyFull || bd.historyIdx > 0 {
		add(bd.checkBirthBoom(stats))
		add(bd.checkCrash(stats))
		add(bd.checkRecovery(stats))
		add(bd.checkStable(stats))
	}
	add(bd.checkExtinction(stats))
	add(bd.checkDrought(stats))

	bd.addToHistory(stats)

	if stats.Plants > bd.recentPeak {
		bd.recentPeak = stats.Plants
	}
	if bd.recentLow < 0 || stats.Plants < bd.recentLow {
		bd.recentLow = stats.Plants
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns the history in insertion order.
func (bd *BookmarkDetector) recent() []WindowStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	out := make([]WindowStats, 0, bd.historySize)
	out = append(out, bd.history[bd.historyIdx:]...)
	return append(out, bd.history[:bd.historyIdx]...)
}

func mark(t BookmarkType, stats WindowStats, format string, args ...any) *Bookmark {
	return &Bookmark{
		Type:        t,
		Tick:        stats.WindowEndTick,
		Day:         stats.Day,
		Description: fmt.Sprintf(format, args...),
	}
}

func (bd *BookmarkDetector) checkBirthBoom(stats WindowStats) *Bookmark {
	history := bd.recent()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Births
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Births) > avg*boomFactor && stats.Births >= boomMinBirths {
		return mark(BookmarkBirthBoom, stats,
			"Births %d are %.1fx average (%.1f)", stats.Births, float64(stats.Births)/avg, avg)
	}
	return nil
}

func (bd *BookmarkDetector) checkCrash(stats WindowStats) *Bookmark {
	if bd.recentPeak == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.Plants)/float64(bd.recentPeak)
	if drop > crashDrop && stats.Plants <= bd.recentPeak-crashMinLoss {
		oldPeak := bd.recentPeak
		bd.recentPeak = stats.Plants
		return mark(BookmarkPopulationCrash, stats,
			"Plants crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Plants)
	}
	return nil
}

func (bd *BookmarkDetector) checkRecovery(stats WindowStats) *Bookmark {
	if bd.recentLow <= 0 {
		return nil
	}

	if stats.Plants >= bd.recentLow*recoveryFactor && stats.Plants >= recoveryMinPlants {
		oldLow := bd.recentLow
		bd.recentLow = stats.Plants
		return mark(BookmarkRecovery, stats,
			"Plants recovered from %d to %d", oldLow, stats.Plants)
	}
	return nil
}

// checkExtinction fires once when the last plant dies.
func (bd *BookmarkDetector) checkExtinction(stats WindowStats) *Bookmark {
	if stats.Plants > 0 {
		bd.extinct = false
		return nil
	}
	if bd.extinct || (bd.historyIdx == 0 && !bd.historyFull) {
		return nil
	}
	bd.extinct = true
	return mark(BookmarkExtinction, stats, "No plants left (%d deaths this window)", stats.Deaths)
}

// checkDrought fires on entering a dry spell, not on every dry window.
func (bd *BookmarkDetector) checkDrought(stats WindowStats) *Bookmark {
	dry := stats.MeanSoilWater < droughtSoilWater
	entering := dry && !bd.inDrought
	bd.inDrought = dry
	if !entering {
		return nil
	}
	return mark(BookmarkDrought, stats, "Mean soil water fell to %.2f", stats.MeanSoilWater)
}

func (bd *BookmarkDetector) checkStable(stats WindowStats) *Bookmark {
	if stats.Plants < stableMinPlants {
		bd.stableCount = 0
		return nil
	}

	history := bd.recent()
	if len(history) < stableWindows-1 {
		return nil
	}
	last := history[len(history)-(stableWindows-1):]

	var sum float64
	for _, h := range last {
		sum += float64(h.Plants)
	}
	mean := sum / float64(len(last))

	var variance float64
	for _, h := range last {
		d := float64(h.Plants) - mean
		variance += d * d
	}
	variance /= float64(len(last))

	if mean > 0 && variance/(mean*mean) < stableCV2 {
		bd.stableCount++
	} else {
		bd.stableCount = 0
	}

	// Trigger exactly once per stable run
	if bd.stableCount == stableWindows {
		return mark(BookmarkStableEcosystem, stats,
			"Stable population around %.0f plants over %d windows", mean, stableWindows)
	}
	return nil
}
