// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package retain

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"cogentcore.org/retain/scene"
)

// Leak is one potentially leaked leaf in a [Report]: a tracked,
// non-cached leaf older than the age threshold and not reachable
// from the live scene root.
type Leak struct {

	// Path is the path of the leaf from its tree root.
	Path string

	// Name is the name of the leaf, used for histogram grouping.
	Name string

	// Class is the renderable class of the leaf.
	Class scene.Class

	// Age is how long the leaf has been tracked.
	Age time.Duration

	// Bytes is the estimated device memory held by the leaf's
	// resources.
	Bytes int
}

// Report is the result of one [Tracker.CheckLeaks] diagnostic pass.
type Report struct {

	// Time is when the pass ran.
	Time time.Time

	// MinAge is the age threshold used.
	MinAge time.Duration

	// Leaked are the potentially leaked leaves, sorted by path.
	Leaked []Leak

	// Untracked are the paths of renderable nodes reachable from the
	// supplied scene root that were never registered with the tracker:
	// evidence of a creation path that bypassed Track entirely.
	// Sorted by path.
	Untracked []string

	// Histogram is the count of non-cached tracked leaves grouped by
	// name. It is only populated when the number of non-cached leaves
	// exceeds [Settings.HighWater], to identify what kind of object is
	// leaking in bulk.
	Histogram map[string]int

	// TotalTracked is the number of registered leaves.
	TotalTracked int

	// TotalCached is the number of registered leaves flagged as cached.
	TotalCached int

	// TotalBytes is the estimated device memory held by all leaked
	// leaves' resources.
	TotalBytes int
}

// CheckLeaks runs a diagnostic pass over the leaf registry, reporting
// every non-cached leaf older than minAge that is not reachable from the
// given scene root. A nil root degrades to no reachability exemption:
// every sufficiently old non-cached leaf is reported. It also reports
// renderable nodes reachable from the root that were never tracked.
//
// If updateSnapshot is true, reported leaves are flagged as cached so
// they are not reported again on the next call, converting a one-time
// report into a standing exemption. Otherwise the pass is read-only:
// it never changes reference counts and never releases anything.
//
// A negative minAge uses [Settings.LeakMinAge].
func (tr *Tracker) CheckLeaks(minAge time.Duration, updateSnapshot bool, root scene.Node) *Report {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	if minAge < 0 {
		minAge = tr.settings.LeakMinAge
	}
	now := tr.now()
	rp := &Report{Time: now, MinAge: minAge, TotalTracked: len(tr.leaves)}

	// reachability and reverse consistency in one walk
	reach := map[*scene.Solid]bool{}
	if root != nil {
		root.AsNodeBase().WalkDown(func(k scene.Node) bool {
			sld := k.AsSolid()
			if sld == nil || !sld.Class.IsRenderable() {
				return scene.Continue
			}
			reach[sld] = true
			if _, ok := tr.leaves[sld]; !ok {
				rp.Untracked = append(rp.Untracked, sld.Path())
			}
			return scene.Continue
		})
	}

	nonCached := 0
	for sld, lf := range tr.leaves {
		if lf.cached {
			rp.TotalCached++
			continue
		}
		nonCached++
		age := now.Sub(lf.at)
		if age <= minAge {
			continue
		}
		if root != nil && reach[sld] {
			continue // still in the live scene: active, not leaked
		}
		bytes := leafBytes(sld)
		rp.Leaked = append(rp.Leaked, Leak{
			Path:  sld.Path(),
			Name:  sld.Name,
			Class: sld.Class,
			Age:   age,
			Bytes: bytes,
		})
		rp.TotalBytes += bytes
		if updateSnapshot {
			lf.cached = true
		}
	}

	if nonCached > tr.settings.HighWater {
		rp.Histogram = map[string]int{}
		for sld, lf := range tr.leaves {
			if !lf.cached {
				rp.Histogram[sld.Name]++
			}
		}
	}

	sort.Slice(rp.Leaked, func(i, j int) bool { return rp.Leaked[i].Path < rp.Leaked[j].Path })
	sort.Strings(rp.Untracked)
	return rp
}

// leafBytes estimates the device memory held by one leaf's resources,
// counting each distinct resource once.
func leafBytes(sld *scene.Solid) int {
	seen := map[scene.Resource]bool{}
	bytes := 0
	visitSolid(sld, func(rs scene.Resource) {
		if seen[rs] {
			return
		}
		seen[rs] = true
		bytes += scene.ResourceBytes(rs)
	})
	return bytes
}

// IsClean returns whether the report found nothing to flag.
func (rp *Report) IsClean() bool {
	return len(rp.Leaked) == 0 && len(rp.Untracked) == 0
}

// String returns a human-readable, multi-line rendering of the report.
func (rp *Report) String() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "retain: leak check at %v: %d tracked, %d cached, min age %v\n",
		rp.Time.Format(time.TimeOnly), rp.TotalTracked, rp.TotalCached, rp.MinAge)
	for _, lk := range rp.Leaked {
		fmt.Fprintf(b, "\tleak: %s (%s) age %v, ~%d bytes\n", lk.Path, lk.Class, lk.Age.Round(time.Second), lk.Bytes)
	}
	if rp.TotalBytes > 0 {
		fmt.Fprintf(b, "\ttotal leaked: ~%d bytes\n", rp.TotalBytes)
	}
	for _, pt := range rp.Untracked {
		fmt.Fprintf(b, "\tuntracked object in scene: %s\n", pt)
	}
	if len(rp.Histogram) > 0 {
		names := make([]string, 0, len(rp.Histogram))
		for nm := range rp.Histogram {
			names = append(names, nm)
		}
		sort.Slice(names, func(i, j int) bool {
			ni, nj := rp.Histogram[names[i]], rp.Histogram[names[j]]
			if ni != nj {
				return ni > nj
			}
			return names[i] < names[j]
		})
		fmt.Fprintf(b, "\thigh water mark exceeded; tracked leaves by name:\n")
		for _, nm := range names {
			fmt.Fprintf(b, "\t\t%6d  %s\n", rp.Histogram[nm], nm)
		}
	}
	if rp.IsClean() {
		fmt.Fprintf(b, "\tno leaks detected\n")
	}
	return b.String()
}

// Log emits the report as structured log records on the given logger
// (or [slog.Default] if nil): one Warn record per leak and untracked
// object, and one Info summary.
func (rp *Report) Log(lg *slog.Logger) {
	if lg == nil {
		lg = slog.Default()
	}
	for _, lk := range rp.Leaked {
		lg.Warn("retain: potential leak", "path", lk.Path, "class", lk.Class.String(),
			"age", lk.Age, "bytes", lk.Bytes)
	}
	for _, pt := range rp.Untracked {
		lg.Warn("retain: untracked object in scene", "path", pt)
	}
	lg.Info("retain: leak check done", "tracked", rp.TotalTracked, "cached", rp.TotalCached,
		"leaked", len(rp.Leaked), "untracked", len(rp.Untracked), "bytes", rp.TotalBytes)
}
