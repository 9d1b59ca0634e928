// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package retain

import (
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Settings are the diagnostic thresholds for a [Tracker]. They affect
// only leak reporting, never reference counting or disposal timing.
type Settings struct {

	// LeakMinAge is the default minimum age for a leaf to be considered
	// in leak checking, for tooling that does not pass an explicit
	// threshold to [Tracker.CheckLeaks].
	LeakMinAge time.Duration `toml:"leak-min-age"`

	// HighWater is the number of non-cached tracked leaves above which
	// a leak check escalates to a by-name histogram, since bulk growth
	// suggests systemic leakage rather than a few stragglers.
	HighWater int `toml:"high-water"`
}

// Defaults sets default settings values.
func (st *Settings) Defaults() {
	st.LeakMinAge = 30 * time.Second
	st.HighWater = 100
}

// OpenSettings reads settings from the given TOML file.
// Fields not present in the file keep their default values.
func OpenSettings(filename string) (*Settings, error) {
	st := &Settings{}
	st.Defaults()
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(b, st); err != nil {
		return nil, err
	}
	return st, nil
}

// SaveSettings writes settings to the given TOML file.
func SaveSettings(st *Settings, filename string) error {
	b, err := toml.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0666)
}
