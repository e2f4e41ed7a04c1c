// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"fmt"
	"strings"

	"github.com/retrolab/retroevents/lib/trace"
)

// TrialType is the categorical label of an event, drawn from the
// closed taxonomy below plus the composed scene labels.
type TrialType string

const (
	// TrialGame is the run-level metadata event spanning the whole
	// trace.
	TrialGame TrialType = "gym-retro_game"

	TrialKillStomp  TrialType = "Kill/stomp"
	TrialKillImpact TrialType = "Kill/impact"
	TrialKillKick   TrialType = "Kill/kick"

	TrialHitPowerupLost TrialType = "Hit/powerup_lost"
	TrialHitLifeLost    TrialType = "Hit/life_lost"

	TrialCoinCollected    TrialType = "Coin_collected"
	TrialPowerupCollected TrialType = "Powerup_collected"
	TrialBrickSmashed     TrialType = "Brick_smashed"
)

// sceneTrialPrefix marks the composed scene labels,
// "scene-<id>_code-<code>".
const sceneTrialPrefix = "scene-"

// ButtonTrial returns the trial type of a button action event; button
// events are labeled with the bare channel name.
func ButtonTrial(b trace.Button) TrialType {
	return TrialType(b.String())
}

// SceneTrial composes the trial type of a scene traversal event from
// the scene identifier and the clip's traversal code.
func SceneTrial(scene, code string) TrialType {
	return TrialType(fmt.Sprintf("scene-%s_code-%s", scene, code))
}

// Category orders simultaneous events in the final table. The values
// are the sort tie-break: two events with equal onset are ordered by
// ascending category.
type Category int

const (
	CategoryMetadata Category = iota
	CategoryAction
	CategoryCombat
	CategoryDamage
	CategoryCollection
	CategoryScene
)

var categoryNames = map[Category]string{
	CategoryMetadata:   "metadata",
	CategoryAction:     "action",
	CategoryCombat:     "combat",
	CategoryDamage:     "damage",
	CategoryCollection: "collection",
	CategoryScene:      "scene",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// trialCategories is the explicit classification table for the fixed
// taxonomy. Button and scene labels are open-ended and handled by
// CategoryOf directly.
var trialCategories = map[TrialType]Category{
	TrialGame:             CategoryMetadata,
	TrialKillStomp:        CategoryCombat,
	TrialKillImpact:       CategoryCombat,
	TrialKillKick:         CategoryCombat,
	TrialHitPowerupLost:   CategoryDamage,
	TrialHitLifeLost:      CategoryDamage,
	TrialCoinCollected:    CategoryCollection,
	TrialPowerupCollected: CategoryCollection,
	TrialBrickSmashed:     CategoryCollection,
}

// CategoryOf returns the sort category of a trial type. The second
// return is false for labels outside the taxonomy.
func CategoryOf(t TrialType) (Category, bool) {
	if category, ok := trialCategories[t]; ok {
		return category, true
	}
	if _, err := trace.ParseButton(string(t)); err == nil {
		return CategoryAction, true
	}
	if strings.HasPrefix(string(t), sceneTrialPrefix) {
		return CategoryScene, true
	}
	return 0, false
}

// MultiplyEmittable reports whether several events of this trial type
// may legitimately share one frame_start. Only coin bursts qualify: a
// coin counter jumping by n in one frame is recorded as n coin events
// on that frame.
func MultiplyEmittable(t TrialType) bool {
	return t == TrialCoinCollected
}

// KillTrials lists the combat sub-types in a fixed order, used by the
// taxonomy listing command and by config validation of kill-code
// overrides.
var KillTrials = []TrialType{TrialKillStomp, TrialKillImpact, TrialKillKick}

// FixedTrials lists the non-composed taxonomy in presentation order.
var FixedTrials = []TrialType{
	TrialGame,
	TrialKillStomp, TrialKillImpact, TrialKillKick,
	TrialHitPowerupLost, TrialHitLifeLost,
	TrialCoinCollected, TrialPowerupCollected, TrialBrickSmashed,
}
