package analyzer

import (
	"fmt"

	"github.com/jsredmond/zorkparity/internal/models"
)

// causeProfile is the canonical attribution for one difference type.
type causeProfile struct {
	subsystem models.Subsystem
	issue     string
	desc      string
	fix       string
}

var causeProfiles = map[models.DifferenceType]causeProfile{
	models.DiffTypeMessageContent: {
		subsystem: models.SubsystemMessaging,
		issue:     "message text mismatch",
		desc:      "The engines emit different wording for the same event.",
		fix:       "Align the response string table with the reference engine's text.",
	},
	models.DiffTypeStateLogic: {
		subsystem: models.SubsystemScoring,
		issue:     "world-state divergence",
		desc:      "Score, death, or carried-item state differs after the same command.",
		fix:       "Trace the state transition for this command and align flag/score updates.",
	},
	models.DiffTypeObjectBehavior: {
		subsystem: models.SubsystemObjects,
		issue:     "object interaction mismatch",
		desc:      "An object responds differently to the same manipulation.",
		fix:       "Check the object's action handler and its capacity/openable/takeable properties.",
	},
	models.DiffTypeParserResponse: {
		subsystem: models.SubsystemParser,
		issue:     "parser rejection mismatch",
		desc:      "The parsers disagree on how to reject or interpret this input.",
		fix:       "Align vocabulary and syntax rules for the words in this command.",
	},
	models.DiffTypeConditionalLogic: {
		subsystem: models.SubsystemRooms,
		issue:     "conditional branch mismatch",
		desc:      "A room exit or conditional description took a different branch.",
		fix:       "Compare the guard conditions on this room's exits and description variants.",
	},
	models.DiffTypeSequenceDependency: {
		subsystem: models.SubsystemActions,
		issue:     "prerequisite ordering mismatch",
		desc:      "The outcome depends on earlier commands and the engines disagree on the accumulated state.",
		fix:       "Replay the preceding commands and find the first point where state diverges.",
	},
	models.DiffTypeTiming: {
		subsystem: models.SubsystemDaemons,
		issue:     "turn-timing mismatch",
		desc:      "A timed event (daemon, fuse) fired on a different turn.",
		fix:       "Align daemon tick counters and fuse lengths with the reference engine.",
	},
	models.DiffTypeRandomBehavior: {
		subsystem: models.SubsystemCombat,
		issue:     "nondeterministic outcome",
		desc:      "The outcome draws on the random number generator (combat rolls, thief movement).",
		fix:       "Seed both engines identically, or match the reference's RNG consumption order.",
	},
}

// inferRootCause produces the root-cause map for one detailed difference.
// typeCounts is the number of differences per classification across the whole
// report and is used to surface systemic issues.
func inferRootCause(d models.DetailedDifference, typeCounts map[models.DifferenceType]int) models.RootCauseMap {
	profile := causeProfiles[d.Type]

	rc := models.RootCauseMap{
		Index: d.Entry.Index,
		Primary: models.RootCause{
			Subsystem:    profile.subsystem,
			Issue:        profile.issue,
			Description:  profile.desc,
			SuggestedFix: profile.fix,
		},
	}

	peers := typeCounts[d.Type] - 1
	if peers > 0 {
		rc.Contributing = append(rc.Contributing,
			fmt.Sprintf("systemic: %d other difference(s) share the %s classification", peers, d.Type))
	}
	if d.Context.PreviousCommand != "" {
		rc.Contributing = append(rc.Contributing,
			fmt.Sprintf("preceded by %q on turn %d", d.Context.PreviousCommand, d.Context.Turn))
	}

	rc.Confidence = confidence(d, peers)
	return rc
}

// confidence scores the attribution in [0,1]. Systemic overlap and high
// output similarity raise it; a wide subsystem spread lowers it because the
// attribution is then less specific.
func confidence(d models.DetailedDifference, peers int) float64 {
	c := 0.5
	if peers > 0 {
		c += 0.2
	}
	c += d.Entry.Similarity * 0.2
	if extra := len(d.Subsystems) - 2; extra > 0 {
		c -= 0.05 * float64(extra)
	}

	if c < 0.1 {
		c = 0.1
	}
	if c > 0.95 {
		c = 0.95
	}
	return c
}
