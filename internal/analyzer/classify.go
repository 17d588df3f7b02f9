package analyzer

import (
	"strings"

	"github.com/jsredmond/zorkparity/internal/models"
)

// classifyDifference sorts a divergence into the fixed difference-type
// taxonomy using the command category plus content heuristics over both
// outputs.
func classifyDifference(entry models.DiffEntry) models.DifferenceType {
	// An entry present on only one side means the engines disagreed about how
	// far the sequence could run.
	if entry.Expected == "" || entry.Actual == "" {
		return models.DiffTypeSequenceDependency
	}

	combined := strings.ToLower(entry.Expected + "\n" + entry.Actual)

	switch entry.Category {
	case models.CategoryCombat:
		return models.DiffTypeRandomBehavior
	case models.CategoryParserResponse:
		return models.DiffTypeParserResponse
	}

	switch {
	case strings.Contains(combined, "time passes") || strings.Contains(combined, "turns pass"):
		return models.DiffTypeTiming
	case strings.Contains(combined, "score") || strings.Contains(combined, "you have died") ||
		strings.Contains(combined, "you are carrying"):
		return models.DiffTypeStateLogic
	case strings.Contains(combined, "already") || strings.Contains(combined, "you need to") ||
		strings.Contains(combined, "first"):
		return models.DiffTypeSequenceDependency
	case entry.Category == models.CategoryNavigation || entry.Category == models.CategoryRoomDescription:
		return models.DiffTypeConditionalLogic
	case entry.Category == models.CategoryObjectManipulation || entry.Category == models.CategoryInventory:
		return models.DiffTypeObjectBehavior
	default:
		return models.DiffTypeMessageContent
	}
}

// subsystemRule attributes commands containing a keyword to engine subsystems.
type subsystemRule struct {
	keywords   []string
	subsystems []models.Subsystem
}

var subsystemRules = []subsystemRule{
	{[]string{"north", "south", "east", "west", "up", "down", "enter", "exit", "climb", "go "},
		[]models.Subsystem{models.SubsystemRooms}},
	{[]string{"take", "get", "drop", "put", "open", "close", "move", "push", "pull", "turn", "throw", "tie"},
		[]models.Subsystem{models.SubsystemObjects, models.SubsystemActions}},
	{[]string{"inventory"}, []models.Subsystem{models.SubsystemInventory}},
	{[]string{"attack", "kill", "hit", "fight", "stab", "swing"},
		[]models.Subsystem{models.SubsystemCombat, models.SubsystemDaemons}},
	{[]string{"light", "lamp", "lantern", "torch", "candle", "match"},
		[]models.Subsystem{models.SubsystemLighting, models.SubsystemObjects}},
	{[]string{"score", "diagnose"}, []models.Subsystem{models.SubsystemScoring}},
	{[]string{"pray", "wave", "ring", "wind", "say", "answer"},
		[]models.Subsystem{models.SubsystemPuzzles}},
	{[]string{"wait", "z"}, []models.Subsystem{models.SubsystemDaemons}},
}

// inventoryAliases are single-letter commands the keyword scan cannot match
// safely by substring.
var inventoryAliases = map[string]bool{"i": true, "inv": true}

// mapSubsystems returns the subsystems a divergence touches. Every divergence
// involves messaging (the text differed) and the parser (the command passed
// through it), so those two are always present.
func mapSubsystems(command string, diffType models.DifferenceType) []models.Subsystem {
	cmd := strings.ToLower(strings.TrimSpace(command))

	seen := map[models.Subsystem]bool{
		models.SubsystemMessaging: true,
		models.SubsystemParser:    true,
	}
	result := []models.Subsystem{models.SubsystemMessaging, models.SubsystemParser}

	add := func(subs ...models.Subsystem) {
		for _, s := range subs {
			if !seen[s] {
				seen[s] = true
				result = append(result, s)
			}
		}
	}

	if inventoryAliases[cmd] {
		add(models.SubsystemInventory)
	}
	for _, rule := range subsystemRules {
		for _, kw := range rule.keywords {
			if matchesKeyword(cmd, kw) {
				add(rule.subsystems...)
				break
			}
		}
	}

	switch diffType {
	case models.DiffTypeRandomBehavior:
		add(models.SubsystemDaemons)
	case models.DiffTypeStateLogic:
		add(models.SubsystemScoring)
	case models.DiffTypeTiming:
		add(models.SubsystemDaemons)
	}

	return result
}

// matchesKeyword matches a keyword against the command. Keywords ending in a
// space are prefix matches; single-letter keywords must match a whole field;
// everything else is a substring match.
func matchesKeyword(cmd, kw string) bool {
	if strings.HasSuffix(kw, " ") {
		return strings.HasPrefix(cmd, kw)
	}
	if len(kw) == 1 {
		for _, f := range strings.Fields(cmd) {
			if f == kw {
				return true
			}
		}
		return false
	}
	return strings.Contains(cmd, kw)
}
