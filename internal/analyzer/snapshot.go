package analyzer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jsredmond/zorkparity/internal/models"
)

var (
	statusLinePattern = regexp.MustCompile(`^\s*(\S.*?)\s+Score:\s*(-?\d+)\s+Moves:\s*(\d+)\s*$`)
	scoreTextPattern  = regexp.MustCompile(`(?i)score (?:is|of) (-?\d+)`)
	roomTitlePattern  = regexp.MustCompile(`^[A-Z][A-Za-z' -]{1,30}$`)
	carryingPattern   = regexp.MustCompile(`(?i)^you are (?:carrying|holding):?$`)
)

// ExtractSnapshot reconstructs a best-effort game-state snapshot from one
// output text. It is advisory only: when the text matches none of the
// recognized patterns the snapshot simply stays empty. It never fails.
func ExtractSnapshot(output string) models.GameStateSnapshot {
	snap := models.GameStateSnapshot{}
	lines := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")

	inInventory := false
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			inInventory = false
			continue
		}

		if m := statusLinePattern.FindStringSubmatch(raw); m != nil {
			snap.Location = strings.TrimSpace(m[1])
			if score, err := strconv.Atoi(m[2]); err == nil {
				snap.Score = &score
			}
			if moves, err := strconv.Atoi(m[3]); err == nil {
				snap.Moves = &moves
			}
			continue
		}

		if m := scoreTextPattern.FindStringSubmatch(line); m != nil {
			if score, err := strconv.Atoi(m[1]); err == nil && snap.Score == nil {
				snap.Score = &score
			}
			continue
		}

		if carryingPattern.MatchString(line) {
			inInventory = true
			continue
		}
		if inInventory {
			item := strings.TrimSpace(strings.TrimPrefix(line, "-"))
			item = strings.TrimPrefix(item, "A ")
			item = strings.TrimPrefix(item, "a ")
			item = strings.TrimPrefix(item, "An ")
			item = strings.TrimPrefix(item, "an ")
			if item != "" {
				snap.Inventory = append(snap.Inventory, item)
			}
			continue
		}

		// A short capitalized line with no sentence punctuation is most likely
		// a room title; keep the first one seen.
		if snap.Location == "" && roomTitlePattern.MatchString(line) {
			snap.Location = line
		}
	}

	return snap
}
