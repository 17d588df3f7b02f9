package comparator

import (
	"strings"

	"github.com/jsredmond/zorkparity/internal/models"
)

// verbCategories maps the leading verb of a command to its category. The
// table is a closed taxonomy: anything outside it is treated as exercising
// the parser.
var verbCategories = map[string]models.Category{
	// movement
	"go": models.CategoryNavigation, "walk": models.CategoryNavigation,
	"north": models.CategoryNavigation, "n": models.CategoryNavigation,
	"south": models.CategoryNavigation, "s": models.CategoryNavigation,
	"east": models.CategoryNavigation, "e": models.CategoryNavigation,
	"west": models.CategoryNavigation, "w": models.CategoryNavigation,
	"northeast": models.CategoryNavigation, "ne": models.CategoryNavigation,
	"northwest": models.CategoryNavigation, "nw": models.CategoryNavigation,
	"southeast": models.CategoryNavigation, "se": models.CategoryNavigation,
	"southwest": models.CategoryNavigation, "sw": models.CategoryNavigation,
	"up": models.CategoryNavigation, "u": models.CategoryNavigation,
	"down": models.CategoryNavigation, "d": models.CategoryNavigation,
	"enter": models.CategoryNavigation, "exit": models.CategoryNavigation,
	"climb": models.CategoryNavigation, "in": models.CategoryNavigation,
	"out": models.CategoryNavigation,

	// looking around
	"look": models.CategoryRoomDescription, "l": models.CategoryRoomDescription,

	// object inspection
	"examine": models.CategoryExamination, "x": models.CategoryExamination,
	"read": models.CategoryExamination, "search": models.CategoryExamination,

	// carrying
	"inventory": models.CategoryInventory, "i": models.CategoryInventory,
	"inv": models.CategoryInventory,

	// object manipulation
	"take": models.CategoryObjectManipulation, "get": models.CategoryObjectManipulation,
	"pick": models.CategoryObjectManipulation, "drop": models.CategoryObjectManipulation,
	"put": models.CategoryObjectManipulation, "open": models.CategoryObjectManipulation,
	"close": models.CategoryObjectManipulation, "move": models.CategoryObjectManipulation,
	"push": models.CategoryObjectManipulation, "pull": models.CategoryObjectManipulation,
	"turn": models.CategoryObjectManipulation, "throw": models.CategoryObjectManipulation,
	"tie": models.CategoryObjectManipulation, "untie": models.CategoryObjectManipulation,
	"wear": models.CategoryObjectManipulation, "remove": models.CategoryObjectManipulation,
	"lock": models.CategoryObjectManipulation, "unlock": models.CategoryObjectManipulation,
	"fill": models.CategoryObjectManipulation, "empty": models.CategoryObjectManipulation,
	"pour": models.CategoryObjectManipulation, "dig": models.CategoryObjectManipulation,
	"wave": models.CategoryObjectManipulation, "rub": models.CategoryObjectManipulation,
	"inflate": models.CategoryObjectManipulation, "deflate": models.CategoryObjectManipulation,
	"light": models.CategoryObjectManipulation, "extinguish": models.CategoryObjectManipulation,
	"douse": models.CategoryObjectManipulation,

	// combat
	"attack": models.CategoryCombat, "kill": models.CategoryCombat,
	"hit": models.CategoryCombat, "strike": models.CategoryCombat,
	"fight": models.CategoryCombat, "stab": models.CategoryCombat,
	"slay": models.CategoryCombat, "swing": models.CategoryCombat,

	// talking to the world
	"say": models.CategoryInteraction, "answer": models.CategoryInteraction,
	"yell": models.CategoryInteraction, "pray": models.CategoryInteraction,
	"talk": models.CategoryInteraction, "give": models.CategoryInteraction,
	"show": models.CategoryInteraction, "knock": models.CategoryInteraction,
	"ring": models.CategoryInteraction, "wind": models.CategoryInteraction,
	"touch": models.CategoryInteraction, "kiss": models.CategoryInteraction,
	"eat": models.CategoryInteraction, "drink": models.CategoryInteraction,
	"smell": models.CategoryInteraction, "listen": models.CategoryInteraction,

	// game-level commands
	"save": models.CategoryMeta, "restore": models.CategoryMeta,
	"restart": models.CategoryMeta, "quit": models.CategoryMeta,
	"score": models.CategoryMeta, "verbose": models.CategoryMeta,
	"brief": models.CategoryMeta, "superbrief": models.CategoryMeta,
	"diagnose": models.CategoryMeta, "version": models.CategoryMeta,
	"wait": models.CategoryMeta, "z": models.CategoryMeta,
	"again": models.CategoryMeta, "g": models.CategoryMeta,
}

// CategorizeCommand classifies a command by its leading verb. The empty
// command is the initial engine state; "look at X" style phrasings count as
// examination rather than a room description.
func CategorizeCommand(command string) models.Category {
	cmd := strings.ToLower(strings.TrimSpace(command))
	if cmd == "" {
		return models.CategoryInitial
	}

	fields := strings.Fields(cmd)
	verb := fields[0]

	if verb == "look" && len(fields) > 1 {
		switch fields[1] {
		case "at", "in", "under", "behind", "inside":
			return models.CategoryExamination
		}
	}

	if cat, ok := verbCategories[verb]; ok {
		return cat
	}
	return models.CategoryParserResponse
}
