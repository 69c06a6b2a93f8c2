package config

import "github.com/mkawano/seat-draw-backend/internal/mode"

// FixedAssignments are the seats locked in code for the whole event:
// never in the draw pool, never editable from the manager console.
// Keys are seat numbers as strings, matching the preset table shape.
var FixedAssignments = map[string]string{
	"22": "池田さん",
	"23": "長尾君",
	"24": "平川さん",
	"25": "西川",
	"26": "内藤君",
	"27": "舘林さん",
	"28": "田村さん",
	"29": "佐藤真希さん",
}

// ModeRanges partitions the seat numbers per draw mode.
var ModeRanges = map[string]mode.Range{
	"male":   {Min: 1, Max: 11},
	"female": {Min: 12, Max: 21},
}

const DefaultMode = "male"
